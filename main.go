package main

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/atomicstack/patchmenu/internal/app"
	"github.com/atomicstack/patchmenu/internal/config"
	"github.com/atomicstack/patchmenu/internal/logging"
	"github.com/atomicstack/patchmenu/internal/logging/events"
	"github.com/atomicstack/patchmenu/internal/midi"
)

func main() {
	cfg := config.MustLoad()
	if cfg.ListPorts {
		ins, outs := midi.Ports()
		printPorts(os.Stdout, ins, outs)
		midi.Close()
		return
	}
	if err := config.Validate(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	logging.Configure(cfg.Logging.FilePath)
	logging.SetTraceEnabled(cfg.Logging.Trace)

	if logging.TraceEnabled() {
		events.App.Start(startupTracePayload(cfg))
	}

	if err := app.Run(cfg.App); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printPorts(w io.Writer, ins, outs []string) {
	section := func(title string, names []string) {
		fmt.Fprintf(w, "%s:\n", title)
		if len(names) == 0 {
			fmt.Fprintln(w, "  (none)")
		}
		for _, name := range names {
			fmt.Fprintf(w, "  %s\n", name)
		}
	}
	section("MIDI inputs", ins)
	section("MIDI outputs", outs)
}

// startupTracePayload bundles the resolved configuration, the process
// context and the terminal it runs in.
func startupTracePayload(cfg config.Config) map[string]interface{} {
	flags := make(map[string]interface{}, len(cfg.Flags)+2)
	for k, v := range cfg.Flags {
		flags[k] = v
	}
	flags["trace"] = cfg.Logging.Trace
	flags["logFile"] = cfg.Logging.FilePath
	payload := map[string]interface{}{
		"argv":   cfg.Args,
		"flags":  flags,
		"config": cfg,
		"tty":    collectTTYDetails(),
	}
	if exe, err := os.Executable(); err == nil {
		payload["executable"] = exe
	}
	if cwd, err := os.Getwd(); err == nil {
		payload["cwd"] = cwd
	}
	if cfg.App.MIDIIn != "" || cfg.App.MIDIOut != "" {
		ins, outs := midi.Ports()
		payload["midiPorts"] = map[string][]string{"in": ins, "out": outs}
	}
	return payload
}

type ttyDetails struct {
	Detected *ttyDetected     `json:"detected,omitempty"`
	Probes   []ttyProbeResult `json:"probes"`
}

type ttyDetected struct {
	Source string `json:"source"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type ttyProbeResult struct {
	Name       string `json:"name"`
	IsTerminal bool   `json:"is_terminal"`
	Width      int    `json:"width,omitempty"`
	Height     int    `json:"height,omitempty"`
	Error      string `json:"error,omitempty"`
}

// collectTTYDetails reports which standard descriptors are terminals and
// their sizes.
func collectTTYDetails() ttyDetails {
	var details ttyDetails
	for _, f := range []*os.File{os.Stdin, os.Stdout, os.Stderr} {
		probe := ttyProbeResult{Name: probeName(f)}
		fd := int(f.Fd())
		if fd < 0 || !term.IsTerminal(fd) {
			details.Probes = append(details.Probes, probe)
			continue
		}
		probe.IsTerminal = true
		width, height, err := term.GetSize(fd)
		if err != nil {
			probe.Error = err.Error()
		} else {
			probe.Width, probe.Height = width, height
			if details.Detected == nil {
				details.Detected = &ttyDetected{Source: probe.Name, Width: width, Height: height}
			}
		}
		details.Probes = append(details.Probes, probe)
	}
	return details
}

func probeName(f *os.File) string {
	switch f {
	case os.Stdin:
		return "stdin"
	case os.Stdout:
		return "stdout"
	default:
		return "stderr"
	}
}
