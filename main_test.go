package main

import (
	"strings"
	"testing"
	"time"

	"github.com/atomicstack/patchmenu/internal/app"
	"github.com/atomicstack/patchmenu/internal/config"
)

func TestCollectTTYDetailsIncludesStandardDescriptors(t *testing.T) {
	info := collectTTYDetails()
	if len(info.Probes) != 3 {
		t.Fatalf("expected 3 probe entries, got %d", len(info.Probes))
	}
	expected := []string{"stdin", "stdout", "stderr"}
	for i, name := range expected {
		if info.Probes[i].Name != name {
			t.Fatalf("expected probe %d name %q, got %q", i, name, info.Probes[i].Name)
		}
	}
}

func TestStartupTracePayloadIncludesFlags(t *testing.T) {
	cfg := config.Config{
		App: app.Config{
			Preset:      "polyphonic",
			PresetDir:   "presets",
			Slots:       16,
			Encoders:    2,
			DoubleClick: 300 * time.Millisecond,
			LongPress:   time.Second,
			ShowFooter:  true,
		},
		Logging: config.Logging{
			FilePath: "trace.log",
			Trace:    true,
		},
		Flags: map[string]string{
			"preset":   "polyphonic",
			"encoders": "2",
			"footer":   "true",
		},
		Args: []string{"--preset", "polyphonic", "--encoders", "2"},
	}

	payload := startupTracePayload(cfg)

	flagsValue, ok := payload["flags"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected flags map in payload")
	}
	if flagsValue["preset"] != "polyphonic" {
		t.Fatalf("expected preset flag %q, got %v", "polyphonic", flagsValue["preset"])
	}
	if flagsValue["encoders"] != "2" {
		t.Fatalf("expected encoders 2, got %v", flagsValue["encoders"])
	}
	if flagsValue["footer"] != "true" {
		t.Fatalf("expected footer flag true, got %v", flagsValue["footer"])
	}
	if flagsValue["trace"] != true {
		t.Fatalf("expected trace flag true, got %v", flagsValue["trace"])
	}
	if flagsValue["logFile"] != "trace.log" {
		t.Fatalf("expected log file trace.log, got %v", flagsValue["logFile"])
	}
	if _, ok := payload["midiPorts"]; ok {
		t.Fatalf("expected no port listing without MIDI configured")
	}

	if _, ok := payload["tty"].(ttyDetails); !ok {
		t.Fatalf("expected tty details in payload")
	}
	if cfgValue, ok := payload["config"].(config.Config); !ok {
		t.Fatalf("expected config in payload")
	} else if cfgValue.App != cfg.App {
		t.Fatalf("expected app config %#v, got %#v", cfg.App, cfgValue.App)
	}
}

func TestPrintPorts(t *testing.T) {
	var out strings.Builder
	printPorts(&out, []string{"Launch Control XL"}, nil)
	want := "MIDI inputs:\n  Launch Control XL\nMIDI outputs:\n  (none)\n"
	if out.String() != want {
		t.Fatalf("expected %q, got %q", want, out.String())
	}
}
