package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/atomicstack/patchmenu/internal/app"
	"github.com/atomicstack/patchmenu/internal/encoder"
	"github.com/atomicstack/patchmenu/internal/patch"
	"github.com/atomicstack/patchmenu/internal/presets"
)

// Config captures runtime configuration for the application.
type Config struct {
	App       app.Config
	Logging   Logging
	File      string
	ListPorts bool
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

// File is the optional YAML configuration. Its values sit beneath the
// environment and command line flags.
type File struct {
	Preset      string        `yaml:"preset"`
	PresetDir   string        `yaml:"preset_dir"`
	SampleDir   string        `yaml:"sample_dir"`
	Slots       int           `yaml:"slots"`
	Encoders    int           `yaml:"encoders"`
	Voices      int           `yaml:"voices"`
	DoubleClick time.Duration `yaml:"double_click"`
	LongPress   time.Duration `yaml:"long_press"`
	SavePause   time.Duration `yaml:"save_pause"`
	MIDIIn      string        `yaml:"midi_in"`
	MIDIOut     string        `yaml:"midi_out"`
	Channel     int           `yaml:"channel"`
	Footer      bool          `yaml:"footer"`
	Trace       bool          `yaml:"trace"`
	LogFile     string        `yaml:"log_file"`
}

const (
	envConfig      = "PATCHMENU_CONFIG"
	envPreset      = "PATCHMENU_PRESET"
	envPresetDir   = "PATCHMENU_PRESET_DIR"
	envSampleDir   = "PATCHMENU_SAMPLE_DIR"
	envSlots       = "PATCHMENU_SLOTS"
	envEncoders    = "PATCHMENU_ENCODERS"
	envVoices      = "PATCHMENU_VOICES"
	envDoubleClick = "PATCHMENU_DOUBLE_CLICK"
	envLongPress   = "PATCHMENU_LONG_PRESS"
	envSavePause   = "PATCHMENU_SAVE_PAUSE"
	envMIDIIn      = "PATCHMENU_MIDI_IN"
	envMIDIOut     = "PATCHMENU_MIDI_OUT"
	envChannel     = "PATCHMENU_CHANNEL"
	envShowFooter  = "PATCHMENU_FOOTER"
	envTrace       = "PATCHMENU_TRACE"
	envLogFile     = "PATCHMENU_LOG_FILE"
)

// Defaults returns the built in configuration file values.
func Defaults() File {
	return File{
		Preset:      "monophonic",
		PresetDir:   patch.DefaultDir,
		SampleDir:   "samples",
		Slots:       presets.DefaultSlots,
		Encoders:    1,
		DoubleClick: encoder.DefaultDoubleClick,
		LongPress:   encoder.DefaultLongPress,
		SavePause:   500 * time.Millisecond,
	}
}

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	path := configFlag(args)
	if path == "" {
		path = env[envConfig]
	}
	file, err := ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	fs := flag.NewFlagSet("patchmenu", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	fs.String("config", path, "path to a YAML configuration file")
	preset := fs.String("preset", envOrDefault(env, envPreset, file.Preset), "menu preset: "+strings.Join(presets.Names, ", "))
	presetDir := fs.String("preset-dir", envOrDefault(env, envPresetDir, file.PresetDir), "directory holding saved patches")
	sampleDir := fs.String("sample-dir", envOrDefault(env, envSampleDir, file.SampleDir), "directory scanned for .wav samples")
	slots := fs.Int("slots", envOrInt(env, envSlots, file.Slots), "highest polyphonic patch slot")
	encoders := fs.Int("encoders", envOrInt(env, envEncoders, file.Encoders), "number of encoders (1 or 2)")
	voices := fs.Int("voices", envOrInt(env, envVoices, file.Voices), "voice count (0 uses the preset default)")
	doubleClick := fs.Duration("double-click", envOrDuration(env, envDoubleClick, file.DoubleClick), "double-click window")
	longPress := fs.Duration("long-press", envOrDuration(env, envLongPress, file.LongPress), "long-press threshold")
	savePause := fs.Duration("save-pause", envOrDuration(env, envSavePause, file.SavePause), "pause showing the save confirmation")
	midiIn := fs.String("midi-in", envOrDefault(env, envMIDIIn, file.MIDIIn), "MIDI controller input port (empty disables)")
	midiOut := fs.String("midi-out", envOrDefault(env, envMIDIOut, file.MIDIOut), "MIDI output port for parameter changes (empty disables)")
	channel := fs.Int("channel", envOrInt(env, envChannel, file.Channel), "base MIDI channel (0-15)")
	footer := fs.Bool("footer", envOrBool(env, envShowFooter, file.Footer), "enable footer hint row")
	trace := fs.Bool("trace", envOrBool(env, envTrace, file.Trace), "enable verbose JSON trace logging")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, file.LogFile), "path to the log file")
	listPorts := fs.Bool("list-ports", false, "print the available MIDI ports and exit")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg := Config{
		App: app.Config{
			Preset:      *preset,
			PresetDir:   *presetDir,
			SampleDir:   *sampleDir,
			Slots:       *slots,
			Encoders:    *encoders,
			Voices:      *voices,
			DoubleClick: *doubleClick,
			LongPress:   *longPress,
			SavePause:   *savePause,
			MIDIIn:      *midiIn,
			MIDIOut:     *midiOut,
			Channel:     *channel,
			ShowFooter:  *footer,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		File:      path,
		ListPorts: *listPorts,
		Flags: map[string]string{
			"config":      path,
			"preset":      *preset,
			"presetDir":   *presetDir,
			"sampleDir":   *sampleDir,
			"slots":       strconv.Itoa(*slots),
			"encoders":    strconv.Itoa(*encoders),
			"voices":      strconv.Itoa(*voices),
			"doubleClick": doubleClick.String(),
			"longPress":   longPress.String(),
			"savePause":   savePause.String(),
			"midiIn":      *midiIn,
			"midiOut":     *midiOut,
			"channel":     strconv.Itoa(*channel),
			"footer":      strconv.FormatBool(*footer),
			"trace":       strconv.FormatBool(*trace),
			"logFile":     *logFile,
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

// ReadFile loads a YAML configuration on top of Defaults. An empty path
// returns the defaults.
func ReadFile(path string) (File, error) {
	file := Defaults()
	if strings.TrimSpace(path) == "" {
		return file, nil
	}
	data, err := os.ReadFile(expandPath(path))
	if err != nil {
		return File{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return File{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return file, nil
}

// configFlag finds --config ahead of the real parse so the file can seed the
// flag defaults.
func configFlag(args []string) string {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			break
		}
		name := strings.TrimLeft(arg, "-")
		if name == arg {
			continue
		}
		if value, ok := strings.CutPrefix(name, "config="); ok {
			return value
		}
		if name == "config" && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

func expandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrDuration(env map[string]string, key string, fallback time.Duration) time.Duration {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate rejects option combinations the application cannot run with.
func Validate(cfg Config) error {
	a := cfg.App
	var errs []error
	if !validPreset(a.Preset) {
		errs = append(errs, fmt.Errorf("unknown preset %q (want one of %s)", a.Preset, strings.Join(presets.Names, ", ")))
	}
	if a.Encoders != 1 && a.Encoders != 2 {
		errs = append(errs, fmt.Errorf("encoders must be 1 or 2 (got %d)", a.Encoders))
	}
	if a.Voices < 0 {
		errs = append(errs, fmt.Errorf("voices must be >= 0 (got %d)", a.Voices))
	}
	if a.Slots < 0 {
		errs = append(errs, fmt.Errorf("slots must be >= 0 (got %d)", a.Slots))
	}
	if a.Channel < 0 || a.Channel > 15 {
		errs = append(errs, fmt.Errorf("channel must be between 0 and 15 (got %d)", a.Channel))
	}
	if a.DoubleClick <= 0 || a.LongPress <= 0 {
		errs = append(errs, fmt.Errorf("double-click and long-press must be positive"))
	} else if a.LongPress <= a.DoubleClick {
		errs = append(errs, fmt.Errorf("long-press (%s) must exceed double-click (%s)", a.LongPress, a.DoubleClick))
	}
	if a.SavePause < 0 {
		errs = append(errs, fmt.Errorf("save-pause must be >= 0 (got %s)", a.SavePause))
	}
	if strings.TrimSpace(a.PresetDir) == "" {
		errs = append(errs, errors.New("preset-dir must not be empty"))
	}
	return errors.Join(errs...)
}

func validPreset(name string) bool {
	for _, n := range presets.Names {
		if n == name {
			return true
		}
	}
	return false
}
