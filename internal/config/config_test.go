package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadArgsDefaults(t *testing.T) {
	cfg, err := LoadArgs(nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.Preset != "monophonic" || cfg.App.Encoders != 1 {
		t.Fatalf("unexpected defaults %+v", cfg.App)
	}
	if cfg.App.DoubleClick != 300*time.Millisecond || cfg.App.LongPress != time.Second {
		t.Fatalf("expected default gesture timings, got %s %s", cfg.App.DoubleClick, cfg.App.LongPress)
	}
	if cfg.App.PresetDir != "presets" {
		t.Fatalf("expected presets dir, got %q", cfg.App.PresetDir)
	}
	if cfg.ListPorts {
		t.Fatalf("expected port listing off by default")
	}
	if err := Validate(cfg); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
}

func TestLoadArgsListPorts(t *testing.T) {
	cfg, err := LoadArgs([]string{"-list-ports"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.ListPorts {
		t.Fatalf("expected -list-ports to be recorded")
	}
}

func TestLoadArgsEnvAndFlags(t *testing.T) {
	env := []string{
		"PATCHMENU_PRESET=sampler",
		"PATCHMENU_ENCODERS=2",
		"PATCHMENU_LONG_PRESS=2s",
		"PATCHMENU_TRACE=true",
		"PATCHMENU_VOICES=bogus",
	}
	cfg, err := LoadArgs([]string{"--preset", "polyphonic", "--channel", "3"}, env)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.Preset != "polyphonic" {
		t.Fatalf("expected flag to win over env, got %q", cfg.App.Preset)
	}
	if cfg.App.Encoders != 2 || cfg.App.LongPress != 2*time.Second || !cfg.Logging.Trace {
		t.Fatalf("expected env values, got %+v trace=%v", cfg.App, cfg.Logging.Trace)
	}
	if cfg.App.Voices != 0 {
		t.Fatalf("expected malformed env to fall back, got %d", cfg.App.Voices)
	}
	if cfg.Flags["channel"] != "3" || cfg.Flags["preset"] != "polyphonic" {
		t.Fatalf("unexpected flag map %v", cfg.Flags)
	}
}

func TestLoadArgsYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "patchmenu.yaml")
	body := strings.Join([]string{
		"preset: sampler",
		"encoders: 2",
		"double_click: 250ms",
		"sample_dir: /srv/samples",
		"footer: true",
	}, "\n")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadArgs([]string{"--config=" + path}, []string{"PATCHMENU_ENCODERS=1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.Preset != "sampler" || cfg.App.SampleDir != "/srv/samples" || !cfg.App.ShowFooter {
		t.Fatalf("expected file values, got %+v", cfg.App)
	}
	if cfg.App.DoubleClick != 250*time.Millisecond {
		t.Fatalf("expected file duration, got %s", cfg.App.DoubleClick)
	}
	if cfg.App.Encoders != 1 {
		t.Fatalf("expected env to override file, got %d", cfg.App.Encoders)
	}
	if cfg.App.LongPress != time.Second {
		t.Fatalf("expected unset file keys to keep defaults, got %s", cfg.App.LongPress)
	}
	if cfg.File != path {
		t.Fatalf("expected config path recorded, got %q", cfg.File)
	}

	fromEnv, err := LoadArgs(nil, []string{"PATCHMENU_CONFIG=" + path})
	if err != nil || fromEnv.App.Preset != "sampler" {
		t.Fatalf("expected config path from env, got %+v %v", fromEnv.App, err)
	}
}

func TestLoadArgsErrors(t *testing.T) {
	if _, err := LoadArgs([]string{"--config", filepath.Join(t.TempDir(), "missing.yaml")}, nil); err == nil {
		t.Fatalf("expected error for missing config file")
	}
	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte("encoders: [1"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadArgs([]string{"--config", bad}, nil); err == nil {
		t.Fatalf("expected parse error")
	}
	if _, err := LoadArgs([]string{"--nope"}, nil); err == nil {
		t.Fatalf("expected unknown flag error")
	}
}

func TestValidate(t *testing.T) {
	base, err := LoadArgs(nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	cases := map[string]func(*Config){
		"preset":   func(c *Config) { c.App.Preset = "drums" },
		"encoders": func(c *Config) { c.App.Encoders = 3 },
		"channel":  func(c *Config) { c.App.Channel = 16 },
		"timing":   func(c *Config) { c.App.LongPress = c.App.DoubleClick },
		"voices":   func(c *Config) { c.App.Voices = -1 },
		"dir":      func(c *Config) { c.App.PresetDir = " " },
	}
	for name, mutate := range cases {
		cfg := base
		mutate(&cfg)
		if err := Validate(cfg); err == nil {
			t.Fatalf("%s: expected validation error", name)
		}
	}
}

func TestConfigFlag(t *testing.T) {
	cases := map[string][]string{
		"a.yaml": {"-config", "a.yaml"},
		"b.yaml": {"--preset", "sampler", "--config=b.yaml"},
		"":       {"--", "--config", "c.yaml"},
	}
	for want, args := range cases {
		if got := configFlag(args); got != want {
			t.Fatalf("configFlag(%v): expected %q, got %q", args, want, got)
		}
	}
}
