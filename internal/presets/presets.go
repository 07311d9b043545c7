// Package presets builds the bundled menu trees and binds them to a synth
// engine.
package presets

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/atomicstack/patchmenu/internal/controller"
	"github.com/atomicstack/patchmenu/internal/menu"
	"github.com/atomicstack/patchmenu/internal/synth"
)

// Names lists the available presets.
var Names = []string{"monophonic", "polyphonic", "sampler"}

// Options configures preset construction.
type Options struct {
	// SampleDir is scanned for *.wav files by the sampler preset.
	SampleDir string
	// Slots is the highest patch slot of the polyphonic preset.
	Slots int
}

// Preset is a menu tree plus the hooks that connect it to a controller.
type Preset struct {
	Root    *menu.Group
	Default any
	attach  func(c *controller.Controller)
	program func(program uint8)
}

// Name returns the root label, which is also the default patch name.
func (p *Preset) Name() string { return p.Root.Label() }

// Attach installs preset specific hooks on c and loads the initial patch.
func (p *Preset) Attach(c *controller.Controller) {
	if p.attach != nil {
		p.attach(c)
		return
	}
	c.ReadOrDefault("", p.Default)
}

// ProgramChange selects a patch slot when the preset supports it.
func (p *Preset) ProgramChange(program uint8) {
	if p.program != nil {
		p.program(program)
	}
}

// DefaultVoices returns the voice count each preset is designed around.
func DefaultVoices(name string) int {
	switch name {
	case "polyphonic":
		return 4
	case "sampler":
		return 12
	default:
		return 2
	}
}

// ByName builds the named preset.
func ByName(name string, engine *synth.Engine, opts Options) (*Preset, error) {
	switch name {
	case "monophonic":
		return Monophonic(engine), nil
	case "polyphonic":
		return Polyphonic(engine, opts.Slots), nil
	case "sampler":
		return Sampler(engine, opts.SampleDir)
	default:
		return nil, fmt.Errorf("unknown preset %q (want one of %s)", name, strings.Join(Names, ", "))
	}
}

// GlobalBinder resolves names to instrument wide setters.
func GlobalBinder(engine *synth.Engine) menu.Binder {
	return func(name string) menu.Setter {
		return engine.Setter(synth.Global, name)
	}
}

// VoiceBinder resolves names to a single voice.
func VoiceBinder(engine *synth.Engine, voice int) menu.Binder {
	return func(name string) menu.Setter {
		return engine.Setter(voice, name)
	}
}

// AllVoicesBinder fans every value out to all voices. Detune is spread
// symmetrically instead so the voices beat against each other.
func AllVoicesBinder(engine *synth.Engine) menu.Binder {
	return func(name string) menu.Setter {
		setters := engine.Setters(name)
		if name == "detune" {
			return menu.Spread(setters...)
		}
		return menu.Fanout(setters...)
	}
}

func finish(root *menu.Group) *Preset {
	return &Preset{Root: root, Default: root.Get()}
}

// Monophonic is two independently edited oscillators played together.
func Monophonic(engine *synth.Engine) *Preset {
	global := GlobalBinder(engine)
	second := 1
	if engine.Voices() < 2 {
		second = 0
	}
	root := menu.NewGroup("monophonic", true,
		menu.NewMix("Snd", 1, global),
		menu.NewGroup("Keys", false,
			menu.NewList("Mode", []string{"High", "Low", "Last"}, global.Bind("mode")),
		),
		menu.NewOscillator("Osc1", VoiceBinder(engine, 0), menu.OscillatorOptions{}),
		menu.NewOscillator("Osc2", VoiceBinder(engine, second), menu.OscillatorOptions{}),
	)
	return finish(root)
}

// midiGroup edits the receive channel and thru flag.
func midiGroup(engine *synth.Engine, global menu.Binder) *menu.Group {
	return menu.NewGroup("MIDI", false,
		menu.NewNumber(menu.NumberConfig{
			Title:   "Channel",
			Step:    1,
			Maximum: 15,
			Initial: float64(engine.Channel()),
			Update:  func(v float64) { engine.SetChannel(uint8(v)) },
		}),
		menu.NewNumber(menu.NumberConfig{Title: "Thru", Step: 1, Maximum: 1, Update: global.Bind("thru")}),
	)
}

// Polyphonic plays every voice with one shared oscillator layout and keeps
// numbered patch slots.
func Polyphonic(engine *synth.Engine, slots int) *Preset {
	if slots <= 0 {
		slots = DefaultSlots
	}
	global := GlobalBinder(engine)
	slot := NewPatchItem(slots)
	root := menu.NewGroup("polyphonic", true,
		slot,
		midiGroup(engine, global),
		menu.NewOscillator("Osc", AllVoicesBinder(engine), menu.OscillatorOptions{Detune: true}),
	)
	p := finish(root)
	p.attach = func(c *controller.Controller) {
		read := func(float64) {
			c.ReadOrDefault(slot.Name(), p.Default)
			if c.Enabled() {
				c.Draw()
			}
		}
		slot.SetUpdate(read)
		c.SetWrite(func() bool { return c.Write(slot.Name()) })
		read(slot.Value())
	}
	p.program = func(program uint8) {
		slot.SetForced(float64(program))
	}
	return p
}

// Sampler picks a sample file and shapes it with the oscillator layout.
func Sampler(engine *synth.Engine, dir string) (*Preset, error) {
	samples, err := ListSamples(dir)
	if err != nil {
		return nil, err
	}
	if len(samples) == 0 {
		samples = []string{"(none)"}
	}
	global := GlobalBinder(engine)
	root := menu.NewGroup("sampler", true,
		midiGroup(engine, global),
		menu.NewBar(menu.NumberConfig{Title: "Level", Initial: 1, Update: global.Bind("level")}),
		menu.NewList("Sample", samples, global.Bind("sample")),
		menu.NewOscillator("Osc", AllVoicesBinder(engine), menu.OscillatorOptions{}),
	)
	return finish(root), nil
}

// ListSamples returns the *.wav file names in dir, sorted. A missing or empty
// dir yields no names.
func ListSamples(dir string) ([]string, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("list samples: %w", err)
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".wav") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}
