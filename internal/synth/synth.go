// Package synth is the parameter sink behind the menu. It remembers every
// accepted parameter value and can forward it to an external synthesizer as
// MIDI control changes.
package synth

import (
	"fmt"
	"math"
	"sort"

	"gitlab.com/gomidi/midi/v2"

	"github.com/atomicstack/patchmenu/internal/display"
	"github.com/atomicstack/patchmenu/internal/logging"
	"github.com/atomicstack/patchmenu/internal/logging/events"
	"github.com/atomicstack/patchmenu/internal/menu"
)

// Global addresses parameters that belong to the instrument rather than a
// voice. They are sent on the base channel.
const Global = -1

// Param describes how a named parameter maps to a controller number.
type Param struct {
	Name    string
	CC      uint8
	Minimum float64
	Maximum float64
}

// Scale converts v to a 7-bit controller value.
func (p Param) Scale(v float64) uint8 {
	return uint8(math.Round(display.Unmap(v, p.Minimum, p.Maximum) * 127))
}

// DefaultParams covers every parameter the bundled presets bind.
var DefaultParams = []Param{
	{"level", 7, 0, 1},
	{"pan", 10, -1, 1},
	{"velocity", 102, 0, 1},
	{"filter_type", 103, 0, 2},
	{"filter_frequency", 74, 0, 1},
	{"filter_resonance", 71, 0, 1},
	{"glide", 5, 0, 1},
	{"pitch_bend", 104, -1, 1},
	{"coarse_tune", 105, -2, 2},
	{"fine_tune", 106, -1.0 / 12, 1.0 / 12},
	{"detune", 94, -0.25, 0.25},
	{"waveform", 70, 0, 5},
	{"tremolo_rate", 107, 0, 4},
	{"tremolo_depth", 92, 0, 0.5},
	{"vibrato_rate", 76, 0, 4},
	{"vibrato_depth", 77, 0, 0.5},
	{"pan_rate", 108, 0, 4},
	{"pan_depth", 109, 0, 1},
	{"attack_time", 73, 0, 2},
	{"attack_level", 110, 0, 1},
	{"decay_time", 75, 0, 2},
	{"sustain_level", 111, 0, 1},
	{"release_time", 72, 0, 2},
	{"filter_lfo_rate", 112, 0, 4},
	{"filter_lfo_depth", 113, 0, 0.5},
	{"filter_env_attack", 114, 0, 2},
	{"filter_env_release", 115, 0, 2},
	{"filter_env_amount", 116, 0, 1},
	{"mode", 117, 0, 2},
	{"sample", 118, 0, 127},
}

// Sender delivers a MIDI message, typically the function returned by
// midi.SendTo.
type Sender func(msg midi.Message) error

// Value is one recorded parameter.
type Value struct {
	Voice int
	Name  string
	Value float64
}

type key struct {
	voice int
	name  string
}

// Engine records parameter values for a fixed number of voices.
type Engine struct {
	voices  int
	channel uint8
	params  map[string]Param
	order   map[string]int
	values  map[key]float64
	send    Sender
}

// Options configures an Engine.
type Options struct {
	Voices  int
	Channel uint8
	Params  []Param
	Send    Sender
}

// New returns an engine. Zero voices means one, nil Params means
// DefaultParams.
func New(opts Options) *Engine {
	if opts.Voices <= 0 {
		opts.Voices = 1
	}
	if opts.Params == nil {
		opts.Params = DefaultParams
	}
	e := &Engine{
		voices:  opts.Voices,
		channel: opts.Channel % 16,
		params:  make(map[string]Param, len(opts.Params)),
		order:   make(map[string]int, len(opts.Params)),
		values:  make(map[key]float64),
		send:    opts.Send,
	}
	for i, p := range opts.Params {
		e.params[p.Name] = p
		e.order[p.Name] = i
	}
	return e
}

// Voices returns the number of voices.
func (e *Engine) Voices() int { return e.voices }

// Channel returns the base MIDI channel (0-15).
func (e *Engine) Channel() uint8 { return e.channel }

// SetChannel moves every voice to a new base channel.
func (e *Engine) SetChannel(ch uint8) { e.channel = ch % 16 }

// SetSender attaches or detaches the MIDI output.
func (e *Engine) SetSender(send Sender) { e.send = send }

// Setter returns the callback applying name on voice.
func (e *Engine) Setter(voice int, name string) menu.Setter {
	return func(v float64) { e.Apply(voice, name, v) }
}

// Setters returns one setter per voice for name.
func (e *Engine) Setters(name string) []menu.Setter {
	out := make([]menu.Setter, e.voices)
	for i := range out {
		out[i] = e.Setter(i, name)
	}
	return out
}

// Apply records v and forwards it when the parameter has a controller
// number and a sender is attached. Send failures are logged only.
func (e *Engine) Apply(voice int, name string, v float64) {
	e.values[key{voice, name}] = v
	events.Synth.Param(voice, name, v)
	p, ok := e.params[name]
	if !ok || e.send == nil {
		return
	}
	ch := e.channel
	if voice > 0 {
		ch = uint8((int(e.channel) + voice) % 16)
	}
	if err := e.send(midi.ControlChange(ch, p.CC, p.Scale(v))); err != nil {
		events.Synth.SendFailed(voice, name, err)
		logging.Error(fmt.Errorf("send %s to voice %d: %w", name, voice, err))
	}
}

// Value returns the last value recorded for name on voice.
func (e *Engine) Value(voice int, name string) (float64, bool) {
	v, ok := e.values[key{voice, name}]
	return v, ok
}

// Snapshot lists every recorded value ordered by voice, then by the
// parameter table, then by name for unknown parameters.
func (e *Engine) Snapshot() []Value {
	out := make([]Value, 0, len(e.values))
	for k, v := range e.values {
		out = append(out, Value{Voice: k.voice, Name: k.name, Value: v})
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Voice != b.Voice {
			return a.Voice < b.Voice
		}
		ai, aok := e.order[a.Name]
		bi, bok := e.order[b.Name]
		switch {
		case aok && bok && ai != bi:
			return ai < bi
		case aok != bok:
			return aok
		}
		return a.Name < b.Name
	})
	return out
}
