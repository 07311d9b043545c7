// Package midi lets a MIDI controller stand in for the encoders: endless
// knobs sending relative control changes rotate, buttons press and release,
// and program changes select patches.
package midi

import (
	"sync"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"

	"github.com/atomicstack/patchmenu/internal/logging/events"
)

// Omni accepts messages on every channel.
const Omni = -1

// Target receives raw encoder input. *encoder.Encoder satisfies it.
type Target interface {
	Rotate(steps int)
	Press(now time.Time)
	Release(now time.Time)
}

// Mapping assigns controller numbers and notes to the two encoders. A zero
// number disables that binding.
type Mapping struct {
	Channel         int
	PrimaryKnob     uint8
	SecondaryKnob   uint8
	PrimaryButton   uint8
	SecondaryButton uint8
	PrimaryNote     uint8
	SecondaryNote   uint8
}

// DefaultMapping uses undefined controller numbers common on endless knob
// controllers and the two lowest C notes for the buttons.
var DefaultMapping = Mapping{
	Channel:         Omni,
	PrimaryKnob:     20,
	SecondaryKnob:   21,
	PrimaryButton:   22,
	SecondaryButton: 23,
	PrimaryNote:     24,
	SecondaryNote:   36,
}

const maxQueued = 256

// Bridge queues messages from the driver goroutine and applies them to the
// encoders when the poll loop calls Drain.
type Bridge struct {
	mapping   Mapping
	primary   Target
	secondary Target
	program   func(program uint8)

	mu      sync.Mutex
	queue   []gomidi.Message
	dropped int
}

// NewBridge creates a bridge. secondary may be nil.
func NewBridge(mapping Mapping, primary, secondary Target) *Bridge {
	return &Bridge{mapping: mapping, primary: primary, secondary: secondary}
}

// OnProgramChange registers the program change callback.
func (b *Bridge) OnProgramChange(fn func(program uint8)) { b.program = fn }

// Receive is the driver callback. It only queues the message.
func (b *Bridge) Receive(msg gomidi.Message, _ int32) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.queue) >= maxQueued {
		b.dropped++
		return
	}
	b.queue = append(b.queue, append(gomidi.Message(nil), msg...))
}

// Dropped returns how many messages were discarded because the queue was
// full.
func (b *Bridge) Dropped() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.dropped
}

// Drain applies every queued message and returns how many were handled.
func (b *Bridge) Drain(now time.Time) int {
	b.mu.Lock()
	queued := b.queue
	b.queue = nil
	b.mu.Unlock()
	for _, msg := range queued {
		b.apply(msg, now)
	}
	return len(queued)
}

func (b *Bridge) apply(msg gomidi.Message, now time.Time) {
	events.MIDI.Message(msg.String())
	var channel, key, value uint8
	switch {
	case msg.GetControlChange(&channel, &key, &value):
		if !b.accepts(channel) {
			return
		}
		b.controlChange(key, value, now)
	case msg.GetNoteStart(&channel, &key, &value):
		if b.accepts(channel) {
			b.button(b.noteTarget(key), true, now)
		}
	case msg.GetNoteEnd(&channel, &key):
		if b.accepts(channel) {
			b.button(b.noteTarget(key), false, now)
		}
	case msg.GetProgramChange(&channel, &value):
		if b.accepts(channel) && b.program != nil {
			b.program(value)
		}
	}
}

func (b *Bridge) accepts(channel uint8) bool {
	return b.mapping.Channel == Omni || int(channel) == b.mapping.Channel
}

func (b *Bridge) controlChange(cc, value uint8, now time.Time) {
	m := b.mapping
	switch {
	case cc == 0:
	case cc == m.PrimaryKnob:
		rotate(b.primary, Relative(value))
	case cc == m.SecondaryKnob:
		rotate(b.secondary, Relative(value))
	case cc == m.PrimaryButton:
		b.button(b.primary, value >= 64, now)
	case cc == m.SecondaryButton:
		b.button(b.secondary, value >= 64, now)
	}
}

func (b *Bridge) noteTarget(note uint8) Target {
	switch {
	case note == 0:
		return nil
	case note == b.mapping.PrimaryNote:
		return b.primary
	case note == b.mapping.SecondaryNote:
		return b.secondary
	}
	return nil
}

func (b *Bridge) button(t Target, down bool, now time.Time) {
	if t == nil {
		return
	}
	if down {
		t.Press(now)
		return
	}
	t.Release(now)
}

func rotate(t Target, steps int) {
	if t != nil && steps != 0 {
		t.Rotate(steps)
	}
}

// Relative decodes a two's complement style relative controller value:
// 1..63 turn up, 65..127 turn down, 0 and 64 do nothing.
func Relative(value uint8) int {
	switch {
	case value == 0 || value == 64:
		return 0
	case value < 64:
		return int(value)
	default:
		return int(value) - 128
	}
}
