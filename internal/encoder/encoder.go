// Package encoder turns raw rotary encoder input (detents and button edges)
// into the gestures the menu controller understands.
package encoder

import (
	"time"

	"github.com/atomicstack/patchmenu/internal/logging/events"
)

const (
	DefaultDoubleClick = 300 * time.Millisecond
	DefaultLongPress   = time.Second
)

// Gesture is a decoded encoder event.
type Gesture int

const (
	GestureIncrement Gesture = iota
	GestureDecrement
	GestureClick
	GestureDoubleClick
	GestureLongPress
)

func (g Gesture) String() string {
	switch g {
	case GestureIncrement:
		return "increment"
	case GestureDecrement:
		return "decrement"
	case GestureClick:
		return "click"
	case GestureDoubleClick:
		return "double-click"
	case GestureLongPress:
		return "long-press"
	default:
		return "unknown"
	}
}

// Handlers receive decoded gestures. Nil handlers are skipped.
type Handlers struct {
	Increment   func()
	Decrement   func()
	Click       func()
	DoubleClick func()
	LongPress   func()
}

func (h Handlers) fn(g Gesture) func() {
	switch g {
	case GestureIncrement:
		return h.Increment
	case GestureDecrement:
		return h.Decrement
	case GestureClick:
		return h.Click
	case GestureDoubleClick:
		return h.DoubleClick
	case GestureLongPress:
		return h.LongPress
	}
	return nil
}

// Timing configures gesture windows. Zero values use the defaults.
type Timing struct {
	DoubleClick time.Duration
	LongPress   time.Duration
}

func (t Timing) withDefaults() Timing {
	if t.DoubleClick <= 0 {
		t.DoubleClick = DefaultDoubleClick
	}
	if t.LongPress <= 0 {
		t.LongPress = DefaultLongPress
	}
	return t
}

// Encoder accumulates raw input between polls and dispatches gestures from
// Update. It is not safe for concurrent use; feed it from the poll loop.
type Encoder struct {
	name     string
	timing   Timing
	handlers Handlers

	detents    int
	pressed    bool
	pressedAt  time.Time
	longFired  bool
	clickArmed bool
	releasedAt time.Time
	queued     []Gesture
}

// New returns an encoder identified by name in trace output.
func New(name string, timing Timing) *Encoder {
	return &Encoder{name: name, timing: timing.withDefaults()}
}

// Name returns the encoder's trace name.
func (e *Encoder) Name() string { return e.name }

// Timing returns the effective gesture windows.
func (e *Encoder) Timing() Timing { return e.timing }

// Bind replaces all handlers.
func (e *Encoder) Bind(h Handlers) { e.handlers = h }

// Unbind drops all handlers. Raw input keeps accumulating.
func (e *Encoder) Unbind() { e.handlers = Handlers{} }

// Rotate records detents; positive values turn clockwise.
func (e *Encoder) Rotate(steps int) { e.detents += steps }

// Pressed reports whether the button is currently held.
func (e *Encoder) Pressed() bool { return e.pressed }

// Press records the button going down.
func (e *Encoder) Press(now time.Time) {
	if e.pressed {
		return
	}
	e.flushClick(now)
	e.pressed = true
	e.pressedAt = now
	e.longFired = false
}

// Release records the button going up and classifies the press.
func (e *Encoder) Release(now time.Time) {
	if !e.pressed {
		return
	}
	e.pressed = false
	e.flushClick(now)
	if e.longFired {
		e.longFired = false
		return
	}
	if now.Sub(e.pressedAt) >= e.timing.LongPress {
		e.clickArmed = false
		e.queued = append(e.queued, GestureLongPress)
		return
	}
	if e.clickArmed && now.Sub(e.releasedAt) <= e.timing.DoubleClick {
		e.clickArmed = false
		e.queued = append(e.queued, GestureDoubleClick)
		return
	}
	e.clickArmed = true
	e.releasedAt = now
}

// flushClick queues an armed click whose double-click window has passed
// without an Update in between.
func (e *Encoder) flushClick(now time.Time) {
	if e.clickArmed && now.Sub(e.releasedAt) > e.timing.DoubleClick {
		e.clickArmed = false
		e.queued = append(e.queued, GestureClick)
	}
}

// Update dispatches every gesture that is due at now.
func (e *Encoder) Update(now time.Time) {
	for e.detents > 0 {
		e.detents--
		e.fire(GestureIncrement)
	}
	for e.detents < 0 {
		e.detents++
		e.fire(GestureDecrement)
	}
	if e.pressed && !e.longFired && now.Sub(e.pressedAt) >= e.timing.LongPress {
		e.longFired = true
		e.clickArmed = false
		e.fire(GestureLongPress)
	}
	queued := e.queued
	e.queued = nil
	for _, g := range queued {
		e.fire(g)
	}
	if e.clickArmed && !e.pressed && now.Sub(e.releasedAt) > e.timing.DoubleClick {
		e.clickArmed = false
		e.fire(GestureClick)
	}
}

func (e *Encoder) fire(g Gesture) {
	events.Encoder.Gesture(e.name, g.String())
	if fn := e.handlers.fn(g); fn != nil {
		fn()
	}
}
