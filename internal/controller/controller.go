// Package controller owns a menu tree and translates encoder gestures into
// navigation, edits and patch persistence.
package controller

import (
	"errors"
	"fmt"
	"time"

	"github.com/atomicstack/patchmenu/internal/display"
	"github.com/atomicstack/patchmenu/internal/encoder"
	"github.com/atomicstack/patchmenu/internal/logging"
	"github.com/atomicstack/patchmenu/internal/logging/events"
	"github.com/atomicstack/patchmenu/internal/menu"
	"github.com/atomicstack/patchmenu/internal/patch"
)

// DefaultSavePause is how long "Complete!" stays on screen after a save.
const DefaultSavePause = 500 * time.Millisecond

// Splash is shown from construction until Ready.
var Splash = [2]string{"PicoSynthSandbox", "Loading..."}

// Encoder is the part of an encoder the controller needs.
type Encoder interface {
	Bind(encoder.Handlers)
	Unbind()
	Update(now time.Time)
}

// Store persists patch snapshots.
type Store interface {
	Read(name string) (any, error)
	Write(name string, data any) error
}

// Options wires a controller to its adapters. Secondary is optional; when
// set, the two-encoder layout is used.
type Options struct {
	Display   display.Display
	Primary   Encoder
	Secondary Encoder
	Store     Store
	SavePause time.Duration
	Sleep     func(time.Duration)

	// After, when set, runs fn once d has passed instead of sleeping. Hosts
	// that must render between the steps of a save install it.
	After func(d time.Duration, fn func())
}

// Controller is the root of a menu: it owns the tree, the display and the
// encoders, and tracks whether the focused item is being edited.
type Controller struct {
	root      *menu.Group
	display   display.Display
	primary   Encoder
	secondary Encoder
	store     Store
	savePause time.Duration
	sleep     func(time.Duration)
	after     func(time.Duration, func())
	write     func() bool
	selected  bool
	enabled   bool
}

// New builds a controller around root and shows the splash screen.
func New(root *menu.Group, opts Options) *Controller {
	if opts.SavePause <= 0 {
		opts.SavePause = DefaultSavePause
	}
	if opts.Sleep == nil {
		opts.Sleep = time.Sleep
	}
	if opts.Store == nil {
		opts.Store = patch.NewStore("")
	}
	c := &Controller{
		root:      root,
		display:   opts.Display,
		primary:   opts.Primary,
		secondary: opts.Secondary,
		store:     opts.Store,
		savePause: opts.SavePause,
		sleep:     opts.Sleep,
		after:     opts.After,
	}
	d := c.display
	d.Clear()
	d.SetCursorPosition(display.Origin)
	d.SetCursorEnabled(false)
	d.Write(Splash[0], display.Origin, 0, false)
	d.Write(Splash[1], display.ValueOrigin, 0, false)
	return c
}

// Root returns the menu tree.
func (c *Controller) Root() *menu.Group { return c.root }

// Display returns the display adapter.
func (c *Controller) Display() display.Display { return c.display }

// Selected reports whether encoder turns edit the focused value.
func (c *Controller) Selected() bool { return c.selected }

// Enabled reports whether gestures are bound.
func (c *Controller) Enabled() bool { return c.enabled }

// TwoEncoders reports whether the two-encoder layout is active.
func (c *Controller) TwoEncoders() bool { return c.secondary != nil }

// Ready replaces the splash with the first item and starts accepting input.
func (c *Controller) Ready() {
	c.display.Clear()
	c.Enable()
	c.Draw()
}

// Enable binds the encoders and focuses the first item.
func (c *Controller) Enable() {
	if c.secondary == nil {
		c.primary.Bind(encoder.Handlers{
			Increment:   c.Next,
			Decrement:   c.Previous,
			Click:       c.Toggle,
			DoubleClick: c.doubleClick,
			LongPress:   c.Save,
		})
	} else {
		c.primary.Bind(encoder.Handlers{
			Increment:   func() { c.navigate(1, false) },
			Decrement:   func() { c.navigate(-1, false) },
			Click:       c.Toggle,
			DoubleClick: func() { c.navigate(1, true) },
			LongPress:   c.Save,
		})
		c.secondary.Bind(encoder.Handlers{
			Increment:   c.Increment,
			Decrement:   c.Decrement,
			Click:       c.Toggle,
			DoubleClick: c.Reset,
			LongPress:   c.Reset,
		})
	}
	c.root.Enable(c.display, false)
	c.enabled = true
	c.traceFocus()
}

// Disable unbinds the encoders and clears focus.
func (c *Controller) Disable() {
	c.primary.Unbind()
	if c.secondary != nil {
		c.secondary.Unbind()
	}
	c.root.Disable()
	c.enabled = false
}

// Update polls every encoder once.
func (c *Controller) Update(now time.Time) {
	c.primary.Update(now)
	if c.secondary != nil {
		c.secondary.Update(now)
	}
}

// Draw renders the focused item and places the cursor.
func (c *Controller) Draw() {
	c.root.Draw(c.display)
	c.placeCursor()
}

// Toggle switches between navigating and editing.
func (c *Controller) Toggle() {
	c.selected = !c.selected
	c.display.SetCursorEnabled(c.selected)
	c.display.SetCursorBlink(c.selected)
	c.placeCursor()
	events.Menu.Select(c.selected)
}

// Next edits upwards when selected and moves focus forward otherwise.
func (c *Controller) Next() {
	if c.selected {
		c.Increment()
		return
	}
	c.navigate(1, false)
}

// Previous edits downwards when selected and moves focus back otherwise.
func (c *Controller) Previous() {
	if c.selected {
		c.Decrement()
		return
	}
	c.navigate(-1, false)
}

// Increment edits the focused value and redraws on change.
func (c *Controller) Increment() {
	c.edit(c.root.Increment())
}

// Decrement edits the focused value and redraws on change.
func (c *Controller) Decrement() {
	c.edit(c.root.Decrement())
}

// Reset restores the focused value and redraws on change.
func (c *Controller) Reset() {
	changed := c.root.Reset()
	events.Menu.Reset(c.focusLabel(), changed)
	if changed {
		c.Draw()
	}
}

func (c *Controller) doubleClick() {
	if c.selected {
		c.Reset()
		return
	}
	c.navigate(1, true)
}

func (c *Controller) edit(changed bool) {
	events.Menu.Edit(c.focusLabel(), c.focusValue(), changed)
	if changed {
		c.Draw()
	}
}

func (c *Controller) navigate(step int, force bool) {
	c.root.Navigate(step, c.display, force)
	c.placeCursor()
	events.Menu.Navigate(step, force, c.focusLabel())
}

// Save writes the current patch through the write hook, or Write with the
// default name, showing progress on the display. Input stays unbound until
// the completion message has been shown for the save pause.
func (c *Controller) Save() {
	c.Disable()
	c.display.Clear()
	c.display.Write("Saving...", display.Origin, 0, false)
	c.schedule(0, c.persist)
}

func (c *Controller) persist() {
	if c.write != nil {
		c.write()
	} else {
		c.Write("")
	}
	c.display.Write("Complete!", display.Origin, 0, false)
	c.schedule(c.savePause, c.finishSave)
}

func (c *Controller) finishSave() {
	c.display.Clear()
	c.Enable()
	c.Draw()
}

// SetAfter installs the deferred-step runner described on Options.After.
func (c *Controller) SetAfter(after func(time.Duration, func())) { c.after = after }

func (c *Controller) schedule(d time.Duration, fn func()) {
	if c.after != nil {
		c.after(d, fn)
		return
	}
	if d > 0 {
		c.sleep(d)
	}
	fn()
}

// SetWrite replaces the save action used by Save. Nil restores the default.
func (c *Controller) SetWrite(write func() bool) { c.write = write }

// Write stores the tree snapshot as name, or as the root label when name is
// empty. Failures are logged and reported as false.
func (c *Controller) Write(name string) bool {
	if name == "" {
		name = c.root.Label()
	}
	if name == "" {
		return false
	}
	data := c.root.Get()
	if list, ok := data.([]any); !ok || len(list) == 0 {
		return false
	}
	if err := c.store.Write(name, data); err != nil {
		events.Patch.Failed(name, err)
		logging.Error(fmt.Errorf("write patch: %w", err))
		return false
	}
	return true
}

// Read loads name, or the root label when name is empty, into the tree.
// Missing or unusable patches are logged and reported as false.
func (c *Controller) Read(name string) bool {
	if name == "" {
		name = c.root.Label()
	}
	if name == "" {
		return false
	}
	data, err := c.store.Read(name)
	switch {
	case errors.Is(err, patch.ErrMissing):
		events.Patch.Fallback(name, events.PatchReasonMissing)
		return false
	case errors.Is(err, patch.ErrEmpty):
		events.Patch.Fallback(name, events.PatchReasonEmpty)
		return false
	case errors.Is(err, patch.ErrShape):
		events.Patch.Fallback(name, events.PatchReasonInvalid)
		return false
	case err != nil:
		events.Patch.Fallback(name, events.PatchReasonInvalid)
		logging.Error(fmt.Errorf("read patch: %w", err))
		return false
	}
	if list, ok := data.([]any); !ok || len(list) == 0 {
		events.Patch.Fallback(name, events.PatchReasonInvalid)
		return false
	}
	c.root.Set(data)
	return true
}

// ReadOrDefault reads name and applies fallback when that fails.
func (c *Controller) ReadOrDefault(name string, fallback any) bool {
	if c.Read(name) {
		return true
	}
	c.root.Set(fallback)
	return false
}

// Focus returns the labels along the focused path, root first.
func (c *Controller) Focus() []string {
	path := menu.Focus(c.root)
	labels := make([]string, len(path))
	for i, n := range path {
		labels[i] = n.Label()
	}
	return labels
}

// Leaf returns the focused leaf, or nil when disabled.
func (c *Controller) Leaf() menu.Node {
	path := menu.Focus(c.root)
	if len(path) == 0 {
		return nil
	}
	return path[len(path)-1]
}

func (c *Controller) placeCursor() {
	if !c.selected {
		c.display.SetCursorPosition(display.Origin)
		return
	}
	c.display.SetCursorPosition(c.root.CursorPosition())
}

func (c *Controller) focusLabel() string {
	if leaf := c.Leaf(); leaf != nil {
		return leaf.Label()
	}
	return ""
}

func (c *Controller) focusValue() any {
	if leaf := c.Leaf(); leaf != nil {
		return leaf.Get()
	}
	return nil
}

func (c *Controller) traceFocus() {
	events.Menu.Focus(c.Focus())
}
