package menu

import (
	"github.com/atomicstack/patchmenu/internal/display"
)

// Item is a value-less leaf. It only shows a title and serves as the base
// for value-bearing items.
type Item struct {
	title   string
	group   string
	enabled bool
}

// NewItem creates a label-only leaf.
func NewItem(title, group string) *Item {
	return &Item{title: title, group: group}
}

func (i *Item) Title() string { return i.title }

func (i *Item) Label() string {
	label := i.group
	if label != "" && i.title != "" {
		label += ":"
	}
	return label + i.title
}

// Group returns the prefix label.
func (i *Item) Group() string { return i.group }

func (i *Item) SetGroup(group string) { i.group = group }

func (i *Item) Get() any { return nil }

func (i *Item) Set(any) {}

// Navigate always reports true: a plain leaf never owns navigation.
func (i *Item) Navigate(int, display.Display, bool) bool { return true }

func (i *Item) Increment() bool { return false }

func (i *Item) Decrement() bool { return false }

func (i *Item) Reset() bool { return false }

// Enable marks the item focused and writes its label to the title row.
func (i *Item) Enable(d display.Display, _ bool) {
	i.enabled = true
	if label := i.Label(); label != "" && d != nil {
		d.Write(label, display.Origin, 0, false)
	}
}

func (i *Item) Disable() { i.enabled = false }

func (i *Item) Enabled() bool { return i.enabled }

func (i *Item) Draw(display.Display) {}

func (i *Item) CursorPosition() display.Position { return display.ValueOrigin }

func (i *Item) Children() []Node { return nil }

// NumberConfig describes a numeric item. A zero Step defaults to 0.1 and a
// zero range defaults to [0, 1].
type NumberConfig struct {
	Title   string
	Group   string
	Step    float64
	Initial float64
	Minimum float64
	Maximum float64
	Loop    bool
	Update  Setter
}

func (c NumberConfig) withDefaults(step float64) NumberConfig {
	if c.Step == 0 {
		c.Step = step
	}
	if c.Minimum == 0 && c.Maximum == 0 {
		c.Maximum = 1
	}
	if c.Maximum < c.Minimum {
		c.Minimum, c.Maximum = c.Maximum, c.Minimum
	}
	c.Initial = display.Clamp(c.Initial, c.Minimum, c.Maximum)
	return c
}

// NumberItem is a leaf holding one scalar parameter.
type NumberItem struct {
	Item
	value   float64
	initial float64
	minimum float64
	maximum float64
	step    float64
	loop    bool
	update  Setter
}

// NewNumber creates a numeric item.
func NewNumber(cfg NumberConfig) *NumberItem {
	cfg = cfg.withDefaults(0.1)
	return &NumberItem{
		Item:    Item{title: cfg.Title, group: cfg.Group},
		value:   cfg.Initial,
		initial: cfg.Initial,
		minimum: cfg.Minimum,
		maximum: cfg.Maximum,
		step:    cfg.Step,
		loop:    cfg.Loop,
		update:  cfg.Update,
	}
}

func (n *NumberItem) Get() any { return n.value }

// Value returns the current value as a float64.
func (n *NumberItem) Value() float64 { return n.value }

// Relative returns the value rescaled to [0, 1].
func (n *NumberItem) Relative() float64 {
	return display.Unmap(n.value, n.minimum, n.maximum)
}

// Bounds returns the minimum and maximum.
func (n *NumberItem) Bounds() (float64, float64) { return n.minimum, n.maximum }

// Initial returns the reset value.
func (n *NumberItem) Initial() float64 { return n.initial }

// Step returns the increment size.
func (n *NumberItem) Step() float64 { return n.step }

func (n *NumberItem) Set(value any) {
	v, ok := toFloat(value)
	if !ok {
		return
	}
	n.SetValue(v)
}

// SetValue clamps v into range and applies it when it differs from the
// current value. It reports whether the value changed.
func (n *NumberItem) SetValue(v float64) bool {
	v = display.Clamp(v, n.minimum, n.maximum)
	if v == n.value {
		return false
	}
	n.value = v
	n.notify()
	return true
}

func (n *NumberItem) Increment() bool {
	if n.value >= n.maximum {
		if !n.loop || n.minimum == n.maximum {
			return false
		}
		n.value = n.minimum
		n.notify()
		return true
	}
	n.value = min(n.value+n.step, n.maximum)
	n.notify()
	return true
}

func (n *NumberItem) Decrement() bool {
	if n.value <= n.minimum {
		if !n.loop || n.minimum == n.maximum {
			return false
		}
		n.value = n.maximum
		n.notify()
		return true
	}
	n.value = max(n.value-n.step, n.minimum)
	n.notify()
	return true
}

func (n *NumberItem) Reset() bool {
	if n.value == n.initial {
		return false
	}
	n.value = n.initial
	n.notify()
	return true
}

func (n *NumberItem) Draw(d display.Display) {
	d.Write(formatValue(n.value), display.ValueOrigin, 0, false)
}

// SetUpdate replaces the update callback.
func (n *NumberItem) SetUpdate(update Setter) { n.update = update }

func (n *NumberItem) notify() {
	if n.update != nil {
		n.update(n.value)
	}
}
