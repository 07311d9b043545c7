package menu

import (
	"github.com/atomicstack/patchmenu/internal/display"
)

// groupHooks let specialized groups replace presentation without touching
// navigation.
type groupHooks struct {
	enable func(d display.Display)
	draw   func(d display.Display)
	cursor func() display.Position
}

// Group is a composite node with an ordered, fixed set of children and one
// current child.
type Group struct {
	label   string
	enabled bool
	items   []Node
	index   int
	loop    bool
	hooks   groupHooks
}

// NewGroup builds a group from at least one child. A non-empty label is
// handed down as the prefix of direct leaf children that have none.
func NewGroup(label string, loop bool, items ...Node) *Group {
	if len(items) == 0 {
		panic("menu: group " + label + " has no items")
	}
	g := &Group{
		label: label,
		items: append([]Node(nil), items...),
		loop:  loop,
	}
	if label != "" {
		for _, item := range g.items {
			if isComposite(item) {
				continue
			}
			if prefixed, ok := item.(interface{ Group() string }); ok && prefixed.Group() != "" {
				continue
			}
			item.SetGroup(label)
		}
	}
	return g
}

func (g *Group) Title() string { return "" }

func (g *Group) Label() string { return g.label }

func (g *Group) SetGroup(group string) { g.label = group }

// Index returns the position of the current child.
func (g *Group) Index() int { return g.index }

// Len returns the number of children.
func (g *Group) Len() int { return len(g.items) }

// Loop reports whether navigation wraps at either end.
func (g *Group) Loop() bool { return g.loop }

// Current returns the focused child.
func (g *Group) Current() Node { return g.items[g.index] }

func (g *Group) Children() []Node { return g.items }

func (g *Group) Get() any {
	out := make([]any, len(g.items))
	for i, item := range g.items {
		out[i] = item.Get()
	}
	return out
}

// Set assigns data positionally. Extra entries are ignored and missing ones
// leave the remaining children untouched.
func (g *Group) Set(value any) {
	var data []any
	switch v := value.(type) {
	case []any:
		data = v
	case []float64:
		data = make([]any, len(v))
		for i, f := range v {
			data[i] = f
		}
	default:
		return
	}
	for i, entry := range data {
		if i >= len(g.items) {
			break
		}
		g.items[i].Set(entry)
	}
}

// Navigate moves focus by step, descending into the current child first
// unless force is set. It returns true when this group is exhausted in the
// direction of travel so the parent can move past it.
func (g *Group) Navigate(step int, d display.Display, force bool) bool {
	current := g.Current()
	composite := isComposite(current)
	if !force && composite && !current.Navigate(step, d, false) {
		return false
	}
	next := g.index + step
	if !g.loop && (next < 0 || next >= len(g.items)) {
		return true
	}
	if force || composite || current.Navigate(step, d, false) {
		current.Disable()
		g.index = wrapIndex(next, len(g.items))
		g.items[g.index].Enable(d, step < 0)
		g.Draw(d)
	}
	return false
}

// Next moves focus forward.
func (g *Group) Next(d display.Display, force bool) bool {
	return g.Navigate(1, d, force)
}

// Previous moves focus backward.
func (g *Group) Previous(d display.Display, force bool) bool {
	return g.Navigate(-1, d, force)
}

func (g *Group) Increment() bool { return g.Current().Increment() }

func (g *Group) Decrement() bool { return g.Current().Decrement() }

func (g *Group) Reset() bool { return g.Current().Reset() }

// Enable focuses the first child, or the last one when entered backwards.
// The group itself writes no title.
func (g *Group) Enable(d display.Display, last bool) {
	g.enabled = true
	g.index = 0
	if last {
		g.index = len(g.items) - 1
	}
	g.Current().Enable(d, last)
	if g.hooks.enable != nil {
		g.hooks.enable(d)
	}
}

func (g *Group) Disable() {
	g.enabled = false
	g.Current().Disable()
}

func (g *Group) Enabled() bool { return g.enabled }

func (g *Group) Draw(d display.Display) {
	if g.hooks.draw != nil {
		g.hooks.draw(d)
		return
	}
	g.Current().Draw(d)
}

func (g *Group) CursorPosition() display.Position {
	if g.hooks.cursor != nil {
		return g.hooks.cursor()
	}
	return g.Current().CursorPosition()
}

// Focus returns the enabled root-to-leaf path starting at g, or nil when g is
// not enabled.
func Focus(n Node) []Node {
	var path []Node
	for n != nil && n.Enabled() {
		path = append(path, n)
		var next Node
		for _, child := range n.Children() {
			if child.Enabled() {
				next = child
				break
			}
		}
		n = next
	}
	return path
}

// Leaves returns every leaf under n in pre-order.
func Leaves(n Node) []Node {
	children := n.Children()
	if len(children) == 0 {
		return []Node{n}
	}
	var out []Node
	for _, child := range children {
		out = append(out, Leaves(child)...)
	}
	return out
}

func wrapIndex(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}
