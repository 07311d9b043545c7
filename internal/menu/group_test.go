package menu

import (
	"reflect"
	"testing"

	"github.com/atomicstack/patchmenu/internal/display"
)

func newLeaf(title string, updates *int) *NumberItem {
	return NewNumber(NumberConfig{
		Title:   title,
		Initial: 0.5,
		Update: func(float64) {
			if updates != nil {
				*updates++
			}
		},
	})
}

func enabledLeaves(n Node) []Node {
	var out []Node
	for _, leaf := range Leaves(n) {
		if leaf.Enabled() {
			out = append(out, leaf)
		}
	}
	return out
}

func TestGroupNavigateNonLoopingBoundaryIsExhausted(t *testing.T) {
	lcd := display.NewLCD(16, 2)
	g := NewGroup("", false, newLeaf("a", nil), newLeaf("b", nil), newLeaf("c", nil))
	g.Enable(lcd, false)
	lcd.Clear()

	if !g.Navigate(-1, lcd, false) {
		t.Fatalf("expected exhausted result at the first child")
	}
	if g.Index() != 0 {
		t.Fatalf("expected index to stay 0, got %d", g.Index())
	}
	if lcd.String() != "                \n                " {
		t.Fatalf("expected no redraw, got %q", lcd.String())
	}
	if !g.Children()[0].Enabled() {
		t.Fatalf("expected first child to remain enabled")
	}
}

func TestGroupNavigateForcedLoopWraps(t *testing.T) {
	lcd := display.NewLCD(16, 2)
	a, b := newLeaf("a", nil), newLeaf("b", nil)
	g := NewGroup("", true, a, b)
	g.Enable(lcd, true)
	if g.Index() != 1 {
		t.Fatalf("expected backwards enable to select the last child, got %d", g.Index())
	}
	if g.Navigate(1, lcd, true) {
		t.Fatalf("expected looping group never to report exhaustion")
	}
	if g.Index() != 0 {
		t.Fatalf("expected index 0 after wrap, got %d", g.Index())
	}
	if !a.Enabled() || b.Enabled() {
		t.Fatalf("expected a enabled and b disabled, got a=%v b=%v", a.Enabled(), b.Enabled())
	}
}

func TestGroupNavigateVisitsLeavesInPreOrder(t *testing.T) {
	lcd := display.NewLCD(16, 2)
	a, b, c, d := newLeaf("a", nil), newLeaf("b", nil), newLeaf("c", nil), newLeaf("d", nil)
	root := NewGroup("", true, a, NewGroup("sub", false, b, c), d)
	root.Enable(lcd, false)

	forward := []*NumberItem{b, c, d, a, b}
	for i, want := range forward {
		root.Navigate(1, lcd, false)
		leaves := enabledLeaves(root)
		if len(leaves) != 1 {
			t.Fatalf("step %d: expected one enabled leaf, got %d", i, len(leaves))
		}
		if leaves[0] != Node(want) {
			t.Fatalf("step %d: expected %s focused, got %s", i, want.Title(), leaves[0].Title())
		}
	}

	backward := []*NumberItem{a, d, c, b, a}
	for i, want := range backward {
		root.Navigate(-1, lcd, false)
		leaves := enabledLeaves(root)
		if len(leaves) != 1 || leaves[0] != Node(want) {
			t.Fatalf("backward step %d: expected %s focused, got %v", i, want.Title(), leaves)
		}
	}
}

func TestGroupForcedNavigationSkipsNestedChildren(t *testing.T) {
	lcd := display.NewLCD(16, 2)
	a, b, c := newLeaf("a", nil), newLeaf("b", nil), newLeaf("c", nil)
	root := NewGroup("", true, NewGroup("one", false, a, b), NewGroup("two", false, c))
	root.Enable(lcd, false)

	root.Navigate(1, lcd, true)
	if leaves := enabledLeaves(root); len(leaves) != 1 || leaves[0] != Node(c) {
		t.Fatalf("expected forced navigation to land on c, got %v", leaves)
	}
	if a.Enabled() || b.Enabled() {
		t.Fatalf("expected the previous group to be fully disabled")
	}
}

func TestGroupExactlyOneFocusPath(t *testing.T) {
	lcd := display.NewLCD(16, 2)
	root := NewOscillator("Osc", nil, OscillatorOptions{Detune: true})
	root.Enable(lcd, false)
	total := len(Leaves(root))
	for i := 0; i < total*2; i++ {
		root.Navigate(1, lcd, false)
		if n := len(enabledLeaves(root)); n != 1 {
			t.Fatalf("step %d: expected exactly one enabled leaf, got %d", i, n)
		}
	}
	for i := 0; i < total; i++ {
		root.Navigate(-1, lcd, i%3 == 0)
		if n := len(enabledLeaves(root)); n != 1 {
			t.Fatalf("backward step %d: expected exactly one enabled leaf, got %d", i, n)
		}
	}
	path := Focus(root.Group)
	if len(path) < 2 {
		t.Fatalf("expected focus path from root to leaf, got %d nodes", len(path))
	}
	if last := path[len(path)-1]; last.Children() != nil {
		t.Fatalf("expected focus path to end at a leaf")
	}
}

func TestGroupSetOfGetIsNoOp(t *testing.T) {
	updates := 0
	count := func(string) Setter { return func(float64) { updates++ } }
	root := NewGroup("root", true,
		newLeaf("a", &updates),
		NewOscillator("Osc", count, OscillatorOptions{Detune: true}),
		NewList("Mode", []string{"High", "Low", "Last"}, count("mode")),
	)
	root.Set(root.Get())
	if updates != 0 {
		t.Fatalf("expected no updates for an unchanged snapshot, got %d", updates)
	}
}

func TestGroupSetIsForgiving(t *testing.T) {
	a, b := newLeaf("a", nil), newLeaf("b", nil)
	inner := newLeaf("c", nil)
	g := NewGroup("", false, a, b, NewGroup("", false, inner))

	g.Set([]any{0.1})
	if a.Value() != 0.1 || b.Value() != 0.5 {
		t.Fatalf("expected partial set to leave the rest untouched, got %v %v", a.Value(), b.Value())
	}
	g.Set([]any{0.2, 0.3, []any{0.4, 9.0}, "extra"})
	if !reflect.DeepEqual(g.Get(), []any{0.2, 0.3, []any{0.4}}) {
		t.Fatalf("unexpected snapshot %#v", g.Get())
	}
	g.Set(0.7)
	g.Set([]any{"bad", nil})
	if a.Value() != 0.2 || b.Value() != 0.3 {
		t.Fatalf("expected malformed data to be ignored, got %v %v", a.Value(), b.Value())
	}
	g.Set([]float64{1, 0})
	if a.Value() != 1 || b.Value() != 0 {
		t.Fatalf("expected float slice to apply, got %v %v", a.Value(), b.Value())
	}
}

func TestGroupEditsDelegateToCurrentChild(t *testing.T) {
	lcd := display.NewLCD(16, 2)
	a, b := newLeaf("a", nil), newLeaf("b", nil)
	g := NewGroup("", false, a, b)
	g.Enable(lcd, false)
	g.Navigate(1, lcd, false)
	if !g.Increment() {
		t.Fatalf("expected increment to change b")
	}
	if a.Value() != 0.5 || b.Value() != 0.6 {
		t.Fatalf("expected only b to move, got a=%v b=%v", a.Value(), b.Value())
	}
	if !g.Reset() || b.Value() != 0.5 {
		t.Fatalf("expected reset of b, got %v", b.Value())
	}
}

func TestGroupLabelPrefixesDirectLeaves(t *testing.T) {
	level := NewNumber(NumberConfig{Title: "Level"})
	keep := NewNumber(NumberConfig{Title: "Mode", Group: "Keys"})
	nested := NewGroup("Inner", false, NewNumber(NumberConfig{Title: "Depth"}))
	NewGroup("Snd", false, level, keep, nested)

	if level.Label() != "Snd:Level" {
		t.Fatalf("expected prefixed label, got %q", level.Label())
	}
	if keep.Label() != "Keys:Mode" {
		t.Fatalf("expected existing prefix kept, got %q", keep.Label())
	}
	if got := nested.Children()[0].Label(); got != "Inner:Depth" {
		t.Fatalf("expected nested group to keep its own prefix, got %q", got)
	}
}

func TestEmptyGroupPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for an empty group")
		}
	}()
	NewGroup("empty", false)
}
