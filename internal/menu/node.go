package menu

import (
	"math"
	"strconv"

	"github.com/atomicstack/patchmenu/internal/display"
)

// Node is the contract shared by leaf items and groups. Composite nodes report
// their children; leaves return nil.
type Node interface {
	Title() string
	// Label is the title prefixed with the owning group, as shown on the
	// title row.
	Label() string
	SetGroup(group string)

	// Get returns the node's value: a float64 for value-bearing leaves, nil
	// for label-only leaves and a []any mirroring the subtree for groups.
	Get() any
	// Set assigns a value produced by Get (or decoded from a patch file).
	// Values of the wrong shape are ignored.
	Set(value any)

	// Navigate moves focus by step. It returns true when the node has no
	// further place to move in that direction and the caller should move on.
	Navigate(step int, d display.Display, force bool) bool
	Increment() bool
	Decrement() bool
	Reset() bool

	Enable(d display.Display, last bool)
	Disable()
	Enabled() bool

	Draw(d display.Display)
	CursorPosition() display.Position

	Children() []Node
}

// Setter receives a parameter value whenever an edit is accepted.
type Setter func(value float64)

// Binder resolves a parameter name to the setter that applies it.
type Binder func(param string) Setter

// Bind resolves param, tolerating a nil binder.
func (b Binder) Bind(param string) Setter {
	if b == nil {
		return nil
	}
	return b(param)
}

// Prefix returns a binder that resolves names with prefix prepended.
func (b Binder) Prefix(prefix string) Binder {
	if b == nil {
		return nil
	}
	return func(param string) Setter {
		return b(prefix + param)
	}
}

func isComposite(n Node) bool {
	return len(n.Children()) > 0
}

// toFloat converts the numeric shapes that reach Set (Go literals or values
// decoded by encoding/json) to float64.
func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, !math.IsNaN(v)
	case float32:
		return float64(v), !math.IsNaN(float64(v))
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case int32:
		return float64(v), true
	case uint8:
		return float64(v), true
	case bool:
		if v {
			return 1, true
		}
		return 0, true
	case interface{ Float64() (float64, error) }:
		f, err := v.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

// formatValue renders a number for the value row: integers without a
// fraction, everything else with up to three decimals.
func formatValue(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e9 {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(math.Round(v*1000)/1000, 'f', -1, 64)
}

// formatSigned is formatValue with an explicit sign for bipolar values.
func formatSigned(v float64) string {
	s := formatValue(v)
	if v > 0 {
		return "+" + s
	}
	return s
}
