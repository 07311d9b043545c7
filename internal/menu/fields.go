package menu

import (
	"math"
	"strconv"

	"github.com/atomicstack/patchmenu/internal/display"
)

// field is one labelled value on a shared value row.
type field struct {
	node   Node
	col    int
	length int
	cursor int
	text   func() string
}

// fieldGroup renders every child on the value row at once and points the
// cursor at the field belonging to the focused child.
func fieldGroup(label string, fields ...field) *Group {
	items := make([]Node, len(fields))
	for i, f := range fields {
		items[i] = f.node
	}
	g := NewGroup(label, false, items...)
	g.hooks = groupHooks{
		draw: func(d display.Display) {
			for _, f := range fields {
				d.Write(f.text(), display.Position{Col: f.col, Row: 1}, f.length, false)
			}
		},
		cursor: func() display.Position {
			current := g.Current()
			for _, f := range fields {
				if f.node == current {
					return display.Position{Col: f.cursor, Row: 1}
				}
			}
			return display.ValueOrigin
		},
	}
	return g
}

func prefixed(prefix string, n *NumberItem) func() string {
	return func() string { return prefix + formatValue(n.Value()) }
}

// LFO holds initial modulation settings.
type LFO struct {
	Rate      float64
	RateMax   float64
	Depth     float64
	DepthMax  float64
	DepthStep float64
}

// LFOGroup edits a rate/depth pair shown as "R:<rate> D:<depth>".
type LFOGroup struct {
	*Group
	Rate  *NumberItem
	Depth *NumberItem
}

// NewLFO binds "rate" and "depth" through bind.
func NewLFO(label string, initial LFO, bind Binder) *LFOGroup {
	if initial.RateMax == 0 {
		initial.RateMax = 4
	}
	if initial.DepthMax == 0 {
		initial.DepthMax = 0.5
	}
	if initial.DepthStep == 0 {
		initial.DepthStep = 1.0 / 64
	}
	l := &LFOGroup{
		Rate:  NewNumber(NumberConfig{Title: "Rate", Initial: initial.Rate, Maximum: initial.RateMax, Update: bind.Bind("rate")}),
		Depth: NewNumber(NumberConfig{Title: "Depth", Step: initial.DepthStep, Initial: initial.Depth, Maximum: initial.DepthMax, Update: bind.Bind("depth")}),
	}
	l.Group = fieldGroup(label,
		field{node: l.Rate, col: 0, length: 8, cursor: 2, text: prefixed("R:", l.Rate)},
		field{node: l.Depth, col: 8, length: 8, cursor: 10, text: prefixed("D:", l.Depth)},
	)
	return l
}

// FilterTypes are the selectable filter responses.
var FilterTypes = []string{"LP", "HP", "BP"}

// FilterGroup edits type, cutoff and resonance shown as "LP F:1 R:0".
type FilterGroup struct {
	*Group
	Type      *ListItem
	Frequency *NumberItem
	Resonance *NumberItem
}

// NewFilter binds "type", "frequency" and "resonance" through bind.
func NewFilter(label string, bind Binder) *FilterGroup {
	f := &FilterGroup{
		Type:      NewList("Type", FilterTypes, bind.Bind("type")),
		Frequency: NewNumber(NumberConfig{Title: "Freq", Step: 0.05, Initial: 1, Update: bind.Bind("frequency")}),
		Resonance: NewNumber(NumberConfig{Title: "Reso", Step: 0.05, Update: bind.Bind("resonance")}),
	}
	f.Group = fieldGroup(label,
		field{node: f.Type, col: 0, length: 2, cursor: 0, text: f.Type.Selected},
		field{node: f.Frequency, col: 3, length: 6, cursor: 5, text: prefixed("F:", f.Frequency)},
		field{node: f.Resonance, col: 10, length: 6, cursor: 12, text: prefixed("R:", f.Resonance)},
	)
	return f
}

// MixGroup edits output level and stereo position.
type MixGroup struct {
	*Group
	Level *NumberItem
	Pan   *NumberItem
}

// NewMix binds "level" and "pan" through bind.
func NewMix(label string, level float64, bind Binder) *MixGroup {
	m := &MixGroup{
		Level: NewNumber(NumberConfig{Title: "Level", Step: 1.0 / 16, Initial: level, Update: bind.Bind("level")}),
		Pan:   NewNumber(NumberConfig{Title: "Pan", Step: 1.0 / 8, Minimum: -1, Maximum: 1, Update: bind.Bind("pan")}),
	}
	m.Group = fieldGroup(label,
		field{node: m.Level, col: 0, length: 7, cursor: 2, text: prefixed("L:", m.Level)},
		field{node: m.Pan, col: 8, length: 8, cursor: 10, text: func() string { return "P:" + formatSigned(m.Pan.Value()) }},
	)
	return m
}

// TuneGroup edits pitch offsets in octaves, shown as semitones and cents.
type TuneGroup struct {
	*Group
	Coarse *NumberItem
	Fine   *NumberItem
}

// NewTune binds "coarse_tune" and "fine_tune" through bind.
func NewTune(label string, bind Binder) *TuneGroup {
	t := &TuneGroup{
		Coarse: NewNumber(NumberConfig{Title: "Coarse", Step: 1.0 / 12, Minimum: -2, Maximum: 2, Update: bind.Bind("coarse_tune")}),
		Fine:   NewNumber(NumberConfig{Title: "Fine", Step: 1.0 / 12 / 16, Minimum: -1.0 / 12, Maximum: 1.0 / 12, Update: bind.Bind("fine_tune")}),
	}
	t.Group = fieldGroup(label,
		field{node: t.Coarse, col: 0, length: 8, cursor: 2, text: func() string { return "C:" + signedInt(t.Coarse.Value()*12) + "st" }},
		field{node: t.Fine, col: 8, length: 8, cursor: 10, text: func() string { return "F:" + signedInt(t.Fine.Value()*1200) + "c" }},
	)
	return t
}

func signedInt(v float64) string {
	n := int(math.Round(v))
	if n > 0 {
		return "+" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}
