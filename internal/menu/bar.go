package menu

import (
	"math"

	"github.com/atomicstack/patchmenu/internal/display"
)

const barLength = 16

// BarItem draws its value as a horizontal bar graph.
type BarItem struct {
	NumberItem
	position display.Position
	length   int
}

// NewBar creates a bar item. The step defaults to 1/16 and bars never loop.
func NewBar(cfg NumberConfig) *BarItem {
	cfg = cfg.withDefaults(1.0 / 16)
	cfg.Loop = false
	return &BarItem{
		NumberItem: *NewNumber(cfg),
		position:   display.ValueOrigin,
		length:     barLength,
	}
}

// Place moves the graph to pos with the given length in cells.
func (b *BarItem) Place(pos display.Position, length int) *BarItem {
	b.position = pos
	if length > 0 {
		b.length = length
	}
	return b
}

// Centered reports whether the range spans zero, in which case the bar fills
// outward from the middle.
func (b *BarItem) Centered() bool {
	return b.minimum < 0 && b.maximum > 0
}

func (b *BarItem) Enable(d display.Display, last bool) {
	d.EnableHorizontalGraph()
	b.NumberItem.Enable(d, last)
}

func (b *BarItem) Draw(d display.Display) {
	d.WriteHorizontalGraph(b.value, b.minimum, b.maximum, b.position, b.length, b.Centered())
}

// CursorPosition points at the cell holding the tip of the bar.
func (b *BarItem) CursorPosition() display.Position {
	return display.Position{
		Col: b.position.Col + graphCell(b.Relative(), b.length, b.Centered()),
		Row: b.position.Row,
	}
}

// graphCell returns the cell index of the last filled pixel column of a
// horizontal graph of the given length.
func graphCell(relative float64, length int, centered bool) int {
	if length <= 0 {
		return 0
	}
	total := length * display.HorizontalResolution
	filled := int(math.Round(relative * float64(total)))
	cell := 0
	switch {
	case centered && filled < total/2:
		cell = filled / display.HorizontalResolution
	case filled > 0:
		cell = (filled - 1) / display.HorizontalResolution
	}
	if cell >= length {
		cell = length - 1
	}
	return cell
}
