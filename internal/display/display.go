package display

// Position addresses a character cell on the display.
type Position struct {
	Col int
	Row int
}

// Origin is the top-left cell, where item titles are written.
var Origin = Position{}

// ValueOrigin is the first cell of the value row.
var ValueOrigin = Position{Col: 0, Row: 1}

// GraphMode identifies which custom glyph set is loaded. A character display
// only has room for one set at a time, so bar and envelope items switch it
// when they gain focus.
type GraphMode int

const (
	GraphNone GraphMode = iota
	GraphHorizontal
	GraphVertical
)

func (m GraphMode) String() string {
	switch m {
	case GraphHorizontal:
		return "horizontal"
	case GraphVertical:
		return "vertical"
	default:
		return "none"
	}
}

// Display is the set of render primitives the menu engine issues. Rendering
// fidelity is the implementation's concern.
type Display interface {
	Clear()
	// Write places text at pos, truncated and padded to length cells. A
	// length <= 0 extends to the end of the row.
	Write(text string, pos Position, length int, rightAligned bool)

	EnableHorizontalGraph()
	EnableVerticalGraph()
	DisableGraph()
	WriteHorizontalGraph(value, minimum, maximum float64, pos Position, length int, centered bool)
	WriteVerticalGraph(value, minimum, maximum float64, pos Position)

	SetCursorEnabled(enabled bool)
	SetCursorBlink(blink bool)
	SetCursorPosition(pos Position)
}

// Unmap rescales value from [minimum, maximum] to [0, 1]. A degenerate range
// maps everything to 0.
func Unmap(value, minimum, maximum float64) float64 {
	if maximum == minimum {
		return 0
	}
	return Clamp((value-minimum)/(maximum-minimum), 0, 1)
}

// Map rescales a relative value in [0, 1] to [minimum, maximum].
func Map(relative, minimum, maximum float64) float64 {
	return minimum + (maximum-minimum)*relative
}

// Clamp limits value to [minimum, maximum].
func Clamp(value, minimum, maximum float64) float64 {
	if value < minimum {
		return minimum
	}
	if value > maximum {
		return maximum
	}
	return value
}
