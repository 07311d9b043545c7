package display

import (
	"math"
	"strings"

	"github.com/muesli/reflow/truncate"
)

const (
	// DefaultColumns and DefaultRows describe a 16x2 character module.
	DefaultColumns = 16
	DefaultRows    = 2

	// HorizontalResolution is the number of pixel columns in one cell.
	HorizontalResolution = 5
	// VerticalResolution is the number of pixel rows in one cell.
	VerticalResolution = 8
)

var (
	horizontalGlyphs = []rune{' ', '▏', '▎', '▍', '▌', '█'}
	verticalGlyphs   = []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}
)

// glyphMissing marks graph cells written while the matching glyph set is not
// loaded, the same garbage a real module would show.
const glyphMissing = '?'

// Cursor is the hardware cursor state.
type Cursor struct {
	Position Position
	Enabled  bool
	Blink    bool
}

// LCD is an in-memory character display with a single custom glyph bank.
type LCD struct {
	cols   int
	rows   int
	cells  [][]rune
	mode   GraphMode
	cursor Cursor
}

// NewLCD returns a blank display of the given size. Non-positive sizes fall
// back to 16x2.
func NewLCD(cols, rows int) *LCD {
	if cols <= 0 {
		cols = DefaultColumns
	}
	if rows <= 0 {
		rows = DefaultRows
	}
	l := &LCD{cols: cols, rows: rows}
	l.cells = make([][]rune, rows)
	for r := range l.cells {
		l.cells[r] = make([]rune, cols)
	}
	l.Clear()
	return l
}

// Size returns the number of columns and rows.
func (l *LCD) Size() (int, int) {
	return l.cols, l.rows
}

func (l *LCD) Clear() {
	for r := range l.cells {
		for c := range l.cells[r] {
			l.cells[r][c] = ' '
		}
	}
}

func (l *LCD) Write(text string, pos Position, length int, rightAligned bool) {
	if !l.inBounds(pos) {
		return
	}
	if length <= 0 || pos.Col+length > l.cols {
		length = l.cols - pos.Col
	}
	text = strings.ReplaceAll(text, "\n", " ")
	text = truncate.String(text, uint(length))
	runes := []rune(text)
	pad := length - len(runes)
	if pad < 0 {
		pad = 0
	}
	out := make([]rune, 0, length)
	if rightAligned {
		out = append(out, []rune(strings.Repeat(" ", pad))...)
		out = append(out, runes...)
	} else {
		out = append(out, runes...)
		out = append(out, []rune(strings.Repeat(" ", pad))...)
	}
	for i, r := range out {
		if i >= length {
			break
		}
		l.cells[pos.Row][pos.Col+i] = r
	}
}

func (l *LCD) EnableHorizontalGraph() {
	l.mode = GraphHorizontal
}

func (l *LCD) EnableVerticalGraph() {
	l.mode = GraphVertical
}

func (l *LCD) DisableGraph() {
	l.mode = GraphNone
}

// GraphMode reports the currently loaded glyph bank.
func (l *LCD) GraphMode() GraphMode {
	return l.mode
}

func (l *LCD) WriteHorizontalGraph(value, minimum, maximum float64, pos Position, length int, centered bool) {
	if !l.inBounds(pos) {
		return
	}
	if length <= 0 || pos.Col+length > l.cols {
		length = l.cols - pos.Col
	}
	total := length * HorizontalResolution
	filled := int(math.Round(Unmap(value, minimum, maximum) * float64(total)))
	lo, hi := 0, filled
	if centered {
		center := total / 2
		lo, hi = center, filled
		if hi < lo {
			lo, hi = hi, lo
		}
		if lo == hi && hi < total {
			// keep a one pixel marker at the center so zero stays visible
			hi++
		}
	}
	for i := 0; i < length; i++ {
		start := i * HorizontalResolution
		end := start + HorizontalResolution
		count := overlap(start, end, lo, hi)
		glyph := horizontalGlyphs[count]
		if l.mode != GraphHorizontal {
			glyph = glyphMissing
		}
		l.cells[pos.Row][pos.Col+i] = glyph
	}
}

func (l *LCD) WriteVerticalGraph(value, minimum, maximum float64, pos Position) {
	if !l.inBounds(pos) {
		return
	}
	level := int(math.Round(Unmap(value, minimum, maximum) * VerticalResolution))
	glyph := verticalGlyphs[level]
	if l.mode != GraphVertical {
		glyph = glyphMissing
	}
	l.cells[pos.Row][pos.Col] = glyph
}

func (l *LCD) SetCursorEnabled(enabled bool) {
	l.cursor.Enabled = enabled
}

func (l *LCD) SetCursorBlink(blink bool) {
	l.cursor.Blink = blink
}

func (l *LCD) SetCursorPosition(pos Position) {
	if !l.inBounds(pos) {
		return
	}
	l.cursor.Position = pos
}

// Cursor returns the current cursor state.
func (l *LCD) Cursor() Cursor {
	return l.cursor
}

// Row returns the text of a single row.
func (l *LCD) Row(row int) string {
	if row < 0 || row >= l.rows {
		return ""
	}
	return string(l.cells[row])
}

// Rows returns every row as a string.
func (l *LCD) Rows() []string {
	out := make([]string, l.rows)
	for r := range l.cells {
		out[r] = string(l.cells[r])
	}
	return out
}

// Cell returns the rune at pos, or a space when out of range.
func (l *LCD) Cell(pos Position) rune {
	if !l.inBounds(pos) {
		return ' '
	}
	return l.cells[pos.Row][pos.Col]
}

func (l *LCD) String() string {
	return strings.Join(l.Rows(), "\n")
}

func (l *LCD) inBounds(pos Position) bool {
	return pos.Row >= 0 && pos.Row < l.rows && pos.Col >= 0 && pos.Col < l.cols
}

func overlap(start, end, lo, hi int) int {
	if lo > start {
		start = lo
	}
	if hi < end {
		end = hi
	}
	if end <= start {
		return 0
	}
	return end - start
}
