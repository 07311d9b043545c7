package menu

import (
	"math"

	"github.com/atomicstack/patchmenu/internal/display"
)

// ListItem selects one label from a fixed set. Its value is the index.
type ListItem struct {
	NumberItem
	labels []string
}

// NewList creates a looping list item over labels.
func NewList(title string, labels []string, update Setter) *ListItem {
	if len(labels) == 0 {
		labels = []string{""}
	}
	item := NewNumber(NumberConfig{
		Title:   title,
		Step:    1,
		Minimum: 0,
		Maximum: float64(len(labels) - 1),
		Loop:    true,
		Update:  update,
	})
	if len(labels) == 1 {
		// a single label still needs a valid [0, 0] range
		item.maximum = 0
	}
	return &ListItem{NumberItem: *item, labels: append([]string(nil), labels...)}
}

// WithLoop overrides the default wrapping behaviour.
func (l *ListItem) WithLoop(loop bool) *ListItem {
	l.loop = loop
	return l
}

// Labels returns the selectable labels.
func (l *ListItem) Labels() []string { return l.labels }

// Selected returns the label at the current index.
func (l *ListItem) Selected() string {
	n := len(l.labels)
	return l.labels[wrapIndex(int(math.Round(l.value)), n)]
}

func (l *ListItem) Draw(d display.Display) {
	d.Write(l.Selected(), display.ValueOrigin, 0, false)
}
