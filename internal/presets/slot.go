package presets

import (
	"fmt"

	"github.com/atomicstack/patchmenu/internal/display"
	"github.com/atomicstack/patchmenu/internal/menu"
)

// DefaultSlots is the highest polyphonic patch slot.
const DefaultSlots = 16

// PatchItem selects the current patch slot. Loading a patch never moves it:
// only encoder edits and program changes do.
type PatchItem struct {
	menu.NumberItem
}

// NewPatchItem creates a looping slot selector over [0, slots].
func NewPatchItem(slots int) *PatchItem {
	return &PatchItem{NumberItem: *menu.NewNumber(menu.NumberConfig{
		Title:   "Patch",
		Step:    1,
		Maximum: float64(slots),
		Loop:    true,
	})}
}

// Set ignores snapshot data so reading a patch keeps the slot.
func (p *PatchItem) Set(any) {}

// SetForced moves to slot v and notifies when it changes.
func (p *PatchItem) SetForced(v float64) bool {
	return p.NumberItem.SetValue(v)
}

// Name returns the patch name of the current slot.
func (p *PatchItem) Name() string {
	return fmt.Sprintf("polyphonic-%d", int(p.Value()))
}

// Enable shows the bare title without the root prefix.
func (p *PatchItem) Enable(d display.Display, last bool) {
	p.SetGroup("")
	p.NumberItem.Enable(d, last)
}
