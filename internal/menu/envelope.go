package menu

import (
	"math"

	"github.com/atomicstack/patchmenu/internal/display"
)

// envelopeCells is the number of display columns an envelope shape spans.
const envelopeCells = 16

// AllocateBars converts relative stage lengths to whole bar counts. Each
// stage gets round(rel*scale) bars, limited to what is left of budget, and
// the remainder is returned last so no count is ever negative.
func AllocateBars(budget, scale int, relatives ...float64) ([]int, int) {
	if budget < 0 {
		budget = 0
	}
	bars := make([]int, len(relatives))
	left := budget
	for i, rel := range relatives {
		n := int(math.Round(display.Clamp(rel, 0, 1) * float64(scale)))
		if n < 0 {
			n = 0
		}
		if n > left {
			n = left
		}
		bars[i] = n
		left -= n
	}
	return bars, left
}

// AR holds initial attack/release envelope settings.
type AR struct {
	Attack  float64
	Release float64
	Amount  float64
}

// AREnvelopeGroup edits an attack/release envelope and draws its shape.
type AREnvelopeGroup struct {
	*Group
	Attack  *NumberItem
	Release *NumberItem
	Amount  *NumberItem
}

// NewAREnvelope binds "attack", "release" and "amount" through bind.
func NewAREnvelope(label string, initial AR, bind Binder) *AREnvelopeGroup {
	e := &AREnvelopeGroup{
		Attack:  NewNumber(NumberConfig{Title: "Attack", Initial: initial.Attack, Maximum: 2, Update: bind.Bind("attack")}),
		Release: NewNumber(NumberConfig{Title: "Release", Initial: initial.Release, Maximum: 2, Update: bind.Bind("release")}),
		Amount:  NewNumber(NumberConfig{Title: "Amount", Initial: initial.Amount, Step: 0.05, Update: bind.Bind("amount")}),
	}
	e.Group = NewGroup(label, false, e.Attack, e.Release, e.Amount)
	e.hooks = groupHooks{
		enable: func(d display.Display) { d.EnableVerticalGraph() },
		draw:   e.draw,
		cursor: e.cursor,
	}
	return e
}

func (e *AREnvelopeGroup) bars() (attack, release, amount int) {
	bars, rest := AllocateBars(envelopeCells, envelopeCells/2, e.Attack.Relative(), e.Release.Relative())
	return bars[0], bars[1], rest
}

func (e *AREnvelopeGroup) draw(d display.Display) {
	attack, release, amount := e.bars()
	level := e.Amount.Relative()
	for i := 0; i < attack; i++ {
		d.WriteVerticalGraph(level*float64(i+1)/float64(attack), 0, 1, display.Position{Col: i, Row: 1})
	}
	for i := 0; i < amount; i++ {
		d.WriteVerticalGraph(level, 0, 1, display.Position{Col: attack + i, Row: 1})
	}
	for i := 0; i < release; i++ {
		d.WriteVerticalGraph(level*float64(i+1)/float64(release), 0, 1, display.Position{Col: envelopeCells - 1 - i, Row: 1})
	}
}

func (e *AREnvelopeGroup) cursor() display.Position {
	attack, release, _ := e.bars()
	col := 0
	switch e.Current() {
	case Node(e.Release):
		col = envelopeCells - max(release, 1)
	case Node(e.Amount):
		col = min(attack, envelopeCells-1)
	}
	return display.Position{Col: col, Row: 1}
}

// ADSR holds initial envelope settings.
type ADSR struct {
	AttackTime   float64
	AttackLevel  float64
	DecayTime    float64
	SustainLevel float64
	ReleaseTime  float64
}

// ADSREnvelopeGroup edits a five-stage amplitude envelope and draws its shape.
type ADSREnvelopeGroup struct {
	*Group
	AttackTime   *NumberItem
	AttackLevel  *NumberItem
	DecayTime    *NumberItem
	SustainLevel *NumberItem
	ReleaseTime  *NumberItem
}

// NewADSREnvelope binds "attack_time", "attack_level", "decay_time",
// "sustain_level" and "release_time" through bind.
func NewADSREnvelope(label string, initial ADSR, bind Binder) *ADSREnvelopeGroup {
	e := &ADSREnvelopeGroup{
		AttackTime:   NewNumber(NumberConfig{Title: "Attack", Initial: initial.AttackTime, Maximum: 2, Update: bind.Bind("attack_time")}),
		AttackLevel:  NewNumber(NumberConfig{Title: "Atk Lvl", Initial: initial.AttackLevel, Step: 0.05, Update: bind.Bind("attack_level")}),
		DecayTime:    NewNumber(NumberConfig{Title: "Decay", Initial: initial.DecayTime, Maximum: 2, Update: bind.Bind("decay_time")}),
		SustainLevel: NewNumber(NumberConfig{Title: "Stn Lvl", Initial: initial.SustainLevel, Step: 0.05, Update: bind.Bind("sustain_level")}),
		ReleaseTime:  NewNumber(NumberConfig{Title: "Release", Initial: initial.ReleaseTime, Maximum: 2, Update: bind.Bind("release_time")}),
	}
	e.Group = NewGroup(label, false, e.AttackTime, e.AttackLevel, e.DecayTime, e.SustainLevel, e.ReleaseTime)
	e.hooks = groupHooks{
		enable: func(d display.Display) { d.EnableVerticalGraph() },
		draw:   e.draw,
		cursor: e.cursor,
	}
	return e
}

func (e *ADSREnvelopeGroup) bars() (attack, decay, sustain, release int) {
	bars, rest := AllocateBars(envelopeCells, 5,
		e.AttackTime.Relative(), e.DecayTime.Relative(), e.ReleaseTime.Relative())
	return bars[0], bars[1], rest, bars[2]
}

func (e *ADSREnvelopeGroup) draw(d display.Display) {
	attack, decay, sustain, release := e.bars()
	peak := e.AttackLevel.Relative()
	hold := e.SustainLevel.Relative()
	for i := 0; i < attack; i++ {
		d.WriteVerticalGraph(peak*float64(i+1)/float64(attack), 0, 1, display.Position{Col: i, Row: 1})
	}
	for i := 0; i < decay; i++ {
		level := (peak-hold)*float64(i+1)/float64(decay) + hold
		d.WriteVerticalGraph(level, 0, 1, display.Position{Col: attack + decay - 1 - i, Row: 1})
	}
	for i := attack + decay; i < attack+decay+sustain; i++ {
		d.WriteVerticalGraph(hold, 0, 1, display.Position{Col: i, Row: 1})
	}
	for i := 0; i < release; i++ {
		d.WriteVerticalGraph(hold*float64(i+1)/float64(release), 0, 1, display.Position{Col: envelopeCells - 1 - i, Row: 1})
	}
}

func (e *ADSREnvelopeGroup) cursor() display.Position {
	attack, decay, _, release := e.bars()
	col := 0
	switch e.Current() {
	case Node(e.AttackLevel):
		col = max(attack-1, 0)
	case Node(e.DecayTime):
		col = attack
	case Node(e.SustainLevel):
		col = attack + decay
	case Node(e.ReleaseTime):
		col = envelopeCells - max(release, 1)
	}
	return display.Position{Col: min(col, envelopeCells-1), Row: 1}
}
