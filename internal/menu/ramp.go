package menu

import (
	"math"

	"github.com/atomicstack/patchmenu/internal/display"
)

// RampConfig describes a ramp item. Initial, Minimum and Maximum are in
// output units; Step is on the linear [0, 1] scale.
type RampConfig struct {
	Title     string
	Group     string
	Step      float64
	Initial   float64
	Minimum   float64
	Maximum   float64
	Smoothing float64
	Update    Setter
}

// RampItem edits a linear [0, 1] value and exposes it through an exponential
// curve, so small outputs get finer steps than large ones.
type RampItem struct {
	NumberItem
	outMin    float64
	outMax    float64
	smoothing float64
	onUpdate  Setter
}

// NewRamp creates a ramp item. Smoothing defaults to 1 (linear).
func NewRamp(cfg RampConfig) *RampItem {
	if cfg.Step == 0 {
		cfg.Step = 1.0 / 16
	}
	if cfg.Smoothing <= 0 {
		cfg.Smoothing = 1
	}
	if cfg.Minimum == 0 && cfg.Maximum == 0 {
		cfg.Maximum = 1
	}
	r := &RampItem{
		outMin:    cfg.Minimum,
		outMax:    cfg.Maximum,
		smoothing: cfg.Smoothing,
		onUpdate:  cfg.Update,
	}
	initial := r.linear(cfg.Initial)
	r.NumberItem = *NewNumber(NumberConfig{
		Title:   cfg.Title,
		Group:   cfg.Group,
		Step:    cfg.Step,
		Initial: initial,
		Minimum: 0,
		Maximum: 1,
		Update: func(v float64) {
			if r.onUpdate != nil {
				r.onUpdate(r.output(v))
			}
		},
	})
	return r
}

// Get returns the curved output value.
func (r *RampItem) Get() any { return r.output(r.value) }

// Output returns the curved output value as a float64.
func (r *RampItem) Output() float64 { return r.output(r.value) }

// Set accepts a value in output units.
func (r *RampItem) Set(value any) {
	v, ok := toFloat(value)
	if !ok {
		return
	}
	v = display.Clamp(v, r.outMin, r.outMax)
	if v == r.output(r.value) {
		return
	}
	r.NumberItem.SetValue(r.linear(v))
}

// SetUpdate replaces the callback receiving output values.
func (r *RampItem) SetUpdate(update Setter) { r.onUpdate = update }

func (r *RampItem) Draw(d display.Display) {
	d.Write(formatValue(r.output(r.value)), display.ValueOrigin, 0, false)
}

func (r *RampItem) output(linear float64) float64 {
	return r.outMin + (r.outMax-r.outMin)*math.Pow(linear, r.smoothing)
}

func (r *RampItem) linear(output float64) float64 {
	rel := display.Unmap(output, r.outMin, r.outMax)
	return math.Pow(rel, 1/r.smoothing)
}
