package menu

import (
	"math"

	"github.com/atomicstack/patchmenu/internal/display"
)

// Waveform is an oscillator shape that can be previewed on the display.
type Waveform int

const (
	WaveSquare Waveform = iota
	WaveSaw
	WaveSine
	WaveNoise
	WaveSineNoise
	WaveTriangle
)

var waveformNames = map[Waveform]string{
	WaveSquare:    "Square",
	WaveSaw:       "Sawtooth",
	WaveSine:      "Sine",
	WaveNoise:     "Noise",
	WaveSineNoise: "Sine Noise",
	WaveTriangle:  "Triangle",
}

func (w Waveform) String() string {
	if name, ok := waveformNames[w]; ok {
		return name
	}
	return "Unknown"
}

// Sample returns the waveform level in [-1, 1] at phase in [0, 1).
func (w Waveform) Sample(phase float64) float64 {
	phase -= math.Floor(phase)
	switch w {
	case WaveSquare:
		if phase < 0.5 {
			return 1
		}
		return -1
	case WaveSaw:
		return 2*phase - 1
	case WaveSine:
		return math.Sin(2 * math.Pi * phase)
	case WaveTriangle:
		return 1 - 4*math.Abs(phase-0.5)
	case WaveNoise:
		return noise(phase)
	case WaveSineNoise:
		return display.Clamp(math.Sin(2*math.Pi*phase)+0.25*noise(phase), -1, 1)
	default:
		return 0
	}
}

// noise is a fixed pseudo-random level per phase so previews do not flicker.
func noise(phase float64) float64 {
	x := uint32(phase*1024) * 2654435761
	x ^= x >> 13
	x *= 0x5bd1e995
	x ^= x >> 15
	return float64(x%2001)/1000 - 1
}

const (
	previewColumn = 8
	previewWidth  = 8
)

// WaveformItem is a list of waveforms with a shape preview next to the name.
type WaveformItem struct {
	ListItem
	waves []Waveform
}

// NewWaveform creates a waveform selector over waves.
func NewWaveform(title string, waves []Waveform, update Setter) *WaveformItem {
	labels := make([]string, len(waves))
	for i, w := range waves {
		labels[i] = w.String()
	}
	return &WaveformItem{
		ListItem: *NewList(title, labels, update),
		waves:    append([]Waveform(nil), waves...),
	}
}

// Waveform returns the selected shape.
func (w *WaveformItem) Waveform() Waveform {
	if len(w.waves) == 0 {
		return WaveSine
	}
	return w.waves[wrapIndex(int(math.Round(w.value)), len(w.waves))]
}

func (w *WaveformItem) Enable(d display.Display, last bool) {
	d.EnableVerticalGraph()
	w.ListItem.Enable(d, last)
}

func (w *WaveformItem) Draw(d display.Display) {
	d.Write(w.Selected(), display.ValueOrigin, previewColumn, false)
	wave := w.Waveform()
	for i := 0; i < previewWidth; i++ {
		level := wave.Sample(float64(i) / previewWidth)
		d.WriteVerticalGraph(level, -1, 1, display.Position{Col: previewColumn + i, Row: 1})
	}
}
