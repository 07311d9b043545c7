package menu

// VoiceGroup holds the parameters every voice type shares.
type VoiceGroup struct {
	*Group
	Level    *BarItem
	Velocity *BarItem
	Filter   *FilterGroup
}

// NewVoice builds the common voice parameters followed by extra.
func NewVoice(label string, bind Binder, extra ...Node) *VoiceGroup {
	v := &VoiceGroup{
		Level:    NewBar(NumberConfig{Title: "Level", Initial: 1, Update: bind.Bind("level")}),
		Velocity: NewBar(NumberConfig{Title: "Velocity", Update: bind.Bind("velocity")}),
		Filter:   NewFilter(label+"Fltr", bind.Prefix("filter_")),
	}
	items := append([]Node{v.Level, v.Velocity, v.Filter}, extra...)
	v.Group = NewGroup(label, false, items...)
	return v
}

// OscillatorOptions tunes which optional parameters an oscillator exposes.
type OscillatorOptions struct {
	// Detune adds a "Detune" item bound to the "detune" parameter.
	Detune bool
	Waves  []Waveform
}

// DefaultWaves are the shapes offered by oscillator voices.
var DefaultWaves = []Waveform{WaveSquare, WaveSaw, WaveSine, WaveNoise, WaveSineNoise, WaveTriangle}

// OscillatorGroup is the full parameter layout of an oscillator voice.
type OscillatorGroup struct {
	*VoiceGroup
	Glide     *RampItem
	PitchBend *BarItem
	Tune      *TuneGroup
	Detune    *BarItem
	Waveform  *WaveformItem
	Tremolo   *LFOGroup
	Vibrato   *LFOGroup
	Pan       *BarItem
	PanLFO    *LFOGroup
	Envelope  *ADSREnvelopeGroup
	FilterLFO *LFOGroup
	FilterEnv *AREnvelopeGroup
}

// NewOscillator builds an oscillator voice group.
func NewOscillator(label string, bind Binder, opts OscillatorOptions) *OscillatorGroup {
	waves := opts.Waves
	if len(waves) == 0 {
		waves = DefaultWaves
	}
	o := &OscillatorGroup{
		Glide:     NewRamp(RampConfig{Title: "Glide", Smoothing: 2, Update: bind.Bind("glide")}),
		PitchBend: NewBar(NumberConfig{Title: "Pitch Bend", Step: 1.0 / 8, Minimum: -1, Maximum: 1, Update: bind.Bind("pitch_bend")}),
		Tune:      NewTune(label+"Tune", bind),
		Waveform:  NewWaveform("Waveform", waves, bind.Bind("waveform")),
		Tremolo:   NewLFO(label+"Trem", LFO{}, bind.Prefix("tremolo_")),
		Vibrato:   NewLFO(label+"Vib", LFO{}, bind.Prefix("vibrato_")),
		Pan:       NewBar(NumberConfig{Title: "Pan", Step: 1.0 / 8, Minimum: -1, Maximum: 1, Update: bind.Bind("pan")}),
		PanLFO:    NewLFO(label+"Pan", LFO{DepthMax: 1, DepthStep: 1.0 / 16}, bind.Prefix("pan_")),
		Envelope: NewADSREnvelope(label+"AEnv", ADSR{
			AttackLevel:  1,
			SustainLevel: 0.75,
			ReleaseTime:  0.1,
		}, bind),
		FilterLFO: NewLFO(label+"FLFO", LFO{}, bind.Prefix("filter_lfo_")),
		FilterEnv: NewAREnvelope(label+"FEnv", AR{}, bind.Prefix("filter_env_")),
	}
	extra := []Node{o.Glide, o.PitchBend, o.Tune}
	if opts.Detune {
		o.Detune = NewBar(NumberConfig{Title: "Detune", Step: 1.0 / 64, Maximum: 0.25, Update: bind.Bind("detune")})
		extra = append(extra, o.Detune)
	}
	extra = append(extra, o.Waveform, o.Tremolo, o.Vibrato, o.Pan, o.PanLFO, o.Envelope, o.FilterLFO, o.FilterEnv)
	o.VoiceGroup = NewVoice(label, bind, extra...)
	return o
}

