package app

import (
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/patchmenu/internal/controller"
	"github.com/atomicstack/patchmenu/internal/display"
	"github.com/atomicstack/patchmenu/internal/encoder"
	"github.com/atomicstack/patchmenu/internal/logging"
	"github.com/atomicstack/patchmenu/internal/logging/events"
	"github.com/atomicstack/patchmenu/internal/midi"
	"github.com/atomicstack/patchmenu/internal/patch"
	"github.com/atomicstack/patchmenu/internal/presets"
	"github.com/atomicstack/patchmenu/internal/synth"
	"github.com/atomicstack/patchmenu/internal/ui"
)

// Config describes user-provided application options.
type Config struct {
	Preset      string
	PresetDir   string
	SampleDir   string
	Slots       int
	Encoders    int
	Voices      int
	DoubleClick time.Duration
	LongPress   time.Duration
	SavePause   time.Duration
	MIDIIn      string
	MIDIOut     string
	Channel     int
	ShowFooter  bool
}

// Session is a fully wired instrument: sink, menu tree, controller and the
// UI model driving them.
type Session struct {
	Engine     *synth.Engine
	Preset     *presets.Preset
	Controller *controller.Controller
	LCD        *display.LCD
	Store      *patch.Store
	Primary    *encoder.Encoder
	Secondary  *encoder.Encoder
	Bridge     *midi.Bridge
	Model      *ui.Model

	closers []func()
}

// Close releases MIDI ports in reverse order of opening.
func (s *Session) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
	s.closers = nil
}

// Build wires a session without starting the terminal program.
func Build(cfg Config) (*Session, error) {
	voices := cfg.Voices
	if voices <= 0 {
		voices = presets.DefaultVoices(cfg.Preset)
	}
	s := &Session{
		Engine: synth.New(synth.Options{Voices: voices, Channel: uint8(cfg.Channel)}),
		LCD:    display.NewLCD(display.DefaultColumns, display.DefaultRows),
		Store:  patch.NewStore(cfg.PresetDir),
	}
	preset, err := presets.ByName(cfg.Preset, s.Engine, presets.Options{SampleDir: cfg.SampleDir, Slots: cfg.Slots})
	if err != nil {
		return nil, err
	}
	s.Preset = preset

	timing := encoder.Timing{DoubleClick: cfg.DoubleClick, LongPress: cfg.LongPress}
	s.Primary = encoder.New("primary", timing)
	opts := controller.Options{
		Display:   s.LCD,
		Primary:   s.Primary,
		Store:     s.Store,
		SavePause: cfg.SavePause,
	}
	if cfg.Encoders == 2 {
		s.Secondary = encoder.New("secondary", timing)
		opts.Secondary = s.Secondary
	}
	s.Controller = controller.New(preset.Root, opts)
	preset.Attach(s.Controller)

	if err := s.openMIDI(cfg); err != nil {
		s.Close()
		return nil, err
	}

	s.Controller.Ready()
	modelOpts := ui.Options{
		Controller: s.Controller,
		LCD:        s.LCD,
		Engine:     s.Engine,
		Patches:    s.Store,
		Primary:    s.Primary,
		Secondary:  s.Secondary,
		Preset:     preset.Name(),
		ShowFooter: cfg.ShowFooter,
		Tick:       ui.DefaultTick,
	}
	if s.Bridge != nil {
		modelOpts.Bridge = s.Bridge
	}
	s.Model = ui.NewModel(modelOpts)
	return s, nil
}

func (s *Session) openMIDI(cfg Config) error {
	if cfg.MIDIIn == "" && cfg.MIDIOut == "" {
		return nil
	}
	s.closers = append(s.closers, midi.Close)
	if cfg.MIDIOut != "" {
		send, closeOut, err := midi.OpenOutput(cfg.MIDIOut)
		if err != nil {
			return fmt.Errorf("midi output: %w", err)
		}
		s.closers = append(s.closers, closeOut)
		s.Engine.SetSender(send)
	}
	if cfg.MIDIIn != "" {
		var secondary midi.Target
		if s.Secondary != nil {
			secondary = s.Secondary
		}
		s.Bridge = midi.NewBridge(midi.DefaultMapping, s.Primary, secondary)
		s.Bridge.OnProgramChange(s.Preset.ProgramChange)
		stop, err := midi.OpenInput(cfg.MIDIIn, s.Bridge)
		if err != nil {
			return fmt.Errorf("midi input: %w", err)
		}
		s.closers = append(s.closers, stop)
	}
	return nil
}

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) error {
	s, err := Build(cfg)
	if err != nil {
		return err
	}
	defer s.Close()
	program := tea.NewProgram(s.Model, tea.WithAltScreen())
	_, err = program.Run()
	events.App.Stop(stopReason(err))
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	if err != nil {
		logging.Error(err)
	}
	return err
}

func stopReason(err error) string {
	if err == nil {
		return "quit"
	}
	return err.Error()
}
