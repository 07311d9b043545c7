package ui

import (
	"reflect"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/patchmenu/internal/controller"
	"github.com/atomicstack/patchmenu/internal/display"
	"github.com/atomicstack/patchmenu/internal/encoder"
	"github.com/atomicstack/patchmenu/internal/synth"
	"github.com/atomicstack/patchmenu/internal/theme"
	uistate "github.com/atomicstack/patchmenu/internal/ui/state"
)

// DefaultTick is the poll interval of the encoders and the MIDI bridge.
const DefaultTick = 10 * time.Millisecond

const infoDuration = 3 * time.Second

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// PatchLister lists stored patch names for the prompt.
type PatchLister interface {
	List() ([]string, error)
}

// Drainer applies queued external input. *midi.Bridge satisfies it.
type Drainer interface {
	Drain(now time.Time) int
}

// Options configures the model.
type Options struct {
	Controller *controller.Controller
	LCD        *display.LCD
	Engine     *synth.Engine
	Patches    PatchLister
	Primary    *encoder.Encoder
	Secondary  *encoder.Encoder
	Bridge     Drainer
	Preset     string
	ShowFooter bool
	// Tick is the poll interval. Zero disables the poll loop so tests can
	// deliver ticks themselves.
	Tick time.Duration
	Now  func() time.Time
}

type tickMsg time.Time

type releaseMsg struct {
	secondary bool
}

// resumeMsg carries a deferred controller step back onto the update loop.
type resumeMsg struct {
	fn func()
}

type deferredStep struct {
	after time.Duration
	fn    func()
}

// Model implements the Bubble Tea model emulating the LCD and encoders.
type Model struct {
	ctrl      *controller.Controller
	lcd       *display.LCD
	engine    *synth.Engine
	patches   PatchLister
	primary   *encoder.Encoder
	secondary *encoder.Encoder
	bridge    Drainer
	preset    string

	tick     time.Duration
	now      func() time.Time
	schedule func(time.Duration, tea.Msg) tea.Cmd

	width      int
	height     int
	showFooter bool
	errMsg     string
	infoMsg    string
	infoExpire time.Time

	lcdCursor cursor.Model
	input     textinput.Model
	prompt    *uistate.Prompt

	deferred []deferredStep
	handlers map[reflect.Type]msgHandler
}

// NewModel wires the model to a ready controller.
func NewModel(opts Options) *Model {
	m := &Model{
		ctrl:       opts.Controller,
		lcd:        opts.LCD,
		engine:     opts.Engine,
		patches:    opts.Patches,
		primary:    opts.Primary,
		secondary:  opts.Secondary,
		bridge:     opts.Bridge,
		preset:     opts.Preset,
		tick:       opts.Tick,
		now:        opts.Now,
		showFooter: opts.ShowFooter,
	}
	if m.now == nil {
		m.now = time.Now
	}
	m.schedule = func(d time.Duration, msg tea.Msg) tea.Cmd {
		if d <= 0 {
			return func() tea.Msg { return msg }
		}
		return tea.Tick(d, func(time.Time) tea.Msg { return msg })
	}
	if m.ctrl != nil {
		m.ctrl.SetAfter(func(d time.Duration, fn func()) {
			m.deferred = append(m.deferred, deferredStep{after: d, fn: fn})
		})
	}

	c := cursor.New()
	if styles.Cursor != nil {
		c.Style = styles.Cursor.Copy()
	}
	if styles.LCD != nil {
		c.TextStyle = styles.LCD.Copy()
	}
	m.lcdCursor = c

	in := textinput.New()
	in.Prompt = "» "
	in.CharLimit = 64
	in.Cursor.SetMode(cursor.CursorStatic)
	if styles.Prompt != nil {
		in.PromptStyle = styles.Prompt.Copy()
	}
	m.input = in

	m.registerHandlers()
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.lcdCursor.Focus(), m.syncCursorMode()}
	if m.tick > 0 {
		cmds = append(cmds, m.nextTick())
	}
	return tea.Batch(cmds...)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 2)
	var cmd tea.Cmd
	m.lcdCursor, cmd = m.lcdCursor.Update(msg)
	if cmd != nil {
		cmds = append(cmds, cmd)
	}
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	for _, step := range m.deferred {
		if cmd := m.schedule(step.after, resumeMsg{fn: step.fn}); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	m.deferred = nil
	if len(cmds) == 0 {
		return m, nil
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(tickMsg{}):           m.handleTickMsg,
		reflect.TypeOf(releaseMsg{}):        m.handleReleaseMsg,
		reflect.TypeOf(resumeMsg{}):         m.handleResumeMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) nextTick() tea.Cmd {
	return tea.Tick(m.tick, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *Model) handleTickMsg(msg tea.Msg) tea.Cmd {
	tick, ok := msg.(tickMsg)
	if !ok {
		return nil
	}
	m.poll(time.Time(tick))
	cmd := m.syncCursorMode()
	if m.tick > 0 {
		return tea.Batch(cmd, m.nextTick())
	}
	return cmd
}

func (m *Model) handleReleaseMsg(msg tea.Msg) tea.Cmd {
	release, ok := msg.(releaseMsg)
	if !ok {
		return nil
	}
	enc := m.primary
	if release.secondary {
		enc = m.secondary
	}
	if enc == nil {
		return nil
	}
	now := m.now()
	enc.Release(now)
	m.poll(now)
	return m.syncCursorMode()
}

func (m *Model) handleResumeMsg(msg tea.Msg) tea.Cmd {
	resume, ok := msg.(resumeMsg)
	if !ok || resume.fn == nil {
		return nil
	}
	resume.fn()
	return m.syncCursorMode()
}

// poll applies queued MIDI input and lets the controller dispatch gestures.
func (m *Model) poll(now time.Time) {
	if m.bridge != nil {
		m.bridge.Drain(now)
	}
	if m.ctrl != nil {
		m.ctrl.Update(now)
	}
}

// syncCursorMode mirrors the LCD cursor state onto the rendered cursor.
func (m *Model) syncCursorMode() tea.Cmd {
	if m.lcd == nil {
		return nil
	}
	state := m.lcd.Cursor()
	mode := cursor.CursorHide
	switch {
	case state.Enabled && state.Blink:
		mode = cursor.CursorBlink
	case state.Enabled:
		mode = cursor.CursorStatic
	}
	if m.lcdCursor.Mode() == mode {
		return nil
	}
	return m.lcdCursor.SetMode(mode)
}

func (m *Model) setInfo(message string) {
	m.infoMsg = message
	m.infoExpire = m.now().Add(infoDuration)
	m.errMsg = ""
}

func (m *Model) setError(message string) {
	m.errMsg = message
	m.infoMsg = ""
}

func (m *Model) currentInfo() string {
	if m.infoMsg != "" && !m.infoExpire.IsZero() && m.now().After(m.infoExpire) {
		m.infoMsg = ""
		m.infoExpire = time.Time{}
	}
	return m.infoMsg
}
