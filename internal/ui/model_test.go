package ui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/patchmenu/internal/controller"
	"github.com/atomicstack/patchmenu/internal/display"
	"github.com/atomicstack/patchmenu/internal/encoder"
	"github.com/atomicstack/patchmenu/internal/logging"
	"github.com/atomicstack/patchmenu/internal/menu"
	"github.com/atomicstack/patchmenu/internal/patch"
	"github.com/atomicstack/patchmenu/internal/presets"
	"github.com/atomicstack/patchmenu/internal/synth"
)

type scheduled struct {
	after time.Duration
	msg   tea.Msg
}

type fixture struct {
	h         *Harness
	lcd       *display.LCD
	ctrl      *controller.Controller
	store     *patch.Store
	engine    *synth.Engine
	level     *menu.BarItem
	pan       *menu.NumberItem
	mode      *menu.ListItem
	now       time.Time
	scheduled []scheduled
}

func newFixture(t *testing.T, twoEncoders bool) *fixture {
	t.Helper()
	logging.Configure(filepath.Join(t.TempDir(), "patchmenu.log"))
	t.Cleanup(func() { logging.Configure("") })

	f := &fixture{
		lcd:    display.NewLCD(display.DefaultColumns, display.DefaultRows),
		store:  patch.NewStore(filepath.Join(t.TempDir(), "presets")),
		engine: synth.New(synth.Options{Voices: 1}),
		now:    time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}
	global := presets.GlobalBinder(f.engine)
	f.level = menu.NewBar(menu.NumberConfig{Title: "Level", Initial: 1, Update: global.Bind("level")})
	f.pan = menu.NewNumber(menu.NumberConfig{Title: "Pan", Step: 0.25, Minimum: -1, Maximum: 1, Update: global.Bind("pan")})
	f.mode = menu.NewList("Mode", []string{"High", "Low", "Last"}, global.Bind("mode"))
	root := menu.NewGroup("mono", true,
		menu.NewGroup("Snd", false, f.level, f.pan),
		menu.NewGroup("Keys", false, f.mode),
	)

	primary := encoder.New("primary", encoder.Timing{})
	var secondary *encoder.Encoder
	opts := controller.Options{
		Display: f.lcd,
		Primary: primary,
		Store:   f.store,
		Sleep:   func(time.Duration) {},
	}
	if twoEncoders {
		secondary = encoder.New("secondary", encoder.Timing{})
		opts.Secondary = secondary
	}
	f.ctrl = controller.New(root, opts)
	f.ctrl.Ready()

	m := NewModel(Options{
		Controller: f.ctrl,
		LCD:        f.lcd,
		Engine:     f.engine,
		Patches:    f.store,
		Primary:    primary,
		Secondary:  secondary,
		Preset:     "mono",
		Now:        func() time.Time { return f.now },
	})
	m.schedule = func(d time.Duration, msg tea.Msg) tea.Cmd {
		f.scheduled = append(f.scheduled, scheduled{after: d, msg: msg})
		return nil
	}
	f.h = NewHarness(m)
	return f
}

// advance moves the clock and delivers a poll tick.
func (f *fixture) advance(d time.Duration) {
	f.now = f.now.Add(d)
	f.h.Send(tickMsg(f.now))
}

func TestNewModelRendersReadyController(t *testing.T) {
	f := newFixture(t, false)
	view := f.h.View()
	for _, want := range []string{
		"patchmenu · mono",
		"│Snd:Level       │",
		"│████████████████│",
		"mono › Snd › Snd:Level",
		"(none yet)",
	} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in view, got:\n%s", want, view)
		}
	}
}

func TestRotateKeysNavigate(t *testing.T) {
	f := newFixture(t, false)
	f.h.Key("k")
	if f.lcd.Row(0) != "Snd:Pan         " {
		t.Fatalf("expected up to move to Pan, got %q", f.lcd.Row(0))
	}
	f.h.Key("down")
	f.h.Key("j")
	if f.lcd.Row(0) != "Keys:Mode       " {
		t.Fatalf("expected down twice to wrap to Keys, got %q", f.lcd.Row(0))
	}
}

func TestTapSelectsOnceDoubleClickWindowPasses(t *testing.T) {
	f := newFixture(t, false)
	f.h.Key("k")
	f.h.Key("enter")
	if f.ctrl.Selected() {
		t.Fatalf("expected click to wait for the double-click window")
	}
	f.advance(encoder.DefaultDoubleClick + 10*time.Millisecond)
	if !f.ctrl.Selected() {
		t.Fatalf("expected click to select")
	}
	f.h.Key("k")
	if f.pan.Value() != 0.25 {
		t.Fatalf("expected selected rotation to edit, got %v", f.pan.Value())
	}
	if got, ok := f.engine.Value(synth.Global, "pan"); !ok || got != 0.25 {
		t.Fatalf("expected pan to reach the sink, got %v %v", got, ok)
	}
	view := f.h.View()
	if !strings.Contains(view, "pan") || !strings.Contains(view, "0.25") || !strings.Contains(view, "all") {
		t.Fatalf("expected parameter panel row, got:\n%s", view)
	}
}

func TestDoubleTapJumpsGroups(t *testing.T) {
	f := newFixture(t, false)
	f.h.Key("enter")
	f.now = f.now.Add(100 * time.Millisecond)
	f.h.Key(" ")
	if f.lcd.Row(0) != "Keys:Mode       " {
		t.Fatalf("expected double-click to jump to Keys, got %q", f.lcd.Row(0))
	}
}

func TestHoldSavesAndSwallowsRelease(t *testing.T) {
	f := newFixture(t, false)
	f.h.Key("s")
	if len(f.scheduled) != 1 {
		t.Fatalf("expected a scheduled release, got %d", len(f.scheduled))
	}
	if f.scheduled[0].after < encoder.DefaultLongPress {
		t.Fatalf("expected release after the long-press threshold, got %s", f.scheduled[0].after)
	}
	f.h.Key("s")
	if len(f.scheduled) != 1 {
		t.Fatalf("expected repeated hold to be ignored while pressed")
	}

	f.advance(encoder.DefaultLongPress)
	if !strings.Contains(f.h.View(), "│Saving...       │") {
		t.Fatalf("expected Saving... frame, got:\n%s", f.h.View())
	}
	if len(f.scheduled) != 2 || f.scheduled[1].after != 0 {
		t.Fatalf("expected an immediate persist step, got %+v", f.scheduled)
	}
	f.h.Send(f.scheduled[1].msg)
	if _, err := f.store.Read("mono"); err != nil {
		t.Fatalf("expected long-press to save, got %v", err)
	}
	if !strings.Contains(f.h.View(), "│Complete!       │") {
		t.Fatalf("expected Complete! frame, got:\n%s", f.h.View())
	}
	if len(f.scheduled) != 3 || f.scheduled[2].after != controller.DefaultSavePause {
		t.Fatalf("expected the save pause step, got %+v", f.scheduled)
	}

	f.h.Send(f.scheduled[0].msg)
	f.h.Send(f.scheduled[2].msg)
	f.advance(encoder.DefaultDoubleClick * 2)
	if f.ctrl.Selected() {
		t.Fatalf("expected release after long-press to be swallowed")
	}
	if f.lcd.Row(0) != "Snd:Level       " {
		t.Fatalf("expected first item after save, got %q", f.lcd.Row(0))
	}
}

func TestSecondaryEncoderEditsAndResets(t *testing.T) {
	f := newFixture(t, true)
	f.h.Key("h")
	if f.level.Value() != 1-1.0/16 {
		t.Fatalf("expected secondary to edit, got %v", f.level.Value())
	}
	f.h.Key("r")
	if len(f.scheduled) != 1 || f.scheduled[0].msg != (releaseMsg{secondary: true}) {
		t.Fatalf("expected secondary release scheduled, got %+v", f.scheduled)
	}
	f.advance(encoder.DefaultLongPress)
	if f.level.Value() != 1 {
		t.Fatalf("expected secondary long-press to reset, got %v", f.level.Value())
	}
}

func TestSecondaryKeysIgnoredWithOneEncoder(t *testing.T) {
	f := newFixture(t, false)
	f.h.Key("h")
	f.h.Key("r")
	f.h.Key("tab")
	if f.level.Value() != 1 || len(f.scheduled) != 0 {
		t.Fatalf("expected secondary keys to do nothing")
	}
}

func TestQuitKey(t *testing.T) {
	f := newFixture(t, false)
	_, cmd := f.h.Model().Update(keyMsg("q"))
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
}

func TestWindowSizeLimitsPanel(t *testing.T) {
	f := newFixture(t, false)
	f.h.Send(tea.WindowSizeMsg{Width: 40, Height: 8})
	lines := strings.Split(f.h.View(), "\n")
	if len(lines) > 8 {
		t.Fatalf("expected at most 8 lines, got %d:\n%s", len(lines), f.h.View())
	}
}
