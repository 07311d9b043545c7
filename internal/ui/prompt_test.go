package ui

import (
	"strings"
	"testing"
)

func (f *fixture) typeText(text string) {
	for _, r := range text {
		f.h.Key(string(r))
	}
}

func TestPromptLoadsStoredPatch(t *testing.T) {
	f := newFixture(t, false)
	if err := f.store.Write("mono-bright", []any{[]any{0.5, 1.0}, []any{2.0}}); err != nil {
		t.Fatal(err)
	}
	if err := f.store.Write("mono-dark", []any{[]any{0.25, -1.0}, []any{1.0}}); err != nil {
		t.Fatal(err)
	}

	f.h.Key("p")
	view := f.h.View()
	if !strings.Contains(view, "Load patch") || !strings.Contains(view, "mono-dark") {
		t.Fatalf("expected prompt with stored names, got:\n%s", view)
	}
	f.typeText("dk")
	prompt := f.h.Model().prompt
	if prompt == nil || len(prompt.Matches) != 1 || prompt.Selected() != "mono-dark" {
		t.Fatalf("expected fuzzy match on mono-dark, got %+v", prompt)
	}
	f.h.Key("tab")
	if f.h.Model().input.Value() != "mono-dark" {
		t.Fatalf("expected completion, got %q", f.h.Model().input.Value())
	}
	f.h.Key("enter")
	if f.h.Model().prompt != nil {
		t.Fatalf("expected prompt closed after submit")
	}
	if f.level.Value() != 0.25 || f.pan.Value() != -1 || f.mode.Selected() != "Low" {
		t.Fatalf("expected patch applied, got %v %v %s", f.level.Value(), f.pan.Value(), f.mode.Selected())
	}
	if !strings.Contains(f.h.View(), "Loaded mono-dark") {
		t.Fatalf("expected info line, got:\n%s", f.h.View())
	}
	if f.lcd.Row(1) != "████            " {
		t.Fatalf("expected redrawn quarter bar, got %q", f.lcd.Row(1))
	}
}

func TestPromptLoadMissingReportsError(t *testing.T) {
	f := newFixture(t, false)
	f.h.Key("p")
	f.typeText("nothing")
	f.h.Key("enter")
	if !strings.Contains(f.h.View(), "Error: could not load nothing") {
		t.Fatalf("expected load error, got:\n%s", f.h.View())
	}
}

func TestPromptSaveAs(t *testing.T) {
	f := newFixture(t, false)
	f.pan.Set(0.5)
	f.h.Key("w")
	if !strings.Contains(f.h.View(), "Save patch as") {
		t.Fatalf("expected save prompt, got:\n%s", f.h.View())
	}
	f.typeText("lead")
	f.h.Key("enter")
	data, err := f.store.Read("lead")
	if err != nil {
		t.Fatalf("expected saved patch, got %v", err)
	}
	if data.([]any)[0].([]any)[1] != 0.5 {
		t.Fatalf("unexpected saved data %#v", data)
	}
}

func TestPromptEscapeAndEmptySubmit(t *testing.T) {
	f := newFixture(t, false)
	f.h.Key("p")
	f.typeText("k")
	f.h.Key("esc")
	if f.h.Model().prompt != nil {
		t.Fatalf("expected escape to close the prompt")
	}
	if f.lcd.Row(0) != "Snd:Level       " {
		t.Fatalf("expected keys typed into the prompt not to reach the encoders, got %q", f.lcd.Row(0))
	}

	f.h.Key("w")
	f.h.Key("enter")
	names, err := f.store.List()
	if err != nil || len(names) != 0 {
		t.Fatalf("expected empty submit to save nothing, got %v %v", names, err)
	}
}
