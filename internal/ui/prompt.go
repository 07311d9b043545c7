package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/patchmenu/internal/logging"
	"github.com/atomicstack/patchmenu/internal/logging/events"
	uistate "github.com/atomicstack/patchmenu/internal/ui/state"
)

func (m *Model) openPrompt(mode uistate.PromptMode) tea.Cmd {
	var names []string
	if m.patches != nil {
		list, err := m.patches.List()
		if err != nil {
			logging.Error(err)
			m.setError(err.Error())
		}
		names = list
	}
	m.prompt = uistate.NewPrompt(mode, names)
	m.input.Reset()
	m.input.Placeholder = "patch name"
	events.Prompt.Open(len(names))
	return m.input.Focus()
}

func (m *Model) closePrompt() {
	m.prompt = nil
	m.input.Blur()
	m.input.Reset()
}

func (m *Model) handlePromptKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+c":
		return tea.Quit
	case "esc":
		events.Prompt.Cancel(events.PromptReasonEscape)
		m.closePrompt()
		return nil
	case "enter":
		m.submitPrompt()
		return nil
	case "tab":
		if match := m.prompt.Selected(); match != "" {
			events.Prompt.Complete(m.input.Value(), match)
			m.input.SetValue(match)
			m.input.CursorEnd()
			m.prompt.SetQuery(match)
		}
		return nil
	case "up", "ctrl+p":
		m.prompt.MoveCursor(-1)
		return nil
	case "down", "ctrl+n":
		m.prompt.MoveCursor(1)
		return nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != m.prompt.Query {
		m.prompt.SetQuery(m.input.Value())
	}
	return cmd
}

func (m *Model) submitPrompt() {
	mode := m.prompt.Mode
	name := strings.TrimSpace(m.prompt.Result())
	m.closePrompt()
	if name == "" {
		events.Prompt.Cancel(events.PromptReasonEmpty)
		return
	}
	events.Prompt.Submit(name)
	if m.ctrl == nil {
		return
	}
	switch mode {
	case uistate.PromptSave:
		if m.ctrl.Write(name) {
			m.setInfo(fmt.Sprintf("Saved %s", name))
		} else {
			m.setError(fmt.Sprintf("could not save %s", name))
		}
	default:
		if m.ctrl.Read(name) {
			m.setInfo(fmt.Sprintf("Loaded %s", name))
		} else {
			m.setError(fmt.Sprintf("could not load %s", name))
		}
		if m.ctrl.Enabled() {
			m.ctrl.Draw()
		}
	}
}
