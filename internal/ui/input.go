package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/patchmenu/internal/encoder"
	"github.com/atomicstack/patchmenu/internal/logging/events"
	uistate "github.com/atomicstack/patchmenu/internal/ui/state"
)

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	key := keyMsg.String()
	events.UI.Key(key)
	if m.prompt != nil {
		return m.handlePromptKey(keyMsg)
	}
	switch key {
	case "ctrl+c", "q":
		return tea.Quit
	case "up", "k":
		return m.rotate(m.primary, 1)
	case "down", "j":
		return m.rotate(m.primary, -1)
	case "enter", " ", "space":
		return m.tap(m.primary)
	case "s":
		return m.hold(m.primary, false)
	case "right", "l":
		return m.rotate(m.secondary, 1)
	case "left", "h":
		return m.rotate(m.secondary, -1)
	case "tab":
		return m.tap(m.secondary)
	case "r":
		return m.hold(m.secondary, true)
	case "p":
		return m.openPrompt(uistate.PromptLoad)
	case "w":
		return m.openPrompt(uistate.PromptSave)
	}
	return nil
}

func (m *Model) rotate(enc *encoder.Encoder, steps int) tea.Cmd {
	if enc == nil {
		return nil
	}
	enc.Rotate(steps)
	m.poll(m.now())
	return m.syncCursorMode()
}

// tap is a press immediately followed by a release. The click itself fires
// once the double-click window has passed.
func (m *Model) tap(enc *encoder.Encoder) tea.Cmd {
	if enc == nil {
		return nil
	}
	now := m.now()
	enc.Press(now)
	enc.Release(now)
	m.poll(now)
	return m.syncCursorMode()
}

// hold presses now and releases once the long-press threshold has passed.
func (m *Model) hold(enc *encoder.Encoder, secondary bool) tea.Cmd {
	if enc == nil || enc.Pressed() {
		return nil
	}
	enc.Press(m.now())
	return m.schedule(enc.Timing().LongPress+m.tick, releaseMsg{secondary: secondary})
}
