package ui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/atomicstack/patchmenu/internal/format/table"
	"github.com/atomicstack/patchmenu/internal/logging/events"
	"github.com/atomicstack/patchmenu/internal/synth"
	uistate "github.com/atomicstack/patchmenu/internal/ui/state"
)

const (
	breadcrumbSeparator = " › "
	footerOneEncoder    = "↑/↓ turn  enter click  s hold  p load  w save  q quit"
	footerTwoEncoders   = "↑/↓ nav  ←/→ edit  enter/tab click  s/r hold  p load  w save  q quit"
	promptMatchRows     = 5
)

type styledLine struct {
	text  string
	style *lipgloss.Style
	raw   bool
}

// View implements tea.Model.
func (m *Model) View() string {
	lines := make([]styledLine, 0, 16)
	lines = append(lines, styledLine{text: m.header(), style: styles.Header})
	for _, row := range strings.Split(m.renderLCD(), "\n") {
		lines = append(lines, styledLine{text: row, raw: true})
	}
	if crumb := m.breadcrumb(); crumb != "" {
		style := styles.Breadcrumb
		if m.ctrl != nil && m.ctrl.Selected() {
			style = styles.Selected
		}
		lines = append(lines, styledLine{text: crumb, style: style})
	}

	bottom := m.bottomLines()
	panel := m.panelLines()
	if m.height > 0 {
		room := m.height - len(lines) - len(bottom)
		panel = limitHeight(panel, room, m.width)
	}
	lines = append(lines, panel...)
	lines = append(lines, bottom...)
	return renderLines(applyWidth(lines, m.width))
}

func (m *Model) header() string {
	if m.preset == "" {
		return "patchmenu"
	}
	return "patchmenu · " + m.preset
}

// renderLCD draws the character buffer inside a frame with the cursor cell
// rendered through the cursor model.
func (m *Model) renderLCD() string {
	if m.lcd == nil {
		return ""
	}
	rows := m.lcd.Rows()
	state := m.lcd.Cursor()
	out := make([]string, len(rows))
	for r, row := range rows {
		runes := []rune(row)
		if state.Enabled && state.Position.Row == r && state.Position.Col >= 0 && state.Position.Col < len(runes) {
			col := state.Position.Col
			m.lcdCursor.SetChar(string(runes[col]))
			out[r] = m.renderCells(string(runes[:col])) + m.lcdCursor.View() + m.renderCells(string(runes[col+1:]))
			continue
		}
		out[r] = m.renderCells(row)
	}
	body := strings.Join(out, "\n")
	if styles.LCDFrame == nil {
		return body
	}
	return styles.LCDFrame.Render(body)
}

func (m *Model) renderCells(text string) string {
	if text == "" || styles.LCD == nil {
		return text
	}
	return styles.LCD.Render(text)
}

func (m *Model) breadcrumb() string {
	if m.ctrl == nil {
		return ""
	}
	focus := m.ctrl.Focus()
	if len(focus) == 0 {
		return ""
	}
	return strings.Join(focus, breadcrumbSeparator)
}

// panelLines lists the parameter values the sink has accepted.
func (m *Model) panelLines() []styledLine {
	if m.engine == nil {
		return nil
	}
	values := m.engine.Snapshot()
	lines := []styledLine{{}, {text: "Parameters", style: styles.PanelTitle}}
	if len(values) == 0 {
		return append(lines, styledLine{text: "(none yet)", style: styles.Info})
	}
	rows := make([][]string, len(values))
	for i, v := range values {
		rows[i] = []string{voiceLabel(v.Voice), v.Name, strconv.FormatFloat(v.Value, 'g', 4, 64)}
	}
	columns := []table.Column{
		{Header: "voice"},
		{Header: "param"},
		{Header: "value", Align: table.AlignRight},
	}
	for i, text := range table.Render(columns, rows) {
		style := styles.Panel
		if i == 0 {
			style = styles.PanelTitle
		}
		lines = append(lines, styledLine{text: text, style: style})
	}
	return lines
}

func voiceLabel(voice int) string {
	if voice == synth.Global {
		return "all"
	}
	return strconv.Itoa(voice)
}

func (m *Model) bottomLines() []styledLine {
	lines := make([]styledLine, 0, 8)
	if m.prompt != nil {
		lines = append(lines, styledLine{})
		title := "Load patch"
		if m.prompt.Mode == uistate.PromptSave {
			title = "Save patch as"
		}
		lines = append(lines, styledLine{text: title, style: styles.PanelTitle})
		lines = append(lines, styledLine{text: m.input.View(), raw: true})
		for i, name := range m.prompt.Matches {
			if i >= promptMatchRows {
				lines = append(lines, styledLine{text: fmt.Sprintf("  … %d more", len(m.prompt.Matches)-i), style: styles.Info})
				break
			}
			style := styles.PromptMatch
			prefix := "  "
			if i == m.prompt.Cursor {
				style = styles.PromptActive
				prefix = "▌ "
			}
			lines = append(lines, styledLine{text: prefix + name, style: style})
		}
	}
	if m.errMsg != "" {
		lines = append(lines, styledLine{}, styledLine{text: "Error: " + m.errMsg, style: styles.Error})
	} else if info := m.currentInfo(); info != "" {
		lines = append(lines, styledLine{}, styledLine{text: info, style: styles.Info})
	}
	if m.showFooter {
		footer := footerOneEncoder
		if m.secondary != nil {
			footer = footerTwoEncoders
		}
		lines = append(lines, styledLine{}, styledLine{text: footer, style: styles.Footer})
	}
	return lines
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	m.width = resize.Width
	m.height = resize.Height
	events.UI.Resize(m.width, m.height)
	return nil
}

func limitHeight(lines []styledLine, height, width int) []styledLine {
	if height <= 0 {
		return nil
	}
	if len(lines) <= height {
		return lines
	}
	if height == 1 {
		return []styledLine{{text: truncateText("…", width)}}
	}
	trimmed := make([]styledLine, 0, height)
	trimmed = append(trimmed, lines[:height-1]...)
	trimmed = append(trimmed, styledLine{text: truncateText("…", width)})
	return trimmed
}

func applyWidth(lines []styledLine, width int) []styledLine {
	if width <= 0 {
		return lines
	}
	result := make([]styledLine, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			if lipgloss.Width(text) > width {
				text = truncate.StringWithTail(text, uint(width-1), "…")
			}
		} else {
			text = truncateText(text, width)
		}
		result[i] = styledLine{text: text, style: line.style, raw: line.raw}
	}
	return result
}

func renderLines(lines []styledLine) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		text := line.text
		if !line.raw && line.style != nil && text != "" {
			text = line.style.Render(text)
		}
		out[i] = text
	}
	return strings.Join(out, "\n")
}

func truncateText(text string, width int) string {
	if width <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= width {
		return text
	}
	if width == 1 {
		return string(runes[:1])
	}
	return string(runes[:width-1]) + "…"
}
