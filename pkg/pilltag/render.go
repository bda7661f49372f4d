package pilltag

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/mattn/go-runewidth"
)

const removeGlyph = "×"

type zone int

const (
	zoneNone zone = iota
	zoneLabel
	zoneRemove
)

// View renders the tag. A detached tag renders nothing.
func (m *Model) View() string {
	if m.machine.Detached() {
		return ""
	}
	return m.frame().Render(m.content())
}

func (m *Model) frame() lipgloss.Style {
	border := lipgloss.NormalBorder()
	if m.styles.CornerRadius > 0 {
		border = lipgloss.RoundedBorder()
	}
	back := m.styles.Background
	if m.machine.Editing() {
		back = m.styles.EditBackground
	}
	s := lipgloss.NewStyle().Border(border).Padding(0, 1)
	s = bg(fg(s, m.styles.TextColor), back)
	return borderFg(s, back)
}

func (m *Model) content() string {
	if m.machine.Editing() {
		return m.editorContent()
	}

	back := m.styles.Background
	label := bg(fg(lipgloss.NewStyle(), m.styles.TextColor), back)
	if !m.machine.Removable() {
		return label.Render(m.machine.Value())
	}

	removeFg, removeBg := m.styles.RemoveColor, m.styles.RemoveBackground
	if m.removeHover {
		removeFg, removeBg = m.styles.RemoveHoverColor, m.styles.RemoveHoverBackground
	}
	glyph := bg(fg(lipgloss.NewStyle().Bold(true), removeFg), removeBg)
	return label.Render(m.machine.Value()) + bg(lipgloss.NewStyle(), back).Render(" ") + glyph.Render(removeGlyph)
}

func (m *Model) editorContent() string {
	back := m.styles.EditBackground
	var b strings.Builder

	if m.machine.Selected() {
		sel := bg(fg(lipgloss.NewStyle(), m.styles.TextColor), back).Reverse(true)
		b.WriteString(sel.Render(m.machine.Draft()))
	} else {
		b.WriteString(m.input.View())
	}

	if m.machine.HintVisible() {
		hint := bg(fg(lipgloss.NewStyle().Italic(true), m.styles.PlaceholderColor), back)
		b.WriteString(hint.Render(Placeholder))
	}
	if ghost := m.machine.Prediction().Ghost; ghost != "" {
		g := bg(fg(lipgloss.NewStyle(), m.styles.GhostColor), back)
		b.WriteString(g.Render(ghost))
	}
	return b.String()
}

// hitTest maps a host coordinate to the part of the tag under it.
func (m *Model) hitTest(x, y int) zone {
	if m.machine.Detached() {
		return zoneNone
	}
	view := m.View()
	x -= m.originX
	y -= m.originY
	if x < 0 || y < 0 || x >= lipgloss.Width(view) || y >= lipgloss.Height(view) {
		return zoneNone
	}
	if m.machine.Removable() && !m.machine.Editing() {
		// border, padding, label, space, glyph
		col := 3 + runewidth.StringWidth(m.machine.Value())
		if x >= col && x < col+runewidth.StringWidth(removeGlyph)+1 {
			return zoneRemove
		}
	}
	return zoneLabel
}
