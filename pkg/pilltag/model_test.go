package pilltag

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// drain runs cmd and flattens batches. Commands that would block (cursor
// blink ticks) are never passed in.
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, drain(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

// deliver runs cmd, feeds internal messages back to m and returns the events.
func deliver(m *Model, cmd tea.Cmd) []Event {
	var events []Event
	for _, msg := range drain(cmd) {
		if em, ok := msg.(EventMsg); ok {
			events = append(events, em.Event)
			continue
		}
		m.Update(msg)
	}
	return events
}

func typeText(m *Model, s string) {
	for _, r := range s {
		if r == ' ' {
			m.Update(tea.KeyPressMsg{Code: tea.KeySpace, Text: " "})
			continue
		}
		m.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

func press(m *Model, code rune) tea.Cmd {
	_, cmd := m.Update(tea.KeyPressMsg{Code: code})
	return cmd
}

func TestNewNormalizesLabel(t *testing.T) {
	assert.Equal(t, "Go", New("  Go  ").Value())
	assert.Equal(t, Placeholder, New("   ").Value())
	assert.Equal(t, Placeholder, New("").Value())
}

func TestNewAssignsID(t *testing.T) {
	a, b := New("a"), New("b")
	assert.NotEmpty(t, a.ID())
	assert.NotEqual(t, a.ID(), b.ID())
	assert.Equal(t, "fixed", New("c", WithID("fixed")).ID())
}

func TestClickNonEditableEmitsClicked(t *testing.T) {
	var heard []Event
	m := New("Go", WithListener(func(ev Event) { heard = append(heard, ev) }))

	msgs := drain(m.Click())
	require.Len(t, msgs, 1)
	em, ok := msgs[0].(EventMsg)
	require.True(t, ok)
	assert.Equal(t, m.ID(), em.ID)
	assert.Equal(t, TagClicked{Tag: "Go"}, em.Event)
	assert.Equal(t, []Event{TagClicked{Tag: "Go"}}, heard)
	assert.False(t, m.Editing())
}

func TestClickEditableBeginsEditing(t *testing.T) {
	var heard []Event
	m := New("Go", WithEditable(true), WithListener(func(ev Event) { heard = append(heard, ev) }))

	m.Click()
	assert.True(t, m.Editing())
	assert.Equal(t, "Go", m.Draft())
	assert.Empty(t, heard)

	// Clicks during a session are ignored.
	assert.Nil(t, m.Click())
	assert.True(t, m.Editing())
}

func TestAddFromPlaceholder(t *testing.T) {
	m := New("", WithEditable(true))
	m.Focus()
	require.True(t, m.Editing())
	assert.Equal(t, "", m.Draft())
	assert.True(t, m.HintVisible())

	typeText(m, "go lang")
	assert.Equal(t, "go lang", m.Draft())
	assert.False(t, m.HintVisible())

	events := deliver(m, press(m, tea.KeyEnter))
	assert.Equal(t, []Event{TagAdded{NewTag: "Go Lang"}}, events)
	assert.Equal(t, "Go Lang", m.Value())
	assert.False(t, m.Editing())
	assert.False(t, m.Focused())
	assert.Contains(t, m.AutoComplete(), "Go Lang")
}

func TestTypingReplacesSelectedValue(t *testing.T) {
	m := New("Go", WithEditable(true))
	m.Click()

	typeText(m, "rust")
	assert.Equal(t, "rust", m.Draft())

	events := deliver(m, press(m, tea.KeyEnter))
	assert.Equal(t, []Event{TagUpdated{NewTag: "Rust", OldTag: "Go"}}, events)
	assert.Equal(t, "Rust", m.Value())
}

func TestBackspaceClearsSelectedValue(t *testing.T) {
	m := New("Go", WithEditable(true))
	m.Click()

	press(m, tea.KeyBackspace)
	assert.Equal(t, "", m.Draft())
	assert.True(t, m.HintVisible())
}

func TestArrowKeepsSelectedValue(t *testing.T) {
	m := New("Go", WithEditable(true))
	m.Click()

	press(m, tea.KeyLeft)
	typeText(m, "o")
	assert.Equal(t, "Goo", m.Draft())
}

func TestConfirmWithoutChangeIsSilent(t *testing.T) {
	m := New("Go", WithEditable(true))
	m.Click()

	events := deliver(m, press(m, tea.KeyEnter))
	assert.Empty(t, events)
	assert.Equal(t, "Go", m.Value())
}

func TestTabAcceptsThenConfirms(t *testing.T) {
	m := New("", WithEditable(true), WithAutoComplete([]string{"Apricot", "Apple"}))
	m.Focus()

	typeText(m, "ap")
	p := m.Prediction()
	assert.True(t, p.Active)
	assert.Equal(t, "Apple", p.Match)
	assert.Equal(t, "ple", p.Ghost)
	assert.Equal(t, []string{"Apple", "Apricot"}, m.Candidates())

	assert.Empty(t, deliver(m, press(m, tea.KeyTab)))
	assert.True(t, m.Editing())
	assert.Equal(t, "apple", m.Draft())
	assert.False(t, m.Prediction().Active)

	events := deliver(m, press(m, tea.KeyTab))
	assert.Equal(t, []Event{TagAdded{NewTag: "Apple"}}, events)
	assert.Equal(t, "Apple", m.Value())
}

func TestLongValueSurvivesEditing(t *testing.T) {
	long := "A" + strings.Repeat("b", 299)
	m := New(long, WithEditable(true))
	m.Click()
	require.True(t, m.Editing())

	press(m, tea.KeyLeft)
	assert.Equal(t, long, m.Draft())
	assert.Equal(t, long, m.input.Value())

	assert.Empty(t, deliver(m, press(m, tea.KeyEnter)))
	assert.Equal(t, long, m.Value())
}

func TestLongPredictionIsAcceptedWhole(t *testing.T) {
	long := "A" + strings.Repeat("b", 299)
	m := New("", WithEditable(true), WithAutoComplete([]string{long}))
	m.Focus()
	typeText(m, "a")

	assert.Empty(t, deliver(m, press(m, tea.KeyTab)))
	assert.Equal(t, "a"+strings.Repeat("b", 299), m.Draft())
	assert.Equal(t, m.Draft(), m.input.Value())

	events := deliver(m, press(m, tea.KeyEnter))
	assert.Equal(t, []Event{TagAdded{NewTag: long}}, events)
}

func TestTabWithoutPredictionConfirms(t *testing.T) {
	m := New("", WithEditable(true))
	m.Focus()
	typeText(m, "zig")

	events := deliver(m, press(m, tea.KeyTab))
	assert.Equal(t, []Event{TagAdded{NewTag: "Zig"}}, events)
}

func TestEscapeAbortsAndKeepsSuggestion(t *testing.T) {
	m := New("Go", WithEditable(true))
	m.Click()
	typeText(m, "elixir")

	events := deliver(m, press(m, tea.KeyEscape))
	assert.Empty(t, events)
	assert.Equal(t, "Go", m.Value())
	assert.False(t, m.Editing())
	assert.Contains(t, m.AutoComplete(), "Elixir")
}

func TestBlurAbortsOpenSession(t *testing.T) {
	m := New("Go", WithEditable(true))
	m.Click()
	typeText(m, "rust")

	_, cmd := m.Update(tea.BlurMsg{})
	assert.Empty(t, deliver(m, cmd))
	assert.Equal(t, "Go", m.Value())
	assert.False(t, m.Editing())
}

func TestConfirmGuardIsReleased(t *testing.T) {
	m := New("Go", WithEditable(true))
	m.Click()
	typeText(m, "rust")
	cmd := press(m, tea.KeyEnter)
	assert.True(t, m.machine.BlurGuarded())

	deliver(m, cmd)
	assert.False(t, m.machine.BlurGuarded())

	// A later session is aborted by blur again.
	m.Click()
	typeText(m, "zig")
	m.Blur()
	assert.Equal(t, "Rust", m.Value())
}

func TestRemove(t *testing.T) {
	var heard []Event
	m := New("Go", WithRemovable(true), WithListener(func(ev Event) { heard = append(heard, ev) }))

	events := deliver(m, m.Remove())
	assert.Equal(t, []Event{TagRemoved{Tag: "Go"}}, events)
	assert.True(t, m.Detached())
	assert.Empty(t, m.View())

	assert.Nil(t, m.Remove())
	assert.Nil(t, m.Click())
	assert.Len(t, heard, 1)
}

func TestRemoveRequiresRemovable(t *testing.T) {
	m := New("Go")
	assert.Nil(t, m.Remove())
	assert.False(t, m.Detached())
}

func TestDeleteKeyRemovesFocusedTag(t *testing.T) {
	m := New("Go", WithRemovable(true))

	// Unfocused tags ignore keys.
	assert.Nil(t, press(m, tea.KeyDelete))

	m.Focus()
	events := deliver(m, press(m, tea.KeyDelete))
	assert.Equal(t, []Event{TagRemoved{Tag: "Go"}}, events)
	assert.True(t, m.Detached())
}

func TestEnterActivatesFocusedTag(t *testing.T) {
	m := New("Go")
	m.Focus()
	events := deliver(m, press(m, tea.KeyEnter))
	assert.Equal(t, []Event{TagClicked{Tag: "Go"}}, events)
}

func TestMouseClicks(t *testing.T) {
	m := New("Go", WithRemovable(true))
	m.SetOrigin(10, 4)

	// Outside the pill.
	_, cmd := m.Update(tea.MouseClickMsg{X: 2, Y: 1, Button: tea.MouseLeft})
	assert.Nil(t, cmd)

	// On the label.
	_, cmd = m.Update(tea.MouseClickMsg{X: 12, Y: 5, Button: tea.MouseLeft})
	assert.Equal(t, []Event{TagClicked{Tag: "Go"}}, deliver(m, cmd))

	// Right button does nothing.
	_, cmd = m.Update(tea.MouseClickMsg{X: 12, Y: 5, Button: tea.MouseRight})
	assert.Nil(t, cmd)

	// On the remove glyph: border, padding, "Go", space.
	_, cmd = m.Update(tea.MouseClickMsg{X: 15, Y: 5, Button: tea.MouseLeft})
	assert.Equal(t, []Event{TagRemoved{Tag: "Go"}}, deliver(m, cmd))
	assert.True(t, m.Detached())
}

func TestMouseHoverOnRemove(t *testing.T) {
	m := New("Go", WithRemovable(true))

	m.Update(tea.MouseMotionMsg{X: 5, Y: 1})
	assert.True(t, m.removeHover)

	m.Update(tea.MouseMotionMsg{X: 2, Y: 1})
	assert.False(t, m.removeHover)
}

func TestClickOutsideAbortsEdit(t *testing.T) {
	m := New("Go", WithEditable(true))
	m.Click()
	typeText(m, "rust")

	m.Update(tea.MouseClickMsg{X: 40, Y: 10, Button: tea.MouseLeft})
	assert.False(t, m.Editing())
	assert.Equal(t, "Go", m.Value())
}

func TestSetValueWhileEditing(t *testing.T) {
	m := New("Go", WithEditable(true))
	m.Click()
	typeText(m, "ru")

	m.SetValue("  Zig ")
	assert.Equal(t, "Zig", m.Value())
	assert.Equal(t, "Zig", m.Draft())
}

func TestDetachedIgnoresMessages(t *testing.T) {
	m := New("Go", WithRemovable(true), WithEditable(true))
	m.Remove()

	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Nil(t, m.Focus())
	assert.False(t, m.Editing())
}

func TestView(t *testing.T) {
	m := New("Go", WithRemovable(true), WithEditable(true), WithAutoComplete([]string{"Golang"}))
	view := m.View()
	assert.Contains(t, view, "Go")
	assert.Contains(t, view, removeGlyph)
	assert.Equal(t, 3, len(strings.Split(view, "\n")))

	m.Focus()
	press(m, tea.KeyRight)
	typeText(m, "l")
	view = m.View()
	assert.Contains(t, view, "ang")
	assert.NotContains(t, view, removeGlyph)
}

func TestViewShowsHintForEmptyDraft(t *testing.T) {
	m := New("", WithEditable(true))
	m.Focus()
	assert.Contains(t, m.View(), Placeholder)
}
