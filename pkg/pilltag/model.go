// Package pilltag provides a Bubble Tea "pill tag" widget: a label in a rounded
// container that can optionally be edited inline, removed, and auto-completed
// against a suggestion list.
//
// A host embeds a *Model, forwards messages to Update, renders View, and reacts
// to EventMsg values (or a listener callback) for tag-clicked, tag-removed,
// tag-updated and tag-added notifications.
package pilltag

import (
	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"github.com/go-logr/logr"
	"github.com/google/uuid"

	"github.com/oakwood-commons/pilltag/internal/predict"
	"github.com/oakwood-commons/pilltag/internal/session"
	"github.com/oakwood-commons/pilltag/internal/tagtext"
)

// Placeholder is the label of a tag without a confirmed value.
const Placeholder = tagtext.Placeholder

// Prediction is the inline completion currently offered while editing.
type Prediction = predict.Prediction

// Model is a single pill tag.
type Model struct {
	id       string
	machine  *session.Machine
	input    textinput.Model
	styles   Styles
	keys     KeyMap
	log      logr.Logger
	listener func(Event)

	focused     bool
	removeHover bool
	originX     int
	originY     int

	// pending collects events emitted during the current call.
	pending []Event
}

// New creates a tag showing label (trimmed; empty becomes Placeholder).
func New(label string, opts ...Option) *Model {
	o := options{
		styles: DefaultStyles(),
		keys:   DefaultKeyMap(),
		log:    logr.Discard(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.id == "" {
		o.id = uuid.NewString()
	}

	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = ""
	ti.CharLimit = 0

	m := &Model{
		id:       o.id,
		input:    ti,
		styles:   o.styles,
		keys:     o.keys,
		log:      o.log.WithName("pilltag").WithValues("id", o.id),
		listener: o.listener,
	}
	m.machine = session.New(session.Config{
		Value:       label,
		Editable:    o.editable,
		Removable:   o.removable,
		Suggestions: o.autoComplete,
		Emit:        m.collect,
		Log:         m.log,
	})
	return m
}

// Init implements the Bubble Tea component contract.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages routed to the tag by its host.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	if m.machine.Detached() {
		return m, nil
	}

	switch msg := msg.(type) {
	case releaseGuardMsg:
		if msg.id == m.id {
			m.machine.ReleaseBlurGuard()
		}
		return m, nil

	case tea.BlurMsg:
		if m.focused {
			return m, m.Blur()
		}
		return m, nil

	case tea.MouseClickMsg:
		return m, m.handleClick(msg.Mouse())

	case tea.MouseMotionMsg:
		mouse := msg.Mouse()
		m.removeHover = m.hitTest(mouse.X, mouse.Y) == zoneRemove
		return m, nil

	case tea.PasteMsg:
		if !m.machine.Editing() {
			return m, nil
		}
		if m.machine.Selected() {
			m.input.SetValue("")
		}
		return m, m.updateInput(msg)

	case tea.KeyPressMsg:
		if m.machine.Editing() {
			return m, m.handleEditingKey(msg)
		}
		return m, m.handleIdleKey(msg)
	}

	if m.machine.Editing() {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleEditingKey(msg tea.KeyPressMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		m.machine.Confirm()
		return m.afterConfirm()

	case key.Matches(msg, m.keys.Tab):
		switch m.machine.Tab() {
		case session.TabAccepted:
			m.input.SetValue(m.machine.Draft())
			m.input.CursorEnd()
		case session.TabConfirmed:
			return m.afterConfirm()
		}
		return nil

	case key.Matches(msg, m.keys.Abort):
		m.machine.Abort()
		m.input.Blur()
		m.input.SetValue("")
		return m.flush()
	}

	if m.machine.Selected() {
		switch {
		case msg.Text != "":
			m.input.SetValue("")
		case msg.String() == "backspace" || msg.String() == "delete":
			m.input.SetValue("")
			m.machine.Input("")
			return nil
		default:
			m.machine.ClearSelection()
		}
	}
	return m.updateInput(msg)
}

func (m *Model) handleIdleKey(msg tea.KeyPressMsg) tea.Cmd {
	if !m.focused {
		return nil
	}
	switch {
	case key.Matches(msg, m.keys.Remove):
		return m.Remove()
	case key.Matches(msg, m.keys.Confirm):
		return m.Click()
	}
	return nil
}

func (m *Model) handleClick(mouse tea.Mouse) tea.Cmd {
	if mouse.Button != tea.MouseLeft {
		return nil
	}
	switch m.hitTest(mouse.X, mouse.Y) {
	case zoneRemove:
		return m.Remove()
	case zoneLabel:
		return m.Click()
	default:
		if m.focused || m.machine.Editing() {
			return m.Blur()
		}
	}
	return nil
}

func (m *Model) updateInput(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if v := m.input.Value(); v != m.machine.Draft() {
		m.machine.Input(v)
	}
	return cmd
}

// afterConfirm releases focus the way a confirm does and schedules the guard
// release for the next loop turn, so the blur caused here is swallowed.
func (m *Model) afterConfirm() tea.Cmd {
	events := m.flush()
	blur := m.Blur()
	id := m.id
	release := func() tea.Msg { return releaseGuardMsg{id: id} }
	return tea.Batch(events, blur, release)
}

// Focus gives the tag focus. An editable tag enters edit mode.
func (m *Model) Focus() tea.Cmd {
	if m.machine.Detached() {
		return nil
	}
	m.focused = true
	if !m.machine.Begin() {
		return nil
	}
	m.input.SetValue(m.machine.Draft())
	m.input.CursorEnd()
	return m.input.Focus()
}

// BeginEdit enters edit mode when the tag is editable. It is equivalent to focusing it.
func (m *Model) BeginEdit() tea.Cmd {
	return m.Focus()
}

// Blur removes focus. An open edit session is aborted unless a confirm just ran.
func (m *Model) Blur() tea.Cmd {
	m.focused = false
	m.input.Blur()
	if m.machine.Blur() {
		m.input.SetValue("")
	}
	return m.flush()
}

// Click activates the label: non-editable tags emit tag-clicked, editable ones
// start editing. Ignored while editing.
func (m *Model) Click() tea.Cmd {
	if m.machine.Detached() || m.machine.Editing() {
		return nil
	}
	if m.machine.Editable() {
		return m.Focus()
	}
	m.machine.Click()
	return m.flush()
}

// Remove detaches a removable tag and emits tag-removed.
func (m *Model) Remove() tea.Cmd {
	if !m.machine.Remove() {
		return nil
	}
	m.focused = false
	m.removeHover = false
	m.input.Blur()
	m.input.SetValue("")
	return m.flush()
}

func (m *Model) collect(ev Event) {
	m.pending = append(m.pending, ev)
	if m.listener != nil {
		m.listener(ev)
	}
}

func (m *Model) flush() tea.Cmd {
	if len(m.pending) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(m.pending))
	for _, ev := range m.pending {
		cmds = append(cmds, eventCmd(m.id, ev))
	}
	m.pending = nil
	if len(cmds) == 1 {
		return cmds[0]
	}
	return tea.Sequence(cmds...)
}

// ID identifies this tag instance on EventMsg.
func (m *Model) ID() string { return m.id }

// Value returns the committed label.
func (m *Model) Value() string { return m.machine.Value() }

// SetValue sets the label, trimmed; empty becomes Placeholder.
func (m *Model) SetValue(v string) {
	m.machine.SetValue(v)
	if m.machine.Editing() {
		m.input.SetValue(m.machine.Draft())
		m.input.CursorEnd()
	}
}

func (m *Model) Editable() bool      { return m.machine.Editable() }
func (m *Model) SetEditable(v bool)  { m.machine.SetEditable(v) }
func (m *Model) Removable() bool     { return m.machine.Removable() }
func (m *Model) SetRemovable(v bool) { m.machine.SetRemovable(v) }

// AutoComplete returns a copy of the suggestion pool.
func (m *Model) AutoComplete() []string { return m.machine.Suggestions() }

// SetAutoComplete replaces the suggestion pool.
func (m *Model) SetAutoComplete(suggestions []string) { m.machine.SetSuggestions(suggestions) }

// AddSuggestion title-cases s and adds it when novel.
func (m *Model) AddSuggestion(s string) bool { return m.machine.AddSuggestion(s) }

// Editing reports whether an edit session is open.
func (m *Model) Editing() bool { return m.machine.Editing() }

// Detached reports whether the tag has been removed.
func (m *Model) Detached() bool { return m.machine.Detached() }

// Focused reports whether the tag holds focus.
func (m *Model) Focused() bool { return m.focused }

// Draft returns the in-progress text while editing.
func (m *Model) Draft() string { return m.machine.Draft() }

// Prediction returns the completion currently rendered.
func (m *Model) Prediction() Prediction { return m.machine.Prediction() }

// Candidates lists every suggestion matching the current draft, in pick order.
func (m *Model) Candidates() []string { return m.machine.Candidates() }

// HintVisible reports whether the placeholder hint is shown in the editor.
func (m *Model) HintVisible() bool { return m.machine.HintVisible() }

// Styles returns the active styles.
func (m *Model) Styles() Styles { return m.styles }

// SetStyles replaces the styles.
func (m *Model) SetStyles(s Styles) { m.styles = s }

// KeyMap returns the active bindings.
func (m *Model) KeyMap() KeyMap { return m.keys }

// SetOrigin records where the host draws the tag, for mouse hit-testing.
func (m *Model) SetOrigin(x, y int) {
	m.originX = x
	m.originY = y
}
