// Package session implements the edit lifecycle of a tag: entering edit mode,
// tracking the draft, confirming or aborting, and deciding which events fire.
//
// The machine has no notion of keys, mice or terminals. The component feeds it
// abstract signals (begin, input, tab, confirm, abort, blur, click, remove) and
// renders whatever state it exposes.
package session

import (
	"strings"

	"github.com/go-logr/logr"

	"github.com/oakwood-commons/pilltag/internal/predict"
	"github.com/oakwood-commons/pilltag/internal/tagtext"
)

// State is the machine's coarse state.
type State int

const (
	// Idle shows the value as static text.
	Idle State = iota
	// Editing has an active edit session.
	Editing
	// Detached follows removal; every signal is ignored.
	Detached
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Editing:
		return "editing"
	case Detached:
		return "detached"
	default:
		return "unknown"
	}
}

// TabOutcome reports what a Tab signal did.
type TabOutcome int

const (
	TabIgnored TabOutcome = iota
	TabAccepted
	TabConfirmed
)

// Config seeds a Machine.
type Config struct {
	Value       string
	Editable    bool
	Removable   bool
	Suggestions []string
	Emit        Emitter
	Log         logr.Logger
}

// editSession exists only while editing.
type editSession struct {
	draft     string
	selectAll bool
}

// Machine is the edit-session state machine for one tag.
type Machine struct {
	value    string
	original string

	editable  bool
	removable bool
	detached  bool

	session *editSession
	hint    bool

	// blurGuard swallows the blur that follows a programmatic confirm.
	blurGuard bool

	suggestions *predict.Set
	engine      *predict.Engine
	prediction  predict.Prediction

	emit Emitter
	log  logr.Logger
}

// New creates an idle machine.
func New(cfg Config) *Machine {
	set := predict.NewSet(cfg.Suggestions...)
	value := tagtext.Normalize(cfg.Value)
	log := cfg.Log
	if log.GetSink() == nil {
		log = logr.Discard()
	}
	return &Machine{
		value:       value,
		original:    value,
		editable:    cfg.Editable,
		removable:   cfg.Removable,
		suggestions: set,
		engine:      predict.NewEngine(set),
		emit:        cfg.Emit,
		log:         log,
	}
}

// State returns the current state.
func (m *Machine) State() State {
	switch {
	case m.detached:
		return Detached
	case m.session != nil:
		return Editing
	default:
		return Idle
	}
}

func (m *Machine) Editing() bool  { return m.session != nil && !m.detached }
func (m *Machine) Detached() bool { return m.detached }

// Value is the committed label. While editing it still holds the pre-edit value.
func (m *Machine) Value() string { return m.value }

// Original is the snapshot confirm and abort diff against.
func (m *Machine) Original() string { return m.original }

// SetValue replaces the committed value. An active session restarts from it.
func (m *Machine) SetValue(v string) {
	m.value = tagtext.Normalize(v)
	m.original = m.value
	if m.session != nil {
		m.session.draft = m.value
		if tagtext.IsPlaceholder(m.value) {
			m.session.draft = ""
		}
		m.session.selectAll = false
		m.prediction = predict.None
	}
}

func (m *Machine) Editable() bool        { return m.editable }
func (m *Machine) SetEditable(v bool)    { m.editable = v }
func (m *Machine) Removable() bool       { return m.removable }
func (m *Machine) SetRemovable(v bool)   { m.removable = v }
func (m *Machine) HintVisible() bool     { return m.hint }
func (m *Machine) BlurGuarded() bool     { return m.blurGuard }
func (m *Machine) Suggestions() []string { return m.suggestions.Values() }

// SetSuggestions replaces the pool wholesale. The rendered prediction is left
// alone until the draft next changes.
func (m *Machine) SetSuggestions(values []string) {
	m.suggestions.Replace(values)
}

// AddSuggestion title-cases v and inserts it when novel.
func (m *Machine) AddSuggestion(v string) bool {
	return m.suggestions.Add(v)
}

// Candidates exposes the engine's filter for the current draft.
func (m *Machine) Candidates() []string {
	return m.engine.Candidates(m.Draft())
}

// Draft returns the live text, or "" when idle.
func (m *Machine) Draft() string {
	if m.session == nil {
		return ""
	}
	return m.session.draft
}

// Selected reports whether the whole draft is selected.
func (m *Machine) Selected() bool {
	return m.session != nil && m.session.selectAll
}

// ClearSelection collapses the whole-draft selection.
func (m *Machine) ClearSelection() {
	if m.session != nil {
		m.session.selectAll = false
	}
}

// Prediction is the completion currently rendered.
func (m *Machine) Prediction() predict.Prediction { return m.prediction }

// Begin enters edit mode. It is a no-op unless the tag is editable, attached and idle.
func (m *Machine) Begin() bool {
	if m.detached || !m.editable || m.session != nil {
		return false
	}
	m.original = m.value
	draft := m.value
	if tagtext.IsPlaceholder(draft) {
		draft = ""
	}
	m.session = &editSession{draft: draft}
	if draft == "" {
		m.hint = true
	} else {
		m.session.selectAll = true
		m.hint = false
	}
	m.prediction = predict.None
	m.log.V(1).Info("edit started", "original", m.original)
	return true
}

// Input records a new draft.
func (m *Machine) Input(draft string) {
	if m.session == nil || m.detached {
		return
	}
	m.session.draft = draft
	m.session.selectAll = false
	m.hint = draft == ""
	m.refresh()
}

// Accept merges the ghost text into the draft. The session stays open.
func (m *Machine) Accept() bool {
	if m.session == nil || m.detached || !m.prediction.Active {
		return false
	}
	m.session.draft = predict.Accept(m.session.draft, m.prediction)
	m.session.selectAll = false
	m.hint = m.session.draft == ""
	// The ghost is consumed; nothing is predicted until the draft changes again.
	m.prediction = predict.None
	return true
}

// Tab accepts a pending prediction, otherwise confirms.
func (m *Machine) Tab() TabOutcome {
	if m.session == nil || m.detached {
		return TabIgnored
	}
	if m.prediction.Active {
		m.Accept()
		return TabAccepted
	}
	if m.Confirm() {
		return TabConfirmed
	}
	return TabIgnored
}

// Confirm commits the draft and arms the blur guard. The caller must call
// ReleaseBlurGuard on the next turn of its event loop.
func (m *Machine) Confirm() bool {
	if m.session == nil || m.detached {
		return false
	}
	draft := strings.TrimSpace(m.session.draft)
	if draft != "" {
		m.value = tagtext.TitleCase(draft)
		m.suggestions.Add(m.value)
	} else {
		m.value = tagtext.Placeholder
	}
	m.endSession()

	fromPlaceholder := tagtext.IsPlaceholder(m.original)
	switch {
	case m.value != m.original && !fromPlaceholder:
		m.fire(TagUpdated{NewTag: m.value, OldTag: m.original})
	case fromPlaceholder && draft != "":
		m.fire(TagAdded{NewTag: m.value})
	}
	m.log.V(1).Info("edit confirmed", "value", m.value, "original", m.original)
	m.original = m.value
	m.blurGuard = true
	return true
}

// Abort discards the draft. Typed text still seeds the suggestion pool.
func (m *Machine) Abort() bool {
	if m.session == nil || m.detached {
		return false
	}
	if draft := strings.TrimSpace(m.session.draft); draft != "" {
		m.suggestions.Add(draft)
	}
	m.value = m.original
	m.endSession()
	m.log.V(1).Info("edit aborted", "value", m.value)
	return true
}

// Blur handles focus loss: it aborts an open session unless a confirm just ran.
func (m *Machine) Blur() bool {
	if m.blurGuard {
		return false
	}
	return m.Abort()
}

// ReleaseBlurGuard re-enables blur handling after a confirm.
func (m *Machine) ReleaseBlurGuard() {
	m.blurGuard = false
}

// Click handles a pointer click on the label.
func (m *Machine) Click() {
	if m.detached || m.session != nil {
		return
	}
	if !m.editable {
		m.fire(TagClicked{Tag: m.value})
		return
	}
	m.Begin()
}

// Remove detaches the tag and notifies. It fires at most once.
func (m *Machine) Remove() bool {
	if m.detached || !m.removable {
		return false
	}
	m.session = nil
	m.hint = false
	m.prediction = predict.None
	m.detached = true
	m.fire(TagRemoved{Tag: strings.TrimSpace(m.value)})
	return true
}

func (m *Machine) endSession() {
	m.session = nil
	m.hint = false
	m.prediction = predict.None
}

func (m *Machine) refresh() {
	if m.session == nil {
		m.prediction = predict.None
		return
	}
	m.prediction = m.engine.Predict(m.session.draft)
}

func (m *Machine) fire(ev Event) {
	m.log.V(1).Info("event", "name", ev.Name())
	if m.emit != nil {
		m.emit(ev)
	}
}
