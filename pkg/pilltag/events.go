package pilltag

import (
	tea "charm.land/bubbletea/v2"

	"github.com/oakwood-commons/pilltag/internal/session"
)

// Event names.
const (
	EventTagClicked = session.EventTagClicked
	EventTagRemoved = session.EventTagRemoved
	EventTagUpdated = session.EventTagUpdated
	EventTagAdded   = session.EventTagAdded
)

type (
	// Event is an outbound notification; switch on the concrete type or Name().
	Event = session.Event
	// TagClicked carries {tag}.
	TagClicked = session.TagClicked
	// TagRemoved carries {tag}.
	TagRemoved = session.TagRemoved
	// TagUpdated carries {newTag, oldTag}.
	TagUpdated = session.TagUpdated
	// TagAdded carries {newTag}.
	TagAdded = session.TagAdded
)

// EventMsg delivers an Event to the host's Update loop. ID identifies the
// emitting tag when a host owns several.
type EventMsg struct {
	ID    string
	Event Event
}

// releaseGuardMsg clears the blur guard one loop turn after a confirm.
type releaseGuardMsg struct {
	id string
}

func eventCmd(id string, ev Event) tea.Cmd {
	return func() tea.Msg {
		return EventMsg{ID: id, Event: ev}
	}
}
