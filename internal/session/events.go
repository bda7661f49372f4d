package session

// Event names as seen by hosts.
const (
	EventTagClicked = "tag-clicked"
	EventTagRemoved = "tag-removed"
	EventTagUpdated = "tag-updated"
	EventTagAdded   = "tag-added"
)

// Event is an outbound notification.
type Event interface {
	Name() string
}

// TagClicked fires when a non-editable tag is clicked.
type TagClicked struct {
	Tag string `json:"tag" yaml:"tag"`
}

// TagRemoved fires when the removal control is activated.
type TagRemoved struct {
	Tag string `json:"tag" yaml:"tag"`
}

// TagUpdated fires when a confirm changes an existing value.
type TagUpdated struct {
	NewTag string `json:"newTag" yaml:"newTag"`
	OldTag string `json:"oldTag" yaml:"oldTag"`
}

// TagAdded fires when a confirm completes a session that started from the placeholder.
type TagAdded struct {
	NewTag string `json:"newTag" yaml:"newTag"`
}

func (TagClicked) Name() string { return EventTagClicked }
func (TagRemoved) Name() string { return EventTagRemoved }
func (TagUpdated) Name() string { return EventTagUpdated }
func (TagAdded) Name() string   { return EventTagAdded }

// Emitter receives events synchronously from the machine.
type Emitter func(Event)
