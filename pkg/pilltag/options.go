package pilltag

import (
	"github.com/go-logr/logr"
)

type options struct {
	editable     bool
	removable    bool
	autoComplete []string
	styles       Styles
	keys         KeyMap
	log          logr.Logger
	listener     func(Event)
	id           string
}

// Option configures a Model at construction.
type Option func(*options)

// WithEditable enables edit mode. Default false.
func WithEditable(v bool) Option {
	return func(o *options) { o.editable = v }
}

// WithRemovable shows the removal control. Default false.
func WithRemovable(v bool) Option {
	return func(o *options) { o.removable = v }
}

// WithAutoComplete seeds the suggestion pool.
func WithAutoComplete(suggestions []string) Option {
	return func(o *options) { o.autoComplete = append([]string(nil), suggestions...) }
}

// WithStyles replaces the default styles.
func WithStyles(s Styles) Option {
	return func(o *options) { o.styles = s }
}

// WithKeyMap replaces the default key bindings.
func WithKeyMap(k KeyMap) Option {
	return func(o *options) { o.keys = k }
}

// WithLogger sets the logger used for diagnostics. Default: discard.
func WithLogger(log logr.Logger) Option {
	return func(o *options) { o.log = log }
}

// WithListener registers a callback invoked synchronously for every event, in
// addition to the EventMsg returned through tea.Cmd.
func WithListener(fn func(Event)) Option {
	return func(o *options) { o.listener = fn }
}

// WithID overrides the generated instance ID.
func WithID(id string) Option {
	return func(o *options) { o.id = id }
}
