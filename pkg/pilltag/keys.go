package pilltag

import (
	"charm.land/bubbles/v2/key"

	"github.com/oakwood-commons/pilltag/internal/defaults"
)

// KeyMap binds keys to tag actions. It satisfies help.KeyMap.
type KeyMap struct {
	// Confirm commits the draft, or activates an idle focused tag.
	Confirm key.Binding
	// Tab accepts a pending prediction, otherwise confirms.
	Tab key.Binding
	// Abort discards the draft.
	Abort key.Binding
	// Remove detaches an idle focused tag when it is removable.
	Remove key.Binding
}

// DefaultKeyMap returns the bindings from the embedded default configuration.
func DefaultKeyMap() KeyMap {
	km := KeyMap{
		Confirm: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
		Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "complete")),
		Abort:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Remove:  key.NewBinding(key.WithKeys("delete"), key.WithHelp("del", "remove")),
	}
	if cfg, err := defaults.Config(); err == nil {
		km = KeyMapFromConfig(cfg.Keys, km)
	}
	return km
}

// KeyMapFromConfig rebinds the actions listed in cfg, keeping base for the rest.
func KeyMapFromConfig(cfg defaults.KeysConfig, base KeyMap) KeyMap {
	rebind := func(b *key.Binding, keys []string) {
		if len(keys) == 0 {
			return
		}
		b.SetKeys(keys...)
		b.SetHelp(keys[0], b.Help().Desc)
	}
	rebind(&base.Confirm, cfg.Confirm)
	rebind(&base.Tab, cfg.Tab)
	rebind(&base.Abort, cfg.Abort)
	rebind(&base.Remove, cfg.Remove)
	return base
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Confirm, k.Tab, k.Abort, k.Remove}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Confirm, k.Tab}, {k.Abort, k.Remove}}
}
