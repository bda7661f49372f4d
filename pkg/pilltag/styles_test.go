package pilltag

import (
	"testing"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"

	"github.com/oakwood-commons/pilltag/internal/defaults"
)

func TestDefaultStylesFromEmbeddedConfig(t *testing.T) {
	s := DefaultStyles()
	assert.Equal(t, "#ddf4ff", s.Background)
	assert.Equal(t, "#ffffff", s.EditBackground)
	assert.Equal(t, "#8c959f", s.GhostColor)
	assert.Equal(t, 12, s.CornerRadius)
}

func TestStylesFromConfigOverlays(t *testing.T) {
	radius := 0
	s := StylesFromConfig(defaults.StyleConfig{
		TextColor:    "81",
		FontSize:     " 1rem ",
		CornerRadius: &radius,
	}, DefaultStyles())

	assert.Equal(t, "81", s.TextColor)
	assert.Equal(t, "1rem", s.FontSize)
	assert.Equal(t, 0, s.CornerRadius)
	assert.Equal(t, "#ddf4ff", s.Background)
}

func TestSquareBorderWithoutRadius(t *testing.T) {
	s := DefaultStyles()
	s.CornerRadius = 0
	m := New("Go", WithStyles(s))
	assert.Contains(t, m.View(), "┌")

	m.SetStyles(DefaultStyles())
	assert.Contains(t, m.View(), "╭")
}

func TestKeyMapFromConfig(t *testing.T) {
	km := KeyMapFromConfig(defaults.KeysConfig{Confirm: []string{"ctrl+s", "enter"}}, DefaultKeyMap())
	assert.Equal(t, []string{"ctrl+s", "enter"}, km.Confirm.Keys())
	assert.Equal(t, "ctrl+s", km.Confirm.Help().Key)
	assert.Equal(t, "confirm", km.Confirm.Help().Desc)
	assert.Equal(t, []string{"esc"}, km.Abort.Keys())
	assert.Len(t, km.ShortHelp(), 4)
}

func TestCustomKeyMapDrivesModel(t *testing.T) {
	km := DefaultKeyMap()
	km.Confirm = key.NewBinding(key.WithKeys("ctrl+s"))
	m := New("", WithEditable(true), WithKeyMap(km))
	m.Focus()
	typeText(m, "go")

	press(m, tea.KeyEnter)
	assert.True(t, m.Editing())

	_, cmd := m.Update(tea.KeyPressMsg{Code: 's', Mod: tea.ModCtrl})
	assert.Equal(t, []Event{TagAdded{NewTag: "Go"}}, deliver(m, cmd))
}
