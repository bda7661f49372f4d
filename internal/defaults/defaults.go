// Package defaults embeds the baseline pilltag configuration shared by the
// component and the CLI.
package defaults

import (
	_ "embed"
	"fmt"
	"strconv"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed default_config.yaml
var embeddedDefaultConfig []byte

var (
	embeddedOnce sync.Once
	embedded     File
	embeddedErr  error
)

// ColorValue stores a colour token (ANSI number or hex). Numbers round-trip
// as YAML ints.
type ColorValue string

func (c ColorValue) MarshalYAML() (interface{}, error) {
	if c == "" {
		return "", nil
	}
	s := string(c)
	if _, err := strconv.Atoi(s); err == nil {
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: s}, nil
	}
	return s, nil
}

func (c *ColorValue) UnmarshalYAML(value *yaml.Node) error {
	if value == nil {
		*c = ""
		return nil
	}
	*c = ColorValue(value.Value)
	return nil
}

// UnmarshalText lets TOML and flag decoders fill a ColorValue.
func (c *ColorValue) UnmarshalText(text []byte) error {
	*c = ColorValue(text)
	return nil
}

// TagConfig configures a single tag.
type TagConfig struct {
	Value        string   `yaml:"value" toml:"value"`
	Editable     *bool    `yaml:"editable,omitempty" toml:"editable,omitempty"`
	Removable    *bool    `yaml:"removable,omitempty" toml:"removable,omitempty"`
	AutoComplete []string `yaml:"auto_complete,omitempty" toml:"auto_complete,omitempty"`
}

// StyleConfig is the file form of the style knobs.
type StyleConfig struct {
	FontFamily            string     `yaml:"font_family,omitempty" toml:"font_family,omitempty"`
	FontSize              string     `yaml:"font_size,omitempty" toml:"font_size,omitempty"`
	TextColor             ColorValue `yaml:"text_color,omitempty" toml:"text_color,omitempty"`
	Background            ColorValue `yaml:"background,omitempty" toml:"background,omitempty"`
	EditBackground        ColorValue `yaml:"edit_background,omitempty" toml:"edit_background,omitempty"`
	RemoveColor           ColorValue `yaml:"remove_color,omitempty" toml:"remove_color,omitempty"`
	RemoveHoverColor      ColorValue `yaml:"remove_hover_color,omitempty" toml:"remove_hover_color,omitempty"`
	RemoveBackground      ColorValue `yaml:"remove_background,omitempty" toml:"remove_background,omitempty"`
	RemoveHoverBackground ColorValue `yaml:"remove_hover_background,omitempty" toml:"remove_hover_background,omitempty"`
	PlaceholderColor      ColorValue `yaml:"placeholder_color,omitempty" toml:"placeholder_color,omitempty"`
	GhostColor            ColorValue `yaml:"ghost_color,omitempty" toml:"ghost_color,omitempty"`
	CornerRadius          *int       `yaml:"corner_radius,omitempty" toml:"corner_radius,omitempty"`
}

// KeysConfig lists the keys bound to each tag action.
type KeysConfig struct {
	Confirm []string `yaml:"confirm,omitempty" toml:"confirm,omitempty"`
	Tab     []string `yaml:"tab,omitempty" toml:"tab,omitempty"`
	Abort   []string `yaml:"abort,omitempty" toml:"abort,omitempty"`
	Remove  []string `yaml:"remove,omitempty" toml:"remove,omitempty"`
}

// File is the whole configuration document.
type File struct {
	Tag    TagConfig   `yaml:"tag" toml:"tag"`
	Styles StyleConfig `yaml:"styles" toml:"styles"`
	Keys   KeysConfig  `yaml:"keys" toml:"keys"`
}

// YAML returns a copy of the embedded default config bytes.
func YAML() []byte {
	return append([]byte(nil), embeddedDefaultConfig...)
}

// Config parses and returns the embedded defaults. The result is cached.
func Config() (File, error) {
	embeddedOnce.Do(func() {
		if len(embeddedDefaultConfig) == 0 {
			embeddedErr = fmt.Errorf("embedded default config is empty")
			return
		}
		if err := yaml.Unmarshal(embeddedDefaultConfig, &embedded); err != nil {
			embeddedErr = fmt.Errorf("decode embedded default config: %w", err)
		}
	})
	return embedded, embeddedErr
}
