package pilltag

import (
	"image/color"
	"strings"
	"sync"

	"charm.land/lipgloss/v2"

	"github.com/oakwood-commons/pilltag/internal/defaults"
)

// Styles holds the visual knobs of a tag. Colours are tokens accepted by
// lipgloss.Color: ANSI numbers ("81"), or hex ("#ddf4ff"). An empty token leaves
// the terminal default in place.
//
// FontFamily and FontSize only affect RenderHTML; terminal cells have a fixed font.
// CornerRadius selects a rounded border in the terminal when positive and is
// emitted in pixels by RenderHTML.
type Styles struct {
	FontFamily            string
	FontSize              string
	TextColor             string
	Background            string
	EditBackground        string
	RemoveColor           string
	RemoveHoverColor      string
	RemoveBackground      string
	RemoveHoverBackground string
	PlaceholderColor      string
	GhostColor            string
	CornerRadius          int
}

var (
	defaultStylesOnce sync.Once
	defaultStyles     Styles
)

// DefaultStyles returns the styles from the embedded default configuration,
// falling back to a built-in palette if it cannot be read.
func DefaultStyles() Styles {
	defaultStylesOnce.Do(func() {
		cfg, err := defaults.Config()
		if err != nil {
			defaultStyles = fallbackStyles()
			return
		}
		defaultStyles = StylesFromConfig(cfg.Styles, fallbackStyles())
	})
	return defaultStyles
}

func fallbackStyles() Styles {
	return Styles{
		FontFamily:            "system-ui, sans-serif",
		FontSize:              "0.875rem",
		TextColor:             "#24292f",
		Background:            "#ddf4ff",
		EditBackground:        "#ffffff",
		RemoveColor:           "#57606a",
		RemoveHoverColor:      "#ffffff",
		RemoveBackground:      "#ddf4ff",
		RemoveHoverBackground: "#cf222e",
		PlaceholderColor:      "#8c959f",
		GhostColor:            "#8c959f",
		CornerRadius:          12,
	}
}

// StylesFromConfig overlays the set fields of cfg on base.
func StylesFromConfig(cfg defaults.StyleConfig, base Styles) Styles {
	setString := func(src string, dst *string) {
		if v := strings.TrimSpace(src); v != "" {
			*dst = v
		}
	}
	setColor := func(src defaults.ColorValue, dst *string) {
		setString(string(src), dst)
	}
	setString(cfg.FontFamily, &base.FontFamily)
	setString(cfg.FontSize, &base.FontSize)
	setColor(cfg.TextColor, &base.TextColor)
	setColor(cfg.Background, &base.Background)
	setColor(cfg.EditBackground, &base.EditBackground)
	setColor(cfg.RemoveColor, &base.RemoveColor)
	setColor(cfg.RemoveHoverColor, &base.RemoveHoverColor)
	setColor(cfg.RemoveBackground, &base.RemoveBackground)
	setColor(cfg.RemoveHoverBackground, &base.RemoveHoverBackground)
	setColor(cfg.PlaceholderColor, &base.PlaceholderColor)
	setColor(cfg.GhostColor, &base.GhostColor)
	if cfg.CornerRadius != nil {
		base.CornerRadius = *cfg.CornerRadius
	}
	return base
}

// colorOf resolves a token, returning nil for an empty one.
func colorOf(token string) color.Color {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil
	}
	return lipgloss.Color(token)
}

func fg(s lipgloss.Style, token string) lipgloss.Style {
	if c := colorOf(token); c != nil {
		return s.Foreground(c)
	}
	return s
}

func bg(s lipgloss.Style, token string) lipgloss.Style {
	if c := colorOf(token); c != nil {
		return s.Background(c)
	}
	return s
}

func borderFg(s lipgloss.Style, token string) lipgloss.Style {
	if c := colorOf(token); c != nil {
		return s.BorderForeground(c)
	}
	return s
}
