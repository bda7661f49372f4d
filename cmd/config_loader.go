package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/pilltag/internal/defaults"
)

var hexColorPattern = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// configLoader centralizes config loading so callers avoid duplicating merge logic.
type configLoader struct {
	defaultConfig func() ([]byte, error)
	readFile      func(string) ([]byte, error)
}

var cfgLoader = configLoader{
	defaultConfig: loadDefaultConfigYAML,
	readFile:      os.ReadFile,
}

func loadMergedConfig(cfgPath string) (defaults.File, error) {
	return cfgLoader.loadMergedConfig(cfgPath)
}

func loadDefaultConfigYAML() ([]byte, error) {
	data := defaults.YAML()
	if len(data) == 0 {
		return nil, fmt.Errorf("embedded default config is empty")
	}
	return data, nil
}

// loadMergedConfig decodes the embedded defaults, then overlays the keys
// present in cfgPath. The merged result is validated.
func (l configLoader) loadMergedConfig(cfgPath string) (defaults.File, error) {
	var cfg defaults.File

	defaultData, err := l.defaultConfig()
	if err != nil {
		return cfg, fmt.Errorf("load default config: %w", err)
	}
	if err := yaml.Unmarshal(defaultData, &cfg); err != nil {
		return cfg, fmt.Errorf("decode default config: %w", err)
	}

	if cfgPath != "" {
		data, err := l.readFile(cfgPath)
		if err != nil {
			return cfg, fmt.Errorf("read config %s: %w", cfgPath, err)
		}
		if err := overlayConfig(&cfg, cfgPath, data); err != nil {
			return cfg, fmt.Errorf("decode config %s: %w", cfgPath, err)
		}
	}

	if err := validateConfig(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// overlayConfig decodes data onto cfg. Keys absent from data keep their value.
// TOML documents are normalized through YAML so both formats share the same
// decoding rules, including integer colours.
func overlayConfig(cfg *defaults.File, path string, data []byte) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		var doc map[string]any
		if err := toml.Unmarshal(data, &doc); err != nil {
			return err
		}
		normalized, err := yaml.Marshal(doc)
		if err != nil {
			return err
		}
		return yaml.Unmarshal(normalized, cfg)
	case ".yaml", ".yml", "":
		return yaml.Unmarshal(data, cfg)
	default:
		return fmt.Errorf("unsupported config format %q (want .yaml, .yml or .toml)", filepath.Ext(path))
	}
}

// validateConfig reports every problem in cfg at once.
func validateConfig(cfg defaults.File) error {
	var result *multierror.Error

	colors := []struct {
		name  string
		value defaults.ColorValue
	}{
		{"styles.text_color", cfg.Styles.TextColor},
		{"styles.background", cfg.Styles.Background},
		{"styles.edit_background", cfg.Styles.EditBackground},
		{"styles.remove_color", cfg.Styles.RemoveColor},
		{"styles.remove_hover_color", cfg.Styles.RemoveHoverColor},
		{"styles.remove_background", cfg.Styles.RemoveBackground},
		{"styles.remove_hover_background", cfg.Styles.RemoveHoverBackground},
		{"styles.placeholder_color", cfg.Styles.PlaceholderColor},
		{"styles.ghost_color", cfg.Styles.GhostColor},
	}
	for _, c := range colors {
		if err := validateColor(string(c.value)); err != nil {
			result = multierror.Append(result, fmt.Errorf("%s: %w", c.name, err))
		}
	}

	if r := cfg.Styles.CornerRadius; r != nil && *r < 0 {
		result = multierror.Append(result, fmt.Errorf("styles.corner_radius: must not be negative, got %d", *r))
	}

	bindings := map[string][]string{
		"keys.confirm": cfg.Keys.Confirm,
		"keys.tab":     cfg.Keys.Tab,
		"keys.abort":   cfg.Keys.Abort,
		"keys.remove":  cfg.Keys.Remove,
	}
	for _, name := range []string{"keys.confirm", "keys.tab", "keys.abort", "keys.remove"} {
		for i, k := range bindings[name] {
			if strings.TrimSpace(k) == "" {
				result = multierror.Append(result, fmt.Errorf("%s[%d]: empty key", name, i))
			}
		}
	}

	for i, s := range cfg.Tag.AutoComplete {
		if strings.TrimSpace(s) == "" {
			result = multierror.Append(result, fmt.Errorf("tag.auto_complete[%d]: empty suggestion", i))
		}
	}

	return result.ErrorOrNil()
}

// validateColor accepts "", #rgb, #rrggbb, or an ANSI index 0-255.
func validateColor(token string) error {
	token = strings.TrimSpace(token)
	if token == "" || hexColorPattern.MatchString(token) {
		return nil
	}
	n, err := strconv.Atoi(token)
	if err != nil {
		return fmt.Errorf("invalid colour %q", token)
	}
	if n < 0 || n > 255 {
		return fmt.Errorf("ANSI colour %d out of range 0-255", n)
	}
	return nil
}
