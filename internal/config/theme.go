package config

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// ThemeOverride models an optional theme YAML file. Any empty field keeps
// the built-in color.
type ThemeOverride struct {
	Name       string `yaml:"name"`
	Background string `yaml:"background"`
	Foreground string `yaml:"foreground"`
	Primary    string `yaml:"primary"`
	Secondary  string `yaml:"secondary"`
	Success    string `yaml:"success"`
	Warning    string `yaml:"warning"`
	Error      string `yaml:"error"`
	Border     string `yaml:"border"`
	Selection  string `yaml:"selection"`
}

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// LoadTheme reads and validates a theme override file. A missing path or
// file returns nil with no error.
func LoadTheme(path string) (*ThemeOverride, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var t ThemeOverride
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("invalid theme yaml: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// Validate ensures every set color is a #rrggbb value
func (t *ThemeOverride) Validate() error {
	fields := map[string]string{
		"background": t.Background,
		"foreground": t.Foreground,
		"primary":    t.Primary,
		"secondary":  t.Secondary,
		"success":    t.Success,
		"warning":    t.Warning,
		"error":      t.Error,
		"border":     t.Border,
		"selection":  t.Selection,
	}
	for name, val := range fields {
		if val != "" && !hexColor.MatchString(val) {
			return fmt.Errorf("theme.%s: %q is not a #rrggbb color", name, val)
		}
	}
	return nil
}
