package models

import "strings"

// Theme names one of the fixed colour schemes
type Theme string

const (
	ThemeLight   Theme = "light"
	ThemeDark    Theme = "dark"
	ThemeCollege Theme = "college"
)

// DefaultTheme is active at start unless configured otherwise
const DefaultTheme = ThemeCollege

// Themes lists every theme in selector order
var Themes = []Theme{ThemeLight, ThemeDark, ThemeCollege}

// ParseTheme resolves a theme name case-insensitively
func ParseTheme(name string) (Theme, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, t := range Themes {
		if string(t) == name {
			return t, true
		}
	}
	return "", false
}
