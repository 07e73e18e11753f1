package render

import (
	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"

	"github.com/rvrjc/collegechat/internal/models"
)

// StyleCollege selects the glamour palette matching the college theme.
const StyleCollege = "college"

// TUITheme defines the color scheme for the TUI interface
type TUITheme struct {
	Name        models.Theme
	Description string

	// Base colors
	Background lipgloss.Color
	Surface    lipgloss.Color
	Border     lipgloss.Color

	// Accent colors
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color

	// Text colors
	Text     lipgloss.Color
	TextDim  lipgloss.Color
	TextMute lipgloss.Color
}

// Built-in TUI themes
var (
	LightTheme = TUITheme{
		Name:        models.ThemeLight,
		Description: "Light - for bright terminals",

		Background: lipgloss.Color("#f5f5f5"),
		Surface:    lipgloss.Color("#e8e8e8"),
		Border:     lipgloss.Color("#b0b0b0"),

		Primary:   lipgloss.Color("#1565c0"),
		Secondary: lipgloss.Color("#2e7d32"),
		Accent:    lipgloss.Color("#6a1b9a"),
		Warning:   lipgloss.Color("#ef6c00"),
		Error:     lipgloss.Color("#c62828"),

		Text:     lipgloss.Color("#212121"),
		TextDim:  lipgloss.Color("#616161"),
		TextMute: lipgloss.Color("#9e9e9e"),
	}

	DarkTheme = TUITheme{
		Name:        models.ThemeDark,
		Description: "Dark - low-glare night palette",

		Background: lipgloss.Color("#1a1b26"),
		Surface:    lipgloss.Color("#24283b"),
		Border:     lipgloss.Color("#414868"),

		Primary:   lipgloss.Color("#7aa2f7"),
		Secondary: lipgloss.Color("#9ece6a"),
		Accent:    lipgloss.Color("#bb9af7"),
		Warning:   lipgloss.Color("#e0af68"),
		Error:     lipgloss.Color("#f7768e"),

		Text:     lipgloss.Color("#c0caf5"),
		TextDim:  lipgloss.Color("#565f89"),
		TextMute: lipgloss.Color("#3b4261"),
	}

	CollegeTheme = TUITheme{
		Name:        models.ThemeCollege,
		Description: "College - maroon and gold campus colours",

		Background: lipgloss.Color("#2b0d12"),
		Surface:    lipgloss.Color("#3d141b"),
		Border:     lipgloss.Color("#8c2f39"),

		Primary:   lipgloss.Color("#f2c14e"), // Gold
		Secondary: lipgloss.Color("#e07a5f"), // Terracotta
		Accent:    lipgloss.Color("#f4d58d"), // Pale gold
		Warning:   lipgloss.Color("#f9a03f"),
		Error:     lipgloss.Color("#ff6b6b"),

		Text:     lipgloss.Color("#f8ede3"),
		TextDim:  lipgloss.Color("#b99a8f"),
		TextMute: lipgloss.Color("#6e4a4f"),
	}
)

// GetTUIThemeByName returns a TUI theme by its name
func GetTUIThemeByName(name models.Theme) (TUITheme, bool) {
	switch name {
	case models.ThemeLight:
		return LightTheme, true
	case models.ThemeDark:
		return DarkTheme, true
	case models.ThemeCollege:
		return CollegeTheme, true
	default:
		return TUITheme{}, false
	}
}

// ThemeFor returns the theme for name, or the default theme
func ThemeFor(name models.Theme) TUITheme {
	if theme, ok := GetTUIThemeByName(name); ok {
		return theme
	}
	theme, _ := GetTUIThemeByName(models.DefaultTheme)
	return theme
}

// AvailableTUIThemes returns every theme in selector order
func AvailableTUIThemes() []TUITheme {
	themes := make([]TUITheme, 0, len(models.Themes))
	for _, name := range models.Themes {
		themes = append(themes, ThemeFor(name))
	}
	return themes
}

// GlamourStyle returns the markdown style paired with a TUI theme
func GlamourStyle(name models.Theme) string {
	switch name {
	case models.ThemeLight:
		return "light"
	case models.ThemeDark:
		return "dark"
	default:
		return StyleCollege
	}
}

// collegeStyleConfig recolours glamour's dark style with the college palette.
func collegeStyleConfig() ansi.StyleConfig {
	cfg := styles.DarkStyleConfig

	gold := string(CollegeTheme.Primary)
	paleGold := string(CollegeTheme.Accent)
	maroon := string(CollegeTheme.Border)
	text := string(CollegeTheme.Text)
	terracotta := string(CollegeTheme.Secondary)

	cfg.Document.StylePrimitive.Color = &text
	cfg.Heading.StylePrimitive.Color = &gold
	cfg.H1.StylePrimitive.Color = &paleGold
	cfg.H1.StylePrimitive.BackgroundColor = &maroon
	cfg.Strong.Color = &gold
	cfg.Link.Color = &terracotta
	cfg.LinkText.Color = &paleGold
	cfg.Item.Color = &gold

	return cfg
}
