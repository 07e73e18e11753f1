package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rvrjc/collegechat/internal/models"
)

func TestGetTUIThemeByName(t *testing.T) {
	for _, name := range models.Themes {
		theme, ok := GetTUIThemeByName(name)
		require.True(t, ok, "theme %s", name)
		assert.Equal(t, name, theme.Name)
		assert.NotEmpty(t, theme.Primary)
		assert.NotEmpty(t, theme.Text)
	}

	_, ok := GetTUIThemeByName(models.Theme("neon"))
	assert.False(t, ok)
}

func TestThemeForFallsBackToDefault(t *testing.T) {
	assert.Equal(t, models.DefaultTheme, ThemeFor(models.Theme("neon")).Name)
	assert.Equal(t, models.ThemeDark, ThemeFor(models.ThemeDark).Name)
}

func TestAvailableTUIThemes(t *testing.T) {
	themes := AvailableTUIThemes()
	require.Len(t, themes, len(models.Themes))
	for i, theme := range themes {
		assert.Equal(t, models.Themes[i], theme.Name)
	}
}

func TestGlamourStyle(t *testing.T) {
	assert.Equal(t, "light", GlamourStyle(models.ThemeLight))
	assert.Equal(t, "dark", GlamourStyle(models.ThemeDark))
	assert.Equal(t, StyleCollege, GlamourStyle(models.ThemeCollege))
}

func TestCollegeStyleConfigDoesNotMutateDark(t *testing.T) {
	cfg := collegeStyleConfig()
	require.NotNil(t, cfg.Heading.Color)
	assert.Equal(t, string(CollegeTheme.Primary), *cfg.Heading.Color)

	again := collegeStyleConfig()
	assert.NotSame(t, cfg.Heading.Color, again.Heading.Color)
}
