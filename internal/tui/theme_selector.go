package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/rvrjc/collegechat/internal/models"
	"github.com/rvrjc/collegechat/internal/render"
)

func themeIndex(theme models.Theme) int {
	for i, t := range models.Themes {
		if t == theme {
			return i
		}
	}
	return 0
}

// updateThemeSelection handles keys while the theme selector is open
func (m Model) updateThemeSelection(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m.quit()

	case "esc":
		m.selectingTheme = false

	case "up", "k":
		m.themeCursor--
		if m.themeCursor < 0 {
			m.themeCursor = len(models.Themes) - 1
		}

	case "down", "j":
		m.themeCursor++
		if m.themeCursor >= len(models.Themes) {
			m.themeCursor = 0
		}

	case "enter":
		m.selectTheme(models.Themes[m.themeCursor])
		m.selectingTheme = false
	}

	return m, nil
}

// selectTheme swaps the whole style set and re-renders with the new palette
func (m *Model) selectTheme(theme models.Theme) {
	if !m.session.SetTheme(theme) {
		return
	}
	m.applyStyles(NewStyles(render.ThemeFor(theme)))
	m.refresh()
	log.Debug().Str("theme", string(theme)).Msg("theme changed")
}

// renderThemeSelector renders the theme selection overlay
func (m Model) renderThemeSelector() string {
	width := m.width - 8
	if width < 40 {
		width = 40
	}

	var content strings.Builder

	title := m.styles.SelectorTitle.Render("Select a theme")
	title += m.styles.Hint.Render(fmt.Sprintf("  (current: %s)", m.session.Theme()))
	content.WriteString(title)
	content.WriteString("\n\n")

	for i, theme := range render.AvailableTUIThemes() {
		cursor := "  "
		nameStyle := m.styles.MenuItem
		if i == m.themeCursor {
			cursor = m.styles.Cursor.Render("▸ ")
			nameStyle = m.styles.MenuSelected
		}

		line := cursor + nameStyle.Render(string(theme.Name))
		if theme.Description != "" {
			line += m.styles.Value.Render(" - " + theme.Description)
		}
		content.WriteString(line)
		content.WriteString("\n")
	}

	content.WriteString("\n")

	shortcuts := []string{
		m.styles.StatusKey.Render("↑↓") + m.styles.StatusDesc.Render(" Navigate"),
		m.styles.StatusKey.Render("Enter") + m.styles.StatusDesc.Render(" Select"),
		m.styles.StatusKey.Render("Esc") + m.styles.StatusDesc.Render(" Cancel"),
	}
	content.WriteString(strings.Join(shortcuts, "  │  "))

	return m.styles.SelectorBox.Width(width).Render(content.String())
}
