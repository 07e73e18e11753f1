package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rvrjc/collegechat/internal/config"
	"github.com/rvrjc/collegechat/internal/models"
	"github.com/rvrjc/collegechat/internal/render"
)

// configView represents the current view in the settings menu
type configView int

const (
	viewMain configView = iota
	viewThemeSelect
)

// Menu item indices for main view
const (
	menuTheme = iota
	menuCopyToClipboard
	menuEmoji
	menuPreserveNewLines
	menuReplyDelay
	menuExit
	menuItemCount
)

// replyDelays are the pacing choices offered by the settings menu
var replyDelays = []time.Duration{0, 1500 * time.Millisecond, 3 * time.Second}

// feedbackClearMsg is sent to clear feedback messages
type feedbackClearMsg struct{}

// ConfigModel is the settings editor. Every change is saved immediately.
type ConfigModel struct {
	config     config.Config
	configPath string
	save       func(config.Config) error
	styles     Styles

	// Navigation
	view        configView
	cursor      int
	themeCursor int

	// Feedback
	feedback        string
	feedbackErr     bool
	feedbackTimeout time.Duration

	// Dimensions
	width  int
	height int
	ready  bool
}

// NewConfigModel creates the settings editor for cfg. save persists changes.
func NewConfigModel(cfg config.Config, configPath string, save func(config.Config) error) ConfigModel {
	return ConfigModel{
		config:          cfg,
		configPath:      configPath,
		save:            save,
		styles:          NewStyles(render.ThemeFor(cfg.ThemeOrDefault())),
		themeCursor:     themeIndex(cfg.ThemeOrDefault()),
		feedbackTimeout: 2 * time.Second,
	}
}

// Config returns the configuration as currently edited
func (m ConfigModel) Config() config.Config {
	return m.config
}

// Init initializes the model
func (m ConfigModel) Init() tea.Cmd {
	return nil
}

// clearFeedback returns a command that clears the feedback message after a delay
func clearFeedback(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return feedbackClearMsg{}
	})
}

// Update handles messages and updates the model
func (m ConfigModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

	case feedbackClearMsg:
		m.feedback = ""
		m.feedbackErr = false

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "esc":
			if m.view == viewThemeSelect {
				m.view = viewMain
				return m, nil
			}
			return m, tea.Quit

		case "up", "k":
			m.moveCursor(-1)

		case "down", "j":
			m.moveCursor(1)

		case "enter", " ":
			return m.handleSelect()
		}
	}

	return m, nil
}

func (m *ConfigModel) moveCursor(delta int) {
	if m.view == viewThemeSelect {
		m.themeCursor = (m.themeCursor + delta + len(models.Themes)) % len(models.Themes)
		return
	}
	m.cursor = (m.cursor + delta + menuItemCount) % menuItemCount
}

// handleSelect handles menu item selection
func (m ConfigModel) handleSelect() (tea.Model, tea.Cmd) {
	if m.view == viewThemeSelect {
		theme := models.Themes[m.themeCursor]
		m.config.Theme = string(theme)
		m.styles = NewStyles(render.ThemeFor(theme))
		m.view = viewMain
		return m.persist(fmt.Sprintf("Theme set to %s", theme))
	}

	switch m.cursor {
	case menuTheme:
		m.view = viewThemeSelect
		return m, nil

	case menuCopyToClipboard:
		m.config.CopyToClipboard = !m.config.CopyToClipboard
		return m.persist("Copy to clipboard " + enabledWord(m.config.CopyToClipboard))

	case menuEmoji:
		m.config.Markdown.EnableEmoji = !m.config.Markdown.EnableEmoji
		return m.persist("Emoji " + enabledWord(m.config.Markdown.EnableEmoji))

	case menuPreserveNewLines:
		m.config.Markdown.PreserveNewLines = !m.config.Markdown.PreserveNewLines
		return m.persist("Preserve newlines " + enabledWord(m.config.Markdown.PreserveNewLines))

	case menuReplyDelay:
		m.config.ReplyDelay = nextDelay(m.config.ReplyDelay)
		return m.persist(fmt.Sprintf("Reply delay set to %s", m.config.ReplyDelay))

	case menuExit:
		return m, tea.Quit
	}

	return m, nil
}

// persist validates and saves the edited config. Invalid settings are
// reported and never written.
func (m ConfigModel) persist(done string) (tea.Model, tea.Cmd) {
	err := m.config.Validate()
	if err == nil {
		err = m.save(m.config)
	}
	if err != nil {
		m.feedback = fmt.Sprintf("Error: %v", err)
		m.feedbackErr = true
	} else {
		m.feedback = done
		m.feedbackErr = false
	}
	return m, clearFeedback(m.feedbackTimeout)
}

func nextDelay(current time.Duration) time.Duration {
	for i, d := range replyDelays {
		if d == current {
			return replyDelays[(i+1)%len(replyDelays)]
		}
	}
	return replyDelays[0]
}

func enabledWord(v bool) string {
	if v {
		return "enabled"
	}
	return "disabled"
}

// View renders the TUI
func (m ConfigModel) View() string {
	if !m.ready {
		return m.styles.Spinner.Render("  Initializing...")
	}

	contentWidth := m.width - 4
	if contentWidth < 40 {
		contentWidth = 40
	}

	panel := m.styles.SelectorBox.Width(contentWidth)

	sections := []string{
		m.styles.Header.Width(contentWidth).Render(m.styles.Title.Render("🎓 Settings")),
		panel.Render(m.styles.SelectorTitle.Render("Config file") + "\n" + m.styles.Hint.Render(m.configPath)),
	}

	if m.view == viewThemeSelect {
		sections = append(sections, panel.Render(m.renderThemeSelect()))
	} else {
		sections = append(sections, panel.Render(m.renderMainMenu()))
	}

	switch {
	case m.feedback == "":
	case m.feedbackErr:
		sections = append(sections, m.styles.Error.Render("✗ "+m.feedback))
	default:
		sections = append(sections, m.styles.Feedback.Render("✓ "+m.feedback))
	}

	sections = append(sections, m.renderStatusBar(contentWidth))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m ConfigModel) menuLine(selected bool, label, value string) string {
	cursor := "  "
	style := m.styles.MenuItem
	if selected {
		cursor = m.styles.Cursor.Render("▸ ")
		style = m.styles.MenuSelected
	}
	if value == "" {
		return cursor + style.Render(label)
	}
	return cursor + style.Width(20).Render(label) + value
}

// renderMainMenu renders the main settings menu
func (m ConfigModel) renderMainMenu() string {
	rows := []struct {
		label string
		value string
	}{
		{"Theme", m.styles.Value.Render(m.config.Theme)},
		{"Copy to Clipboard", m.renderBoolValue(m.config.CopyToClipboard)},
		{"Emoji", m.renderBoolValue(m.config.Markdown.EnableEmoji)},
		{"Preserve Newlines", m.renderBoolValue(m.config.Markdown.PreserveNewLines)},
		{"Reply Delay", m.styles.Value.Render(m.config.ReplyDelay.String())},
		{"Exit", ""},
	}

	items := []string{m.styles.SelectorTitle.Render("⚙ Settings"), ""}
	for i, row := range rows {
		if i == menuExit {
			items = append(items, "")
		}
		items = append(items, m.menuLine(m.cursor == i, row.label, row.value))
	}

	return lipgloss.JoinVertical(lipgloss.Left, items...)
}

// renderThemeSelect renders the theme selection sub-menu
func (m ConfigModel) renderThemeSelect() string {
	items := []string{m.styles.SelectorTitle.Render("🎨 Select Theme"), ""}

	for i, theme := range render.AvailableTUIThemes() {
		current := ""
		if string(theme.Name) == m.config.Theme {
			current = m.styles.Feedback.Render(" (current)")
		}
		text := fmt.Sprintf("%s - %s", theme.Name, theme.Description)
		items = append(items, m.menuLine(m.themeCursor == i, text, "")+current)
	}

	return lipgloss.JoinVertical(lipgloss.Left, items...)
}

// renderBoolValue renders a boolean value with appropriate styling
func (m ConfigModel) renderBoolValue(value bool) string {
	if value {
		return m.styles.Feedback.Render("enabled")
	}
	return m.styles.Error.Render("disabled")
}

// renderStatusBar renders the bottom status bar
func (m ConfigModel) renderStatusBar(width int) string {
	back := "Exit"
	if m.view == viewThemeSelect {
		back = "Back"
	}

	items := []string{
		m.styles.StatusKey.Render("↑↓") + m.styles.StatusDesc.Render(" Navigate"),
		m.styles.StatusKey.Render("Enter") + m.styles.StatusDesc.Render(" Select"),
		m.styles.StatusKey.Render("Esc") + m.styles.StatusDesc.Render(" "+back),
	}

	return m.styles.StatusBar.Width(width).Align(lipgloss.Center).Render(strings.Join(items, "  │  "))
}

// RunConfig starts the settings editor
func RunConfig(cfg config.Config, configPath string, save func(config.Config) error) error {
	p := tea.NewProgram(
		NewConfigModel(cfg, configPath, save),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
