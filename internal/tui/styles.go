// Package tui provides the terminal user interface for collegechat.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rvrjc/collegechat/internal/errors"
	"github.com/rvrjc/collegechat/internal/render"
)

// Styles holds every lipgloss style the chat view uses. It is built from a
// single theme and replaced as a whole when the theme changes.
type Styles struct {
	Theme render.TUITheme

	Header   lipgloss.Style
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Hint     lipgloss.Style

	MessagesArea lipgloss.Style
	UserBubble   lipgloss.Style
	UserLabel    lipgloss.Style
	BotBubble    lipgloss.Style
	BotLabel     lipgloss.Style
	Typing       lipgloss.Style

	Chip        lipgloss.Style
	ChipFocused lipgloss.Style

	ScrollButton lipgloss.Style

	InputPanel lipgloss.Style
	InputLabel lipgloss.Style
	Spinner    lipgloss.Style

	StatusBar  lipgloss.Style
	StatusKey  lipgloss.Style
	StatusDesc lipgloss.Style
	Feedback   lipgloss.Style
	Error      lipgloss.Style
	ErrorDim   lipgloss.Style

	// Theme selector overlay
	SelectorBox   lipgloss.Style
	SelectorTitle lipgloss.Style
	MenuItem      lipgloss.Style
	MenuSelected  lipgloss.Style
	Cursor        lipgloss.Style
	Value         lipgloss.Style

	// Text placed inside the input
	InputText        lipgloss.Style
	InputPlaceholder lipgloss.Style
}

// NewStyles builds the style set for a theme
func NewStyles(theme render.TUITheme) Styles {
	s := Styles{Theme: theme}

	s.Header = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 2)

	s.Title = lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	s.Subtitle = lipgloss.NewStyle().
		Foreground(theme.TextDim)

	s.Hint = lipgloss.NewStyle().
		Foreground(theme.TextMute).
		Italic(true)

	s.MessagesArea = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1)

	s.UserBubble = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Secondary).
		Foreground(theme.Text).
		Padding(0, 1).
		MarginLeft(4)

	s.UserLabel = lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		MarginLeft(4)

	s.BotBubble = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Primary).
		Foreground(theme.Text).
		Padding(0, 1).
		MarginRight(4)

	s.BotLabel = lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	s.Typing = lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Italic(true)

	s.Chip = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Foreground(theme.TextDim).
		Padding(0, 1).
		MarginRight(1)

	s.ChipFocused = s.Chip.
		BorderForeground(theme.Accent).
		Foreground(theme.Accent).
		Bold(true)

	s.ScrollButton = lipgloss.NewStyle().
		Foreground(theme.Background).
		Background(theme.Accent).
		Bold(true).
		Padding(0, 1)

	s.InputPanel = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1)

	s.InputLabel = lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		MarginRight(1)

	s.Spinner = lipgloss.NewStyle().
		Foreground(theme.Accent).
		Bold(true)

	s.StatusBar = lipgloss.NewStyle().
		Foreground(theme.TextMute)

	s.StatusKey = lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Bold(true)

	s.StatusDesc = lipgloss.NewStyle().
		Foreground(theme.TextMute)

	s.Feedback = lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Italic(true)

	s.Error = lipgloss.NewStyle().
		Foreground(theme.Error).
		Bold(true)

	s.ErrorDim = lipgloss.NewStyle().
		Foreground(theme.TextDim)

	s.SelectorBox = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Primary).
		Padding(1, 2)

	s.SelectorTitle = lipgloss.NewStyle().
		Foreground(theme.Text).
		Bold(true)

	s.MenuItem = lipgloss.NewStyle().
		Foreground(theme.Text)

	s.MenuSelected = lipgloss.NewStyle().
		Foreground(theme.Accent).
		Bold(true)

	s.Cursor = lipgloss.NewStyle().
		Foreground(theme.Accent)

	s.Value = lipgloss.NewStyle().
		Foreground(theme.TextDim)

	s.InputText = lipgloss.NewStyle().Foreground(theme.Text)
	s.InputPlaceholder = lipgloss.NewStyle().Foreground(theme.TextDim)

	return s
}

// FormatError returns a styled error message with whatever context the
// structured error types carry.
func (s Styles) FormatError(err error) string {
	if err == nil {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(s.Error.Render(fmt.Sprintf("✗ %v", err)))

	if status := errors.GetHTTPStatus(err); status > 0 {
		sb.WriteString(s.ErrorDim.Render(fmt.Sprintf("\n  HTTP Status: %d", status)))
	}

	if endpoint := errors.GetEndpoint(err); endpoint != "" {
		sb.WriteString(s.ErrorDim.Render(fmt.Sprintf("\n  Endpoint: %s", endpoint)))
	}

	switch {
	case errors.IsNetworkError(err):
		sb.WriteString(s.ErrorDim.Render("\n  Hint: Check your internet connection and try again"))
	case errors.IsParseError(err):
		sb.WriteString(s.ErrorDim.Render("\n  Hint: The chatbot answered in an unexpected format"))
	case errors.IsAPIError(err):
		sb.WriteString(s.ErrorDim.Render("\n  Hint: The chatbot service may be waking up; try again shortly"))
	case errors.IsConfigError(err):
		sb.WriteString(s.ErrorDim.Render("\n  Hint: Fix the value with 'collegechat config' or check COLLEGECHAT_* variables"))
	}

	return sb.String()
}
