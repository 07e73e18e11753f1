package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"

	"github.com/rvrjc/collegechat/internal/chat"
	"github.com/rvrjc/collegechat/internal/config"
	"github.com/rvrjc/collegechat/internal/models"
	"github.com/rvrjc/collegechat/internal/render"
	"github.com/rvrjc/collegechat/internal/scroll"
)

const (
	appTitle         = "College Enquiry Chatbot"
	inputPlaceholder = "Ask your question..."
	botAvatar        = "🎓 College Bot"
	userAvatar       = "👤 You"
	typingText       = "Bot is typing..."
)

// noChip means focus is on the text input
const noChip = -1

// Message types for the TUI
type (
	replyMsg struct {
		reply chat.Reply
	}
	copiedMsg struct {
		err error
	}
)

// Model represents the chat view state
type Model struct {
	session *chat.Session
	fetcher *chat.Fetcher
	cfg     config.Config

	// scroll tracking lives as long as the view
	tracker   *scroll.Tracker
	scrollSub scroll.Subscription

	// ctx is cancelled when the view quits; in-flight fetches observe it
	ctx    context.Context
	cancel context.CancelFunc

	styles Styles

	// UI components
	viewport viewport.Model
	textarea textarea.Model
	spinner  spinner.Model

	// State
	chipFocus int
	ready     bool
	feedback  string
	copy      func(string) error

	// Theme selection state
	selectingTheme bool
	themeCursor    int

	// Dimensions
	width  int
	height int
}

// NewChatModel creates the chat view. The greeting is picked from now.
func NewChatModel(parent context.Context, fetcher *chat.Fetcher, cfg config.Config, now time.Time) Model {
	ctx, cancel := context.WithCancel(parent)

	theme := cfg.ThemeOrDefault()
	session := chat.NewSession(now, theme)
	styles := NewStyles(render.ThemeFor(session.Theme()))

	tracker := scroll.NewTracker(scroll.DefaultThreshold)
	sub := tracker.Subscribe(session.SetScrollButtonVisible)

	ta := textarea.New()
	ta.Placeholder = inputPlaceholder
	ta.CharLimit = 1000
	ta.ShowLineNumbers = false
	ta.SetHeight(2)
	ta.Focus()

	s := spinner.New()
	s.Spinner = spinner.Points

	m := Model{
		session:   session,
		fetcher:   fetcher,
		cfg:       cfg,
		tracker:   tracker,
		scrollSub: sub,
		ctx:       ctx,
		cancel:    cancel,
		textarea:  ta,
		spinner:   s,
		chipFocus: noChip,
		copy:      clipboard.WriteAll,
	}
	m.applyStyles(styles)
	return m
}

// WithClipboard replaces the function used to copy replies
func (m Model) WithClipboard(fn func(string) error) Model {
	m.copy = fn
	return m
}

// Session exposes the conversation state behind the view
func (m Model) Session() *chat.Session {
	return m.session
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

// Close cancels in-flight work and drops scroll subscriptions.
// Safe to call more than once.
func (m Model) Close() {
	m.cancel()
	m.scrollSub.Unsubscribe()
	m.tracker.Close()
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.Close()
	return m, tea.Quit
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && m.selectingTheme {
		return m.updateThemeSelection(key)
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.viewport, cmd = m.viewport.Update(msg)
		m.syncScroll()
		return m, cmd

	case replyMsg:
		if m.session.Resolve(msg.reply) {
			m.refresh()
		}
		return m, nil

	case copiedMsg:
		if msg.err != nil {
			log.Warn().Err(msg.err).Msg("copy to clipboard failed")
			m.feedback = "Could not copy reply"
		} else {
			m.feedback = "Reply copied to clipboard"
		}
		return m, nil

	case spinner.TickMsg:
		if m.session.Typing() {
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	return m, tea.Batch(cmds...)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.feedback = ""

	switch key := msg.String(); key {
	case "ctrl+c", "esc":
		return m.quit()

	case "enter":
		if m.chipFocus != noChip {
			req, ok := m.session.SelectSuggestion(m.chipFocus)
			return m.sent(req, ok)
		}
		m.session.SetInput(m.textarea.Value())
		req, ok := m.session.SendInput()
		return m.sent(req, ok)

	case "alt+1", "alt+2", "alt+3", "alt+4":
		req, ok := m.session.SelectSuggestion(int(key[len(key)-1] - '1'))
		return m.sent(req, ok)

	case "tab":
		m.moveChipFocus(1)
		return m, nil

	case "shift+tab":
		m.moveChipFocus(-1)
		return m, nil

	case "ctrl+t":
		m.selectingTheme = true
		m.themeCursor = themeIndex(m.session.Theme())
		return m, nil

	case "ctrl+y":
		return m, m.copyLastReply()

	case "end":
		m.scrollToBottom()
		return m, nil

	case "pgup":
		m.viewport.ViewUp()
		m.syncScroll()
		return m, nil

	case "pgdown":
		m.viewport.ViewDown()
		m.syncScroll()
		return m, nil
	}

	if m.chipFocus != noChip {
		return m, nil
	}

	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	m.session.SetInput(m.textarea.Value())
	return m, cmd
}

// sent finishes a send: clear the input, show the new message and start
// the fetch. Rejected sends change nothing.
func (m Model) sent(req chat.Request, ok bool) (tea.Model, tea.Cmd) {
	if !ok {
		return m, nil
	}

	m.textarea.Reset()
	m.refresh()

	log.Debug().Uint64("seq", req.Seq).Int("len", len(req.Text)).Msg("message sent")

	return m, tea.Batch(m.fetchReply(req), m.spinner.Tick)
}

// fetchReply runs the fetch and its pacing delay off the event loop
func (m Model) fetchReply(req chat.Request) tea.Cmd {
	ctx, fetcher := m.ctx, m.fetcher
	return func() tea.Msg {
		return replyMsg{reply: fetcher.Fetch(ctx, req)}
	}
}

func (m Model) copyLastReply() tea.Cmd {
	last, ok := m.session.Conversation().LastBot()
	if !ok {
		return nil
	}
	text := render.ReplyMarkdown(last.Text)
	copyFn := m.copy
	return func() tea.Msg {
		return copiedMsg{err: copyFn(text)}
	}
}

func (m *Model) moveChipFocus(delta int) {
	n := len(models.Suggestions)
	// positions: noChip, 0..n-1
	pos := (m.chipFocus + 1 + delta + n + 1) % (n + 1)
	m.chipFocus = pos - 1

	if m.chipFocus == noChip {
		m.textarea.Focus()
		m.scrollToBottom()
		return
	}
	m.textarea.Blur()
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height

	headerHeight := 3
	chipsHeight := 3
	inputHeight := 5
	statusHeight := 2
	frame := 2

	vpHeight := height - headerHeight - chipsHeight - inputHeight - statusHeight - frame
	if vpHeight < 5 {
		vpHeight = 5
	}

	contentWidth := width - 4

	if !m.ready {
		m.viewport = viewport.New(contentWidth, vpHeight)
		m.ready = true
	} else {
		m.viewport.Width = contentWidth
		m.viewport.Height = vpHeight
	}
	m.textarea.SetWidth(contentWidth - 4)
	m.refresh()
}

// refresh re-renders the conversation and follows it to the newest entry
func (m *Model) refresh() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderMessages())
	m.scrollToBottom()
}

func (m *Model) scrollToBottom() {
	if !m.ready {
		return
	}
	m.viewport.GotoBottom()
	m.syncScroll()
}

// syncScroll reports the viewport position to the tracker, which updates
// the scroll button through its subscription.
func (m *Model) syncScroll() {
	m.tracker.Update(scroll.Position{
		ContentHeight: m.viewport.TotalLineCount(),
		Offset:        m.viewport.YOffset,
		ViewHeight:    m.viewport.Height,
	})
}

func (m *Model) applyStyles(s Styles) {
	m.styles = s
	m.textarea.FocusedStyle.CursorLine = lipgloss.NewStyle()
	m.textarea.FocusedStyle.Base = s.InputText
	m.textarea.FocusedStyle.Placeholder = s.InputPlaceholder
	m.textarea.BlurredStyle = m.textarea.FocusedStyle
	m.spinner.Style = s.Spinner
}

// View renders the TUI
func (m Model) View() string {
	if !m.ready {
		return m.styles.Spinner.Render("  Initializing...")
	}

	if m.selectingTheme {
		return m.renderThemeSelector()
	}

	contentWidth := m.width - 4
	var sections []string

	header := lipgloss.JoinHorizontal(lipgloss.Center,
		m.styles.Title.Render("🎓 "+appTitle),
		m.styles.Hint.Render("  •  "),
		m.styles.Subtitle.Render("theme: "+string(m.session.Theme())),
	)
	sections = append(sections, m.styles.Header.Width(contentWidth).Render(header))

	sections = append(sections, m.styles.MessagesArea.
		Width(contentWidth).
		Height(m.viewport.Height).
		Render(m.viewport.View()))

	if m.session.ScrollButtonVisible() {
		sections = append(sections, lipgloss.PlaceHorizontal(contentWidth, lipgloss.Right,
			m.styles.ScrollButton.Render("↓ End: jump to latest")))
	}

	sections = append(sections, m.renderChips())

	var input string
	if m.session.Typing() {
		input = lipgloss.JoinVertical(lipgloss.Left,
			m.styles.InputLabel.Render("You")+m.styles.Typing.Render(m.spinner.View()+" waiting for reply"),
			m.textarea.View(),
		)
	} else {
		input = lipgloss.JoinVertical(lipgloss.Left,
			m.styles.InputLabel.Render("You"),
			m.textarea.View(),
		)
	}
	sections = append(sections, m.styles.InputPanel.Width(contentWidth).Render(input))

	sections = append(sections, m.renderStatusBar(contentWidth))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderMessages renders every message as a labelled bubble
func (m Model) renderMessages() string {
	var content strings.Builder
	bubbleWidth := m.viewport.Width - 6
	opts := render.OptionsFromConfig(m.cfg, m.session.Theme(), bubbleWidth-4)

	for i, msg := range m.session.Messages() {
		if i > 0 {
			content.WriteString("\n")
		}

		if msg.IsBot() {
			rendered, err := render.BotReply(msg.Text, opts)
			if err != nil {
				log.Debug().Err(err).Msg("markdown render failed, showing plain reply")
			}
			content.WriteString(m.styles.BotLabel.Render(botAvatar) + "\n")
			content.WriteString(m.styles.BotBubble.Width(bubbleWidth).Render(rendered))
		} else {
			content.WriteString(m.styles.UserLabel.Render(userAvatar) + "\n")
			content.WriteString(m.styles.UserBubble.Width(bubbleWidth).Render(render.StripControl(msg.Text)))
		}
		content.WriteString("\n")
	}

	if m.session.Typing() {
		content.WriteString("\n")
		content.WriteString(m.styles.BotLabel.Render(botAvatar) + "\n")
		content.WriteString(m.styles.Typing.Render(typingText))
		content.WriteString("\n")
	}

	return content.String()
}

func (m Model) renderChips() string {
	chips := make([]string, 0, len(models.Suggestions))
	for i, label := range models.Suggestions {
		style := m.styles.Chip
		if i == m.chipFocus {
			style = m.styles.ChipFocused
		}
		chips = append(chips, style.Render(label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, chips...)
}

// renderStatusBar renders the bottom status bar with shortcuts
func (m Model) renderStatusBar(width int) string {
	if m.feedback != "" {
		return m.styles.StatusBar.Width(width).Align(lipgloss.Center).
			Render(m.styles.Feedback.Render(m.feedback))
	}

	shortcuts := []struct {
		key  string
		desc string
	}{
		{"Enter", "Send"},
		{"Tab", "Suggestions"},
		{"Ctrl+T", "Theme"},
		{"Ctrl+Y", "Copy"},
		{"Esc", "Quit"},
	}

	items := make([]string, 0, len(shortcuts))
	for _, s := range shortcuts {
		items = append(items, m.styles.StatusKey.Render(s.key)+m.styles.StatusDesc.Render(" "+s.desc))
	}

	return m.styles.StatusBar.Width(width).Align(lipgloss.Center).Render(strings.Join(items, "  │  "))
}

// RunChat starts the chat TUI and blocks until it exits
func RunChat(ctx context.Context, fetcher *chat.Fetcher, cfg config.Config) error {
	m := NewChatModel(ctx, fetcher, cfg, time.Now())
	defer m.Close()

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)

	_, err := p.Run()
	if err != nil {
		return fmt.Errorf("chat view: %w", err)
	}
	return nil
}
