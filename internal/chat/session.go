// Package chat ties the conversation log to the reply fetcher and keeps the
// transient state a chat view renders from.
package chat

import (
	"context"
	"errors"
	"time"

	"github.com/rvrjc/collegechat/internal/conversation"
	"github.com/rvrjc/collegechat/internal/models"
)

// Request is one outgoing user message, numbered in send order.
type Request struct {
	Seq  uint64
	Text string
}

// Reply is the outcome of a Request. Text is always displayable: on failure
// it holds the fallback message and Err records why.
type Reply struct {
	Seq  uint64
	Text string
	Err  error
}

// Session is the state behind one chat view. It is owned by a single
// goroutine (the view's update loop) and needs no locking.
type Session struct {
	conv         *conversation.Conversation
	input        string
	typing       bool
	theme        models.Theme
	scrollButton bool

	// issued is the sequence number of the newest request; replies for
	// anything older are discarded.
	issued uint64
}

// NewSession opens a conversation greeted for now.
func NewSession(now time.Time, theme models.Theme) *Session {
	if _, ok := models.ParseTheme(string(theme)); !ok {
		theme = models.DefaultTheme
	}
	return &Session{
		conv:  conversation.New(now),
		theme: theme,
	}
}

// Messages returns the conversation in arrival order.
func (s *Session) Messages() []models.Message {
	return s.conv.Messages()
}

// Conversation exposes the underlying log.
func (s *Session) Conversation() *conversation.Conversation {
	return s.conv
}

// Input returns the composition buffer.
func (s *Session) Input() string {
	return s.input
}

// SetInput replaces the composition buffer.
func (s *Session) SetInput(text string) {
	s.input = text
}

// Typing reports whether the newest request is still in flight.
func (s *Session) Typing() bool {
	return s.typing
}

// Theme returns the active theme.
func (s *Session) Theme() models.Theme {
	return s.theme
}

// SetTheme switches theme; unknown themes are ignored.
func (s *Session) SetTheme(theme models.Theme) bool {
	if _, ok := models.ParseTheme(string(theme)); !ok {
		return false
	}
	s.theme = theme
	return true
}

// ScrollButtonVisible reports whether the scroll-to-bottom affordance shows.
func (s *Session) ScrollButtonVisible() bool {
	return s.scrollButton
}

// SetScrollButtonVisible records the derived scroll affordance state.
func (s *Session) SetScrollButtonVisible(visible bool) {
	s.scrollButton = visible
}

// Pending returns the sequence number of the newest request.
func (s *Session) Pending() uint64 {
	return s.issued
}

// Send appends text as a user message and starts a request for it. Blank
// text is ignored and reported with ok=false.
func (s *Session) Send(text string) (Request, bool) {
	if !s.conv.AppendUser(text) {
		return Request{}, false
	}
	s.input = ""
	s.issued++
	s.typing = true
	return Request{Seq: s.issued, Text: text}, true
}

// SendInput sends the composition buffer.
func (s *Session) SendInput() (Request, bool) {
	return s.Send(s.input)
}

// SelectSuggestion sends the i-th suggestion chip as if it had been typed.
func (s *Session) SelectSuggestion(i int) (Request, bool) {
	if i < 0 || i >= len(models.Suggestions) {
		return Request{}, false
	}
	return s.Send(models.Suggestions[i])
}

// Resolve applies a reply. Replies for superseded requests, and replies
// aborted by cancellation, are dropped and reported with false.
func (s *Session) Resolve(r Reply) bool {
	if r.Seq != s.issued {
		return false
	}
	if errors.Is(r.Err, context.Canceled) {
		return false
	}

	text := r.Text
	if r.Err != nil && text == "" {
		text = models.FallbackReply
	}
	s.conv.AppendBot(text)
	s.typing = false
	return true
}
