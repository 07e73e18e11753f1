// Package conversation holds the ordered, append-only message log of a chat session.
package conversation

import (
	"strings"
	"time"

	"github.com/rvrjc/collegechat/internal/models"
)

// Conversation is the session's message log. It is not safe for concurrent
// use; the chat view owns it from a single goroutine.
type Conversation struct {
	messages []models.Message
}

// New returns a conversation opened with the greeting for now.
func New(now time.Time) *Conversation {
	c := &Conversation{}
	c.AppendBot(Greeting(now.Hour()))
	return c
}

// AppendUser appends text as a user message. Text that is empty after
// trimming is rejected and the log is left unchanged.
func (c *Conversation) AppendUser(text string) bool {
	if strings.TrimSpace(text) == "" {
		return false
	}
	c.messages = append(c.messages, models.Message{Sender: models.SenderUser, Text: text})
	return true
}

// AppendBot appends text as a bot message.
func (c *Conversation) AppendBot(text string) {
	c.messages = append(c.messages, models.Message{Sender: models.SenderBot, Text: text})
}

// Messages returns a copy of the log in arrival order.
func (c *Conversation) Messages() []models.Message {
	out := make([]models.Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// Len returns the number of messages.
func (c *Conversation) Len() int {
	return len(c.messages)
}

// Last returns the newest message.
func (c *Conversation) Last() (models.Message, bool) {
	if len(c.messages) == 0 {
		return models.Message{}, false
	}
	return c.messages[len(c.messages)-1], true
}

// LastBot returns the newest bot message.
func (c *Conversation) LastBot() (models.Message, bool) {
	for i := len(c.messages) - 1; i >= 0; i-- {
		if c.messages[i].IsBot() {
			return c.messages[i], true
		}
	}
	return models.Message{}, false
}

// Greeting picks the opening line for a wall-clock hour (0-23).
func Greeting(hour int) string {
	switch {
	case hour < 12:
		return models.GreetingMorning
	case hour < 16:
		return models.GreetingAfternoon
	default:
		return models.GreetingEvening
	}
}
