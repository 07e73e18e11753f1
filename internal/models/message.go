package models

// Sender identifies who produced a message
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// Message is one turn in the conversation. Bot text may carry markup.
type Message struct {
	Sender Sender
	Text   string
}

// IsBot reports whether the message came from the chatbot
func (m Message) IsBot() bool {
	return m.Sender == SenderBot
}

// ChatRequest is the JSON body posted to the chat endpoint
type ChatRequest struct {
	Message string `json:"message"`
}
