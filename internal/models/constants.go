// Package models contains data types and constants for the college chatbot.
package models

// Endpoint for the chatbot backend
const (
	EndpointChat = "https://rvrjc-chatbot-backend-2.onrender.com/chat"
)

// FallbackReply is shown as the bot message whenever a reply cannot be fetched.
const FallbackReply = "Sorry, something went wrong."

// Greetings by time of day
const (
	GreetingMorning   = "Good Morning! How can I help you today?"
	GreetingAfternoon = "Good Afternoon! How can I assist you?"
	GreetingEvening   = "Good Evening! Need help with something about the college?"
)

// Suggestions are the fixed quick-reply chips, in display order.
var Suggestions = []string{
	"Courses Offered",
	"Fee Structure",
	"Results",
	"Placements",
}

// DefaultHeaders returns the default headers for chat requests
func DefaultHeaders() map[string]string {
	return map[string]string{
		"Content-Type":    "application/json",
		"Accept":          "application/json",
		"Accept-Language": "en-US,en;q=0.9",
		"User-Agent":      "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	}
}
