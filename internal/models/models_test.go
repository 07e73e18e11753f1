package models

import (
	"encoding/json"
	"testing"
)

func TestMessageIsBot(t *testing.T) {
	if !(Message{Sender: SenderBot, Text: "hi"}).IsBot() {
		t.Error("expected bot message to report IsBot")
	}
	if (Message{Sender: SenderUser, Text: "hi"}).IsBot() {
		t.Error("expected user message not to report IsBot")
	}
}

func TestChatRequestWireFormat(t *testing.T) {
	data, err := json.Marshal(ChatRequest{Message: "Fee Structure"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `{"message":"Fee Structure"}` {
		t.Errorf("unexpected body: %s", data)
	}
}

func TestSuggestions(t *testing.T) {
	want := []string{"Courses Offered", "Fee Structure", "Results", "Placements"}
	if len(Suggestions) != len(want) {
		t.Fatalf("expected %d suggestions, got %d", len(want), len(Suggestions))
	}
	for i := range want {
		if Suggestions[i] != want[i] {
			t.Errorf("Suggestions[%d] = %q, want %q", i, Suggestions[i], want[i])
		}
	}
}

func TestDefaultHeadersContentType(t *testing.T) {
	if got := DefaultHeaders()["Content-Type"]; got != "application/json" {
		t.Errorf("Content-Type = %q", got)
	}
}

func TestParseTheme(t *testing.T) {
	tests := []struct {
		in   string
		want Theme
		ok   bool
	}{
		{"light", ThemeLight, true},
		{"Dark", ThemeDark, true},
		{" college ", ThemeCollege, true},
		{"neon", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := ParseTheme(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseTheme(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestDefaultThemeIsListed(t *testing.T) {
	if _, ok := ParseTheme(string(DefaultTheme)); !ok {
		t.Errorf("default theme %q not in Themes", DefaultTheme)
	}
}
