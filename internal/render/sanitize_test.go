package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		missing []string
	}{
		{
			name:  "plain text untouched",
			input: "Admissions close in June",
			want:  "Admissions close in June",
		},
		{
			name:  "formatting kept",
			input: "<b>Fees</b> <em>vary</em>",
			want:  "<b>Fees</b> <em>vary</em>",
		},
		{
			name:    "script removed with content",
			input:   "Hi<script>alert(1)</script>",
			want:    "Hi",
			missing: []string{"alert"},
		},
		{
			name:    "event handler dropped",
			input:   `<b onclick="steal()">bold</b>`,
			want:    "<b>bold</b>",
			missing: []string{"onclick"},
		},
		{
			name:    "javascript link dropped",
			input:   `<a href="javascript:alert(1)">click</a>`,
			want:    "click",
			missing: []string{"javascript"},
		},
		{
			name:    "image removed",
			input:   `logo <img src="x" onerror="alert(1)">`,
			want:    "logo ",
			missing: []string{"img", "onerror"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sanitize(tt.input)
			assert.Equal(t, tt.want, got)
			for _, m := range tt.missing {
				assert.NotContains(t, got, m)
			}
		})
	}
}

func TestSanitizeKeepsSafeLinks(t *testing.T) {
	got := Sanitize(`<a href="https://rvrjc.ac.in">site</a> <a href="mailto:office@rvrjc.ac.in">mail</a>`)
	assert.Contains(t, got, `href="https://rvrjc.ac.in"`)
	assert.Contains(t, got, `href="mailto:office@rvrjc.ac.in"`)
}

func TestStripControl(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "Fees are due in June", "Fees are due in June"},
		{"newline and tab kept", "a\n\tb", "a\n\tb"},
		{"clipboard write", "hi \x1b]52;c;ZXZpbA==\x07there", "hi there"},
		{"title with ST", "\x1b]0;pwned\x1b\\ok", "ok"},
		{"cursor movement", "x\x1b[2J\x1b[Hy", "xy"},
		{"bare controls", "a\x07b\x08c\rd\x00e", "abcde"},
		{"c1 controls", "a\u0085b\u009cc", "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripControl(tt.input))
		})
	}
}

func TestBotReplyDropsTerminalEscapes(t *testing.T) {
	inputs := []string{
		"hello \x1b]52;c;ZXZpbA==\x07 \x1b]0;pwned\x07 world",
		"hello &#x1b;]52;c;ZXZpbA==&#x07; world",
		"<b>hello\x1b[31m</b> world\u009b2J",
	}

	for _, in := range inputs {
		md := ReplyMarkdown(in)
		assert.NotContains(t, md, "52;c;")
		assert.NotContains(t, md, "\x1b")
		assert.NotContains(t, md, "\x07")
		assert.NotContains(t, md, "\u009b")

		out, err := BotReply(in, DefaultOptions())
		require.NoError(t, err)
		assert.NotContains(t, out, "\x1b]")
		assert.NotContains(t, out, "\x07")
		assert.Contains(t, out, "hello")
		assert.Contains(t, out, "world")
	}
}
