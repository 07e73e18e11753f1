package render

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/x/ansi"
	"github.com/microcosm-cc/bluemonday"
)

// replyPolicy keeps simple formatting and http(s)/mailto links and drops
// everything else, including script and style content and event handlers.
var replyPolicy = newReplyPolicy()

func newReplyPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements(
		"b", "strong", "i", "em", "u", "s", "del",
		"br", "p", "div", "span", "hr",
		"ul", "ol", "li",
		"code", "pre", "blockquote",
		"h1", "h2", "h3", "h4", "h5", "h6",
	)
	p.AllowAttrs("href").OnElements("a")
	p.AllowURLSchemes("http", "https", "mailto")
	p.RequireParseableURLs(true)
	return p
}

// Sanitize strips terminal control sequences and any markup outside the
// reply allow-list.
func Sanitize(markup string) string {
	return replyPolicy.Sanitize(StripControl(markup))
}

// StripControl removes ANSI escape sequences (OSC, CSI, DCS and the rest)
// and every remaining C0/C1 control character except newline and tab.
func StripControl(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, ansi.Strip(s))
}
