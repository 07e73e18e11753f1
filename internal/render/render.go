package render

import "strings"

// Markdown renders markdown content for terminal display.
// Uses a pooled renderer for better performance and thread safety.
func Markdown(content string, opts Options) (string, error) {
	renderer, err := globalPool.get(opts)
	if err != nil {
		return "", err
	}
	defer globalPool.put(opts, renderer)

	return renderer.Render(content)
}

// MarkdownWithWidth is a convenience function for rendering with specific width.
// Uses default options with the specified width.
func MarkdownWithWidth(content string, width int) (string, error) {
	opts := DefaultOptions().WithWidth(width)
	return Markdown(content, opts)
}

// ReplyMarkdown sanitizes bot markup and converts what survives to markdown.
func ReplyMarkdown(text string) string {
	return HTMLToMarkdown(Sanitize(text))
}

// BotReply prepares bot text for the terminal: sanitize, convert, render.
// On a render failure the sanitized markdown is returned with the error so
// callers can still show something safe.
func BotReply(text string, opts Options) (string, error) {
	md := ReplyMarkdown(text)
	out, err := Markdown(md, opts)
	if err != nil {
		return md, err
	}
	return strings.Trim(out, "\n"), nil
}
