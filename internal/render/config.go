package render

import (
	"github.com/rvrjc/collegechat/internal/config"
	"github.com/rvrjc/collegechat/internal/models"
)

// OptionsFromConfig builds render options for a theme from user configuration.
func OptionsFromConfig(cfg config.Config, theme models.Theme, width int) Options {
	return DefaultOptions().
		WithWidth(width).
		WithStyle(GlamourStyle(theme)).
		WithEmoji(cfg.Markdown.EnableEmoji).
		WithPreserveNewLines(cfg.Markdown.PreserveNewLines)
}
