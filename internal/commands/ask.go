package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rvrjc/collegechat/internal/chat"
	apierrors "github.com/rvrjc/collegechat/internal/errors"
	"github.com/rvrjc/collegechat/internal/models"
	"github.com/rvrjc/collegechat/internal/render"
	"github.com/rvrjc/collegechat/internal/tui"
)

const defaultWidth = 80

type askFlags struct {
	raw    bool
	strict bool
}

func newAskCmd(a *app) *cobra.Command {
	var flags askFlags

	cmd := &cobra.Command{
		Use:   "ask [question]",
		Short: "Ask a single question and print the reply",
		Long: `Ask a single question and print the bot's reply.

The question is taken from the arguments or, when none are given, from
stdin. A failed request prints the usual fallback reply; use --strict to
exit with the underlying error instead.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			question, err := readQuestion(args, cmd.InOrStdin())
			if err != nil {
				return err
			}
			return a.runAsk(cmd.Context(), question, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.raw, "raw", false, "Print the reply as plain markdown without styling")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "Exit with an error when the reply cannot be fetched")
	return cmd
}

// readQuestion joins args, falling back to piped stdin
func readQuestion(args []string, in io.Reader) (string, error) {
	question := strings.TrimSpace(strings.Join(args, " "))
	if question != "" {
		return question, nil
	}

	if f, ok := in.(*os.File); ok {
		stat, err := f.Stat()
		if err != nil || stat.Mode()&os.ModeCharDevice != 0 {
			return "", apierrors.ErrEmptyMessage
		}
	}

	data, err := io.ReadAll(in)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	question = strings.TrimSpace(string(data))
	if question == "" {
		return "", apierrors.ErrEmptyMessage
	}
	return question, nil
}

func (a *app) runAsk(ctx context.Context, question string, flags askFlags) error {
	fetcher, release, err := a.newFetcher()
	if err != nil {
		return err
	}
	defer release()

	session := chat.NewSession(a.deps.Now(), a.cfg.ThemeOrDefault())
	req, ok := session.Send(question)
	if !ok {
		return apierrors.ErrEmptyMessage
	}

	theme := render.ThemeFor(session.Theme())

	var spin *spinner
	if !flags.raw && isTerminal(a.deps.ErrOut) {
		spin = newSpinner(a.deps.ErrOut, theme, "Asking the college bot")
		spin.start()
	}

	reply := fetcher.Fetch(ctx, req)

	if spin != nil {
		spin.halt()
	}

	if reply.Err != nil && flags.strict {
		return reply.Err
	}
	if !session.Resolve(reply) {
		// only an interrupted request is refused
		return reply.Err
	}

	last, _ := session.Conversation().LastBot()
	text := last.Text

	if a.cfg.CopyToClipboard {
		if err := a.deps.Clipboard(render.ReplyMarkdown(text)); err != nil {
			log.Warn().Err(err).Msg("copy to clipboard failed")
			fmt.Fprintln(a.deps.ErrOut, "Warning: could not copy reply to clipboard")
		}
	}

	if flags.raw {
		fmt.Fprintln(a.deps.Out, render.ReplyMarkdown(text))
		return nil
	}

	fmt.Fprintln(a.deps.Out, a.formatReply(text, theme))
	return nil
}

// formatReply renders the reply as a labelled bubble matching the chat view
func (a *app) formatReply(text string, theme render.TUITheme) string {
	styles := tui.NewStyles(theme)

	width := terminalWidth(a.deps.Out) - 2
	opts := render.OptionsFromConfig(a.cfg, theme.Name, width-4)

	rendered, err := render.BotReply(text, opts)
	if err != nil {
		log.Debug().Err(err).Msg("markdown render failed, printing plain reply")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		styles.BotLabel.Render("🎓 College Bot"),
		styles.BotBubble.MarginRight(0).Width(width).Render(rendered),
	)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func terminalWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
			return width
		}
	}
	return defaultWidth
}

// formatErrorMessage returns a styled error for the terminal
func formatErrorMessage(err error, prefix string) string {
	styles := tui.NewStyles(render.ThemeFor(models.DefaultTheme))
	return styles.FormatError(fmt.Errorf("%s: %w", prefix, err))
}
