package commands

import (
	"context"

	"github.com/spf13/cobra"
)

func newChatCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Start the chat window",
		Long: `Start the chat window.

Type a question and press Enter, or pick one of the suggestions with Tab
or Alt+1..4. Ctrl+T switches theme, Ctrl+Y copies the last reply and
Esc or Ctrl+C quits. The conversation is not saved.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runChat(cmd.Context())
		},
	}
}

func (a *app) runChat(ctx context.Context) error {
	fetcher, release, err := a.newFetcher()
	if err != nil {
		return err
	}
	defer release()

	return a.deps.TUI.RunChat(ctx, fetcher, a.cfg)
}
