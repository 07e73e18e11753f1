package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rvrjc/collegechat/internal/render"
)

func newThemesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "themes",
		Short: "List colour themes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			current := a.cfg.ThemeOrDefault()
			out := cmd.OutOrStdout()
			for _, theme := range render.AvailableTUIThemes() {
				marker := "  "
				if theme.Name == current {
					marker = "* "
				}
				fmt.Fprintf(out, "%s%-8s %s\n", marker, theme.Name, theme.Description)
			}
			return nil
		},
	}
}
