package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rvrjc/collegechat/internal/config"
)

func newConfigCmd(a *app) *cobra.Command {
	var showPath bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Open the settings menu",
		Long: `Interactive menu to configure collegechat settings.

Settings live in ~/.collegechat/config.json and can be overridden with
COLLEGECHAT_* environment variables, e.g. COLLEGECHAT_THEME=dark.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.GetConfigPath()
			if err != nil {
				return err
			}
			if showPath {
				fmt.Fprintln(cmd.OutOrStdout(), path)
				return nil
			}
			// edit the stored settings, not the flag or env adjusted ones
			cfg, err := a.deps.LoadStoredConfig()
			if err != nil {
				return err
			}
			return a.deps.TUI.RunConfig(cfg, path, a.deps.SaveConfig)
		},
	}

	cmd.Flags().BoolVar(&showPath, "path", false, "Print the config file path and exit")
	return cmd
}
