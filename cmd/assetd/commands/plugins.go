package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newPluginsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "plugins",
		Short: "List the discovered plugins",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			plugins, err := c.app.Plugins(c.configPath)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, id := range plugins {
				_, _ = fmt.Fprintln(out, id)
			}
			return nil
		},
	}
}
