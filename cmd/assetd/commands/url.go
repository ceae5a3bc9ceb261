package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/assetd/internal/core/domain"
	"go.trai.ch/zerr"
)

func (c *CLI) newURLCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "url <path>",
		Short: "Print the public URL of an asset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			url, err := c.app.URL(cmd.Context(), c.configPath, args[0])
			if err != nil {
				return err
			}
			if url == "" {
				return zerr.With(zerr.Wrap(domain.ErrResourceNotFound, "no resolver serves the path"), "path", args[0])
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), url)
			return nil
		},
	}
}
