package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/assetd/internal/core/domain"
	"go.trai.ch/zerr"
)

func (c *CLI) newResolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve <path>",
		Short: "Resolve an asset path and print its content",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			encodings, _ := cmd.Flags().GetStringSlice("accept-encoding")
			info, _ := cmd.Flags().GetBool("info")

			res, err := c.app.Resolve(cmd.Context(), c.configPath, args[0], encodings)
			if err != nil {
				return err
			}
			if res == nil {
				return zerr.With(zerr.Wrap(domain.ErrResourceNotFound, "no resolver serves the path"), "path", args[0])
			}

			out := cmd.OutOrStdout()
			if info {
				encoding := res.Encoding
				if encoding == "" {
					encoding = "identity"
				}
				_, _ = fmt.Fprintf(out, "path:     %s\n", res.Path)
				_, _ = fmt.Fprintf(out, "version:  %s\n", res.Version)
				_, _ = fmt.Fprintf(out, "encoding: %s\n", encoding)
				_, _ = fmt.Fprintf(out, "size:     %d\n", res.Len())
				return nil
			}
			_, err = out.Write(res.Content)
			return err
		},
	}
	cmd.Flags().StringSliceP("accept-encoding", "e", nil, "Content codings the client accepts, e.g. gzip,br")
	cmd.Flags().BoolP("info", "i", false, "Print resource metadata instead of its content")
	return cmd
}
