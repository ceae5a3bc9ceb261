// Package commands implements the CLI commands for the assetd asset server.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/assetd/internal/adapters/config"
	"go.trai.ch/assetd/internal/build"
	"go.trai.ch/assetd/internal/core/domain"
)

// CLI represents the command line interface for assetd.
type CLI struct {
	app        Application
	rootCmd    *cobra.Command
	configPath string
	jsonLogs   bool
	setJSON    func(bool)
}

// Application represents the application logic interface.
type Application interface {
	Resolve(ctx context.Context, configPath, resourcePath string, encodings []string) (*domain.Resource, error)
	URL(ctx context.Context, configPath, resourcePath string) (string, error)
	Plugins(configPath string) ([]string, error)
	Serve(ctx context.Context, configPath string) error
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "assetd",
		Short:         "Serve static assets contributed by plugins",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.PersistentFlags().StringVarP(&c.configPath, "config", "c", config.FileName,
		"Path to the configuration file or the directory containing it")
	rootCmd.PersistentFlags().BoolVar(&c.jsonLogs, "json", false, "Emit logs as JSON")
	rootCmd.PersistentPreRun = func(_ *cobra.Command, _ []string) {
		if c.setJSON != nil {
			c.setJSON(c.jsonLogs)
		}
	}

	rootCmd.AddCommand(c.newResolveCmd())
	rootCmd.AddCommand(c.newURLCmd())
	rootCmd.AddCommand(c.newPluginsCmd())
	rootCmd.AddCommand(c.newServeCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// OnJSONLogging registers the hook invoked with the value of the --json flag
// before any command runs.
func (c *CLI) OnJSONLogging(fn func(bool)) {
	c.setJSON = fn
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}
