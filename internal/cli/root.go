package cli

import (
	"github.com/spf13/cobra"

	"github.com/furiarock/mockstudio/pkg/buildinfo"
	"github.com/furiarock/mockstudio/pkg/observability"
)

// RootCommand creates the root cobra command with all subcommands registered.
//
// Logging:
//   - Default: info level (logs to stderr)
//   - With --verbose (-v): debug level, plus export, cache and HTTP events
//
// The logger is attached to the command context and reachable from every
// subcommand through loggerFromContext.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Mockstudio designs and exports t-shirt mockups",
		Long: `Mockstudio places artwork on the print zones of a t-shirt, renders the
garment from four sides and exports print-ready mockups. Run "mockstudio serve"
for the interactive editor API or "mockstudio export" to render a project file.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.verbose {
				c.SetLogLevel(LogDebug)
				hooks := newLogHooks(c.Logger)
				observability.SetExportHooks(hooks)
				observability.SetCacheHooks(hooks)
				observability.SetHTTPHooks(hooks)
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "TOML config file")

	root.AddCommand(c.serveCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.garmentCommand())
	root.AddCommand(c.zonesCommand())
	root.AddCommand(c.quoteCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}
