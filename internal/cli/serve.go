package cli

import (
	"github.com/spf13/cobra"

	"github.com/furiarock/mockstudio/internal/server"
	"github.com/furiarock/mockstudio/pkg/config"
	"github.com/furiarock/mockstudio/pkg/render/sink"
	"github.com/furiarock/mockstudio/pkg/session"
	"github.com/furiarock/mockstudio/pkg/tryon"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var flags config.Flags

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the editor HTTP API",
		Long: `Run the HTTP API behind the interactive editor.

Projects live in memory and expire after the session TTL. The AI try-on is
enabled when the API key variable named by [tryon] api_key_env (default
GEMINI_API_KEY) is set.`,
		Example: `  mockstudio serve
  mockstudio serve --addr :9000 --config mockstudio.toml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := c.loadConfig(flags)
			if err != nil {
				return err
			}

			exp, err := c.newExporter(ctx, cfg)
			if err != nil {
				return err
			}
			defer exp.Cache.Close()

			opts := []server.Option{server.WithDefaultFormat(sink.Format(cfg.Export.Format))}
			if key := cfg.TryOn.APIKey(); key != "" {
				client := tryon.NewClient(key,
					tryon.WithEndpoint(cfg.TryOn.Endpoint),
					tryon.WithModel(cfg.TryOn.Model),
					tryon.WithTimeout(cfg.TryOn.Timeout.Duration),
				)
				opts = append(opts, server.WithTryOn(tryon.NewService(client, c.Logger)))
			} else {
				printWarning("AI try-on disabled: $%s is not set", cfg.TryOn.APIKeyEnv)
			}

			if len(cfg.Server.Prerender) > 0 {
				prog := newProgress(c.Logger)
				if err := exp.Prerender(ctx, cfg.Server.Prerender...); err != nil {
					c.Logger.Warn("prerender failed", "error", err)
				} else {
					prog.done("Prerendered garment layers")
				}
			}

			srv := server.New(session.NewMemoryStore(cfg.Session.TTL.Duration), exp, c.Logger, opts...)
			printInfo("Serving on %s", StyleLink.Render("http://"+displayAddr(cfg.Server.Addr)))
			printDetail("cache: %s · export: %dpx %s", cfg.Cache.Backend, cfg.Export.Size, cfg.Export.Format)
			return srv.Run(ctx, cfg.Server.Addr)
		},
	}

	cmd.Flags().StringVar(&flags.Addr, "addr", "", "listen address (default :8080)")
	cmd.Flags().IntVar(&flags.Size, "size", 0, "export edge length in pixels (default 2000)")
	cmd.Flags().StringVar(&flags.Format, "format", "", "default export format: png or webp")
	cmd.Flags().StringVar(&flags.CacheDir, "cache-dir", "", "cache directory")
	cmd.Flags().BoolVar(&flags.NoCache, "no-cache", false, "disable the artifact cache")

	return cmd
}

// displayAddr turns ":8080" into "localhost:8080".
func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}
