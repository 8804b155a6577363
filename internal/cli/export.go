package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/furiarock/mockstudio/pkg/compose"
	"github.com/furiarock/mockstudio/pkg/config"
	"github.com/furiarock/mockstudio/pkg/errors"
	"github.com/furiarock/mockstudio/pkg/garment"
	"github.com/furiarock/mockstudio/pkg/project"
	"github.com/furiarock/mockstudio/pkg/render/sink"
)

// exportOpts holds the export command flags.
type exportOpts struct {
	view     string
	all      bool
	format   string
	output   string
	size     int
	noCache  bool
	cacheDir string
}

// exportCommand creates the export command.
func (c *CLI) exportCommand() *cobra.Command {
	var opts exportOpts

	cmd := &cobra.Command{
		Use:   "export <project.toml>",
		Short: "Render a project file to a mockup image",
		Long: `Render a project file to a PNG or WebP mockup.

The project file names the garment color and the artwork of each print zone:

  name  = "Tour 2025"
  color = "#1f2937"

  [[layer]]
  zone  = "front_center"
  image = "art/logo.png"
  scale = 1.2

Out-of-range values are clamped. Without --view the project's view is used,
or chosen interactively when running on a terminal.`,
		Example: `  mockstudio export tour.toml
  mockstudio export tour.toml --view back --format webp -o back.webp
  mockstudio export tour.toml --all --size 1000`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runExport(cmd.Context(), args[0], opts, interactive())
		},
	}

	cmd.Flags().StringVar(&opts.view, "view", "", "view to render: front, right, back or left")
	cmd.Flags().BoolVar(&opts.all, "all", false, "render every view that has artwork")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: png or webp")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single view) or directory (--all)")
	cmd.Flags().IntVar(&opts.size, "size", 0, "edge length in pixels (default 2000)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().StringVar(&opts.cacheDir, "cache-dir", "", "cache directory")

	return cmd
}

func interactive() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) && isatty.IsTerminal(os.Stdout.Fd())
}

func (c *CLI) runExport(ctx context.Context, path string, opts exportOpts, tty bool) error {
	logger := loggerFromContext(ctx)

	cfg, err := c.loadConfig(config.Flags{
		Size:     opts.size,
		Format:   opts.format,
		CacheDir: opts.cacheDir,
		NoCache:  opts.noCache,
	})
	if err != nil {
		return err
	}
	st, err := project.Load(path)
	if err != nil {
		return err
	}
	logger.Debug("loaded project", "path", path, "name", st.Name, "color", st.Color)

	views, err := exportViews(st, opts, tty)
	if err != nil {
		return err
	}

	exp, err := c.newExporter(ctx, cfg)
	if err != nil {
		return err
	}
	defer exp.Cache.Close()

	format := sink.Format(cfg.Export.Format)
	for _, v := range views {
		req, err := compose.RequestFromState(st.SetView(v), format)
		if err != nil {
			return err
		}
		out := exportPath(req, opts)

		spinner := newSpinnerWithContext(ctx, "Rendering "+string(v)+" view...")
		spinner.Start()
		prog := newProgress(logger)
		res, err := exp.Export(ctx, req)
		spinner.Stop()
		if err != nil {
			return err
		}
		prog.done("Rendered " + string(v))

		if dir := filepath.Dir(out); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return errors.Wrap(errors.ErrCodeInternal, err, "create %s", dir)
			}
		}
		if err := os.WriteFile(out, res.Data, 0o644); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "write %s", out)
		}
		printSuccess("Exported %s view", v)
		printFile(out)
		printExportStats(res)
	}
	fmt.Println()
	printNextStep("Ask for a quote", fmt.Sprintf("%s quote --project %q", appName, path))
	return nil
}

// exportViews decides which views to render.
func exportViews(st project.State, opts exportOpts, tty bool) ([]garment.View, error) {
	switch {
	case opts.all:
		var views []garment.View
		for _, v := range garment.Views() {
			for _, z := range garment.ZonesForView(v) {
				if l, err := st.Layers.Get(z.ID); err == nil && l.Drawable() {
					views = append(views, v)
					break
				}
			}
		}
		if len(views) == 0 {
			return nil, errors.New(errors.ErrCodeInvalidInput, "the project has no visible artwork")
		}
		return views, nil
	case opts.view != "":
		v, err := garment.ParseView(opts.view)
		if err != nil {
			return nil, err
		}
		return []garment.View{v}, nil
	case tty:
		v, err := pickView(st.Layers, st.View)
		if err != nil {
			return nil, err
		}
		return []garment.View{v}, nil
	default:
		return []garment.View{st.View}, nil
	}
}

// exportPath returns where req is written. With --all, -o names a
// directory.
func exportPath(req compose.Request, opts exportOpts) string {
	switch {
	case opts.output == "":
		return req.Filename()
	case opts.all:
		return filepath.Join(opts.output, req.Filename())
	default:
		return opts.output
	}
}
