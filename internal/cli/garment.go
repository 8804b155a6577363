package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/furiarock/mockstudio/pkg/compose"
	"github.com/furiarock/mockstudio/pkg/errors"
	"github.com/furiarock/mockstudio/pkg/garment"
	"github.com/furiarock/mockstudio/pkg/render/silhouette"
)

// garmentCommand creates the garment command.
func (c *CLI) garmentCommand() *cobra.Command {
	var (
		view   string
		mode   string
		color  string
		output string
	)

	cmd := &cobra.Command{
		Use:   "garment",
		Short: "Write one silhouette layer as SVG",
		Long: `Write the base or shadow layer of one view of the t-shirt as a standalone
SVG on a transparent canvas. The base layer is filled with --color; the shadow
layer is the same for every color.`,
		Example: `  mockstudio garment --view back --color "#1f2937" -o back.svg
  mockstudio garment --view front --mode shadows > shadows.svg`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := garment.ParseView(view)
			if err != nil {
				return err
			}
			m, err := silhouette.ParseMode(mode)
			if err != nil {
				return err
			}
			data, err := compose.GarmentSVG(v, m, color)
			if err != nil {
				return err
			}
			if output == "" {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return errors.Wrap(errors.ErrCodeInternal, err, "write %s", output)
			}
			printSuccess("Wrote %s %s layer", v, m)
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVar(&view, "view", string(garment.Front), "front, right, back or left")
	cmd.Flags().StringVar(&mode, "mode", string(silhouette.Base), "base or shadows")
	cmd.Flags().StringVar(&color, "color", garment.DefaultColor, "garment color as #rrggbb")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")

	return cmd
}
