package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/furiarock/mockstudio/pkg/errors"
	"github.com/furiarock/mockstudio/pkg/garment"
	"github.com/furiarock/mockstudio/pkg/project"
	"github.com/furiarock/mockstudio/pkg/quote"
)

// quoteCommand creates the quote command.
func (c *CLI) quoteCommand() *cobra.Command {
	var (
		name     string
		size     string
		fromFile string
		qrPath   string
		qrSize   int
	)

	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Print the WhatsApp link for a price quote",
		Long: `Print the WhatsApp link that asks Furia Rock for a quote on a design.
The design name and size come from the flags or from a project file.`,
		Example: `  mockstudio quote --name "Tour 2025" --size L
  mockstudio quote --project tour.toml --qr quote.png`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var sz garment.Size
			if fromFile != "" {
				st, err := project.Load(fromFile)
				if err != nil {
					return err
				}
				name, sz = st.Name, st.Size
			}
			if size != "" {
				var err error
				if sz, err = garment.ParseSize(size); err != nil {
					return err
				}
			}

			link := quote.Link(name, sz)
			if qrPath == "" {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), link)
				return err
			}

			png, err := quote.QR(link, qrSize)
			if err != nil {
				return err
			}
			if err := os.WriteFile(qrPath, png, 0o644); err != nil {
				return errors.Wrap(errors.ErrCodeInternal, err, "write %s", qrPath)
			}
			printKeyValue("Message", quote.Message(name, sz))
			printKeyValue("Link", StyleLink.Render(link))
			printSuccess("Wrote QR code")
			printFile(qrPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "design name")
	cmd.Flags().StringVar(&size, "size", "", "garment size: S, M, L or XL")
	cmd.Flags().StringVar(&fromFile, "project", "", "read name and size from a project file")
	cmd.Flags().StringVar(&qrPath, "qr", "", "write the link as a PNG QR code")
	cmd.Flags().IntVar(&qrSize, "qr-size", quote.DefaultQRSize, "QR code edge length in pixels")

	return cmd
}
