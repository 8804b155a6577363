package cli

import (
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/furiarock/mockstudio/pkg/garment"
)

// zonesCommand creates the zones command.
func (c *CLI) zonesCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "zones",
		Short: "List the print zones",
		Long: `List every print zone with its view and its rectangle in garment units
(the 1000×1000 canvas shared by all views).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			zones := garment.Zones()
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(zones)
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), zonesTable(zones))
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	return cmd
}

func zonesTable(zones []garment.PrintZone) string {
	rows := make([][]string, len(zones))
	for i, z := range zones {
		a := z.Area
		rows[i] = []string{
			string(z.ID),
			z.Name,
			string(z.View),
			fmt.Sprintf("%g,%g", a.X, a.Y),
			fmt.Sprintf("%g×%g", a.Width, a.Height),
		}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Zone", "Name", "View", "Origin", "Size").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			base := lipgloss.NewStyle().Padding(0, 1)
			switch {
			case row == -1: // header
				return headerStyle.Padding(0, 1)
			case col == 0:
				return base.Foreground(colorCyan)
			default:
				return base.Foreground(colorWhite)
			}
		}).
		Render()
}
