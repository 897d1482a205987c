package cli

import (
	"fmt"

	"github.com/alexanderramin/mindwell/internal/cli/formatter"
	"github.com/alexanderramin/mindwell/internal/scoring"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

func newColorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "color",
		Short: "Severity color helpers",
	}
	cmd.AddCommand(newColorRGBACmd())
	return cmd
}

func newColorRGBACmd() *cobra.Command {
	var alpha float64

	cmd := &cobra.Command{
		Use:   "rgba HEX",
		Short: "Convert a #RGB or #RRGGBB color to an rgba() string",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rgba, err := scoring.HexToRGBA(args[0], alpha)
			if err != nil {
				return err
			}
			swatch := lipgloss.NewStyle().Foreground(formatter.LevelColor(args[0])).Render("■■")
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", rgba, swatch)
			return nil
		},
	}

	cmd.Flags().Float64Var(&alpha, "alpha", 1, "Opacity between 0 and 1")
	return cmd
}
