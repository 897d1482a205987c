package cli

import (
	"fmt"
	"os"

	"github.com/alexanderramin/mindwell/internal/cli/formatter"
	"github.com/alexanderramin/mindwell/internal/domain"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// DetectTerminal reports whether stdin is attached to a terminal.
func DetectTerminal() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func newTemplateLevelsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "levels REF",
		Short: "Edit a template's severity levels interactively",
		Long: "Opens an editor for the severity levels. Coverage of every score from 0\n" +
			"to the maximum is re-checked on each keystroke and saving is refused\n" +
			"until the levels are valid.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return fmt.Errorf("template levels needs an interactive terminal; edit the file and run 'template validate' instead")
			}

			ctx := cmd.Context()
			t, err := app.Templates.Get(ctx, args[0])
			if err != nil {
				return err
			}

			editor := newLevelsEditor(t, func(rs domain.ScoringRuleSet) (*domain.AssessmentTemplate, error) {
				return app.Templates.UpdateScoring(ctx, t.ID, rs)
			})
			final, err := tea.NewProgram(editor,
				tea.WithContext(ctx),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
			).Run()
			if err != nil {
				return fmt.Errorf("running levels editor: %w", err)
			}

			out := cmd.OutOrStdout()
			if m, ok := final.(*levelsEditor); ok && m.saved {
				fmt.Fprintln(out, formatter.OK("Saved severity levels for "+formatter.Bold(m.template.DisplayID())))
				fmt.Fprint(out, formatter.FormatScoring(m.template.Scoring))
				return nil
			}
			fmt.Fprintln(out, formatter.Dim("No changes saved."))
			return nil
		},
	}
}
