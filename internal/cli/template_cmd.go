package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/mindwell/internal/cli/formatter"
	"github.com/alexanderramin/mindwell/internal/service"
	"github.com/spf13/cobra"
)

func newTemplateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Write, check and manage assessment templates",
	}

	cmd.AddCommand(
		newTemplateValidateCmd(app),
		newTemplateImportCmd(app),
		newTemplateListCmd(app),
		newTemplateShowCmd(app),
		newTemplateLevelsCmd(app),
		newTemplatePublishCmd(app),
		newTemplateArchiveCmd(app),
		newTemplateDeleteCmd(app),
	)

	return cmd
}

func newTemplateImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Validate a template file and store it as a draft",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.Templates.Import(cmd.Context(), args[0])
			if err != nil {
				var verr *service.ImportValidationError
				if errors.As(err, &verr) {
					fmt.Fprint(cmd.OutOrStdout(), formatFileReport(fileReport{Path: args[0], Errs: verr.Errs}))
				}
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatter.OK(fmt.Sprintf("Imported %s %s (%d questions, %d levels)",
				formatter.Bold(res.Template.DisplayID()), res.Template.Title, res.QuestionCount, res.LevelCount)))
			return nil
		},
	}
}

func newTemplateListCmd(app *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List templates",
		RunE: func(cmd *cobra.Command, args []string) error {
			templates, err := app.Templates.List(cmd.Context(), all)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTemplateList(templates, app.now()))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include archived templates")
	return cmd
}

func newTemplateShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show REF",
		Short: "Show a template with its questions and severity levels",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := app.Templates.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTemplateDetail(t))
			return nil
		},
	}
}

func newTemplatePublishCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "publish REF",
		Short: "Publish a template once its scoring rules are valid",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Templates.Publish(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.OK("Published "+formatter.Bold(strings.ToUpper(args[0]))))
			return nil
		},
	}
}

func newTemplateArchiveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "archive REF",
		Short: "Archive a template so it stops accepting responses",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Templates.Archive(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.OK("Archived "+formatter.Bold(strings.ToUpper(args[0]))))
			return nil
		},
	}
}

func newTemplateDeleteCmd(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete REF",
		Short: "Delete a template and all of its results",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			t, err := app.Templates.Get(ctx, args[0])
			if err != nil {
				return err
			}

			if !force {
				results, err := app.Assessments.ListResults(ctx, t.ID)
				if err != nil {
					return err
				}
				if len(results) > 0 {
					return fmt.Errorf("%s has %d recorded results; pass --force to delete them too", t.DisplayID(), len(results))
				}
			}

			if err := app.Templates.Delete(ctx, t.ID); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.OK("Deleted "+formatter.Bold(t.DisplayID())))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Delete even if results exist")
	return cmd
}
