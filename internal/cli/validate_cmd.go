package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/alexanderramin/mindwell/internal/cli/formatter"
	"github.com/alexanderramin/mindwell/internal/importer"
	"github.com/alexanderramin/mindwell/internal/watch"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// maxConcurrentValidations bounds how many files are parsed at once.
const maxConcurrentValidations = 4

// fileReport is the verdict for one template file.
type fileReport struct {
	Path     string
	Template *importer.TemplateImport
	Errs     []error
}

func (r fileReport) ok() bool { return len(r.Errs) == 0 }

func newTemplateValidateCmd(app *App) *cobra.Command {
	var watchFile bool

	cmd := &cobra.Command{
		Use:   "validate FILE...",
		Short: "Check template files without importing them",
		Long: "Check that each file parses, its questions are well formed, and its\n" +
			"severity levels cover every score from 0 to the maximum exactly once.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if watchFile {
				if len(args) != 1 {
					return fmt.Errorf("--watch takes exactly one file")
				}
				ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
				defer stop()
				return watchTemplateFile(ctx, app, out, args[0])
			}

			reports, err := validateFiles(cmd.Context(), args)
			if err != nil {
				return err
			}

			failed := 0
			for _, r := range reports {
				fmt.Fprint(out, formatFileReport(r))
				if !r.ok() {
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d files invalid", failed, len(reports))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&watchFile, "watch", "w", false, "Re-validate the file every time it is saved")
	return cmd
}

// validateFiles checks every path concurrently and returns the reports in
// argument order. Only context cancellation is returned as an error; file
// problems live in the reports.
func validateFiles(ctx context.Context, paths []string) ([]fileReport, error) {
	reports := make([]fileReport, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentValidations)
	for i, p := range paths {
		i, p := i, p
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			t, errs := importer.ValidateFile(p)
			reports[i] = fileReport{Path: p, Template: t, Errs: errs}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

func formatFileReport(r fileReport) string {
	var b strings.Builder
	if r.ok() {
		summary := r.Path
		if r.Template != nil {
			summary = fmt.Sprintf("%s  %s %s", r.Path, formatter.Bold(strings.ToUpper(r.Template.ShortID)),
				formatter.Dim(fmt.Sprintf("(%d questions, %d levels)", len(r.Template.Questions), len(r.Template.Scoring.SeverityLevels))))
		}
		b.WriteString(formatter.OK(summary) + "\n")
		return b.String()
	}

	b.WriteString(formatter.Fail(fmt.Sprintf("%s %s", r.Path, formatter.Dim(fmt.Sprintf("(%d errors)", len(r.Errs))))) + "\n")
	for _, err := range r.Errs {
		fmt.Fprintf(&b, "    %s %s\n", formatter.StyleRed.Render("•"), err)
	}
	return b.String()
}

// watchTemplateFile validates path once, then again after each save until
// ctx is cancelled.
func watchTemplateFile(ctx context.Context, app *App, out io.Writer, path string) error {
	var mu sync.Mutex
	check := func(p string) {
		t, errs := importer.ValidateFile(p)
		mu.Lock()
		defer mu.Unlock()
		fmt.Fprintf(out, "%s ", formatter.Dim(app.now().Format("15:04:05")))
		fmt.Fprint(out, formatFileReport(fileReport{Path: path, Template: t, Errs: errs}))
	}

	fw, err := watch.NewFileWatcher(path, app.Config.WatchDebounce(), check, app.logger())
	if err != nil {
		return err
	}

	check(path)
	fmt.Fprintln(out, formatter.Dim("watching "+fw.Path()+" (ctrl+c to stop)"))
	return fw.Run(ctx)
}
