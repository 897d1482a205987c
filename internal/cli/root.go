package cli

import (
	"io"
	"log/slog"
	"time"

	"github.com/alexanderramin/mindwell/internal/config"
	"github.com/alexanderramin/mindwell/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Templates   service.TemplateService
	Assessments service.AssessmentService
	Config      config.Config
	Logger      *slog.Logger

	// IsInteractive reports whether stdin is a terminal. Nil means never.
	IsInteractive func() bool

	// Now is overridable for deterministic output in tests.
	Now func() time.Time
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) logger() *slog.Logger {
	if a.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return a.Logger
}

func (a *App) now() time.Time {
	if a.Now == nil {
		return time.Now()
	}
	return a.Now()
}

// NewRootCmd creates the top-level "mindwell" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "mindwell",
		Short:         "Assessment templates with checked severity scoring",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newTemplateCmd(app),
		newAssessCmd(app),
		newColorCmd(),
		newServeCmd(app),
	)

	return root
}
