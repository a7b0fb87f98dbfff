package cli

import (
	"log/slog"
	"time"

	"github.com/alexanderramin/plangrid/internal/config"
	"github.com/alexanderramin/plangrid/internal/store"
	"github.com/spf13/cobra"
)

// Version is reported by the serve health endpoint.
var Version = "dev"

// App holds everything CLI commands need.
type App struct {
	Store  *store.Store
	Config config.Config
	Logger *slog.Logger

	// IsInteractive reports whether confirmation prompts can be shown.
	IsInteractive func() bool
	// Confirm asks a yes/no question. Nil uses a huh form.
	Confirm func(title string) (bool, error)
	// Now stamps export file names. Nil uses time.Now.
	Now func() time.Time
}

func (app *App) now() time.Time {
	if app.Now != nil {
		return app.Now()
	}
	return time.Now()
}

func (app *App) logger() *slog.Logger {
	if app.Logger != nil {
		return app.Logger
	}
	return slog.New(slog.DiscardHandler)
}

// NewRootCmd creates the top-level "plangrid" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "plangrid",
		Short:         "Calendar-grid project planner",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newPlanningCmd(app),
		newProjectCmd(app),
		newGroupCmd(app),
		newTimelineCmd(app),
		newCellsCmd(app),
		newCardsCmd(app),
		newImportCmd(app),
		newExportCmd(app),
		newResetCmd(app),
		newBoardCmd(app),
		newServeCmd(app),
	)

	return root
}
