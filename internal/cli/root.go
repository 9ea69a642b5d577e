package cli

import (
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/alexanderramin/followup/internal/api"
	"github.com/alexanderramin/followup/internal/router"
	"github.com/alexanderramin/followup/internal/session"
	"github.com/spf13/cobra"
)

// App holds the collaborators shared by every command and the TUI.
type App struct {
	Session *session.Session
	API     *api.Client
	Logger  *slog.Logger

	// TUILog receives logs and API call events while the TUI owns the
	// terminal. Nil discards them.
	TUILog io.Writer

	// IsInteractive reports whether stdin is a terminal. Nil means no.
	IsInteractive func() bool
	// Now is the clock used for relative dates. Nil means time.Now.
	Now func() time.Time
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) logger() *slog.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// forTUI returns a copy of a whose logger and API observer write to
// TUILog instead of the terminal the TUI draws on.
func (a *App) forTUI() *App {
	cp := *a
	w := a.TUILog
	if w == nil {
		w = io.Discard
	}
	cp.Logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelWarn}))
	if a.API != nil {
		cp.API = a.API.WithObserver(api.NewLogObserver(a.TUILog))
	}
	return &cp
}

// startPath is where the TUI opens when no path is given.
func (a *App) startPath() string {
	if a.Session.IsLoggedIn() {
		return string(router.Dashboard)
	}
	return string(router.Landing)
}

// NewRootCmd creates the top-level "followup" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "followup",
		Short:         "Client follow-ups, contacts and reminders from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return cmd.Help()
			}
			return runTUI(app, app.startPath())
		},
	}

	root.AddCommand(
		newOpenCmd(app),
		newLoginCmd(app),
		newLogoutCmd(app),
		newWhoamiCmd(app),
		newRegisterCmd(app),
		newPricingCmd(app),
		newHealthCmd(app),
	)
	for _, cmd := range []*cobra.Command{
		newDashboardCmd(app),
		newTodayCmd(app),
		newContactsCmd(app),
		newTasksCmd(app),
		newProjectsCmd(app),
		newTemplatesCmd(app),
		newProfileCmd(app),
	} {
		root.AddCommand(gated(app, cmd))
	}

	return root
}

// errNotLoggedIn is returned by workspace commands run without an identity.
var errNotLoggedIn = errors.New("not logged in: run `followup login <telegram-id>` first")

// gated makes cmd and its subcommands require a stored identity.
func gated(app *App, cmd *cobra.Command) *cobra.Command {
	cmd.PersistentPreRunE = func(*cobra.Command, []string) error {
		if !app.Session.IsLoggedIn() {
			return errNotLoggedIn
		}
		return nil
	}
	return cmd
}

func newOpenCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "open <path>",
		Short: "Open the interactive client at a page (/contactos, /tareas, ...)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(app, args[0])
		},
	}
}
