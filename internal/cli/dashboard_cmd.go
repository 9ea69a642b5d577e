package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/alexanderramin/followup/internal/cli/formatter"
	"github.com/alexanderramin/followup/internal/scheduler"
	"github.com/alexanderramin/followup/internal/viewmodel"
	"github.com/spf13/cobra"
)

func newDashboardCmd(app *App) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show counts, the status distribution and upcoming tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			board := viewmodel.NewDashboard(app.API, app.logger())
			stop := func() {}
			if app.interactive() {
				stop = formatter.StartSpinner(cmd.ErrOrStderr(), "Loading dashboard...")
			}
			err := board.Load(cmd.Context())
			stop()
			if err != nil {
				return err
			}
			if asJSON {
				return formatter.WriteJSON(cmd.OutOrStdout(), board.Summary(), true)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.FormatDashboard(board.Summary(), app.now()))
			fmt.Fprintln(out, formatter.FormatKanban(board.Snapshot(), 0, nil, app.now()))
			return nil
		},
	}

	addJSONFlag(cmd, &asJSON)
	return cmd
}

func newTodayCmd(app *App) *cobra.Command {
	var watch string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "today",
		Short: "List tasks due today",
		Long: `List tasks due today. With --watch, keep refreshing on a cron
schedule such as "@every 5m" or "*/15 9-18 * * 1-5" until interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			show := func(ctx context.Context) error {
				tasks, err := app.API.TasksToday(ctx)
				if err != nil {
					return err
				}
				if asJSON {
					return formatter.WriteJSON(cmd.OutOrStdout(), tasks, false)
				}
				now := app.now()
				fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTaskList("Due today · "+now.Format("15:04"), tasks, now))
				return nil
			}

			if watch == "" {
				return show(cmd.Context())
			}
			w, err := scheduler.NewWatch(watch, show, app.logger())
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return w.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&watch, "watch", "", `Refresh on a cron schedule, e.g. "@every 5m"`)
	addJSONFlag(cmd, &asJSON)
	return cmd
}
