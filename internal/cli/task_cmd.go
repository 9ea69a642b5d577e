package cli

import (
	"fmt"

	"github.com/alexanderramin/followup/internal/api"
	"github.com/alexanderramin/followup/internal/cli/formatter"
	"github.com/alexanderramin/followup/internal/domain"
	"github.com/alexanderramin/followup/internal/viewmodel"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func newTasksCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tasks",
		Aliases: []string{"task"},
		Short:   "Manage follow-up tasks",
	}

	cmd.AddCommand(
		newTaskListCmd(app),
		newTaskShowCmd(app),
		newTaskAddCmd(app),
		newTaskEditCmd(app),
		newTaskRemoveCmd(app),
		newTaskMoveCmd(app),
		newTaskKanbanCmd(app),
	)

	return cmd
}

// taskFilterFlags holds the raw list filter flags.
type taskFilterFlags struct {
	status   string
	priority string
	contact  int64
	project  int64
	from     string
	to       string
}

func addTaskFilterFlags(fs *pflag.FlagSet, f *taskFilterFlags) {
	fs.StringVar(&f.status, "estado", "", "Status: pendiente, en_seguimiento, esperando_respuesta, completado")
	fs.StringVar(&f.priority, "prioridad", "", "Priority: baja, media, alta, urgente")
	fs.Int64Var(&f.contact, "contacto", 0, "Contact ID")
	fs.Int64Var(&f.project, "proyecto", 0, "Project ID")
	fs.StringVar(&f.from, "desde", "", "Due on or after (YYYY-MM-DD)")
	fs.StringVar(&f.to, "hasta", "", "Due on or before (YYYY-MM-DD)")
}

func (f taskFilterFlags) filter() (api.TaskFilter, error) {
	out := api.TaskFilter{
		ContactID: f.contact,
		ProjectID: f.project,
		From:      f.from,
		To:        f.to,
	}
	if f.status != "" {
		s, err := parseTaskStatus(f.status)
		if err != nil {
			return api.TaskFilter{}, err
		}
		out.Status = s
	}
	if f.priority != "" {
		p := domain.Priority(f.priority)
		if !p.Valid() {
			return api.TaskFilter{}, fmt.Errorf("unknown priority %q (use baja, media, alta or urgente)", f.priority)
		}
		out.Priority = p
	}
	if err := validateOptionalDateTime(f.from); err != nil {
		return api.TaskFilter{}, fmt.Errorf("--desde: %w", err)
	}
	if err := validateOptionalDateTime(f.to); err != nil {
		return api.TaskFilter{}, fmt.Errorf("--hasta: %w", err)
	}
	return out, nil
}

func newTaskListCmd(app *App) *cobra.Command {
	var flags taskFilterFlags
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := flags.filter()
			if err != nil {
				return err
			}
			vm := viewmodel.NewTasks(app.API)
			vm.SetFilter(filter)
			if err := vm.Load(cmd.Context()); err != nil {
				return err
			}
			if asJSON {
				return formatter.WriteJSON(cmd.OutOrStdout(), vm.Items(), true)
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTaskList("Tasks", vm.Items(), app.now()))
			return nil
		},
	}

	addTaskFilterFlags(cmd.Flags(), &flags)
	addJSONFlag(cmd, &asJSON)
	return cmd
}

func newTaskShowCmd(app *App) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			t, err := app.API.GetTask(cmd.Context(), id)
			if err != nil {
				return err
			}
			if asJSON {
				return formatter.WriteJSON(cmd.OutOrStdout(), t, true)
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTaskShow(t, app.now()))
			return nil
		},
	}

	addJSONFlag(cmd, &asJSON)
	return cmd
}

func addTaskFlags(cmd *cobra.Command, f *domain.TaskForm) {
	defaults := domain.NewTaskForm()
	cmd.Flags().StringVar(&f.Title, "title", "", "Task title")
	cmd.Flags().StringVar(&f.Description, "desc", "", "Description")
	cmd.Flags().StringVar(&f.ContactID, "contact", "", "Contact ID")
	cmd.Flags().StringVar(&f.ProjectID, "project", "", "Project ID")
	cmd.Flags().StringVar(&f.DueAt, "due", "", "Due date (YYYY-MM-DD or YYYY-MM-DDTHH:MM)")
	cmd.Flags().StringVar(&f.Priority, "priority", defaults.Priority, "Priority: baja, media, alta, urgente")
	cmd.Flags().StringVar(&f.Status, "status", defaults.Status, "Status: pendiente, en_seguimiento, esperando_respuesta, completado")
	cmd.Flags().StringVar(&f.Channel, "channel", defaults.Channel, "Reminder channel: telegram, email, ambos")
}

func newTaskAddCmd(app *App) *cobra.Command {
	var flags domain.TaskForm

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a task",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			vm := viewmodel.NewTasks(app.API)
			vm.OpenCreate()
			vm.SetForm(flags)
			if err := vm.Submit(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success("Created task "+formatter.Bold(flags.Title)))
			return nil
		},
	}

	addTaskFlags(cmd, &flags)
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newTaskEditCmd(app *App) *cobra.Command {
	var flags domain.TaskForm

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Update a task; only the flags given change",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			current, err := app.API.GetTask(cmd.Context(), id)
			if err != nil {
				return err
			}

			vm := viewmodel.NewTasks(app.API)
			form := vm.OpenEdit(*current)
			fs := cmd.Flags()
			overrideString(fs, "title", &form.Title)
			overrideString(fs, "desc", &form.Description)
			overrideString(fs, "contact", &form.ContactID)
			overrideString(fs, "project", &form.ProjectID)
			overrideString(fs, "due", &form.DueAt)
			overrideString(fs, "priority", &form.Priority)
			overrideString(fs, "status", &form.Status)
			overrideString(fs, "channel", &form.Channel)
			vm.SetForm(form)

			if err := vm.Submit(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success("Updated task "+formatter.Bold(form.Title)))
			return nil
		},
	}

	addTaskFlags(cmd, &flags)
	return cmd
}

func newTaskRemoveCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			current, err := app.API.GetTask(cmd.Context(), id)
			if err != nil {
				return err
			}
			confirm, err := deleteConfirm(app, yes, fmt.Sprintf("Delete task %q?", current.Title))
			if err != nil {
				return err
			}
			deleted, err := viewmodel.NewTasks(app.API).Delete(cmd.Context(), id, confirm)
			if err != nil {
				return err
			}
			reportDelete(cmd.OutOrStdout(), deleted, current.Title)
			return nil
		},
	}

	addYesFlag(cmd, &yes)
	return cmd
}

func newTaskMoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "move <id> <status>",
		Short: "Move a task to another kanban column",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			to, err := parseTaskStatus(args[1])
			if err != nil {
				return err
			}
			current, err := app.API.GetTask(cmd.Context(), id)
			if err != nil {
				return err
			}

			board := viewmodel.NewBoard(app.API, nil, app.logger())
			payload := board.DragStart(*current, current.Status)
			if payload.From == to {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim(fmt.Sprintf("%s is already in %s.", current.Title, to.Label())))
				return nil
			}
			if err := board.Drop(cmd.Context(), payload, to); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.Success(fmt.Sprintf("Moved %s to %s",
				formatter.Bold(current.Title), formatter.TaskStatusPill(to))))
			fmt.Fprintln(out, formatter.FormatKanban(board.Snapshot(), 0, nil, app.now()))
			return nil
		},
	}
}

func newTaskKanbanCmd(app *App) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "kanban",
		Short: "Show tasks as a kanban board",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			board := viewmodel.NewBoard(app.API, nil, app.logger())
			if err := board.Load(cmd.Context()); err != nil {
				return err
			}
			if asJSON {
				return formatter.WriteJSON(cmd.OutOrStdout(), board.Snapshot(), true)
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatKanban(board.Snapshot(), 0, nil, app.now()))
			return nil
		},
	}

	addJSONFlag(cmd, &asJSON)
	return cmd
}
