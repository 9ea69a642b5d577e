package cli

import (
	"fmt"

	"github.com/alexanderramin/followup/internal/cli/formatter"
	"github.com/alexanderramin/followup/internal/domain"
	"github.com/alexanderramin/followup/internal/viewmodel"
	"github.com/spf13/cobra"
)

func newProjectsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "projects",
		Aliases: []string{"project"},
		Short:   "Manage projects",
	}

	cmd.AddCommand(
		newProjectListCmd(app),
		newProjectShowCmd(app),
		newProjectAddCmd(app),
		newProjectEditCmd(app),
		newProjectRemoveCmd(app),
	)

	return cmd
}

func newProjectListCmd(app *App) *cobra.Command {
	var status string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st := domain.ProjectStatus(status)
			if st != "" && !st.Valid() {
				return fmt.Errorf("unknown status %q (use activo, pausado, completado or cancelado)", status)
			}
			vm := viewmodel.NewProjects(app.API)
			vm.SetStatus(st)
			if err := vm.Load(cmd.Context()); err != nil {
				return err
			}
			if asJSON {
				return formatter.WriteJSON(cmd.OutOrStdout(), vm.Items(), true)
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProjectList(vm.Items()))
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "estado", "", "Status: activo, pausado, completado, cancelado")
	addJSONFlag(cmd, &asJSON)
	return cmd
}

func newProjectShowCmd(app *App) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			p, err := app.API.GetProject(cmd.Context(), id)
			if err != nil {
				return err
			}
			if asJSON {
				return formatter.WriteJSON(cmd.OutOrStdout(), p, true)
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProjectShow(p))
			return nil
		},
	}

	addJSONFlag(cmd, &asJSON)
	return cmd
}

func addProjectFlags(cmd *cobra.Command, f *domain.ProjectForm) {
	cmd.Flags().StringVar(&f.Name, "name", "", "Project name")
	cmd.Flags().StringVar(&f.Description, "desc", "", "Description")
	cmd.Flags().StringVar(&f.ContactID, "contact", "", "Contact ID")
	cmd.Flags().StringVar(&f.Status, "status", string(domain.ProjectActive), "Status: activo, pausado, completado, cancelado")
}

func newProjectAddCmd(app *App) *cobra.Command {
	var flags domain.ProjectForm

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			vm := viewmodel.NewProjects(app.API)
			vm.OpenCreate()
			vm.SetForm(flags)
			if err := vm.Submit(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success("Created project "+formatter.Bold(flags.Name)))
			return nil
		},
	}

	addProjectFlags(cmd, &flags)
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newProjectEditCmd(app *App) *cobra.Command {
	var flags domain.ProjectForm

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Update a project; only the flags given change",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			current, err := app.API.GetProject(cmd.Context(), id)
			if err != nil {
				return err
			}

			vm := viewmodel.NewProjects(app.API)
			form := vm.OpenEdit(*current)
			fs := cmd.Flags()
			overrideString(fs, "name", &form.Name)
			overrideString(fs, "desc", &form.Description)
			overrideString(fs, "contact", &form.ContactID)
			overrideString(fs, "status", &form.Status)
			vm.SetForm(form)

			if err := vm.Submit(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success("Updated project "+formatter.Bold(form.Name)))
			return nil
		},
	}

	addProjectFlags(cmd, &flags)
	return cmd
}

func newProjectRemoveCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a project",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			current, err := app.API.GetProject(cmd.Context(), id)
			if err != nil {
				return err
			}
			confirm, err := deleteConfirm(app, yes, fmt.Sprintf("Delete project %q?", current.Name))
			if err != nil {
				return err
			}
			deleted, err := viewmodel.NewProjects(app.API).Delete(cmd.Context(), id, confirm)
			if err != nil {
				return err
			}
			reportDelete(cmd.OutOrStdout(), deleted, current.Name)
			return nil
		},
	}

	addYesFlag(cmd, &yes)
	return cmd
}
