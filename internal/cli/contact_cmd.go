package cli

import (
	"fmt"

	"github.com/alexanderramin/followup/internal/cli/formatter"
	"github.com/alexanderramin/followup/internal/domain"
	"github.com/alexanderramin/followup/internal/viewmodel"
	"github.com/spf13/cobra"
)

func newContactsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "contacts",
		Aliases: []string{"contact"},
		Short:   "Manage contacts",
	}

	cmd.AddCommand(
		newContactListCmd(app),
		newContactShowCmd(app),
		newContactAddCmd(app),
		newContactEditCmd(app),
		newContactRemoveCmd(app),
	)

	return cmd
}

func newContactListCmd(app *App) *cobra.Command {
	var search string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List contacts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			vm := viewmodel.NewContacts(app.API)
			vm.SetSearch(search)
			if err := vm.Load(cmd.Context()); err != nil {
				return err
			}
			if asJSON {
				return formatter.WriteJSON(cmd.OutOrStdout(), vm.Items(), true)
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatContactList(vm.Items(), search))
			return nil
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "Filter by name, email or company")
	addJSONFlag(cmd, &asJSON)
	return cmd
}

func newContactShowCmd(app *App) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a contact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			c, err := app.API.GetContact(cmd.Context(), id)
			if err != nil {
				return err
			}
			if asJSON {
				return formatter.WriteJSON(cmd.OutOrStdout(), c, true)
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatContactShow(c))
			return nil
		},
	}

	addJSONFlag(cmd, &asJSON)
	return cmd
}

func addContactFlags(cmd *cobra.Command, f *domain.ContactForm) {
	cmd.Flags().StringVar(&f.Name, "name", "", "Contact name")
	cmd.Flags().StringVar(&f.Email, "email", "", "Email address")
	cmd.Flags().StringVar(&f.Phone, "phone", "", "Phone number")
	cmd.Flags().StringVar(&f.Company, "company", "", "Company")
	cmd.Flags().StringVar(&f.Notes, "notes", "", "Free-form notes")
}

func newContactAddCmd(app *App) *cobra.Command {
	var flags domain.ContactForm

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a contact",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			vm := viewmodel.NewContacts(app.API)
			vm.OpenCreate()
			vm.SetForm(flags)
			if err := vm.Submit(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success("Created contact "+formatter.Bold(flags.Name)))
			return nil
		},
	}

	addContactFlags(cmd, &flags)
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newContactEditCmd(app *App) *cobra.Command {
	var flags domain.ContactForm

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Update a contact; only the flags given change",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			current, err := app.API.GetContact(cmd.Context(), id)
			if err != nil {
				return err
			}

			vm := viewmodel.NewContacts(app.API)
			form := vm.OpenEdit(*current)
			fs := cmd.Flags()
			overrideString(fs, "name", &form.Name)
			overrideString(fs, "email", &form.Email)
			overrideString(fs, "phone", &form.Phone)
			overrideString(fs, "company", &form.Company)
			overrideString(fs, "notes", &form.Notes)
			vm.SetForm(form)

			if err := vm.Submit(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success("Updated contact "+formatter.Bold(form.Name)))
			return nil
		},
	}

	addContactFlags(cmd, &flags)
	return cmd
}

func newContactRemoveCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a contact",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			current, err := app.API.GetContact(cmd.Context(), id)
			if err != nil {
				return err
			}
			confirm, err := deleteConfirm(app, yes, fmt.Sprintf("Delete contact %q?", current.Name))
			if err != nil {
				return err
			}
			deleted, err := viewmodel.NewContacts(app.API).Delete(cmd.Context(), id, confirm)
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
