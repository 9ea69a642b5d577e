package cli

import (
	"fmt"

	"github.com/alexanderramin/followup/internal/cli/formatter"
	"github.com/alexanderramin/followup/internal/domain"
	"github.com/alexanderramin/followup/internal/viewmodel"
	"github.com/spf13/cobra"
)

const templateRenderWidth = 76

func newTemplatesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "templates",
		Aliases: []string{"template"},
		Short:   "Manage reminder message templates",
	}

	cmd.AddCommand(
		newTemplateListCmd(app),
		newTemplateShowCmd(app),
		newTemplateAddCmd(app),
		newTemplateEditCmd(app),
		newTemplateRemoveCmd(app),
		newTemplatePreviewCmd(app),
	)

	return cmd
}

func newTemplateListCmd(app *App) *cobra.Command {
	var typ string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t := domain.TemplateType(typ)
			if t != "" && !t.Valid() {
				return fmt.Errorf("unknown template type %q (use telegram or email)", typ)
			}
			vm := viewmodel.NewTemplates(app.API)
			vm.SetType(t)
			if err := vm.Load(cmd.Context()); err != nil {
				return err
			}
			if asJSON {
				return formatter.WriteJSON(cmd.OutOrStdout(), vm.Items(), true)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.FormatTemplateList(vm.Items()))
			fmt.Fprintln(out, formatter.FormatPlaceholders())
			return nil
		},
	}

	cmd.Flags().StringVar(&typ, "tipo", "", "Type: telegram or email")
	addJSONFlag(cmd, &asJSON)
	return cmd
}

func newTemplateShowCmd(app *App) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			t, err := app.API.GetTemplate(cmd.Context(), id)
			if err != nil {
				return err
			}
			if asJSON {
				return formatter.WriteJSON(cmd.OutOrStdout(), t, true)
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTemplateShow(t, templateRenderWidth))
			return nil
		},
	}

	addJSONFlag(cmd, &asJSON)
	return cmd
}

func addTemplateFlags(cmd *cobra.Command, f *domain.TemplateForm) {
	cmd.Flags().StringVar(&f.Name, "name", "", "Template name")
	cmd.Flags().StringVar(&f.Type, "type", string(domain.TemplateTelegram), "Type: telegram or email")
	cmd.Flags().StringVar(&f.Subject, "subject", "", "Subject line (email only)")
	cmd.Flags().StringVar(&f.Body, "body", "", "Message with {placeholders}")
	cmd.Flags().BoolVar(&f.IsDefault, "default", false, "Make this the default template for its type")
}

func newTemplateAddCmd(app *App) *cobra.Command {
	var flags domain.TemplateForm

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a template",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			vm := viewmodel.NewTemplates(app.API)
			vm.OpenCreate()
			vm.SetForm(flags)
			if err := vm.Submit(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success("Created template "+formatter.Bold(flags.Name)))
			return nil
		},
	}

	addTemplateFlags(cmd, &flags)
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("body")
	return cmd
}

func newTemplateEditCmd(app *App) *cobra.Command {
	var flags domain.TemplateForm

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Update a template; only the flags given change",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			current, err := app.API.GetTemplate(cmd.Context(), id)
			if err != nil {
				return err
			}

			vm := viewmodel.NewTemplates(app.API)
			form := vm.OpenEdit(*current)
			fs := cmd.Flags()
			overrideString(fs, "name", &form.Name)
			overrideString(fs, "type", &form.Type)
			overrideString(fs, "subject", &form.Subject)
			overrideString(fs, "body", &form.Body)
			overrideBool(fs, "default", &form.IsDefault)
			vm.SetForm(form)

			if err := vm.Submit(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success("Updated template "+formatter.Bold(form.Name)))
			return nil
		},
	}

	addTemplateFlags(cmd, &flags)
	return cmd
}

func newTemplateRemoveCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a template",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			current, err := app.API.GetTemplate(cmd.Context(), id)
			if err != nil {
				return err
			}
			confirm, err := deleteConfirm(app, yes, fmt.Sprintf("Delete template %q?", current.Name))
			if err != nil {
				return err
			}
			deleted, err := viewmodel.NewTemplates(app.API).Delete(cmd.Context(), id, confirm)
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

func newTemplatePreviewCmd(app *App) *cobra.Command {
	var vars map[string]string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "preview <id>",
		Short: "Render a template with sample or given values",
		Example: `  followup templates preview 3
  followup templates preview 3 --var contacto_nombre=Ana --var titulo="Send quote"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			p, err := viewmodel.NewPreviewer(app.API).Preview(cmd.Context(), id, vars)
			if err != nil {
				return err
			}
			if asJSON {
				return formatter.WriteJSON(cmd.OutOrStdout(), p, true)
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTemplatePreview(p, templateRenderWidth))
			return nil
		},
	}

	cmd.Flags().StringToStringVar(&vars, "var", nil, "Placeholder value as key=value (repeatable)")
	addJSONFlag(cmd, &asJSON)
	return cmd
}
