package cli

import (
	"fmt"

	"github.com/alexanderramin/followup/internal/cli/formatter"
	"github.com/alexanderramin/followup/internal/domain"
	"github.com/spf13/cobra"
)

func newProfileCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or update your backend profile",
	}
	cmd.AddCommand(newProfileShowCmd(app), newProfileSetCmd(app))
	return cmd
}

func newProfileShowCmd(app *App) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show your profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := app.API.Me(cmd.Context())
			if err != nil {
				return err
			}
			if asJSON {
				return formatter.WriteJSON(cmd.OutOrStdout(), u, true)
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProfile(u))
			return nil
		},
	}

	addJSONFlag(cmd, &asJSON)
	return cmd
}

func newProfileSetCmd(app *App) *cobra.Command {
	var name, email, timezone string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Update profile fields; only the flags given change",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var upd domain.UserUpdate
			fs := cmd.Flags()
			if fs.Changed("name") {
				upd.Name = &name
			}
			if fs.Changed("email") {
				upd.Email = &email
			}
			if fs.Changed("timezone") {
				upd.Timezone = &timezone
			}
			if upd == (domain.UserUpdate{}) {
				return fmt.Errorf("nothing to update: pass --name, --email or --timezone")
			}

			u, err := app.API.UpdateMe(cmd.Context(), upd)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProfile(u))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name")
	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVar(&timezone, "timezone", "", "IANA timezone, e.g. America/Mexico_City")
	return cmd
}
