package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/followup/internal/cli/formatter"
	"github.com/alexanderramin/followup/internal/session"
	"github.com/spf13/cobra"
)

func newLoginCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "login <telegram-id>",
		Short: "Store the Telegram ID used to authorize requests",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := applyLogin(cmd.Context(), app, args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success("Logged in as "+formatter.Bold(app.Session.Identity())))
			return nil
		},
	}
}

// applyLogin validates and stores id, then probes the backend. A failed
// probe is logged and never blocks the login.
func applyLogin(ctx context.Context, app *App, id string) error {
	if err := app.Session.SetIdentity(ctx, id); err != nil {
		return err
	}
	if _, err := app.API.Health(ctx); err != nil {
		app.logger().Warn("health probe failed", "error", err)
	}
	return nil
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored Telegram ID",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Session.Clear(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success("Logged out"))
			return nil
		},
	}
}

func newWhoamiCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the stored identity and registration details",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if !app.Session.IsLoggedIn() {
				fmt.Fprintln(out, formatter.Dim("Not logged in. Run `followup login <telegram-id>`."))
				return nil
			}
			fmt.Fprintf(out, "%s %s\n", formatter.Dim("Telegram ID:"), formatter.Bold(app.Session.Identity()))
			reg, err := app.Session.Registration(cmd.Context())
			if err != nil {
				return err
			}
			if reg.Name != "" {
				fmt.Fprintf(out, "%s %s\n", formatter.Dim("Name:       "), reg.Name)
			}
			if reg.Email != "" {
				fmt.Fprintf(out, "%s %s\n", formatter.Dim("Email:      "), reg.Email)
			}
			if reg.Plan != "" {
				fmt.Fprintf(out, "%s %s\n", formatter.Dim("Plan:       "), reg.Plan)
			}
			return nil
		},
	}
}

func newRegisterCmd(app *App) *cobra.Command {
	var reg session.Registration

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Sign up locally and log in",
		Long: `Record your name, email, plan and Telegram ID on this machine and log in.
Without flags on a terminal, a step-by-step form is shown.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if reg.Name == "" && reg.TelegramID == "" && app.interactive() {
				f := newRegistrationFields(reg.Plan)
				if err := registrationInfoForm(f).Run(); err != nil {
					return err
				}
				if err := registrationIdentityForm(f).Run(); err != nil {
					return err
				}
				reg = f.registration()
			}
			if err := app.Session.SaveRegistration(cmd.Context(), reg); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(fmt.Sprintf("Welcome, %s. Logged in as %s",
				formatter.Bold(reg.Name), formatter.Bold(app.Session.Identity()))))
			return nil
		},
	}

	cmd.Flags().StringVar(&reg.Name, "name", "", "Your name")
	cmd.Flags().StringVar(&reg.Email, "email", "", "Your email")
	cmd.Flags().StringVar(&reg.TelegramID, "telegram-id", "", "Your numeric Telegram ID")
	cmd.Flags().StringVar(&reg.Plan, "plan", "", "Plan: starter, professional or business")

	return cmd
}
