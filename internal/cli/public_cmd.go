package cli

import (
	"fmt"

	"github.com/alexanderramin/followup/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newPricingCmd(app *App) *cobra.Command {
	var annual bool

	cmd := &cobra.Command{
		Use:   "pricing",
		Short: "Show plans and prices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatPricing(annual))
			return nil
		},
	}

	cmd.Flags().BoolVar(&annual, "annual", false, "Show annual billing prices")
	return cmd
}

func newHealthCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the backend is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := app.API.Health(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(fmt.Sprintf("%s is %s",
				app.API.BaseURL(), formatter.Bold(st.Status))))
			return nil
		},
	}
}
