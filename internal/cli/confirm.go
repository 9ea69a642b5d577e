package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/alexanderramin/followup/internal/cli/formatter"
	"github.com/alexanderramin/followup/internal/viewmodel"
	"github.com/spf13/cobra"
)

// errConfirmRequired is returned when a delete needs approval but there is
// no terminal to ask on.
var errConfirmRequired = errors.New("refusing to delete without confirmation: pass --yes")

// deleteConfirm returns the approval step for a delete. --yes approves
// up front; otherwise the user is asked on the terminal.
func deleteConfirm(app *App, yes bool, prompt string) (viewmodel.Confirm, error) {
	if yes {
		return func() bool { return true }, nil
	}
	if !app.interactive() {
		return nil, errConfirmRequired
	}
	return func() bool {
		var ok bool
		if err := wizardConfirm(prompt, &ok).Run(); err != nil {
			return false
		}
		return ok
	}, nil
}

// reportDelete prints the outcome of a confirmed or declined delete.
func reportDelete(w io.Writer, deleted bool, title string) {
	if !deleted {
		fmt.Fprintln(w, formatter.Dim("Cancelled."))
		return
	}
	fmt.Fprintln(w, formatter.Success("Deleted: "+formatter.Bold(title)))
}

func addYesFlag(cmd *cobra.Command, yes *bool) {
	cmd.Flags().BoolVarP(yes, "yes", "y", false, "Delete without asking")
}

func addJSONFlag(cmd *cobra.Command, asJSON *bool) {
	cmd.Flags().BoolVar(asJSON, "json", false, "Print JSON instead of a table")
}
