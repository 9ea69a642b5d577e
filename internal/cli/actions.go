package cli

import (
	"context"

	"github.com/alexanderramin/followup/internal/cli/formatter"
	"github.com/alexanderramin/followup/internal/viewmodel"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

// wizardCompleteError pops the wizard and reports err.
func wizardCompleteError(err error) wizardCompleteMsg {
	return wizardCompleteMsg{nextCmd: outputCmd(formatter.Error(err))}
}

// entityForm ties a CRUD view-model to the huh form that edits it.
type entityForm[T, F any] struct {
	state *SharedState
	crud  *viewmodel.CRUD[T, F]
	build func(f *F, err error) *huh.Form
	noun  string

	// onSaved runs after a successful save, on the submitting goroutine.
	onSaved func(ctx context.Context)
}

// open pushes the form for whatever the CRUD currently has open. err, when
// set, is shown above the fields of a reopened form.
func (e entityForm[T, F]) open(err error) tea.Cmd {
	title := "New " + e.noun
	if _, editing := e.crud.Editing(); editing {
		title = "Edit " + e.noun
	}
	values := e.crud.Form()
	form := e.build(&values, err)
	return pushView(newWizardView(e.state, title, form, func() tea.Cmd {
		return func() tea.Msg { return e.submit(context.Background(), values) }
	}))
}

// submit saves values. A rejected form is reopened with the error; the
// CRUD keeps it open, so the user's input is not lost.
func (e entityForm[T, F]) submit(ctx context.Context, values F) tea.Msg {
	e.crud.SetForm(values)
	if err := e.crud.Submit(ctx); err != nil {
		if e.crud.IsOpen() {
			return wizardCompleteMsg{nextCmd: e.open(err), reloaded: true}
		}
		return wizardCompleteError(err)
	}
	if e.onSaved != nil {
		e.onSaved(ctx)
	}
	return wizardCompleteMsg{
		nextCmd:  outputCmd(formatter.Success("Saved " + e.noun)),
		reloaded: true,
	}
}

// deleteFunc is a CRUD delete bound to one record.
type deleteFunc func(ctx context.Context, confirm viewmodel.Confirm) (bool, error)

// confirmDelete asks before deleting title. Declining or escaping issues
// no request.
func confirmDelete(state *SharedState, prompt, title string, del deleteFunc) tea.Cmd {
	var confirmed bool
	form := wizardConfirm(prompt, &confirmed)
	return pushView(newWizardView(state, "Confirm delete", form, func() tea.Cmd {
		return func() tea.Msg {
			return applyDelete(context.Background(), del, confirmed, title)
		}
	}))
}

func applyDelete(ctx context.Context, del deleteFunc, confirmed bool, title string) tea.Msg {
	deleted, err := del(ctx, func() bool { return confirmed })
	if err != nil {
		if deleted {
			// The record is gone; only the reload failed.
			return wizardCompleteError(err)
		}
		return wizardCompleteMsg{nextCmd: outputCmd(formatter.Error(err)), reloaded: true}
	}
	if !deleted {
		return wizardCancelled()
	}
	return wizardCompleteMsg{
		nextCmd:  outputCmd(formatter.Success("Deleted: " + formatter.Bold(title))),
		reloaded: true,
	}
}
