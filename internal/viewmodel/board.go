package viewmodel

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/alexanderramin/followup/internal/domain"
)

// StatusChanger issues the single request behind a kanban drop.
type StatusChanger interface {
	ChangeTaskStatus(ctx context.Context, id int64, status domain.TaskStatus) error
}

type BoardAPI interface {
	StatusChanger
	TaskKanban(ctx context.Context) (domain.KanbanSnapshot, error)
}

// Loader is a list view-model that reloads together with a board.
type Loader interface {
	Load(ctx context.Context) error
}

type DashboardAPI interface {
	StatusChanger
	TaskKanban(ctx context.Context) (domain.KanbanSnapshot, error)
	Dashboard(ctx context.Context) (*domain.Dashboard, error)
}

// DragPayload identifies the card being dragged and its origin column.
type DragPayload struct {
	TaskID int64
	From   domain.TaskStatus
}

type boardState struct {
	snapshot domain.KanbanSnapshot
	summary  *domain.Dashboard
}

// Board is the kanban state machine. The snapshot is a read projection:
// drops never edit it locally; they issue one status change and reload.
type Board struct {
	mover  StatusChanger
	fetch  func(ctx context.Context) (boardState, error)
	logger *slog.Logger

	gen    generation
	state  boardState
	loaded bool
	err    error
}

// NewBoard builds the task page board. Each load fetches the kanban
// snapshot and reloads list in parallel, so a drop refreshes the list view
// too. A nil list loads the snapshot alone.
func NewBoard(client BoardAPI, list Loader, logger *slog.Logger) *Board {
	return &Board{
		mover:  client,
		logger: loggerOrDiscard(logger),
		fetch: func(ctx context.Context) (boardState, error) {
			var st boardState
			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				snap, err := client.TaskKanban(gctx)
				if err != nil {
					return fmt.Errorf("loading kanban: %w", err)
				}
				st.snapshot = snap
				return nil
			})
			if list != nil {
				g.Go(func() error {
					// A newer load of the list already covers this one.
					if err := list.Load(gctx); err != nil && !errors.Is(err, ErrStale) {
						return fmt.Errorf("loading tasks: %w", err)
					}
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return boardState{}, err
			}
			return st, nil
		},
	}
}

// NewDashboard builds the dashboard board, loading the summary and the
// kanban snapshot together.
func NewDashboard(client DashboardAPI, logger *slog.Logger) *Board {
	return &Board{
		mover:  client,
		logger: loggerOrDiscard(logger),
		fetch: func(ctx context.Context) (boardState, error) {
			var st boardState
			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				summary, err := client.Dashboard(gctx)
				if err != nil {
					return fmt.Errorf("loading dashboard: %w", err)
				}
				st.summary = summary
				return nil
			})
			g.Go(func() error {
				snap, err := client.TaskKanban(gctx)
				if err != nil {
					return fmt.Errorf("loading kanban: %w", err)
				}
				st.snapshot = snap
				return nil
			})
			if err := g.Wait(); err != nil {
				return boardState{}, err
			}
			return st, nil
		},
	}
}

// Columns returns the board columns in display order.
func (b *Board) Columns() []domain.TaskStatus {
	return append([]domain.TaskStatus(nil), domain.KanbanColumns...)
}

// Load fetches all parts of the board. State changes only when every part
// succeeded and no newer load has started.
func (b *Board) Load(ctx context.Context) error {
	gen := b.gen.next()
	st, err := b.fetch(ctx)
	applied := b.gen.apply(gen, func() {
		if err != nil {
			b.err = err
			return
		}
		b.state = st
		b.loaded = true
		b.err = nil
	})
	if !applied {
		return ErrStale
	}
	return err
}

// DragStart records which card is picked up and where from.
func (b *Board) DragStart(task domain.Task, from domain.TaskStatus) DragPayload {
	return DragPayload{TaskID: task.ID, From: from}
}

// Drop moves the dragged card to column to. Dropping on the origin column
// does nothing. Otherwise one status change is sent and the board is
// reloaded whether or not the change succeeded.
func (b *Board) Drop(ctx context.Context, p DragPayload, to domain.TaskStatus) error {
	if to == p.From {
		return nil
	}
	if !to.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownColumn, to)
	}

	moveErr := b.mover.ChangeTaskStatus(ctx, p.TaskID, to)
	if moveErr != nil {
		b.logger.ErrorContext(ctx, "kanban_drop",
			"task_id", p.TaskID,
			"from", string(p.From),
			"to", string(to),
			"error", moveErr.Error(),
		)
	}

	loadErr := b.Load(ctx)
	if moveErr != nil {
		return fmt.Errorf("moving task %d: %w", p.TaskID, moveErr)
	}
	if loadErr != nil && !errors.Is(loadErr, ErrStale) {
		return loadErr
	}
	return nil
}

// Snapshot returns the current kanban snapshot. Columns are always
// present, possibly empty.
func (b *Board) Snapshot() domain.KanbanSnapshot {
	out := make(domain.KanbanSnapshot, len(domain.KanbanColumns))
	b.gen.read(func() {
		for _, col := range domain.KanbanColumns {
			out[col] = append([]domain.Task{}, b.state.snapshot[col]...)
		}
	})
	return out
}

// Summary returns the dashboard summary, or nil on a task board.
func (b *Board) Summary() *domain.Dashboard {
	var out *domain.Dashboard
	b.gen.read(func() { out = b.state.summary })
	return out
}

func (b *Board) Loaded() bool {
	var v bool
	b.gen.read(func() { v = b.loaded })
	return v
}

func (b *Board) Err() error {
	var err error
	b.gen.read(func() { err = b.err })
	return err
}
