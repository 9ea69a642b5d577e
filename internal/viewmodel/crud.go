package viewmodel

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// CRUDOps binds a CRUD view-model to one entity's endpoints and form.
type CRUDOps[T any, F any] struct {
	List     func(ctx context.Context) ([]T, error)
	Create   func(ctx context.Context, form F) error
	Update   func(ctx context.Context, id int64, form F) error
	Delete   func(ctx context.Context, id int64) error
	ID       func(rec T) int64
	NewForm  func() F
	FormFrom func(rec *T) F
	Validate func(form F) error
}

// Confirm asks the user to approve a destructive action.
type Confirm func() bool

// CRUD is the list-plus-modal-form state shared by the entity pages.
type CRUD[T any, F any] struct {
	*List[T]
	ops CRUDOps[T, F]

	mu      sync.Mutex
	open    bool
	editing *T
	form    F
}

func NewCRUD[T any, F any](ops CRUDOps[T, F]) *CRUD[T, F] {
	return &CRUD[T, F]{List: NewList(ops.List), ops: ops}
}

// OpenCreate opens the form with blank defaults.
func (c *CRUD[T, F]) OpenCreate() F {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.open = true
	c.editing = nil
	c.form = c.ops.NewForm()
	return c.form
}

// OpenEdit opens the form pre-filled from rec.
func (c *CRUD[T, F]) OpenEdit(rec T) F {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.open = true
	c.editing = &rec
	c.form = c.ops.FormFrom(&rec)
	return c.form
}

// SetForm replaces the form contents, e.g. after user input.
func (c *CRUD[T, F]) SetForm(form F) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.form = form
}

func (c *CRUD[T, F]) Form() F {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.form
}

func (c *CRUD[T, F]) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.open
}

// Editing returns the record being edited, if the form is in edit mode.
func (c *CRUD[T, F]) Editing() (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.editing == nil {
		var zero T
		return zero, false
	}
	return *c.editing, true
}

// Close discards the form.
func (c *CRUD[T, F]) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.open = false
	c.editing = nil
	var zero F
	c.form = zero
}

// Submit validates the form and creates or updates the record. On
// success the form closes and the list reloads; the reload's error, if
// any, is returned. On failure the form stays open.
func (c *CRUD[T, F]) Submit(ctx context.Context) error {
	c.mu.Lock()
	if !c.open {
		c.mu.Unlock()
		return ErrFormClosed
	}
	form := c.form
	editing := c.editing
	c.mu.Unlock()

	if c.ops.Validate != nil {
		if err := c.ops.Validate(form); err != nil {
			return err
		}
	}

	var err error
	if editing != nil {
		err = c.ops.Update(ctx, c.ops.ID(*editing), form)
	} else {
		err = c.ops.Create(ctx, form)
	}
	if err != nil {
		return err
	}

	c.Close()
	if err := c.Load(ctx); err != nil && !errors.Is(err, ErrStale) {
		return fmt.Errorf("saved, but reloading failed: %w", err)
	}
	return nil
}

// Delete removes id after confirm approves it, then reloads. Declining
// issues no request and reports deleted=false.
func (c *CRUD[T, F]) Delete(ctx context.Context, id int64, confirm Confirm) (deleted bool, err error) {
	if confirm == nil || !confirm() {
		return false, nil
	}
	if err := c.ops.Delete(ctx, id); err != nil {
		return false, err
	}
	if err := c.Load(ctx); err != nil && !errors.Is(err, ErrStale) {
		return true, fmt.Errorf("deleted, but reloading failed: %w", err)
	}
	return true, nil
}

// Find returns the loaded record with id.
func (c *CRUD[T, F]) Find(id int64) (T, bool) {
	for _, rec := range c.Items() {
		if c.ops.ID(rec) == id {
			return rec, true
		}
	}
	var zero T
	return zero, false
}
