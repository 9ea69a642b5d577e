package viewmodel

import "context"

// List is a generation-guarded collection loaded from the backend.
type List[T any] struct {
	fetch func(ctx context.Context) ([]T, error)

	gen    generation
	items  []T
	loaded bool
	err    error
}

func NewList[T any](fetch func(ctx context.Context) ([]T, error)) *List[T] {
	return &List[T]{fetch: fetch}
}

// Load fetches the collection. A failed load keeps the previous items and
// records the error. Returns ErrStale when a newer load superseded it.
func (l *List[T]) Load(ctx context.Context) error {
	gen := l.gen.next()
	items, err := l.fetch(ctx)
	applied := l.gen.apply(gen, func() {
		if err != nil {
			l.err = err
			return
		}
		l.items = items
		l.loaded = true
		l.err = nil
	})
	if !applied {
		return ErrStale
	}
	return err
}

// Items returns a copy of the loaded items.
func (l *List[T]) Items() []T {
	var out []T
	l.gen.read(func() { out = append([]T(nil), l.items...) })
	return out
}

func (l *List[T]) Loaded() bool {
	var v bool
	l.gen.read(func() { v = l.loaded })
	return v
}

// Err is the error of the most recent applied load.
func (l *List[T]) Err() error {
	var err error
	l.gen.read(func() { err = l.err })
	return err
}
