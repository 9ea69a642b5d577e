// Package viewmodel holds page state between the API client and the views.
// Every load is tagged with a generation; a response is applied only if no
// newer load has started since, so a slow reply can never overwrite a
// fresher one.
package viewmodel

import (
	"io"
	"log/slog"
	"sync"
)

type generation struct {
	mu  sync.Mutex
	seq uint64
}

// next starts a load and returns its generation.
func (g *generation) next() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seq++
	return g.seq
}

// apply runs fn under the lock if gen is still the latest load.
func (g *generation) apply(gen uint64, fn func()) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if gen != g.seq {
		return false
	}
	fn()
	return true
}

func (g *generation) read(fn func()) {
	g.mu.Lock()
	defer g.mu.Unlock()
	fn()
}

func loggerOrDiscard(logger *slog.Logger) *slog.Logger {
	if logger != nil {
		return logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// filterBox holds a list filter that views change between loads.
type filterBox[Q any] struct {
	mu sync.RWMutex
	v  Q
}

func (b *filterBox[Q]) get() Q {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.v
}

func (b *filterBox[Q]) set(v Q) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.v = v
}
