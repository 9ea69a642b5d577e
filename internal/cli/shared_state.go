package cli

import (
	"sync"

	"github.com/alexanderramin/followup/internal/router"
)

// sidebarWidth is the width of the shell navigation column, gap included.
const sidebarWidth = 20

// SharedState holds context shared across all views via pointer.
type SharedState struct {
	App *App

	// Current page, as resolved by the router.
	Route router.Route
	Shell bool

	// Plan picked on the pricing page, carried into registration.
	PendingPlan string

	// Terminal dimensions
	Width  int
	Height int

	mu              sync.Mutex
	identityChanged bool
}

// noteIdentity is the session listener. It may run on any goroutine; the
// app model picks the change up on its next update.
func (s *SharedState) noteIdentity(string) {
	s.mu.Lock()
	s.identityChanged = true
	s.mu.Unlock()
}

func (s *SharedState) takeIdentityChange() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	changed := s.identityChanged
	s.identityChanged = false
	return changed
}

// ContentHeight returns the available height for view content,
// accounting for header (2 lines: title + separator),
// status bar (2 lines: separator + hints), and command bar (1 line).
func (s *SharedState) ContentHeight() int {
	h := s.Height - 5
	if h < 1 {
		return 1
	}
	return h
}

// ContentWidth is the width left for the page, minus the shell sidebar.
func (s *SharedState) ContentWidth() int {
	w := s.Width
	if s.Shell {
		w -= sidebarWidth
	}
	if w < 40 {
		return 40
	}
	return w
}
