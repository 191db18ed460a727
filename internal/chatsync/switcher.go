package chatsync

import (
	"context"
	"sync"
)

// Switcher holds at most one live session, for surfaces where only one
// chat target is visible at a time. Activating a new target first stops
// the previous session synchronously, so two pollers can never write
// into the same view.
type Switcher struct {
	mu     sync.Mutex
	active *Session
}

func NewSwitcher() *Switcher {
	return &Switcher{}
}

// Activate stops the current session, if any, then starts a session for
// the new target and returns its handle.
func (w *Switcher) Activate(ctx context.Context, cfg Config) *Session {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.active != nil {
		w.active.Stop()
	}
	w.active = Activate(ctx, cfg)
	return w.active
}

// Deactivate stops the current session, if any.
func (w *Switcher) Deactivate() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.active != nil {
		w.active.Stop()
		w.active = nil
	}
}

// Current returns the live session handle, or nil.
func (w *Switcher) Current() *Session {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.active
}
