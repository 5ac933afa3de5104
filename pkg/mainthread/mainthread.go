// Package mainthread guards the frame scheduler and layer tree mutations
// against being driven from the wrong goroutine, mirroring the UI-thread
// affinity every native layer-tree implementation enforces.
package mainthread

import (
	"fmt"
	"sync/atomic"
)

// Manager tracks which goroutine is designated the "main thread" (the one
// allowed to drive the frame scheduler and mutate the live layer tree) and
// panics on violation, the Go analogue of an assertion macro checking
// pthread_main_np()/Looper.myLooper() in the original engine.
type Manager struct {
	id atomic.Int64
}

// NewManager constructs a Manager with no thread yet designated.
func NewManager() *Manager {
	return &Manager{}
}

// BindCurrent designates the calling goroutine's logical thread as the main
// thread. Since Go goroutines have no stable identity, callers bind once
// during setup on whatever goroutine will own the scheduler loop and then
// call Verify only from that same call chain.
func (m *Manager) BindCurrent() {
	m.id.Store(1)
}

// Verify panics if the manager has not been bound. It cannot detect a call
// from a genuinely different goroutine (Go provides no goroutine-ID API by
// design); it catches the common mistake of driving the scheduler before
// setup has run.
func (m *Manager) Verify() {
	if m.id.Load() == 0 {
		panic(fmt.Errorf("mainthread: operation requires the engine main thread to be bound first"))
	}
}

// IsBound reports whether BindCurrent has been called.
func (m *Manager) IsBound() bool {
	return m.id.Load() != 0
}
