package runner

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

// DefaultRaceWindow is how long CheckRace waits for a late interrupt.
const DefaultRaceWindow = 100 * time.Millisecond

// SignalManager turns SIGINT and SIGTERM into cancellation of a session context.
// The context also ends with its parent.
type SignalManager struct {
	// RaceWindow bounds CheckRace. Zero means DefaultRaceWindow.
	RaceWindow time.Duration

	parent context.Context

	mu     sync.Mutex
	ctx    context.Context
	cancel context.CancelFunc
}

// NewSignalManager starts listening right away.
func NewSignalManager(parent context.Context) *SignalManager {
	if parent == nil {
		parent = context.Background()
	}
	sm := &SignalManager{parent: parent}
	sm.Reset()
	return sm
}

// Context returns the context cancelled by the next interrupt.
func (sm *SignalManager) Context() context.Context {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.ctx
}

// Reset drops the current listener and arms a fresh one.
func (sm *SignalManager) Reset() {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if sm.cancel != nil {
		sm.cancel()
	}
	sm.ctx, sm.cancel = signal.NotifyContext(sm.parent, os.Interrupt, syscall.SIGTERM)
}

// Stop releases the listener and cancels Context.
func (sm *SignalManager) Stop() {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if sm.cancel != nil {
		sm.cancel()
	}
}

// CheckRace gives an interrupt that arrived together with a read error
// (Ctrl+C closing stdin first, as on Windows consoles) time to cancel Context,
// so the session reports a farewell instead of a plain end of input.
func (sm *SignalManager) CheckRace() {
	ctx := sm.Context()
	if ctx.Err() != nil {
		return
	}
	window := sm.RaceWindow
	if window <= 0 {
		window = DefaultRaceWindow
	}
	timer := time.NewTimer(window)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
