package tryon

import (
	"sync/atomic"

	"github.com/furiarock/mockstudio/pkg/errors"
)

// Guard allows one try-on at a time. The zero value is ready to use.
type Guard struct {
	busy atomic.Bool
}

// Acquire claims the guard, or fails with TRYON_BUSY if a try-on is
// already running. A successful Acquire must be paired with Release.
func (g *Guard) Acquire() error {
	if !g.busy.CompareAndSwap(false, true) {
		return errors.New(errors.ErrCodeBusy, "a try-on is already being generated")
	}
	return nil
}

// Release frees the guard.
func (g *Guard) Release() { g.busy.Store(false) }

// Busy reports whether a try-on is running.
func (g *Guard) Busy() bool { return g.busy.Load() }
