// Package optimistic applies a local state change before the remote call
// that makes it durable, and puts the old state back if that call fails.
package optimistic

import (
	"context"
)

// State can be captured and put back. Implementations do their own locking;
// Apply never holds a lock across the commit.
type State[S any] interface {
	Snapshot() S
	Restore(S)
}

// Apply snapshots state, runs change, then commit. When commit fails the
// snapshot is restored and the commit error is returned unchanged.
func Apply[S any](ctx context.Context, state State[S], change func(), commit func(context.Context) error) error {
	snapshot := state.Snapshot()
	change()

	if err := commit(ctx); err != nil {
		state.Restore(snapshot)
		return err
	}
	return nil
}

// Funcs adapts a pair of functions to State.
type Funcs[S any] struct {
	SnapshotFunc func() S
	RestoreFunc  func(S)
}

// Snapshot calls SnapshotFunc.
func (f Funcs[S]) Snapshot() S { return f.SnapshotFunc() }

// Restore calls RestoreFunc.
func (f Funcs[S]) Restore(s S) { f.RestoreFunc(s) }
