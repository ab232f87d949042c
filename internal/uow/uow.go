package uow

import (
	"context"

	"github.com/kirinyoku/tix-client/internal/repository/memory"
)

// AfterCommit runs once the transaction committed and the store is unlocked.
type AfterCommit func(ctx context.Context)

type UoW struct {
	store *memory.Store
}

func NewUoW(store *memory.Store) *UoW {
	return &UoW{store: store}
}

// Do runs fn inside a store transaction. Hooks registered through after run in
// order once fn returned nil; none of them run if it failed.
func (u *UoW) Do(
	ctx context.Context,
	fn func(ctx context.Context, tx *memory.Tx, after func(AfterCommit)) error,
) error {
	var hooks []AfterCommit

	err := u.store.RunTx(ctx, func(ctx context.Context, tx *memory.Tx) error {
		return fn(ctx, tx, func(h AfterCommit) {
			hooks = append(hooks, h)
		})
	})
	if err != nil {
		return err
	}

	for _, h := range hooks {
		h(ctx)
	}

	return nil
}
