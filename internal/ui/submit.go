package ui

import (
	"context"
	"fmt"
	"sync/atomic"
)

// Submit runs work on its own goroutine and, once it returns, posts exactly one of
// onSuccess or onFailure onto the loop. The returned channel closes after that
// callback ran, or without it running once the loop stops first, including when
// the callback was already queued.
// There is no cancellation: work runs to completion unless ctx expires.
func Submit[T any](
	ctx context.Context,
	loop *Loop,
	work func(ctx context.Context) (T, error),
	onSuccess func(T),
	onFailure func(error),
) <-chan struct{} {
	done := make(chan struct{})

	go func() {
		defer close(done)

		v, err := runWork(ctx, work)

		// claimed is won either by the task, which then runs the callback, or by
		// this goroutine when the loop stops before the task starts.
		var claimed atomic.Bool
		ran := make(chan struct{})

		posted := loop.Post(func() {
			defer close(ran)
			if !claimed.CompareAndSwap(false, true) {
				return
			}

			if err != nil {
				onFailure(err)
				return
			}
			onSuccess(v)
		})
		if !posted {
			return
		}

		select {
		case <-ran:
		case <-loop.Done():
			if !claimed.CompareAndSwap(false, true) {
				<-ran
			}
		}
	}()

	return done
}

func runWork[T any](ctx context.Context, work func(ctx context.Context) (T, error)) (v T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("ui: background task panicked: %v", r)
		}
	}()

	return work(ctx)
}
