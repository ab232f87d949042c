package ui

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startLoop(t *testing.T) *Loop {
	t.Helper()
	l := NewLoop(slog.New(slog.NewTextHandler(io.Discard, nil)), 0)
	ctx, cancel := context.WithCancel(context.Background())
	go func() { _ = l.Run(ctx) }()
	t.Cleanup(cancel)
	return l
}

func waitDone(t *testing.T, ch <-chan struct{}) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting")
	}
}

func TestLoop_RunsTasksInOrder(t *testing.T) {
	l := startLoop(t)

	var got []int
	for i := 0; i < 10; i++ {
		i := i
		require.True(t, l.Post(func() { got = append(got, i) }))
	}
	require.True(t, l.Invoke(func() {}))

	var snapshot []int
	l.Invoke(func() { snapshot = append(snapshot, got...) })
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, snapshot)
}

func TestLoop_SurvivesPanickingTask(t *testing.T) {
	l := startLoop(t)

	l.Post(func() { panic("boom") })

	ran := false
	require.True(t, l.Invoke(func() { ran = true }))
	assert.True(t, ran)
}

func TestLoop_PostAfterStop(t *testing.T) {
	l := startLoop(t)
	l.Stop()

	assert.False(t, l.Post(func() {}))
	assert.False(t, l.Invoke(func() {}))
}

func TestSubmit_CallbackRunsOnLoopAfterWork(t *testing.T) {
	l := startLoop(t)

	var workFinished atomic.Bool

	release := make(chan struct{})
	var got string
	var sawWorkFinished bool

	done := Submit(context.Background(), l,
		func(ctx context.Context) (string, error) {
			<-release
			workFinished.Store(true)
			return "ok", nil
		},
		func(v string) {
			got = v
			sawWorkFinished = workFinished.Load()
		},
		func(err error) { t.Errorf("unexpected failure: %v", err) },
	)

	// the loop keeps serving tasks while the work is blocked
	assert.True(t, l.Invoke(func() {}))
	assert.False(t, workFinished.Load())

	close(release)
	waitDone(t, done)

	var snapshot string
	l.Invoke(func() { snapshot = got })
	assert.Equal(t, "ok", snapshot)
	assert.True(t, sawWorkFinished)
}

func TestSubmit_Failure(t *testing.T) {
	l := startLoop(t)
	boom := errors.New("boom")

	var got error
	done := Submit(context.Background(), l,
		func(ctx context.Context) (int, error) { return 0, boom },
		func(int) { t.Error("success must not run") },
		func(err error) { got = err },
	)
	waitDone(t, done)

	var snapshot error
	l.Invoke(func() { snapshot = got })
	assert.ErrorIs(t, snapshot, boom)
}

func TestSubmit_PanicBecomesFailure(t *testing.T) {
	l := startLoop(t)

	var got error
	done := Submit(context.Background(), l,
		func(ctx context.Context) (int, error) { panic("kaput") },
		func(int) {},
		func(err error) { got = err },
	)
	waitDone(t, done)

	var snapshot error
	l.Invoke(func() { snapshot = got })
	assert.ErrorContains(t, snapshot, "kaput")
}

func TestSubmit_LoopStopped(t *testing.T) {
	l := startLoop(t)
	l.Stop()

	done := Submit(context.Background(), l,
		func(ctx context.Context) (int, error) { return 1, nil },
		func(int) { t.Error("must not run") },
		func(error) { t.Error("must not run") },
	)
	waitDone(t, done)
}

func TestSubmit_LoopStoppedWithCallbackQueued(t *testing.T) {
	// never run, so the callback stays in the queue
	l := NewLoop(slog.New(slog.NewTextHandler(io.Discard, nil)), 0)
	release := make(chan struct{})

	done := Submit(context.Background(), l,
		func(ctx context.Context) (int, error) {
			<-release
			return 1, nil
		},
		func(int) { t.Error("must not run") },
		func(error) { t.Error("must not run") },
	)

	close(release)
	require.Eventually(t, func() bool { return len(l.tasks) == 1 }, 2*time.Second, 5*time.Millisecond)

	l.Stop()
	waitDone(t, done)
}

func TestSubmit_StopDuringCallbackWaitsForIt(t *testing.T) {
	l := startLoop(t)

	entered := make(chan struct{})
	finish := make(chan struct{})
	var finished atomic.Bool

	done := Submit(context.Background(), l,
		func(ctx context.Context) (int, error) { return 1, nil },
		func(int) {
			close(entered)
			<-finish
			finished.Store(true)
		},
		func(error) {},
	)

	waitDone(t, entered)
	l.Stop()

	select {
	case <-done:
		t.Fatal("closed before the callback returned")
	case <-time.After(50 * time.Millisecond):
	}

	close(finish)
	waitDone(t, done)
	assert.True(t, finished.Load())
}

func TestWidgets_Notify(t *testing.T) {
	b := NewButton("Đăng nhập")
	var labels []string
	b.OnChange(func(label string, disabled bool) { labels = append(labels, label) })

	b.SetDisabled(true)
	b.SetLabel("Đang đăng nhập...")

	assert.True(t, b.Disabled())
	assert.Equal(t, []string{"Đăng nhập", "Đang đăng nhập..."}, labels)

	s := NewStatus()
	s.Show("x", ToneWarning)
	assert.Equal(t, ToneWarning, s.Tone())
	s.Clear()
	assert.Empty(t, s.Text())
	assert.Equal(t, "neutral", s.Tone().String())
}
