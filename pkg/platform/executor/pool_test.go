package executor

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingObserver struct {
	mu    sync.Mutex
	tasks int
}

func (o *recordingObserver) ObserveQueueDepth(string, int) {}

func (o *recordingObserver) ObserveTask(string, time.Duration, time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.tasks++
}

func TestSubmitReturnsValue(t *testing.T) {
	pool := NewPool(2, 4)
	defer pool.Close()

	f := Submit(context.Background(), pool, func(context.Context) (int, error) {
		return 42, nil
	})

	got, err := f.Await(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 42, got)
}

func TestSubmitPropagatesError(t *testing.T) {
	pool := NewPool(1, 1)
	defer pool.Close()
	boom := errors.New("db down")

	_, err := Submit(context.Background(), pool, func(context.Context) (string, error) {
		return "", boom
	}).Await(context.Background())

	assert.ErrorIs(t, err, boom)
}

// panicCaseEnv selects the case TestPanicsAreFatal runs in a child process.
const panicCaseEnv = "EXECUTOR_PANIC_CASE"

func TestPanicsAreFatal(t *testing.T) {
	cases := map[string]func(){
		"submit": func() {
			pool := NewPool(1, 1)
			_, _ = Submit(context.Background(), pool, func(context.Context) (int, error) {
				panic("wrong question type")
			}).Await(context.Background())
		},
		"then": func() {
			_, _ = Then(Completed(1), func(int) (int, error) {
				panic("wrong question type")
			}).Await(context.Background())
		},
	}
	if name := os.Getenv(panicCaseEnv); name != "" {
		cases[name]()
		return
	}

	for name := range cases {
		t.Run(name, func(t *testing.T) {
			cmd := exec.Command(os.Args[0], "-test.run=^TestPanicsAreFatal$")
			cmd.Env = append(os.Environ(), panicCaseEnv+"="+name)
			out, err := cmd.CombinedOutput()

			var exitErr *exec.ExitError
			require.ErrorAs(t, err, &exitErr)
			assert.False(t, exitErr.Success())
			assert.Contains(t, string(out), "panic: wrong question type")
		})
	}
}

func TestWorkersAreBounded(t *testing.T) {
	const workers = 3
	pool := NewPool(workers, 32)
	defer pool.Close()

	var running, peak atomic.Int32
	futures := make([]*Future[int], 0, 20)
	for i := 0; i < 20; i++ {
		futures = append(futures, Submit(context.Background(), pool, func(context.Context) (int, error) {
			n := running.Add(1)
			for {
				old := peak.Load()
				if n <= old || peak.CompareAndSwap(old, n) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			running.Add(-1)
			return i, nil
		}))
	}
	for i, f := range futures {
		got, err := f.Await(context.Background())
		require.NoError(t, err)
		assert.Equal(t, i, got)
	}
	assert.LessOrEqual(t, peak.Load(), int32(workers))
}

func TestTaskIsNotCancelledWithCaller(t *testing.T) {
	pool := NewPool(1, 1)
	defer pool.Close()

	ctx, cancel := context.WithCancel(context.Background())
	started := make(chan struct{})
	f := Submit(ctx, pool, func(runCtx context.Context) (bool, error) {
		close(started)
		time.Sleep(10 * time.Millisecond)
		return runCtx.Err() == nil, nil
	})
	<-started
	cancel()

	stillLive, err := f.Await(context.Background())
	require.NoError(t, err)
	assert.True(t, stillLive)
}

func TestSubmitAfterClose(t *testing.T) {
	pool := NewPool(1, 1)
	require.NoError(t, pool.Close())
	require.NoError(t, pool.Close())

	_, err := Submit(context.Background(), pool, func(context.Context) (int, error) {
		return 1, nil
	}).Await(context.Background())
	assert.ErrorIs(t, err, ErrPoolClosed)
}

func TestCloseDrainsQueuedWork(t *testing.T) {
	observer := &recordingObserver{}
	pool := NewPool(1, 8, WithObserver(observer), WithName("test"))

	var done atomic.Int32
	for i := 0; i < 8; i++ {
		Submit(context.Background(), pool, func(context.Context) (struct{}, error) {
			done.Add(1)
			return struct{}{}, nil
		})
	}
	require.NoError(t, pool.Close())
	assert.Equal(t, int32(8), done.Load())
	assert.Equal(t, 8, observer.tasks)
}

func TestThen(t *testing.T) {
	pool := NewPool(1, 1)
	defer pool.Close()

	t.Run("maps the value", func(t *testing.T) {
		f := Submit(context.Background(), pool, func(context.Context) (int, error) {
			return 7, nil
		})
		got, err := Then(f, func(v int) (string, error) {
			return strconv.Itoa(v * 2), nil
		}).Await(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "14", got)
	})

	t.Run("skips the continuation on error", func(t *testing.T) {
		boom := errors.New("boom")
		called := false
		_, err := Then(Failed[int](boom), func(int) (int, error) {
			called = true
			return 0, nil
		}).Await(context.Background())
		assert.ErrorIs(t, err, boom)
		assert.False(t, called)
	})
}

func TestAwaitHonoursCallerContext(t *testing.T) {
	pool := NewPool(1, 1)
	defer pool.Close()
	release := make(chan struct{})
	f := Submit(context.Background(), pool, func(context.Context) (int, error) {
		<-release
		return 1, nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()
	_, err := f.Await(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	close(release)
	got, err := f.Await(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, got)
	assert.Equal(t, 1, mustValue(t, Completed(1)))
}

func mustValue[T any](t *testing.T, f *Future[T]) T {
	t.Helper()
	v, err := f.Await(context.Background())
	require.NoError(t, err)
	return v
}
