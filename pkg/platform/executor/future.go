package executor

import "context"

// Future is the eventual result of a submitted task.
type Future[T any] struct {
	done  chan struct{}
	value T
	err   error
}

func newFuture[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

func (f *Future[T]) complete(value T, err error) {
	f.value = value
	f.err = err
	close(f.done)
}

// Completed returns a future that already holds value.
func Completed[T any](value T) *Future[T] {
	f := newFuture[T]()
	f.complete(value, nil)
	return f
}

// Failed returns a future that already holds err.
func Failed[T any](err error) *Future[T] {
	f := newFuture[T]()
	var zero T
	f.complete(zero, err)
	return f
}

// Done is closed once the result is available.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Await blocks until the result is available or ctx ends. Giving up on the
// wait does not cancel the task.
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Then returns a future for fn applied to f's value. Errors from f skip fn
// and propagate unchanged. As with Submit, a panic in fn ends the process.
func Then[T, U any](f *Future[T], fn func(T) (U, error)) *Future[U] {
	out := newFuture[U]()
	go func() {
		<-f.done
		if f.err != nil {
			var zero U
			out.complete(zero, f.err)
			return
		}
		value, err := fn(f.value)
		out.complete(value, err)
	}()
	return out
}
