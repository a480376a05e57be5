package scheduler

import (
	"context"
	"errors"
	"fmt"
)

// Work is one unit of work run by the pool. It must honour ctx.
type Work[T any] func(ctx context.Context) (T, error)

type Result[T any] struct {
	Data T
	Err  error
}

// Future is the pending result of submitted work. It receives exactly one Result.
type Future[T any] struct {
	input  chan Result[T]
	cancel context.CancelFunc
}

func newFuture[T any](input chan Result[T], cancel context.CancelFunc) *Future[T] {
	return &Future[T]{input: input, cancel: cancel}
}

func (f *Future[T]) C() <-chan Result[T] {
	return f.input
}

// Stop cancels the context passed to the work.
func (f *Future[T]) Stop() {
	f.cancel()
}

// Wait blocks until the work finishes or ctx is done. In the latter case the
// work is cancelled.
func (f *Future[T]) Wait(ctx context.Context) (T, error) {
	select {
	case r := <-f.input:
		return r.Data, r.Err
	case <-ctx.Done():
		f.Stop()
		var zero T
		return zero, ctx.Err()
	}
}

// Collect waits for every future and returns the successful values in
// submission order along with all failures joined.
func Collect[T any](ctx context.Context, futures ...*Future[T]) ([]T, error) {
	values := make([]T, 0, len(futures))
	var errs []error
	for i, f := range futures {
		v, err := f.Wait(ctx)
		if err != nil {
			errs = append(errs, fmt.Errorf("work %d: %w", i, err))
			continue
		}
		values = append(values, v)
	}
	return values, errors.Join(errs...)
}

// Run submits every work to s and collects the results.
func Run[T any](ctx context.Context, s *Scheduler, works ...Work[T]) ([]T, error) {
	futures := make([]*Future[T], 0, len(works))
	for _, w := range works {
		futures = append(futures, Submit(s, w))
	}
	return Collect(ctx, futures...)
}
