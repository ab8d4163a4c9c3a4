package asyncx

import (
	"context"
	"sync"
	"time"
)

// Result is the outcome of one settled call
type Result[T any] struct {
	Value T
	Err   error
}

func (r Result[T]) OK() bool { return r.Err == nil }

// Settle runs every fn concurrently and waits for all of them. Results keep
// the order of fns; a failure never cancels the others.
func Settle[T any](ctx context.Context, fns ...func(context.Context) (T, error)) []Result[T] {
	results := make([]Result[T], len(fns))
	var wg sync.WaitGroup
	for i, fn := range fns {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := fn(ctx)
			results[i] = Result[T]{Value: v, Err: err}
		}()
	}
	wg.Wait()
	return results
}

// WithTimeout bounds fn by d. When the deadline passes first the context error
// is returned and fn is left to observe its cancelled context.
func WithTimeout[T any](ctx context.Context, d time.Duration, fn func(context.Context) (T, error)) (T, error) {
	ctx, cancel := context.WithTimeout(ctx, d)
	defer cancel()

	done := make(chan Result[T], 1)
	go func() {
		v, err := fn(ctx)
		done <- Result[T]{Value: v, Err: err}
	}()

	select {
	case r := <-done:
		return r.Value, r.Err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Retry calls fn up to attempts times, doubling the pause after each failure.
// The last error is returned when every attempt fails.
func Retry[T any](ctx context.Context, attempts int, delay time.Duration, fn func(context.Context) (T, error)) (T, error) {
	var (
		zero T
		err  error
	)
	if attempts < 1 {
		attempts = 1
	}
	for i := range attempts {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return zero, ctxErr
		}

		var v T
		if v, err = fn(ctx); err == nil {
			return v, nil
		}

		if i == attempts-1 {
			break
		}
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, ctx.Err()
		case <-timer.C:
			delay *= 2
		}
	}
	return zero, err
}
