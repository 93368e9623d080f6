package stream

import "context"

// Iterator provides pull-based sequential access to a sequence of values.
// The consumer calls Next() to retrieve values one at a time.
// Iterators are single-use and not safe for concurrent consumers.
// Close must be called when done to release resources.
type Iterator[T any] interface {
	// Next returns the next value. Returns (zero, false, nil) when exhausted.
	Next(ctx context.Context) (T, bool, error)
	// Close releases any resources held by the iterator.
	Close() error
}

// Collect pulls all values and returns them as a slice.
// The iterator is closed before returning.
func Collect[T any](ctx context.Context, it Iterator[T]) ([]T, error) {
	defer it.Close()
	var out []T
	for {
		val, ok, err := it.Next(ctx)
		if err != nil {
			return out, err
		}
		if !ok {
			return out, nil
		}
		out = append(out, val)
	}
}

// Drain pulls all values, discarding each, and returns how many were seen.
func Drain[T any](ctx context.Context, it Iterator[T]) (int, error) {
	defer it.Close()
	n := 0
	for {
		_, ok, err := it.Next(ctx)
		if err != nil {
			return n, err
		}
		if !ok {
			return n, nil
		}
		n++
	}
}

// ForEach pulls all values and calls fn for each.
// Iteration stops at the first error from the iterator or fn.
func ForEach[T any](ctx context.Context, it Iterator[T], fn func(context.Context, T) error) error {
	defer it.Close()
	for {
		val, ok, err := it.Next(ctx)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if err := fn(ctx, val); err != nil {
			return err
		}
	}
}
