// Package stream provides a uniform pull-based iterator over request
// sequences, with adapters for the common origins a caller may have:
// slices, channels, pull functions, and range-over-func sequences.
//
// An Iterator is lazy, forward-only and single-use. Sequences may be
// finite or unbounded; an iterator is restartable only if its origin is.
//
//	it := stream.FromSlice([]string{"a", "b", "c"})
//	vals, err := stream.Collect(ctx, it)
//
// Unbounded origins are typically channels:
//
//	it := stream.FromChan(requests)
//	err := stream.ForEach(ctx, it, func(ctx context.Context, r Request) error {
//	    return handle(ctx, r)
//	})
package stream
