package stream

import (
	"context"
	"iter"
)

// FromSlice returns an iterator over the given items.
func FromSlice[T any](items []T) Iterator[T] {
	return &sliceIter[T]{items: items}
}

// FromChan returns an iterator that pulls from ch until it is closed.
// The sequence is unbounded if the sender never closes the channel.
func FromChan[T any](ch <-chan T) Iterator[T] {
	return &chanIter[T]{ch: ch}
}

// FromFunc returns an iterator backed by a pull function.
// fn follows the Next contract: (zero, false, nil) signals exhaustion.
// After fn reports exhaustion or an error it is not called again.
func FromFunc[T any](fn func(ctx context.Context) (T, bool, error)) Iterator[T] {
	return &funcIter[T]{fn: fn}
}

// FromSeq adapts a range-over-func sequence.
// The returned iterator must be consumed from a single goroutine.
func FromSeq[T any](seq iter.Seq[T]) Iterator[T] {
	next, stop := iter.Pull(seq)
	return &seqIter[T]{next: next, stop: stop}
}

// FromSeq2 adapts a range-over-func sequence whose second value is an error.
// Iteration ends at the first non-nil error, which Next returns.
func FromSeq2[T any](seq iter.Seq2[T, error]) Iterator[T] {
	next, stop := iter.Pull2(seq)
	return &seq2Iter[T]{next: next, stop: stop}
}

// --- Iterator implementations ---

type sliceIter[T any] struct {
	items []T
	index int
}

func (it *sliceIter[T]) Next(_ context.Context) (T, bool, error) {
	if it.index >= len(it.items) {
		var zero T
		return zero, false, nil
	}
	val := it.items[it.index]
	it.index++
	return val, true, nil
}

func (it *sliceIter[T]) Close() error { return nil }

type chanIter[T any] struct {
	ch <-chan T
}

func (it *chanIter[T]) Next(ctx context.Context) (T, bool, error) {
	select {
	case val, open := <-it.ch:
		if !open {
			var zero T
			return zero, false, nil
		}
		return val, true, nil
	case <-ctx.Done():
		var zero T
		return zero, false, ctx.Err()
	}
}

func (it *chanIter[T]) Close() error { return nil }

type funcIter[T any] struct {
	fn   func(ctx context.Context) (T, bool, error)
	done bool
}

func (it *funcIter[T]) Next(ctx context.Context) (T, bool, error) {
	if it.done {
		var zero T
		return zero, false, nil
	}
	val, ok, err := it.fn(ctx)
	if err != nil || !ok {
		it.done = true
	}
	return val, ok, err
}

func (it *funcIter[T]) Close() error {
	it.done = true
	return nil
}

type seqIter[T any] struct {
	next func() (T, bool)
	stop func()
}

func (it *seqIter[T]) Next(_ context.Context) (T, bool, error) {
	val, ok := it.next()
	return val, ok, nil
}

func (it *seqIter[T]) Close() error {
	it.stop()
	return nil
}

type seq2Iter[T any] struct {
	next func() (T, error, bool)
	stop func()
}

func (it *seq2Iter[T]) Next(_ context.Context) (T, bool, error) {
	val, err, ok := it.next()
	if !ok {
		var zero T
		return zero, false, nil
	}
	if err != nil {
		it.stop()
		var zero T
		return zero, false, err
	}
	return val, true, nil
}

func (it *seq2Iter[T]) Close() error {
	it.stop()
	return nil
}
