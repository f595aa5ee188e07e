// Package schedule implements the parallel work queue and ordered-drain
// scheduler from spec.md §4.7/§5: a single producer hands sequence-stamped
// raw tasks to a worker pool; a single drain goroutine reassembles the
// (unordered) decode results back into sequence order before invoking the
// caller's consumer.
//
// Generalizes missinglink/gosmparse's decoder.go (the `blobs := make(chan
// *OSMPBF.Blob, QueueSize)` producer plus `consumerCount` worker goroutines
// in Decoder.Parse) and brechtbm/osmpbf's round-robin input/output channel
// pairing in Decoder.Start, combining both into one reusable, ordered
// pipeline stage built on golang.org/x/sync/errgroup (as used for
// goroutine-group cancellation in distr1/distri) instead of hand-rolled
// WaitGroups and error channels.
package schedule

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

type rawTask[R any] struct {
	seq int
	raw R
}

type decoded[T any] struct {
	seq int
	val T
}

// Run drains produce() until it reports done, decoding each item with up
// to `workers` concurrent calls to decode, and invoking consume exactly
// once per sequence number in strictly ascending order.
//
// produce is called from a single goroutine and must not block on
// anything consume does (that would deadlock the pipeline). decode must be
// safe to call concurrently from multiple goroutines. consume is called
// from a single goroutine and may safely mutate stage-local state (it is
// the "ordered result channel" / drain thread from spec.md §2/§5).
//
// The first error from produce, decode or consume cancels the context and
// is returned; queued-but-unprocessed tasks are discarded (spec.md §4.7:
// "Fatal errors... cancel all outstanding tasks and bubble to the top").
func Run[R, T any](
	ctx context.Context,
	workers, queueSize int,
	produce func() (seq int, raw R, done bool, err error),
	decode func(raw R) (T, error),
	consume func(seq int, val T) error,
) error {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 1 {
		queueSize = 1
	}

	g, gctx := errgroup.WithContext(ctx)

	tasks := make(chan rawTask[R], queueSize)
	results := make(chan decoded[T], queueSize)

	g.Go(func() error {
		defer close(tasks)
		for {
			seq, raw, done, err := produce()
			if err != nil {
				return err
			}
			if done {
				return nil
			}
			select {
			case tasks <- rawTask[R]{seq: seq, raw: raw}:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
	})

	var workerWG sync.WaitGroup
	for i := 0; i < workers; i++ {
		workerWG.Add(1)
		g.Go(func() error {
			defer workerWG.Done()
			for t := range tasks {
				v, err := decode(t.raw)
				if err != nil {
					return err
				}
				select {
				case results <- decoded[T]{seq: t.seq, val: v}:
				case <-gctx.Done():
					return gctx.Err()
				}
			}
			return nil
		})
	}

	g.Go(func() error {
		workerWG.Wait()
		close(results)
		return nil
	})

	g.Go(func() error {
		pending := make(map[int]T)
		next := 0
		for r := range results {
			pending[r.seq] = r.val
			for {
				v, ok := pending[next]
				if !ok {
					break
				}
				delete(pending, next)
				if err := consume(next, v); err != nil {
					return err
				}
				next++
			}
		}
		return nil
	})

	return g.Wait()
}
