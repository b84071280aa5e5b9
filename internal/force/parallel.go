package force

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

type schedule int

const (
	static schedule = iota
	guided
)

// staticBlock is how many items a worker processes between cancellation
// checks under the static schedule.
const staticBlock = 64

// parallelFor splits [0, n) across workers and runs fn on each piece. The
// first error cancels the remaining pieces and is returned.
func parallelFor(n, workers int, sched schedule, fn func(worker, start, end int) error) error {
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		if n == 0 {
			return nil
		}
		return fn(0, 0, n)
	}

	g, ctx := errgroup.WithContext(context.Background())

	switch sched {
	case guided:
		q := &guidedQueue{n: n, workers: workers, minChunk: 1}
		for w := 0; w < workers; w++ {
			w := w
			g.Go(func() error {
				for {
					if err := ctx.Err(); err != nil {
						return err
					}
					start, end, ok := q.take()
					if !ok {
						return nil
					}
					if err := fn(w, start, end); err != nil {
						return err
					}
				}
			})
		}
	default:
		chunk := (n + workers - 1) / workers
		for w := 0; w < workers; w++ {
			start := w * chunk
			end := min(start+chunk, n)
			if start >= end {
				break
			}
			w := w
			g.Go(func() error {
				for s := start; s < end; s += staticBlock {
					if err := ctx.Err(); err != nil {
						return err
					}
					if err := fn(w, s, min(s+staticBlock, end)); err != nil {
						return err
					}
				}
				return nil
			})
		}
	}

	return g.Wait()
}

// guidedQueue hands out chunks proportional to the remaining work, so the
// long rows at the start of a triangular loop do not pile onto one worker.
type guidedQueue struct {
	mu       sync.Mutex
	next     int
	n        int
	workers  int
	minChunk int
}

func (q *guidedQueue) take() (start, end int, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.next >= q.n {
		return 0, 0, false
	}
	size := (q.n - q.next) / (2 * q.workers)
	if size < q.minChunk {
		size = q.minChunk
	}
	start = q.next
	end = min(start+size, q.n)
	q.next = end
	return start, end, true
}
