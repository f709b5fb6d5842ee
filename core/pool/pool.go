package pool

import (
	"context"
	"fmt"
	"sync"
)

// outcome is the result of one unit of work.
type outcome[R any] struct {
	result R
	err    error
}

// Fetch runs fn over every input with at most limit invocations in flight.
//
// Each input is attempted exactly once; completion order is unspecified.
// Failures do not stop the batch. If at least one input succeeds, the
// successes are returned and the failures dropped. If every input fails,
// the first recorded error is returned. An empty input slice yields an
// empty result.
//
// Fetch imposes no per-item timeout; fn should honor ctx itself if bounded
// latency is required, and a timeout counts as that item's failure.
func Fetch[I, R any](ctx context.Context, inputs []I, limit int, fn func(context.Context, I) (R, error)) ([]R, error) {
	if limit < 1 {
		return nil, fmt.Errorf("concurrency limit must be at least 1, got %d", limit)
	}
	if len(inputs) == 0 {
		return []R{}, nil
	}
	if limit > len(inputs) {
		limit = len(inputs)
	}

	jobs := make(chan I)
	outcomes := make(chan outcome[R])

	var wg sync.WaitGroup
	wg.Add(limit)
	for i := 0; i < limit; i++ {
		go func() {
			defer wg.Done()
			for in := range jobs {
				r, err := fn(ctx, in)
				outcomes <- outcome[R]{result: r, err: err}
			}
		}()
	}

	go func() {
		for _, in := range inputs {
			jobs <- in
		}
		close(jobs)
		wg.Wait()
		close(outcomes)
	}()

	results := make([]R, 0, len(inputs))
	var firstErr error
	for o := range outcomes {
		if o.err != nil {
			if firstErr == nil {
				firstErr = o.err
			}
			continue
		}
		results = append(results, o.result)
	}

	if len(results) == 0 && firstErr != nil {
		return nil, firstErr
	}
	return results, nil
}
