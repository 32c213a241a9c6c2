package utils

import (
	"context"
	"sync"
)

type CompletedTask[T any] struct {
	Index  int
	Result T
	Error  error
}

// RunInPool applies worker to every input on at most maxWorkers goroutines.
// Results are returned in input order. The first error cancels the remaining
// work and is returned.
func RunInPool[In any, Out any](ctx context.Context, inputs []In, worker func(context.Context, In) (Out, error), maxWorkers int) ([]Out, error) {
	if len(inputs) == 0 {
		return nil, nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	queue := make(chan int, len(inputs))
	for i := range inputs {
		queue <- i
	}
	close(queue)

	completed := make(chan CompletedTask[Out], len(inputs))
	workers := max(1, min(len(inputs), maxWorkers))

	wg := sync.WaitGroup{}
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()

			for i := range queue {
				if ctx.Err() != nil {
					return
				}
				res, err := worker(ctx, inputs[i])
				completed <- CompletedTask[Out]{Index: i, Result: res, Error: err}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(completed)
	}()

	results := make([]Out, len(inputs))
	var firstErr error
	for task := range completed {
		if task.Error != nil {
			if firstErr == nil {
				firstErr = task.Error
				cancel()
			}
			continue
		}
		results[task.Index] = task.Result
	}

	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
