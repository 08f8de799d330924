// Package async runs a small, fixed set of independent tasks concurrently
// and collects their results in declaration order.
package async

import (
	"context"
	"fmt"
)

// Task is a named unit of concurrent work producing a value.
type Task[T any] struct {
	Name string
	Func func(context.Context) (T, error)
}

// Result pairs a task's value with its error.
type Result[T any] struct {
	Name  string
	Value T
	Err   error
}

// Collect runs all tasks concurrently and waits for every one of them.
// Results are returned in the order of tasks, regardless of completion
// order. The returned error is the first failure in declaration order,
// wrapped with the task name; successful results are still returned.
//
// Example:
//
//	results, err := Collect(ctx, []Task[string]{
//	    {Name: "slot/OrderIntent/size", Func: createSize},
//	    {Name: "slot/OrderIntent/count", Func: createCount},
//	})
func Collect[T any](ctx context.Context, tasks []Task[T]) ([]Result[T], error) {
	if len(tasks) == 0 {
		return nil, nil
	}

	type indexed struct {
		index int
		value T
		err   error
	}

	resultChan := make(chan indexed, len(tasks))
	for i, task := range tasks {
		go func() {
			v, err := task.Func(ctx)
			resultChan <- indexed{index: i, value: v, err: err}
		}()
	}

	results := make([]Result[T], len(tasks))
	for range len(tasks) {
		res := <-resultChan
		results[res.index] = Result[T]{Name: tasks[res.index].Name, Value: res.value, Err: res.err}
	}

	for _, res := range results {
		if res.Err != nil {
			return results, fmt.Errorf("%s: %w", res.Name, res.Err)
		}
	}
	return results, nil
}
