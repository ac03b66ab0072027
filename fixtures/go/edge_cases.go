package fixtures

import (
	"context"
	"fmt"
)

// Runner's method set is declared, not defined; it must not count as a
// definition of Run.
type Runner interface {
	Run(ctx context.Context) error
}

type Worker struct{}

func (w *Worker) Run(ctx context.Context) error {
	logStart()
	return helper(ctx)
}

type Queue[T any] struct {
	items []T
}

func (q *Queue[T]) Push(item T) {
	q.items = append(q.items, item)
}

func helper(ctx context.Context) error {
	run := func() { fmt.Println("running") }
	run()
	return ctx.Err()
}

func logStart() {
	fmt.Println("start")
}
