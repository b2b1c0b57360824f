package input

import (
	"context"

	"askbox/internal/domain/entity"
)

// Task is a dispatched ask cycle.
type Task interface {
	Done() <-chan struct{}
	Wait() entity.Outcome
}

type AskHandler interface {
	Handle(ctx context.Context) entity.Outcome
	Dispatch(ctx context.Context) Task
}
