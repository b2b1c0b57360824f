package output

import (
	"context"

	"askbox/internal/domain/entity"
)

type AskBackend interface {
	Ask(ctx context.Context, question entity.Question) entity.Result
}
