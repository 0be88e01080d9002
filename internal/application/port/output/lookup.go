package output

import (
	"context"

	"robocon-bot/internal/domain/entity"
)

type LookupPort interface {
	Summary(ctx context.Context, subject string) (*entity.Summary, error)
}
