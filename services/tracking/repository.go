package tracking

import (
	"context"
)

// PositionRepo is the write side of the position store used by sessions
type PositionRepo interface {
	Upsert(ctx context.Context, key string, fields map[string]string) error
	Delete(ctx context.Context, key string) error
}
