package rider

import (
	"context"

	"github.com/yatralink/bustrack/internal/pkg/positionstore"
)

// PositionFeed is the read side of the position store
type PositionFeed interface {
	Subscribe(ctx context.Context) (positionstore.Subscription, error)
}
