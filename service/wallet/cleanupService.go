package wallet

import (
	"context"
	"time"
)

type CleanupRepo interface {
	ExpireStaleTopups(ctx context.Context, now time.Time) (int64, error)
}

// Cleaner expires PENDING topups whose gateway invoice has lapsed. Run on a
// schedule.
type Cleaner interface {
	ExpireStale(ctx context.Context) (int64, error)
}

type cleaner struct {
	r CleanupRepo
}

func NewCleaner(r CleanupRepo) Cleaner { return &cleaner{r: r} }

func (c *cleaner) ExpireStale(ctx context.Context) (int64, error) {
	return c.r.ExpireStaleTopups(ctx, time.Now().UTC())
}
