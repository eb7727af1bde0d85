package collector

import (
	"context"
	"time"

	"PriceOutlook/internal/model"
)

// Fetcher retrieves a raw price history for one symbol over [start, end].
type Fetcher interface {
	Fetch(ctx context.Context, symbol string, start, end time.Time) (*model.RawTable, error)
	Name() string
}
