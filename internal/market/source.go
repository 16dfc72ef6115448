// Package market provides weekly OHLC price history for ticker symbols,
// either through the analysis service's HTTP API or straight from Yahoo
// Finance with in-process weekly aggregation.
package market

import (
	"context"

	"github.com/stephenmcmahon83/stock-analyzer/models"
)

// Source fetches weekly price history for a single ticker symbol.
// Implementations return records in display order, newest week first. An
// empty result is a valid "no data" outcome, not an error.
type Source interface {
	WeeklyOHLC(ctx context.Context, symbol string) ([]models.WeeklyOHLC, error)
	Name() string
}
