package market

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
	"github.com/shopspring/decimal"

	"github.com/stephenmcmahon83/stock-analyzer/models"
)

// YahooSource pulls daily bars from Yahoo Finance and aggregates them to
// weekly records in process. It exists for running without the analysis
// service.
type YahooSource struct {
	years int
}

// NewYahooSource creates a source covering the given number of years of
// history. Values below one fall back to 20.
func NewYahooSource(years int) *YahooSource {
	if years < 1 {
		years = 20
	}
	return &YahooSource{years: years}
}

func (y *YahooSource) Name() string {
	return "yahoo"
}

// WeeklyOHLC downloads daily history for the symbol and resamples it to ISO
// weeks, newest first.
func (y *YahooSource) WeeklyOHLC(ctx context.Context, symbol string) ([]models.WeeklyOHLC, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	symbol = strings.ToUpper(strings.TrimSpace(symbol))

	end := time.Now()
	start := end.AddDate(-y.years, 0, 0)
	params := &chart.Params{
		Symbol:   symbol,
		Start:    datetime.New(&start),
		End:      datetime.New(&end),
		Interval: datetime.OneDay,
	}

	var bars []dailyBar
	iter := chart.Get(params)
	for iter.Next() {
		b := iter.Bar()
		bars = append(bars, dailyBar{
			Time:  time.Unix(int64(b.Timestamp), 0).UTC(),
			Open:  barFloat(b.Open),
			High:  barFloat(b.High),
			Low:   barFloat(b.Low),
			Close: barFloat(b.Close),
		})
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("chart fetch failed [%s]: %w", symbol, err)
	}

	weeks := resampleWeekly(bars)
	reverse(weeks)
	return weeks, nil
}

// barFloat converts a Yahoo decimal price to a float64 for aggregation.
func barFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}

// reverse flips the slice so the newest week comes first, matching the
// order the analysis service returns.
func reverse(weeks []models.WeeklyOHLC) {
	for i, j := 0, len(weeks)-1; i < j; i, j = i+1, j-1 {
		weeks[i], weeks[j] = weeks[j], weeks[i]
	}
}
