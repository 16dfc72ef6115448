// Package models defines the data structures shared across the application.
package models

import "github.com/guregu/null/v6"

// WeeklyOHLC represents one ISO week of price history for a single symbol.
// ChangePct is null when no week-over-week change could be computed.
type WeeklyOHLC struct {
	WeekStartDate string     `json:"week_start_date"`
	WeekNumber    int        `json:"week_number"`
	Year          int        `json:"year"`
	Open          float64    `json:"open"`
	High          float64    `json:"high"`
	Low           float64    `json:"low"`
	Close         float64    `json:"close"`
	ChangePct     null.Float `json:"change_pct"`
}

// OHLCResponse is the envelope returned by the weekly OHLC endpoint.
type OHLCResponse struct {
	WeeklyOHLC []WeeklyOHLC `json:"weekly_ohlc"`
}
