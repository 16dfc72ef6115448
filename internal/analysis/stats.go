// Package analysis derives summary statistics from weekly return series.
package analysis

import (
	"math"

	"github.com/stephenmcmahon83/stock-analyzer/models"
)

// DefaultRiskFreeRate is the annual risk-free rate used for Sharpe ratios.
const DefaultRiskFreeRate = 0.02

const weeksPerYear = 52

// Summary aggregates the weekly change percents of a result set.
type Summary struct {
	Weeks         int     // records summarized
	Returns       int     // records carrying a change percent
	AvgReturn     float64 // mean weekly change, percent
	StdDev        float64 // sample standard deviation, percent
	PctProfitable float64 // share of positive weeks, percent
	ProfitFactor  float64
	SharpeRatio   float64
}

// Summarize computes a Summary over the records' change percents. Records
// without a change percent count toward Weeks but not the statistics.
func Summarize(records []models.WeeklyOHLC) Summary {
	returns := make([]float64, 0, len(records))
	for _, r := range records {
		if r.ChangePct.Valid {
			returns = append(returns, r.ChangePct.Float64)
		}
	}

	s := Summary{Weeks: len(records), Returns: len(returns)}
	if len(returns) == 0 {
		return s
	}

	positive := 0
	sum := 0.0
	for _, r := range returns {
		sum += r
		if r > 0 {
			positive++
		}
	}

	s.AvgReturn = sum / float64(len(returns))
	s.StdDev = sampleStdDev(returns, s.AvgReturn)
	s.PctProfitable = float64(positive) / float64(len(returns)) * 100
	s.ProfitFactor = ProfitFactor(returns)
	s.SharpeRatio = SharpeRatio(returns, DefaultRiskFreeRate)
	return s
}

// ProfitFactor is the ratio of gross profits to gross losses. With no
// losses it is +Inf for a profitable series and 0 otherwise.
func ProfitFactor(returns []float64) float64 {
	profits := 0.0
	losses := 0.0
	for _, r := range returns {
		if r > 0 {
			profits += r
		} else if r < 0 {
			losses += -r
		}
	}
	if losses == 0 {
		if profits > 0 {
			return math.Inf(1)
		}
		return 0
	}
	return profits / losses
}

// SharpeRatio annualizes weekly percentage returns and relates the excess
// over riskFree to volatility. Series shorter than two entries or without
// variance yield 0.
func SharpeRatio(returns []float64, riskFree float64) float64 {
	if len(returns) < 2 {
		return 0
	}
	if populationStdDev(returns) == 0 {
		return 0
	}

	decimals := make([]float64, len(returns))
	for i, r := range returns {
		decimals[i] = r / 100
	}

	annualizedReturn := mean(decimals) * weeksPerYear
	annualizedStdDev := populationStdDev(decimals) * math.Sqrt(weeksPerYear)
	if annualizedStdDev == 0 {
		return 0
	}
	return (annualizedReturn - riskFree) / annualizedStdDev
}

func mean(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func populationStdDev(values []float64) float64 {
	m := mean(values)
	var sq float64
	for _, v := range values {
		d := v - m
		sq += d * d
	}
	return math.Sqrt(sq / float64(len(values)))
}

func sampleStdDev(values []float64, m float64) float64 {
	if len(values) < 2 {
		return 0
	}
	var sq float64
	for _, v := range values {
		d := v - m
		sq += d * d
	}
	return math.Sqrt(sq / float64(len(values)-1))
}
