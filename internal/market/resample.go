package market

import (
	"time"

	"github.com/guregu/null/v6"

	"github.com/stephenmcmahon83/stock-analyzer/models"
)

// dailyBar is a single day of trading used as resampling input.
type dailyBar struct {
	Time  time.Time
	Open  float64
	High  float64
	Low   float64
	Close float64
}

// resampleWeekly aggregates daily bars, ordered oldest first, into ISO-week
// records: open from the first bar, high/low from the extremes, close from
// the last bar. Change percent is (close-open)/open*100.
func resampleWeekly(bars []dailyBar) []models.WeeklyOHLC {
	var weeks []models.WeeklyOHLC
	var cur *models.WeeklyOHLC
	var curYear, curWeek int

	for _, bar := range bars {
		year, week := bar.Time.ISOWeek()
		if cur == nil || year != curYear || week != curWeek {
			if cur != nil {
				finishWeek(cur)
				weeks = append(weeks, *cur)
			}
			start := weekStart(bar.Time)
			cur = &models.WeeklyOHLC{
				WeekStartDate: start.Format("2006-01-02"),
				WeekNumber:    week,
				Year:          year,
				Open:          bar.Open,
				High:          bar.High,
				Low:           bar.Low,
				Close:         bar.Close,
			}
			curYear, curWeek = year, week
			continue
		}
		if bar.High > cur.High {
			cur.High = bar.High
		}
		if bar.Low < cur.Low {
			cur.Low = bar.Low
		}
		cur.Close = bar.Close
	}
	if cur != nil {
		finishWeek(cur)
		weeks = append(weeks, *cur)
	}

	return weeks
}

// finishWeek fills in the derived change percent once a week is complete.
// A zero open leaves the change null rather than dividing by zero.
func finishWeek(w *models.WeeklyOHLC) {
	if w.Open != 0 {
		w.ChangePct = null.FloatFrom((w.Close - w.Open) / w.Open * 100)
	}
}

// weekStart returns the Monday beginning t's ISO week, at UTC midnight.
func weekStart(t time.Time) time.Time {
	t = t.UTC()
	offset := (int(t.Weekday()) + 6) % 7 // Monday=0 ... Sunday=6
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return day.AddDate(0, 0, -offset)
}
