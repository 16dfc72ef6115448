package ui

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/stephenmcmahon83/stock-analyzer/models"
)

// tableColumns fixes the results table layout. Widths include the gutter.
var tableColumns = []struct {
	title string
	width int
}{
	{"Week Start", 12},
	{"Year", 6},
	{"Wk", 4},
	{"Open", 10},
	{"High", 10},
	{"Low", 10},
	{"Close", 10},
	{"Change %", 10},
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Weekly Stock Analyzer"))
	b.WriteString("  ")
	b.WriteString(sourceStyle.Render("source: " + m.source.Name()))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	switch m.phase {
	case phaseIdle:
		b.WriteString(noticeStyle.Render("Type a ticker symbol and press Enter."))
	case phaseLoading:
		b.WriteString(m.spinner.View())
		b.WriteString(loadingStyle.Render(fmt.Sprintf(" Fetching weekly data for %s...", m.symbol)))
	case phaseError:
		b.WriteString(errorStyle.Render(m.errText))
	case phaseSuccess:
		if len(m.records) == 0 {
			b.WriteString(noticeStyle.Render(fmt.Sprintf("No weekly data available for %s.", m.symbol)))
		} else {
			if m.ready {
				b.WriteString(m.vp.View())
			} else {
				b.WriteString(m.renderTable())
			}
			b.WriteString("\n")
			b.WriteString(summaryStyle.Render(m.renderSummary()))
		}
	}

	b.WriteString("\n")
	if m.flash != "" {
		b.WriteString(flashStyle.Render(m.flash))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("enter fetch · up/down scroll · ctrl+e export csv · esc quit"))
	return b.String()
}

// renderTable renders the header plus one line per weekly record, newest
// first, with the change column color-coded by sign.
func (m Model) renderTable() string {
	var b strings.Builder

	headers := make([]string, len(tableColumns))
	for i, col := range tableColumns {
		headers[i] = pad(col.title, col.width)
	}
	b.WriteString(headerStyle.Render(strings.Join(headers, "")))
	b.WriteString("\n")

	for _, r := range m.records {
		b.WriteString(renderRow(r))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// renderRow formats a single weekly record. Only the change cell carries a
// sign color; missing changes render as n/a.
func renderRow(r models.WeeklyOHLC) string {
	change := Cell{Text: "n/a"}
	if r.ChangePct.Valid {
		change = FormatCell(r.ChangePct.Float64, true)
	}

	cells := []string{
		pad(r.WeekStartDate, tableColumns[0].width),
		pad(strconv.Itoa(r.Year), tableColumns[1].width),
		pad(strconv.Itoa(r.WeekNumber), tableColumns[2].width),
		pad(FormatCell(r.Open, false).Text, tableColumns[3].width),
		pad(FormatCell(r.High, false).Text, tableColumns[4].width),
		pad(FormatCell(r.Low, false).Text, tableColumns[5].width),
		pad(FormatCell(r.Close, false).Text, tableColumns[6].width),
	}
	styled := signStyle(change.Sign).Render(pad(change.Text, tableColumns[7].width))
	return strings.Join(cells, "") + styled
}

// renderSummary is the one-line statistics footer under the table.
func (m Model) renderSummary() string {
	s := m.summary
	if s.Returns == 0 {
		return fmt.Sprintf("%d weeks · no change data", s.Weeks)
	}

	pf := "inf"
	if !math.IsInf(s.ProfitFactor, 1) {
		pf = strconv.FormatFloat(s.ProfitFactor, 'f', 2, 64)
	}
	avg := FormatCell(s.AvgReturn, true)
	return fmt.Sprintf("%d weeks · avg %s · std %.2f%% · profitable %.1f%% · profit factor %s · sharpe %.2f",
		s.Weeks, signStyle(avg.Sign).Render(avg.Text), s.StdDev, s.PctProfitable, pf, s.SharpeRatio)
}

// pad right-pads or truncates s to width columns.
func pad(s string, width int) string {
	if len(s) > width {
		return s[:width-1] + " "
	}
	if len(s) == width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
