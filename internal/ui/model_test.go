package ui

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guregu/null/v6"

	"github.com/stephenmcmahon83/stock-analyzer/internal/utils"
	"github.com/stephenmcmahon83/stock-analyzer/models"
)

// fakeSource counts calls and returns canned data.
type fakeSource struct {
	records []models.WeeklyOHLC
	err     error
	calls   int
	last    string
}

func (f *fakeSource) WeeklyOHLC(ctx context.Context, symbol string) ([]models.WeeklyOHLC, error) {
	f.calls++
	f.last = symbol
	return f.records, f.err
}

func (f *fakeSource) Name() string {
	return "fake"
}

func newTestModel(t *testing.T, source *fakeSource) Model {
	t.Helper()
	logger, err := utils.NewLogger(t.TempDir())
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	t.Cleanup(func() { logger.Close() })
	return New(source, logger, t.TempDir())
}

func typeString(m Model, s string) Model {
	for _, r := range s {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = next.(Model)
	}
	return m
}

func pressEnter(m Model) (Model, tea.Cmd) {
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return next.(Model), cmd
}

// runFetch executes the commands produced by a submission and returns the
// fetch completion message.
func runFetch(t *testing.T, cmd tea.Cmd) fetchDoneMsg {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command after submit")
	}
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case fetchDoneMsg:
			return msg
		case tea.BatchMsg:
			queue = append(queue, msg...)
		}
	}
	t.Fatal("no fetch completion message produced")
	return fetchDoneMsg{}
}

func sampleRecords() []models.WeeklyOHLC {
	return []models.WeeklyOHLC{
		{WeekStartDate: "2025-06-02", WeekNumber: 23, Year: 2025, Open: 100, High: 110, Low: 95, Close: 105.5, ChangePct: null.FloatFrom(5.5)},
		{WeekStartDate: "2025-05-26", WeekNumber: 22, Year: 2025, Open: 102, High: 108, Low: 99, Close: 100, ChangePct: null.FloatFrom(-1.9608)},
		{WeekStartDate: "2025-05-19", WeekNumber: 21, Year: 2025, Open: 101, High: 104, Low: 97, Close: 102, ChangePct: null.Float{}},
	}
}

func TestSubmitEmptySymbolShowsErrorWithoutFetch(t *testing.T) {
	source := &fakeSource{}
	m := newTestModel(t, source)

	m, cmd := pressEnter(m)
	if cmd != nil {
		t.Fatal("empty submission must not dispatch any command")
	}
	if source.calls != 0 {
		t.Fatalf("expected zero fetches, got %d", source.calls)
	}
	if m.phase != phaseError {
		t.Fatalf("phase = %v, want error", m.phase)
	}
	view := m.View()
	if !strings.Contains(view, "Please enter a stock symbol.") {
		t.Errorf("view missing empty-input message: %q", view)
	}
}

func TestSubmitWhitespaceOnlyIsRejected(t *testing.T) {
	source := &fakeSource{}
	m := newTestModel(t, source)
	m.input.SetValue("   ")

	m, cmd := pressEnter(m)
	if cmd != nil || source.calls != 0 {
		t.Fatal("whitespace-only submission must not reach the source")
	}
	if !strings.Contains(m.View(), "Please enter a stock symbol.") {
		t.Error("view missing empty-input message")
	}
}

func TestTypingUppercasesSymbol(t *testing.T) {
	m := newTestModel(t, &fakeSource{})
	m = typeString(m, "msft")
	if got := m.input.Value(); got != "MSFT" {
		t.Errorf("input value = %q, want MSFT", got)
	}
}

func TestSubmitFetchesOnceAndRendersRows(t *testing.T) {
	source := &fakeSource{records: sampleRecords()}
	m := newTestModel(t, source)
	m = typeString(m, "aapl")

	m, cmd := pressEnter(m)
	if m.phase != phaseLoading {
		t.Fatalf("phase = %v, want loading", m.phase)
	}
	view := m.View()
	if !strings.Contains(view, "Fetching weekly data for AAPL") {
		t.Errorf("loading view missing progress line: %q", view)
	}

	msg := runFetch(t, cmd)
	if source.calls != 1 {
		t.Fatalf("expected exactly one fetch, got %d", source.calls)
	}
	if source.last != "AAPL" {
		t.Fatalf("fetched symbol = %q, want AAPL", source.last)
	}

	next, _ := m.Update(msg)
	m = next.(Model)
	if m.phase != phaseSuccess {
		t.Fatalf("phase = %v, want success", m.phase)
	}

	table := m.renderTable()
	rows := strings.Split(table, "\n")
	if len(rows) != len(source.records)+1 { // header plus one line per record
		t.Fatalf("table has %d lines, want %d", len(rows), len(source.records)+1)
	}
	if !strings.Contains(rows[1], "2025-06-02") || !strings.Contains(rows[1], "5.50%") {
		t.Errorf("first row = %q, want newest record with 5.50%%", rows[1])
	}
	if !strings.Contains(rows[2], "-1.96%") {
		t.Errorf("second row = %q, want -1.96%%", rows[2])
	}
	if !strings.Contains(rows[3], "n/a") {
		t.Errorf("third row = %q, want n/a change", rows[3])
	}

	view = m.View()
	if strings.Contains(view, "Fetching weekly data") {
		t.Error("loading indicator still visible after completion")
	}
	if !strings.Contains(view, "weeks") {
		t.Error("summary footer missing from success view")
	}
}

func TestFetchErrorShowsBannerAndHidesResults(t *testing.T) {
	source := &fakeSource{err: errors.New("API error [AAPL]: 404 Not Found - Symbol not found")}
	m := newTestModel(t, source)
	m = typeString(m, "AAPL")

	m, cmd := pressEnter(m)
	msg := runFetch(t, cmd)
	next, _ := m.Update(msg)
	m = next.(Model)

	if m.phase != phaseError {
		t.Fatalf("phase = %v, want error", m.phase)
	}
	view := m.View()
	if !strings.Contains(view, "404") || !strings.Contains(view, "Symbol not found") {
		t.Errorf("error banner missing status or body: %q", view)
	}
	if strings.Contains(view, "Week Start") {
		t.Error("results table visible in error state")
	}
	if strings.Contains(view, "Fetching weekly data") {
		t.Error("loading indicator visible in error state")
	}
}

func TestFetchEmptyShowsNoDataNotice(t *testing.T) {
	source := &fakeSource{}
	m := newTestModel(t, source)
	m = typeString(m, "ZZZZ")

	m, cmd := pressEnter(m)
	msg := runFetch(t, cmd)
	next, _ := m.Update(msg)
	m = next.(Model)

	if m.phase != phaseSuccess {
		t.Fatalf("empty result should land in success, got %v", m.phase)
	}
	view := m.View()
	if !strings.Contains(view, "No weekly data available for ZZZZ.") {
		t.Errorf("view missing no-data notice: %q", view)
	}
	if strings.Contains(view, "Week Start") {
		t.Error("table header rendered with no records")
	}
}

func TestRetryAfterErrorClearsBanner(t *testing.T) {
	source := &fakeSource{err: errors.New("HTTP request failed [AAPL]: connection refused")}
	m := newTestModel(t, source)
	m = typeString(m, "AAPL")

	m, cmd := pressEnter(m)
	next, _ := m.Update(runFetch(t, cmd))
	m = next.(Model)
	if m.phase != phaseError {
		t.Fatalf("phase = %v, want error", m.phase)
	}

	source.err = nil
	source.records = sampleRecords()
	m, cmd = pressEnter(m)
	if m.phase != phaseLoading {
		t.Fatalf("phase = %v, want loading on retry", m.phase)
	}
	if strings.Contains(m.View(), "connection refused") {
		t.Error("stale error banner visible while loading")
	}

	next, _ = m.Update(runFetch(t, cmd))
	m = next.(Model)
	if m.phase != phaseSuccess {
		t.Fatalf("phase = %v, want success after retry", m.phase)
	}
	if source.calls != 2 {
		t.Errorf("expected two fetches across retry, got %d", source.calls)
	}
}

func TestExportWritesCSV(t *testing.T) {
	source := &fakeSource{records: sampleRecords()}
	m := newTestModel(t, source)
	m = typeString(m, "AAPL")

	m, cmd := pressEnter(m)
	next, _ := m.Update(runFetch(t, cmd))
	m = next.(Model)

	next, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlE})
	m = next.(Model)
	if cmd == nil {
		t.Fatal("export should dispatch a command")
	}
	msg, ok := cmd().(exportDoneMsg)
	if !ok {
		t.Fatal("export command did not produce a completion message")
	}
	if msg.err != nil {
		t.Fatalf("export failed: %v", msg.err)
	}
	if _, err := os.Stat(msg.path); err != nil {
		t.Fatalf("exported file missing: %v", err)
	}

	next, _ = m.Update(msg)
	m = next.(Model)
	if !strings.Contains(m.View(), "saved ") {
		t.Error("view missing export confirmation")
	}
}

func TestExportIgnoredOutsideSuccess(t *testing.T) {
	m := newTestModel(t, &fakeSource{})
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlE})
	if cmd != nil {
		t.Error("export with nothing displayed should be a no-op")
	}
	if _, ok := next.(Model); !ok {
		t.Fatal("update should return the model unchanged")
	}
}
