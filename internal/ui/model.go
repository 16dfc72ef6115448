// Package ui implements the interactive terminal front end: a symbol input,
// a loading spinner, an error banner and a color-coded weekly results table.
// Exactly one of the three outcome panels is visible at any time.
package ui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/stephenmcmahon83/stock-analyzer/internal/analysis"
	"github.com/stephenmcmahon83/stock-analyzer/internal/market"
	"github.com/stephenmcmahon83/stock-analyzer/internal/utils"
	"github.com/stephenmcmahon83/stock-analyzer/models"
)

// phase is the single active outcome state.
type phase int

const (
	phaseIdle phase = iota
	phaseLoading
	phaseSuccess
	phaseError
)

// chromeHeight is the number of screen lines reserved around the results
// viewport: title, input, padding, summary, flash and help.
const chromeHeight = 8

// fetchDoneMsg carries the outcome of one fetch command.
type fetchDoneMsg struct {
	symbol  string
	records []models.WeeklyOHLC
	took    time.Duration
	err     error
}

// exportDoneMsg carries the outcome of a CSV export command.
type exportDoneMsg struct {
	path string
	err  error
}

// Model drives the fetch-and-render loop around a data source.
type Model struct {
	source    market.Source
	logger    *utils.Logger
	exportDir string

	input   textinput.Model
	spinner spinner.Model
	vp      viewport.Model

	phase   phase
	symbol  string // last submitted symbol
	records []models.WeeklyOHLC
	summary analysis.Summary
	errText string
	flash   string

	width  int
	height int
	ready  bool // viewport sized by the first WindowSizeMsg
}

// New assembles the controller around a data source. Exported CSVs land in
// exportDir.
func New(source market.Source, logger *utils.Logger, exportDir string) Model {
	input := textinput.New()
	input.Placeholder = "AAPL"
	input.Prompt = "Symbol: "
	input.PromptStyle = promptStyle
	input.CharLimit = 12
	input.Width = 16
	input.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle

	return Model{
		source:    source,
		logger:    logger,
		exportDir: exportDir,
		input:     input,
		spinner:   sp,
		phase:     phaseIdle,
	}
}

// Init starts the input cursor blink.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			return m.submit()
		case tea.KeyCtrlE:
			return m.export()
		case tea.KeyUp, tea.KeyDown, tea.KeyPgUp, tea.KeyPgDown:
			if m.ready && m.phase == phaseSuccess {
				var cmd tea.Cmd
				m.vp, cmd = m.vp.Update(msg)
				return m, cmd
			}
			return m, nil
		}
		return m.typeInto(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case spinner.TickMsg:
		if m.phase != phaseLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case fetchDoneMsg:
		return m.finishFetch(msg)

	case exportDoneMsg:
		if msg.err != nil {
			m.flash = "export failed: " + msg.err.Error()
			m.logger.Error("CSV export failed: %v", msg.err)
		} else {
			m.flash = "saved " + msg.path
			m.logger.Info("Exported results to %s", msg.path)
		}
		return m, nil
	}

	return m, nil
}

// typeInto feeds a key to the text input, keeping its value uppercased as
// typed.
func (m Model) typeInto(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if v := m.input.Value(); v != strings.ToUpper(v) {
		pos := m.input.Position()
		m.input.SetValue(strings.ToUpper(v))
		m.input.SetCursor(pos)
	}
	return m, cmd
}

// submit validates the entered symbol and dispatches the fetch. An empty
// symbol is rejected locally without touching the network.
func (m Model) submit() (tea.Model, tea.Cmd) {
	symbol := strings.TrimSpace(m.input.Value())
	if symbol == "" {
		m.phase = phaseError
		m.errText = "Please enter a stock symbol."
		m.logger.Debug("Rejected empty symbol submission")
		return m, nil
	}

	m.phase = phaseLoading
	m.symbol = symbol
	m.flash = ""
	m.logger.Info("Fetching weekly data for %s from %s", symbol, m.source.Name())
	return m, tea.Batch(m.spinner.Tick, m.fetchCmd(symbol))
}

// fetchCmd performs the network call off the event loop and reports back
// with a fetchDoneMsg, so the loading state is left on every outcome.
// In-flight requests are never cancelled; overlapping submissions race and
// the last completion wins.
func (m Model) fetchCmd(symbol string) tea.Cmd {
	source := m.source
	return func() tea.Msg {
		start := time.Now()
		records, err := source.WeeklyOHLC(context.Background(), symbol)
		return fetchDoneMsg{symbol: symbol, records: records, took: time.Since(start), err: err}
	}
}

// finishFetch folds a completed fetch into the display state.
func (m Model) finishFetch(msg fetchDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.phase = phaseError
		m.errText = msg.err.Error()
		m.records = nil
		m.logger.Error("Fetch failed for %s after %v: %v",
			msg.symbol, msg.took.Round(time.Millisecond), msg.err)
		return m, nil
	}

	m.phase = phaseSuccess
	m.symbol = msg.symbol
	m.records = msg.records
	m.summary = analysis.Summarize(msg.records)
	m.logger.Info("Fetched %d weekly records for %s in %v",
		len(msg.records), msg.symbol, msg.took.Round(time.Millisecond))
	if m.ready {
		m.vp.SetContent(m.renderTable())
		m.vp.GotoTop()
	}
	return m, nil
}

// export writes the currently displayed records to a CSV file.
func (m Model) export() (tea.Model, tea.Cmd) {
	if m.phase != phaseSuccess || len(m.records) == 0 {
		return m, nil
	}
	dir, symbol, records := m.exportDir, m.symbol, m.records
	return m, func() tea.Msg {
		path, err := utils.WriteWeeklyCSV(dir, symbol, records)
		return exportDoneMsg{path: path, err: err}
	}
}

// resize fits the results viewport under the fixed chrome lines.
func (m *Model) resize() {
	h := m.height - chromeHeight
	if h < 3 {
		h = 3
	}
	w := m.width
	if w < 20 {
		w = 20
	}
	if !m.ready {
		m.vp = viewport.New(w, h)
		m.ready = true
	} else {
		m.vp.Width = w
		m.vp.Height = h
	}
	if m.phase == phaseSuccess && len(m.records) > 0 {
		m.vp.SetContent(m.renderTable())
	}
}
