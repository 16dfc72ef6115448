// Package main provides the entry point for the weekly stock analyzer.
// Without flags it starts the interactive terminal UI; the -ticker and
// -file flags run the headless batch flow that exports weekly history to
// CSV files.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/stephenmcmahon83/stock-analyzer/internal/analysis"
	"github.com/stephenmcmahon83/stock-analyzer/internal/market"
	"github.com/stephenmcmahon83/stock-analyzer/internal/ui"
	"github.com/stephenmcmahon83/stock-analyzer/internal/utils"
	"github.com/stephenmcmahon83/stock-analyzer/models"
)

// buildSource selects the market data source configured for this run.
//
// Parameters:
//   - config: Runtime configuration
//
// Returns:
//   - market.Source: The configured data source
func buildSource(config *utils.Config) market.Source {
	if config.Source == "yahoo" {
		return market.NewYahooSource(config.Yahoo.Years)
	}
	return market.NewServiceSource(config.API.BaseURL, config.APITimeout())
}

// processSingleTicker fetches weekly history for a single stock ticker and
// saves it to a CSV file.
//
// Parameters:
//   - source: The market data source
//   - logger: Logger for tracking the process
//   - tracker: Performance tracker collecting step timings
//   - config: Runtime configuration
//   - ticker: The stock ticker symbol to process
//
// Returns:
//   - error: Any error that occurred during processing
func processSingleTicker(source market.Source, logger *utils.Logger, tracker *utils.PerformanceTracker, config *utils.Config, ticker string) error {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	logger.Info("Processing ticker: %s", ticker)

	// Fetch weekly history from the configured source
	var records []models.WeeklyOHLC
	err := tracker.Track("fetch", func() error {
		var fetchErr error
		records, fetchErr = source.WeeklyOHLC(context.Background(), ticker)
		return fetchErr
	})
	if err != nil {
		logger.Error("Error processing %s: %v", ticker, err)
		return err
	}
	if len(records) == 0 {
		logger.Info("No weekly data available for %s", ticker)
		return nil
	}

	// Save the fetched data to a CSV file
	var path string
	err = tracker.Track("export", func() error {
		var exportErr error
		path, exportErr = utils.WriteWeeklyCSV(config.Batch.OutputDir, ticker, records)
		return exportErr
	})
	if err != nil {
		logger.Error("Error saving data for %s: %v", ticker, err)
		return err
	}

	summary := analysis.Summarize(records)
	logger.Info("Successfully processed %s: %d weeks, avg %.2f%%, profitable %.1f%%. Data saved to %s",
		ticker, summary.Weeks, summary.AvgReturn, summary.PctProfitable, path)
	return nil
}

// processTickerList fetches weekly history for multiple stock tickers.
// It processes each ticker sequentially with a delay between requests.
//
// Parameters:
//   - source: The market data source
//   - logger: Logger for tracking the process
//   - config: Runtime configuration
//   - tickers: Slice of ticker symbols to process
//
// Returns:
//   - error: Any error that occurred during processing
func processTickerList(source market.Source, logger *utils.Logger, config *utils.Config, tickers []string) error {
	tracker := utils.NewPerformanceTracker()
	totalTickers := len(tickers)
	logger.Info("Starting to process %d tickers", totalTickers)

	delay := time.Duration(config.Batch.Delay) * time.Second
	for i, ticker := range tickers {
		logger.Info("Processing ticker %d/%d: %s", i+1, totalTickers, ticker)

		err := processSingleTicker(source, logger, tracker, config, ticker)
		if err != nil {
			logger.Error("Failed to process ticker %s: %v", ticker, err)
		}

		if i < totalTickers-1 && delay > 0 {
			logger.Debug("Waiting %v before next ticker", delay)
			time.Sleep(delay)
		}
	}

	// Generate and log aggregate performance report
	report := tracker.GenerateAggregateReport()
	logger.Info("Aggregate Performance Report:\n%s", report)

	logger.Info("Completed processing %d tickers", totalTickers)
	return nil
}

func main() {
	startTime := time.Now()

	// Load optional .env before anything reads the environment
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Define and parse command-line flags
	singleTicker := flag.String("ticker", "", "Single ticker to process headlessly")
	tickerFile := flag.String("file", "", "Path to CSV file containing tickers")
	configFlag := flag.String("config", "", "Path to configuration file")
	flag.Parse()

	// Initialize logger for the application
	logger, err := utils.NewLogger("logs")
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Close()

	logger.Info("Starting weekly stock analyzer")

	// Load configuration
	configPath := *configFlag
	if configPath == "" {
		configPath = os.Getenv("CONFIG_PATH")
	}
	explicit := configPath != ""
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	config, err := utils.LoadConfig(configPath)
	if err != nil {
		if explicit || !os.IsNotExist(err) {
			logger.Fatal("Failed to load configuration: %v", err)
		}
		logger.Info("No config file at %s, using defaults", configPath)
	}
	logger.EnableDebug(config.Logging.Debug)

	source := buildSource(config)
	logger.Info("Using %s data source", source.Name())

	// Process based on input flags; no flags starts the interactive UI
	if *singleTicker != "" {
		tracker := utils.NewPerformanceTracker()
		err = processSingleTicker(source, logger, tracker, config, *singleTicker)
		if err != nil {
			logger.Fatal("Failed to process ticker %s: %v", *singleTicker, err)
		}
	} else if *tickerFile != "" {
		tickers, err := utils.ReadTickersFromCSV(*tickerFile)
		if err != nil {
			logger.Fatal("Error reading CSV file %s: %v", *tickerFile, err)
		}

		logger.Info("Found %d tickers to process", len(tickers))
		err = processTickerList(source, logger, config, tickers)
		if err != nil {
			logger.Fatal("Failed to process ticker list: %v", err)
		}
	} else {
		program := tea.NewProgram(ui.New(source, logger, config.Batch.OutputDir), tea.WithAltScreen())
		if _, err := program.Run(); err != nil {
			logger.Fatal("UI error: %v", err)
		}
	}

	// Log overall execution time
	duration := time.Since(startTime)
	logger.Info("Total execution time: %v", duration.Round(time.Second))
}
