package utils

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/stephenmcmahon83/stock-analyzer/models"
)

// ReadTickersFromCSV reads ticker symbols from a CSV file. The first row is
// treated as a header and skipped; symbols come from the first column.
func ReadTickersFromCSV(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("no tickers found in %s", filePath)
	}

	var tickers []string
	for _, record := range records[1:] { // Skip header
		if len(record) == 0 || record[0] == "" {
			continue
		}
		tickers = append(tickers, record[0])
	}

	return tickers, nil
}

// WriteWeeklyCSV saves weekly OHLC records for a symbol under dir and
// returns the path of the written file.
func WriteWeeklyCSV(dir, symbol string, data []models.WeeklyOHLC) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("no data to save")
	}
	if dir == "" {
		dir = "output"
	}

	// Create the output directory if it doesn't exist
	err := os.MkdirAll(dir, 0755)
	if err != nil {
		return "", fmt.Errorf("failed to create output directory: %v", err)
	}

	// Create CSV file
	filename := filepath.Join(dir, fmt.Sprintf("%s_weekly.csv", symbol))
	file, err := os.Create(filename)
	if err != nil {
		return "", fmt.Errorf("failed to create CSV file: %v", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	headers := []string{"Week Start", "Year", "Week", "Open", "High", "Low", "Close", "Change %"}
	if err := writer.Write(headers); err != nil {
		return "", fmt.Errorf("failed to write headers: %v", err)
	}

	for _, record := range data {
		change := ""
		if record.ChangePct.Valid {
			change = strconv.FormatFloat(record.ChangePct.Float64, 'f', 2, 64)
		}
		row := []string{
			record.WeekStartDate,
			strconv.Itoa(record.Year),
			strconv.Itoa(record.WeekNumber),
			strconv.FormatFloat(record.Open, 'f', 2, 64),
			strconv.FormatFloat(record.High, 'f', 2, 64),
			strconv.FormatFloat(record.Low, 'f', 2, 64),
			strconv.FormatFloat(record.Close, 'f', 2, 64),
			change,
		}
		if err := writer.Write(row); err != nil {
			return "", fmt.Errorf("failed to write record: %v", err)
		}
	}

	return filename, nil
}
