package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Logger writes leveled, timestamped lines to a log file. Nothing is echoed
// to stdout so the terminal UI keeps full ownership of the screen.
type Logger struct {
	file  *os.File
	debug bool
}

func NewLogger(dir string) (*Logger, error) {
	if dir == "" {
		dir = "logs"
	}

	// Create logs directory if it doesn't exist
	err := os.MkdirAll(dir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create logs directory: %v", err)
	}

	// Create log file with timestamp
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	filename := filepath.Join(dir, fmt.Sprintf("analyzer_%s.log", timestamp))

	file, err := os.Create(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create log file: %v", err)
	}

	return &Logger{file: file}, nil
}

// EnableDebug toggles DEBUG level output.
func (l *Logger) EnableDebug(on bool) {
	l.debug = on
}

func (l *Logger) Info(format string, args ...interface{}) {
	l.log("INFO", format, args...)
}

func (l *Logger) Debug(format string, args ...interface{}) {
	if !l.debug {
		return
	}
	l.log("DEBUG", format, args...)
}

func (l *Logger) Error(format string, args ...interface{}) {
	l.log("ERROR", format, args...)
}

func (l *Logger) Fatal(format string, args ...interface{}) {
	l.log("FATAL", format, args...)
	os.Exit(1)
}

func (l *Logger) log(level string, format string, args ...interface{}) {
	timestamp := time.Now().Format("2006/01/02 15:04:05")
	message := fmt.Sprintf(format, args...)
	fmt.Fprintf(l.file, "%s: %s %s\n", level, timestamp, message)
}

func (l *Logger) Close() error {
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}
