package ui

import (
	"fmt"
	"strconv"
)

// Sign classifies a formatted cell for styling.
type Sign int

const (
	SignNeutral Sign = iota
	SignPositive
	SignNegative
)

// Cell is a formatted table cell together with its styling classification.
type Cell struct {
	Text string
	Sign Sign
}

// defaultPrecision is the decimal-place count used by FormatCell.
const defaultPrecision = 2

// FormatCell renders a value at the default precision. See FormatCellPrec.
func FormatCell(value interface{}, percent bool) Cell {
	return FormatCellPrec(value, percent, defaultPrecision)
}

// FormatCellPrec renders a numeric value fixed to the given number of
// decimal places, tags it positive, negative or neutral, and optionally
// appends a percent sign. Non-numeric values pass through unchanged with a
// neutral tag; negative decimals fall back to the default precision.
func FormatCellPrec(value interface{}, percent bool, decimals int) Cell {
	if decimals < 0 {
		decimals = defaultPrecision
	}

	var f float64
	switch v := value.(type) {
	case float64:
		f = v
	case float32:
		f = float64(v)
	case int:
		f = float64(v)
	case int64:
		f = float64(v)
	default:
		return Cell{Text: fmt.Sprint(value), Sign: SignNeutral}
	}

	text := strconv.FormatFloat(f, 'f', decimals, 64)
	if percent {
		text += "%"
	}

	cell := Cell{Text: text}
	switch {
	case f > 0:
		cell.Sign = SignPositive
	case f < 0:
		cell.Sign = SignNegative
	}
	return cell
}
