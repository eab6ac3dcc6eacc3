package models

import (
	"math"
	"strconv"
)

// ─── shared formatting helpers (package-private) ────────────────────────

func itoa(v int) string { return strconv.Itoa(v) }
func ftoa(v float64, prec int) string {
	return strconv.FormatFloat(v, 'f', prec, 64)
}

// tableValue renders a number the way the record table shows it: three
// decimals, anything within 1e-6 of zero printed as "0.000".
func tableValue(v float64) string {
	if math.Abs(v) < 1e-6 {
		return "0.000"
	}
	return ftoa(v, 3)
}

// CSVRowWriter is the interface every exportable model must satisfy.
type CSVRowWriter interface {
	CSVHeader() []string
	CSVRow() []string
}
