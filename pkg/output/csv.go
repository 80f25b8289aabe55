// Package output writes scored documents to their destinations.
package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/japaniel/lexisent/pkg/sentiment"
)

// Column names of the CSV output.
const (
	ColumnText      = "Text"
	ColumnSentiment = "Sentiment"
	ColumnID        = "ID"
	ColumnDate      = "Date"
	ColumnPositive  = "Positive"
	ColumnNegative  = "Negative"
)

// CSVWriter writes one row per scored document under a Text,Sentiment header.
// With Metadata set, ID, Date and the raw match counts follow.
type CSVWriter struct {
	Metadata bool

	w           *csv.Writer
	wroteHeader bool
}

// NewCSVWriter wraps w.
func NewCSVWriter(w io.Writer, metadata bool) *CSVWriter {
	return &CSVWriter{Metadata: metadata, w: csv.NewWriter(w)}
}

func (cw *CSVWriter) header() []string {
	h := []string{ColumnText, ColumnSentiment}
	if cw.Metadata {
		h = append(h, ColumnID, ColumnDate, ColumnPositive, ColumnNegative)
	}
	return h
}

// Write appends rows for results, emitting the header on first use.
func (cw *CSVWriter) Write(results []sentiment.Result) error {
	if !cw.wroteHeader {
		if err := cw.w.Write(cw.header()); err != nil {
			return err
		}
		cw.wroteHeader = true
	}
	for _, r := range results {
		row := []string{r.Text, FormatScore(r.Score)}
		if cw.Metadata {
			row = append(row, r.ID, r.Date, strconv.Itoa(r.Positive), strconv.Itoa(r.Negative))
		}
		if err := cw.w.Write(row); err != nil {
			return fmt.Errorf("write row %q: %w", r.ID, err)
		}
	}
	cw.w.Flush()
	return cw.w.Error()
}

// Close writes the header if nothing has been written yet, so an empty run
// still produces a valid file.
func (cw *CSVWriter) Close() error {
	if !cw.wroteHeader {
		return cw.Write(nil)
	}
	cw.w.Flush()
	return cw.w.Error()
}

// WriteCSVFile creates (or truncates) path and writes results to it.
func WriteCSVFile(path string, results []sentiment.Result, metadata bool) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	cw := NewCSVWriter(f, metadata)
	if err := cw.Write(results); err != nil {
		f.Close()
		return err
	}
	if err := cw.Close(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// FormatScore renders a score the way Python prints floats: the shortest
// representation that round-trips, with a trailing ".0" on integral values.
func FormatScore(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if strings.ContainsAny(s, ".e") {
		return s
	}
	return s + ".0"
}
