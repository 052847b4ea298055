package storage

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"expired-leads/models"
)

var previewHeader = []string{
	"mls_number", "address", "neighborhood", "city", "board", "price", "days_on_market",
	"bedrooms", "year_built", "lot_size", "property_type", "listing_status",
	"cancel_protected_date", "valid", "error",
}

// CSVWriter writes parsed import candidates to a CSV file for review.
// It is safe for concurrent use.
type CSVWriter struct {
	mu     sync.Mutex
	closer io.Closer
	writer *csv.Writer
}

var _ PreviewWriter = (*CSVWriter)(nil)

// NewCSVWriter creates (or truncates) the CSV file at the given path and
// writes the header row. Intermediate directories are created automatically.
func NewCSVWriter(path string) (*CSVWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("csv: create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csv: create file %q: %w", path, err)
	}

	w, err := newCSVWriter(f, f)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return w, nil
}

func newCSVWriter(out io.Writer, closer io.Closer) (*CSVWriter, error) {
	w := csv.NewWriter(out)
	if err := w.Write(previewHeader); err != nil {
		return nil, fmt.Errorf("csv: write header: %w", err)
	}
	w.Flush()
	return &CSVWriter{closer: closer, writer: w}, nil
}

// WritePreview appends one row per candidate, valid or not.
func (c *CSVWriter) WritePreview(candidates []*models.ParsedListing) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, p := range candidates {
		cpDate := ""
		if p.CancelProtectedDate != nil {
			cpDate = p.CancelProtectedDate.Format("2006-01-02")
		}
		ptype := ""
		if p.PropertyType != nil {
			ptype = string(*p.PropertyType)
		}
		row := []string{
			p.MLSNumber,
			p.Address,
			p.Neighborhood,
			deref(p.City),
			deref(p.Board),
			formatFloat(p.Price),
			formatInt(p.DaysOnMarket),
			formatInt(p.Bedrooms),
			formatInt(p.YearBuilt),
			formatFloat(p.LotSize),
			ptype,
			string(p.Status),
			cpDate,
			strconv.FormatBool(p.Valid),
			deref(p.Error),
		}
		if err := c.writer.Write(row); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	c.writer.Flush()
	return c.writer.Error()
}

// Close flushes and closes the underlying file.
func (c *CSVWriter) Close() error {
	c.writer.Flush()
	if c.closer == nil {
		return c.writer.Error()
	}
	return c.closer.Close()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func formatFloat(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}

func formatInt(i *int) string {
	if i == nil {
		return ""
	}
	return strconv.Itoa(*i)
}
