package exporter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"time"

	"barpulse/internal/config"
	"barpulse/pkg/contracts/domain"
)

// CSVWriter renders datasets to CSV and keeps export snapshots on disk.
type CSVWriter struct {
	paths  *config.Paths
	logger *slog.Logger
}

// NewCSVWriter creates a new CSV writer instance.
func NewCSVWriter(paths *config.Paths, logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{
		paths:  paths,
		logger: logger.With(slog.String("component", "exporter")),
	}
}

// Filename returns the download name for a category export, e.g.
// "wine_inventory_20260830_174502.csv".
func Filename(category domain.Category, at time.Time) string {
	return fmt.Sprintf("%s_inventory_%s.csv", category, at.Format("20060102_150405"))
}

// Marshal renders a dataset as CSV bytes: UTF-8 BOM, header row in the
// dataset's current column order, one record per row.
func Marshal(ds *domain.Dataset) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write([]byte{0xEF, 0xBB, 0xBF})

	w := csv.NewWriter(&buf)
	if err := w.Write(ds.Columns); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	record := make([]string, len(ds.Columns))
	for i, row := range ds.Rows {
		for j, col := range ds.Columns {
			record[j] = formatCell(row[col])
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Export renders a dataset and writes a snapshot to the exports
// directory, returning the generated filename and the CSV bytes.
func (w *CSVWriter) Export(ds *domain.Dataset, at time.Time) (string, []byte, error) {
	data, err := Marshal(ds)
	if err != nil {
		return "", nil, err
	}

	filename := Filename(ds.Category, at)
	fullPath := w.paths.GetExportPath(filename)
	if err := os.WriteFile(fullPath, data, 0644); err != nil {
		return "", nil, fmt.Errorf("failed to write export snapshot: %w", err)
	}

	w.logger.Info("dataset exported",
		slog.String("category", string(ds.Category)),
		slog.String("file", fullPath),
		slog.Int("rows", len(ds.Rows)))

	return filename, data, nil
}
