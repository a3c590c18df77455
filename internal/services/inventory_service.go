package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"barpulse/internal/exporter"
	"barpulse/internal/importer"
	"barpulse/internal/infrastructure"
	"barpulse/internal/inventory"
	"barpulse/pkg/contracts/domain"
)

// InventoryService owns the in-memory datasets, one per category.
// All access goes through the service so the mutex stays the single
// point of synchronization between uploads, edits, and exports.
type InventoryService struct {
	mu       sync.RWMutex
	datasets map[domain.Category]*domain.Dataset

	csvWriter *exporter.CSVWriter
	metrics   *infrastructure.Metrics
	logger    *slog.Logger
}

// NewInventoryService creates a new inventory service.
func NewInventoryService(csvWriter *exporter.CSVWriter, metrics *infrastructure.Metrics, logger *slog.Logger) *InventoryService {
	if logger == nil {
		logger = slog.Default()
	}
	return &InventoryService{
		datasets:  make(map[domain.Category]*domain.Dataset),
		csvWriter: csvWriter,
		metrics:   metrics,
		logger:    logger.With(slog.String("service", "inventory")),
	}
}

// Import reads an uploaded spreadsheet, normalizes it for the category,
// and replaces any dataset previously loaded for that category.
func (s *InventoryService) Import(ctx context.Context, category domain.Category, filename string, r io.Reader) (*domain.Dataset, error) {
	importID := uuid.New().String()
	label := string(category)

	s.logger.InfoContext(ctx, "import started",
		slog.String("import_id", importID),
		slog.String("category", label),
		slog.String("filename", filename))

	table, err := importer.ReadTable(filename, r)
	if err != nil {
		s.metrics.ImportFailures.WithLabelValues(label).Inc()
		s.logger.WarnContext(ctx, "import failed: unreadable file",
			slog.String("import_id", importID),
			slog.String("error", err.Error()))
		return nil, err
	}

	ds, err := inventory.Normalize(table, category)
	if err != nil {
		s.metrics.ImportFailures.WithLabelValues(label).Inc()
		s.logger.WarnContext(ctx, "import failed: normalization",
			slog.String("import_id", importID),
			slog.String("error", err.Error()))
		return nil, err
	}

	s.mu.Lock()
	s.datasets[category] = ds
	s.mu.Unlock()

	s.metrics.ImportsTotal.WithLabelValues(label).Inc()
	s.metrics.ImportedRows.WithLabelValues(label).Add(float64(len(ds.Rows)))

	s.logger.InfoContext(ctx, "import completed",
		slog.String("import_id", importID),
		slog.String("category", label),
		slog.Int("rows", len(ds.Rows)),
		slog.Int("columns", len(ds.Columns)))

	return ds.Clone(), nil
}

// Dataset returns a snapshot of the current dataset for a category.
func (s *InventoryService) Dataset(ctx context.Context, category domain.Category) (*domain.Dataset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ds, ok := s.datasets[category]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrDatasetNotFound, category)
	}
	return ds.Clone(), nil
}

// UpdateRow applies edits to one row and recalculates the dataset.
// Only columns the category marks editable may change; derived columns
// are rejected so stale values never shadow the recalculation.
func (s *InventoryService) UpdateRow(ctx context.Context, category domain.Category, index int, changes map[string]any) (*domain.Dataset, error) {
	if len(changes) == 0 {
		return nil, fmt.Errorf("%w: no changes supplied", ErrInvalidInput)
	}

	spec := inventory.Spec(category)
	for name := range changes {
		if spec.IsDerived(name) {
			return nil, fmt.Errorf("%w: %s", ErrDerivedColumn, name)
		}
		if !editable(spec, name) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownColumn, name)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ds, ok := s.datasets[category]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrDatasetNotFound, category)
	}
	if index < 0 || index >= len(ds.Rows) {
		return nil, fmt.Errorf("%w: %d", ErrRowNotFound, index)
	}

	row := ds.Rows[index]
	for name, value := range changes {
		row[name] = coerceEdit(spec, name, value)
	}

	recalced := inventory.Recalculate(ds)
	s.datasets[category] = recalced
	s.metrics.RecalculationsTotal.WithLabelValues(string(category)).Inc()

	s.logger.InfoContext(ctx, "row updated",
		slog.String("category", string(category)),
		slog.Int("row", index),
		slog.Int("changes", len(changes)))

	return recalced.Clone(), nil
}

// AddRow appends a blank editable row to the dataset.
func (s *InventoryService) AddRow(ctx context.Context, category domain.Category) (*domain.Dataset, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ds, ok := s.datasets[category]
	if !ok {
		return nil, 0, fmt.Errorf("%w: %s", ErrDatasetNotFound, category)
	}

	ds.Rows = append(ds.Rows, inventory.NewRow(category))
	recalced := inventory.Recalculate(ds)
	s.datasets[category] = recalced

	index := len(recalced.Rows) - 1
	s.logger.InfoContext(ctx, "row added",
		slog.String("category", string(category)),
		slog.Int("row", index))

	return recalced.Clone(), index, nil
}

// DeleteRow removes one row and recalculates.
func (s *InventoryService) DeleteRow(ctx context.Context, category domain.Category, index int) (*domain.Dataset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ds, ok := s.datasets[category]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrDatasetNotFound, category)
	}
	if index < 0 || index >= len(ds.Rows) {
		return nil, fmt.Errorf("%w: %d", ErrRowNotFound, index)
	}

	ds.Rows = append(ds.Rows[:index], ds.Rows[index+1:]...)
	recalced := inventory.Recalculate(ds)
	s.datasets[category] = recalced

	s.logger.InfoContext(ctx, "row deleted",
		slog.String("category", string(category)),
		slog.Int("row", index))

	return recalced.Clone(), nil
}

// Recalculate re-derives every computed column for a category.
func (s *InventoryService) Recalculate(ctx context.Context, category domain.Category) (*domain.Dataset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ds, ok := s.datasets[category]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrDatasetNotFound, category)
	}

	recalced := inventory.Recalculate(ds)
	s.datasets[category] = recalced
	s.metrics.RecalculationsTotal.WithLabelValues(string(category)).Inc()

	s.logger.InfoContext(ctx, "recalculation completed",
		slog.String("category", string(category)),
		slog.Int("rows", len(recalced.Rows)))

	return recalced.Clone(), nil
}

// Export renders the current dataset as CSV, writes a timestamped
// snapshot to the exports directory, and returns the filename and bytes
// for the HTTP download.
func (s *InventoryService) Export(ctx context.Context, category domain.Category) (string, []byte, error) {
	s.mu.RLock()
	ds, ok := s.datasets[category]
	if ok {
		ds = ds.Clone()
	}
	s.mu.RUnlock()

	if !ok {
		return "", nil, fmt.Errorf("%w: %s", ErrDatasetNotFound, category)
	}

	filename, data, err := s.csvWriter.Export(ds, time.Now())
	if err != nil {
		return "", nil, fmt.Errorf("export %s: %w", category, err)
	}

	s.metrics.ExportsTotal.WithLabelValues(string(category)).Inc()
	s.logger.InfoContext(ctx, "export completed",
		slog.String("category", string(category)),
		slog.String("filename", filename),
		slog.Int("bytes", len(data)))

	return filename, data, nil
}

// Reset discards the dataset for a category.
func (s *InventoryService) Reset(ctx context.Context, category domain.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.datasets[category]; !ok {
		return fmt.Errorf("%w: %s", ErrDatasetNotFound, category)
	}
	delete(s.datasets, category)

	s.logger.InfoContext(ctx, "dataset reset", slog.String("category", string(category)))
	return nil
}

// Loaded reports which categories currently hold a dataset.
func (s *InventoryService) Loaded() map[domain.Category]int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	loaded := make(map[domain.Category]int, len(s.datasets))
	for category, ds := range s.datasets {
		loaded[category] = len(ds.Rows)
	}
	return loaded
}

func editable(spec inventory.FieldSpec, name string) bool {
	for _, col := range spec.EditableColumns() {
		if col == name {
			return true
		}
	}
	return false
}

// coerceEdit normalizes an edited cell the same way an import would:
// numeric columns accept JSON numbers or currency-style strings, text
// columns keep whatever string arrives.
func coerceEdit(spec inventory.FieldSpec, name string, value any) any {
	if !numericColumn(spec, name) {
		if s, ok := value.(string); ok {
			return s
		}
		return fmt.Sprintf("%v", value)
	}

	switch v := value.(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case string:
		if currencyColumn(spec, name) {
			return inventory.ParseCurrency(v)
		}
		return inventory.ParseNumber(v, spec.Defaults[name])
	default:
		return spec.Defaults[name]
	}
}

func numericColumn(spec inventory.FieldSpec, name string) bool {
	if name == spec.CostColumn || currencyColumn(spec, name) {
		return true
	}
	for _, col := range spec.NumericColumns {
		if col == name {
			return true
		}
	}
	for _, col := range spec.PercentColumns {
		if col == name {
			return true
		}
	}
	return false
}

func currencyColumn(spec inventory.FieldSpec, name string) bool {
	for _, col := range spec.CurrencyColumns {
		if col == name {
			return true
		}
	}
	return false
}
