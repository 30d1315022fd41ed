package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/xiaot623/gogo/venueboard/internal/collection"
	"github.com/xiaot623/gogo/venueboard/internal/domain"
	"github.com/xiaot623/gogo/venueboard/internal/mapping"
	"github.com/xiaot623/gogo/venueboard/internal/snapshot"
	"github.com/xiaot623/gogo/venueboard/internal/spreadsheet"
	"github.com/xiaot623/gogo/venueboard/internal/temporal"
)

// Import formats.
const (
	FormatRows     = "rows"
	FormatXLSX     = "xlsx"
	FormatSnapshot = "snapshot"
)

// Dataset is one immutable record collection.
type Dataset struct {
	ID       string
	Source   string
	Format   string
	LoadedAt time.Time
	Records  []domain.EventRecord
	Excluded []collection.Exclusion
	Skipped  []string

	index map[string]int
}

// Summary describes a dataset without its records.
type Summary struct {
	DatasetID string                 `json:"dataset_id"`
	Source    string                 `json:"source"`
	Format    string                 `json:"format"`
	LoadedAt  time.Time              `json:"loaded_at"`
	Records   int                    `json:"records"`
	Excluded  []collection.Exclusion `json:"excluded"`
	Skipped   []string               `json:"skipped"`
}

func (d *Dataset) summary() *Summary {
	excluded := d.Excluded
	if excluded == nil {
		excluded = []collection.Exclusion{}
	}
	skipped := d.Skipped
	if skipped == nil {
		skipped = []string{}
	}
	return &Summary{
		DatasetID: d.ID,
		Source:    d.Source,
		Format:    d.Format,
		LoadedAt:  d.LoadedAt,
		Records:   len(d.Records),
		Excluded:  excluded,
		Skipped:   skipped,
	}
}

// ImportRows builds a dataset from decoded rows and makes it current.
// On error the previous dataset stays in place.
func (s *Service) ImportRows(ctx context.Context, source string, rows []domain.RawRow) (*Summary, error) {
	return s.importWith(ctx, source, FormatRows, rows, s.pipeline.Options)
}

// ImportSpreadsheet decodes an xlsx workbook and imports its rows.
func (s *Service) ImportSpreadsheet(ctx context.Context, source string, r io.Reader, sheet string) (*Summary, error) {
	rows, err := spreadsheet.Decode(r, sheet)
	if err != nil {
		s.observe(FormatXLSX, err, nil, 0)
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedValue, err)
	}
	return s.importWith(ctx, source, FormatXLSX, rows, s.pipeline.Options)
}

// ImportSnapshot re-imports a JSON snapshot through the pipeline with an
// identity field mapping.
func (s *Service) ImportSnapshot(ctx context.Context, source string, r io.Reader) (*Summary, error) {
	rows, err := snapshot.Decode(r)
	if err != nil {
		s.observe(FormatSnapshot, err, nil, 0)
		return nil, err
	}
	opts := s.pipeline.Options
	opts.Mapping = mapping.FieldMapping{}
	return s.importWith(ctx, source, FormatSnapshot, rows, opts)
}

// ExportSnapshot writes the current dataset as a JSON snapshot.
func (s *Service) ExportSnapshot(ctx context.Context, w io.Writer) error {
	ds, err := s.dataset()
	if err != nil {
		return err
	}
	return snapshot.Encode(w, ds.Records)
}

func (s *Service) importWith(ctx context.Context, source, format string, rows []domain.RawRow, opts collection.Options) (*Summary, error) {
	started := time.Now()
	res, err := collection.Build(ctx, rows, opts)
	took := time.Since(started)
	if err != nil {
		s.observe(format, err, nil, took)
		log.Printf("Import of %s (%s) failed: %v", source, format, err)
		return nil, err
	}

	ds := &Dataset{
		ID:       uuid.New().String(),
		Source:   source,
		Format:   format,
		LoadedAt: s.now(),
		Records:  res.Records,
		Excluded: res.Excluded,
		index:    make(map[string]int, len(res.Records)),
	}
	for _, skipped := range res.Skipped {
		ds.Skipped = append(ds.Skipped, skipped.Error())
	}
	for i, rec := range ds.Records {
		ds.index[rec.ID] = i
	}

	imp := &domain.Import{
		ImportID:      ds.ID,
		Source:        source,
		RowCount:      len(rows),
		RecordCount:   len(ds.Records),
		ExcludedCount: len(ds.Excluded),
		SkippedCount:  len(ds.Skipped),
		CreatedAt:     ds.LoadedAt,
	}
	if err := s.store.RecordImport(ctx, imp); err != nil {
		s.observe(format, err, res, took)
		return nil, fmt.Errorf("failed to record import: %w", err)
	}
	s.observe(format, nil, res, took)

	s.mu.Lock()
	s.current = ds
	s.mu.Unlock()

	log.Printf("Imported %s (%s): %d rows, %d records, %d excluded, %d skipped",
		source, format, len(rows), len(ds.Records), len(ds.Excluded), len(ds.Skipped))

	if s.notifier != nil {
		notice := domain.DatasetNotice{
			Type:      domain.NoticeDatasetReplaced,
			DatasetID: ds.ID,
			Source:    source,
			Records:   len(ds.Records),
			Ts:        ds.LoadedAt.UnixMilli(),
		}
		if err := s.notifier.BroadcastJSON(notice); err != nil {
			log.Printf("Failed to notify viewers: %v", err)
		}
	}
	return ds.summary(), nil
}

func (s *Service) observe(format string, err error, res *collection.Result, took time.Duration) {
	if s.metrics == nil {
		return
	}
	if res == nil {
		s.metrics.ObserveImport(format, err, 0, 0, 0, took)
		return
	}
	s.metrics.ObserveImport(format, err, len(res.Records), len(res.Excluded), len(res.Skipped), took)
}

func (s *Service) dataset() (*Dataset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil, domain.ErrNoDataset
	}
	return s.current, nil
}

// Current summarizes the current dataset.
func (s *Service) Current(ctx context.Context) (*Summary, error) {
	ds, err := s.dataset()
	if err != nil {
		return nil, err
	}
	return ds.summary(), nil
}

// Records returns the records of the current dataset in import order.
func (s *Service) Records(ctx context.Context) ([]domain.EventRecord, error) {
	ds, err := s.dataset()
	if err != nil {
		return nil, err
	}
	out := make([]domain.EventRecord, len(ds.Records))
	copy(out, ds.Records)
	return out, nil
}

// Tasks returns the chart view of the current dataset.
func (s *Service) Tasks(ctx context.Context) ([]domain.ChartTask, error) {
	ds, err := s.dataset()
	if err != nil {
		return nil, err
	}
	tasks := make([]domain.ChartTask, len(ds.Records))
	for i, rec := range ds.Records {
		tasks[i] = rec.Task()
	}
	return tasks, nil
}

// Record returns one record of the current dataset.
func (s *Service) Record(ctx context.Context, eventID string) (*domain.EventRecord, error) {
	ds, err := s.dataset()
	if err != nil {
		return nil, err
	}
	i, ok := ds.index[eventID]
	if !ok {
		return nil, fmt.Errorf("event %q: %w", eventID, domain.ErrNotFound)
	}
	rec := ds.Records[i]
	return &rec, nil
}

// Gradients returns the plan and progress gradients of one record.
func (s *Service) Gradients(ctx context.Context, eventID string) (*domain.Gradients, error) {
	rec, err := s.Record(ctx, eventID)
	if err != nil {
		return nil, err
	}
	g := temporal.RecordGradients(*rec, s.pipeline.Palette)
	g.Finished = rec.Finished(s.now())
	return &g, nil
}

// Palette returns the configured phase colors.
func (s *Service) Palette() domain.Palette {
	return s.pipeline.Palette
}

// Token returns the identifier slash substitute.
func (s *Service) Token() string {
	return s.pipeline.Options.Normalizer.Token()
}

// Imports lists recent imports, newest first.
func (s *Service) Imports(ctx context.Context, limit int) ([]domain.Import, error) {
	imports, err := s.store.ListImports(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list imports: %w", err)
	}
	return imports, nil
}
