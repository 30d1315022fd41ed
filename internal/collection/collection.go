// Package collection builds the record collection of one dataset import.
package collection

import (
	"context"
	"fmt"
	"log"
	"strconv"

	"github.com/xiaot623/gogo/venueboard/internal/blacklist"
	"github.com/xiaot623/gogo/venueboard/internal/domain"
	"github.com/xiaot623/gogo/venueboard/internal/mapping"
	"github.com/xiaot623/gogo/venueboard/internal/normalize"
)

// FailurePolicy selects what happens when a row cannot be mapped or normalized.
type FailurePolicy string

const (
	// FailFast aborts the whole build on the first bad row.
	FailFast FailurePolicy = "fail_fast"
	// SkipInvalid drops bad rows, logs them and keeps going.
	SkipInvalid FailurePolicy = "skip"
)

// ParseFailurePolicy parses a policy name; empty means FailFast.
func ParseFailurePolicy(s string) (FailurePolicy, error) {
	switch FailurePolicy(s) {
	case "", FailFast:
		return FailFast, nil
	case SkipInvalid:
		return SkipInvalid, nil
	default:
		return "", fmt.Errorf("%w: unknown failure policy %q", domain.ErrInvalidConfig, s)
	}
}

// Options configures a build.
type Options struct {
	Mapping    mapping.FieldMapping
	Registry   *mapping.Registry
	Blacklist  blacklist.List
	Normalizer *normalize.Normalizer
	Policy     FailurePolicy
}

// Exclusion records a row removed by the blacklist.
type Exclusion struct {
	Row       int             `json:"row"`
	Predicate string          `json:"predicate"`
	Shape     blacklist.Shape `json:"shape"`
}

// Result is the outcome of one build.
type Result struct {
	Records  []domain.EventRecord
	Excluded []Exclusion
	Skipped  []*domain.RowError
}

// BuildRecords returns the records built from rows, in input order.
func BuildRecords(ctx context.Context, rows []domain.RawRow, opts Options) ([]domain.EventRecord, error) {
	res, err := Build(ctx, rows, opts)
	if err != nil {
		return nil, err
	}
	return res.Records, nil
}

// Build filters, maps and normalizes rows. Under FailFast any row error
// aborts the build and no records are returned. Predicate errors always abort.
func Build(ctx context.Context, rows []domain.RawRow, opts Options) (*Result, error) {
	if opts.Registry == nil {
		opts.Registry = mapping.NewRegistry(nil)
	}
	if opts.Normalizer == nil {
		opts.Normalizer = normalize.New()
	}
	if opts.Policy == "" {
		opts.Policy = FailFast
	}

	res := &Result{Records: make([]domain.EventRecord, 0, len(rows))}
	ids := newIDSet()

	for i, row := range rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		m, err := opts.Blacklist.MatchRaw(ctx, row)
		if err != nil {
			return nil, &domain.RowError{Row: i, Err: err}
		}
		if m != nil {
			res.Excluded = append(res.Excluded, Exclusion{Row: i, Predicate: m.Predicate, Shape: m.Shape})
			continue
		}

		rec, err := buildOne(row, opts)
		if err != nil {
			rowErr := &domain.RowError{Row: i, Err: err}
			if opts.Policy == SkipInvalid {
				log.Printf("Skipping %v", rowErr)
				res.Skipped = append(res.Skipped, rowErr)
				continue
			}
			return nil, rowErr
		}

		m, err = opts.Blacklist.MatchRecord(ctx, rec)
		if err != nil {
			return nil, &domain.RowError{Row: i, Err: err}
		}
		if m != nil {
			res.Excluded = append(res.Excluded, Exclusion{Row: i, Predicate: m.Predicate, Shape: m.Shape})
			continue
		}

		if unique := ids.claim(rec.ID); unique != rec.ID {
			rec.Warnings = append(rec.Warnings, "duplicate id "+rec.ID+" renamed to "+unique)
			rec.ID = unique
		}
		res.Records = append(res.Records, rec)
	}
	return res, nil
}

func buildOne(row domain.RawRow, opts Options) (domain.EventRecord, error) {
	draft, err := mapping.MapFields(row, opts.Mapping, opts.Registry)
	if err != nil {
		return domain.EventRecord{}, err
	}
	return opts.Normalizer.Normalize(draft)
}

// idSet hands out unique identifiers within one build.
type idSet struct {
	seen map[string]int
}

func newIDSet() *idSet {
	return &idSet{seen: make(map[string]int)}
}

func (s *idSet) claim(id string) string {
	n := s.seen[id]
	s.seen[id] = n + 1
	if n == 0 {
		return id
	}
	for {
		n++
		candidate := id + "-" + strconv.Itoa(n)
		if s.seen[candidate] == 0 {
			s.seen[candidate] = 1
			s.seen[id] = n
			return candidate
		}
	}
}
