// Package blacklist decides which rows are excluded from a collection.
// Every predicate declares whether it inspects the raw row or the
// normalized record.
package blacklist

import (
	"context"
	"fmt"

	"github.com/xiaot623/gogo/venueboard/internal/domain"
)

// Shape names the input a predicate inspects.
type Shape string

const (
	ShapeRaw     Shape = "raw"
	ShapeDerived Shape = "derived"
)

// RawFunc inspects a row before mapping.
type RawFunc func(ctx context.Context, row domain.RawRow) (bool, error)

// DerivedFunc inspects a record after normalization.
type DerivedFunc func(ctx context.Context, rec domain.EventRecord) (bool, error)

// Predicate returns true for rows that must be excluded.
type Predicate struct {
	Name    string
	Shape   Shape
	raw     RawFunc
	derived DerivedFunc
}

// Raw creates a predicate over raw rows.
func Raw(name string, fn RawFunc) Predicate {
	return Predicate{Name: name, Shape: ShapeRaw, raw: fn}
}

// Derived creates a predicate over normalized records.
func Derived(name string, fn DerivedFunc) Predicate {
	return Predicate{Name: name, Shape: ShapeDerived, derived: fn}
}

// List is an ordered, OR-combined set of predicates.
type List []Predicate

// Match describes the predicate that excluded a row.
type Match struct {
	Predicate string
	Shape     Shape
}

// IsBlacklisted reports whether any raw predicate matches row.
func IsBlacklisted(ctx context.Context, row domain.RawRow, l List) (bool, error) {
	m, err := l.MatchRaw(ctx, row)
	return m != nil, err
}

// IsRecordBlacklisted reports whether any derived predicate matches rec.
func IsRecordBlacklisted(ctx context.Context, rec domain.EventRecord, l List) (bool, error) {
	m, err := l.MatchRecord(ctx, rec)
	return m != nil, err
}

// MatchRaw returns the first raw predicate matching row, or nil.
func (l List) MatchRaw(ctx context.Context, row domain.RawRow) (*Match, error) {
	for _, p := range l {
		if p.Shape != ShapeRaw || p.raw == nil {
			continue
		}
		ok, err := p.raw(ctx, row)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", domain.ErrPredicateFailed, p.Name, err)
		}
		if ok {
			return &Match{Predicate: p.Name, Shape: p.Shape}, nil
		}
	}
	return nil, nil
}

// MatchRecord returns the first derived predicate matching rec, or nil.
func (l List) MatchRecord(ctx context.Context, rec domain.EventRecord) (*Match, error) {
	for _, p := range l {
		if p.Shape != ShapeDerived || p.derived == nil {
			continue
		}
		ok, err := p.derived(ctx, rec)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", domain.ErrPredicateFailed, p.Name, err)
		}
		if ok {
			return &Match{Predicate: p.Name, Shape: p.Shape}, nil
		}
	}
	return nil, nil
}

// HasDerived reports whether l holds any derived predicate.
func (l List) HasDerived() bool {
	for _, p := range l {
		if p.Shape == ShapeDerived {
			return true
		}
	}
	return false
}
