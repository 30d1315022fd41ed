package blacklist

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/xiaot623/gogo/venueboard/internal/domain"
)

// Rule is the declarative form of a predicate. Exactly one of the matcher
// fields must be set.
type Rule struct {
	Name  string `yaml:"name"`
	Shape Shape  `yaml:"shape"`

	ColumnEquals    *ColumnEquals `yaml:"column_equals,omitempty"`
	KindIn          []string      `yaml:"kind_in,omitempty"`
	DurationExceeds time.Duration `yaml:"duration_exceeds,omitempty"`
	Rego            string        `yaml:"rego,omitempty"`
}

// ColumnEquals matches rows whose column holds a literal value.
type ColumnEquals struct {
	Column string `yaml:"column"`
	Value  string `yaml:"value"`
}

// MaintenanceKind marks maintenance bookings in the kind column.
const MaintenanceKind = "Wartung"

// MaxDuration is the longest booking window kept by the default rules.
const MaxDuration = 364 * 24 * time.Hour

// DefaultRules drops maintenance bookings and bookings spanning a year.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name:         "maintenance",
			Shape:        ShapeRaw,
			ColumnEquals: &ColumnEquals{Column: domain.ColumnKind, Value: MaintenanceKind},
		},
		{
			Name:            "longer-than-a-year",
			Shape:           ShapeDerived,
			DurationExceeds: MaxDuration,
		},
	}
}

// Compile turns rules into predicates. Rego rules are prepared once.
func Compile(ctx context.Context, rules []Rule) (List, error) {
	list := make(List, 0, len(rules))
	for i, r := range rules {
		name := r.Name
		if name == "" {
			name = "rule-" + strconv.Itoa(i)
		}
		p, err := compileRule(ctx, name, r)
		if err != nil {
			return nil, fmt.Errorf("%w: blacklist rule %q: %v", domain.ErrInvalidConfig, name, err)
		}
		list = append(list, p)
	}
	return list, nil
}

func compileRule(ctx context.Context, name string, r Rule) (Predicate, error) {
	set := 0
	if r.ColumnEquals != nil {
		set++
	}
	if len(r.KindIn) > 0 {
		set++
	}
	if r.DurationExceeds > 0 {
		set++
	}
	if r.Rego != "" {
		set++
	}
	if set != 1 {
		return Predicate{}, fmt.Errorf("exactly one matcher is required, got %d", set)
	}

	switch {
	case r.ColumnEquals != nil:
		if r.Shape != "" && r.Shape != ShapeRaw {
			return Predicate{}, fmt.Errorf("column_equals needs shape %q", ShapeRaw)
		}
		if r.ColumnEquals.Column == "" {
			return Predicate{}, fmt.Errorf("column_equals.column is required")
		}
		return ColumnEqualsPredicate(name, r.ColumnEquals.Column, r.ColumnEquals.Value), nil
	case len(r.KindIn) > 0:
		if r.Shape != "" && r.Shape != ShapeDerived {
			return Predicate{}, fmt.Errorf("kind_in needs shape %q", ShapeDerived)
		}
		return KindInPredicate(name, r.KindIn...), nil
	case r.DurationExceeds > 0:
		if r.Shape != "" && r.Shape != ShapeDerived {
			return Predicate{}, fmt.Errorf("duration_exceeds needs shape %q", ShapeDerived)
		}
		return DurationExceedsPredicate(name, r.DurationExceeds), nil
	default:
		if r.Shape != ShapeRaw && r.Shape != ShapeDerived {
			return Predicate{}, fmt.Errorf("rego rules need shape %q or %q", ShapeRaw, ShapeDerived)
		}
		return RegoPredicate(ctx, name, r.Shape, r.Rego)
	}
}

// ColumnEqualsPredicate matches raw rows whose column equals value.
// Numeric cells are compared in their shortest decimal form.
func ColumnEqualsPredicate(name, column, value string) Predicate {
	return Raw(name, func(_ context.Context, row domain.RawRow) (bool, error) {
		switch v := row[column].(type) {
		case string:
			return v == value, nil
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64) == value, nil
		default:
			return false, nil
		}
	})
}

// KindInPredicate matches records whose kind is one of kinds.
func KindInPredicate(name string, kinds ...string) Predicate {
	set := make(map[string]bool, len(kinds))
	for _, k := range kinds {
		set[k] = true
	}
	return Derived(name, func(_ context.Context, rec domain.EventRecord) (bool, error) {
		return set[rec.Kind], nil
	})
}

// DurationExceedsPredicate matches records whose booking window is longer than max.
func DurationExceedsPredicate(name string, max time.Duration) Predicate {
	return Derived(name, func(_ context.Context, rec domain.EventRecord) (bool, error) {
		return rec.Times.Duration > max.Milliseconds(), nil
	})
}
