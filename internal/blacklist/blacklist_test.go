package blacklist

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiaot623/gogo/venueboard/internal/domain"
)

func TestIsBlacklisted(t *testing.T) {
	ctx := context.Background()
	maintenance := ColumnEqualsPredicate("maintenance", domain.ColumnKind, MaintenanceKind)

	hit, err := IsBlacklisted(ctx, domain.RawRow{domain.ColumnKind: "Wartung"}, List{maintenance})
	require.NoError(t, err)
	assert.True(t, hit)

	hit, err = IsBlacklisted(ctx, domain.RawRow{domain.ColumnKind: "Messe"}, List{maintenance})
	require.NoError(t, err)
	assert.False(t, hit)

	hit, err = IsBlacklisted(ctx, domain.RawRow{}, List{})
	require.NoError(t, err)
	assert.False(t, hit, "empty list excludes nothing")
}

func TestMatchRawShortCircuits(t *testing.T) {
	ctx := context.Background()
	calls := 0
	counting := Raw("counting", func(context.Context, domain.RawRow) (bool, error) {
		calls++
		return false, nil
	})
	always := Raw("always", func(context.Context, domain.RawRow) (bool, error) { return true, nil })

	m, err := List{always, counting}.MatchRaw(ctx, domain.RawRow{})
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, "always", m.Predicate)
	assert.Equal(t, ShapeRaw, m.Shape)
	assert.Equal(t, 0, calls)
}

func TestMatchIgnoresOtherShape(t *testing.T) {
	ctx := context.Background()
	l := List{
		KindInPredicate("kind", "Messe"),
		ColumnEqualsPredicate("col", "A", "x"),
	}

	m, err := l.MatchRaw(ctx, domain.RawRow{"A": "y"})
	require.NoError(t, err)
	assert.Nil(t, m)

	hit, err := IsRecordBlacklisted(ctx, domain.EventRecord{Kind: "Messe"}, l)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.True(t, l.HasDerived())
	assert.False(t, List{ColumnEqualsPredicate("col", "A", "x")}.HasDerived())
}

func TestPredicateErrorPropagates(t *testing.T) {
	boom := errors.New("boom")
	l := List{Raw("broken", func(context.Context, domain.RawRow) (bool, error) { return false, boom })}

	_, err := IsBlacklisted(context.Background(), domain.RawRow{}, l)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrPredicateFailed))
	assert.Contains(t, err.Error(), "broken")
}

func TestColumnEqualsNumericCell(t *testing.T) {
	p := ColumnEqualsPredicate("hall", "Hallen", "7")
	hit, err := IsBlacklisted(context.Background(), domain.RawRow{"Hallen": 7.0}, List{p})
	require.NoError(t, err)
	assert.True(t, hit)
}

func TestDurationExceedsPredicate(t *testing.T) {
	ctx := context.Background()
	l := List{DurationExceedsPredicate("long", MaxDuration)}

	long := domain.EventRecord{Times: domain.Times{Duration: (365 * 24 * time.Hour).Milliseconds()}}
	hit, err := IsRecordBlacklisted(ctx, long, l)
	require.NoError(t, err)
	assert.True(t, hit)

	exact := domain.EventRecord{Times: domain.Times{Duration: MaxDuration.Milliseconds()}}
	hit, err = IsRecordBlacklisted(ctx, exact, l)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestCompileDefaultRules(t *testing.T) {
	l, err := Compile(context.Background(), DefaultRules())
	require.NoError(t, err)
	require.Len(t, l, 2)
	assert.Equal(t, ShapeRaw, l[0].Shape)
	assert.Equal(t, ShapeDerived, l[1].Shape)
}

func TestCompileRejectsInvalidRules(t *testing.T) {
	tests := []struct {
		name string
		rule Rule
	}{
		{"no matcher", Rule{Name: "empty"}},
		{"two matchers", Rule{KindIn: []string{"x"}, DurationExceeds: time.Hour}},
		{"column_equals without column", Rule{ColumnEquals: &ColumnEquals{Value: "x"}}},
		{"column_equals on derived", Rule{Shape: ShapeDerived, ColumnEquals: &ColumnEquals{Column: "A"}}},
		{"kind_in on raw", Rule{Shape: ShapeRaw, KindIn: []string{"x"}}},
		{"rego without shape", Rule{Rego: "package blacklist\nexclude { true }"}},
		{"rego syntax error", Rule{Shape: ShapeRaw, Rego: "package blacklist\nexclude {"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compile(context.Background(), []Rule{tt.rule})
			assert.True(t, errors.Is(err, domain.ErrInvalidConfig), "got %v", err)
		})
	}
}

func TestCompileNamesUnnamedRules(t *testing.T) {
	l, err := Compile(context.Background(), []Rule{{KindIn: []string{"x"}}})
	require.NoError(t, err)
	assert.Equal(t, "rule-0", l[0].Name)
}
