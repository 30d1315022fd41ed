package blacklist

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiaot623/gogo/venueboard/internal/domain"
)

const rawModule = `
package blacklist

default exclude = false

exclude {
	input["Veranstaltungsart"] == "Wartung"
}

exclude {
	startswith(input["MATCHCODE"], "TEST")
}
`

const derivedModule = `
package blacklist

exclude {
	some i
	input.halls[i] == "Freigelände"
}

exclude {
	input.times.duration > 86400000 * 30
}
`

func TestRegoRawPredicate(t *testing.T) {
	ctx := context.Background()
	p, err := RegoPredicate(ctx, "raw", ShapeRaw, rawModule)
	require.NoError(t, err)

	tests := []struct {
		row  domain.RawRow
		want bool
	}{
		{domain.RawRow{"Veranstaltungsart": "Wartung", "MATCHCODE": "A1"}, true},
		{domain.RawRow{"Veranstaltungsart": "Messe", "MATCHCODE": "TEST-7"}, true},
		{domain.RawRow{"Veranstaltungsart": "Messe", "MATCHCODE": "A1"}, false},
		{domain.RawRow{}, false},
	}
	for _, tt := range tests {
		hit, err := IsBlacklisted(ctx, tt.row, List{p})
		require.NoError(t, err)
		assert.Equal(t, tt.want, hit, "row %v", tt.row)
	}
}

func TestRegoDerivedPredicate(t *testing.T) {
	ctx := context.Background()
	p, err := RegoPredicate(ctx, "derived", ShapeDerived, derivedModule)
	require.NoError(t, err)
	assert.Equal(t, ShapeDerived, p.Shape)

	outdoor := domain.EventRecord{ID: "a", Halls: []string{"H1", "Freigelände"}}
	hit, err := IsRecordBlacklisted(ctx, outdoor, List{p})
	require.NoError(t, err)
	assert.True(t, hit)

	long := domain.EventRecord{ID: "b", Halls: []string{}, Times: domain.Times{Duration: (31 * 24 * time.Hour).Milliseconds()}}
	hit, err = IsRecordBlacklisted(ctx, long, List{p})
	require.NoError(t, err)
	assert.True(t, hit)

	short := domain.EventRecord{ID: "c", Halls: []string{"H1"}, Times: domain.Times{Duration: 1000}}
	hit, err = IsRecordBlacklisted(ctx, short, List{p})
	require.NoError(t, err)
	assert.False(t, hit, "undefined exclude counts as false")
}

func TestEngineRejectsNonBoolean(t *testing.T) {
	ctx := context.Background()
	engine, err := NewEngine(ctx, "bad", "package blacklist\n\nexclude = \"yes\"\n")
	require.NoError(t, err)

	_, err = engine.Evaluate(ctx, map[string]any{})
	assert.Error(t, err)
}

func TestCompileRegoRuleFromYAMLShape(t *testing.T) {
	l, err := Compile(context.Background(), []Rule{{Name: "test-rows", Shape: ShapeRaw, Rego: rawModule}})
	require.NoError(t, err)

	hit, err := IsBlacklisted(context.Background(), domain.RawRow{"MATCHCODE": "TEST"}, l)
	require.NoError(t, err)
	assert.True(t, hit)
}
