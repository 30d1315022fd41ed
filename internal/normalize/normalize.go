// Package normalize turns mapped drafts into fully populated event records.
package normalize

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/xiaot623/gogo/venueboard/internal/domain"
	"github.com/xiaot623/gogo/venueboard/internal/mapping"
	"github.com/xiaot623/gogo/venueboard/internal/temporal"
)

// SlashToken replaces "/" in identifiers.
const SlashToken = "-bs-"

// Normalizer applies defaults and derives progress and phase magnitudes.
type Normalizer struct {
	now   func() time.Time
	newID func() string
	token string
}

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithClock sets the clock used for progress and the missing-start default.
func WithClock(now func() time.Time) Option {
	return func(n *Normalizer) { n.now = now }
}

// WithIDGenerator sets the fallback identifier generator.
func WithIDGenerator(gen func() string) Option {
	return func(n *Normalizer) { n.newID = gen }
}

// WithSlashToken overrides the substitute for "/" in identifiers.
func WithSlashToken(token string) Option {
	return func(n *Normalizer) {
		if token != "" {
			n.token = token
		}
	}
}

// New creates a Normalizer.
func New(opts ...Option) *Normalizer {
	n := &Normalizer{
		now:   time.Now,
		newID: func() string { return uuid.New().String() },
		token: SlashToken,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Token returns the slash substitute in use.
func (n *Normalizer) Token() string { return n.token }

// Normalize builds an EventRecord from d. Every field of the result is
// populated. Errors are returned only for values of an unusable type.
func (n *Normalizer) Normalize(d domain.Draft) (domain.EventRecord, error) {
	now := n.now()
	var rec domain.EventRecord

	id, err := optionalString(d, domain.FieldMatchcode)
	if err != nil {
		return rec, err
	}
	if id == "" {
		if id, err = optionalString(d, domain.FieldID); err != nil {
			return rec, err
		}
	}
	if id == "" {
		rec.ID = n.newID()
	} else {
		rec.ID = SanitizeID(id, n.token)
	}

	if rec.Name, err = optionalString(d, domain.FieldName); err != nil {
		return rec, err
	}
	if rec.Name == "" {
		rec.Name = rec.ID
	}
	if rec.Kind, err = optionalString(d, domain.FieldKind); err != nil {
		return rec, err
	}
	if rec.Dependencies, err = optionalString(d, domain.FieldDependencies); err != nil {
		return rec, err
	}

	start, ok, err := optionalTime(d, domain.FieldStart)
	if err != nil {
		return rec, err
	}
	if !ok {
		start = now
	}
	rec.Start = start
	for _, f := range []struct {
		name string
		dst  *time.Time
	}{
		{domain.FieldSetup, &rec.Setup},
		{domain.FieldEventStart, &rec.EventStart},
		{domain.FieldEventEnd, &rec.EventEnd},
		{domain.FieldDismantle, &rec.Dismantle},
		{domain.FieldEnd, &rec.End},
	} {
		t, ok, err := optionalTime(d, f.name)
		if err != nil {
			return rec, err
		}
		if !ok {
			t = start
		}
		*f.dst = t
	}

	if rec.Halls, err = optionalList(d, domain.FieldHalls); err != nil {
		return rec, err
	}

	rec.Progress = temporal.Progress(now, rec.Start, rec.End)
	rec.Times = temporal.RecordPhases(rec)
	rec.Warnings = temporal.OrderWarnings(rec)
	return rec, nil
}

// SanitizeID replaces every "/" in s with token.
func SanitizeID(s, token string) string {
	return strings.ReplaceAll(s, "/", token)
}

// DisplayID turns an identifier back into a bar label.
func DisplayID(id, token string) string {
	parts := strings.Split(id, token)
	for i, p := range parts {
		parts[i] = strings.ReplaceAll(p, "_", " ")
	}
	return strings.Join(parts, "/")
}

func optionalString(d domain.Draft, field string) (string, error) {
	raw, ok := d[field]
	if !ok || raw == nil {
		return "", nil
	}
	switch v := raw.(type) {
	case string:
		return strings.TrimSpace(v), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	default:
		return "", &domain.FieldError{Field: field, Err: fmt.Errorf("%w: expected text, got %T", domain.ErrMalformedValue, raw)}
	}
}

func optionalTime(d domain.Draft, field string) (time.Time, bool, error) {
	raw, ok := d[field]
	if !ok || raw == nil {
		return time.Time{}, false, nil
	}
	switch v := raw.(type) {
	case time.Time:
		return v, true, nil
	case string:
		t, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(v))
		if err != nil {
			return time.Time{}, false, &domain.FieldError{Field: field, Err: fmt.Errorf("%w: %q is not an ISO-8601 instant", domain.ErrMalformedValue, v)}
		}
		return t, true, nil
	default:
		return time.Time{}, false, &domain.FieldError{Field: field, Err: fmt.Errorf("%w: expected instant, got %T", domain.ErrMalformedValue, raw)}
	}
}

func optionalList(d domain.Draft, field string) ([]string, error) {
	raw, ok := d[field]
	if !ok || raw == nil {
		return []string{}, nil
	}
	switch v := raw.(type) {
	case []string:
		return append([]string{}, v...), nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, &domain.FieldError{Field: field, Err: fmt.Errorf("%w: list item %T is not text", domain.ErrMalformedValue, item)}
			}
			out = append(out, s)
		}
		return out, nil
	case string:
		return mapping.SplitList(v), nil
	default:
		return nil, &domain.FieldError{Field: field, Err: fmt.Errorf("%w: expected list, got %T", domain.ErrMalformedValue, raw)}
	}
}
