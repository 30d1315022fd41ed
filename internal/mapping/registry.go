// Package mapping converts raw spreadsheet rows into canonical drafts.
package mapping

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/xiaot623/gogo/venueboard/internal/domain"
)

// ParserTag names a registered parse function.
type ParserTag string

const (
	ParserIdentity  ParserTag = "identity"
	ParserString    ParserTag = "string"
	ParserNumber    ParserTag = "number"
	ParserExcelDate ParserTag = "excel_date"
	ParserISODate   ParserTag = "iso_date"
	ParserList      ParserTag = "list"
)

// ParseFunc converts one raw column value.
type ParseFunc func(raw any) (any, error)

// Registry stores parse functions keyed by tag.
type Registry struct {
	mu      sync.RWMutex
	parsers map[ParserTag]ParseFunc
}

// NewRegistry creates a registry holding the built-in parsers.
// Excel serial dates are anchored in loc; nil means time.Local.
func NewRegistry(loc *time.Location) *Registry {
	if loc == nil {
		loc = time.Local
	}
	r := &Registry{parsers: make(map[ParserTag]ParseFunc)}
	r.parsers[ParserIdentity] = parseIdentity
	r.parsers[ParserString] = parseString
	r.parsers[ParserNumber] = parseNumber
	r.parsers[ParserExcelDate] = func(raw any) (any, error) { return parseExcelDate(raw, loc) }
	r.parsers[ParserISODate] = parseISODate
	r.parsers[ParserList] = parseList
	return r
}

// Register adds a parser under tag.
func (r *Registry) Register(tag ParserTag, fn ParseFunc) error {
	if tag == "" {
		return fmt.Errorf("parser tag is required")
	}
	if fn == nil {
		return fmt.Errorf("parse function is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.parsers[tag]; exists {
		return fmt.Errorf("parser already registered for %s", tag)
	}
	r.parsers[tag] = fn
	return nil
}

// Lookup returns the parser registered under tag.
func (r *Registry) Lookup(tag ParserTag) (ParseFunc, error) {
	r.mu.RLock()
	fn := r.parsers[tag]
	r.mu.RUnlock()
	if fn == nil {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownParser, tag)
	}
	return fn, nil
}

// Tags lists the registered parser tags in sorted order.
func (r *Registry) Tags() []ParserTag {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tags := make([]ParserTag, 0, len(r.parsers))
	for tag := range r.parsers {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i] < tags[j] })
	return tags
}
