package mapping

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/xiaot623/gogo/venueboard/internal/domain"
)

// FieldRule maps one canonical field to a source column and a parser.
type FieldRule struct {
	Field  string    `yaml:"field" json:"field"`
	Column string    `yaml:"column" json:"column"`
	Parser ParserTag `yaml:"parser" json:"parser"`
}

// FieldMapping is an ordered list of field rules. An empty mapping passes
// rows through unchanged.
type FieldMapping []FieldRule

// DefaultMapping returns the column table of the venue management export.
func DefaultMapping() FieldMapping {
	return FieldMapping{
		{Field: domain.FieldName, Column: domain.ColumnName, Parser: ParserString},
		{Field: domain.FieldMatchcode, Column: domain.ColumnMatchcode, Parser: ParserString},
		{Field: domain.FieldKind, Column: domain.ColumnKind, Parser: ParserString},
		{Field: domain.FieldStart, Column: domain.ColumnStart, Parser: ParserExcelDate},
		{Field: domain.FieldSetup, Column: domain.ColumnSetup, Parser: ParserExcelDate},
		{Field: domain.FieldEventStart, Column: domain.ColumnEventStart, Parser: ParserExcelDate},
		{Field: domain.FieldEventEnd, Column: domain.ColumnEventEnd, Parser: ParserExcelDate},
		{Field: domain.FieldDismantle, Column: domain.ColumnDismantle, Parser: ParserExcelDate},
		{Field: domain.FieldEnd, Column: domain.ColumnEnd, Parser: ParserExcelDate},
		{Field: domain.FieldHalls, Column: domain.ColumnHalls, Parser: ParserList},
	}
}

// Validate checks that every rule is complete, fields are unique and every
// parser is registered.
func (m FieldMapping) Validate(reg *Registry) error {
	seen := make(map[string]bool, len(m))
	for i, rule := range m {
		if rule.Field == "" {
			return fmt.Errorf("%w: mapping rule %d: field is required", domain.ErrInvalidConfig, i)
		}
		if rule.Column == "" {
			return fmt.Errorf("%w: mapping rule %q: column is required", domain.ErrInvalidConfig, rule.Field)
		}
		if seen[rule.Field] {
			return fmt.Errorf("%w: mapping rule %q is defined twice", domain.ErrInvalidConfig, rule.Field)
		}
		seen[rule.Field] = true
		if _, err := reg.Lookup(rule.Parser); err != nil {
			return fmt.Errorf("%w: mapping rule %q: %v", domain.ErrInvalidConfig, rule.Field, err)
		}
	}
	return nil
}

// MapFields converts row according to m. Columns missing from the row are
// omitted from the draft. A parser error rejects the whole row.
func MapFields(row domain.RawRow, m FieldMapping, reg *Registry) (domain.Draft, error) {
	if len(m) == 0 {
		return domain.Draft(row), nil
	}
	draft := make(domain.Draft, len(m))
	for _, rule := range m {
		raw, ok := row[rule.Column]
		if !ok || raw == nil {
			continue
		}
		parse, err := reg.Lookup(rule.Parser)
		if err != nil {
			return nil, &domain.FieldError{Field: rule.Field, Column: rule.Column, Err: err}
		}
		v, err := parse(raw)
		if err != nil {
			return nil, &domain.FieldError{Field: rule.Field, Column: rule.Column, Err: err}
		}
		draft[rule.Field] = v
	}
	return draft, nil
}

// Load reads a YAML mapping file consisting of a list of field rules.
func Load(path string) (FieldMapping, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m FieldMapping
	if err := yaml.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("%w: decode mapping: %v", domain.ErrInvalidConfig, err)
	}
	return m, nil
}
