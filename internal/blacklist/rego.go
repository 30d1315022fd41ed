package blacklist

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/open-policy-agent/opa/rego"

	"github.com/xiaot623/gogo/venueboard/internal/domain"
)

// RegoQuery is the rule every blacklist module must define.
const RegoQuery = "data.blacklist.exclude"

// Engine evaluates a prepared Rego blacklist module.
type Engine struct {
	query rego.PreparedEvalQuery
}

// NewEngine prepares module for evaluation.
func NewEngine(ctx context.Context, name, module string) (*Engine, error) {
	r := rego.New(
		rego.Query(RegoQuery),
		rego.Module(name+".rego", module),
	)

	query, err := r.PrepareForEval(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare rego: %w", err)
	}

	return &Engine{query: query}, nil
}

// Evaluate returns the value of exclude for input. An undefined rule
// counts as false.
func (e *Engine) Evaluate(ctx context.Context, input any) (bool, error) {
	results, err := e.query.Eval(ctx, rego.EvalInput(input))
	if err != nil {
		return false, fmt.Errorf("failed to evaluate policy: %w", err)
	}

	if len(results) == 0 || len(results[0].Expressions) == 0 {
		return false, nil
	}

	val := results[0].Expressions[0].Value
	b, ok := val.(bool)
	if !ok {
		return false, fmt.Errorf("exclude must be a boolean, got %T", val)
	}
	return b, nil
}

// RegoPredicate compiles module into a predicate of the given shape.
// Raw predicates see the row keyed by column header; derived predicates see
// the record in its JSON form.
func RegoPredicate(ctx context.Context, name string, shape Shape, module string) (Predicate, error) {
	engine, err := NewEngine(ctx, name, module)
	if err != nil {
		return Predicate{}, err
	}
	if shape == ShapeDerived {
		return Derived(name, func(ctx context.Context, rec domain.EventRecord) (bool, error) {
			input, err := recordInput(rec)
			if err != nil {
				return false, err
			}
			return engine.Evaluate(ctx, input)
		}), nil
	}
	return Raw(name, func(ctx context.Context, row domain.RawRow) (bool, error) {
		return engine.Evaluate(ctx, map[string]any(row))
	}), nil
}

func recordInput(rec domain.EventRecord) (map[string]any, error) {
	b, err := json.Marshal(rec)
	if err != nil {
		return nil, err
	}
	var input map[string]any
	if err := json.Unmarshal(b, &input); err != nil {
		return nil, err
	}
	return input, nil
}
