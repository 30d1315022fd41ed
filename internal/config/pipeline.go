package config

import (
	"context"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/xiaot623/gogo/venueboard/internal/blacklist"
	"github.com/xiaot623/gogo/venueboard/internal/collection"
	"github.com/xiaot623/gogo/venueboard/internal/domain"
	"github.com/xiaot623/gogo/venueboard/internal/mapping"
	"github.com/xiaot623/gogo/venueboard/internal/normalize"
)

// Pipeline is the YAML definition of the import pipeline. Omitted sections
// fall back to the built-in defaults; an empty mapping list means rows are
// passed through unchanged.
type Pipeline struct {
	Mapping       mapping.FieldMapping `yaml:"mapping"`
	Blacklist     []blacklist.Rule     `yaml:"blacklist"`
	Palette       []string             `yaml:"palette"`
	SlashToken    string               `yaml:"slash_token"`
	FailurePolicy string               `yaml:"failure_policy"`
}

// DefaultPipeline returns the built-in pipeline definition.
func DefaultPipeline() *Pipeline {
	return &Pipeline{
		Mapping:       mapping.DefaultMapping(),
		Blacklist:     blacklist.DefaultRules(),
		Palette:       domain.DefaultPalette[:],
		SlashToken:    normalize.SlashToken,
		FailurePolicy: string(collection.FailFast),
	}
}

// LoadPipeline reads a pipeline file. An empty path returns the defaults.
func LoadPipeline(path string) (*Pipeline, error) {
	if path == "" {
		return DefaultPipeline(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParsePipeline(b)
}

// ParsePipeline decodes a YAML pipeline definition.
func ParsePipeline(b []byte) (*Pipeline, error) {
	var p Pipeline
	if err := yaml.Unmarshal(b, &p); err != nil {
		return nil, fmt.Errorf("%w: decode pipeline: %v", domain.ErrInvalidConfig, err)
	}
	def := DefaultPipeline()
	if p.Mapping == nil {
		p.Mapping = def.Mapping
	}
	if p.Blacklist == nil {
		p.Blacklist = def.Blacklist
	}
	if p.Palette == nil {
		p.Palette = def.Palette
	}
	if p.SlashToken == "" {
		p.SlashToken = def.SlashToken
	}
	return &p, nil
}

// Compiled is a ready-to-run pipeline.
type Compiled struct {
	Options collection.Options
	Palette domain.Palette
}

// Compile validates p and assembles the build options. Excel dates are
// anchored in loc; clock may be nil to use time.Now.
func (p *Pipeline) Compile(ctx context.Context, loc *time.Location, clock func() time.Time) (*Compiled, error) {
	reg := mapping.NewRegistry(loc)
	if err := p.Mapping.Validate(reg); err != nil {
		return nil, err
	}
	list, err := blacklist.Compile(ctx, p.Blacklist)
	if err != nil {
		return nil, err
	}
	policy, err := collection.ParseFailurePolicy(p.FailurePolicy)
	if err != nil {
		return nil, err
	}
	if len(p.Palette) != 3 {
		return nil, fmt.Errorf("%w: palette needs 3 colors, got %d", domain.ErrInvalidConfig, len(p.Palette))
	}

	opts := []normalize.Option{normalize.WithSlashToken(p.SlashToken)}
	if clock != nil {
		opts = append(opts, normalize.WithClock(clock))
	}
	return &Compiled{
		Options: collection.Options{
			Mapping:    p.Mapping,
			Registry:   reg,
			Blacklist:  list,
			Normalizer: normalize.New(opts...),
			Policy:     policy,
		},
		Palette: domain.Palette{p.Palette[0], p.Palette[1], p.Palette[2]},
	}, nil
}
