package coercible

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"
)

// Loader builds a Config from multiple sources.
// Sources are processed in order (later override earlier).
// Thread-safe for reads, not for concurrent configuration changes.
type Loader struct {
	sources []Source
	base    Config
	strict  bool // Fail on unknown keys (default: true)
	logger  zerolog.Logger
}

// NewLoader creates a Loader with no sources, DefaultConfig as the base and
// strict mode enabled.
func NewLoader() *Loader {
	return &Loader{
		sources: make([]Source, 0),
		base:    DefaultConfig(),
		strict:  true,
		logger:  zerolog.Nop(),
	}
}

// WithSource adds a source. Sources are processed in order (later override earlier).
func (l *Loader) WithSource(src Source) *Loader {
	l.sources = append(l.sources, src)
	return l
}

// WithBase sets the config that loaded keys are applied on top of. Fields
// that cannot be loaded (Root, Logger) are taken from it unchanged.
func (l *Loader) WithBase(cfg Config) *Loader {
	l.base = cfg
	return l
}

// WithLogger sets the logger used while loading.
func (l *Loader) WithLogger(logger zerolog.Logger) *Loader {
	l.logger = logger
	return l
}

// Strict controls whether unknown keys cause errors. Default: true.
func (l *Loader) Strict(strict bool) *Loader {
	l.strict = strict
	return l
}

// Load loads, merges, binds, and validates configuration from all sources.
// Returns the config or a *ValidationError listing every field error.
func (l *Loader) Load(ctx context.Context) (*Config, error) {
	merged := make(map[string]mergedEntry)

	for _, source := range l.sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		data, err := source.Load(ctx)
		if err != nil {
			return nil, fmt.Errorf("load source %s: %w", source.Name(), err)
		}

		l.logger.Debug().
			Str("source", source.Name()).
			Int("keys", len(data)).
			Msg("loaded config source")

		for key, value := range data {
			merged[strings.ToLower(key)] = mergedEntry{
				value:      value,
				sourceName: source.Name(),
			}
		}
	}

	if l.strict {
		var unknown []FieldError
		for key := range merged {
			if _, ok := bindings[key]; !ok {
				unknown = append(unknown, FieldError{
					FieldPath: key,
					Code:      ErrCodeUnknownKey,
					Message:   "unknown configuration key (strict mode)",
				})
			}
		}
		if len(unknown) > 0 {
			sort.Slice(unknown, func(i, j int) bool {
				return unknown[i].FieldPath < unknown[j].FieldPath
			})
			return nil, &ValidationError{FieldErrors: unknown}
		}
	}

	cfg := l.base
	fields, bindErrors := bindConfig(&cfg, merged)
	if len(bindErrors) > 0 {
		return nil, &ValidationError{FieldErrors: bindErrors}
	}

	normalized, err := normalizeConfig(cfg)
	if err != nil {
		return nil, err
	}

	out := &normalized
	storeProvenance(out, &Provenance{Fields: fields})
	return out, nil
}
