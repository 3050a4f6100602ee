package coercible

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"
)

// DumpOption configures dump behavior using the functional options pattern.
type DumpOption func(*dumpConfig)

// dumpConfig holds options for DumpEffective.
type dumpConfig struct {
	withSources bool   // Include source attribution for each key
	asJSON      bool   // Output as JSON instead of text format
	indent      string // Indentation for JSON output (default: "  ")
}

// WithSources includes source attribution for each key in the output.
func WithSources() DumpOption {
	return func(cfg *dumpConfig) {
		cfg.withSources = true
	}
}

// AsJSON outputs configuration as JSON instead of text format.
func AsJSON() DumpOption {
	return func(cfg *dumpConfig) {
		cfg.asJSON = true
	}
}

// WithIndent sets the indentation for JSON output.
// Default is two spaces ("  ").
func WithIndent(indent string) DumpOption {
	return func(cfg *dumpConfig) {
		cfg.indent = indent
	}
}

// fieldData holds information about a single key for dumping.
type fieldData struct {
	keyPath    string
	value      any
	sourceName string
}

// DumpEffective writes the loadable part of cfg, one key per line
// ("time.location: UTC") or as nested JSON.
func DumpEffective(w io.Writer, cfg *Config, opts ...DumpOption) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}

	config := dumpConfig{
		indent: "  ",
	}
	for _, opt := range opts {
		opt(&config)
	}

	fields := collectFields(cfg)

	if config.asJSON {
		return dumpAsJSON(w, fields, config)
	}
	return dumpAsText(w, fields, config)
}

func collectFields(cfg *Config) []fieldData {
	prov, _ := GetProvenance(cfg)

	loc := time.UTC
	if cfg.Location != nil {
		loc = cfg.Location
	}
	sep := cfg.Separator
	if sep == "" {
		sep = DefaultSeparator
	}

	fields := []fieldData{
		{keyPath: KeyBooleanTruthy, value: cfg.BooleanMap.Literals(true)},
		{keyPath: KeyBooleanFalsy, value: cfg.BooleanMap.Literals(false)},
		{keyPath: KeyTimeLocation, value: loc.String()},
		{keyPath: KeyTimeDayFirst, value: cfg.DayFirst},
		{keyPath: KeySeparator, value: sep},
	}
	for i := range fields {
		if name, ok := prov.Source(fields[i].keyPath); ok {
			fields[i].sourceName = name
		}
	}
	return fields
}

// dumpAsText outputs configuration in text format (key: value).
func dumpAsText(w io.Writer, fields []fieldData, config dumpConfig) error {
	for _, field := range fields {
		line := fmt.Sprintf("%s: %s", field.keyPath, formatValueAsString(field.value))
		if config.withSources && field.sourceName != "" {
			line += fmt.Sprintf(" (source: %s)", field.sourceName)
		}
		line += "\n"

		if _, err := io.WriteString(w, line); err != nil {
			return fmt.Errorf("write error: %w", err)
		}
	}
	return nil
}

// dumpAsJSON nests keys on their dots: "time.location" becomes {"time": {"location": ...}}.
func dumpAsJSON(w io.Writer, fields []fieldData, config dumpConfig) error {
	result := make(map[string]any)
	for _, field := range fields {
		group, name, _ := strings.Cut(field.keyPath, ".")
		nested, ok := result[group].(map[string]any)
		if !ok {
			nested = make(map[string]any)
			result[group] = nested
		}
		nested[name] = field.value
	}

	var data []byte
	var err error
	if config.indent != "" {
		data, err = json.MarshalIndent(result, "", config.indent)
	} else {
		data, err = json.Marshal(result)
	}
	if err != nil {
		return fmt.Errorf("json marshal error: %w", err)
	}

	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write error: %w", err)
	}
	return nil
}

// formatValueAsString formats a value for text output.
func formatValueAsString(v any) string {
	switch val := v.(type) {
	case string:
		return fmt.Sprintf("%q", val)
	case []string:
		return fmt.Sprintf("[%s]", strings.Join(val, ", "))
	default:
		return fmt.Sprintf("%v", val)
	}
}
