package coercible

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unique"
)

// Source provides configuration data from backends (env vars, files).
// Keys must be normalized to lowercase dot-separated paths (e.g., "time.location").
type Source interface {
	// Load returns configuration as a flat map. Missing optional sources should return empty map.
	Load(ctx context.Context) (map[string]any, error)

	// Name identifies the source in provenance and errors (e.g., "env", "file:coerce.yaml").
	Name() string
}

// Target names a conversion.
type Target string

const (
	TargetInteger  Target = "integer"
	TargetFloat    Target = "float"
	TargetDecimal  Target = "decimal"
	TargetBoolean  Target = "boolean"
	TargetTime     Target = "time"
	TargetDate     Target = "date"
	TargetDateTime Target = "datetime"
	TargetSymbol   Target = "symbol"
	TargetConstant Target = "constant"
)

var targets = []Target{
	TargetInteger, TargetFloat, TargetDecimal, TargetBoolean,
	TargetTime, TargetDate, TargetDateTime, TargetSymbol, TargetConstant,
}

// ParseTarget resolves a target name. Both "integer" and "to_integer" are
// accepted, case-insensitively.
func ParseTarget(name string) (Target, error) {
	n := strings.TrimPrefix(strings.ToLower(name), "to_")
	for _, t := range targets {
		if string(t) == n {
			return t, nil
		}
	}
	return "", fmt.Errorf("coercible: unknown target %q", name)
}

// Date is a civil date without a time of day or zone.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf returns the date on which t falls in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// In returns midnight of d in loc.
func (d Date) In(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// Symbol is an interned identifier. Symbols with equal text compare equal
// with ==, and comparison does not touch the underlying string.
type Symbol struct {
	h unique.Handle[string]
}

// Intern returns the symbol for s.
func Intern(s string) Symbol {
	return Symbol{h: unique.Make(s)}
}

// String returns the symbol's text.
func (s Symbol) String() string {
	var zero unique.Handle[string]
	if s.h == zero {
		return ""
	}
	return s.h.Value()
}
