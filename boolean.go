package coercible

import (
	"fmt"
	"sort"
	"strings"
)

// Default boolean literals.
var (
	TrueValues  = []string{"1", "on", "t", "true", "y", "yes"}
	FalseValues = []string{"0", "off", "f", "false", "n", "no"}
)

// BooleanMap is an immutable table from lower-case literal to boolean.
// The zero value recognizes nothing.
type BooleanMap struct {
	m map[string]bool
}

// DefaultBooleanMap returns the map built from TrueValues and FalseValues.
func DefaultBooleanMap() BooleanMap {
	m := make(map[string]bool, len(TrueValues)+len(FalseValues))
	for _, s := range TrueValues {
		m[s] = true
	}
	for _, s := range FalseValues {
		m[s] = false
	}
	return BooleanMap{m: m}
}

// NewBooleanMap copies literals into a BooleanMap. Every key must already be
// lower-case; lookups lower-case their input, so an upper-case key could never match.
func NewBooleanMap(literals map[string]bool) (BooleanMap, error) {
	var fieldErrors []FieldError
	m := make(map[string]bool, len(literals))
	for k, v := range literals {
		if k != strings.ToLower(k) {
			fieldErrors = append(fieldErrors, FieldError{
				FieldPath: "BooleanMap",
				Code:      ErrCodeLowercase,
				Message:   fmt.Sprintf("literal %q must be lower-case", k),
			})
			continue
		}
		m[k] = v
	}
	if len(fieldErrors) > 0 {
		sortFieldErrors(fieldErrors)
		return BooleanMap{}, &ValidationError{FieldErrors: fieldErrors}
	}
	return BooleanMap{m: m}, nil
}

// BooleanMapFromLiterals builds a map from truthy and falsy literal lists.
// A literal listed on both sides is rejected.
func BooleanMapFromLiterals(truthy, falsy []string) (BooleanMap, error) {
	literals := make(map[string]bool, len(truthy)+len(falsy))
	for _, s := range truthy {
		literals[s] = true
	}

	var fieldErrors []FieldError
	for _, s := range falsy {
		if v, ok := literals[s]; ok && v {
			fieldErrors = append(fieldErrors, FieldError{
				FieldPath: "BooleanMap",
				Code:      ErrCodeConflict,
				Message:   fmt.Sprintf("literal %q is both truthy and falsy", s),
			})
			continue
		}
		literals[s] = false
	}
	if len(fieldErrors) > 0 {
		return BooleanMap{}, &ValidationError{FieldErrors: fieldErrors}
	}
	return NewBooleanMap(literals)
}

// Lookup lower-cases s and returns its boolean value, if s is a known literal.
func (b BooleanMap) Lookup(s string) (value bool, ok bool) {
	value, ok = b.m[strings.ToLower(s)]
	return value, ok
}

// Len returns the number of literals.
func (b BooleanMap) Len() int {
	return len(b.m)
}

// Literals returns all literals mapping to value, sorted.
func (b BooleanMap) Literals(value bool) []string {
	var out []string
	for k, v := range b.m {
		if v == value {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

func sortFieldErrors(errs []FieldError) {
	sort.Slice(errs, func(i, j int) bool {
		return errs[i].Message < errs[j].Message
	})
}
