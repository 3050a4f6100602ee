package coercible

import (
	"regexp"
)

// Building blocks of the numeric literal grammar. A sign is only accepted in
// front of the integer part, so "-.1" is not numeric.
const (
	integerPattern    = `[-+]?(?:0|[1-9][0-9]*)`
	fractionalPattern = `(?:\.[0-9]+)`
	exponentPattern   = `(?:[eE][-+]?[0-9]+)`
)

var numericRegexp = regexp.MustCompile(
	`^(` +
		integerPattern + fractionalPattern + `?` + exponentPattern + `?` +
		`|` +
		fractionalPattern + exponentPattern + `?` +
		`)$`,
)

// matchNumeric returns the numeric literal captured from value and whether
// value is numeric at all.
func matchNumeric(value string) (string, bool) {
	m := numericRegexp.FindStringSubmatch(value)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// IsNumeric reports whether value is accepted by the numeric literal grammar.
func IsNumeric(value string) bool {
	_, ok := matchNumeric(value)
	return ok
}
