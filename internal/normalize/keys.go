package normalize

import (
	"strings"
)

// ToLowerDotPath normalizes a configuration key to a lowercase dot-separated path.
// Double underscores (__) are treated as level separators and converted to dots.
// Single underscores within a level are preserved.
// Examples:
//   - "BOOLEAN__TRUTHY" → "boolean.truthy"
//   - "TIME__DAY_FIRST" → "time.day_first"
func ToLowerDotPath(key string) string {
	normalized := strings.ReplaceAll(key, "__", ".")
	return strings.ToLower(normalized)
}

// ApplyPrefix combines a prefix with a key to create a nested configuration path.
// Examples:
//   - ApplyPrefix("time", "location") → "time.location"
//   - ApplyPrefix("", "time") → "time"
func ApplyPrefix(prefix, key string) string {
	if prefix == "" {
		return key
	}
	if key == "" {
		return prefix
	}
	return prefix + "." + key
}
