// Package sourcefile loads coercer configuration from YAML, JSON, or TOML files.
//
// Format is auto-detected from extension (.yaml, .yml, .json, .toml).
//
// Example:
//
//	source := sourcefile.New("coerce.yaml", sourcefile.Options{Required: true})
//	cfg, err := coercible.NewLoader().WithSource(source).Load(ctx)
package sourcefile
