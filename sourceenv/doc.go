// Package sourceenv loads coercer configuration from environment variables.
//
// Key normalization: FOO__BAR → foo.bar, FOO_BAR → foo_bar
//
// Example:
//
//	// COERCE_BOOLEAN__TRUTHY=1,on,yes  →  boolean.truthy
//	source := sourceenv.New(sourceenv.Options{Prefix: "COERCE_"})
//	cfg, err := coercible.NewLoader().WithSource(source).Load(ctx)
package sourceenv
