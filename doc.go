// Package coercible converts strings into integers, floats, exact decimals,
// booleans, times, dates, symbols and named constants.
//
// Quick Start:
//
//	c := coercible.NewDefault()
//
//	n, err := c.ToInteger("1e3")     // 1000
//	d, err := c.ToDecimal(".1e-1")   // 0.01, exactly
//	b, err := c.ToBoolean("YES")     // true
//
// Every failed conversion returns *UnsupportedCoercionError, which matches
// ErrUnsupportedCoercion under errors.Is.
//
// A Config can be built in code or loaded from files and environment variables:
//
//	cfg, err := coercible.NewLoader().
//	    WithSource(sourcefile.New("coerce.yaml", sourcefile.Options{})).
//	    WithSource(sourceenv.New(sourceenv.Options{Prefix: "COERCE_"})).
//	    Load(ctx)
//
// Keys: boolean.truthy, boolean.falsy, time.location, time.day_first,
// constant.separator.
package coercible
