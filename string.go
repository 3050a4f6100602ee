package coercible

import (
	"errors"
	"math/big"
	"strconv"
	"time"

	"github.com/araddon/dateparse"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// maxInt64Digits is the number of decimal digits in math.MaxInt64 minus one.
const maxInt64Digits = 18

var (
	errNotNumeric    = errors.New("value does not match the numeric grammar")
	errOutOfRange    = errors.New("value out of range")
	errUnknownTarget = errors.New("unknown target")
	errNoRoot        = errors.New("no root namespace configured")
	errNotFound      = errors.New("name not found")
)

// String coerces strings into other types. It is immutable after NewString
// and safe for concurrent use.
type String struct {
	booleans  BooleanMap
	location  *time.Location
	dayFirst  bool
	separator string
	root      Namespace
	logger    zerolog.Logger
}

// NewString creates a coercer from cfg. Zero-valued fields take their
// defaults (see DefaultConfig).
func NewString(cfg Config) (*String, error) {
	cfg, err := normalizeConfig(cfg)
	if err != nil {
		return nil, err
	}

	logger := zerolog.Nop()
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}

	return &String{
		booleans:  cfg.BooleanMap,
		location:  cfg.Location,
		dayFirst:  cfg.DayFirst,
		separator: cfg.Separator,
		root:      cfg.Root,
		logger:    logger,
	}, nil
}

// NewDefault creates a coercer with DefaultConfig.
func NewDefault() *String {
	c, err := NewString(DefaultConfig())
	if err != nil {
		panic(err)
	}
	return c
}

// BooleanMap returns the literal table used by ToBoolean.
func (c *String) BooleanMap() BooleanMap {
	return c.booleans
}

// ToInteger coerces value to an int64.
//
// An exact integer literal ("42", "-7") is parsed directly. Anything else is
// read as a numeric literal and truncated toward zero, so "1e3" is 1000 and
// "-1.9" is -1.
func (c *String) ToInteger(value string) (int64, error) {
	if i, err := strconv.ParseInt(value, 10, 64); err == nil && strconv.FormatInt(i, 10) == value {
		return i, nil
	}

	d, err := parseDecimal(value)
	if err != nil {
		return 0, c.unsupported(value, TargetInteger, err)
	}

	i, ok := truncateInt64(d)
	if !ok {
		return 0, c.unsupported(value, TargetInteger, errOutOfRange)
	}
	return i, nil
}

// ToFloat coerces a numeric literal to a float64. Literals beyond the
// float64 range become ±Inf, or 0 when they underflow.
func (c *String) ToFloat(value string) (float64, error) {
	literal, ok := matchNumeric(value)
	if !ok {
		return 0, c.unsupported(value, TargetFloat, errNotNumeric)
	}

	// Out-of-range literals still match the grammar: ParseFloat reports
	// ErrRange and returns ±Inf or 0, which is the result.
	f, err := strconv.ParseFloat(literal, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, c.unsupported(value, TargetFloat, err)
	}
	return f, nil
}

// ToDecimal coerces a numeric literal to an exact decimal.
func (c *String) ToDecimal(value string) (decimal.Decimal, error) {
	d, err := parseDecimal(value)
	if err != nil {
		return decimal.Decimal{}, c.unsupported(value, TargetDecimal, err)
	}
	return d, nil
}

// ToBoolean looks value up, case-insensitively, in the boolean literal map.
func (c *String) ToBoolean(value string) (bool, error) {
	b, ok := c.booleans.Lookup(value)
	if !ok {
		return false, c.unsupported(value, TargetBoolean, nil)
	}
	return b, nil
}

// ToTime parses value as a point in time, expressed in the configured location.
func (c *String) ToTime(value string) (time.Time, error) {
	t, err := c.parseTime(value)
	if err != nil {
		return time.Time{}, c.unsupported(value, TargetTime, err)
	}
	return t.In(c.location), nil
}

// ToDate parses value and returns the calendar date it names.
func (c *String) ToDate(value string) (Date, error) {
	t, err := c.parseTime(value)
	if err != nil {
		return Date{}, c.unsupported(value, TargetDate, err)
	}
	return DateOf(t), nil
}

// ToDateTime parses value as a date and time, keeping the offset written
// in value.
func (c *String) ToDateTime(value string) (time.Time, error) {
	t, err := c.parseTime(value)
	if err != nil {
		return time.Time{}, c.unsupported(value, TargetDateTime, err)
	}
	return t, nil
}

// ToSymbol interns value. It never fails.
func (c *String) ToSymbol(value string) (Symbol, error) {
	return Intern(value), nil
}

// ToConstant resolves a qualified name such as "net::http::Client" against
// the configured root namespace. A leading separator is allowed.
func (c *String) ToConstant(value string) (any, error) {
	if c.root == nil {
		return nil, c.unsupported(value, TargetConstant, errNoRoot)
	}

	names := splitQualified(value, c.separator)
	if len(names) == 0 {
		return nil, c.unsupported(value, TargetConstant, ErrEmptyName)
	}

	var current any = c.root
	for _, name := range names {
		if name == "" {
			return nil, c.unsupported(value, TargetConstant, ErrEmptyName)
		}
		ns, ok := current.(Namespace)
		if !ok {
			return nil, c.unsupported(value, TargetConstant, ErrNotNamespace)
		}
		current, ok = ns.Lookup(name)
		if !ok {
			return nil, c.unsupported(value, TargetConstant, errNotFound)
		}
	}
	return current, nil
}

// Coerce converts value to target and returns the result as any.
func (c *String) Coerce(value string, target Target) (any, error) {
	switch target {
	case TargetInteger:
		return c.ToInteger(value)
	case TargetFloat:
		return c.ToFloat(value)
	case TargetDecimal:
		return c.ToDecimal(value)
	case TargetBoolean:
		return c.ToBoolean(value)
	case TargetTime:
		return c.ToTime(value)
	case TargetDate:
		return c.ToDate(value)
	case TargetDateTime:
		return c.ToDateTime(value)
	case TargetSymbol:
		return c.ToSymbol(value)
	case TargetConstant:
		return c.ToConstant(value)
	default:
		return nil, c.unsupported(value, target, errUnknownTarget)
	}
}

func (c *String) parseTime(value string) (time.Time, error) {
	return dateparse.ParseIn(value, c.location, dateparse.PreferMonthFirst(!c.dayFirst))
}

// unsupported logs cause and returns the uniform coercion error. cause is
// never exposed to callers.
func (c *String) unsupported(value string, target Target, cause error) error {
	c.logger.Debug().
		Str("value", value).
		Str("target", string(target)).
		AnErr("cause", cause).
		Msg("unsupported coercion")
	return &UnsupportedCoercionError{Value: value, Target: target}
}

// truncateInt64 drops the fractional part of d. Exponents are checked
// before rescaling so that literals like "1e999999999" stay cheap.
func truncateInt64(d decimal.Decimal) (int64, bool) {
	if d.IsZero() {
		return 0, true
	}

	exp := d.Exponent()
	if exp > maxInt64Digits {
		return 0, false
	}
	if exp < 0 {
		digits := len(new(big.Int).Abs(d.Coefficient()).String())
		if int64(-exp) > int64(digits) {
			return 0, true
		}
	}

	n := d.Truncate(0).BigInt()
	if !n.IsInt64() {
		return 0, false
	}
	return n.Int64(), true
}

// parseDecimal fails for exponents outside int32, which decimal.Decimal
// cannot represent.
func parseDecimal(value string) (decimal.Decimal, error) {
	literal, ok := matchNumeric(value)
	if !ok {
		return decimal.Decimal{}, errNotNumeric
	}
	return decimal.NewFromString(literal)
}
