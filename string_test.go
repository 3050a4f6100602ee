package coercible

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireUnsupported(t *testing.T, err error, value string, target Target) {
	t.Helper()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedCoercion)

	var uce *UnsupportedCoercionError
	require.ErrorAs(t, err, &uce)
	assert.Equal(t, value, uce.Value)
	assert.Equal(t, target, uce.Target)
}

func TestString_ToInteger(t *testing.T) {
	c := NewDefault()

	tests := []struct {
		input string
		want  int64
	}{
		{"1", 1},
		{"0", 0},
		{"-1", -1},
		{"+1", 1},
		{"-0", 0},
		{"1e3", 1000},
		{"1E3", 1000},
		{"1.5e1", 15},
		{"1.9", 1},
		{"-1.9", -1},
		{".5", 0},
		{".1e+1", 1},
		{"9223372036854775807", math.MaxInt64},
		{"-9223372036854775808", math.MinInt64},
		{"9.223372036854775807e18", math.MaxInt64},
		{"1e-999999999", 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := c.ToInteger(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestString_ToInteger_Unsupported(t *testing.T) {
	c := NewDefault()

	for _, input := range []string{
		"abc",
		"",
		" 1",
		"1 ",
		"1,000",
		"1_000",
		"0x10",
		"007",
		"1.",
		"-.1",
		"9223372036854775808",
		"-9223372036854775809",
		"1e19",
		"1e999999999",
	} {
		t.Run(input, func(t *testing.T) {
			_, err := c.ToInteger(input)
			requireUnsupported(t, err, input, TargetInteger)
		})
	}
}

// numericCases maps numeric literals to their exact decimal value.
var numericCases = map[string]string{
	"1":       "1",
	"+1":      "1",
	"-1":      "-1",
	"0":       "0",
	"1.0":     "1",
	"1.0e+1":  "10",
	"1.0e-1":  "0.1",
	"1.0E+1":  "10",
	"1.0E-1":  "0.1",
	"+1.0":    "1",
	"+1.0e+1": "10",
	"+1.0e-1": "0.1",
	"+1.0E+1": "10",
	"+1.0E-1": "0.1",
	"-1.0":    "-1",
	"-1.0e+1": "-10",
	"-1.0e-1": "-0.1",
	"-1.0E+1": "-10",
	"-1.0E-1": "-0.1",
	".1":      "0.1",
	".1e+1":   "1",
	".1e-1":   "0.01",
	".1E+1":   "1",
	".1E-1":   "0.01",
	"1e3":     "1000",
	"0.1":     "0.1",
}

var nonNumericCases = []string{
	"",
	"non-decimal",
	".",
	"-.1",
	"+.1",
	"1.",
	"1.0e",
	"1e",
	"e1",
	"01",
	"1.0.0",
	" 1",
	"1 ",
	"1\n",
	"--1",
	"1e1.5",
	"Infinity",
	"NaN",
	"0x1p-2",
}

func TestString_ToDecimal(t *testing.T) {
	c := NewDefault()

	for input, want := range numericCases {
		t.Run(input, func(t *testing.T) {
			got, err := c.ToDecimal(input)
			require.NoError(t, err)
			expected := decimal.RequireFromString(want)
			assert.True(t, expected.Equal(got), "ToDecimal(%q) = %s, want %s", input, got, expected)
		})
	}
}

func TestString_ToDecimal_Exact(t *testing.T) {
	c := NewDefault()

	got, err := c.ToDecimal(".1e-1")
	require.NoError(t, err)
	assert.Equal(t, "0.01", got.String())

	// 0.1 + 0.2 is exactly 0.3 only without binary rounding.
	a, err := c.ToDecimal("0.1")
	require.NoError(t, err)
	b, err := c.ToDecimal("0.2")
	require.NoError(t, err)
	assert.True(t, a.Add(b).Equal(decimal.RequireFromString("0.3")))
}

func TestString_ToFloat(t *testing.T) {
	c := NewDefault()

	for input, want := range numericCases {
		t.Run(input, func(t *testing.T) {
			got, err := c.ToFloat(input)
			require.NoError(t, err)
			expected := decimal.RequireFromString(want).InexactFloat64()
			assert.InDelta(t, expected, got, 1e-12)
		})
	}

	got, err := c.ToFloat("+1.0e+1")
	require.NoError(t, err)
	assert.Equal(t, 10.0, got)
}

func TestString_ToFloat_OutOfRange(t *testing.T) {
	c := NewDefault()

	f, err := c.ToFloat("1e400")
	require.NoError(t, err)
	assert.True(t, math.IsInf(f, 1), "got %v", f)

	f, err = c.ToFloat("-1e400")
	require.NoError(t, err)
	assert.True(t, math.IsInf(f, -1), "got %v", f)

	f, err = c.ToFloat(".1e-400")
	require.NoError(t, err)
	assert.Zero(t, f)

	f, err = c.ToFloat("1e-3000000000")
	require.NoError(t, err)
	assert.Zero(t, f)

	d, err := c.ToDecimal("1e400")
	require.NoError(t, err)
	assert.Equal(t, int32(400), d.Exponent())
}

func TestString_ToDecimal_ExponentLimit(t *testing.T) {
	c := NewDefault()

	for _, input := range []string{"1e3000000000", "1e-3000000000"} {
		require.True(t, IsNumeric(input))
		_, err := c.ToDecimal(input)
		requireUnsupported(t, err, input, TargetDecimal)
	}
}

func TestString_Numeric_Unsupported(t *testing.T) {
	c := NewDefault()

	for _, input := range nonNumericCases {
		t.Run(input, func(t *testing.T) {
			_, err := c.ToFloat(input)
			requireUnsupported(t, err, input, TargetFloat)

			_, err = c.ToDecimal(input)
			requireUnsupported(t, err, input, TargetDecimal)
		})
	}
}

func TestString_ToBoolean(t *testing.T) {
	c := NewDefault()

	tests := map[string]bool{
		"T":     true,
		"F":     false,
		"true":  true,
		"True":  true,
		"TRUE":  true,
		"yes":   true,
		"Y":     true,
		"on":    true,
		"1":     true,
		"false": false,
		"OFF":   false,
		"No":    false,
		"0":     false,
	}

	for input, want := range tests {
		t.Run(input, func(t *testing.T) {
			got, err := c.ToBoolean(input)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestString_ToBoolean_UpperCaseRoundTrip(t *testing.T) {
	c := NewDefault()
	m := DefaultBooleanMap()

	for _, want := range []bool{true, false} {
		for _, literal := range m.Literals(want) {
			got, err := c.ToBoolean(strings.ToUpper(literal))
			require.NoError(t, err, literal)
			assert.Equal(t, want, got, literal)
		}
	}
}

func TestString_ToBoolean_Unsupported(t *testing.T) {
	c := NewDefault()

	for _, input := range []string{"maybe", "", " true", "true ", "tru", "yess", "2", "-1", "nope"} {
		t.Run(input, func(t *testing.T) {
			_, err := c.ToBoolean(input)
			requireUnsupported(t, err, input, TargetBoolean)
		})
	}
}

func TestString_ToBoolean_CustomMap(t *testing.T) {
	m, err := BooleanMapFromLiterals([]string{"ja"}, []string{"nein"})
	require.NoError(t, err)

	c, err := NewString(Config{BooleanMap: m})
	require.NoError(t, err)

	got, err := c.ToBoolean("JA")
	require.NoError(t, err)
	assert.True(t, got)

	got, err = c.ToBoolean("Nein")
	require.NoError(t, err)
	assert.False(t, got)

	_, err = c.ToBoolean("yes")
	requireUnsupported(t, err, "yes", TargetBoolean)
}

func TestString_ToTime(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	c, err := NewString(Config{Location: berlin})
	require.NoError(t, err)

	t.Run("zone-less input read in location", func(t *testing.T) {
		got, err := c.ToTime("2025-11-30 12:00:00")
		require.NoError(t, err)
		assert.True(t, got.Equal(time.Date(2025, 11, 30, 12, 0, 0, 0, berlin)), "got %v", got)
		assert.Equal(t, berlin, got.Location())
	})

	t.Run("explicit offset converted to location", func(t *testing.T) {
		got, err := c.ToTime("2025-11-30T12:00:00Z")
		require.NoError(t, err)
		assert.True(t, got.Equal(time.Date(2025, 11, 30, 12, 0, 0, 0, time.UTC)))
		assert.Equal(t, berlin, got.Location())
		assert.Equal(t, 13, got.Hour())
	})
}

func TestString_ToDateTime(t *testing.T) {
	c := NewDefault()

	tests := []struct {
		name   string
		input  string
		want   time.Time
		offset int
	}{
		{
			name:  "RFC3339",
			input: "2025-11-30T12:00:00Z",
			want:  time.Date(2025, 11, 30, 12, 0, 0, 0, time.UTC),
		},
		{
			name:  "RFC3339Nano",
			input: "2025-11-30T12:00:00.123456789Z",
			want:  time.Date(2025, 11, 30, 12, 0, 0, 123456789, time.UTC),
		},
		{
			name:   "RFC3339 with offset",
			input:  "2025-11-30T12:00:00+05:30",
			want:   time.Date(2025, 11, 30, 6, 30, 0, 0, time.UTC),
			offset: 5*3600 + 30*60,
		},
		{
			name:  "date and time without zone",
			input: "2025-11-30 12:00:00",
			want:  time.Date(2025, 11, 30, 12, 0, 0, 0, time.UTC),
		},
		{
			name:  "date only",
			input: "2025-11-30",
			want:  time.Date(2025, 11, 30, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.ToDateTime(tt.input)
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want), "ToDateTime(%q) = %v, want %v", tt.input, got, tt.want)
			_, offset := got.Zone()
			assert.Equal(t, tt.offset, offset)
		})
	}
}

func TestString_ToDate(t *testing.T) {
	c := NewDefault()

	got, err := c.ToDate("2025-11-30")
	require.NoError(t, err)
	assert.Equal(t, Date{Year: 2025, Month: time.November, Day: 30}, got)
	assert.Equal(t, "2025-11-30", got.String())

	// The date is the one written, not the UTC date of the instant.
	got, err = c.ToDate("2025-11-30T23:30:00-05:00")
	require.NoError(t, err)
	assert.Equal(t, Date{Year: 2025, Month: time.November, Day: 30}, got)
}

func TestString_AmbiguousDates(t *testing.T) {
	monthFirst := NewDefault()
	got, err := monthFirst.ToDate("02/03/2024")
	require.NoError(t, err)
	assert.Equal(t, Date{Year: 2024, Month: time.February, Day: 3}, got)

	dayFirst, err := NewString(Config{DayFirst: true})
	require.NoError(t, err)
	got, err = dayFirst.ToDate("02/03/2024")
	require.NoError(t, err)
	assert.Equal(t, Date{Year: 2024, Month: time.March, Day: 2}, got)
}

func TestString_Temporal_Unsupported(t *testing.T) {
	c := NewDefault()

	for _, input := range []string{"not a time", "2025-13-45", "yesterday-ish"} {
		t.Run(input, func(t *testing.T) {
			_, err := c.ToTime(input)
			requireUnsupported(t, err, input, TargetTime)

			_, err = c.ToDate(input)
			requireUnsupported(t, err, input, TargetDate)

			_, err = c.ToDateTime(input)
			requireUnsupported(t, err, input, TargetDateTime)
		})
	}
}

func TestString_ToSymbol(t *testing.T) {
	c := NewDefault()

	for _, input := range []string{"value", "", "with space", "ünïcode", "A::B"} {
		t.Run(input, func(t *testing.T) {
			got, err := c.ToSymbol(input)
			require.NoError(t, err)
			assert.Equal(t, input, got.String())

			again, err := c.ToSymbol(input)
			require.NoError(t, err)
			assert.True(t, got == again, "symbols with equal text must be identical")
		})
	}

	a, _ := c.ToSymbol("a")
	b, _ := c.ToSymbol("b")
	assert.False(t, a == b)
}

func TestString_ToConstant(t *testing.T) {
	root := NewRegistry("")
	require.NoError(t, root.Define("Net::HTTP::Client", "http-client"))
	require.NoError(t, root.Define("String", "string-type"))

	c, err := NewString(Config{Root: root})
	require.NoError(t, err)

	tests := []struct {
		input string
		want  any
	}{
		{"String", "string-type"},
		{"::String", "string-type"},
		{"Net::HTTP::Client", "http-client"},
		{"::Net::HTTP::Client", "http-client"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := c.ToConstant(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	got, err := c.ToConstant("Net::HTTP")
	require.NoError(t, err)
	_, isRegistry := got.(*Registry)
	assert.True(t, isRegistry, "intermediate names resolve to their namespace")

	for _, input := range []string{
		"",
		"::",
		"Missing",
		"Net::Missing",
		"Net::HTTP::Client::Extra",
		"Net::::HTTP",
		"Net::HTTP::",
		"net::http::client",
	} {
		t.Run("unsupported "+input, func(t *testing.T) {
			_, err := c.ToConstant(input)
			requireUnsupported(t, err, input, TargetConstant)
		})
	}
}

func TestString_ToConstant_NoRoot(t *testing.T) {
	_, err := NewDefault().ToConstant("String")
	requireUnsupported(t, err, "String", TargetConstant)
}

func TestString_ToConstant_CustomResolver(t *testing.T) {
	modules := map[string]any{
		"os": NamespaceFunc(func(name string) (any, bool) {
			if name == "Getenv" {
				return "os.Getenv", true
			}
			return nil, false
		}),
	}
	root := NamespaceFunc(func(name string) (any, bool) {
		v, ok := modules[name]
		return v, ok
	})

	c, err := NewString(Config{Root: root, Separator: "."})
	require.NoError(t, err)

	got, err := c.ToConstant("os.Getenv")
	require.NoError(t, err)
	assert.Equal(t, "os.Getenv", got)

	got, err = c.ToConstant(".os.Getenv")
	require.NoError(t, err)
	assert.Equal(t, "os.Getenv", got)

	_, err = c.ToConstant("os::Getenv")
	requireUnsupported(t, err, "os::Getenv", TargetConstant)
}

func TestString_Coerce(t *testing.T) {
	c := NewDefault()

	tests := []struct {
		target Target
		input  string
		want   any
	}{
		{TargetInteger, "1e3", int64(1000)},
		{TargetFloat, "2.5", 2.5},
		{TargetBoolean, "Y", true},
		{TargetDate, "2024-01-02", Date{Year: 2024, Month: time.January, Day: 2}},
		{TargetSymbol, "sym", Intern("sym")},
	}
	for _, tt := range tests {
		t.Run(string(tt.target), func(t *testing.T) {
			got, err := c.Coerce(tt.input, tt.target)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	got, err := c.Coerce("0.1", TargetDecimal)
	require.NoError(t, err)
	d, ok := got.(decimal.Decimal)
	require.True(t, ok)
	assert.Equal(t, "0.1", d.String())

	_, err = c.Coerce("1", Target("complex"))
	requireUnsupported(t, err, "1", Target("complex"))
}

func TestString_ErrorsHideCause(t *testing.T) {
	c := NewDefault()

	_, err := c.ToDateTime("2025-13-45")
	require.Error(t, err)

	var parseErr *time.ParseError
	assert.False(t, errors.As(err, &parseErr), "parser errors must not leak")
	assert.Nil(t, errors.Unwrap(err))
}

func TestString_LogsFailures(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)

	c, err := NewString(Config{Logger: &logger})
	require.NoError(t, err)

	_, err = c.ToBoolean("maybe")
	require.Error(t, err)

	_, err = c.ToFloat("1.0e")
	require.Error(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"value":"maybe"`)
	assert.Contains(t, lines[0], `"target":"boolean"`)
	assert.Contains(t, lines[0], `"message":"unsupported coercion"`)
	assert.Contains(t, lines[1], `"target":"float"`)
	assert.Contains(t, lines[1], `"cause":`)
}

func TestString_ConcurrentUse(t *testing.T) {
	c := NewDefault()

	var wg sync.WaitGroup
	errs := make(chan error, 64*4)
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if n, err := c.ToInteger("1e3"); err != nil || n != 1000 {
				errs <- errors.New("ToInteger mismatch")
			}
			if b, err := c.ToBoolean("YES"); err != nil || !b {
				errs <- errors.New("ToBoolean mismatch")
			}
			if _, err := c.ToDecimal("-.1"); err == nil {
				errs <- errors.New("ToDecimal accepted -.1")
			}
			if s, _ := c.ToSymbol("shared"); s.String() != "shared" {
				errs <- errors.New("ToSymbol mismatch")
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}
}

func TestString_BooleanMapIsolated(t *testing.T) {
	literals := map[string]bool{"si": true, "no": false}
	m, err := NewBooleanMap(literals)
	require.NoError(t, err)

	c, err := NewString(Config{BooleanMap: m})
	require.NoError(t, err)

	literals["oui"] = true
	_, err = c.ToBoolean("oui")
	requireUnsupported(t, err, "oui", TargetBoolean)
	assert.Equal(t, 2, c.BooleanMap().Len())
}
