package coercible

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

// Configuration keys understood by Loader.
const (
	KeyBooleanTruthy = "boolean.truthy"
	KeyBooleanFalsy  = "boolean.falsy"
	KeyTimeLocation  = "time.location"
	KeyTimeDayFirst  = "time.day_first"
	KeySeparator     = "constant.separator"
)

// mergedEntry is a value after source merging, with the source that won.
type mergedEntry struct {
	value      any
	sourceName string
}

// bindState collects decoded values before they are applied to a Config.
// Boolean literals are gathered first because either list may be missing.
type bindState struct {
	cfg    *Config
	truthy []string
	falsy  []string
}

type binder func(st *bindState, value any) error

var errInvalidType = errors.New("invalid type")

var bindings = map[string]binder{
	KeyBooleanTruthy: func(st *bindState, value any) error {
		list, err := toStringList(value)
		st.truthy = list
		return err
	},
	KeyBooleanFalsy: func(st *bindState, value any) error {
		list, err := toStringList(value)
		st.falsy = list
		return err
	},
	KeyTimeLocation: func(st *bindState, value any) error {
		name, ok := value.(string)
		if !ok {
			return fmt.Errorf("%w: expected string, got %T", errInvalidType, value)
		}
		loc, err := time.LoadLocation(name)
		if err != nil {
			return fmt.Errorf("unknown location %q", name)
		}
		st.cfg.Location = loc
		return nil
	},
	KeyTimeDayFirst: func(st *bindState, value any) error {
		b, err := toBool(value)
		if err != nil {
			return err
		}
		st.cfg.DayFirst = b
		return nil
	},
	KeySeparator: func(st *bindState, value any) error {
		sep, ok := value.(string)
		if !ok {
			return fmt.Errorf("%w: expected string, got %T", errInvalidType, value)
		}
		st.cfg.Separator = sep
		return nil
	},
}

// bindConfig applies merged entries to cfg and records where each key came
// from. Keys without a binding are ignored here; strict mode rejects them earlier.
func bindConfig(cfg *Config, merged map[string]mergedEntry) ([]FieldProvenance, []FieldError) {
	st := &bindState{cfg: cfg}

	keys := make([]string, 0, len(merged))
	for key := range merged {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var fields []FieldProvenance
	var fieldErrors []FieldError
	for _, key := range keys {
		bind, ok := bindings[key]
		if !ok {
			continue
		}
		entry := merged[key]
		if err := bind(st, entry.value); err != nil {
			code := ErrCodeInvalidValue
			if errors.Is(err, errInvalidType) {
				code = ErrCodeInvalidType
			}
			fieldErrors = append(fieldErrors, FieldError{
				FieldPath: key,
				Code:      code,
				Message:   err.Error(),
			})
			continue
		}
		fields = append(fields, FieldProvenance{KeyPath: key, SourceName: entry.sourceName})
	}

	if st.truthy != nil || st.falsy != nil {
		fieldErrors = append(fieldErrors, bindLiterals(st)...)
	}

	return fields, fieldErrors
}

// bindLiterals combines the loaded literal lists with the ones already in
// the config. Errors name the key whose list has to change.
func bindLiterals(st *bindState) []FieldError {
	truthy, falsy := st.truthy, st.falsy
	if truthy == nil {
		truthy = st.cfg.BooleanMap.Literals(true)
	}
	if falsy == nil {
		falsy = st.cfg.BooleanMap.Literals(false)
	}

	var fieldErrors []FieldError
	if st.truthy != nil {
		fieldErrors = append(fieldErrors, lowercaseErrors(KeyBooleanTruthy, st.truthy)...)
	}
	if st.falsy != nil {
		fieldErrors = append(fieldErrors, lowercaseErrors(KeyBooleanFalsy, st.falsy)...)
	}
	if len(fieldErrors) > 0 {
		return fieldErrors
	}

	m, err := BooleanMapFromLiterals(truthy, falsy)
	if err != nil {
		// Conflicts are found while adding falsy literals, so they belong
		// to boolean.falsy unless only boolean.truthy was loaded.
		key := KeyBooleanFalsy
		if st.falsy == nil {
			key = KeyBooleanTruthy
		}
		var ve *ValidationError
		if !errors.As(err, &ve) {
			return []FieldError{{FieldPath: key, Code: ErrCodeInvalidValue, Message: err.Error()}}
		}
		for _, fe := range ve.FieldErrors {
			fe.FieldPath = key
			fieldErrors = append(fieldErrors, fe)
		}
		return fieldErrors
	}

	if m.Len() == 0 {
		return []FieldError{{
			FieldPath: KeyBooleanTruthy,
			Code:      ErrCodeRequired,
			Message:   "at least one boolean literal is required",
		}}
	}
	st.cfg.BooleanMap = m
	return nil
}

func lowercaseErrors(key string, literals []string) []FieldError {
	var fieldErrors []FieldError
	for _, s := range literals {
		if s != strings.ToLower(s) {
			fieldErrors = append(fieldErrors, FieldError{
				FieldPath: key,
				Code:      ErrCodeLowercase,
				Message:   fmt.Sprintf("literal %q must be lower-case", s),
			})
		}
	}
	return fieldErrors
}

// toStringList accepts a list of scalars (YAML/TOML/JSON arrays) or a
// comma-separated string (environment variables).
func toStringList(value any) ([]string, error) {
	switch v := value.(type) {
	case string:
		out := []string{}
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		return out, nil
	case []string:
		return v, nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			switch item.(type) {
			case map[string]any, []any:
				return nil, fmt.Errorf("%w: list items must be scalars, got %T", errInvalidType, item)
			}
			out = append(out, fmt.Sprint(item))
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: expected list or comma-separated string, got %T", errInvalidType, value)
	}
}

// toBool accepts native booleans and, for string sources, any default
// boolean literal.
func toBool(value any) (bool, error) {
	switch v := value.(type) {
	case bool:
		return v, nil
	case string:
		b, err := bootstrap.ToBoolean(v)
		if err != nil {
			return false, fmt.Errorf("%q is not a boolean literal", v)
		}
		return b, nil
	default:
		return false, fmt.Errorf("%w: expected boolean, got %T", errInvalidType, value)
	}
}

// bootstrap reads loader values that arrive as strings.
var bootstrap = NewDefault()
