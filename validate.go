package coercible

import (
	"fmt"
	"strings"
	"time"
)

// normalizeConfig fills zero-valued fields with defaults and validates the
// result. It returns a *ValidationError listing every problem found.
func normalizeConfig(cfg Config) (Config, error) {
	if cfg.BooleanMap.m == nil {
		cfg.BooleanMap = DefaultBooleanMap()
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.Separator == "" {
		cfg.Separator = DefaultSeparator
	}

	if errs := validateConfig(cfg); len(errs) > 0 {
		return Config{}, &ValidationError{FieldErrors: errs}
	}
	return cfg, nil
}

// validateConfig checks a normalized config.
func validateConfig(cfg Config) []FieldError {
	var errors []FieldError

	if cfg.BooleanMap.Len() == 0 {
		errors = append(errors, FieldError{
			FieldPath: "BooleanMap",
			Code:      ErrCodeRequired,
			Message:   "at least one boolean literal is required",
		})
	}

	for k := range cfg.BooleanMap.m {
		if k != strings.ToLower(k) {
			errors = append(errors, FieldError{
				FieldPath: "BooleanMap",
				Code:      ErrCodeLowercase,
				Message:   fmt.Sprintf("literal %q must be lower-case", k),
			})
		}
	}

	if strings.TrimSpace(cfg.Separator) != cfg.Separator {
		errors = append(errors, FieldError{
			FieldPath: KeySeparator,
			Code:      ErrCodeInvalidValue,
			Message:   fmt.Sprintf("separator %q must not have surrounding whitespace", cfg.Separator),
		})
	}

	return errors
}
