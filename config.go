package coercible

import (
	"time"

	"github.com/rs/zerolog"
)

// Config holds everything a String coercer needs. It is copied at
// construction; later changes to a Config do not affect existing coercers.
type Config struct {
	// BooleanMap lists the literals accepted by ToBoolean.
	BooleanMap BooleanMap

	// Location is used to read date/time strings without a zone, and is the
	// zone ToTime converts into. Nil means UTC.
	Location *time.Location

	// DayFirst reads ambiguous dates such as 02/03/2024 as day/month.
	// By default they are month/day.
	DayFirst bool

	// Separator splits qualified names given to ToConstant. Empty means "::".
	Separator string

	// Root is the namespace ToConstant resolves from. Nil disables ToConstant.
	Root Namespace

	// Logger receives debug events for failed coercions. Nil means no logging.
	Logger *zerolog.Logger
}

// DefaultConfig returns the default boolean literals, UTC and "::" as the
// name separator. It is what NewString makes of a zero Config.
func DefaultConfig() Config {
	return Config{
		BooleanMap: DefaultBooleanMap(),
		Location:   time.UTC,
		Separator:  DefaultSeparator,
	}
}
