package sourceenv

import (
	"context"
	"os"
	"strings"

	"github.com/Azhovan/coercible"
	"github.com/Azhovan/coercible/internal/normalize"
)

// Options configures an environment source.
type Options struct {
	// Prefix selects variables such as COERCE_TIME__LOCATION and is removed
	// before the rest becomes a key. Empty reads every variable, which is
	// only useful with a non-strict Loader.
	Prefix string

	// CaseSensitive requires the prefix to match exactly. Keys are lower-cased
	// either way.
	CaseSensitive bool
}

type envSource struct {
	opts Options
}

// New returns a source reading the process environment on each Load.
func New(opts Options) coercible.Source {
	return &envSource{opts: opts}
}

// Load returns every matching variable as a string value. Lists such as
// boolean.truthy are split on commas when bound.
func (e *envSource) Load(ctx context.Context) (map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := make(map[string]any)

	for _, env := range os.Environ() {
		key, value, ok := strings.Cut(env, "=")
		if !ok {
			continue
		}

		if e.opts.Prefix != "" {
			var hasPrefix bool
			if e.opts.CaseSensitive {
				hasPrefix = strings.HasPrefix(key, e.opts.Prefix)
			} else {
				hasPrefix = strings.HasPrefix(strings.ToUpper(key), strings.ToUpper(e.opts.Prefix))
			}

			if !hasPrefix {
				continue
			}
			key = key[len(e.opts.Prefix):]
		}

		if key == "" {
			continue
		}

		result[normalize.ToLowerDotPath(key)] = value
	}

	return result, nil
}

// Name returns "env" or "env:" followed by the prefix.
func (e *envSource) Name() string {
	if e.opts.Prefix == "" {
		return "env"
	}
	return "env:" + e.opts.Prefix
}
