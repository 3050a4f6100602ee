package sourcefile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/Azhovan/coercible"
	"github.com/Azhovan/coercible/internal/normalize"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Options configures a file source.
type Options struct {
	// Format is "yaml", "yml", "json" or "toml", in any case. Empty means the
	// format follows the file extension.
	Format string

	// Required makes a missing file an error. Otherwise it loads as no keys.
	Required bool
}

type decodeFunc func(data []byte, v any) error

var decoders = map[string]decodeFunc{
	"yaml": yaml.Unmarshal,
	"yml":  yaml.Unmarshal,
	"json": json.Unmarshal,
	"toml": toml.Unmarshal,
}

var extFormats = map[string]string{
	".yaml": "yaml",
	".yml":  "yaml",
	".json": "json",
	".toml": "toml",
}

type fileSource struct {
	path string
	opts Options
}

// New returns a source reading path.
func New(path string, opts Options) coercible.Source {
	return &fileSource{path: path, opts: opts}
}

// Load decodes the file and flattens nested tables into dot keys:
// a "time" table holding "location" becomes "time.location".
func (f *fileSource) Load(ctx context.Context) (map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(f.path)
	switch {
	case errors.Is(err, fs.ErrNotExist) && !f.opts.Required:
		return map[string]any{}, nil
	case errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("config file %s not found: %w", f.path, err)
	case err != nil:
		return nil, fmt.Errorf("read config file %s: %w", f.path, err)
	}

	format := strings.ToLower(f.opts.Format)
	if format == "" {
		format = extFormats[strings.ToLower(filepath.Ext(f.path))]
	}
	decode, ok := decoders[format]
	if !ok {
		return nil, fmt.Errorf("config file %s: unknown format %q (want yaml, json or toml)", f.path, format)
	}

	var raw map[string]any
	if err := decode(data, &raw); err != nil {
		return nil, fmt.Errorf("decode %s config file %s: %w", format, f.path, err)
	}

	result := make(map[string]any)
	flatten("", raw, result)
	return result, nil
}

// Name is "file:" followed by the file's base name.
func (f *fileSource) Name() string {
	return "file:" + filepath.Base(f.path)
}

// flatten lower-cases table keys. Lists are leaf values, since literal
// lists like boolean.truthy are bound whole.
func flatten(prefix string, value any, out map[string]any) {
	switch v := value.(type) {
	case map[string]any:
		for key, val := range v {
			flatten(normalize.ApplyPrefix(prefix, strings.ToLower(key)), val, out)
		}
	case map[any]any:
		for key, val := range v {
			if s, ok := key.(string); ok {
				flatten(normalize.ApplyPrefix(prefix, strings.ToLower(s)), val, out)
			}
		}
	default:
		if prefix != "" {
			out[prefix] = value
		}
	}
}
