package coercible

import "sync"

// Provenance contains source information for loaded configuration keys.
type Provenance struct {
	Fields []FieldProvenance
}

// FieldProvenance describes where a key's value came from.
type FieldProvenance struct {
	KeyPath    string // Normalized key (e.g., "time.location")
	SourceName string // Source identifier (e.g., "env", "file:coerce.yaml")
}

// Source returns the source that set key, if any.
func (p *Provenance) Source(key string) (string, bool) {
	if p == nil {
		return "", false
	}
	for _, f := range p.Fields {
		if f.KeyPath == key {
			return f.SourceName, true
		}
	}
	return "", false
}

var provenanceStore sync.Map

// GetProvenance returns provenance metadata for a config returned by Loader.Load.
// Thread-safe.
func GetProvenance(cfg *Config) (*Provenance, bool) {
	if cfg == nil {
		return nil, false
	}

	value, ok := provenanceStore.Load(cfg)
	if !ok {
		return nil, false
	}

	prov, ok := value.(*Provenance)
	return prov, ok
}

func storeProvenance(cfg *Config, prov *Provenance) {
	if cfg != nil && prov != nil {
		provenanceStore.Store(cfg, prov)
	}
}
