package postprocessors

import (
	"github.com/custodia-labs/eredita-cli/internal/core/ports/driven"
	"github.com/custodia-labs/eredita-cli/internal/postprocessors/cleaner"
)

// RegisterDefaults registers all built-in processors with the registry.
// Call this during application initialisation to enable standard processors.
func RegisterDefaults(r *Registry) {
	r.Register("cleaner", buildCleaner)
}

// buildCleaner creates a cleaner processor from generic config.
// Supported config keys:
//   - max_chars (int): Upper bound on text length per document (default: 80000)
func buildCleaner(cfg map[string]any) (driven.TextProcessor, error) {
	var opts []cleaner.Option

	if cfg != nil {
		if max := getIntFromConfig(cfg, "max_chars"); max > 0 {
			opts = append(opts, cleaner.WithMaxChars(max))
		}
	}

	return cleaner.New(opts...), nil
}

// getIntFromConfig safely extracts an int from generic config map.
// Handles int, int64, and float64 types that may come from TOML/JSON parsing.
func getIntFromConfig(cfg map[string]any, key string) int {
	val, ok := cfg[key]
	if !ok {
		return 0
	}

	switch v := val.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}
