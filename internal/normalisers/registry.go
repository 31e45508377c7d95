package normalisers

import (
	"sort"
	"strings"

	"github.com/custodia-labs/eredita-cli/internal/core/ports/driven"
	"github.com/custodia-labs/eredita-cli/internal/logger"
)

// Ensure Registry implements the interface.
var _ driven.NormaliserRegistry = (*Registry)(nil)

// Registry maps file extensions to normalisers. Registration order wins
// on conflict: the first normaliser claiming an extension keeps it.
type Registry struct {
	byExt map[string]driven.Normaliser
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byExt: make(map[string]driven.Normaliser)}
}

// Register adds a normaliser for every extension it declares.
func (r *Registry) Register(n driven.Normaliser) {
	for _, ext := range n.Extensions() {
		ext = strings.ToLower(ext)
		if _, taken := r.byExt[ext]; taken {
			logger.Warn("Extension %s already registered, keeping first", ext)
			continue
		}
		r.byExt[ext] = n
	}
}

// ForExtension returns the normaliser for the lowercase extension.
func (r *Registry) ForExtension(ext string) (driven.Normaliser, bool) {
	n, ok := r.byExt[strings.ToLower(ext)]
	return n, ok
}

// Extensions returns all registered extensions, sorted.
func (r *Registry) Extensions() []string {
	exts := make([]string, 0, len(r.byExt))
	for ext := range r.byExt {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}
