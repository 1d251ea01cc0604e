package normalisers

import (
	"github.com/nautilus-labs/voxcart/internal/core/domain"
	"github.com/nautilus-labs/voxcart/internal/core/ports/driven"
)

// Registry maps file kinds to their normalisers.
type Registry struct {
	byKind map[domain.FileKind]driven.Normaliser
}

// NewRegistry creates a registry holding the given normalisers.
// Later registrations for the same kind win.
func NewRegistry(norms ...driven.Normaliser) *Registry {
	r := &Registry{byKind: make(map[domain.FileKind]driven.Normaliser, len(norms))}
	for _, n := range norms {
		r.byKind[n.Kind()] = n
	}
	return r
}

// ForKind returns the normaliser for the given kind.
// Returns domain.ErrUnsupportedKind when none is registered.
func (r *Registry) ForKind(kind domain.FileKind) (driven.Normaliser, error) {
	n, ok := r.byKind[kind]
	if !ok {
		return nil, domain.ErrUnsupportedKind
	}
	return n, nil
}
