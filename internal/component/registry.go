package component

import (
	"github.com/thoreinstein/themesnap/internal/errors"
)

// Registry holds component specs in registration order.
type Registry struct {
	specs []*Spec
	index map[string]int
}

// NewRegistry creates a new empty Registry.
func NewRegistry() *Registry {
	return &Registry{index: make(map[string]int)}
}

// Register adds a component. Returns an error if it is invalid or its ID is
// already registered.
func (r *Registry) Register(s *Spec) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if _, exists := r.index[s.ID]; exists {
		return errors.Wrapf(ErrDuplicateComponent, "%s", s.ID)
	}
	r.index[s.ID] = len(r.specs)
	r.specs = append(r.specs, s)
	return nil
}

// Get returns the component with the given ID.
func (r *Registry) Get(id string) (*Spec, error) {
	i, ok := r.index[id]
	if !ok {
		return nil, errors.Wrapf(errors.ErrNotFound, "component %q", id)
	}
	return r.specs[i], nil
}

// All returns every spec in registration order.
func (r *Registry) All() []*Spec {
	out := make([]*Spec, len(r.specs))
	copy(out, r.specs)
	return out
}

// IDs returns every ID in registration order.
func (r *Registry) IDs() []string {
	ids := make([]string, len(r.specs))
	for i, s := range r.specs {
		ids[i] = s.ID
	}
	return ids
}

// Len returns the number of registered specs.
func (r *Registry) Len() int {
	return len(r.specs)
}
