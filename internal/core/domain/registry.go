package domain

import "go.trai.ch/zerr"

// Registry holds the full set of transforms requested for a build. It is
// constructed by the manifest loader and passed by reference into the
// scheduler; there is no process-wide registry.
//
// Output identities must be unique: Add rejects a second spec for an
// output path that is already registered.
type Registry struct {
	specs   []TransformSpec
	outputs map[string]struct{}
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		outputs: make(map[string]struct{}),
	}
}

// Add registers a transform spec. It returns ErrDuplicateOutput if a spec
// with the same output identity was already added.
func (r *Registry) Add(spec TransformSpec) error {
	if _, exists := r.outputs[spec.Output]; exists {
		return zerr.With(ErrDuplicateOutput, "output", spec.Output)
	}
	r.outputs[spec.Output] = struct{}{}
	r.specs = append(r.specs, spec)
	return nil
}

// Len returns the number of registered specs.
func (r *Registry) Len() int {
	return len(r.specs)
}

// Specs returns the registered specs in insertion order. The returned
// slice is shared; callers must not mutate it.
func (r *Registry) Specs() []TransformSpec {
	return r.specs
}

// BySource groups the registered specs by source identity, preserving
// insertion order within each group. The scheduler uses the grouping to
// load each distinct source exactly once.
func (r *Registry) BySource() map[string][]TransformSpec {
	groups := make(map[string][]TransformSpec)
	for _, spec := range r.specs {
		groups[spec.Source.ID] = append(groups[spec.Source.ID], spec)
	}
	return groups
}
