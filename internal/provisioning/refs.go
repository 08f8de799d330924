package provisioning

import (
	"errors"
	"fmt"
)

// ErrMissingRef is returned by Refs.Require for names not present.
var ErrMissingRef = errors.New("missing resource ref")

// Refs maps step names to the refs they produced, in completion order.
// Steps receive a read-only view restricted to their declared dependencies;
// only the orchestrator adds entries.
type Refs struct {
	refs  map[string]ResourceRef
	order []string
}

// NewRefs returns an empty Refs.
func NewRefs() Refs {
	return Refs{refs: make(map[string]ResourceRef)}
}

// Get returns the ref stored under name.
func (r Refs) Get(name string) (ResourceRef, bool) {
	ref, ok := r.refs[name]
	return ref, ok
}

// Require returns the ref stored under name or an error naming it.
func (r Refs) Require(name string) (ResourceRef, error) {
	ref, ok := r.refs[name]
	if !ok {
		return ResourceRef{}, fmt.Errorf("%w: %s", ErrMissingRef, name)
	}
	return ref, nil
}

// Len returns the number of refs.
func (r Refs) Len() int {
	return len(r.order)
}

// Names returns the step names in the order their refs were stored.
func (r Refs) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// All returns a copy of the underlying map.
func (r Refs) All() map[string]ResourceRef {
	out := make(map[string]ResourceRef, len(r.refs))
	for k, v := range r.refs {
		out[k] = v
	}
	return out
}

func (r *Refs) set(name string, ref ResourceRef) {
	if r.refs == nil {
		r.refs = make(map[string]ResourceRef)
	}
	if _, exists := r.refs[name]; !exists {
		r.order = append(r.order, name)
	}
	r.refs[name] = ref
}

// view returns an independent copy restricted to names.
func (r Refs) view(names []string) Refs {
	v := NewRefs()
	for _, name := range names {
		if ref, ok := r.refs[name]; ok {
			v.set(name, ref)
		}
	}
	return v
}
