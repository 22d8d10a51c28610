package property

import (
	"fmt"
	"strings"
)

const (
	// Identity is the name of the 20-wide one-hot property.
	Identity = "identity"

	// All is the name of the concatenation of every scalar property.
	All = "all"
)

// Registry is an immutable, name-indexed set of properties.
type Registry struct {
	order  []*Property
	byName map[string]*Property
}

// Default is built once at start up and shared by every encoder.
var Default = mustDefault()

// NewRegistry indexes props by lower-cased name. Names must be unique.
func NewRegistry(props ...*Property) (*Registry, error) {
	r := &Registry{byName: make(map[string]*Property, len(props))}
	for _, p := range props {
		key := strings.ToLower(p.name)
		if _, dup := r.byName[key]; dup {
			return nil, fmt.Errorf("duplicate property %q: %w", p.name, ErrInvalidTable)
		}
		r.byName[key] = p
		r.order = append(r.order, p)
	}
	return r, nil
}

// Lookup finds a property by name, ignoring case.
func (r *Registry) Lookup(name string) (*Property, error) {
	p, ok := r.byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownProperty)
	}
	return p, nil
}

// Properties in registration order.
func (r *Registry) Properties() []*Property {
	return append([]*Property(nil), r.order...)
}

// Names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	for i, p := range r.order {
		names[i] = p.name
	}
	return names
}

func mustDefault() *Registry {
	scales := []struct {
		name string
		raw  map[byte]float64
	}{
		{"hydropathy", kyteDoolittle},
		{"hydrophilicity", hoppWoods},
		{"polarity", granthamPolarity},
		{"bulkiness", zimmermanBulkiness},
		{"isoelectric", isoelectricPoint},
		{"weight", molecularWeight},
	}

	var props, scalars []*Property
	for _, s := range scales {
		p, err := NewScalar(s.name, minMax(s.raw))
		if err != nil {
			panic(err)
		}
		scalars = append(scalars, p)
		props = append(props, p)
	}

	identity, err := NewOneHot(Identity, Canonical)
	if err != nil {
		panic(err)
	}
	all, err := NewConcatenated(All, scalars...)
	if err != nil {
		panic(err)
	}
	props = append(props, identity, all)

	r, err := NewRegistry(props...)
	if err != nil {
		panic(err)
	}
	return r
}
