// Package property holds the residue property tables used to turn an aligned
// sequence into numbers.
//
// A Property is one of three variants: Scalar (one value per position), OneHot
// (a fixed-width block per position) or Concatenated (several Scalar properties
// laid out property-major). Each variant declares its per-position block width;
// callers must use Width rather than assume one column per position.
//
// Properties are immutable once built, so a single Registry is shared by
// reference between every encoder without locking.
package property

import (
	"fmt"
	"math"
	"strings"
)

// Canonical is the set of 20 canonical residues, in table order.
const Canonical = "ARNDCQEGHILKMFPSTWYV"

// Kind tags the variant of a Property.
type Kind int

const (
	// Scalar properties map each residue to one value.
	Scalar Kind = iota

	// OneHot properties map each residue to a fixed-width block.
	OneHot

	// Concatenated properties are an ordered list of Scalar sub-properties.
	Concatenated
)

func (k Kind) String() string {
	switch k {
	case Scalar:
		return "scalar"
	case OneHot:
		return "one-hot"
	case Concatenated:
		return "concatenated"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Property is an immutable residue -> numeric table.
type Property struct {
	name  string
	kind  Kind
	width int

	// residue code (upper case) -> block of width values. nil for Concatenated
	blocks map[byte][]float64

	// mean of the 20 canonical blocks
	mean []float64

	// Concatenated only
	subs []*Property
}

// NewScalar builds a Scalar property from values for every canonical residue.
// B, Z and X are derived: B = mean(D, N), Z = mean(E, Q), X = mean of all 20.
func NewScalar(name string, values map[byte]float64) (*Property, error) {
	blocks := make(map[byte][]float64, len(Canonical)+3)
	for i := 0; i < len(Canonical); i++ {
		r := Canonical[i]
		v, ok := values[r]
		if !ok {
			return nil, fmt.Errorf("%s: missing residue %c: %w", name, r, ErrInvalidTable)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%s: residue %c is not finite: %w", name, r, ErrInvalidTable)
		}
		blocks[r] = []float64{v}
	}
	return newBlockProperty(name, Scalar, 1, blocks), nil
}

// NewOneHot builds an identity encoding over alphabet: residue alphabet[i] maps
// to the unit block with a 1 at i. Ambiguous codes and the mean are derived from
// the canonical residues the same way as for Scalar properties.
func NewOneHot(name, alphabet string) (*Property, error) {
	alphabet = strings.ToUpper(alphabet)
	for i := 0; i < len(Canonical); i++ {
		if strings.IndexByte(alphabet, Canonical[i]) < 0 {
			return nil, fmt.Errorf("%s: alphabet lacks residue %c: %w", name, Canonical[i], ErrInvalidTable)
		}
	}

	width := len(alphabet)
	blocks := make(map[byte][]float64, width+3)
	for i := 0; i < width; i++ {
		b := make([]float64, width)
		b[i] = 1
		blocks[alphabet[i]] = b
	}
	return newBlockProperty(name, OneHot, width, blocks), nil
}

// newBlockProperty fills in B, Z, X and the canonical mean.
func newBlockProperty(name string, kind Kind, width int, blocks map[byte][]float64) *Property {
	mean := make([]float64, width)
	for k := 0; k < width; k++ {
		var sum float64
		for i := 0; i < len(Canonical); i++ {
			sum += blocks[Canonical[i]][k]
		}
		mean[k] = sum / float64(len(Canonical))
	}

	pair := func(a, b byte) []float64 {
		out := make([]float64, width)
		for k := range out {
			out[k] = (blocks[a][k] + blocks[b][k]) / 2
		}
		return out
	}
	blocks['B'] = pair('D', 'N')
	blocks['Z'] = pair('E', 'Q')
	blocks['X'] = append([]float64(nil), mean...)

	return &Property{
		name:   name,
		kind:   kind,
		width:  width,
		blocks: blocks,
		mean:   mean,
	}
}

// NewConcatenated builds a property-major concatenation of Scalar properties.
// The order of subs is fixed and defines the column layout of encodings.
func NewConcatenated(name string, subs ...*Property) (*Property, error) {
	if len(subs) == 0 {
		return nil, fmt.Errorf("%s: no sub-properties: %w", name, ErrInvalidTable)
	}
	mean := make([]float64, len(subs))
	for i, s := range subs {
		if s.kind != Scalar {
			return nil, fmt.Errorf("%s: sub-property %s is %s, not scalar: %w", name, s.name, s.kind, ErrUnsupportedOperation)
		}
		mean[i] = s.mean[0]
	}

	return &Property{
		name:  name,
		kind:  Concatenated,
		width: len(subs),
		mean:  mean,
		subs:  append([]*Property(nil), subs...),
	}, nil
}

// Name of the property, as registered.
func (p *Property) Name() string { return p.name }

// Kind is the variant tag.
func (p *Property) Kind() Kind { return p.kind }

// Width is the declared number of values per sequence position.
func (p *Property) Width() int { return p.width }

// Subproperties returns the ordered sub-properties of a Concatenated property.
func (p *Property) Subproperties() []*Property {
	return append([]*Property(nil), p.subs...)
}

// Value returns the scalar value of a residue. Lookup is case-insensitive.
func (p *Property) Value(residue byte) (float64, error) {
	if p.kind != Scalar {
		return 0, fmt.Errorf("%s: Value on %s property: %w", p.name, p.kind, ErrUnsupportedOperation)
	}
	b, err := p.lookup(residue)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// Block returns a copy of the per-position block for a residue. For a
// Concatenated property it is the sub-properties' values in declared order.
func (p *Property) Block(residue byte) ([]float64, error) {
	if p.kind == Concatenated {
		out := make([]float64, len(p.subs))
		for i, s := range p.subs {
			v, err := s.Value(residue)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	}

	b, err := p.lookup(residue)
	if err != nil {
		return nil, err
	}
	return append([]float64(nil), b...), nil
}

// Mean is the arithmetic mean of the 20 canonical values of a Scalar property.
func (p *Property) Mean() (float64, error) {
	if p.kind != Scalar {
		return 0, fmt.Errorf("%s: Mean on %s property: %w", p.name, p.kind, ErrUnsupportedOperation)
	}
	return p.mean[0], nil
}

// MeanBlock is the canonical mean as a block of Width values.
func (p *Property) MeanBlock() []float64 {
	return append([]float64(nil), p.mean...)
}

// Residues lists the residue codes with an entry in the table, sorted.
func (p *Property) Residues() []byte {
	if p.kind == Concatenated {
		return p.subs[0].Residues()
	}
	var out []byte
	for c := byte('A'); c <= 'Z'; c++ {
		if _, ok := p.blocks[c]; ok {
			out = append(out, c)
		}
	}
	return out
}

func (p *Property) lookup(residue byte) ([]float64, error) {
	if 'a' <= residue && residue <= 'z' {
		residue -= 'a' - 'A'
	}
	b, ok := p.blocks[residue]
	if !ok {
		return nil, fmt.Errorf("%s: %q: %w", p.name, residue, ErrUnknownResidue)
	}
	return b, nil
}
