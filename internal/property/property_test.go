package property

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scalars(t *testing.T) []*Property {
	t.Helper()
	var out []*Property
	for _, p := range Default.Properties() {
		if p.Kind() == Scalar {
			out = append(out, p)
		}
	}
	require.NotEmpty(t, out)
	return out
}

func TestScalar_CanonicalRange(t *testing.T) {
	for _, p := range scalars(t) {
		t.Run(p.Name(), func(t *testing.T) {
			var sum float64
			for i := 0; i < len(Canonical); i++ {
				v, err := p.Value(Canonical[i])
				require.NoError(t, err)
				assert.False(t, math.IsNaN(v) || math.IsInf(v, 0))
				assert.GreaterOrEqual(t, v, 0.0)
				assert.LessOrEqual(t, v, 1.0)
				sum += v
			}

			mean, err := p.Mean()
			require.NoError(t, err)
			assert.Equal(t, sum/20, mean)
		})
	}
}

func TestScalar_AmbiguousCodes(t *testing.T) {
	val := func(p *Property, r byte) float64 {
		v, err := p.Value(r)
		require.NoError(t, err)
		return v
	}

	for _, p := range scalars(t) {
		t.Run(p.Name(), func(t *testing.T) {
			mean, _ := p.Mean()
			assert.Equal(t, (val(p, 'D')+val(p, 'N'))/2, val(p, 'B'))
			assert.Equal(t, (val(p, 'E')+val(p, 'Q'))/2, val(p, 'Z'))
			assert.Equal(t, mean, val(p, 'X'))
		})
	}
}

func TestProperty_CaseInsensitive(t *testing.T) {
	p, err := Default.Lookup("Hydropathy")
	require.NoError(t, err)

	upper, err := p.Value('K')
	require.NoError(t, err)
	lower, err := p.Value('k')
	require.NoError(t, err)
	assert.Equal(t, upper, lower)
}

func TestProperty_UnknownResidue(t *testing.T) {
	p, _ := Default.Lookup("hydropathy")

	_, err := p.Value('J')
	assert.ErrorIs(t, err, ErrUnknownResidue)

	_, err = p.Block('*')
	assert.ErrorIs(t, err, ErrUnknownResidue)
}

func TestProperty_WrongVariantAccessor(t *testing.T) {
	tests := []struct {
		name string
		prop string
	}{
		{"one-hot value", Identity},
		{"concatenated value", All},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Default.Lookup(tt.prop)
			require.NoError(t, err)

			_, err = p.Value('A')
			assert.ErrorIs(t, err, ErrUnsupportedOperation)

			_, err = p.Mean()
			assert.ErrorIs(t, err, ErrUnsupportedOperation)
		})
	}
}

func TestOneHot_Identity(t *testing.T) {
	p, err := Default.Lookup(Identity)
	require.NoError(t, err)
	assert.Equal(t, 20, p.Width())

	for i := 0; i < len(Canonical); i++ {
		b, err := p.Block(Canonical[i])
		require.NoError(t, err)
		require.Len(t, b, 20)
		for k, v := range b {
			if k == i {
				assert.Equal(t, 1.0, v)
			} else {
				assert.Equal(t, 0.0, v)
			}
		}
	}

	for _, v := range p.MeanBlock() {
		assert.Equal(t, 0.05, v)
	}
}

func TestConcatenated_Layout(t *testing.T) {
	p, err := Default.Lookup(All)
	require.NoError(t, err)

	subs := p.Subproperties()
	require.Len(t, subs, p.Width())

	b, err := p.Block('W')
	require.NoError(t, err)
	for i, s := range subs {
		v, _ := s.Value('W')
		assert.Equal(t, v, b[i])
	}
}

func TestNewConcatenated_RejectsNonScalar(t *testing.T) {
	id, _ := Default.Lookup(Identity)
	_, err := NewConcatenated("bad", id)
	assert.ErrorIs(t, err, ErrUnsupportedOperation)
}

func TestNewScalar_MissingResidue(t *testing.T) {
	_, err := NewScalar("partial", map[byte]float64{'A': 0.5})
	assert.ErrorIs(t, err, ErrInvalidTable)
}

func TestRegistry_Lookup(t *testing.T) {
	_, err := Default.Lookup("nope")
	assert.ErrorIs(t, err, ErrUnknownProperty)

	names := Default.Names()
	assert.Contains(t, names, Identity)
	assert.Contains(t, names, All)

	p, _ := Default.Lookup("hydropathy")
	_, err = NewRegistry(p, p)
	assert.ErrorIs(t, err, ErrInvalidTable)
}
