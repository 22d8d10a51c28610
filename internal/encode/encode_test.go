package encode

import (
	"testing"

	"github.com/helengibson/graphTPP-sub002/internal/property"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookup(t *testing.T, name string) *property.Property {
	t.Helper()
	p, err := property.Default.Lookup(name)
	require.NoError(t, err)
	return p
}

func value(t *testing.T, p *property.Property, r byte) float64 {
	t.Helper()
	v, err := Value(p, r)
	require.NoError(t, err)
	return v
}

func TestEncode_NeighbourMean(t *testing.T) {
	p := lookup(t, "hydropathy")
	a := value(t, p, 'A')
	c := value(t, p, 'C')
	d := value(t, p, 'D')

	tests := []struct {
		name string
		seq  string
		want []float64
	}{
		{"edges fall back to the only neighbour", "-AA-", []float64{a, a, a, a}},
		{"interior gap between equal residues", "A-A", []float64{a, a, a}},
		{"interior gap between different residues", "AC-D", []float64{a, c, (c + d) / 2, d}},
		{"long run uses nearest on each side", "C---D", []float64{c, (c + d) / 2, (c + d) / 2, (c + d) / 2, d}},
		{"all gaps encode to zero", "---", []float64{0, 0, 0}},
		{"dots are gaps too", "A.C", []float64{a, (a + c) / 2, c}},
		{"lower case", "ac-d", []float64{a, c, (c + d) / 2, d}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Encode(tt.seq, p, NeighbourMean)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEncode_GlobalMean(t *testing.T) {
	p := lookup(t, "polarity")
	mean, err := p.Mean()
	require.NoError(t, err)

	for _, seq := range []string{"---", "-W-", "WW-", "-KLM", "A-A"} {
		t.Run(seq, func(t *testing.T) {
			got, err := Encode(seq, p, GlobalMean)
			require.NoError(t, err)
			require.Len(t, got, len(seq))
			for i := 0; i < len(seq); i++ {
				if IsGap(seq[i]) {
					assert.Equal(t, mean, got[i])
				} else {
					assert.Equal(t, value(t, p, seq[i]), got[i])
				}
			}
		})
	}
}

func TestEncode_OneHot(t *testing.T) {
	p := lookup(t, property.Identity)

	got, err := Encode("a-C", p, GlobalMean)
	require.NoError(t, err)
	require.Len(t, got, 3*20)

	assert.Equal(t, 1.0, got[0]) // A is slot 0
	for k := 20; k < 40; k++ {
		assert.Equal(t, 0.05, got[k])
	}
	assert.Equal(t, 1.0, got[40+4]) // C is slot 4

	upper, err := Encode("A-C", p, GlobalMean)
	require.NoError(t, err)
	assert.Equal(t, upper, got)
}

func TestEncode_OneHotNeighbour(t *testing.T) {
	p := lookup(t, property.Identity)

	got, err := Encode("A-C", p, NeighbourMean)
	require.NoError(t, err)
	assert.Equal(t, 0.5, got[20+0])
	assert.Equal(t, 0.5, got[20+4])

	zero, err := Encode("--", p, NeighbourMean)
	require.NoError(t, err)
	assert.Equal(t, make([]float64, 40), zero)
}

func TestEncode_ConcatenatedIsPropertyMajor(t *testing.T) {
	p := lookup(t, property.All)
	subs := p.Subproperties()
	seq := "AC-W"

	got, err := Encode(seq, p, NeighbourMean)
	require.NoError(t, err)
	require.Len(t, got, len(seq)*len(subs))

	for s, sub := range subs {
		want, err := Encode(seq, sub, NeighbourMean)
		require.NoError(t, err)
		assert.Equal(t, want, got[s*len(seq):(s+1)*len(seq)], sub.Name())
	}

	cols := Columns(p, len(seq))
	require.Len(t, cols, len(got))
	assert.Equal(t, subs[0].Name()+"_1", cols[0])
	assert.Equal(t, subs[1].Name()+"_1", cols[len(seq)])
}

func TestBlocks_ConcatenatedPerPosition(t *testing.T) {
	p := lookup(t, property.All)

	blocks, err := Blocks("KR", p, NeighbourMean)
	require.NoError(t, err)
	require.Len(t, blocks, 2)
	for _, b := range blocks {
		assert.Len(t, b, p.Width())
	}
}

func TestEncode_UnknownResidue(t *testing.T) {
	p := lookup(t, "hydropathy")
	_, err := Encode("AC*D", p, NeighbourMean)
	assert.ErrorIs(t, err, property.ErrUnknownResidue)
	assert.Contains(t, err.Error(), "position 3")
}

func TestColumns(t *testing.T) {
	assert.Equal(t, []string{"hydropathy_1", "hydropathy_2"}, Columns(lookup(t, "hydropathy"), 2))

	id := Columns(lookup(t, property.Identity), 2)
	require.Len(t, id, 40)
	assert.Equal(t, "identity_1_A", id[0])
	assert.Equal(t, "identity_2_V", id[39])
}

func TestParseGapStrategy(t *testing.T) {
	tests := []struct {
		in      string
		want    GapStrategy
		wantErr bool
	}{
		{"", NeighbourMean, false},
		{"neighbour", NeighbourMean, false},
		{"Global", GlobalMean, false},
		{"median", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseGapStrategy(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEncode_OnlyASCIIIsUpperCased(t *testing.T) {
	p := lookup(t, "hydropathy")

	tests := []struct {
		name string
		seq  string
	}{
		{"long s", "A\u017F-"},
		{"dotless i", "A\u0131"},
		{"kelvin sign", "\u212AAA"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Encode(tt.seq, p, NeighbourMean)
			assert.ErrorIs(t, err, property.ErrUnknownResidue)
		})
	}

	got, err := Encode("ac-d", p, GlobalMean)
	require.NoError(t, err)
	want, err := Encode("AC-D", p, GlobalMean)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
