package matrix

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDense_BadShape(t *testing.T) {
	tests := []struct {
		name       string
		rows, cols int
	}{
		{"zero rows", 0, 2},
		{"zero cols", 2, 0},
		{"negative", -1, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDense(tt.rows, tt.cols)
			require.ErrorIs(t, err, ErrBadShape)
		})
	}
}

func TestDense_Norms(t *testing.T) {
	m, err := FromRows([][]float64{
		{3, 4},
		{0, 0},
		{1, 0},
	})
	require.NoError(t, err)

	assert.Equal(t, 5.0, m.RowNorm(0))
	assert.Equal(t, 0.0, m.RowNorm(1))
	assert.Equal(t, 1.0, m.RowNorm(2))
	assert.InDelta(t, math.Sqrt(26), m.Frobenius(), 1e-12)
}

func TestDiffFrobenius(t *testing.T) {
	a, _ := FromRows([][]float64{{1, 2}, {3, 4}})
	b, _ := FromRows([][]float64{{1, 2}, {3, 6}})

	d, err := DiffFrobenius(a, b)
	require.NoError(t, err)
	assert.Equal(t, 2.0, d)

	c, _ := NewDense(1, 2)
	_, err = DiffFrobenius(a, c)
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestDense_CloneIsDeep(t *testing.T) {
	a, _ := FromRows([][]float64{{1, 2}})
	b := a.Clone()
	b.Set(0, 0, 9)

	assert.Equal(t, 1.0, a.At(0, 0))
	assert.False(t, Equal(a, b))
	require.NoError(t, a.CopyFrom(b))
	assert.True(t, Equal(a, b))
}

func TestFromRows_Ragged(t *testing.T) {
	_, err := FromRows([][]float64{{1, 2}, {3}})
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestDense_Orthonormalize(t *testing.T) {
	m, _ := FromRows([][]float64{
		{1, 1},
		{0, 1},
		{0, 0},
	})
	filled := m.Orthonormalize(nil)
	assert.Zero(t, filled)

	for j := 0; j < m.Cols(); j++ {
		var norm, dot float64
		for i := 0; i < m.Rows(); i++ {
			norm += m.At(i, j) * m.At(i, j)
			dot += m.At(i, 0) * m.At(i, 1)
		}
		assert.InDelta(t, 1.0, norm, 1e-12)
		assert.InDelta(t, 0.0, dot, 1e-12)
	}
}

func TestDense_OrthonormalizeFillsDependentColumns(t *testing.T) {
	m, _ := FromRows([][]float64{
		{1, 2},
		{0, 0},
	})
	filled := m.Orthonormalize(func(j int) []float64 { return []float64{0, 1} })

	assert.Equal(t, 1, filled)
	assert.InDelta(t, 1.0, m.At(1, 1), 1e-12)
	assert.InDelta(t, 0.0, m.At(0, 1), 1e-12)
}

func TestWrap_SharesStorage(t *testing.T) {
	m, err := NewDense(2, 2)
	require.NoError(t, err)

	m.Mat().Set(1, 0, 7)
	assert.Equal(t, 7.0, m.At(1, 0))

	w := Wrap(m.Clone().Mat())
	assert.True(t, Equal(m, w))
	assert.Equal(t, []float64{7, 0}, w.Row(1))
}
