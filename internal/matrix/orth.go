package matrix

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// degenerate is the column norm under which Orthonormalize treats a column as
// linearly dependent on the ones before it.
const degenerate = 1e-12

// Orthonormalize runs modified Gram-Schmidt over the columns of m in place.
// Columns that collapse to (near) zero are replaced with fill(j), which must
// return a vector of length m.Rows(), and re-orthogonalized. It reports how
// many columns needed a fill.
//
// Unlike mat.QR, a dependent column is replaced rather than left as a zero
// column of Q, and column signs are kept.
func (m *Dense) Orthonormalize(fill func(j int) []float64) int {
	r, c := m.d.Dims()
	cols := make([][]float64, c)
	filled := 0

	for j := 0; j < c; j++ {
		col := mat.Col(nil, j, m.d)
		for attempt := 0; ; attempt++ {
			for k := 0; k < j; k++ {
				floats.AddScaled(col, -floats.Dot(col, cols[k]), cols[k])
			}

			if norm := floats.Norm(col, 2); norm > degenerate {
				floats.Scale(1/norm, col)
				break
			}

			// more columns than rows leaves nothing to fill with
			if fill == nil || attempt > 8 || j >= r {
				for i := range col {
					col[i] = 0
				}
				break
			}
			copy(col, fill(j))
			filled++
		}
		cols[j] = col
		m.d.SetCol(j, col)
	}
	return filled
}
