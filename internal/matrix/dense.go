// Package matrix is the dense projection matrix shared by the optimizer and
// the ranking. It wraps gonum's mat.Dense and adds the shape errors, norms and
// column normalization the ranking needs.
package matrix

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Dense is a row-major matrix of float64.
type Dense struct {
	d *mat.Dense
}

// NewDense creates a rows x cols zero matrix.
func NewDense(rows, cols int) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("NewDense(%d,%d): %w", rows, cols, ErrBadShape)
	}
	return &Dense{d: mat.NewDense(rows, cols, nil)}, nil
}

// FromRows copies a rectangular [][]float64 into a new Dense.
func FromRows(rows [][]float64) (*Dense, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("FromRows: %w", ErrBadShape)
	}
	c := len(rows[0])
	data := make([]float64, 0, len(rows)*c)
	for i, row := range rows {
		if len(row) != c {
			return nil, fmt.Errorf("FromRows: row %d has %d columns, want %d: %w", i, len(row), c, ErrDimensionMismatch)
		}
		data = append(data, row...)
	}
	return &Dense{d: mat.NewDense(len(rows), c, data)}, nil
}

// Wrap takes ownership of d.
func Wrap(d *mat.Dense) *Dense { return &Dense{d: d} }

// Mat is the underlying gonum matrix. Writes through it are visible in m.
func (m *Dense) Mat() *mat.Dense { return m.d }

// Rows is the row count.
func (m *Dense) Rows() int {
	r, _ := m.d.Dims()
	return r
}

// Cols is the column count.
func (m *Dense) Cols() int {
	_, c := m.d.Dims()
	return c
}

// At returns entry (i, j). It panics on an out of range index.
func (m *Dense) At(i, j int) float64 { return m.d.At(i, j) }

// Set writes entry (i, j).
func (m *Dense) Set(i, j int, v float64) { m.d.Set(i, j, v) }

// Row returns a copy of row i.
func (m *Dense) Row(i int) []float64 { return mat.Row(nil, i, m.d) }

// Clone returns a deep copy.
func (m *Dense) Clone() *Dense { return &Dense{d: mat.DenseCopyOf(m.d)} }

// CopyFrom overwrites m with the entries of src. Shapes must match.
func (m *Dense) CopyFrom(src *Dense) error {
	if err := sameShape("CopyFrom", m, src); err != nil {
		return err
	}
	m.d.Copy(src.d)
	return nil
}

// Frobenius is the square root of the sum of squares of all entries.
func (m *Dense) Frobenius() float64 { return mat.Norm(m.d, 2) }

// DiffFrobenius is ||a - b||_F. Bit-identical matrices give exactly 0.
func DiffFrobenius(a, b *Dense) (float64, error) {
	if err := sameShape("DiffFrobenius", a, b); err != nil {
		return 0, err
	}
	var diff mat.Dense
	diff.Sub(a.d, b.d)
	return mat.Norm(&diff, 2), nil
}

// RowNorm is the Euclidean norm of row i.
func (m *Dense) RowNorm(i int) float64 { return floats.Norm(m.d.RawRowView(i), 2) }

// Equal reports whether a and b have the same shape and bit-identical entries.
func Equal(a, b *Dense) bool { return mat.Equal(a.d, b.d) }

func (m *Dense) String() string {
	return fmt.Sprintf("%v", mat.Formatted(m.d, mat.Squeeze()))
}

func sameShape(op string, a, b *Dense) error {
	ar, ac := a.d.Dims()
	br, bc := b.d.Dims()
	if ar != br || ac != bc {
		return fmt.Errorf("%s: %dx%d vs %dx%d: %w", op, ar, ac, br, bc, ErrDimensionMismatch)
	}
	return nil
}
