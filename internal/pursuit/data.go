package pursuit

import (
	"errors"
	"fmt"
	"math"

	"github.com/helengibson/graphTPP-sub002/internal/matrix"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

var (
	// ErrUnknownObjective is returned by NewObjective for an unregistered name.
	ErrUnknownObjective = errors.New("pursuit: unknown objective")

	// ErrData is returned for data the optimizer can't work with.
	ErrData = errors.New("pursuit: invalid data")
)

// minStdDev is the standard deviation under which a column counts as constant.
const minStdDev = 1e-12

// Data is the standardized instance x attribute matrix the projection acts on,
// with the class of every instance.
type Data struct {
	// X is n x d, each column centred with unit variance (constant columns are 0)
	X          *matrix.Dense
	Classes    []int
	NumClasses int

	// within-class centred X, n x d
	within *mat.Dense

	// between-class rows sqrt(n_c) * (centroid_c - centroid), numClasses x d
	between *mat.Dense

	// class centroids of X, numClasses x d
	centroids *mat.Dense
}

// NewData standardizes rows (one per instance, one value per attribute) and
// precomputes the class scatter factors.
func NewData(rows [][]float64, classes []int, numClasses int) (*Data, error) {
	if len(rows) != len(classes) {
		return nil, fmt.Errorf("%d rows but %d classes: %w", len(rows), len(classes), ErrData)
	}
	if numClasses < 2 {
		return nil, fmt.Errorf("need at least 2 classes, have %d: %w", numClasses, ErrData)
	}
	x, err := matrix.FromRows(rows)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrData)
	}
	d := x.Cols()
	xm := x.Mat()

	for j := 0; j < d; j++ {
		col := mat.Col(nil, j, xm)
		mean, sd := stat.PopMeanStdDev(col, nil)
		if sd < minStdDev {
			for i := range col {
				col[i] = 0
			}
		} else {
			floats.AddConst(-mean, col)
			floats.Scale(1/sd, col)
		}
		xm.SetCol(j, col)
	}

	centroids := mat.NewDense(numClasses, d, nil)
	sizes := make([]int, numClasses)
	for i, c := range classes {
		if c < 0 || c >= numClasses {
			return nil, fmt.Errorf("row %d has class %d of %d: %w", i, c, numClasses, ErrData)
		}
		sizes[c]++
		floats.Add(centroids.RawRowView(c), xm.RawRowView(i))
	}
	for c, size := range sizes {
		if size > 0 {
			floats.Scale(1/float64(size), centroids.RawRowView(c))
		}
	}

	// X is centred, so the overall centroid is zero
	between := mat.NewDense(numClasses, d, nil)
	for c, size := range sizes {
		floats.ScaleTo(between.RawRowView(c), math.Sqrt(float64(size)), centroids.RawRowView(c))
	}

	within := mat.DenseCopyOf(xm)
	for i, c := range classes {
		floats.Sub(within.RawRowView(i), centroids.RawRowView(c))
	}

	return &Data{
		X:          x,
		Classes:    append([]int(nil), classes...),
		NumClasses: numClasses,
		within:     within,
		between:    between,
		centroids:  centroids,
	}, nil
}

// Attributes is d, the projection's row count.
func (dt *Data) Attributes() int { return dt.X.Cols() }

// scatter returns tr(P^T S P) and S P for S = F^T F, given the factor F.
func scatter(f *mat.Dense, p *matrix.Dense) (float64, *mat.Dense) {
	var fp, sp, gram mat.Dense
	fp.Mul(f, p.Mat())
	gram.Mul(fp.T(), &fp)
	sp.Mul(f.T(), &fp)
	return mat.Trace(&gram), &sp
}
