package pursuit

import (
	"fmt"
	"math/rand"

	"github.com/helengibson/graphTPP-sub002/internal/matrix"
	"gonum.org/v1/gonum/mat"
)

// Seed builds a starting projection with dims columns. Column c starts as
// class c's centroid direction; columns past the class count and any that
// turn out linearly dependent are drawn from rnd. Columns are orthonormal.
func Seed(data *Data, dims int, rnd *rand.Rand) (*matrix.Dense, error) {
	d := data.Attributes()
	p, err := matrix.NewDense(d, dims)
	if err != nil {
		return nil, fmt.Errorf("seed %dx%d: %w", d, dims, err)
	}

	random := func(int) []float64 {
		v := make([]float64, d)
		for i := range v {
			v[i] = rnd.NormFloat64()
		}
		return v
	}

	for j := 0; j < dims; j++ {
		var col []float64
		if j < data.NumClasses {
			col = mat.Row(nil, j, data.centroids)
		} else {
			col = random(j)
		}
		for i := 0; i < d; i++ {
			p.Set(i, j, col[i])
		}
	}

	p.Orthonormalize(random)
	return p, nil
}
