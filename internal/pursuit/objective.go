package pursuit

import (
	"fmt"
	"strings"

	"github.com/helengibson/graphTPP-sub002/internal/matrix"
)

const (
	// Separation maximizes between-class over within-class scatter.
	Separation = "separation"

	// Centroid maximizes between-class scatter alone.
	Centroid = "centroid"
)

// Objective is a class separation index of a projection. Evaluate returns the
// index at p and writes its gradient with respect to p into grad.
type Objective interface {
	Name() string
	Evaluate(p, grad *matrix.Dense) float64
}

// Objectives lists the registered objective names.
func Objectives() []string { return []string{Separation, Centroid} }

// NewObjective builds the named objective over data.
func NewObjective(name string, data *Data) (Objective, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", Separation:
		return &separation{data: data}, nil
	case Centroid:
		return &centroid{data: data}, nil
	}
	return nil, fmt.Errorf("%q: %w", name, ErrUnknownObjective)
}

// separation is tr(P'BP) / tr(P'WP).
type separation struct {
	data *Data
}

func (s *separation) Name() string { return Separation }

func (s *separation) Evaluate(p, grad *matrix.Dense) float64 {
	const eps = 1e-9
	tb, bp := scatter(s.data.between, p)
	tw, wp := scatter(s.data.within, p)
	tw += eps

	// d/dP (tb/tw) = 2 (BP tw - WP tb) / tw^2
	for i := 0; i < p.Rows(); i++ {
		for j := 0; j < p.Cols(); j++ {
			grad.Set(i, j, 2*(bp.At(i, j)*tw-wp.At(i, j)*tb)/(tw*tw))
		}
	}
	return tb / tw
}

// centroid is tr(P'BP) normalized by the instance count.
type centroid struct {
	data *Data
}

func (c *centroid) Name() string { return Centroid }

func (c *centroid) Evaluate(p, grad *matrix.Dense) float64 {
	n := float64(c.data.X.Rows())
	tb, bp := scatter(c.data.between, p)
	for i := 0; i < p.Rows(); i++ {
		for j := 0; j < p.Cols(); j++ {
			grad.Set(i, j, 2*bp.At(i, j)/n)
		}
	}
	return tb / n
}
