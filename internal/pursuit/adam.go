package pursuit

import "math"

const (
	beta1 = 0.9
	beta2 = 0.999
)

// moment is the running first and second moment of one projection entry's gradient.
type moment struct {
	m1 float64
	m2 float64
}

// step returns the ascent step for gradient g.
func (m *moment) step(g, learningRate float64) float64 {
	if g == 0 {
		// nothing to calculate
		return 0
	}

	m.m1 = m.m1*beta1 + g*(1-beta1)
	m.m2 = m.m2*beta2 + (g*g)*(1-beta2)

	return learningRate * m.m1 / (math.Sqrt(m.m2) + 1e-8)
}
