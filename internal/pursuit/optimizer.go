// Package pursuit is an iterative projection pursuit optimizer. It moves a
// projection (attributes x output dimensions) uphill on a class separation
// Objective, keeps its columns orthonormal, and announces every new state to
// subscribers.
package pursuit

import (
	"context"
	"sync"

	"github.com/helengibson/graphTPP-sub002/internal/matrix"
)

// DefaultLearningRate is the Adam step size used when none is given.
const DefaultLearningRate = 0.01

// Optimizer runs projection pursuit on its caller's goroutine. Subscribers
// are notified synchronously after every published state, in order.
type Optimizer struct {
	learningRate float64

	mu      sync.RWMutex
	current *matrix.Dense
	subs    []func()
}

// New returns an optimizer. learningRate <= 0 uses DefaultLearningRate.
func New(learningRate float64) *Optimizer {
	if learningRate <= 0 {
		learningRate = DefaultLearningRate
	}
	return &Optimizer{learningRate: learningRate}
}

// Subscribe registers fn to be called after each projection change.
// Must be called before Run.
func (o *Optimizer) Subscribe(fn func()) {
	o.mu.Lock()
	o.subs = append(o.subs, fn)
	o.mu.Unlock()
}

// Projection returns a copy of the latest published projection, or nil before Run.
func (o *Optimizer) Projection() *matrix.Dense {
	o.mu.RLock()
	defer o.mu.RUnlock()
	if o.current == nil {
		return nil
	}
	return o.current.Clone()
}

// Run optimizes from initial until ctx is done or a step no longer moves the
// projection. ctx is checked at every iteration boundary; stopping through ctx
// is not an error. initial is not modified.
func (o *Optimizer) Run(ctx context.Context, initial *matrix.Dense, obj Objective) error {
	p := initial.Clone()
	grad, err := matrix.NewDense(p.Rows(), p.Cols())
	if err != nil {
		return err
	}
	moments := make([]moment, p.Rows()*p.Cols())

	o.publish(p)
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		obj.Evaluate(p, grad)

		next := p.Clone()
		for i := 0; i < p.Rows(); i++ {
			for j := 0; j < p.Cols(); j++ {
				next.Set(i, j, p.At(i, j)+moments[i*p.Cols()+j].step(grad.At(i, j), o.learningRate))
			}
		}
		next.Orthonormalize(nil)

		// fixed point
		if matrix.Equal(next, p) {
			return nil
		}
		p = next
		o.publish(p)
	}
}

// publish stores a complete copy of p, then notifies subscribers outside the lock.
func (o *Optimizer) publish(p *matrix.Dense) {
	o.mu.Lock()
	o.current = p.Clone()
	subs := append([]func(){}, o.subs...)
	o.mu.Unlock()

	for _, fn := range subs {
		fn()
	}
}
