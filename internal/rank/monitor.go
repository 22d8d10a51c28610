package rank

import "github.com/helengibson/graphTPP-sub002/internal/matrix"

// Observer follows a ranking run live, e.g. to draw the 2-D projection.
// ProjectionChanged is called on the optimizer's goroutine after every
// substantive update and must not block for long.
type Observer interface {
	Attach(m *Monitor)
	ProjectionChanged(epoch int, projection *matrix.Dense)
	Detach()
}

// Monitor is an observer's handle on a running optimization.
type Monitor struct {
	tracker *tracker
	names   []string
}

// Epoch is the number of substantive updates so far.
func (m *Monitor) Epoch() int {
	epoch, _, _ := m.tracker.snapshot()
	return epoch
}

// State is Optimizing until a termination reason is recorded.
func (m *Monitor) State() State {
	_, st, _ := m.tracker.snapshot()
	return st
}

// Projection is a copy of the latest projection seen, or nil.
func (m *Monitor) Projection() *matrix.Dense {
	_, _, p := m.tracker.snapshot()
	return p
}

// Attributes names the projection's rows.
func (m *Monitor) Attributes() []string {
	return append([]string(nil), m.names...)
}

// Cancel stops the optimization. Ranking continues with the projection at hand.
func (m *Monitor) Cancel() {
	m.tracker.cancel()
}
