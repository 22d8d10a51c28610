package cmd

import (
	"log"
	"math"

	"github.com/helengibson/graphTPP-sub002/internal/matrix"
	"github.com/helengibson/graphTPP-sub002/internal/rank"
)

// liveLog is a text-only live view: it logs the attributes pulling hardest on
// each axis of the 2-D projection as it changes.
type liveLog struct {
	out     *log.Logger
	monitor *rank.Monitor
	names   []string
	updates int
}

func (l *liveLog) Attach(m *rank.Monitor) {
	l.monitor = m
	l.names = m.Attributes()
	l.out.Printf("live: following %d attributes", len(l.names))
}

func (l *liveLog) ProjectionChanged(epoch int, p *matrix.Dense) {
	l.updates++
	x, y := strongest(p, 0), strongest(p, 1)
	if x < 0 || y < 0 {
		return
	}
	l.out.Printf("live: epoch %d x=%s (%.3f) y=%s (%.3f)",
		epoch, l.names[x], p.At(x, 0), l.names[y], p.At(y, 1))
}

func (l *liveLog) Detach() {
	if l.monitor != nil {
		l.out.Printf("live: %s after %d updates", l.monitor.State(), l.updates)
	}
}

// strongest is the row with the largest absolute weight in column c, or -1.
func strongest(p *matrix.Dense, c int) int {
	if p == nil || c >= p.Cols() {
		return -1
	}
	best, bestAbs := -1, -1.0
	for r := 0; r < p.Rows(); r++ {
		if a := math.Abs(p.At(r, c)); a > bestAbs {
			best, bestAbs = r, a
		}
	}
	return best
}
