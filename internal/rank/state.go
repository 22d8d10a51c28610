package rank

import (
	"fmt"
	"sync"

	"github.com/helengibson/graphTPP-sub002/internal/matrix"
)

// State is a step of a ranking run.
type State int

const (
	// Init is the state before validation.
	Init State = iota

	// PreSelecting runs the information gain filter.
	PreSelecting

	// Optimizing waits on the optimizer.
	Optimizing

	// Converged stopped because the relative projection change fell under the limit.
	Converged

	// EpochLimitReached stopped because the epoch counter passed the limit.
	EpochLimitReached

	// Cancelled stopped on an external request.
	Cancelled

	// RankingExtracted is the final state after scoring.
	RankingExtracted
)

func (s State) String() string {
	switch s {
	case Init:
		return "init"
	case PreSelecting:
		return "pre-selecting"
	case Optimizing:
		return "optimizing"
	case Converged:
		return "converged"
	case EpochLimitReached:
		return "epoch-limit-reached"
	case Cancelled:
		return "cancelled"
	case RankingExtracted:
		return "ranking-extracted"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// terminal reports whether s ends optimization.
func (s State) terminal() bool {
	return s == Converged || s == EpochLimitReached || s == Cancelled
}

// tracker follows the optimizer's projection and decides when to stop it.
// onChange runs on whatever goroutine the optimizer notifies from, one call
// at a time; the lock guards against Monitor readers.
type tracker struct {
	mu sync.Mutex

	convergenceLimit float64
	epochLimit       int
	stop             func()

	previous    *matrix.Dense
	epoch       int
	termination State

	// relative change of the last substantive update
	lastChange float64
}

func newTracker(convergenceLimit float64, epochLimit int, stop func()) *tracker {
	return &tracker{
		convergenceLimit: convergenceLimit,
		epochLimit:       epochLimit,
		stop:             stop,
		termination:      Optimizing,
	}
}

// onChange handles one "projection changed" notification. It reports whether
// the update counted as an epoch.
func (tr *tracker) onChange(projection *matrix.Dense) (counted bool) {
	if projection == nil {
		return false
	}
	// the optimizer owns projection and may write it again before we're done
	current := projection.Clone()

	tr.mu.Lock()
	defer tr.mu.Unlock()

	if tr.previous == nil || tr.termination.terminal() {
		tr.previous = current
		return false
	}

	change, err := relativeChange(tr.previous, current)
	if err != nil {
		// a reshaped projection can't be compared, start over from it
		tr.previous = current
		return false
	}

	// a bit-identical redelivery (redraw, resize) isn't progress
	if change == 0 {
		tr.previous = current
		return false
	}

	tr.epoch++
	tr.lastChange = change
	switch {
	case change < tr.convergenceLimit:
		tr.termination = Converged
		tr.stop()
	case tr.epoch > tr.epochLimit:
		tr.termination = EpochLimitReached
		tr.stop()
	}

	tr.previous = current
	return true
}

// cancel records an external stop request unless a reason is already set.
func (tr *tracker) cancel() {
	tr.mu.Lock()
	if !tr.termination.terminal() {
		tr.termination = Cancelled
	}
	tr.mu.Unlock()
	tr.stop()
}

func (tr *tracker) snapshot() (epoch int, termination State, latest *matrix.Dense) {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	if tr.previous != nil {
		latest = tr.previous.Clone()
	}
	return tr.epoch, tr.termination, latest
}

// relativeChange is ||previous - current||_F / ||previous||_F.
func relativeChange(previous, current *matrix.Dense) (float64, error) {
	diff, err := matrix.DiffFrobenius(previous, current)
	if err != nil {
		return 0, err
	}
	if diff == 0 {
		return 0, nil
	}
	// a zero previous gives +Inf, which never converges
	return diff / previous.Frobenius(), nil
}
