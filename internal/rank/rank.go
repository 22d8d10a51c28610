// Package rank orders the numeric columns of a feature table by how much a
// projection pursuit optimizer relies on them to separate the classes.
//
// A run optionally pre-selects the most informative columns, seeds a
// projection, lets the optimizer improve it on its own goroutine until the
// relative change between successive projections falls under a limit (or an
// epoch limit or a cancellation stops it), then scores every column by the L2
// norm of its row in the final projection. Scores are reported against the
// caller's table column numbering.
package rank

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"os"
	"sort"

	"github.com/helengibson/graphTPP-sub002/internal/infogain"
	"github.com/helengibson/graphTPP-sub002/internal/matrix"
	"github.com/helengibson/graphTPP-sub002/internal/pursuit"
	"github.com/helengibson/graphTPP-sub002/internal/table"
	"golang.org/x/sync/errgroup"
)

// stderr is for logging to Stderr (without an annoying timestamp)
var stderr = log.New(os.Stderr, "", 0)

// PreSelector ranks the numeric columns of a table and returns the best k,
// best first, as column indices of that table.
type PreSelector interface {
	Rank(ctx context.Context, t *table.Table, k int) ([]infogain.Ranked, error)
}

// Optimizer improves a projection on the goroutine that calls Run, publishing
// complete states that Projection returns and announcing each one to the
// Subscribe callbacks. It must return from Run soon after ctx is done.
type Optimizer interface {
	Subscribe(fn func())
	Run(ctx context.Context, initial *matrix.Dense, obj pursuit.Objective) error
	Projection() *matrix.Dense
}

// Options for a ranking run.
type Options struct {
	// PreSelectCount keeps only the best columns by information gain before
	// optimizing. 0 (or >= the numeric column count) disables pre-selection.
	PreSelectCount int

	// NumOutputDimensions is the projection's column count.
	NumOutputDimensions int

	// ConvergenceLimit stops the optimizer once the relative Frobenius change
	// between successive projections falls under it.
	ConvergenceLimit float64

	// EpochLimit stops the optimizer once the epoch counter exceeds it.
	EpochLimit int

	// NumToSelect truncates the ranking. <= 0 returns every column.
	NumToSelect int

	// Objective names the separation index, see pursuit.Objectives.
	Objective string

	// Seed for the random part of the starting projection.
	Seed int64

	// LiveView is attached for the run when NumOutputDimensions is 2.
	LiveView Observer

	// Verbose logs every epoch.
	Verbose bool
}

// DefaultOptions are the documented defaults.
func DefaultOptions() Options {
	return Options{
		NumOutputDimensions: 2,
		ConvergenceLimit:    0.001,
		EpochLimit:          100,
		Objective:           pursuit.Separation,
		Seed:                1,
	}
}

// Attribute is a ranked table column.
type Attribute struct {
	// Index is the column's index in the table passed to Rank.
	Index int
	Score float64
}

// Result of a ranking run.
type Result struct {
	// Attributes, highest score first
	Attributes []Attribute

	// Epochs counted before the optimizer stopped
	Epochs int

	// Termination is Converged, EpochLimitReached or Cancelled
	Termination State

	// Projection the scores were taken from, one row per retained column
	Projection *matrix.Dense

	// Retained is the table column of each projection row
	Retained []int
}

// Ranker runs rankings. The zero value is not usable; see New.
type Ranker struct {
	preSelector  PreSelector
	newOptimizer func() Optimizer
}

// New returns a Ranker using the information gain pre-selector and a
// pursuit.Optimizer with the given learning rate.
func New(learningRate float64) *Ranker {
	return NewWith(infogain.Ranker{}, func() Optimizer { return pursuit.New(learningRate) })
}

// NewWith returns a Ranker with the given collaborators. newOptimizer is
// called once per Rank.
func NewWith(pre PreSelector, newOptimizer func() Optimizer) *Ranker {
	return &Ranker{preSelector: pre, newOptimizer: newOptimizer}
}

// Rank scores the numeric columns of t. It blocks until the optimizer has
// stopped. Cancelling ctx during optimization is not an error: ranking goes
// ahead with the projection reached and Result.Termination is Cancelled.
func (r *Ranker) Rank(ctx context.Context, t *table.Table, opts Options) (*Result, error) {
	if err := validate(t, opts); err != nil {
		return nil, err
	}

	numeric := t.NumericColumns()
	preselect, err := r.preSelect(ctx, t, numeric, opts.PreSelectCount)
	if err != nil {
		return nil, err
	}
	if opts.NumOutputDimensions > len(preselect) {
		return nil, fmt.Errorf("%d output dimensions for %d attributes: %w",
			opts.NumOutputDimensions, len(preselect), ErrConfiguration)
	}

	retained := make([]int, len(preselect))
	for f, p := range preselect {
		retained[f] = numeric[p]
	}

	data, err := r.data(t, retained)
	if err != nil {
		return nil, err
	}
	obj, err := pursuit.NewObjective(opts.Objective, data)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrConfiguration)
	}
	initial, err := pursuit.Seed(data, opts.NumOutputDimensions, rand.New(rand.NewSource(opts.Seed)))
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrConfiguration)
	}

	final, tr, err := r.optimize(ctx, t, retained, initial, obj, opts)
	if err != nil {
		return nil, err
	}
	epochs, termination, _ := tr.snapshot()

	ranked := score(final)
	out := make([]Attribute, len(ranked))
	for i, a := range ranked {
		// projection row -> pre-selection -> table column
		out[i] = Attribute{Index: numeric[preselect[a.Index]], Score: a.Score}
	}
	if opts.NumToSelect > 0 && opts.NumToSelect < len(out) {
		out = out[:opts.NumToSelect]
	}

	if opts.Verbose {
		stderr.Printf("%s after %d epochs, %d attributes ranked", termination, epochs, len(out))
	}

	return &Result{
		Attributes:  out,
		Epochs:      epochs,
		Termination: termination,
		Projection:  final,
		Retained:    retained,
	}, nil
}

// validate rejects unusable options and tables before anything runs.
func validate(t *table.Table, opts Options) error {
	switch {
	case t == nil:
		return fmt.Errorf("no table: %w", ErrConfiguration)
	case opts.NumOutputDimensions < 1:
		return fmt.Errorf("output dimensions %d < 1: %w", opts.NumOutputDimensions, ErrConfiguration)
	case !(opts.ConvergenceLimit > 0):
		return fmt.Errorf("convergence limit %g <= 0: %w", opts.ConvergenceLimit, ErrConfiguration)
	case opts.EpochLimit <= 0:
		return fmt.Errorf("epoch limit %d <= 0: %w", opts.EpochLimit, ErrConfiguration)
	case opts.PreSelectCount < 0:
		return fmt.Errorf("pre-select count %d < 0: %w", opts.PreSelectCount, ErrConfiguration)
	case t.ClassIndex() < 0:
		return fmt.Errorf("table has no class column: %w", ErrConfiguration)
	case len(t.Classes()) < 2:
		return fmt.Errorf("need at least 2 classes, have %d: %w", len(t.Classes()), ErrConfiguration)
	case len(t.NumericColumns()) == 0:
		return fmt.Errorf("table has no numeric columns: %w", ErrConfiguration)
	}

	if _, err := pursuit.NewObjective(opts.Objective, nil); err != nil {
		return fmt.Errorf("%v: %w", err, ErrConfiguration)
	}
	return nil
}

// preSelect returns, for every retained attribute, its position among the
// numeric columns. Without pre-selection that's the identity.
func (r *Ranker) preSelect(ctx context.Context, t *table.Table, numeric []int, k int) ([]int, error) {
	if k <= 0 || k >= len(numeric) {
		identity := make([]int, len(numeric))
		for i := range identity {
			identity[i] = i
		}
		return identity, nil
	}

	// the pre-selector sees numeric columns and the class only, so its column
	// i is numeric column i
	sub, err := t.Select(numeric)
	if err != nil {
		return nil, err
	}
	ranked, err := r.preSelector.Rank(ctx, sub, k)
	if err != nil {
		return nil, fmt.Errorf("pre-selection: %w", err)
	}
	if len(ranked) == 0 {
		return nil, fmt.Errorf("pre-selection kept no attributes: %w", ErrConfiguration)
	}

	out := make([]int, 0, len(ranked))
	seen := make(map[int]bool, len(ranked))
	for _, a := range ranked {
		if a.Column < 0 || a.Column >= len(numeric) || seen[a.Column] {
			return nil, fmt.Errorf("pre-selection returned column %d of %d", a.Column, len(numeric))
		}
		seen[a.Column] = true
		out = append(out, a.Column)
	}
	return out, nil
}

// data gathers the retained columns and class of every row.
func (r *Ranker) data(t *table.Table, retained []int) (*pursuit.Data, error) {
	rows := make([][]float64, t.NumRows())
	classes := make([]int, t.NumRows())
	for i := range rows {
		rows[i] = make([]float64, len(retained))
		for f, col := range retained {
			v, err := t.Value(i, col)
			if err != nil {
				return nil, err
			}
			rows[i][f] = v
		}
		classes[i] = t.ClassOf(i)
	}

	data, err := pursuit.NewData(rows, classes, len(t.Classes()))
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrConfiguration)
	}
	return data, nil
}

// optimize runs the optimizer on its own goroutine and waits for it to stop.
func (r *Ranker) optimize(
	ctx context.Context,
	t *table.Table,
	retained []int,
	initial *matrix.Dense,
	obj pursuit.Objective,
	opts Options,
) (*matrix.Dense, *tracker, error) {
	runCtx, stop := context.WithCancel(ctx)
	defer stop()

	tr := newTracker(opts.ConvergenceLimit, opts.EpochLimit, stop)
	stopAfter := context.AfterFunc(ctx, tr.cancel)
	defer stopAfter()
	opt := r.newOptimizer()

	var live Observer
	if opts.LiveView != nil {
		if opts.NumOutputDimensions == 2 {
			live = opts.LiveView
			names := make([]string, len(retained))
			for i, col := range retained {
				names[i] = t.Attribute(col).Name
			}
			live.Attach(&Monitor{tracker: tr, names: names})
			defer live.Detach()
		} else {
			stderr.Printf("live view needs 2 output dimensions, have %d: not shown", opts.NumOutputDimensions)
		}
	}

	opt.Subscribe(func() {
		// a cancel that came first wins over this update
		if ctx.Err() != nil {
			tr.cancel()
		}
		p := opt.Projection()
		if !tr.onChange(p) {
			return
		}
		epoch, _, _ := tr.snapshot()
		if opts.Verbose {
			stderr.Printf("epoch %d: relative change %g", epoch, tr.lastChange)
		}
		if live != nil {
			live.ProjectionChanged(epoch, p.Clone())
		}
	})

	g, gctx := errgroup.WithContext(runCtx)
	g.Go(func() (err error) {
		defer func() {
			if rec := recover(); rec != nil {
				err = fmt.Errorf("panic: %v", rec)
			}
		}()
		return opt.Run(gctx, initial, obj)
	})
	err := g.Wait()

	if err != nil && !(errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)) {
		return nil, nil, fmt.Errorf("%w: %w", ErrOptimization, err)
	}

	tr.mu.Lock()
	if !tr.termination.terminal() {
		if ctx.Err() != nil {
			tr.termination = Cancelled
		} else {
			// the optimizer stopped on its own at a fixed point
			tr.termination = Converged
		}
	}
	tr.mu.Unlock()

	final := opt.Projection()
	if final == nil {
		if _, _, final = tr.snapshot(); final == nil {
			final = initial.Clone()
		}
	}
	return final, tr, nil
}

// score is the L2 norm of every projection row, highest first. Equal scores
// keep row order. Attribute.Index is the projection row.
func score(p *matrix.Dense) []Attribute {
	out := make([]Attribute, p.Rows())
	for i := range out {
		out[i] = Attribute{Index: i, Score: p.RowNorm(i)}
	}
	sort.SliceStable(out, func(a, b int) bool {
		return out[a].Score > out[b].Score
	})
	return out
}
