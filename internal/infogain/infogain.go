// Package infogain ranks numeric columns by their information gain with
// respect to the class column. Columns are first discretized with the
// Fayyad & Irani MDL criterion; a column with no accepted cut point scores 0.
package infogain

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"
	"sort"

	"github.com/helengibson/graphTPP-sub002/internal/table"
	"golang.org/x/sync/errgroup"
)

// ErrNoClass is returned for a table without a class column.
var ErrNoClass = errors.New("infogain: table has no class column")

// Ranked is a column and its information gain.
type Ranked struct {
	Column int
	Score  float64
}

// Ranker scores columns concurrently.
type Ranker struct {
	// Concurrency bounds the number of columns scored at once. <= 0 means GOMAXPROCS.
	Concurrency int
}

// Rank scores every numeric column of t and returns the best k, highest gain
// first. Ties keep table column order. k <= 0 or k >= the column count
// returns every numeric column.
func (r Ranker) Rank(ctx context.Context, t *table.Table, k int) ([]Ranked, error) {
	if t.ClassIndex() < 0 {
		return nil, ErrNoClass
	}

	columns := t.NumericColumns()
	classes := make([]int, t.NumRows())
	for i := range classes {
		classes[i] = t.ClassOf(i)
	}
	numClasses := len(t.Classes())

	limit := r.Concurrency
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	scores := make([]Ranked, len(columns))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, col := range columns {
		i, col := i, col
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			values := make([]float64, t.NumRows())
			for row := range values {
				v, err := t.Value(row, col)
				if err != nil {
					return fmt.Errorf("column %d: %w", col, err)
				}
				values[row] = v
			}
			scores[i] = Ranked{Column: col, Score: Gain(values, classes, numClasses)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(scores, func(a, b int) bool {
		return scores[a].Score > scores[b].Score
	})
	if k > 0 && k < len(scores) {
		scores = scores[:k]
	}
	return scores, nil
}

// Gain is the information gain of the class given values discretized with
// the MDL criterion. classes[i] is the class index (0..numClasses-1) of values[i].
func Gain(values []float64, classes []int, numClasses int) float64 {
	n := len(values)
	if n == 0 || numClasses < 2 {
		return 0
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return values[order[a]] < values[order[b]]
	})

	sortedValues := make([]float64, n)
	sortedClasses := make([]int, n)
	for i, o := range order {
		sortedValues[i] = values[o]
		sortedClasses[i] = classes[o]
	}

	cuts := mdlCuts(sortedValues, sortedClasses, numClasses, 0, n)

	total := counts(sortedClasses, numClasses, 0, n)
	prior := entropy(total, n)

	// conditional entropy over the bins between cuts
	var conditional float64
	start := 0
	for _, end := range append(cuts, n) {
		c := counts(sortedClasses, numClasses, start, end)
		conditional += float64(end-start) / float64(n) * entropy(c, end-start)
		start = end
	}

	gain := prior - conditional
	if gain < 0 {
		return 0
	}
	return gain
}

// mdlCuts returns the accepted cut indices in [lo, hi), ascending. A cut at i
// splits the segment into [lo, i) and [i, hi).
func mdlCuts(values []float64, classes []int, numClasses, lo, hi int) []int {
	n := hi - lo
	if n < 2 {
		return nil
	}

	all := counts(classes, numClasses, lo, hi)
	segEntropy := entropy(all, n)

	left := make([]int, numClasses)
	right := append([]int(nil), all...)
	best, bestEntropy := -1, math.Inf(1)
	var bestLeft, bestRight []int

	for i := lo + 1; i < hi; i++ {
		c := classes[i-1]
		left[c]++
		right[c]--
		if values[i] == values[i-1] {
			continue
		}

		nl, nr := i-lo, hi-i
		e := (float64(nl)*entropy(left, nl) + float64(nr)*entropy(right, nr)) / float64(n)
		if e < bestEntropy {
			best, bestEntropy = i, e
			bestLeft = append(bestLeft[:0], left...)
			bestRight = append(bestRight[:0], right...)
		}
	}
	if best < 0 {
		return nil
	}

	gain := segEntropy - bestEntropy
	k, k1, k2 := present(all), present(bestLeft), present(bestRight)
	delta := math.Log2(math.Pow(3, float64(k))-2) -
		(float64(k)*segEntropy - float64(k1)*entropy(bestLeft, best-lo) - float64(k2)*entropy(bestRight, hi-best))
	if gain <= (math.Log2(float64(n-1))+delta)/float64(n) {
		return nil
	}

	cuts := mdlCuts(values, classes, numClasses, lo, best)
	cuts = append(cuts, best)
	return append(cuts, mdlCuts(values, classes, numClasses, best, hi)...)
}

func counts(classes []int, numClasses, lo, hi int) []int {
	c := make([]int, numClasses)
	for _, cl := range classes[lo:hi] {
		c[cl]++
	}
	return c
}

func present(c []int) int {
	k := 0
	for _, v := range c {
		if v > 0 {
			k++
		}
	}
	return k
}

// entropy in bits of a class count vector summing to n
func entropy(c []int, n int) float64 {
	if n == 0 {
		return 0
	}
	var e float64
	for _, v := range c {
		if v == 0 {
			continue
		}
		p := float64(v) / float64(n)
		e -= p * math.Log2(p)
	}
	return e
}
