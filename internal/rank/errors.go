package rank

import "errors"

var (
	// ErrConfiguration is returned before any work starts when the options or
	// the table can't be ranked.
	ErrConfiguration = errors.New("rank: invalid configuration")

	// ErrOptimization wraps a failure of the optimizer. Ranking is not retried.
	ErrOptimization = errors.New("rank: optimization failed")
)
