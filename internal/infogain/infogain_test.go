package infogain

import (
	"context"
	"testing"

	"github.com/helengibson/graphTPP-sub002/internal/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGain(t *testing.T) {
	tests := []struct {
		name    string
		values  []float64
		classes []int
		want    float64
	}{
		{
			"perfect separation",
			[]float64{0.1, 0.2, 0.1, 0.3, 0.9, 0.8, 0.9, 0.7},
			[]int{0, 0, 0, 0, 1, 1, 1, 1},
			1,
		},
		{
			"constant column",
			[]float64{0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5},
			[]int{0, 0, 0, 0, 1, 1, 1, 1},
			0,
		},
		{
			"interleaved classes are not worth a cut",
			[]float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6},
			[]int{0, 1, 0, 1, 0, 1},
			0,
		},
		{
			"single class",
			[]float64{0.1, 0.2},
			[]int{0, 0},
			0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Gain(tt.values, tt.classes, 2), 1e-12)
		})
	}
}

func fixture(t *testing.T) *table.Table {
	t.Helper()
	tab, err := table.New([]table.Attribute{
		{Name: "label", Kind: table.Label},
		{Name: "flat", Kind: table.Numeric},
		{Name: "split", Kind: table.Numeric},
		{Name: "flat2", Kind: table.Numeric},
		{Name: "class", Kind: table.Class},
	})
	require.NoError(t, err)

	for i := 0; i < 8; i++ {
		class, split := "a", 0.1
		if i >= 4 {
			class, split = "b", 0.9
		}
		tab.Append("r", []float64{0.5, split, 0.2}, class)
	}
	return tab
}

func TestRanker_Rank(t *testing.T) {
	tab := fixture(t)

	got, err := Ranker{Concurrency: 2}.Rank(context.Background(), tab, 0)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []int{2, 1, 3}, []int{got[0].Column, got[1].Column, got[2].Column})
	assert.InDelta(t, 1.0, got[0].Score, 1e-12)

	top, err := Ranker{}.Rank(context.Background(), tab, 1)
	require.NoError(t, err)
	assert.Equal(t, []Ranked{got[0]}, top)
}

func TestRanker_NoClass(t *testing.T) {
	tab, err := table.New([]table.Attribute{{Name: "x", Kind: table.Numeric}})
	require.NoError(t, err)

	_, err = Ranker{}.Rank(context.Background(), tab, 1)
	assert.ErrorIs(t, err, ErrNoClass)
}

func TestRanker_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Ranker{Concurrency: 1}.Rank(ctx, fixture(t), 0)
	assert.ErrorIs(t, err, context.Canceled)
}
