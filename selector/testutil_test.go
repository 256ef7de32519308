// Package selector_test provides helpers shared across *_test.go files in
// this package: the reference scenarios, a deterministic instance generator
// and a brute-force oracle over all 2ⁿ subsets.
package selector_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/katalvlaran/packer/selector"
)

const (
	// epsWeight is the tolerance for comparing accumulated weights.
	epsWeight = 1e-9

	// defaultSeed is used when a caller passes seed==0.
	defaultSeed int64 = 1
)

// scenario is one reference line with its expected selection.
type scenario struct {
	name string
	inst selector.Instance
	want []int
}

// referenceScenarios returns the four reference input lines.
func referenceScenarios() []scenario {
	return []scenario{
		{
			name: "single_item_wins",
			inst: selector.Instance{Capacity: 81, Items: []selector.Item{
				{ID: 1, Weight: 53.38, Cost: 45},
				{ID: 2, Weight: 88.62, Cost: 98},
				{ID: 3, Weight: 78.48, Cost: 3},
				{ID: 4, Weight: 72.30, Cost: 76},
				{ID: 5, Weight: 30.18, Cost: 9},
				{ID: 6, Weight: 46.34, Cost: 48},
			}},
			want: []int{4},
		},
		{
			name: "nothing_fits",
			inst: selector.Instance{Capacity: 8, Items: []selector.Item{
				{ID: 1, Weight: 15.3, Cost: 34},
			}},
			want: []int{},
		},
		{
			name: "pair_fills_capacity",
			inst: selector.Instance{Capacity: 75, Items: []selector.Item{
				{ID: 1, Weight: 85.31, Cost: 29},
				{ID: 2, Weight: 14.55, Cost: 74},
				{ID: 3, Weight: 3.98, Cost: 16},
				{ID: 4, Weight: 26.24, Cost: 55},
				{ID: 5, Weight: 63.69, Cost: 52},
				{ID: 6, Weight: 76.25, Cost: 75},
				{ID: 7, Weight: 60.02, Cost: 74},
				{ID: 8, Weight: 93.18, Cost: 35},
				{ID: 9, Weight: 89.95, Cost: 78},
			}},
			want: []int{2, 7},
		},
		{
			// {6,9} also costs 143 but weighs 55.53; the lighter {8,9} wins.
			name: "lighter_pair_wins_cost_tie",
			inst: selector.Instance{Capacity: 56, Items: []selector.Item{
				{ID: 1, Weight: 90.72, Cost: 13},
				{ID: 2, Weight: 33.80, Cost: 40},
				{ID: 3, Weight: 43.15, Cost: 10},
				{ID: 4, Weight: 37.97, Cost: 16},
				{ID: 5, Weight: 46.81, Cost: 36},
				{ID: 6, Weight: 48.77, Cost: 79},
				{ID: 7, Weight: 81.80, Cost: 45},
				{ID: 8, Weight: 19.36, Cost: 79},
				{ID: 9, Weight: 6.76, Cost: 64},
			}},
			want: []int{8, 9},
		},
	}
}

// rngFromSeed returns a deterministic *rand.Rand; seed==0 ⇒ defaultSeed.
func rngFromSeed(seed int64) *rand.Rand {
	if seed == 0 {
		seed = defaultSeed
	}

	return rand.New(rand.NewSource(seed))
}

// randomInstance builds n items with two-decimal weights in [0, 100] and
// costs in [0, 100], and an integer capacity in [1, 100].
func randomInstance(r *rand.Rand, n int) selector.Instance {
	items := make([]selector.Item, n)
	for i := 0; i < n; i++ {
		items[i] = selector.Item{
			ID:     i + 1,
			Weight: float64(r.Intn(10001)) / 100,
			Cost:   r.Intn(101),
		}
	}
	// Shuffle IDs so that input order and ID order differ.
	r.Shuffle(n, func(a, b int) { items[a].ID, items[b].ID = items[b].ID, items[a].ID })

	return selector.Instance{Capacity: float64(1 + r.Intn(100)), Items: items}
}

// oracle enumerates every subset mask and returns the best cost and the
// minimal weight among max-cost feasible subsets.
func oracle(inst selector.Instance) (bestCost int, bestWeight float64) {
	n := len(inst.Items)
	bestWeight = math.Inf(1)
	var mask uint64
	for mask = 0; mask < 1<<uint(n); mask++ {
		w, c := maskTotals(inst.Items, mask)
		if w > inst.Capacity+epsWeight {
			continue
		}
		if c > bestCost || (c == bestCost && w < bestWeight) {
			bestCost, bestWeight = c, w
		}
	}
	if math.IsInf(bestWeight, 1) {
		bestWeight = 0
	}

	return bestCost, bestWeight
}

func maskTotals(items []selector.Item, mask uint64) (float64, int) {
	var (
		w float64
		c int
	)
	for i := range items {
		if mask&(1<<uint(i)) != 0 {
			w += items[i].Weight
			c += items[i].Cost
		}
	}

	return w, c
}

// totals sums the weight and cost of a selection.
func totals(items []selector.Item) (float64, int) {
	var (
		w float64
		c int
	)
	for _, it := range items {
		w += it.Weight
		c += it.Cost
	}

	return w, c
}

// Repeat runs fn n times as subtests, to expose hidden nondeterminism.
func Repeat(t *testing.T, n int, fn func(t *testing.T)) {
	t.Helper()
	for i := 0; i < n; i++ {
		t.Run("", fn)
	}
}
