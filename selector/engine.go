// Package selector - exhaustive search engine.
//
// The engine owns every piece of mutable state of one search: the items in
// processing order, the current selection, and the incumbent (best so far).
// One engine serves exactly one Instance, so engines never share state and
// separate instances may be solved on separate goroutines.
//
// Rationale (succinct):
//  1. Items are copied into processing order once; the caller's slice is
//     never touched.
//  2. suffix[i] = Σ cost(items[i:]) feeds the SuffixBound test in O(1).
//  3. A candidate replaces the incumbent only on a strict win: higher cost,
//     or equal cost and lower weight. Exact ties keep the earlier subset.
//  4. Context checks are sparse (every 4096 steps) to keep the hot loop tight.

package selector

import (
	"cmp"
	"context"
	"fmt"
	"math"
	"slices"
	"sort"
)

// ctxCheckMask sets the sparse cancellation check period (4096 steps).
const ctxCheckMask = 4095

// frame is one level of the InclusionOrder work-stack.
type frame struct {
	next   int     // next candidate index to try as an extension
	weight float64 // accumulated weight of the selection at this level
	cost   int     // accumulated cost of the selection at this level
}

type engine struct {
	// Configuration / policy
	capacity float64
	useBound bool

	// Items in processing order and the bound precompute.
	items  []Item
	suffix []int // len(items)+1, suffix[len(items)] == 0

	// Cancellation
	ctx   context.Context
	steps int
	err   error

	// Current search state
	chosen []int // indices into items, ascending
	nodes  int

	// Incumbent
	best       []int
	bestCost   int
	bestWeight float64
}

func newEngine(ctx context.Context, inst Instance, opts Options) *engine {
	e := &engine{
		capacity: inst.Capacity,
		useBound: opts.BoundAlgo == SuffixBound,
		ctx:      ctx,
	}
	e.items = arrange(inst.Items, opts.Order)

	n := len(e.items)
	e.suffix = make([]int, n+1)
	for i := n - 1; i >= 0; i-- {
		e.suffix[i] = e.suffix[i+1] + e.items[i].Cost
	}
	e.chosen = make([]int, 0, n)
	e.best = make([]int, 0, n)

	return e
}

// arrange returns a copy of items in processing order.
func arrange(items []Item, ord Order) []Item {
	out := make([]Item, len(items))
	copy(out, items)
	if ord == OrderDensity {
		sort.Stable(byDensity(out))
	}

	return out
}

// byDensity orders items by descending cost/weight. sort.Stable keeps input
// order among equal densities.
type byDensity []Item

func (d byDensity) Len() int           { return len(d) }
func (d byDensity) Swap(i, j int)      { d[i], d[j] = d[j], d[i] }
func (d byDensity) Less(i, j int) bool { return density(d[i]) > density(d[j]) }

// density is cost/weight; a weightless item with positive cost ranks first.
func density(it Item) float64 {
	if it.Weight == 0 {
		if it.Cost > 0 {
			return math.Inf(1)
		}

		return 0
	}

	return float64(it.Cost) / it.Weight
}

// better reports whether (cost, weight) strictly beats the incumbent.
func (e *engine) better(cost int, weight float64) bool {
	if cost != e.bestCost {
		return cost > e.bestCost
	}

	return weight < e.bestWeight
}

// offer evaluates the current selection as a candidate.
func (e *engine) offer(weight float64, cost int) {
	e.nodes++
	if e.better(cost, weight) {
		e.best = append(e.best[:0], e.chosen...)
		e.bestCost = cost
		e.bestWeight = weight
	}
}

// bounded reports whether no extension of a selection with the given cost,
// using items from index i onward, can beat the incumbent.
func (e *engine) bounded(cost int, i int) bool {
	return e.useBound && cost+e.suffix[i] < e.bestCost
}

// stop performs the sparse cancellation check.
func (e *engine) stop() bool {
	if e.err != nil {
		return true
	}
	e.steps++
	if e.ctx == nil || (e.steps&ctxCheckMask) != 0 {
		return false
	}
	if err := e.ctx.Err(); err != nil {
		e.err = fmt.Errorf("%w: %w", ErrCanceled, err)
		return true
	}

	return false
}

// extend returns the stabilised weight of adding items[j], and whether the
// result still fits.
func (e *engine) extend(weight float64, j int) (float64, bool) {
	w := round1e9(weight + e.items[j].Weight)

	return w, w <= e.capacity
}

// runInclusion walks the subset tree with an explicit stack. Frame k holds the
// selection chosen[:k]; its children extend it with indices ≥ next.
func (e *engine) runInclusion() {
	n := len(e.items)
	stack := make([]frame, 1, n+1)
	stack[0] = frame{}

	var (
		top *frame
		j   int
		w   float64
		ok  bool
		c   int
	)
	for len(stack) > 0 {
		if e.stop() {
			return
		}
		top = &stack[len(stack)-1]
		if top.next >= n || e.bounded(top.cost, top.next) {
			stack = stack[:len(stack)-1]
			continue
		}

		j = top.next
		top.next++
		if w, ok = e.extend(top.weight, j); !ok {
			continue // over capacity: the whole branch is infeasible
		}
		c = top.cost + e.items[j].Cost

		e.chosen = append(e.chosen[:len(stack)-1], j)
		e.offer(w, c)
		stack = append(stack, frame{next: j + 1, weight: w, cost: c})
	}
}

// runIncludeExclude recurses over the suffix starting at i. The selection is
// evaluated on the include edge, so subsets are reached in the same pre-order
// as runInclusion.
func (e *engine) runIncludeExclude(i int, weight float64, cost int) {
	if i == len(e.items) || e.stop() || e.bounded(cost, i) {
		return
	}

	if w, ok := e.extend(weight, i); ok {
		c := cost + e.items[i].Cost
		e.chosen = append(e.chosen, i)
		e.offer(w, c)
		e.runIncludeExclude(i+1, w, c)
		e.chosen = e.chosen[:len(e.chosen)-1]
	}
	e.runIncludeExclude(i+1, weight, cost)
}

// run executes the configured strategy and freezes the incumbent.
func (e *engine) run(s Strategy) (Result, error) {
	// A negative capacity admits nothing, not even the empty selection as a
	// candidate; the default incumbent is already the answer.
	if e.capacity < 0 {
		return Result{Items: []Item{}}, nil
	}

	e.offer(0, 0) // the empty selection

	switch s {
	case IncludeExclude:
		e.runIncludeExclude(0, 0, 0)
	default:
		e.runInclusion()
	}
	if e.err != nil {
		return Result{}, e.err
	}

	out := make([]Item, len(e.best))
	for k, idx := range e.best {
		out[k] = e.items[idx]
	}
	slices.SortFunc(out, func(a, b Item) int { return cmp.Compare(a.ID, b.ID) })

	return Result{
		Items:  out,
		Cost:   e.bestCost,
		Weight: round1e9(e.bestWeight),
		Nodes:  e.nodes,
	}, nil
}
