// Package selector solves the 0/1 subset-selection problem exactly.
//
// Given a capacity and a list of items (ID, fractional weight, integer cost),
// Select returns the subset whose total weight does not exceed the capacity,
// whose total cost is maximal and, among equal-cost subsets, whose total
// weight is minimal. Exact ties are resolved by enumeration order: the first
// subset reached in pre-order wins.
//
// Search:
//
//   - InclusionOrder (default): explicit work-stack; each frame extends the
//     current subset only with items after the last chosen one.
//   - IncludeExclude: binary include/exclude recursion over the suffix.
//
// Both strategies visit subsets in the same pre-order and therefore return
// identical results, exact ties included.
//
// Pruning:
//
//   - Capacity: a child whose weight exceeds the capacity is never entered.
//     Weights are non-negative, so no extension of it can become feasible.
//   - SuffixBound (default): a branch is abandoned once its cost plus the cost
//     of every remaining item is strictly below the incumbent's cost.
//
// Complexity:
//
//   - Time:   O(2ⁿ) candidate evaluations in the worst case.
//   - Memory: O(n) for the stack / recursion plus O(n) for the incumbent.
//
// Use this package for instances with item counts in the tens. Solve accepts
// any size by default; WithMaxItems sets a cap.
//
// Example:
//
//	items := []selector.Item{
//	    {ID: 1, Weight: 14.55, Cost: 74},
//	    {ID: 2, Weight: 60.02, Cost: 74},
//	}
//	chosen := selector.Select(75, items) // both items, total weight 74.57
package selector
