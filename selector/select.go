package selector

import "context"

// Solve validates inst and opts, then runs the exhaustive search.
//
// Contracts:
//   - inst.Items is never mutated.
//   - An empty item list or a negative capacity yields an empty Result.
//   - Result.Items is sorted by ID and never nil on success.
//
// Errors: ErrInvalidCapacity, ErrInvalidWeight, ErrNegativeWeight,
// ErrNegativeCost, ErrCostOverflow, ErrDuplicateID, ErrTooManyItems (only
// with WithMaxItems), the option sentinels, and ErrCanceled (wrapping
// ctx.Err()) when ctx is done mid-search.
//
// Complexity: O(2ⁿ) time worst case, O(n) memory.
func Solve(ctx context.Context, inst Instance, opts ...Option) (Result, error) {
	o, err := Resolve(opts...)
	if err != nil {
		return Result{}, err
	}
	if err := validateInstance(inst, o.MaxItems); err != nil {
		return Result{}, err
	}
	if ctx == nil {
		ctx = context.Background()
	}

	return newEngine(ctx, inst, o).run(o.Strategy)
}

// Resolve applies opts over DefaultOptions and validates the result.
func Resolve(opts ...Option) (Options, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := validateOptions(o); err != nil {
		return Options{}, err
	}

	return o, nil
}

// Select returns the optimal subset for capacity and items, sorted by ID.
//
// Select never fails: malformed input (NaN or negative weights, duplicate
// IDs, costs whose total overflows int) yields the empty set, since validating input is
// the caller's job. Use Solve to observe those errors.
func Select(capacity float64, items []Item) []Item {
	res, err := Solve(context.Background(), Instance{Capacity: capacity, Items: items})
	if err != nil {
		return []Item{}
	}

	return res.Items
}
