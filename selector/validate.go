package selector

import "math"

// validateOptions checks Options without looking at any instance.
//
// Complexity: O(1).
func validateOptions(opts Options) error {
	switch opts.Strategy {
	case InclusionOrder, IncludeExclude:
	default:
		return ErrUnsupportedStrategy
	}
	switch opts.Order {
	case OrderInput, OrderDensity:
	default:
		return ErrUnsupportedOrder
	}
	switch opts.BoundAlgo {
	case SuffixBound, NoBound:
	default:
		return ErrUnsupportedBound
	}
	if opts.MaxItems < 0 {
		return ErrBadMaxItems
	}

	return nil
}

// validateInstance enforces the Item contract: finite non-negative weights,
// non-negative costs whose total fits in an int, unique IDs, a non-NaN
// capacity, and len ≤ maxItems when maxItems > 0. A negative capacity is
// valid: it simply admits nothing.
//
// Complexity: O(n) time and O(n) extra space.
func validateInstance(inst Instance, maxItems int) error {
	if math.IsNaN(inst.Capacity) {
		return ErrInvalidCapacity
	}
	if maxItems > 0 && len(inst.Items) > maxItems {
		return ErrTooManyItems
	}

	seen := make(map[int]struct{}, len(inst.Items))
	var (
		it    Item
		ok    bool
		total int
	)
	for _, it = range inst.Items {
		if math.IsNaN(it.Weight) || math.IsInf(it.Weight, 0) {
			return ErrInvalidWeight
		}
		if it.Weight < 0 {
			return ErrNegativeWeight
		}
		if it.Cost < 0 {
			return ErrNegativeCost
		}
		if it.Cost > math.MaxInt-total {
			return ErrCostOverflow
		}
		total += it.Cost
		if _, ok = seen[it.ID]; ok {
			return ErrDuplicateID
		}
		seen[it.ID] = struct{}{}
	}

	return nil
}
