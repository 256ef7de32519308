package selector

import (
	"errors"
	"math"
)

// Sentinel errors returned by Solve and the option validators.
var (
	// ErrInvalidCapacity indicates a NaN capacity.
	ErrInvalidCapacity = errors.New("selector: capacity is NaN")

	// ErrNegativeWeight indicates an item with weight < 0.
	ErrNegativeWeight = errors.New("selector: negative item weight")

	// ErrInvalidWeight indicates an item whose weight is NaN or ±Inf.
	ErrInvalidWeight = errors.New("selector: item weight is not finite")

	// ErrNegativeCost indicates an item with cost < 0.
	ErrNegativeCost = errors.New("selector: negative item cost")

	// ErrDuplicateID indicates two items sharing one ID within an instance.
	ErrDuplicateID = errors.New("selector: duplicate item ID")

	// ErrTooManyItems indicates an instance larger than Options.MaxItems.
	ErrTooManyItems = errors.New("selector: too many items for exhaustive search")

	// ErrCanceled is returned when the context passed to Solve is done
	// before the search completes. It wraps the context error.
	ErrCanceled = errors.New("selector: search canceled")

	// ErrUnsupportedStrategy indicates an unknown Strategy value.
	ErrUnsupportedStrategy = errors.New("selector: unsupported strategy")

	// ErrUnsupportedOrder indicates an unknown Order value.
	ErrUnsupportedOrder = errors.New("selector: unsupported order")

	// ErrUnsupportedBound indicates an unknown BoundAlgo value.
	ErrUnsupportedBound = errors.New("selector: unsupported bound")

	// ErrBadMaxItems indicates MaxItems < 0.
	ErrBadMaxItems = errors.New("selector: MaxItems must not be negative")

	// ErrCostOverflow indicates item costs whose total does not fit in an int.
	ErrCostOverflow = errors.New("selector: total item cost overflows int")
)

// Item is one candidate, taken or left whole.
type Item struct {
	ID     int     // unique within an Instance
	Weight float64 // ≥ 0
	Cost   int     // ≥ 0
}

// Instance is one capacity + item list, solved independently of all others.
type Instance struct {
	Capacity float64
	Items    []Item
}

// Result is the frozen best selection of one search.
type Result struct {
	// Items are the chosen items sorted by ID ascending; empty when nothing
	// beats the empty selection.
	Items []Item

	// Cost is the total cost of Items.
	Cost int

	// Weight is the total weight of Items, stabilised to 1e-9.
	Weight float64

	// Nodes is the number of feasible candidates evaluated, the empty
	// selection included.
	Nodes int
}

// IDs returns the IDs of the chosen items in ascending order.
func (r Result) IDs() []int {
	ids := make([]int, len(r.Items))
	for i := range r.Items {
		ids[i] = r.Items[i].ID
	}

	return ids
}

// Empty reports whether nothing was selected.
func (r Result) Empty() bool { return len(r.Items) == 0 }

// Strategy selects the enumeration scheme.
type Strategy int

const (
	// InclusionOrder walks an explicit stack; each frame only adds items
	// after the last chosen index.
	InclusionOrder Strategy = iota

	// IncludeExclude recurses over the suffix, including before excluding.
	IncludeExclude
)

// String implements fmt.Stringer.
func (s Strategy) String() string {
	switch s {
	case InclusionOrder:
		return "inclusion"
	case IncludeExclude:
		return "include-exclude"
	default:
		return "unknown"
	}
}

// Order selects the item processing order.
type Order int

const (
	// OrderInput keeps items in input order.
	OrderInput Order = iota

	// OrderDensity sorts items by descending cost/weight, index tiebreak.
	// Costs and weights of the result are unaffected; exact ties may resolve
	// to a different subset than under OrderInput.
	OrderDensity
)

// String implements fmt.Stringer.
func (o Order) String() string {
	switch o {
	case OrderInput:
		return "input"
	case OrderDensity:
		return "density"
	default:
		return "unknown"
	}
}

// BoundAlgo selects the cost bound used for pruning.
type BoundAlgo int

const (
	// SuffixBound prunes when cost + remaining cost < best cost.
	SuffixBound BoundAlgo = iota

	// NoBound disables cost pruning (testing only); capacity pruning stays.
	NoBound
)

// Options configures a search. Use DefaultOptions and Option functions.
//
// Strategy  – enumeration scheme (default InclusionOrder).
// Order     – item processing order (default OrderInput).
// BoundAlgo – cost pruning policy (default SuffixBound).
// MaxItems  – maximum number of items per instance; 0 (default) means no cap.
type Options struct {
	Strategy  Strategy
	Order     Order
	BoundAlgo BoundAlgo
	MaxItems  int
}

// DefaultOptions returns the canonical configuration.
func DefaultOptions() Options {
	return Options{
		Strategy:  InclusionOrder,
		Order:     OrderInput,
		BoundAlgo: SuffixBound,
	}
}

// Option mutates Options.
type Option func(*Options)

// WithStrategy sets the enumeration scheme.
func WithStrategy(s Strategy) Option {
	return func(o *Options) {
		o.Strategy = s
	}
}

// WithOrder sets the item processing order.
func WithOrder(ord Order) Option {
	return func(o *Options) {
		o.Order = ord
	}
}

// WithBound sets the cost pruning policy.
func WithBound(b BoundAlgo) Option {
	return func(o *Options) {
		o.BoundAlgo = b
	}
}

// WithMaxItems sets the instance size limit. 0 disables it; negative is
// rejected.
func WithMaxItems(n int) Option {
	return func(o *Options) {
		o.MaxItems = n
	}
}

// roundScale is the stabilisation grid for accumulated weights.
const roundScale = 1e9

// round1e9 snaps x to the 1e-9 grid so that sums of decimal weights compare
// exactly against the capacity and against each other. Magnitudes whose
// scaled value is not finite are returned unchanged.
func round1e9(x float64) float64 {
	scaled := x * roundScale
	if math.IsInf(scaled, 0) {
		return x
	}

	return math.Round(scaled) / roundScale
}
