package lineproc

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"strings"

	"github.com/katalvlaran/packer/selector"
)

// Sentinel errors. Returned errors wrap exactly one of them.
var (
	// ErrMalformedCapacity indicates a capacity that is not a positive integer.
	ErrMalformedCapacity = errors.New("lineproc: malformed capacity")

	// ErrMalformedItem indicates an item token that does not match the grammar,
	// or an item list the selector rejects (e.g. duplicate IDs).
	ErrMalformedItem = errors.New("lineproc: malformed item")

	// ErrLimitExceeded indicates an instance outside the configured Limits.
	ErrLimitExceeded = errors.New("lineproc: limit exceeded")

	// ErrInput indicates the input cannot be opened, decoded or read.
	ErrInput = errors.New("lineproc: input failure")

	// ErrBadWorkers indicates Workers < 1.
	ErrBadWorkers = errors.New("lineproc: workers must be positive")

	// ErrBadBatchSize indicates BatchSize < 1.
	ErrBadBatchSize = errors.New("lineproc: batch size must be positive")

	// ErrUnsupportedFormat indicates an unknown Format.
	ErrUnsupportedFormat = errors.New("lineproc: unsupported format")

	// ErrUnsupportedPolicy indicates an unknown CapacityPolicy.
	ErrUnsupportedPolicy = errors.New("lineproc: unsupported capacity policy")

	// ErrBadLimits indicates a negative limit.
	ErrBadLimits = errors.New("lineproc: limits must be non-negative")
)

// LineError attaches the 1-based input line number to a line failure.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string { return fmt.Sprintf("line %d: %v", e.Line, e.Err) }

func (e *LineError) Unwrap() error { return e.Err }

// Format selects the line syntax.
type Format int

const (
	// FormatText is "<capacity> : (<id>,<weight>,€<cost>) ...".
	FormatText Format = iota

	// FormatJSON is one {"capacity":..,"items":[..]} object per line.
	FormatJSON
)

// String implements fmt.Stringer.
func (f Format) String() string {
	switch f {
	case FormatText:
		return "text"
	case FormatJSON:
		return "json"
	default:
		return "unknown"
	}
}

// ParseFormat maps "text" / "json" to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text":
		return FormatText, nil
	case "json", "jsonl":
		return FormatJSON, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// CapacityPolicy decides what a malformed capacity does to the run.
type CapacityPolicy int

const (
	// CapacityPolicySkip emits "-" for the line and continues.
	CapacityPolicySkip CapacityPolicy = iota

	// CapacityPolicyAbort stops the run with a *LineError.
	CapacityPolicyAbort
)

// Limits bounds accepted instances. A zero field means unlimited.
type Limits struct {
	MaxItems    int     // items per line
	MaxWeight   float64 // per item
	MaxCost     int     // per item
	MaxCapacity float64 // per line
}

// DefaultLimits returns the classic packaging constraints: at most 15 items,
// item weight and cost up to 100, capacity up to 100.
func DefaultLimits() Limits {
	return Limits{MaxItems: 15, MaxWeight: 100, MaxCost: 100, MaxCapacity: 100}
}

// Check reports the first limit inst violates, wrapped in ErrLimitExceeded.
func (l Limits) Check(inst selector.Instance) error {
	if l.MaxCapacity > 0 && inst.Capacity > l.MaxCapacity {
		return fmt.Errorf("%w: capacity %g > %g", ErrLimitExceeded, inst.Capacity, l.MaxCapacity)
	}
	if l.MaxItems > 0 && len(inst.Items) > l.MaxItems {
		return fmt.Errorf("%w: %d items > %d", ErrLimitExceeded, len(inst.Items), l.MaxItems)
	}
	for _, it := range inst.Items {
		if l.MaxWeight > 0 && it.Weight > l.MaxWeight {
			return fmt.Errorf("%w: item %d weight %g > %g", ErrLimitExceeded, it.ID, it.Weight, l.MaxWeight)
		}
		if l.MaxCost > 0 && it.Cost > l.MaxCost {
			return fmt.Errorf("%w: item %d cost %d > %d", ErrLimitExceeded, it.ID, it.Cost, l.MaxCost)
		}
	}

	return nil
}

// DefaultBatchSize is the number of lines read before a parallel solve round.
const DefaultBatchSize = 1024

// Options configures a Processor.
//
// Workers        – parallel solves per batch (default runtime.NumCPU()).
// BatchSize      – lines buffered per round; bounds memory (default DefaultBatchSize).
// Format         – line syntax (default FormatText).
// CapacityPolicy – malformed capacity handling (default CapacityPolicySkip).
// Limits         – instance bounds (default: unlimited).
// Selector       – options forwarded to selector.Solve.
// Logger         – structured logger; nil discards.
type Options struct {
	Workers        int
	BatchSize      int
	Format         Format
	CapacityPolicy CapacityPolicy
	Limits         Limits
	Selector       []selector.Option
	Logger         *slog.Logger
}

// DefaultOptions returns the canonical configuration.
func DefaultOptions() Options {
	return Options{
		Workers:        runtime.NumCPU(),
		BatchSize:      DefaultBatchSize,
		Format:         FormatText,
		CapacityPolicy: CapacityPolicySkip,
	}
}

// Option mutates Options.
type Option func(*Options)

// WithWorkers sets the number of lines solved in parallel. 1 is sequential.
func WithWorkers(n int) Option {
	return func(o *Options) {
		o.Workers = n
	}
}

// WithBatchSize sets how many lines are buffered per round.
func WithBatchSize(n int) Option {
	return func(o *Options) {
		o.BatchSize = n
	}
}

// WithFormat sets the line syntax.
func WithFormat(f Format) Option {
	return func(o *Options) {
		o.Format = f
	}
}

// WithCapacityPolicy sets malformed capacity handling.
func WithCapacityPolicy(p CapacityPolicy) Option {
	return func(o *Options) {
		o.CapacityPolicy = p
	}
}

// WithLimits enables instance bounds.
func WithLimits(l Limits) Option {
	return func(o *Options) {
		o.Limits = l
	}
}

// WithSelectorOptions forwards options to every selector.Solve call.
func WithSelectorOptions(opts ...selector.Option) Option {
	return func(o *Options) {
		o.Selector = append(o.Selector, opts...)
	}
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}

// validateOptions checks Options; selector options are checked by Solve.
func validateOptions(o Options) error {
	if o.Workers < 1 {
		return ErrBadWorkers
	}
	if o.BatchSize < 1 {
		return ErrBadBatchSize
	}
	switch o.Format {
	case FormatText, FormatJSON:
	default:
		return ErrUnsupportedFormat
	}
	switch o.CapacityPolicy {
	case CapacityPolicySkip, CapacityPolicyAbort:
	default:
		return ErrUnsupportedPolicy
	}
	l := o.Limits
	if l.MaxItems < 0 || l.MaxWeight < 0 || l.MaxCost < 0 || l.MaxCapacity < 0 {
		return ErrBadLimits
	}

	return nil
}
