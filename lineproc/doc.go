// Package lineproc turns a stream of problem lines into a stream of answers.
//
// Each non-blank input line is one independent instance:
//
//	81 : (1,53.38,€45) (2,88.62,€98) (3,78.48,€3) (4,72.30,€76)
//
// or, with FormatJSON, one JSON object per line:
//
//	{"capacity":81,"items":[{"id":1,"weight":53.38,"cost":45}]}
//
// For every line the Processor emits the chosen IDs, comma-separated and
// ascending, or "-" when nothing is chosen. Output order always matches input
// order, whatever the worker count.
//
// Failure policy:
//
//   - ErrMalformedCapacity: by default the line yields "-" and processing
//     continues; CapacityPolicyAbort stops the run instead.
//   - ErrMalformedItem, ErrLimitExceeded: the run stops with a *LineError.
//   - ErrInput: the input cannot be opened, decoded or read.
//
// Lines are solved in parallel by a bounded errgroup; every line gets its
// own selector search, so workers share no mutable state.
package lineproc
