package lineproc

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/packer/selector"
)

// maxLineBytes caps a single input line.
const maxLineBytes = 1 << 20

// Stats summarises one Process call.
type Stats struct {
	Lines   int // non-blank lines answered
	Solved  int // lines with a non-empty selection
	Empty   int // valid lines whose best selection is empty
	Skipped int // lines answered "-" for a malformed capacity
}

// Processor solves problem lines. It holds no per-run state and may be
// shared by concurrent Process calls.
type Processor struct {
	opts Options
	log  *slog.Logger
}

// New validates opts and builds a Processor.
func New(opts ...Option) (*Processor, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := validateOptions(o); err != nil {
		return nil, err
	}
	if _, err := selector.Resolve(o.Selector...); err != nil {
		return nil, err
	}
	l := o.Logger
	if l == nil {
		l = NoopLogger()
	}

	return &Processor{opts: o, log: l}, nil
}

// job is one non-blank input line.
type job struct {
	no   int
	text string
}

// outcome is the answer to one job.
type outcome struct {
	out     string
	empty   bool
	skipped bool
}

// Process reads lines from r and writes one answer per non-blank line to w,
// in input order. Blank lines produce no output.
//
// Lines are read in batches of Options.BatchSize and each batch is solved by
// up to Options.Workers goroutines. When a line fails, every answer before it
// is written and flushed and the error names that line, independent of
// Workers and BatchSize.
//
// Errors: *LineError wrapping ErrMalformedItem, ErrLimitExceeded or (with
// CapacityPolicyAbort) ErrMalformedCapacity; ErrInput for read/write failures;
// selector.ErrCanceled when ctx is done.
func (p *Processor) Process(ctx context.Context, r io.Reader, w io.Writer) (Stats, error) {
	start := time.Now()
	st, err := p.process(ctx, r, w)
	LogRun(ctx, p.log, st, start, err)

	return st, err
}

func (p *Processor) process(ctx context.Context, r io.Reader, w io.Writer) (Stats, error) {
	var st Stats
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	bw := bufio.NewWriter(w)

	batch := make([]job, 0, p.opts.BatchSize)
	no := 0
	for {
		batch = batch[:0]
		for len(batch) < p.opts.BatchSize && sc.Scan() {
			no++
			text := sc.Text()
			if strings.TrimSpace(text) == "" {
				continue
			}
			batch = append(batch, job{no: no, text: text})
		}
		if len(batch) == 0 {
			break
		}
		if err := ctx.Err(); err != nil {
			_ = bw.Flush()
			return st, fmt.Errorf("%w: %w", selector.ErrCanceled, err)
		}

		outs, k, err := p.solveBatch(ctx, batch)
		for _, o := range outs[:k] {
			st.Lines++
			switch {
			case o.skipped:
				st.Skipped++
			case o.empty:
				st.Empty++
			default:
				st.Solved++
			}
			if _, werr := bw.WriteString(o.out + "\n"); werr != nil {
				return st, fmt.Errorf("%w: write: %w", ErrInput, werr)
			}
		}
		if err != nil {
			if ferr := bw.Flush(); ferr != nil {
				return st, fmt.Errorf("%w: write: %w", ErrInput, ferr)
			}
			return st, err
		}
	}
	if err := sc.Err(); err != nil {
		_ = bw.Flush()
		return st, fmt.Errorf("%w: read: %w", ErrInput, err)
	}
	if err := bw.Flush(); err != nil {
		return st, fmt.Errorf("%w: write: %w", ErrInput, err)
	}

	return st, nil
}

// solveBatch answers every job of batch, preserving order. It returns the
// outcomes, the index k of the first failing job (len(batch) when none
// failed) and that job's error. outs[:k] are complete.
//
// A failing line does not cancel its siblings, so every line before the
// first failure is answered whatever the scheduling.
func (p *Processor) solveBatch(ctx context.Context, batch []job) ([]outcome, int, error) {
	outs := make([]outcome, len(batch))
	errs := make([]error, len(batch))
	var g errgroup.Group
	g.SetLimit(p.opts.Workers)
	for i := range batch {
		i := i
		g.Go(func() error {
			outs[i], errs[i] = p.solveLine(ctx, batch[i].no, batch[i].text)
			return nil
		})
	}
	_ = g.Wait()

	for k, err := range errs {
		if err != nil {
			return outs, k, err
		}
	}

	return outs, len(batch), nil
}

// solveLine parses and solves one line. no is the 1-based line number used
// in errors and log records.
func (p *Processor) solveLine(ctx context.Context, no int, text string) (outcome, error) {
	inst, err := p.parse(text)
	if err == nil {
		err = p.opts.Limits.Check(inst)
	}
	if err != nil {
		if errors.Is(err, ErrMalformedCapacity) && p.opts.CapacityPolicy == CapacityPolicySkip {
			LogLine(ctx, p.log, no, selector.Result{}, err)
			return outcome{out: NoSelection, skipped: true}, nil
		}
		err = &LineError{Line: no, Err: err}
		LogLine(ctx, p.log, no, selector.Result{}, err)
		return outcome{}, err
	}

	res, err := selector.Solve(ctx, inst, p.opts.Selector...)
	if errors.Is(err, selector.ErrCanceled) {
		return outcome{}, err
	}
	if err != nil {
		class := ErrMalformedItem
		if errors.Is(err, selector.ErrTooManyItems) {
			class = ErrLimitExceeded
		}
		err = &LineError{Line: no, Err: fmt.Errorf("%w: %w", class, err)}
		LogLine(ctx, p.log, no, selector.Result{}, err)
		return outcome{}, err
	}
	LogLine(ctx, p.log, no, res, nil)

	return outcome{out: FormatResult(res.Items), empty: res.Empty()}, nil
}

func (p *Processor) parse(text string) (selector.Instance, error) {
	if p.opts.Format == FormatJSON {
		return ParseJSONLine(text)
	}

	return ParseLine(text)
}
