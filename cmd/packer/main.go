// Command packer answers one subset-selection problem per input line.
//
//	packer [flags] [input-file]
//
// With no input file the bundled example is used; "-" reads stdin. Files
// ending in .gz or .zst are decompressed on the fly. Answers go to stdout,
// logs to stderr.
package main

import (
	"context"
	_ "embed"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"strconv"
	"strings"

	"github.com/katalvlaran/packer/lineproc"
	"github.com/katalvlaran/packer/selector"
)

//go:embed example_input.txt
var exampleInput string

const usage = `Usage: packer [flags] [input-file]

Positional arguments:
  input-file   Problem lines, one per line ("-" for stdin; default: bundled example)

Environment:
  PACKER_WORKERS     default for -workers
  PACKER_LOG_LEVEL   default for -log-level

Flags:
`

// Exit codes.
const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// config is the resolved command line.
type config struct {
	input    string
	workers  int
	format   lineproc.Format
	strict   bool
	limits   bool
	strategy selector.Strategy
	order    selector.Order
	level    slog.Level
	logJSON  bool
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cfg, err := parseArgs(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return exitOK
	}
	if err != nil {
		fmt.Fprintf(stderr, "packer: %v\n", err)
		return exitUsage
	}

	logger := lineproc.NewLogger(stderr, cfg.level, cfg.logJSON)

	opts := []lineproc.Option{
		lineproc.WithWorkers(cfg.workers),
		lineproc.WithFormat(cfg.format),
		lineproc.WithLogger(logger),
		lineproc.WithSelectorOptions(selector.WithStrategy(cfg.strategy), selector.WithOrder(cfg.order)),
	}
	if cfg.strict {
		opts = append(opts, lineproc.WithCapacityPolicy(lineproc.CapacityPolicyAbort))
	}
	if cfg.limits {
		opts = append(opts, lineproc.WithLimits(lineproc.DefaultLimits()))
	}
	p, err := lineproc.New(opts...)
	if err != nil {
		fmt.Fprintf(stderr, "packer: %v\n", err)
		return exitUsage
	}

	in, err := openInput(cfg.input)
	if err != nil {
		fmt.Fprintf(stderr, "packer: %v\n", err)
		return exitFailure
	}
	defer in.Close()

	logger.Debug("run started",
		"input", inputName(cfg.input),
		"workers", cfg.workers,
		"format", cfg.format.String(),
		"strategy", cfg.strategy.String(),
		"order", cfg.order.String(),
	)
	if _, err = p.Process(ctx, in, stdout); err != nil {
		fmt.Fprintf(stderr, "packer: %v\n", err)
		return exitFailure
	}

	return exitOK
}

func parseArgs(args []string, stderr io.Writer) (config, error) {
	cfg := config{workers: runtime.NumCPU()}
	if s := os.Getenv("PACKER_WORKERS"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return cfg, fmt.Errorf("PACKER_WORKERS: %w", err)
		}
		cfg.workers = n
	}
	levelText := os.Getenv("PACKER_LOG_LEVEL")
	if levelText == "" {
		levelText = "warn"
	}

	fs := flag.NewFlagSet("packer", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}
	var formatText, strategyText, orderText string
	fs.IntVar(&cfg.workers, "workers", cfg.workers, "lines solved in parallel")
	fs.StringVar(&formatText, "format", "text", "line format: text|json")
	fs.BoolVar(&cfg.strict, "strict", false, "abort the run on a malformed capacity instead of printing -")
	fs.BoolVar(&cfg.limits, "limits", false, "enforce 15 items, weight/cost/capacity up to 100")
	fs.StringVar(&strategyText, "strategy", "inclusion", "search strategy: inclusion|include-exclude")
	fs.StringVar(&orderText, "order", "input", "item order: input|density")
	fs.StringVar(&levelText, "log-level", levelText, "log level: debug|info|warn|error")
	fs.BoolVar(&cfg.logJSON, "log-json", false, "JSON logs on stderr")
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	switch fs.NArg() {
	case 0:
	case 1:
		cfg.input = fs.Arg(0)
	default:
		return cfg, fmt.Errorf("expected at most one input file, got %d", fs.NArg())
	}

	var err error
	if cfg.format, err = lineproc.ParseFormat(formatText); err != nil {
		return cfg, err
	}
	if cfg.strategy, err = parseStrategy(strategyText); err != nil {
		return cfg, err
	}
	if cfg.order, err = parseOrder(orderText); err != nil {
		return cfg, err
	}
	if cfg.level, err = lineproc.ParseLevel(levelText); err != nil {
		return cfg, fmt.Errorf("log level: %w", err)
	}

	return cfg, nil
}

func parseStrategy(s string) (selector.Strategy, error) {
	for _, st := range []selector.Strategy{selector.InclusionOrder, selector.IncludeExclude} {
		if strings.EqualFold(s, st.String()) {
			return st, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", selector.ErrUnsupportedStrategy, s)
}

func parseOrder(s string) (selector.Order, error) {
	for _, o := range []selector.Order{selector.OrderInput, selector.OrderDensity} {
		if strings.EqualFold(s, o.String()) {
			return o, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", selector.ErrUnsupportedOrder, s)
}

// openInput returns the bundled example when path is empty.
func openInput(path string) (io.ReadCloser, error) {
	if path == "" {
		return io.NopCloser(strings.NewReader(exampleInput)), nil
	}

	return lineproc.OpenInput(path)
}

func inputName(path string) string {
	if path == "" {
		return "(bundled example)"
	}

	return path
}
