package lineproc_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/packer/lineproc"
	"github.com/katalvlaran/packer/selector"
)

// readFixture loads testdata/<name>.
func readFixture(t *testing.T, name string) string {
	t.Helper()
	b, err := os.ReadFile("testdata/" + name)
	require.NoError(t, err)

	return string(b)
}

// run builds a Processor with opts and processes input.
func run(t *testing.T, input string, opts ...lineproc.Option) (string, lineproc.Stats, error) {
	t.Helper()
	p, err := lineproc.New(opts...)
	require.NoError(t, err)
	var out bytes.Buffer
	st, err := p.Process(context.Background(), strings.NewReader(input), &out)

	return out.String(), st, err
}

func TestProcess_ReferenceFile(t *testing.T) {
	input := readFixture(t, "input.txt")
	want := readFixture(t, "output.txt")

	for _, workers := range []int{1, 2, 8} {
		for _, batch := range []int{1, 3, lineproc.DefaultBatchSize} {
			t.Run(fmt.Sprintf("workers=%d/batch=%d", workers, batch), func(t *testing.T) {
				got, st, err := run(t, input, lineproc.WithWorkers(workers), lineproc.WithBatchSize(batch))
				require.NoError(t, err)
				assert.Equal(t, want, got)
				assert.Equal(t, lineproc.Stats{Lines: 4, Solved: 3, Empty: 1}, st)
			})
		}
	}
}

func TestProcess_StrategiesAgree(t *testing.T) {
	input := readFixture(t, "input.txt")
	want := readFixture(t, "output.txt")
	got, _, err := run(t, input, lineproc.WithSelectorOptions(
		selector.WithStrategy(selector.IncludeExclude),
		selector.WithOrder(selector.OrderDensity),
	))
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestProcess_OrderPreservedUnderParallelism(t *testing.T) {
	var in, want strings.Builder
	for i := 1; i <= 300; i++ {
		// Item i alone fits; the expected answer is the line's own id.
		fmt.Fprintf(&in, "%d : (%d,%d.5,€%d) (%d,%d,€1)\n", i, i, i-1, i, i+1000, i+1)
		fmt.Fprintf(&want, "%d\n", i)
	}
	got, st, err := run(t, in.String(), lineproc.WithWorkers(16), lineproc.WithBatchSize(64))
	require.NoError(t, err)
	assert.Equal(t, want.String(), got)
	assert.Equal(t, 300, st.Solved)
}

func TestProcess_BlankLinesProduceNoOutput(t *testing.T) {
	got, st, err := run(t, "\n8 : (1,15.3,€34)\n   \n10 : (1,1,€1)\n\n")
	require.NoError(t, err)
	assert.Equal(t, "-\n1\n", got)
	assert.Equal(t, 2, st.Lines)
}

func TestProcess_MalformedCapacitySkipsLine(t *testing.T) {
	input := "10 : (1,1,€1)\nzero : (1,1,€1)\n0 : (1,1,€1)\n10 : (2,2,€2)\n"
	got, st, err := run(t, input)
	require.NoError(t, err)
	assert.Equal(t, "1\n-\n-\n2\n", got)
	assert.Equal(t, lineproc.Stats{Lines: 4, Solved: 2, Skipped: 2}, st)
}

func TestProcess_MalformedCapacityAbortPolicy(t *testing.T) {
	input := "10 : (1,1,€1)\n\nzero : (1,1,€1)\n"
	got, _, err := run(t, input,
		lineproc.WithCapacityPolicy(lineproc.CapacityPolicyAbort), lineproc.WithBatchSize(1))
	require.Error(t, err)
	assert.ErrorIs(t, err, lineproc.ErrMalformedCapacity)

	var le *lineproc.LineError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, 3, le.Line, "blank lines still count")
	assert.Equal(t, "1\n", got, "completed batches are flushed")
}

func TestProcess_MalformedItemFailsRun(t *testing.T) {
	input := "10 : (1,1,€1)\n10 : (1,1,€1) (2,x,€1)\n10 : (1,1,€1)\n"
	_, _, err := run(t, input)
	require.Error(t, err)
	assert.ErrorIs(t, err, lineproc.ErrMalformedItem)

	var le *lineproc.LineError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, 2, le.Line)
	assert.Contains(t, err.Error(), "line 2")
}

func TestProcess_FailureKeepsEarlierAnswers(t *testing.T) {
	first := strings.SplitN(readFixture(t, "input.txt"), "\n", 2)[0]
	input := first + "\n8 : (1,15.3,€34)\n10 : (1,oops)\n10 : (1,1,€1)\n"

	for _, workers := range []int{1, 4} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			got, st, err := run(t, input, lineproc.WithWorkers(workers))
			require.Error(t, err)
			assert.ErrorIs(t, err, lineproc.ErrMalformedItem)

			var le *lineproc.LineError
			require.True(t, errors.As(err, &le))
			assert.Equal(t, 3, le.Line)
			assert.Equal(t, "4\n-\n", got)
			assert.Equal(t, lineproc.Stats{Lines: 2, Solved: 1, Skipped: 1}, st)
		})
	}
}

func TestProcess_FirstFailingLineIsReported(t *testing.T) {
	var in strings.Builder
	for i := 1; i <= 40; i++ {
		switch i {
		case 7, 23:
			fmt.Fprintf(&in, "10 : (%d,bad,€1)\n", i)
		default:
			fmt.Fprintf(&in, "10 : (%d,1,€1)\n", i)
		}
	}

	for n := 0; n < 20; n++ {
		got, _, err := run(t, in.String(), lineproc.WithWorkers(8))
		var le *lineproc.LineError
		require.True(t, errors.As(err, &le))
		require.Equal(t, 7, le.Line)
		require.Equal(t, "1\n2\n3\n4\n5\n6\n", got)
	}
}

func TestProcess_LargeLineIsSolved(t *testing.T) {
	var in strings.Builder
	in.WriteString("10 : (1,1,€100)")
	for id := 2; id <= 70; id++ {
		fmt.Fprintf(&in, " (%d,90,€1)", id)
	}
	in.WriteString("\n")

	got, _, err := run(t, in.String())
	require.NoError(t, err)
	assert.Equal(t, "1\n", got)

	_, _, err = run(t, in.String(), lineproc.WithSelectorOptions(selector.WithMaxItems(64)))
	assert.ErrorIs(t, err, lineproc.ErrLimitExceeded)
	assert.ErrorIs(t, err, selector.ErrTooManyItems)
	assert.NotErrorIs(t, err, lineproc.ErrMalformedItem)
}

func TestProcess_SelectorRejectionIsMalformedItem(t *testing.T) {
	_, _, err := run(t, "10 : (1,1,€1) (1,2,€2)\n")
	assert.ErrorIs(t, err, lineproc.ErrMalformedItem)
	assert.ErrorIs(t, err, selector.ErrDuplicateID)
}

func TestProcess_LimitsEnforcedWhenEnabled(t *testing.T) {
	input := "150 : (1,1,€1)\n"
	got, _, err := run(t, input)
	require.NoError(t, err)
	assert.Equal(t, "1\n", got)

	_, _, err = run(t, input, lineproc.WithLimits(lineproc.DefaultLimits()))
	assert.ErrorIs(t, err, lineproc.ErrLimitExceeded)
}

func TestProcess_JSONFormat(t *testing.T) {
	input := `{"capacity":75,"items":[{"id":2,"weight":14.55,"cost":74},{"id":6,"weight":76.25,"cost":75},{"id":7,"weight":60.02,"cost":74}]}
{"capacity":8,"items":[{"id":1,"weight":15.3,"cost":34}]}
{"capacity":-1,"items":[]}
`
	got, st, err := run(t, input, lineproc.WithFormat(lineproc.FormatJSON))
	require.NoError(t, err)
	assert.Equal(t, "2,7\n-\n-\n", got)
	assert.Equal(t, lineproc.Stats{Lines: 3, Solved: 1, Empty: 1, Skipped: 1}, st)
}

func TestProcess_CanceledContext(t *testing.T) {
	p, err := lineproc.New()
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	_, err = p.Process(ctx, strings.NewReader("10 : (1,1,€1)\n"), &out)
	assert.ErrorIs(t, err, selector.ErrCanceled)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, out.String())
}

func TestProcess_ReadFailureIsInputError(t *testing.T) {
	p, err := lineproc.New()
	require.NoError(t, err)
	_, err = p.Process(context.Background(), iotest.ErrReader(errors.New("disk gone")), &bytes.Buffer{})
	assert.ErrorIs(t, err, lineproc.ErrInput)
	assert.Equal(t, lineproc.CodeIO, lineproc.Classify(err))
}

func TestNew_RejectsBadOptions(t *testing.T) {
	cases := map[string]struct {
		opt  lineproc.Option
		want error
	}{
		"workers":  {lineproc.WithWorkers(0), lineproc.ErrBadWorkers},
		"batch":    {lineproc.WithBatchSize(0), lineproc.ErrBadBatchSize},
		"format":   {lineproc.WithFormat(lineproc.Format(7)), lineproc.ErrUnsupportedFormat},
		"policy":   {lineproc.WithCapacityPolicy(lineproc.CapacityPolicy(7)), lineproc.ErrUnsupportedPolicy},
		"limits":   {lineproc.WithLimits(lineproc.Limits{MaxItems: -1}), lineproc.ErrBadLimits},
		"selector": {lineproc.WithSelectorOptions(selector.WithMaxItems(-1)), selector.ErrBadMaxItems},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := lineproc.New(tc.opt)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}
