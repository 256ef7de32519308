package lineproc

import (
	"strconv"
	"strings"

	"github.com/katalvlaran/packer/selector"
)

// NoSelection is emitted when nothing is chosen or the line is invalid.
const NoSelection = "-"

// FormatResult renders the IDs of items comma-separated in ascending order,
// or NoSelection for an empty slice. items must already be sorted by ID, as
// selector results are.
func FormatResult(items []selector.Item) string {
	if len(items) == 0 {
		return NoSelection
	}
	var b strings.Builder
	for i, it := range items {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(it.ID))
	}

	return b.String()
}
