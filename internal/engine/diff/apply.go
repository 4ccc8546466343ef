package diff

import (
	"fmt"
	"strings"
)

// Apply replays edits against old and returns the result. Unchanged runs
// are copied from old and inserted ranges are taken from new. The script
// must be in the order Compute produces: increasing on both sides.
func Apply(old, new string, edits []Edit) (string, error) {
	var sb strings.Builder
	sb.Grow(len(new))

	oc, nc := 0, 0
	for i, e := range edits {
		if e.Range.Start > e.Range.End {
			return "", fmt.Errorf("edit %d %s: %w", i, e, ErrInvalidScript)
		}

		var run int
		switch e.Op {
		case Delete:
			run = e.Range.Start - oc
		case Insert:
			run = e.Range.Start - nc
		default:
			return "", fmt.Errorf("edit %d: unknown op %d: %w", i, e.Op, ErrInvalidScript)
		}
		if run < 0 || oc+run > len(old) || nc+run > len(new) {
			return "", fmt.Errorf("edit %d %s out of order: %w", i, e, ErrInvalidScript)
		}
		sb.WriteString(old[oc : oc+run])
		oc += run
		nc += run

		switch e.Op {
		case Delete:
			if e.Range.End > len(old) {
				return "", fmt.Errorf("edit %d %s past end of old text: %w", i, e, ErrInvalidScript)
			}
			oc = e.Range.End
		case Insert:
			if e.Range.End > len(new) {
				return "", fmt.Errorf("edit %d %s past end of new text: %w", i, e, ErrInvalidScript)
			}
			sb.WriteString(new[e.Range.Start:e.Range.End])
			nc = e.Range.End
		}
	}

	if len(old)-oc != len(new)-nc {
		return "", fmt.Errorf("trailing run of %d bytes does not match %d: %w",
			len(old)-oc, len(new)-nc, ErrInvalidScript)
	}
	sb.WriteString(old[oc:])
	return sb.String(), nil
}
