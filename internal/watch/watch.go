// Package watch reports changes to a fixed set of files.
//
// A FileWatcher subscribes to the directories holding its files rather
// than the files themselves, which keeps working when an editor saves by
// renaming a temporary file over the original. A Debouncer merges the
// burst of events one save produces into a single Event per path.
package watch

import (
	"errors"
	"math/bits"
	"strings"
	"time"
)

var (
	ErrWatcherClosed   = errors.New("watcher is closed")
	ErrAlreadyWatching = errors.New("path is already being watched")
	ErrPathNotExist    = errors.New("path does not exist")
	ErrNotFile         = errors.New("path is not a regular file")
)

// Op is a set of file operations.
type Op uint32

const (
	OpCreate Op = 1 << iota
	OpWrite
	OpRemove
	OpRename
	OpChmod
)

// opNames is indexed by bit position.
var opNames = [...]string{"CREATE", "WRITE", "REMOVE", "RENAME", "CHMOD"}

// String joins the names of the operations in op with "|".
func (op Op) String() string {
	var sb strings.Builder
	for rest := op; rest != 0; rest &= rest - 1 {
		i := bits.TrailingZeros32(uint32(rest))
		if i >= len(opNames) {
			break
		}
		if sb.Len() > 0 {
			sb.WriteByte('|')
		}
		sb.WriteString(opNames[i])
	}
	if sb.Len() == 0 {
		return "UNKNOWN"
	}
	return sb.String()
}

// Has reports whether op includes every operation in o.
func (op Op) Has(o Op) bool {
	return o != 0 && op&o == o
}

// Event is a change to a watched file.
type Event struct {
	Path string // absolute
	Op   Op     // may combine several operations once debounced

	// Timestamp is when the most recent underlying event was seen.
	Timestamp time.Time
}
