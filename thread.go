package lazyre

import (
	"fmt"
	"strings"
)

// Thread is the execution state the runner reports for a match: the
// instruction it stopped at, the label of the Regexp that produced it and
// the rune offsets the match spans. Threads compare equal with == exactly
// when all four fields are equal.
type Thread struct {
	PC    int
	Label uint32
	Start uint64
	End   uint64
}

func (t Thread) String() string {
	return fmt.Sprintf("(%d, %d, %d, %d)", t.PC, t.Label, t.Start, t.End)
}

// ThreadList is an ordered set of threads.
type ThreadList []Thread

func (l ThreadList) String() string {
	parts := make([]string, len(l))
	for i, t := range l {
		parts[i] = t.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
