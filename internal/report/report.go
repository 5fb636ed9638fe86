// Package report renders comparison results in the POSIX cmp output
// formats (POSIX 1003.2-1992 section 4.10.6).
package report

import (
	"bufio"
	"fmt"
	"io"
)

// Reporter formats the result lines of one comparison run. Report lines are
// buffered on out; the end-of-stream diagnostic goes to errOut directly.
type Reporter struct {
	out        *bufio.Writer
	errOut     io.Writer
	names      [2]string
	printBytes bool
}

// New builds a Reporter for the two named inputs. When printBytes is set,
// differing byte values are also rendered as quoted characters.
func New(out, errOut io.Writer, name0, name1 string, printBytes bool) *Reporter {
	return &Reporter{
		out:        bufio.NewWriter(out),
		errOut:     errOut,
		names:      [2]string{name0, name1},
		printBytes: printBytes,
	}
}

// FirstDiff reports the first differing byte pair at the 1-based offset
// charNumber and 1-based line lineNumber.
func (r *Reporter) FirstDiff(charNumber, lineNumber int64, c0, c1 byte) {
	if !r.printBytes {
		fmt.Fprintf(r.out, "%s %s differ: char %d, line %d\n",
			r.names[0], r.names[1], charNumber, lineNumber)
		return
	}
	fmt.Fprintf(r.out, "%s %s differ: byte %d, line %d is %3o %s %3o %s\n",
		r.names[0], r.names[1], charNumber, lineNumber,
		c0, quoteByte(c0, 0), c1, quoteByte(c1, 0))
}

// DiffByte reports one differing byte pair in all-differences mode.
func (r *Reporter) DiffByte(charNumber int64, c0, c1 byte) {
	if !r.printBytes {
		fmt.Fprintf(r.out, "%6d %3o %3o\n", charNumber, c0, c1)
		return
	}
	fmt.Fprintf(r.out, "%6d %3o %s %3o %s\n",
		charNumber, c0, quoteByte(c0, 4), c1, quoteByte(c1, 0))
}

// EOF reports that the named input ended before the other one.
func (r *Reporter) EOF(name string) {
	fmt.Fprintf(r.errOut, "cmp: EOF on %s\n", name)
}

// Flush drains buffered report lines. A write failure anywhere in the run
// surfaces here; callers must treat it as an operational error.
func (r *Reporter) Flush() error {
	return r.out.Flush()
}

// quoteByte renders c the way cat -t does: M- marks the high bit, ^X marks
// control characters, ^? is delete. The result is padded with spaces on the
// right to width characters.
func quoteByte(c byte, width int) string {
	b := make([]byte, 0, 5)
	if c >= 128 {
		b = append(b, 'M', '-')
		c -= 128
	}
	switch {
	case c < 32:
		b = append(b, '^', c+64)
	case c == 127:
		b = append(b, '^', '?')
	default:
		b = append(b, c)
	}
	for len(b) < width {
		b = append(b, ' ')
	}
	return string(b)
}
