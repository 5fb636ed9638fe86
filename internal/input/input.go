// Package input binds the two operands of a comparison run to open,
// readable handles and answers the metadata questions the shortcut checks
// need: storage identity, size, regular-file status, and optimal block size.
package input

import (
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/sys/unix"
)

// StdinName is the operand that designates standard input.
const StdinName = "-"

// defaultBlockSize is used when a stream reports no usable block size.
const defaultBlockSize = 8192

// OpenError reports a failed open of one operand. It is distinguished from
// other failures because status-only runs exit silently on it.
type OpenError struct {
	Name string
	Err  error
}

func (e *OpenError) Error() string { return fmt.Sprintf("%s: %v", e.Name, e.Err) }

func (e *OpenError) Unwrap() error { return e.Err }

// Handle is one input slot of a comparison run. It is opened once, carries a
// metadata snapshot taken at open time, and memoizes its positioning result.
type Handle struct {
	file   *os.File
	name   string
	opened bool

	stat unix.Stat_t

	ignoreInitial int64
	positioned    bool
	position      int64
}

// Open binds name to a readable handle. The name "-" means standard input.
// ignoreInitial is the count of leading bytes excluded from comparison.
func Open(name string, ignoreInitial int64) (*Handle, error) {
	if name == StdinName {
		return FromFile(os.Stdin, name, ignoreInitial)
	}

	f, err := os.Open(name)
	if err != nil {
		var perr *os.PathError
		if errors.As(err, &perr) {
			err = perr.Err
		}
		return nil, &OpenError{Name: name, Err: err}
	}

	h, err := FromFile(f, name, ignoreInitial)
	if err != nil {
		f.Close()
		return nil, err
	}
	h.opened = true
	return h, nil
}

// FromFile wraps an already-open stream, such as standard input. The caller
// keeps ownership of f; Close on the returned handle is a no-op.
func FromFile(f *os.File, name string, ignoreInitial int64) (*Handle, error) {
	h := &Handle{file: f, name: name, ignoreInitial: ignoreInitial}
	if err := unix.Fstat(int(f.Fd()), &h.stat); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return h, nil
}

// Name returns the operand text the handle was opened with.
func (h *Handle) Name() string { return h.name }

// Read reads from the underlying stream.
func (h *Handle) Read(p []byte) (int, error) { return h.file.Read(p) }

// Close releases the handle. Streams not opened by this package are left
// open for their owner.
func (h *Handle) Close() error {
	if !h.opened {
		return nil
	}
	h.opened = false
	return h.file.Close()
}

// Position resolves the stream's effective starting offset by seeking past
// the ignore-prefix. The result is computed at most once and reused; -1
// means the stream does not support seeking and the prefix must be read and
// discarded instead.
func (h *Handle) Position() int64 {
	if !h.positioned {
		h.positioned = true
		pos, err := h.file.Seek(h.ignoreInitial, io.SeekCurrent)
		if err != nil {
			h.position = -1
		} else {
			h.position = pos
		}
	}
	return h.position
}

// IsRegular reports whether the handle denotes a regular file.
func (h *Handle) IsRegular() bool {
	return h.stat.Mode&unix.S_IFMT == unix.S_IFREG
}

// Size returns the size recorded in the metadata snapshot.
func (h *Handle) Size() int64 { return h.stat.Size }

// BlockSize returns the stream's optimal I/O block size.
func (h *Handle) BlockSize() int64 {
	if bs := int64(h.stat.Blksize); bs > 0 {
		return bs
	}
	return defaultBlockSize
}

// SameFile reports whether h and other denote the same storage object with
// equal attributes. Two handles for which this holds, at equal positions,
// cannot differ.
func (h *Handle) SameFile(other *Handle) bool {
	return h.stat.Ino != 0 &&
		h.stat.Dev == other.stat.Dev &&
		h.stat.Ino == other.stat.Ino &&
		h.stat.Mode == other.stat.Mode &&
		h.stat.Size == other.stat.Size
}

// IsNullDevice reports whether f refers to the null device, in which case
// report text has no reader.
func IsNullDevice(f *os.File) bool {
	var fst, nst unix.Stat_t
	if err := unix.Fstat(int(f.Fd()), &fst); err != nil {
		return false
	}
	if err := unix.Stat(os.DevNull, &nst); err != nil {
		return false
	}
	return fst.Ino != 0 && fst.Dev == nst.Dev && fst.Ino == nst.Ino
}
