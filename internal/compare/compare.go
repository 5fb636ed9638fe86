// Package compare implements the block-wise comparison engine: fixed-size
// reads into a pair of sentinel-padded buffers, a word-wise scan for the
// first divergence, and the loop that drives both until one input runs out.
package compare

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"bcmp/cli"
	"bcmp/internal/input"
	"bcmp/internal/report"
)

const (
	// maxBlockSize caps the buffer allocation against pathological stat
	// results on exotic filesystems.
	maxBlockSize = 4 << 20
)

// Engine compares two positioned inputs block by block.
type Engine struct {
	cfg *cli.Config
	in  [2]*input.Handle
	rep *report.Reporter
	log zerolog.Logger

	bufSize int
	buf     [2][]byte
}

// New sizes the shared buffers from both inputs' optimal block sizes and
// returns an engine ready to run. The two buffers share one allocation and
// each carries one extra word of sentinel room.
func New(cfg *cli.Config, in0, in1 *input.Handle, rep *report.Reporter, log zerolog.Logger) *Engine {
	bufSize := bufferSize(in0.BlockSize(), in1.BlockSize())

	backing := make([]byte, 2*(bufSize+wordSize))
	e := &Engine{
		cfg:     cfg,
		in:      [2]*input.Handle{in0, in1},
		rep:     rep,
		log:     log,
		bufSize: bufSize,
	}
	e.buf[0] = backing[:bufSize+wordSize]
	e.buf[1] = backing[bufSize+wordSize:]
	return e
}

// Run executes the comparison and returns the exit status: 0 identical,
// 1 different, 2 on a fatal read error (with the diagnostic as the error).
func (e *Engine) Run() (int, error) {
	e.log.Debug().Int("buf_size", e.bufSize).Msg("starting block comparison")

	if e.cfg.IgnoreInitial > 0 {
		for i, h := range e.in {
			if h.Position() >= 0 {
				continue
			}
			if err := e.skipPrefix(i); err != nil {
				return 2, err
			}
		}
	}

	var (
		lineNumber int64 = 1
		charNumber       = e.cfg.IgnoreInitial + 1
		status     int
	)
	buf0, buf1 := e.buf[0], e.buf[1]

	for {
		read0, err := readBlock(e.in[0], buf0[:e.bufSize])
		if err != nil {
			return 2, fmt.Errorf("%s: %w", e.in[0].Name(), err)
		}
		read1, err := readBlock(e.in[1], buf1[:e.bufSize])
		if err != nil {
			return 2, fmt.Errorf("%s: %w", e.in[1].Name(), err)
		}

		// Each sentinel is the complement of the other buffer's byte at the
		// same offset, so the scan is guaranteed to stop no later than the
		// shorter read length.
		buf0[read0] = ^buf1[read0]
		buf1[read1] = ^buf0[read1]

		var at int
		if e.cfg.Mode == cli.FirstDiff {
			at = firstDiffCount(buf0, buf1, &lineNumber)
		} else {
			at = firstDiff(buf0, buf1)
		}

		charNumber += int64(at)
		smaller := read0
		if read1 < smaller {
			smaller = read1
		}

		if at < smaller {
			switch e.cfg.Mode {
			case cli.FirstDiff:
				e.rep.FirstDiff(charNumber, lineNumber, buf0[at], buf1[at])
				return 1, nil
			case cli.StatusOnly:
				return 1, nil
			case cli.AllDiffs:
				for ; at < smaller; at, charNumber = at+1, charNumber+1 {
					if c0, c1 := buf0[at], buf1[at]; c0 != c1 {
						e.rep.DiffByte(charNumber, c0, c1)
					}
				}
				status = 1
			}
		}

		if read0 != read1 {
			shorter := 0
			if read1 < read0 {
				shorter = 1
			}
			e.log.Debug().Str("input", e.in[shorter].Name()).Msg("end of stream before the other input")
			if e.cfg.Mode != cli.StatusOnly {
				e.rep.EOF(e.in[shorter].Name())
			}
			return 1, nil
		}
		if read0 != e.bufSize {
			return status, nil
		}
	}
}

// skipPrefix reads and discards the ignore-prefix from an input that does
// not support seeking. Reaching end-of-stream early is not an error; it
// means no usable bytes remain.
func (e *Engine) skipPrefix(i int) error {
	h := e.in[i]
	remaining := e.cfg.IgnoreInitial
	for remaining > 0 {
		chunk := int64(e.bufSize)
		if remaining < chunk {
			chunk = remaining
		}
		n, err := h.Read(e.buf[i][:chunk])
		remaining -= int64(n)
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("%s: %w", h.Name(), err)
		}
		if n == 0 {
			break
		}
	}
	return nil
}

// readBlock fills buf across short reads until full or end-of-stream and
// returns the number of valid bytes.
func readBlock(h *input.Handle, buf []byte) (int, error) {
	n, err := io.ReadFull(h, buf)
	switch err {
	case nil, io.EOF, io.ErrUnexpectedEOF:
		return n, nil
	}
	return n, err
}

// bufferSize returns the least common multiple of the two optimal block
// sizes, rounded up to a whole number of words and capped at maxBlockSize.
func bufferSize(a, b int64) int {
	l := a / gcd(a, b) * b
	if l <= 0 || l > maxBlockSize {
		l = a
		if b > l {
			l = b
		}
		if l > maxBlockSize {
			l = maxBlockSize
		}
	}
	return int((l + wordSize - 1) &^ (wordSize - 1))
}

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
