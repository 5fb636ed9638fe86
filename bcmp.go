// Package bcmp compares two byte streams and reports where they first
// diverge, every divergence, or only a pass/fail status, with the exit
// status and output formats of cmp(1).
package bcmp

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"bcmp/cli"
	"bcmp/internal/compare"
	"bcmp/internal/input"
	"bcmp/internal/report"
)

// App wires one comparison run together: it opens the inputs, applies the
// identity shortcuts, drives the engine, and aggregates the exit status.
type App struct {
	cfg    *cli.Config
	log    zerolog.Logger
	out    io.Writer
	errOut io.Writer

	rep  *report.Reporter
	mode cli.Mode
}

// New creates an App writing to the process's standard streams.
func New(cfg *cli.Config, log zerolog.Logger) *App {
	return &App{cfg: cfg, log: log, out: os.Stdout, errOut: os.Stderr, mode: cfg.Mode}
}

// SetOutput redirects report lines and diagnostics, chiefly for tests.
func (a *App) SetOutput(out, errOut io.Writer) {
	a.out = out
	a.errOut = errOut
}

// Run executes the comparison and returns the process exit status:
// 0 identical, 1 different, 2 operational error. A non-nil error carries
// the diagnostic for standard error and always means status 2.
func (a *App) Run() (int, error) {
	var handles []*input.Handle
	status, err := a.run(&handles)

	// Both handles are closed on every path, early shortcut exits included,
	// and a failed close is an operational error.
	for _, h := range handles {
		status, err = aggregateClose(status, err, h.Name(), h.Close())
	}

	if a.rep != nil && status != 0 && a.mode != cli.StatusOnly {
		if ferr := a.rep.Flush(); ferr != nil && err == nil {
			status, err = 2, errors.New("write failed")
		}
	}
	return status, err
}

func (a *App) run(handles *[]*input.Handle) (int, error) {
	cfg := a.cfg

	in := make([]*input.Handle, 0, 2)
	for i := 0; i < 2; i++ {
		// Two operands naming the same file are identical, but only after
		// the first open so its IO errors still surface normally.
		if i == 1 && cfg.Files[0] == cfg.Files[1] {
			a.log.Debug().Str("file", cfg.Files[1]).Msg("operands name the same input")
			return 0, nil
		}
		h, err := input.Open(cfg.Files[i], cfg.IgnoreInitial)
		if err != nil {
			var oe *input.OpenError
			if errors.As(err, &oe) && cfg.Mode == cli.StatusOnly {
				// Status-only runs report nothing, not even open failures.
				return 2, nil
			}
			return 2, err
		}
		*handles = append(*handles, h)
		in = append(in, h)
	}
	in0, in1 := in[0], in[1]

	// Same storage object at the same position: identical without reading.
	if in0.SameFile(in1) && in0.Position() == in1.Position() {
		a.log.Debug().Str("file", in0.Name()).Msg("inputs are the same object")
		return 0, nil
	}

	// Report text sent to the null device has no reader; drop to
	// status-only. This never changes the resulting status.
	mode := cfg.Mode
	if mode != cli.StatusOnly {
		if f, ok := a.out.(*os.File); ok && input.IsNullDevice(f) {
			a.log.Debug().Msg("output is the null device, status only")
			mode = cli.StatusOnly
		}
	}
	a.mode = mode

	// When only a status is needed and both inputs are regular files,
	// unequal sizes past the starting offsets settle it without a read.
	if mode == cli.StatusOnly && in0.IsRegular() && in1.IsRegular() {
		if remaining(in0) != remaining(in1) {
			a.log.Debug().Msg("regular file sizes differ")
			return 1, nil
		}
	}

	a.rep = report.New(a.out, a.errOut, in0.Name(), in1.Name(), cfg.PrintBytes)

	runCfg := *cfg
	runCfg.Mode = mode
	return compare.New(&runCfg, in0, in1, a.rep, a.log).Run()
}

// aggregateClose folds one handle's close result into the run outcome:
// a failed close is an operational error, but an earlier error wins.
func aggregateClose(status int, err error, name string, cerr error) (int, error) {
	if cerr != nil && err == nil {
		return 2, fmt.Errorf("%s: %v", name, cerr)
	}
	return status, err
}

// remaining is the byte count left past the effective starting offset,
// clamped at zero.
func remaining(h *input.Handle) int64 {
	r := h.Size() - h.Position()
	if r < 0 {
		r = 0
	}
	return r
}
