package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/pflag"
)

// Version is the release reported by --version.
const Version = "1.0.0"

// Mode selects what a comparison run reports.
type Mode int

const (
	// FirstDiff prints the offset and line number of the first differing byte.
	FirstDiff Mode = iota
	// AllDiffs prints the decimal offset and octal values of every differing byte.
	AllDiffs
	// StatusOnly prints nothing and yields only an exit status.
	StatusOnly
)

// Config holds all the command-line flag and operand values.
type Config struct {
	Files         [2]string
	IgnoreInitial int64
	Mode          Mode
	PrintBytes    bool

	ShowVersion bool
	ShowHelp    bool
}

// ParseFlags parses GNU-style options and operands from args, which must not
// include the program name. Operand FILE2 defaults to "-" (standard input).
func ParseFlags(prog string, args []string) (*Config, error) {
	cfg := &Config{}

	fs := pflag.NewFlagSet(prog, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}

	printBytes := fs.BoolP("print-bytes", "b", false, "Output differing bytes as characters.")
	// Obsolescent spelling kept for compatibility with old scripts.
	printChars := fs.BoolP("print-chars", "c", false, "Output differing bytes as characters.")
	ignoreInitial := fs.StringP("ignore-initial", "i", "0", "Ignore differences in the first N bytes of input.")
	verbose := fs.BoolP("verbose", "l", false, "Output offsets and codes of all differing bytes.")
	silent := fs.BoolP("silent", "s", false, "Output nothing; yield exit status only.")
	quiet := fs.Bool("quiet", false, "Output nothing; yield exit status only.")
	version := fs.BoolP("version", "v", false, "Output version info.")
	help := fs.Bool("help", false, "Output this help.")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg.PrintBytes = *printBytes || *printChars

	// A bad option value is diagnosed even when version or help was also
	// requested.
	n, err := parseIgnoreInitial(*ignoreInitial)
	if err != nil {
		return nil, err
	}
	cfg.IgnoreInitial = n

	cfg.ShowVersion = *version
	cfg.ShowHelp = *help
	if cfg.ShowVersion || cfg.ShowHelp {
		return cfg, nil
	}

	switch {
	case *verbose:
		cfg.Mode = AllDiffs
	case *silent || *quiet:
		cfg.Mode = StatusOnly
	}

	operands := fs.Args()
	if len(operands) == 0 {
		last := prog
		if len(args) > 0 {
			last = args[len(args)-1]
		}
		return nil, fmt.Errorf("missing operand after `%s'", last)
	}
	if len(operands) > 2 {
		return nil, fmt.Errorf("extra operand `%s'", operands[2])
	}
	cfg.Files[0] = operands[0]
	cfg.Files[1] = "-"
	if len(operands) == 2 {
		cfg.Files[1] = operands[1]
	}

	return cfg, nil
}

func parseIgnoreInitial(value string) (int64, error) {
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid --ignore-initial value `%s'", value)
	}
	return n, nil
}

var optionHelp = []string{
	"-b  --print-bytes  Output differing bytes as characters.",
	"-i N  --ignore-initial=N  Ignore differences in the first N bytes of input.",
	"-l  --verbose  Output offsets and codes of all differing bytes.",
	"-s  --quiet  --silent  Output nothing; yield exit status only.",
	"-v  --version  Output version info.",
	"--help  Output this help.",
}

const (
	copyrightText    = "Copyright (C) 2026 the bcmp authors."
	freeSoftwareText = "This is free software; see the source for copying conditions.\n" +
		"There is NO warranty; not even for MERCHANTABILITY or FITNESS FOR A\n" +
		"PARTICULAR PURPOSE."
	authorshipText = "Written by the bcmp authors."
)

// Banner writes the --version output to w.
func Banner(w io.Writer) error {
	_, err := fmt.Fprintf(w, "cmp (bcmp) %s\n%s\n\n%s\n\n%s\n",
		Version, copyrightText, freeSoftwareText, authorshipText)
	return err
}

// Usage writes the help text to w.
func Usage(w io.Writer, prog string) error {
	text := fmt.Sprintf("Usage: %s [OPTION]... FILE1 [FILE2]\n", prog) +
		"If a FILE is `-' or missing, read standard input.\n"
	for _, line := range optionHelp {
		text += "  " + line + "\n"
	}
	_, err := io.WriteString(w, text)
	return err
}
