package main

import (
	"fmt"
	"os"
	"path/filepath"

	"bcmp"
	"bcmp/cli"
	"bcmp/internal/logging"
)

func main() {
	prog := filepath.Base(os.Args[0])

	cfg, err := cli.ParseFlags(prog, os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", prog, err)
		fmt.Fprintf(os.Stderr, "%s: Try `%s --help' for more information.\n", prog, prog)
		os.Exit(2)
	}

	if cfg.ShowHelp {
		if err := cli.Usage(os.Stdout, prog); err != nil {
			fmt.Fprintf(os.Stderr, "%s: write failed\n", prog)
			os.Exit(2)
		}
		return
	}
	if cfg.ShowVersion {
		if err := cli.Banner(os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "%s: write failed\n", prog)
			os.Exit(2)
		}
		return
	}

	app := bcmp.New(cfg, logging.FromEnv())
	status, err := app.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", prog, err)
	}
	os.Exit(status)
}
