package main

import (
	"fmt"
	"time"

	flag "github.com/spf13/pflag"
)

// cliFlags holds all parsed command-line flags.
type cliFlags struct {
	output      string
	format      string
	orientation string
	oversample  int
	timeout     time.Duration
	config      string
	split       bool
	outDir      string
	workers     int
	verbose     bool
	version     bool
}

// parseFlags parses args (including the program name at args[0]) and
// returns the flags plus the remaining positional arguments.
func parseFlags(args []string) (*cliFlags, []string, error) {
	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)

	f := &cliFlags{}
	fs.StringVarP(&f.output, "output", "o", "", "output PDF path (default: first input with .pdf extension)")
	fs.StringVar(&f.format, "format", "a4", "page format")
	fs.StringVar(&f.orientation, "orientation", "portrait", "page orientation: portrait or landscape")
	fs.IntVar(&f.oversample, "oversample", 2, "capture oversample factor (1-4)")
	fs.DurationVar(&f.timeout, "timeout", 30*time.Second, "per-page render timeout")
	fs.StringVarP(&f.config, "config", "c", "", "YAML document config file")
	fs.BoolVar(&f.split, "split", false, "generate one single-page PDF per input file")
	fs.StringVar(&f.outDir, "out-dir", ".", "output directory for --split mode")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers for --split mode (0 = auto)")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "verbose output")
	fs.BoolVar(&f.version, "version", false, "print version and exit")

	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: %s [flags] <page.html|page.md>...\n\n", args[0])
		fmt.Fprintf(fs.Output(), "Renders each fragment as one PDF page, in argument order.\n\nFlags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args[1:]); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}
