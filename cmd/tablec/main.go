package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/datatable/codec"
	"github.com/wippyai/datatable/internal/batch"
	"github.com/wippyai/datatable/internal/config"
	"github.com/wippyai/datatable/processor"
)

func main() {
	var (
		configFile  = flag.String("config", "", "Project file (default ./"+config.FileName+" when present)")
		srcDir      = flag.String("src", "", "Directory of exported .txt tables (without -config)")
		outDir      = flag.String("out", "", "Directory for .bytes and .strings assets (without -config)")
		codeDir     = flag.String("code", "", "Directory for generated Go code (without -config)")
		jobs        = flag.Int("jobs", 0, "Parallel table compiles (default from project or CPU count)")
		verbose     = flag.Bool("v", false, "Verbose development logging")
		interactive = flag.Bool("i", false, "Interactive mode with progress TUI")
		dumpFile    = flag.String("dump", "", "Print the records of a .bytes file and exit")
		dumpTable   = flag.String("table", "", "Source table used by -dump to decode columns")
		dumpStrings = flag.String("strings", "", "String asset used by -dump to resolve strings")
		types       = flag.Bool("types", false, "List supported column types and exit")
	)
	flag.Parse()

	if *types {
		listTypes()
		return
	}

	log, err := newLogger(*verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()
	processor.SetLogger(log)

	if *dumpFile != "" {
		if err := dump(os.Stdout, *dumpFile, *dumpTable, *dumpStrings); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	cfg, err := loadConfig(*configFile, *srcDir, *outDir, *codeDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Usage: tablec [-config tablec.toml] [-jobs n] [-v] [-i]")
		fmt.Fprintln(os.Stderr, "       tablec -src <dir> -out <dir> [-code <dir>]")
		fmt.Fprintln(os.Stderr, "       tablec -dump <file.bytes> [-table <file.txt>] [-strings <file.strings>]")
		fmt.Fprintln(os.Stderr, "       tablec -types")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if *interactive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "stdout is not a terminal, running without the TUI")
		} else {
			if err := runInteractive(ctx, cfg, *jobs); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			return
		}
	}

	if err := run(ctx, cfg, *jobs, log); err != nil {
		os.Exit(1)
	}
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.TimeKey = ""
	return cfg.Build()
}

func loadConfig(path, src, out, code string) (*config.Config, error) {
	if src != "" {
		if out == "" {
			out = src
		}
		return config.Single(src, out, code), nil
	}
	if path == "" {
		if _, err := os.Stat(config.FileName); err != nil {
			return nil, fmt.Errorf("no -config or -src given and %s not found", config.FileName)
		}
		path = config.FileName
	}
	return config.Load(path)
}

func run(ctx context.Context, cfg *config.Config, jobs int, log *zap.Logger) error {
	report, err := batch.Run(ctx, cfg, batch.Options{Jobs: jobs, Logger: log})

	totals := report.Totals()
	fmt.Printf("Tables: %d compiled, %d failed\n", len(report.Results)-report.Failed(), report.Failed())
	fmt.Printf("Rows:   %d written, %d omitted, %d cells defaulted\n", totals.Written, totals.Omitted, totals.Defaulted)
	fmt.Printf("Bytes:  %d\n", totals.Bytes)

	if err != nil {
		fmt.Fprintln(os.Stderr, "\nFailures:")
		for _, e := range multierr.Errors(err) {
			fmt.Fprintf(os.Stderr, "  %v\n", e)
		}
	}
	return err
}

func listTypes() {
	for _, c := range codec.Default().Codecs() {
		flags := ""
		switch {
		case c.IsID():
			flags = " (id column)"
		case c.IsComment():
			flags = " (excluded)"
		}
		fmt.Printf("%-12s %-18s %s%s\n", c.Keyword(), c.GoType(), strings.Join(c.TypeStrings(), ", "), flags)
	}
}
