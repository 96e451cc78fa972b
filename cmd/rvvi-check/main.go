// Package main provides the rvvi-check command, which validates an
// RVVI-TEXT trace file.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"

	"go.uber.org/zap"

	"github.com/sarchlab/rvvicheck/check"
	"github.com/sarchlab/rvvicheck/report"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command and returns its exit code.
func run(args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("rvvi-check", flag.ContinueOnError)
	flags.SetOutput(stderr)
	verbose := flags.Bool("v", false, "Log every accepted record")
	summaryPath := flags.String("summary", "", "Write a YAML summary to this path (- for stdout)")
	flags.Usage = func() {
		fmt.Fprintf(stderr, "Usage: rvvi-check [options] <trace-file>\n")
		fmt.Fprintf(stderr, "\nValidate an RVVI-TEXT trace file.\n")
		fmt.Fprintf(stderr, "\nOptions:\n")
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 1
	}

	if flags.NArg() != 1 {
		flags.Usage()
		return 1
	}

	tracePath := flags.Arg(0)

	log := newLogger(stderr, *verbose)
	defer func() { _ = log.Sync() }()

	collector := report.NewCollector()
	checker := check.NewChecker(check.WithHooks(collector))
	if *verbose {
		checker.AcceptHook(&recordLogger{log: log})
	}

	log.Debug("checking trace", zap.String("file", tracePath))
	err := checker.CheckFile(tracePath)

	if errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(stderr, "Error: File '%s' not found.\n", tracePath)
		return 1
	}

	if *summaryPath != "" {
		if serr := writeSummary(*summaryPath, stdout, collector.Summarize(tracePath, checker, err)); serr != nil {
			log.Error("failed to write summary", zap.String("path", *summaryPath), zap.Error(serr))
			return 1
		}
	}

	stats := checker.Stats()
	log.Debug("check finished",
		zap.Int("physical_lines", stats.PhysicalLines),
		zap.Int("logical_lines", stats.Lines),
		zap.Int("records", stats.Records))

	if err != nil {
		var lineErr *check.LineError
		if errors.As(err, &lineErr) {
			fmt.Fprintln(stderr, lineErr.Error())
		} else {
			fmt.Fprintf(stderr, "Error: %v\n", err)
		}
		fmt.Fprintln(stderr, "Trace file is invalid.")
		return 1
	}

	fmt.Fprintln(stdout, "Trace file is valid.")
	return 0
}

func writeSummary(path string, stdout io.Writer, s *report.Summary) error {
	if path == "-" {
		return report.Write(stdout, s)
	}
	return report.Save(path, s)
}
