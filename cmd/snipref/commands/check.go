// Package commands implements CLI command handlers for snipref.
package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"snipref/internal/batch"
	"snipref/internal/checker"
	"snipref/internal/config"
	"snipref/internal/report"
	"snipref/internal/watch"
)

const (
	checkCmdUse   = "check <path> [path...]"
	checkCmdShort = "Check documentation files for snippet consistency"

	outputFilePerm = 0o600
)

// ErrCheckFailed is returned when a run produced findings at or above
// the configured fail-on severity. The CLI maps it to exit code 2 so
// scripts can tell failed checks apart from fatal errors.
var ErrCheckFailed = errors.New("check failed")

// CheckCommand holds flag state for the check subcommand.
type CheckCommand struct {
	format     string
	failOn     string
	noColor    bool
	outputPath string
	compress   bool
	workers    int
	watchMode  bool
	configPath string

	out io.Writer
}

// NewCheckCommand creates the check subcommand.
func NewCheckCommand() *cobra.Command {
	return newCheckCommand(os.Stdout)
}

func newCheckCommand(out io.Writer) *cobra.Command {
	cc := &CheckCommand{out: out}

	cmd := &cobra.Command{
		Use:   checkCmdUse,
		Short: checkCmdShort,
		Long: `Check documentation files for snippet consistency.

Backticked identifiers in prose must resolve to a declaration in a
code block at or before the point of mention. Identifiers defined in
code blocks but never mentioned in prose produce warnings.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			return cc.run(cobraCmd.Context(), args)
		},
	}

	cmd.Flags().StringVarP(&cc.format, "format", "f", "", "output format: text, json, yaml, binary")
	cmd.Flags().StringVar(&cc.failOn, "fail-on", "", "severity that fails the run: error, warning, never")
	cmd.Flags().BoolVar(&cc.noColor, "no-color", false, "disable colored output")
	cmd.Flags().StringVarP(&cc.outputPath, "output", "o", "", "write reports to file instead of stdout")
	cmd.Flags().BoolVar(&cc.compress, "compress", false, "lz4-compress binary output")
	cmd.Flags().IntVar(&cc.workers, "workers", 0, "concurrent check workers (0 = one per CPU)")
	cmd.Flags().BoolVarP(&cc.watchMode, "watch", "w", false, "re-check files as they change")
	cmd.Flags().StringVar(&cc.configPath, "config", "", "config file (default: .snipref.yaml)")

	return cmd
}

func (cc *CheckCommand) run(ctx context.Context, paths []string) error {
	cfg, err := config.Load(cc.configPath)
	if err != nil {
		return err
	}

	checkerCfg := cfg.CheckerConfig()

	if cc.failOn != "" {
		failOn, parseErr := report.ParseFailOn(cc.failOn)
		if parseErr != nil {
			return parseErr
		}

		checkerCfg.FailOn = failOn
	}

	format, err := report.ParseFormat(cc.format)
	if err != nil {
		return err
	}

	chk, err := checker.New(checkerCfg)
	if err != nil {
		return err
	}

	workers := cc.workers
	if workers == 0 {
		workers = cfg.Workers
	}

	writer, closeWriter, err := cc.openOutput()
	if err != nil {
		return err
	}

	defer closeWriter()

	writeOpts := report.WriteOptions{NoColor: cc.noColor, Compress: cc.compress}

	if cc.watchMode {
		return cc.runWatch(ctx, chk, paths, workers, format, writeOpts, cfg.DebounceInterval(), writer)
	}

	return cc.runOnce(ctx, chk, paths, workers, format, writeOpts, writer)
}

// runOnce checks all paths once and reports the combined outcome.
func (cc *CheckCommand) runOnce(
	ctx context.Context,
	chk *checker.Checker,
	paths []string,
	workers int,
	format report.Format,
	opts report.WriteOptions,
	writer io.Writer,
) error {
	results, err := batch.Run(ctx, chk, paths, workers)
	if err != nil {
		return err
	}

	for _, result := range results {
		writeErr := report.Write(result.Report, format, writer, opts)
		if writeErr != nil {
			return writeErr
		}
	}

	if !batch.Passed(results) {
		return ErrCheckFailed
	}

	return nil
}

// runWatch performs an initial check then re-checks changed files until
// the context is canceled. Watch runs never fail the process: findings
// are reported continuously instead.
func (cc *CheckCommand) runWatch(
	ctx context.Context,
	chk *checker.Checker,
	paths []string,
	workers int,
	format report.Format,
	opts report.WriteOptions,
	debounce time.Duration,
	writer io.Writer,
) error {
	err := cc.runOnce(ctx, chk, paths, workers, format, opts, writer)
	if err != nil && !errors.Is(err, ErrCheckFailed) {
		return err
	}

	slog.Info("watching for changes", "paths", len(paths), "debounce", debounce)

	return watch.Run(ctx, paths, debounce, func(path string) {
		rep, checkErr := chk.CheckPath(path)
		if checkErr != nil {
			slog.Warn("re-check failed", "path", path, "error", checkErr)
		}

		if rep == nil {
			return
		}

		writeErr := report.Write(rep, format, writer, opts)
		if writeErr != nil {
			slog.Warn("write report failed", "path", path, "error", writeErr)
		}
	})
}

// openOutput returns the report writer and a close function. Without
// --output it writes to the command's standard output.
func (cc *CheckCommand) openOutput() (io.Writer, func(), error) {
	if cc.outputPath == "" {
		return cc.out, func() {}, nil
	}

	f, err := os.OpenFile(cc.outputPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, outputFilePerm)
	if err != nil {
		return nil, nil, fmt.Errorf("open output: %w", err)
	}

	return f, func() { _ = f.Close() }, nil
}

// SetupLogging configures the default slog logger from verbosity flags.
func SetupLogging(verbose, quiet bool) {
	level := slog.LevelInfo

	switch {
	case quiet:
		level = slog.LevelError
	case verbose:
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}
