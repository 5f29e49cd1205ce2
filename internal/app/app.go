// Package app wires configuration, the sorter and the CLI presenters into
// the vsort command.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/agbru/vsort"
	"github.com/agbru/vsort/internal/cli"
	"github.com/agbru/vsort/internal/config"
	apperrors "github.com/agbru/vsort/internal/errors"
	"github.com/agbru/vsort/internal/hardware"
	"github.com/agbru/vsort/internal/logging"
	"github.com/agbru/vsort/internal/metrics"
	"github.com/agbru/vsort/internal/parallel"
	"github.com/agbru/vsort/internal/ui"
)

// Application represents the vsort command instance.
type Application struct {
	Config    config.AppConfig
	Stdin     io.Reader
	ErrWriter io.Writer

	logger   *logging.ZerologAdapter
	recorder *metrics.PrometheusRecorder
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithStdin sets the reader used when no --input file is given.
func WithStdin(r io.Reader) AppOption {
	return func(a *Application) { a.Stdin = r }
}

// New creates a new Application by parsing command-line arguments. args[0]
// is the program name.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter}
	for _, opt := range opts {
		opt(app)
	}

	programName := "vsort"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}
	app.Config = cfg

	level, _ := logging.ParseLevel(cfg.LogLevel)
	app.logger = logging.NewLevelLogger(errWriter, "vsort", level)
	if cfg.Metrics {
		app.recorder = metrics.NewPrometheusRecorder()
	}
	return app, nil
}

// Run executes the configured mode and returns the process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}
	if a.Config.Version {
		PrintVersion(out)
		return apperrors.ExitSuccess
	}

	ui.InitTheme(a.Config.Theme, a.Config.NoColor)

	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	err := a.run(ctx, out)
	if a.recorder != nil {
		if werr := a.recorder.WriteText(a.ErrWriter); werr != nil {
			a.logger.Error("failed to write metrics", werr)
		}
	}
	if err != nil {
		a.reportError(err)
	}
	return apperrors.ExitCode(err)
}

func (a *Application) run(ctx context.Context, out io.Writer) error {
	sorter, source, err := a.newSorter()
	if err != nil {
		return err
	}
	defer sorter.Close()

	switch {
	case a.Config.Info:
		return a.runInfo(sorter, source, out)
	case a.Config.Calibrate:
		return a.runCalibration(ctx, sorter, out)
	case a.Config.Bench > 0:
		return a.runBench(ctx, sorter, out)
	}
	return a.runSort(ctx, sorter, out)
}

// newSorter builds the sorter from the resolved thresholds and executor
// settings. source names where the thresholds came from.
func (a *Application) newSorter(extra ...vsort.Option) (*vsort.Sorter, string, error) {
	profile := hardware.Detect()
	thresholds, source := config.ResolveThresholds(a.Config, profile)

	kind, err := parallel.ParseKind(a.Config.Executor)
	if err != nil {
		return nil, "", apperrors.ValidationError{Field: "executor", Message: err.Error()}
	}

	opts := []vsort.Option{
		vsort.WithProfile(profile),
		vsort.WithThresholds(thresholds),
		vsort.WithExecutorKind(kind, a.Config.Workers),
		vsort.WithLogger(a.logger),
		vsort.WithMemoryLimit(a.Config.MemoryLimitBytes()),
	}
	if a.recorder != nil {
		opts = append(opts, vsort.WithRecorder(a.recorder))
	}
	s, err := vsort.New(append(opts, extra...)...)
	if err != nil {
		return nil, "", apperrors.NewConfigError("cannot build sorter: %v", err)
	}
	return s, source, nil
}

// Flags translates the strategy switches into request flags.
func (a *Application) Flags() vsort.Flags {
	f := vsort.StandardFlags
	if a.Config.NoParallel {
		f &^= vsort.AllowParallel
	}
	if a.Config.NoRadix {
		f &^= vsort.AllowRadix
	}
	if a.Config.Stable {
		f |= vsort.ForceStable
	}
	if a.Config.Efficiency {
		f = f&^vsort.PreferThroughput | vsort.PreferEfficiency
	}
	if a.Config.ForceSIMD {
		f |= vsort.ForceSIMD
	}
	return f
}

// runCompletion generates shell completion scripts.
func (a *Application) runCompletion(out io.Writer) int {
	if err := cli.GenerateCompletion(out, a.Config.Completion); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

func (a *Application) reportError(err error) {
	switch {
	case errors.Is(err, context.Canceled):
		fmt.Fprintf(a.ErrWriter, "%sInterrupted.%s\n", ui.ColorYellow(), ui.ColorReset())
	default:
		fmt.Fprintf(a.ErrWriter, "%sError:%s %v\n", ui.ColorRed(), ui.ColorReset(), err)
	}
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, pflag.ErrHelp)
}
