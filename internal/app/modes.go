package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/agbru/vsort"
	"github.com/agbru/vsort/internal/calibration"
	"github.com/agbru/vsort/internal/cli"
	"github.com/agbru/vsort/internal/config"
	apperrors "github.com/agbru/vsort/internal/errors"
	"github.com/agbru/vsort/internal/logging"
	"github.com/agbru/vsort/internal/ui"
)

// runInfo prints the hardware profile and effective thresholds.
func (a *Application) runInfo(sorter *vsort.Sorter, source string, out io.Writer) error {
	cli.DisplayInfo(out, cli.Info{
		Version:    vsort.Version(),
		Profile:    sorter.Profile(),
		Thresholds: sorter.Thresholds(),
		Source:     source,
		Flags:      a.Flags().String(),
		Executor:   a.Config.Executor,
		Workers:    a.Config.Workers,
		Parallel:   sorter.Parallel(),
	})
	return nil
}

// runBench benchmarks every strategy on generated input.
func (a *Application) runBench(ctx context.Context, sorter *vsort.Sorter, out io.Writer) error {
	if a.Config.Kind != config.KindBytes {
		if err := sorter.Warm(a.Config.Bench); err != nil {
			a.logger.Warn("merge buffers not pre-grown", logging.Err(err))
		}
	}

	patterns := cli.BenchPatterns
	if a.Config.Pattern != "all" {
		patterns = []string{a.Config.Pattern}
	}
	zl := a.logger.Zerolog()
	report, err := cli.RunBench(ctx, sorter, cli.BenchConfig{
		Kind:     a.Config.Kind,
		N:        a.Config.Bench,
		Patterns: patterns,
		Rounds:   a.Config.Rounds,
		Seed:     uint64(a.Config.Bench),
		GCMode:   a.Config.GCMode,
		Timeout:  a.Config.Timeout,
		Quiet:    a.Config.Quiet,
		Logger:   &zl,
	}, a.ErrWriter)

	// A timed-out or interrupted run has nothing complete to show.
	if err != nil && (apperrors.IsContextError(err) || isTimeout(err)) {
		return err
	}
	if a.Config.Quiet {
		fmt.Fprint(out, cli.FormatBenchCSV(report))
	} else {
		cli.DisplayBenchReport(out, report)
	}
	return err
}

// runCalibration races sequential against parallel sorting to refine the
// parallel threshold and saves the profile.
func (a *Application) runCalibration(ctx context.Context, sorter *vsort.Sorter, out io.Writer) error {
	// A second sorter whose parallel threshold never blocks the parallel
	// path, so every candidate size is measured in parallel.
	forced, _, err := a.newSorter(vsort.WithThresholds(sorter.Thresholds().WithOverrides(calibration.Thresholds{Parallel: 2})))
	if err != nil {
		return err
	}
	defer forced.Close()

	ctx, cancel := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancel()

	strategies := calibration.Strategies{
		Sequential: func(d []int32) {
			sorter.SortContext(ctx, vsort.Request{Data: vsort.Int32Slice(d), Flags: vsort.PreferThroughput})
		},
		Parallel: func(d []int32) {
			forced.SortContext(ctx, vsort.Request{Data: vsort.Int32Slice(d), Flags: vsort.AllowParallel | vsort.PreferThroughput})
		},
	}
	progress := out
	if a.Config.Quiet {
		progress = io.Discard
	}
	profile, err := calibration.RunCalibration(ctx, progress, strategies, calibration.Options{
		Rounds:      a.Config.Rounds,
		ProfilePath: a.Config.CalibrationProfile,
	})
	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.TimeoutError{Operation: "calibration", Limit: a.Config.Timeout}
	}
	if err != nil {
		return err
	}

	if !a.Config.Quiet {
		fmt.Fprintf(out, "Profile saved to %s%s%s\n", ui.ColorCyan(), a.Config.CalibrationProfile, ui.ColorReset())
	}
	a.logger.Info("calibration complete",
		logging.Int("parallel_threshold", profile.Thresholds.Parallel),
		logging.String("profile", a.Config.CalibrationProfile))
	return nil
}

func isTimeout(err error) bool {
	var t apperrors.TimeoutError
	return errors.As(err, &t)
}
