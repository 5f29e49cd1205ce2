package calibration

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/agbru/vsort/internal/ui"
)

// printCalibrationResults formats and prints the calibration results table.
func printCalibrationResults(out io.Writer, results []Result, best int) {
	fmt.Fprintf(out, "\n--- Calibration Summary ---\n")
	tw := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintf(tw, "  %sElements%s\t%sSequential%s\t%sParallel%s\t%sSpeedup%s\n",
		ui.ColorUnderline(), ui.ColorReset(), ui.ColorUnderline(), ui.ColorReset(),
		ui.ColorUnderline(), ui.ColorReset(), ui.ColorUnderline(), ui.ColorReset())
	fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\n", strings.Repeat("─", 10), strings.Repeat("─", 12),
		strings.Repeat("─", 12), strings.Repeat("─", 8))
	for _, res := range results {
		highlight := ""
		if res.Size == best {
			highlight = fmt.Sprintf(" %s(Optimal)%s", ui.ColorGreen(), ui.ColorReset())
		}
		fmt.Fprintf(tw, "  %s%d%s\t%s\t%s\t%s%.2fx%s%s\n",
			ui.ColorCyan(), res.Size, ui.ColorReset(),
			formatDuration(res.Sequential), formatDuration(res.Parallel),
			ui.ColorYellow(), res.Speedup, ui.ColorReset(), highlight)
	}
	tw.Flush()
}

// printCalibrationOutput prints the resulting thresholds.
func printCalibrationOutput(out io.Writer, t Thresholds) {
	fmt.Fprintf(out, "%sCalibration%s: insertion=%s%d%s, parallel=%s%d%s, radix=%s%d%s elements\n",
		ui.ColorGreen(), ui.ColorReset(),
		ui.ColorYellow(), t.Insertion, ui.ColorReset(),
		ui.ColorYellow(), t.Parallel, ui.ColorReset(),
		ui.ColorYellow(), t.Radix, ui.ColorReset())
}

func printSingleCoreNotice(out io.Writer) {
	fmt.Fprintf(out, "%sSingle performance core detected%s: parallel sorting stays disabled.\n",
		ui.ColorYellow(), ui.ColorReset())
}

func formatDuration(d time.Duration) string {
	switch {
	case d < time.Microsecond:
		return "< 1µs"
	case d < time.Millisecond:
		return fmt.Sprintf("%dµs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.Round(time.Millisecond).String()
}
