package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/agbru/vsort/internal/memory"
	"github.com/agbru/vsort/internal/ui"
)

// Columns of the benchmark table.
var benchHeaders = []string{"Pattern", "Strategy", "Best", "Melem/s", "vs stdlib", "Status"}

// DisplayBenchReport renders the benchmark table followed by memory and
// system load statistics.
func DisplayBenchReport(out io.Writer, r BenchReport) {
	fmt.Fprintf(out, "\n--- Benchmark: %s ---\n", r.Describe())
	fmt.Fprintln(out, FormatBenchTable(r))
	DisplayMemoryStats(out, r)
	fmt.Fprintf(out, "  System load:     %s\n", r.Load)
	if r.Load.Busy() {
		fmt.Fprintf(out, "  %sThe machine was busy; timings may be noisy.%s\n", ui.ColorYellow(), ui.ColorReset())
	}
	fmt.Fprintf(out, "  Wall time:       %s\n", FormatExecutionDuration(r.Duration))
}

// FormatBenchTable renders one row per pattern and strategy. Each row is
// compared against the stdlib row of the same pattern.
func FormatBenchTable(r BenchReport) string {
	theme := ui.GetCurrentTableTheme()

	baseline := make(map[string]time.Duration)
	for _, res := range r.Results {
		if res.Strategy == StrategyStdlib.Name && res.Err == nil {
			baseline[res.Pattern] = res.Best
		}
	}

	rows := make([][]string, 0, len(r.Results))
	for _, res := range r.Results {
		status := "ok"
		if res.Err != nil {
			status = "FAIL: " + res.Err.Error()
		}
		rows = append(rows, []string{
			res.Pattern,
			res.Strategy,
			formatBest(res),
			fmt.Sprintf("%.1f", res.Throughput(r.N)/1e6),
			formatSpeedup(res, baseline[res.Pattern]),
			status,
		})
	}

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.Header).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.Border)).
		Headers(benchHeaders...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			res := r.Results[row]
			switch {
			case col == 5 && res.Err != nil:
				return cellStyle.Foreground(theme.Error)
			case col == 5:
				return cellStyle.Foreground(theme.Success)
			case col == 1 && res.Strategy == StrategyStdlib.Name:
				return cellStyle.Foreground(theme.Dim)
			case col == 1:
				return cellStyle.Foreground(theme.Accent)
			case col >= 2:
				return cellStyle.Align(lipgloss.Right)
			}
			return cellStyle
		})
	return t.String()
}

func formatBest(res BenchResult) string {
	if res.Err != nil {
		return "-"
	}
	if res.Best == 0 {
		return "< 1µs"
	}
	return FormatExecutionDuration(res.Best)
}

func formatSpeedup(res BenchResult, base time.Duration) string {
	if res.Err != nil || base <= 0 || res.Best <= 0 {
		return "-"
	}
	return fmt.Sprintf("%.2fx", base.Seconds()/res.Best.Seconds())
}

// DisplayMemoryStats shows allocation and collector statistics for a
// benchmark run.
func DisplayMemoryStats(out io.Writer, r BenchReport) {
	fmt.Fprintf(out, "\nMemory Stats:\n")
	fmt.Fprintf(out, "  Allocated:       %s\n", memory.FormatBytes(int64(r.Memory.Allocated)))
	fmt.Fprintf(out, "  GC cycles:       %d\n", r.Memory.GCCycles)
	if r.GC.HeapAlloc > 0 {
		fmt.Fprintf(out, "  Peak heap:       %s (collector suspended)\n", memory.FormatBytes(int64(r.GC.HeapAlloc)))
	}
	if r.Memory.PauseNs > 0 {
		fmt.Fprintf(out, "  GC pause total:  %.2fms\n", float64(r.Memory.PauseNs)/1e6)
	} else {
		fmt.Fprintf(out, "  GC pause total:  0ms\n")
	}
}

// FormatBenchCSV renders results as CSV for quiet mode.
func FormatBenchCSV(r BenchReport) string {
	var sb strings.Builder
	sb.WriteString("pattern,strategy,best_ns,ok\n")
	for _, res := range r.Results {
		fmt.Fprintf(&sb, "%s,%s,%d,%t\n", res.Pattern, res.Strategy, res.Best.Nanoseconds(), res.Err == nil)
	}
	return sb.String()
}
