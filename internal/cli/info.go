package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/agbru/vsort/internal/calibration"
	"github.com/agbru/vsort/internal/hardware"
	"github.com/agbru/vsort/internal/memory"
	"github.com/agbru/vsort/internal/ui"
)

// Info is what DisplayInfo reports.
type Info struct {
	Version    string
	Profile    hardware.Profile
	Thresholds calibration.Thresholds
	// Source names the layer that last changed the thresholds.
	Source   string
	Flags    string
	Executor string
	Workers  int
	Parallel bool
}

// DisplayInfo prints the detected hardware and the thresholds the sorter
// runs with.
func DisplayInfo(out io.Writer, info Info) {
	fmt.Fprintf(out, "--- vsort %s ---\n", info.Version)
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, Go %s%s%s, %s/%s.\n",
		ui.ColorCyan(), runtime.NumCPU(), ui.ColorReset(),
		ui.ColorCyan(), runtime.Version(), ui.ColorReset(),
		runtime.GOOS, runtime.GOARCH)
	fmt.Fprintln(out, FormatProfileTable(info.Profile))
	fmt.Fprintf(out, "Thresholds (%s%s%s):\n", ui.ColorMagenta(), info.Source, ui.ColorReset())
	fmt.Fprintln(out, FormatThresholdTable(info.Thresholds))

	mode := fmt.Sprintf("%ssequential%s", ui.ColorYellow(), ui.ColorReset())
	if info.Parallel {
		mode = fmt.Sprintf("%sparallel%s", ui.ColorGreen(), ui.ColorReset())
	}
	workers := "auto"
	if info.Workers > 0 {
		workers = fmt.Sprint(info.Workers)
	}
	fmt.Fprintf(out, "Executor: %s (%s workers, %s)\n", info.Executor, workers, mode)
	fmt.Fprintf(out, "Default flags: %s\n", info.Flags)
}

// FormatProfileTable renders a hardware profile as a two column table.
func FormatProfileTable(p hardware.Profile) string {
	cores := fmt.Sprint(p.TotalCores)
	if p.IsHybrid() {
		cores = fmt.Sprintf("%d (%d performance, %d efficiency)", p.TotalCores, p.PerformanceCores, p.EfficiencyCores)
	}
	l3 := "none"
	if p.L3 > 0 {
		l3 = memory.FormatBytes(int64(p.L3))
	}
	simd := p.SIMD.String()
	if p.HasSIMD() {
		simd = fmt.Sprintf("%s (%d-byte vectors)", p.SIMD, p.SIMDWidth)
	}
	return keyValueTable([][]string{
		{"Model", p.Model},
		{"Cores", cores},
		{"L1 data", memory.FormatBytes(int64(p.L1))},
		{"L2", memory.FormatBytes(int64(p.L2))},
		{"L3", l3},
		{"Cache line", fmt.Sprintf("%d B", p.CacheLine)},
		{"SIMD", simd},
		{"Probes", p.Source},
	})
}

// FormatThresholdTable renders thresholds in elements.
func FormatThresholdTable(t calibration.Thresholds) string {
	return keyValueTable([][]string{
		{"Insertion", fmt.Sprint(t.Insertion)},
		{"Sample size", fmt.Sprint(t.SampleSize)},
		{"Parallel", fmt.Sprint(t.Parallel)},
		{"Radix", fmt.Sprint(t.Radix)},
		{"Cache optimal", fmt.Sprint(t.CacheOptimal)},
		{"Chunk size", fmt.Sprint(t.ChunkSize())},
	})
}

func keyValueTable(rows [][]string) string {
	theme := ui.GetCurrentTableTheme()
	keyStyle := lipgloss.NewStyle().Foreground(theme.Accent).Padding(0, 1)
	valueStyle := lipgloss.NewStyle().Padding(0, 1)

	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.Border)).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if col == 0 {
				return keyStyle
			}
			return valueStyle
		}).
		String()
}
