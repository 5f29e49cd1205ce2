//go:generate mockgen -source=ui.go -destination=mocks/mock_ui.go -package=mocks

package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/briandowns/spinner"
)

// FormatExecutionDuration prints whole microseconds below a millisecond,
// whole milliseconds below a second and time.Duration's own form above.
func FormatExecutionDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return fmt.Sprintf("%dµs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.String()
}

const (
	// ProgressRefreshRate is the spinner frame interval.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth defines the width in characters of the progress bar.
	ProgressBarWidth = 30
)

// Spinner abstracts a terminal spinner so benchmark progress can be tested
// without a terminal.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text that is displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner adapts spinner.Spinner to the Spinner interface.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }

func (rs *realSpinner) Stop() { rs.s.Stop() }

func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Lock()
	rs.s.Suffix = suffix
	rs.s.Unlock()
}

var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)
	return &realSpinner{s}
}

// BenchProgress counts finished benchmark runs out of a known total.
type BenchProgress struct {
	done  int
	total int
}

// NewBenchProgress tracks total runs.
func NewBenchProgress(total int) *BenchProgress {
	return &BenchProgress{total: total}
}

// Advance records one finished run.
func (p *BenchProgress) Advance() {
	if p.done < p.total {
		p.done++
	}
}

// Fraction returns the completed share in [0, 1].
func (p *BenchProgress) Fraction() float64 {
	if p.total == 0 {
		return 0.0
	}
	return float64(p.done) / float64(p.total)
}

// FormatProgress renders the spinner suffix for the current state.
func (p *BenchProgress) FormatProgress(label string) string {
	return fmt.Sprintf(" %s %3.0f%% %s", progressBar(p.Fraction(), ProgressBarWidth), p.Fraction()*100, label)
}

// progressBar renders fraction (clamped to [0, 1]) as width cells of filled
// and empty blocks.
func progressBar(fraction float64, width int) string {
	filled := int(min(max(fraction, 0), 1) * float64(width))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
