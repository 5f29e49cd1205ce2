// Package sysmon samples system-wide CPU and memory usage around benchmark
// and calibration runs.
package sysmon

import (
	"fmt"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// Stats is one system-wide reading. Fields are zero when a probe fails.
type Stats struct {
	CPUPercent   float64 // busy share of all CPUs since the previous Sample
	MemPercent   float64
	MemAvailable uint64 // bytes
}

// Sample reads CPU and memory usage. CPU usage is measured since the
// previous call, so the first call in a process only primes the counter.
func Sample() Stats {
	var s Stats
	if pcts, err := cpu.Percent(0, false); err == nil && len(pcts) > 0 {
		s.CPUPercent = pcts[0]
	}
	if vm, err := mem.VirtualMemory(); err == nil && vm != nil {
		s.MemPercent = vm.UsedPercent
		s.MemAvailable = vm.Available
	}
	return s
}

// Busy reports whether other load on the machine is likely to skew timings.
func (s Stats) Busy() bool {
	return s.CPUPercent > 50 || s.MemPercent > 90
}

func (s Stats) String() string {
	return fmt.Sprintf("cpu %.1f%%, memory %.1f%%", s.CPUPercent, s.MemPercent)
}
