package hardware

import (
	"runtime"
	"sync"
	"sync/atomic"
)

var (
	detectOnce sync.Once
	detected   Profile
	forced     atomic.Pointer[Profile]
)

// Detect returns the process-wide hardware profile, probing on first use.
// Concurrent first callers block until the single probe finishes; later
// calls return the cached value.
func Detect() Profile {
	if p := forced.Load(); p != nil {
		return *p
	}
	detectOnce.Do(func() {
		detected = Probe()
	})
	return detected
}

// Probe runs the full probe chain without caching. Most callers want Detect.
func Probe() Profile {
	var p Profile
	p.fill(Profile{TotalCores: runtime.NumCPU(), SIMD: detectSIMD()}, "runtime")
	p.fill(platformProbe(), platformSource)
	p.fill(cpuidProbe(), "cpuid")
	p.fill(gopsutilProbe(), "gopsutil")
	p.normalize()
	return p
}

// Override makes Detect return p until the returned restore function is
// called. It exists so tests can run the engine against synthetic machines.
func Override(p Profile) (restore func()) {
	p.normalize()
	prev := forced.Swap(&p)
	return func() { forced.Store(prev) }
}
