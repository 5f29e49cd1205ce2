//go:build darwin

package hardware

import "golang.org/x/sys/unix"

const platformSource = "sysctl"

// platformProbe reads the Apple performance-level and cache sysctls. On
// Apple silicon perflevel0 is the performance cluster and perflevel1 the
// efficiency cluster.
func platformProbe() Profile {
	var p Profile
	if v, err := unix.SysctlUint32("hw.perflevel0.physicalcpu"); err == nil {
		p.PerformanceCores = int(v)
	}
	if v, err := unix.SysctlUint32("hw.perflevel1.physicalcpu"); err == nil {
		p.EfficiencyCores = int(v)
	}
	if p.PerformanceCores+p.EfficiencyCores > 0 {
		p.TotalCores = p.PerformanceCores + p.EfficiencyCores
	}
	p.CacheLine = sysctlInt("hw.cachelinesize")
	p.L1 = sysctlInt("hw.l1dcachesize")
	p.L2 = sysctlInt("hw.l2cachesize")
	p.L3 = sysctlInt("hw.l3cachesize")
	if model, err := unix.Sysctl("machdep.cpu.brand_string"); err == nil {
		p.Model = model
	}
	return p
}

func sysctlInt(name string) int {
	v, err := unix.SysctlUint64(name)
	if err != nil {
		return 0
	}
	return int(v)
}
