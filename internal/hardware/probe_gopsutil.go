package hardware

import "github.com/shirou/gopsutil/v4/cpu"

// gopsutilProbe asks the OS through gopsutil for the logical CPU count and
// the model name. It is the last probe before defaults.
func gopsutilProbe() Profile {
	var p Profile
	if n, err := cpu.Counts(true); err == nil {
		p.TotalCores = n
	}
	if infos, err := cpu.Info(); err == nil && len(infos) > 0 {
		p.Model = infos[0].ModelName
	}
	return p
}
