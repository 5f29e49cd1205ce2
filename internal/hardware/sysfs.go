package hardware

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// sysfsProbe reads Linux sysfs and procfs below root ("/" in production, a
// fixture directory in tests). Missing files simply leave fields at zero.
func sysfsProbe(root string) Profile {
	var p Profile
	cpuDir := filepath.Join(root, "sys", "devices", "system", "cpu")

	if s, ok := readTrimmed(filepath.Join(cpuDir, "online")); ok {
		p.TotalCores = parseCPUList(s)
	}

	for i := 0; i < 10; i++ {
		dir := filepath.Join(cpuDir, "cpu0", "cache", "index"+strconv.Itoa(i))
		levelStr, ok := readTrimmed(filepath.Join(dir, "level"))
		if !ok {
			break
		}
		typ, _ := readTrimmed(filepath.Join(dir, "type"))
		if typ == "Instruction" {
			continue
		}
		sizeStr, _ := readTrimmed(filepath.Join(dir, "size"))
		size, _ := parseSize(sizeStr)
		switch levelStr {
		case "1":
			p.L1 = size
		case "2":
			p.L2 = size
		case "3":
			p.L3 = size
		}
		if p.CacheLine == 0 {
			if line, ok := readTrimmed(filepath.Join(dir, "coherency_line_size")); ok {
				p.CacheLine, _ = strconv.Atoi(line)
			}
		}
	}

	p.PerformanceCores, p.EfficiencyCores = hybridSplit(root, cpuDir)

	if f, err := os.Open(filepath.Join(root, "proc", "cpuinfo")); err == nil {
		p.Model = parseModelName(f)
		f.Close()
	}
	return p
}

// hybridSplit returns the performance and efficiency CPU counts, or zeros
// when the machine is not hybrid. Intel exposes the split as the cpu_core
// and cpu_atom PMU device lists; ARM big.LITTLE as per-CPU cpu_capacity.
func hybridSplit(root, cpuDir string) (perf, eff int) {
	core, okCore := readTrimmed(filepath.Join(root, "sys", "devices", "cpu_core", "cpus"))
	atom, okAtom := readTrimmed(filepath.Join(root, "sys", "devices", "cpu_atom", "cpus"))
	if okCore && okAtom {
		return parseCPUList(core), parseCPUList(atom)
	}

	matches, _ := filepath.Glob(filepath.Join(cpuDir, "cpu[0-9]*", "cpu_capacity"))
	caps := make([]int, 0, len(matches))
	for _, m := range matches {
		if s, ok := readTrimmed(m); ok {
			if v, err := strconv.Atoi(s); err == nil {
				caps = append(caps, v)
			}
		}
	}
	return splitByCapacity(caps)
}

// splitByCapacity counts CPUs at the maximum capacity as performance cores
// and the rest as efficiency cores. Uniform capacities mean no split.
func splitByCapacity(caps []int) (perf, eff int) {
	if len(caps) == 0 {
		return 0, 0
	}
	top := caps[0]
	for _, c := range caps[1:] {
		top = max(top, c)
	}
	for _, c := range caps {
		if c == top {
			perf++
		} else {
			eff++
		}
	}
	if eff == 0 {
		return 0, 0
	}
	return perf, eff
}

// parseCPUList counts the CPUs in a kernel cpulist such as "0-3,8,10-11".
func parseCPUList(s string) int {
	n := 0
	for _, part := range strings.Split(strings.TrimSpace(s), ",") {
		if part == "" {
			continue
		}
		lo, hi, isRange := strings.Cut(part, "-")
		a, err := strconv.Atoi(lo)
		if err != nil {
			continue
		}
		if !isRange {
			n++
			continue
		}
		b, err := strconv.Atoi(hi)
		if err != nil || b < a {
			continue
		}
		n += b - a + 1
	}
	return n
}

// parseSize parses sysfs cache sizes: "48K", "2048K", "32M" or plain bytes.
func parseSize(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	mult := 1
	switch s[len(s)-1] {
	case 'K', 'k':
		mult, s = 1<<10, s[:len(s)-1]
	case 'M', 'm':
		mult, s = 1<<20, s[:len(s)-1]
	case 'G', 'g':
		mult, s = 1<<30, s[:len(s)-1]
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return 0, false
	}
	return v * mult, true
}

// parseModelName extracts the first "model name" (x86) or "Model" (arm)
// entry from /proc/cpuinfo content.
func parseModelName(r io.Reader) string {
	sc := bufio.NewScanner(r)
	fallback := ""
	for sc.Scan() {
		key, val, ok := strings.Cut(sc.Text(), ":")
		if !ok {
			continue
		}
		switch strings.TrimSpace(key) {
		case "model name":
			return strings.TrimSpace(val)
		case "Model":
			if fallback == "" {
				fallback = strings.TrimSpace(val)
			}
		}
	}
	return fallback
}

func readTrimmed(path string) (string, bool) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}
	return strings.TrimSpace(string(b)), true
}
