//go:build linux

package hardware

const platformSource = "sysfs"

func platformProbe() Profile {
	return sysfsProbe("/")
}
