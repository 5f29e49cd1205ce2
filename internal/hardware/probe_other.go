//go:build !linux && !darwin

package hardware

const platformSource = "none"

func platformProbe() Profile { return Profile{} }
