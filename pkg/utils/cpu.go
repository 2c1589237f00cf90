package utils

import "github.com/shirou/gopsutil/cpu"

// CheckCPUUsage reports whether host load is at or below maxCPUUsage, with the sampled value.
func CheckCPUUsage(maxCPUUsage float64) (bool, float64) {
	usage, err := cpu.Percent(0, false)
	if err != nil || len(usage) == 0 {
		return true, 0
	}
	return usage[0] <= maxCPUUsage, usage[0]
}
