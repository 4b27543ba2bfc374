package util

import "fmt"

var sizeUnits = []string{"KB", "MB", "GB", "TB"}

// HumanReadableSize formats a byte count with binary units, e.g. "1.5 KB".
// Values below 1 KB are printed as whole bytes; TB is the largest unit.
func HumanReadableSize(size int64) string {
	if size < 1024 {
		return fmt.Sprintf("%d B", size)
	}

	value := float64(size) / 1024
	unit := 0
	for value >= 1024 && unit < len(sizeUnits)-1 {
		value /= 1024
		unit++
	}
	return fmt.Sprintf("%.1f %s", value, sizeUnits[unit])
}
