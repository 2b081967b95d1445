package cli

import (
	"fmt"
	"time"
)

const (
	kib = 1024
	mib = kib * kib
)

// HumanSize formats a byte count: 750 -> "750B", 4096 -> "4.0K".
func HumanSize(n int64) string {
	switch {
	case n >= mib:
		return fmt.Sprintf("%.1fM", float64(n)/mib)
	case n >= kib:
		return fmt.Sprintf("%.1fK", float64(n)/kib)
	default:
		return fmt.Sprintf("%dB", n)
	}
}

// HumanDuration formats an elapsed time: "12ms", "1.50s" or "2m 5s".
func HumanDuration(d time.Duration) string {
	switch {
	case d > time.Minute:
		return fmt.Sprintf("%dm %ds", int(d/time.Minute), int(d%time.Minute/time.Second))
	case d > time.Second:
		return fmt.Sprintf("%.2fs", d.Seconds())
	default:
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
}
