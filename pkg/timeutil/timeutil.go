// Package timeutil converts between operator-facing timestamp strings and
// time.Duration values.
package timeutil

import (
	"fmt"
	"strings"
	"time"
)

// Format renders a duration as H:MM:SS (e.g. 0:01:30, 1:11:22).
func Format(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	totalSeconds := int(d / time.Second)
	hours := totalSeconds / 3600
	mins := (totalSeconds % 3600) / 60
	secs := totalSeconds % 60
	return fmt.Sprintf("%d:%02d:%02d", hours, mins, secs)
}

// FormatSeconds renders a fractional second count as H:MM:SS.
func FormatSeconds(seconds float64) string {
	return Format(time.Duration(seconds * float64(time.Second)))
}

// Parse parses a timestamp in HH:MM:SS, MM:SS, or raw seconds format.
// Uses colon count: 2 colons = H:M:S, 1 colon = M:S, 0 colons = raw seconds.
func Parse(timeStr string) (time.Duration, error) {
	trimmed := strings.TrimSpace(timeStr)
	colons := strings.Count(trimmed, ":")

	switch colons {
	case 2:
		var hours, minutes, seconds int
		if n, err := fmt.Sscanf(trimmed, "%d:%d:%d", &hours, &minutes, &seconds); n == 3 && err == nil {
			if hours >= 0 && minutes >= 0 && minutes <= 59 && seconds >= 0 && seconds <= 59 {
				return time.Duration(hours*3600+minutes*60+seconds) * time.Second, nil
			}
		}
	case 1:
		var minutes, seconds int
		if n, err := fmt.Sscanf(trimmed, "%d:%d", &minutes, &seconds); n == 2 && err == nil {
			if minutes >= 0 && seconds >= 0 && seconds <= 59 {
				return time.Duration(minutes*60+seconds) * time.Second, nil
			}
		}
	case 0:
		var secs float64
		if n, err := fmt.Sscanf(trimmed, "%f", &secs); n == 1 && err == nil {
			if secs >= 0 {
				return time.Duration(secs * float64(time.Second)), nil
			}
		}
	}

	return 0, fmt.Errorf("expected HH:MM:SS, MM:SS, or seconds, got %q", timeStr)
}

// Seconds formats a duration as fractional seconds for ffmpeg arguments.
func Seconds(d time.Duration) string {
	return fmt.Sprintf("%.3f", d.Seconds())
}
