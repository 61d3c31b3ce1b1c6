package utils

import "fmt"

// FormatSecondsToTime renders a duration in seconds as H:MM:SS.
// Hours are not padded, minutes and seconds always have two digits.
func FormatSecondsToTime(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	secs := seconds % 60
	return fmt.Sprintf("%d:%02d:%02d", hours, minutes, secs)
}

// FormatSecondsToAverage renders seconds as H.MM, e.g. 7h 30m -> "7.30".
// Leftover seconds are dropped.
func FormatSecondsToAverage(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	return fmt.Sprintf("%d.%02d", hours, minutes)
}
