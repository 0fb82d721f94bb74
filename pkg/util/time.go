package util

import (
	"fmt"
	"strings"
	"time"
)

// InvalidClockTime sorts before every valid clock time, so defensive
// comparisons against it keep the scheduled value instead of replacing it.
const InvalidClockTime = -1

const clockTimeLayout = "15:04"

// ParseClockTime converts a HH:MM string into seconds since midnight.
// Malformed or empty values return InvalidClockTime. time.Parse accepts
// single digit hours, so the length check keeps the format strict.
func ParseClockTime(value string) int {
	value = strings.TrimSpace(value)
	if len(value) != len(clockTimeLayout) {
		return InvalidClockTime
	}

	parsed, err := time.Parse(clockTimeLayout, value)
	if err != nil {
		return InvalidClockTime
	}

	return (parsed.Hour() * 3600) + (parsed.Minute() * 60)
}

func FormatClockTime(secondsSinceMidnight int) string {
	if secondsSinceMidnight < 0 {
		return ""
	}

	secondsSinceMidnight = secondsSinceMidnight % (24 * 3600)

	return fmt.Sprintf("%02d:%02d", secondsSinceMidnight/3600, (secondsSinceMidnight%3600)/60)
}

// ParseDurationMinutes converts a HH:MM:SS duration into whole minutes.
// A journey with an unparsable duration counts as zero length rather than
// being dropped.
func ParseDurationMinutes(value string) int {
	parts := strings.Split(strings.TrimSpace(value), ":")
	if len(parts) != 3 {
		return 0
	}

	var hours, minutes, seconds int
	if _, err := fmt.Sscanf(strings.TrimSpace(value), "%d:%d:%d", &hours, &minutes, &seconds); err != nil {
		return 0
	}

	if hours < 0 || minutes < 0 || seconds < 0 {
		return 0
	}

	return (hours * 60) + minutes
}

func FormatDurationMinutes(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}

	return fmt.Sprintf("%02d:%02d:00", minutes/60, minutes%60)
}
