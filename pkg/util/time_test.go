package util

import "testing"

func TestParseClockTime(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
	}{
		{name: "midnight", input: "00:00", expected: 0},
		{name: "early morning", input: "07:25", expected: 7*3600 + 25*60},
		{name: "end of day", input: "23:59", expected: 23*3600 + 59*60},
		{name: "surrounding whitespace", input: " 07:25 ", expected: 7*3600 + 25*60},
		{name: "empty", input: "", expected: InvalidClockTime},
		{name: "garbage", input: "not a time", expected: InvalidClockTime},
		{name: "missing minutes", input: "07", expected: InvalidClockTime},
		{name: "out of range hour", input: "25:00", expected: InvalidClockTime},
		{name: "out of range minute", input: "07:61", expected: InvalidClockTime},
		{name: "single digit hour", input: "7:25", expected: InvalidClockTime},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseClockTime(tt.input); got != tt.expected {
				t.Errorf("ParseClockTime(%q) = %d, want %d", tt.input, got, tt.expected)
			}
		})
	}
}

func TestParseClockTimeMonotonic(t *testing.T) {
	ordered := []string{"00:01", "06:59", "07:00", "07:20", "07:25", "12:00", "23:59"}

	for i := 1; i < len(ordered); i++ {
		earlier := ParseClockTime(ordered[i-1])
		later := ParseClockTime(ordered[i])

		if earlier >= later {
			t.Errorf("expected %s (%d) to sort before %s (%d)", ordered[i-1], earlier, ordered[i], later)
		}
	}
}

func TestInvalidClockTimeSortsBeforeEverything(t *testing.T) {
	if InvalidClockTime >= ParseClockTime("00:00") {
		t.Errorf("invalid sentinel %d must sort before midnight", InvalidClockTime)
	}
}

func TestFormatClockTime(t *testing.T) {
	tests := []struct {
		name     string
		input    int
		expected string
	}{
		{name: "midnight", input: 0, expected: "00:00"},
		{name: "morning", input: 7*3600 + 25*60, expected: "07:25"},
		{name: "rolls over a day", input: 25 * 3600, expected: "01:00"},
		{name: "invalid sentinel", input: InvalidClockTime, expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatClockTime(tt.input); got != tt.expected {
				t.Errorf("FormatClockTime(%d) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestParseDurationMinutes(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
	}{
		{name: "typical journey", input: "00:28:00", expected: 28},
		{name: "over an hour", input: "01:05:30", expected: 65},
		{name: "empty", input: "", expected: 0},
		{name: "missing seconds", input: "00:28", expected: 0},
		{name: "garbage", input: "soon", expected: 0},
		{name: "negative component", input: "-1:10:00", expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseDurationMinutes(tt.input); got != tt.expected {
				t.Errorf("ParseDurationMinutes(%q) = %d, want %d", tt.input, got, tt.expected)
			}
		})
	}
}

func TestFormatDurationMinutes(t *testing.T) {
	if got := FormatDurationMinutes(65); got != "01:05:00" {
		t.Errorf("FormatDurationMinutes(65) = %q, want 01:05:00", got)
	}
	if got := FormatDurationMinutes(-5); got != "00:00:00" {
		t.Errorf("FormatDurationMinutes(-5) = %q, want 00:00:00", got)
	}
}
