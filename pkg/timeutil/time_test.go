package timeutil

import (
	"testing"
	"time"
)

func TestNow_AlwaysUTC(t *testing.T) {
	now := Now()

	if now.Location() != time.UTC {
		t.Errorf("Now() returned non-UTC timezone: %v", now.Location())
	}
}

func TestFixed(t *testing.T) {
	est, _ := time.LoadLocation("America/Sao_Paulo")
	pinned := time.Date(2024, 3, 10, 9, 0, 0, 0, est)

	clock := Fixed(pinned)

	if !clock().Equal(pinned) {
		t.Errorf("Fixed() = %v, want %v", clock(), pinned)
	}
	if clock().Location() != time.UTC {
		t.Errorf("Fixed() returned non-UTC: %v", clock().Location())
	}
}

func TestParseLenient(t *testing.T) {
	fallback := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		input    string
		expected string
		ok       bool
	}{
		{
			name:     "calendar date",
			input:    "2024-03-10",
			expected: "2024-03-10 00:00:00 +0000 UTC",
			ok:       true,
		},
		{
			name:     "rfc3339 with offset is converted to UTC",
			input:    "2024-03-10T22:30:00-03:00",
			expected: "2024-03-11 01:30:00 +0000 UTC",
			ok:       true,
		},
		{
			name:     "rfc3339 nano",
			input:    "2024-03-10T12:00:00.123Z",
			expected: "2024-03-10 12:00:00.123 +0000 UTC",
			ok:       true,
		},
		{
			name:     "local timestamp without zone",
			input:    "2024-03-10T08:15:00",
			expected: "2024-03-10 08:15:00 +0000 UTC",
			ok:       true,
		},
		{
			name:     "brazilian day first date",
			input:    "05/03/2024",
			expected: "2024-03-05 00:00:00 +0000 UTC",
			ok:       true,
		},
		{
			name:     "surrounding whitespace",
			input:    "  2024-03-10  ",
			expected: "2024-03-10 00:00:00 +0000 UTC",
			ok:       true,
		},
		{
			name:     "garbage falls back",
			input:    "yesterday-ish",
			expected: "2030-01-01 00:00:00 +0000 UTC",
			ok:       false,
		},
		{
			name:     "empty falls back",
			input:    "",
			expected: "2030-01-01 00:00:00 +0000 UTC",
			ok:       false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, ok := ParseLenient(tt.input, fallback)

			if ok != tt.ok {
				t.Errorf("ParseLenient() ok = %v, want %v", ok, tt.ok)
			}
			if result.String() != tt.expected {
				t.Errorf("ParseLenient() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestStartOfDay(t *testing.T) {
	tests := []struct {
		name     string
		input    time.Time
		expected string
	}{
		{
			name:     "midnight UTC",
			input:    time.Date(2025, 11, 20, 0, 0, 0, 0, time.UTC),
			expected: "2025-11-20 00:00:00 +0000 UTC",
		},
		{
			name:     "noon UTC",
			input:    time.Date(2025, 11, 20, 12, 30, 45, 0, time.UTC),
			expected: "2025-11-20 00:00:00 +0000 UTC",
		},
		{
			name:     "end of day UTC",
			input:    time.Date(2025, 11, 20, 23, 59, 59, 0, time.UTC),
			expected: "2025-11-20 00:00:00 +0000 UTC",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := StartOfDay(tt.input)

			if result.String() != tt.expected {
				t.Errorf("StartOfDay() = %v, want %v", result, tt.expected)
			}

			if result.Location() != time.UTC {
				t.Errorf("StartOfDay() returned non-UTC: %v", result.Location())
			}
		})
	}
}

func TestCalendarDaysBetween(t *testing.T) {
	tests := []struct {
		name     string
		from     time.Time
		to       time.Time
		expected int
	}{
		{
			name:     "same day",
			from:     time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC),
			to:       time.Date(2024, 3, 1, 23, 0, 0, 0, time.UTC),
			expected: 0,
		},
		{
			name:     "late evening to early morning is one calendar day",
			from:     time.Date(2024, 3, 1, 23, 59, 0, 0, time.UTC),
			to:       time.Date(2024, 3, 2, 0, 1, 0, 0, time.UTC),
			expected: 1,
		},
		{
			name:     "across leap day",
			from:     time.Date(2024, 2, 27, 0, 0, 0, 0, time.UTC),
			to:       time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			expected: 3,
		},
		{
			name:     "negative when to is earlier",
			from:     time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
			to:       time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
			expected: -5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CalendarDaysBetween(tt.from, tt.to); got != tt.expected {
				t.Errorf("CalendarDaysBetween() = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestRoundedDaysBetween(t *testing.T) {
	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	if got := RoundedDaysBetween(from, from.Add(36*time.Hour)); got != 2 {
		t.Errorf("RoundedDaysBetween(36h) = %d, want 2", got)
	}
	if got := RoundedDaysBetween(from, from.Add(35*time.Hour)); got != 1 {
		t.Errorf("RoundedDaysBetween(35h) = %d, want 1", got)
	}
}

func TestFormatDate(t *testing.T) {
	est, _ := time.LoadLocation("America/New_York")
	// 22:00 EST on the 7th is 03:00 UTC on the 8th
	input := time.Date(2024, 3, 7, 22, 0, 0, 0, est)

	if got := FormatDate(input); got != "2024-03-08" {
		t.Errorf("FormatDate() = %s, want 2024-03-08", got)
	}
}

// Test that ensures DST doesn't affect calculations
func TestDSTTransitions(t *testing.T) {
	// Spring forward: March 10, 2024, 2:00 AM → 3:00 AM
	beforeDST := time.Date(2024, 3, 9, 12, 0, 0, 0, time.UTC)
	afterDST := beforeDST.Add(24 * time.Hour)

	// Should be exactly 24 hours later
	expected := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	if !afterDST.Equal(expected) {
		t.Errorf("DST transition affected calculation: %v, want %v", afterDST, expected)
	}
	if got := CalendarDaysBetween(beforeDST, afterDST); got != 1 {
		t.Errorf("CalendarDaysBetween across DST = %d, want 1", got)
	}
}
