package collection

import (
	"testing"
	"time"
)

func TestBucketsFor(t *testing.T) {
	// A fixed reference point keeps day arithmetic deterministic.
	now := time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)

	daysAgo := func(d int) int64 {
		return now.AddDate(0, 0, -d).UnixMilli()
	}

	tests := []struct {
		name        string
		ts          int64
		text        string
		isToday     bool
		isYesterday bool
		isThisWeek  bool
	}{
		{"Today", daysAgo(0), "today", true, false, true},
		{"Yesterday", daysAgo(1), "yesterday", false, true, true},
		{"Two Days", daysAgo(2), "2 days ago", false, false, true},
		{"Seven Days", daysAgo(7), "7 days ago", false, false, true},
		{"Eight Days", daysAgo(8), "last week", false, false, false},
		{"Two Weeks", daysAgo(14), "2 weeks ago", false, false, false},
		{"Three Weeks", daysAgo(21), "3 weeks ago", false, false, false},
		{"One Month", daysAgo(31), "1 month ago", false, false, false},
		{"Two Months", daysAgo(62), "2 months ago", false, false, false},
		{"Long Ago", daysAgo(400), "long ago", false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := bucketsFor(now, tt.ts)
			if b.Text != tt.text {
				t.Errorf("Expected text '%s', got '%s'", tt.text, b.Text)
			}
			if b.IsToday != tt.isToday || b.IsYesterday != tt.isYesterday || b.IsThisWeek != tt.isThisWeek {
				t.Errorf("Unexpected flags: today=%v yesterday=%v thisweek=%v",
					b.IsToday, b.IsYesterday, b.IsThisWeek)
			}
		})
	}
}

func TestBucketsFor_CalendarDays(t *testing.T) {
	// 23:30 yesterday is one calendar day away from 00:30 today even
	// though only an hour has passed.
	now := time.Date(2024, time.June, 15, 0, 30, 0, 0, time.UTC)
	late := time.Date(2024, time.June, 14, 23, 30, 0, 0, time.UTC)

	b := bucketsFor(now, late.UnixMilli())
	if !b.IsYesterday {
		t.Error("Expected the late-evening timestamp to be yesterday")
	}
}

func TestFormatExactDate(t *testing.T) {
	ts := time.Date(2024, time.June, 5, 9, 0, 0, 0, time.Local).UnixMilli()
	if got := formatExactDate(ts); got != "June 5, 2024" {
		t.Errorf("Expected 'June 5, 2024', got '%s'", got)
	}
}
