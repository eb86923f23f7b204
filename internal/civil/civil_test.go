package civil

import (
	"testing"
	"time"
)

func TestComponents_ReferenceZone(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want Parts
	}{
		{
			// 2026-01-04 15:30 UTC = 2026-01-05 00:30 KST
			"UTC afternoon is next civil day",
			time.Date(2026, time.January, 4, 15, 30, 0, 0, time.UTC),
			Parts{Year: 2026, Month: time.January, Day: 5, Hour: 0, Minute: 30},
		},
		{
			"UTC 14:59 is still same civil day",
			time.Date(2026, time.January, 4, 14, 59, 0, 0, time.UTC),
			Parts{Year: 2026, Month: time.January, Day: 4, Hour: 23, Minute: 59},
		},
		{
			// US Pacific evening Dec 31 = Jan 1 afternoon in Seoul
			"Pacific New Year's Eve",
			time.Date(2025, time.December, 31, 20, 0, 0, 0, time.FixedZone("PST", -8*60*60)),
			Parts{Year: 2026, Month: time.January, Day: 1, Hour: 13, Minute: 0},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Components(tt.in); got != tt.want {
				t.Errorf("Components(%v) = %+v, want %+v", tt.in.Format(time.RFC3339), got, tt.want)
			}
		})
	}
}

func TestIsWeekend_UsesCivilWeekday(t *testing.T) {
	// Friday 2026-01-09 16:00 UTC is Saturday 01:00 in Seoul.
	fri := time.Date(2026, time.January, 9, 16, 0, 0, 0, time.UTC)
	if !IsWeekend(fri) {
		t.Errorf("IsWeekend(%v) = false, want true", fri)
	}

	// Sunday 2026-01-11 15:00 UTC is Monday 00:00 in Seoul.
	sun := time.Date(2026, time.January, 11, 15, 0, 0, 0, time.UTC)
	if IsWeekend(sun) {
		t.Errorf("IsWeekend(%v) = true, want false", sun)
	}
}

func TestFormatDate(t *testing.T) {
	in := time.Date(2026, time.February, 28, 16, 0, 0, 0, time.UTC)
	if got := FormatDate(in); got != "2026-03-01" {
		t.Errorf("FormatDate = %q, want 2026-03-01", got)
	}
}

func TestMinutesOfDay(t *testing.T) {
	in := time.Date(2026, time.January, 5, 5, 15, 0, 0, time.UTC) // 14:15 KST
	if got := MinutesOfDay(in); got != 14*60+15 {
		t.Errorf("MinutesOfDay = %d, want %d", got, 14*60+15)
	}
}

func TestDate_AddDaysAndCompare(t *testing.T) {
	d := NewDate(2024, time.February, 28)
	if got := d.AddDays(1); got != (Date{2024, time.February, 29}) {
		t.Errorf("AddDays(1) = %v, want 2024-02-29", got)
	}
	if got := d.AddDays(2); got != (Date{2024, time.March, 1}) {
		t.Errorf("AddDays(2) = %v, want 2024-03-01", got)
	}
	if got := NewDate(2026, time.January, 1).AddDays(-1); got.String() != "2025-12-31" {
		t.Errorf("AddDays(-1) = %v, want 2025-12-31", got)
	}
	if !d.Before(d.AddDays(1)) || d.After(d.AddDays(1)) {
		t.Error("Before/After disagree with AddDays ordering")
	}
	if d.Before(d) {
		t.Error("date must not be before itself")
	}
}

func TestParseDate_RoundTrip(t *testing.T) {
	d, err := ParseDate("2026-10-09")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.String() != "2026-10-09" || d.Weekday() != time.Friday {
		t.Errorf("ParseDate = %v (%v)", d, d.Weekday())
	}
	if _, err := ParseDate("2026/10/09"); err == nil {
		t.Error("expected error for wrong layout")
	}
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    Clock
		wantErr bool
	}{
		{"14:00", 840, false},
		{"00:00", 0, false},
		{"23:59", 1439, false},
		{" 09:05 ", 545, false},
		{"24:00", 0, true},
		{"12:60", 0, true},
		{"12:5", 0, true},
		{"noon", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseClock(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseClock(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseClock(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
	if s := Clock(545).String(); s != "09:05" {
		t.Errorf("Clock.String = %q, want 09:05", s)
	}
}
