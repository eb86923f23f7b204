package domain

import (
	"fmt"
	"strings"
	"time"
)

// WeekdaySet is a bitmask of working weekdays (bit 0 = Sunday).
type WeekdaySet uint8

// MonToFri is the common Monday..Friday working week.
const MonToFri WeekdaySet = 1<<time.Monday | 1<<time.Tuesday | 1<<time.Wednesday | 1<<time.Thursday | 1<<time.Friday

func NewWeekdaySet(days ...time.Weekday) WeekdaySet {
	var s WeekdaySet
	for _, d := range days {
		s |= 1 << d
	}
	return s
}

func (s WeekdaySet) Has(d time.Weekday) bool { return s&(1<<d) != 0 }

func (s WeekdaySet) IsEmpty() bool { return s&0x7f == 0 }

// Weekdays lists the members from Sunday to Saturday.
func (s WeekdaySet) Weekdays() []time.Weekday {
	out := make([]time.Weekday, 0, 7)
	for d := time.Sunday; d <= time.Saturday; d++ {
		if s.Has(d) {
			out = append(out, d)
		}
	}
	return out
}

// Strings renders the members as three-letter lowercase names ("mon").
func (s WeekdaySet) Strings() []string {
	days := s.Weekdays()
	out := make([]string, 0, len(days))
	for _, d := range days {
		out = append(out, strings.ToLower(d.String()[:3]))
	}
	return out
}

// ParseWeekday accepts "mon", "Monday", or the numeric form 0..6 (Sunday = 0).
func ParseWeekday(s string) (time.Weekday, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if len(v) == 1 && v[0] >= '0' && v[0] <= '6' {
		return time.Weekday(v[0] - '0'), nil
	}
	for d := time.Sunday; d <= time.Saturday; d++ {
		name := strings.ToLower(d.String())
		if v == name || v == name[:3] {
			return d, nil
		}
	}
	return 0, fmt.Errorf("parse weekday %q: unknown day", s)
}

// ParseWeekdaySet parses a list of weekday names.
func ParseWeekdaySet(names []string) (WeekdaySet, error) {
	var s WeekdaySet
	for _, n := range names {
		d, err := ParseWeekday(n)
		if err != nil {
			return 0, err
		}
		s |= 1 << d
	}
	return s, nil
}
