// Package civil converts instants to calendar dates and clock times in the
// single reference timezone used for every business cutoff.
//
// All date comparison, bucketing and day-by-day walks go through this package.
// No other package should call time.Time.In, Format or Date on an order instant.
package civil

import (
	"fmt"
	"time"
)

// Zone is Asia/Seoul (UTC+9, no daylight saving). It is a fixed zone so the
// result never depends on host tzdata or the process TZ variable.
var Zone = time.FixedZone("Asia/Seoul", 9*60*60)

const dateLayout = "2006-01-02"

// Parts is the civil breakdown of an instant in Zone.
type Parts struct {
	Year   int
	Month  time.Month
	Day    int
	Hour   int
	Minute int
}

// Components returns the civil year, month, day, hour and minute of t in Zone.
func Components(t time.Time) Parts {
	ct := t.In(Zone)
	y, m, d := ct.Date()
	return Parts{Year: y, Month: m, Day: d, Hour: ct.Hour(), Minute: ct.Minute()}
}

// IsWeekend reports whether t falls on a Saturday or Sunday in Zone.
func IsWeekend(t time.Time) bool {
	return DateOf(t).IsWeekend()
}

// FormatDate renders t as "YYYY-MM-DD" in Zone.
func FormatDate(t time.Time) string {
	return t.In(Zone).Format(dateLayout)
}

// MinutesOfDay returns the minutes elapsed since civil midnight in Zone.
func MinutesOfDay(t time.Time) int {
	ct := t.In(Zone)
	return ct.Hour()*60 + ct.Minute()
}

// Date is a comparable civil calendar date. It is safe to use as a map key.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf returns the civil date of t in Zone.
func DateOf(t time.Time) Date {
	y, m, d := t.In(Zone).Date()
	return Date{Year: y, Month: m, Day: d}
}

// NewDate builds a Date, normalizing out-of-range values the way time.Date does
// (e.g. February 30 becomes March 1 or 2).
func NewDate(year int, month time.Month, day int) Date {
	return DateOf(time.Date(year, month, day, 0, 0, 0, 0, Zone))
}

// ParseDate parses "YYYY-MM-DD".
func ParseDate(s string) (Date, error) {
	t, err := time.ParseInLocation(dateLayout, s, Zone)
	if err != nil {
		return Date{}, fmt.Errorf("parse civil date %q: %w", s, err)
	}
	return DateOf(t), nil
}

// Time returns civil midnight of d as an instant.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, Zone)
}

// AddDays returns d shifted by n calendar days.
func (d Date) AddDays(n int) Date {
	return NewDate(d.Year, d.Month, d.Day+n)
}

func (d Date) Weekday() time.Weekday {
	return d.Time().Weekday()
}

func (d Date) IsWeekend() bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

func (d Date) IsZero() bool {
	return d == Date{}
}

func (d Date) Before(other Date) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

func (d Date) After(other Date) bool {
	return other.Before(d)
}

// Compare returns -1, 0 or +1, for use with slices.SortFunc.
func (d Date) Compare(other Date) int {
	switch {
	case d.Before(other):
		return -1
	case other.Before(d):
		return 1
	}
	return 0
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Date) UnmarshalText(b []byte) error {
	parsed, err := ParseDate(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
