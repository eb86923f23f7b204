package domain

import "delivery-date-service/internal/civil"

// Holiday is a single dated public holiday entry.
type Holiday struct {
	Date       civil.Date `json:"date"`
	Name       string     `json:"name"`
	Lunar      bool       `json:"lunar"`
	Substitute bool       `json:"substitute"`
}

// HolidaySet indexes holidays by date. Duplicate dates keep the first name.
type HolidaySet map[civil.Date]string

func NewHolidaySet(hs []Holiday) HolidaySet {
	set := make(HolidaySet, len(hs))
	for _, h := range hs {
		if _, ok := set[h.Date]; !ok {
			set[h.Date] = h.Name
		}
	}
	return set
}

func (s HolidaySet) Contains(d civil.Date) bool {
	_, ok := s[d]
	return ok
}
