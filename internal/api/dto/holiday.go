package dto

import (
	"delivery-date-service/internal/civil"
	"delivery-date-service/internal/domain"
)

type HolidayResponse struct {
	Date       civil.Date `json:"date"`
	Name       string     `json:"name"`
	Lunar      bool       `json:"lunar"`
	Substitute bool       `json:"substitute"`
}

type ListHolidaysResponse struct {
	Year     int               `json:"year"`
	Holidays []HolidayResponse `json:"holidays"`
}

func ListHolidaysResponseFrom(year int, hs []domain.Holiday) ListHolidaysResponse {
	res := ListHolidaysResponse{Year: year, Holidays: make([]HolidayResponse, 0, len(hs))}
	for _, h := range hs {
		res.Holidays = append(res.Holidays, HolidayResponse{
			Date:       h.Date,
			Name:       h.Name,
			Lunar:      h.Lunar,
			Substitute: h.Substitute,
		})
	}
	return res
}
