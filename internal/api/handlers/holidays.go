package handlers

import (
	"net/http"
	"strconv"

	"delivery-date-service/internal/api/dto"
	"delivery-date-service/internal/domain"
	perr "delivery-date-service/internal/platform/errors"

	"github.com/go-chi/chi/v5"
)

type HolidayGenerator interface {
	Generate(year int) []domain.Holiday
}

// HolidayHandler previews the generated national calendar for a year.
type HolidayHandler struct {
	Gen HolidayGenerator
}

func (h *HolidayHandler) List(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil || year < 1900 || year > 2100 {
		writeError(w, r, perr.WithField(perr.InvalidArgf("year must be between 1900 and 2100"), "year"))
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ListHolidaysResponseFrom(year, h.Gen.Generate(year)))
}
