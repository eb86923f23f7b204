package handlers

import (
	"context"
	"net/http"

	"delivery-date-service/internal/api/dto"
	"delivery-date-service/internal/domain"
	"delivery-date-service/internal/platform/logger"
	"delivery-date-service/internal/platform/validate"
)

type DeliveryDateCalculator interface {
	Calculate(ctx context.Context, req domain.CalculateRequest) (*domain.DeliveryResult, error)
}

type DeliveryDateHandler struct {
	Calc DeliveryDateCalculator
}

// Calculate answers POST /v1/delivery-date.
func (h *DeliveryDateHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	var req dto.DeliveryDateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, r, err)
		return
	}

	ctx := logger.WithTenant(r.Context(), req.TenantID)
	res, err := h.Calc.Calculate(ctx, req.ToDomain())
	if err != nil {
		writeError(w, r.WithContext(ctx), err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.DeliveryDateResponseFrom(res))
}
