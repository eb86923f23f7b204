package dto

import (
	"time"

	"delivery-date-service/internal/civil"
	"delivery-date-service/internal/domain"
)

type DeliveryDateRequest struct {
	Region         string       `json:"region" validate:"required"`
	TenantID       string       `json:"tenant_id" validate:"required"`
	OrderedAt      *time.Time   `json:"ordered_at" validate:"required"`
	CustomHolidays []civil.Date `json:"custom_holidays"`
}

func (r DeliveryDateRequest) ToDomain() domain.CalculateRequest {
	req := domain.CalculateRequest{
		Region:         r.Region,
		TenantID:       r.TenantID,
		CustomHolidays: r.CustomHolidays,
	}
	if r.OrderedAt != nil {
		req.OrderedAt = *r.OrderedAt
	}
	return req
}

type DeliveryDateResponse struct {
	DeliveryDate   civil.Date      `json:"delivery_date"`
	DeliverAt      time.Time       `json:"deliver_at"`
	LeadDays       int             `json:"lead_days"`
	Label          string          `json:"label"`
	Tier           int             `json:"tier"`
	ReferenceDate  civil.Date      `json:"reference_date"`
	RolledOver     bool            `json:"rolled_over"`
	LandsOnHoliday bool            `json:"lands_on_holiday"`
	LandsOnWeekend bool            `json:"lands_on_weekend"`
	Rule           domain.RuleEcho `json:"rule"`
}

func DeliveryDateResponseFrom(res *domain.DeliveryResult) DeliveryDateResponse {
	return DeliveryDateResponse{
		DeliveryDate:   res.Date,
		DeliverAt:      res.DeliveryDate,
		LeadDays:       res.LeadDays,
		Label:          res.Label,
		Tier:           res.Tier,
		ReferenceDate:  res.ReferenceDate,
		RolledOver:     res.RolledOver,
		LandsOnHoliday: res.LandsOnHoliday,
		LandsOnWeekend: res.LandsOnWeekend,
		Rule:           res.Rule,
	}
}
