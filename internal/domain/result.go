package domain

import (
	"slices"
	"time"

	"delivery-date-service/internal/civil"
)

// CalculateRequest asks for the delivery date of one order.
// CustomHolidays are treated like tenant holidays for this call only.
type CalculateRequest struct {
	Region         string
	OrderedAt      time.Time
	TenantID       string
	CustomHolidays []civil.Date
}

// RuleEcho is the part of the applied rule returned to callers for display.
type RuleEcho struct {
	TenantID        string       `json:"tenant_id"`
	Region          string       `json:"region"`
	Tiers           []CutoffTier `json:"tiers"`
	Overflow        OverflowTier `json:"overflow"`
	WorkingWeekdays []string     `json:"working_weekdays"`
	ExcludeHolidays bool         `json:"exclude_holidays"`
	ClosedDates     []civil.Date `json:"closed_dates"`
}

func EchoOf(r DeliveryRule) RuleEcho {
	return RuleEcho{
		TenantID:        r.TenantID,
		Region:          r.Region,
		Tiers:           slices.Clone(r.Tiers),
		Overflow:        r.EffectiveOverflow(),
		WorkingWeekdays: r.WorkingWeekdays.Strings(),
		ExcludeHolidays: r.ExcludeHolidays,
		ClosedDates:     slices.Clone(r.ClosedDates),
	}
}

// DeliveryResult is the computed delivery date for an order.
// LandsOnHoliday and LandsOnWeekend are informational only.
type DeliveryResult struct {
	DeliveryDate   time.Time
	Date           civil.Date
	LeadDays       int
	Label          string
	Tier           int
	ReferenceDate  civil.Date
	RolledOver     bool
	LandsOnHoliday bool
	LandsOnWeekend bool
	Rule           RuleEcho
}
