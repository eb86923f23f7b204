package ports

import "delivery-date-service/internal/domain"

// RuleCache holds resolved rules keyed by domain.RuleKey. Entries never expire;
// Clear is the only invalidation.
type RuleCache interface {
	Get(key string) (domain.DeliveryRule, bool)
	Put(key string, rule domain.DeliveryRule)
	Clear()
}

// HolidayKey identifies one tenant's holiday set for one year.
type HolidayKey struct {
	TenantID string
	Year     int
}

// HolidayCache holds holiday sets per tenant and year.
type HolidayCache interface {
	Get(key HolidayKey) (domain.HolidaySet, bool)
	Put(key HolidayKey, set domain.HolidaySet)
	Clear()
}
