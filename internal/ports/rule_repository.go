package ports

import (
	"context"

	"delivery-date-service/internal/domain"
)

// Port: a boundary for reading delivery rules from persistent storage.
type RuleRepository interface {
	// Return the active rule for tenant and region. A missing rule is reported
	// as an error wrapping domain.ErrRuleNotFound.
	FindActive(ctx context.Context, tenantID, region string) (*domain.DeliveryRule, error)
}

// Optional extension for stores that can enumerate their rules (seeding, reload).
type RuleLister interface {
	RuleRepository
	ListActive(ctx context.Context) ([]domain.DeliveryRule, error)
}
