package ports

import (
	"context"

	"delivery-date-service/internal/domain"
)

// Port: per-tenant holiday storage.
type HolidayRepository interface {
	// Return the tenant's holidays whose date falls in year. An empty result is not an error.
	ListByYear(ctx context.Context, tenantID string, year int) ([]domain.Holiday, error)

	// Insert holidays, skipping dates the tenant already has. Returns the number inserted.
	InsertMany(ctx context.Context, tenantID string, holidays []domain.Holiday) (int, error)
}
