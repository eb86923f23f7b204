package services

import (
	"context"
	"fmt"

	"delivery-date-service/internal/domain"
	"delivery-date-service/internal/platform/metrics"
	"delivery-date-service/internal/ports"
)

// HolidayGenerator produces the national holiday list for a year.
type HolidayGenerator interface {
	Generate(year int) []domain.Holiday
}

// sharedTenant keys the generated calendar when no store is configured.
const sharedTenant = ""

// HolidayProvider serves one holiday set per tenant and year. With a nil
// repository the generated national calendar is used for every tenant.
type HolidayProvider struct {
	repo  ports.HolidayRepository
	gen   HolidayGenerator
	cache ports.HolidayCache
}

func NewHolidayProvider(repo ports.HolidayRepository, gen HolidayGenerator, cache ports.HolidayCache) *HolidayProvider {
	return &HolidayProvider{repo: repo, gen: gen, cache: cache}
}

// For returns the tenant's holiday set for year. The result is shared and read-only.
func (p *HolidayProvider) For(ctx context.Context, tenantID string, year int) (domain.HolidaySet, error) {
	key := ports.HolidayKey{TenantID: tenantID, Year: year}
	if p.repo == nil {
		key.TenantID = sharedTenant
	}

	if set, ok := p.cache.Get(key); ok {
		metrics.CacheLookups.WithLabelValues("holiday", "hit").Inc()
		return set, nil
	}
	metrics.CacheLookups.WithLabelValues("holiday", "miss").Inc()

	var hs []domain.Holiday
	if p.repo == nil {
		hs = p.gen.Generate(year)
	} else {
		var err error
		hs, err = p.repo.ListByYear(ctx, tenantID, year)
		if err != nil {
			return nil, fmt.Errorf("holidays tenant=%q year=%d: %w", tenantID, year, err)
		}
	}

	set := domain.NewHolidaySet(hs)
	p.cache.Put(key, set)
	return set, nil
}

// ClearCache drops every cached holiday set.
func (p *HolidayProvider) ClearCache() {
	p.cache.Clear()
}
