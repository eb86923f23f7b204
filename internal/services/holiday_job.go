package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"delivery-date-service/internal/domain"
	"delivery-date-service/internal/platform/logger"
	"delivery-date-service/internal/ports"
)

type tenantInsertResult struct {
	tenantID string
	inserted int
	err      error
}

type GenerateHolidaysRequest struct {
	Year    int
	Tenants []string
	// Concurrency bounds parallel tenant inserts; defaults to 4.
	Concurrency int
}

// GenerateHolidays stores the generated calendar of req.Year for every tenant.
// Dates a tenant already has are skipped, so rerunning the job is safe.
// Returns the number of rows inserted per tenant.
func GenerateHolidays(
	ctx context.Context,
	req GenerateHolidaysRequest,
	gen HolidayGenerator,
	repo ports.HolidayRepository,
) (map[string]int, error) {
	if req.Year <= 0 {
		return nil, fmt.Errorf("generate holidays: invalid year %d", req.Year)
	}

	tenants := make([]string, 0, len(req.Tenants))
	seen := map[string]struct{}{}
	for _, t := range req.Tenants {
		t = domain.NormalizeKey(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		tenants = append(tenants, t)
	}
	if len(tenants) == 0 {
		return map[string]int{}, nil
	}

	holidays := gen.Generate(req.Year)
	log := logger.C(ctx).With().Int("year", req.Year).Logger()

	workers := req.Concurrency
	if workers <= 0 {
		workers = 4
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sem := make(chan struct{}, workers)
	resultsCh := make(chan tenantInsertResult, len(tenants))
	var wg sync.WaitGroup

	for _, tenant := range tenants {
		wg.Add(1)
		go func(tenantID string) {
			sem <- struct{}{}
			defer wg.Done()
			defer func() { <-sem }()

			n, err := repo.InsertMany(ctx, tenantID, holidays)
			if err != nil {
				resultsCh <- tenantInsertResult{tenantID: tenantID, err: fmt.Errorf("generate holidays: tenant %q: %w", tenantID, err)}
				cancel()
				return
			}
			resultsCh <- tenantInsertResult{tenantID: tenantID, inserted: n}
		}(tenant)
	}

	wg.Wait()
	close(resultsCh)

	out := make(map[string]int, len(tenants))
	var errs []string
	var firstErr error
	for res := range resultsCh {
		if res.err != nil {
			if firstErr == nil {
				firstErr = res.err
			}
			errs = append(errs, res.tenantID)
			continue
		}
		out[res.tenantID] = res.inserted
		log.Info().Str("tenant_id", res.tenantID).Int("inserted", res.inserted).Int("generated", len(holidays)).Msg("holidays stored")
	}
	if firstErr != nil {
		return out, fmt.Errorf("%w (failed tenants: %s)", firstErr, strings.Join(errs, ","))
	}

	return out, nil
}
