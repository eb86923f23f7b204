package services

import (
	"context"
	"errors"
	"fmt"

	"delivery-date-service/internal/domain"
	perr "delivery-date-service/internal/platform/errors"
	"delivery-date-service/internal/platform/metrics"
	"delivery-date-service/internal/ports"
)

// RuleResolver finds the active delivery rule for a tenant and region and
// memoizes it. Entries live until ClearCache.
type RuleResolver struct {
	repo  ports.RuleRepository
	cache ports.RuleCache
}

func NewRuleResolver(repo ports.RuleRepository, cache ports.RuleCache) *RuleResolver {
	return &RuleResolver{repo: repo, cache: cache}
}

// Resolve returns the active rule. A missing rule is an error wrapping
// domain.ErrRuleNotFound; there is no default rule.
func (r *RuleResolver) Resolve(ctx context.Context, region, tenantID string) (*domain.DeliveryRule, error) {
	tenantID, region = domain.NormalizeKey(tenantID), domain.NormalizeKey(region)
	if tenantID == "" || region == "" {
		return nil, perr.InvalidArgf("resolve rule: tenant and region are required")
	}
	key := domain.RuleKey(tenantID, region)

	if rule, ok := r.cache.Get(key); ok {
		metrics.CacheLookups.WithLabelValues("rule", "hit").Inc()
		return &rule, nil
	}
	metrics.CacheLookups.WithLabelValues("rule", "miss").Inc()

	rule, err := r.repo.FindActive(ctx, tenantID, region)
	if err != nil {
		if errors.Is(err, domain.ErrRuleNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("resolve rule: %w", err)
	}
	if rule == nil {
		return nil, perr.Wrapf(domain.ErrRuleNotFound, perr.ErrorCodeNotFound, "resolve rule tenant=%q region=%q", tenantID, region)
	}
	if err := rule.Validate(); err != nil {
		return nil, fmt.Errorf("resolve rule: %w", err)
	}

	r.cache.Put(key, *rule)
	out := rule.Clone()
	return &out, nil
}

// ClearCache drops every memoized rule. Call it after rules change in storage.
func (r *RuleResolver) ClearCache() {
	r.cache.Clear()
}
