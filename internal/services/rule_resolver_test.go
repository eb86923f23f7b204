package services

import (
	"context"
	"errors"
	"testing"

	"delivery-date-service/internal/adapters/cache"
	"delivery-date-service/internal/civil"
	"delivery-date-service/internal/domain"
	perr "delivery-date-service/internal/platform/errors"
)

func TestRuleResolverCachesUntilCleared(t *testing.T) {
	repo := newFakeRuleRepo(singleCutoffRule())
	r := NewRuleResolver(repo, cache.NewMemoryRuleCache())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		rule, err := r.Resolve(ctx, "서울", "acme")
		if err != nil {
			t.Fatalf("Resolve: %v", err)
		}
		if rule.Tiers[0].Cutoff != civil.MustClock("14:00") {
			t.Fatalf("cutoff = %s", rule.Tiers[0].Cutoff)
		}
	}
	// padded keys share the normalized entry
	if _, err := r.Resolve(ctx, "서울 ", " acme"); err != nil {
		t.Fatalf("Resolve padded: %v", err)
	}
	if got := repo.calls.Load(); got != 1 {
		t.Fatalf("repository calls = %d, want 1", got)
	}

	updated := singleCutoffRule()
	updated.Tiers[0].Cutoff = civil.MustClock("16:00")
	repo.put(updated)

	rule, _ := r.Resolve(ctx, "서울", "acme")
	if rule.Tiers[0].Cutoff != civil.MustClock("14:00") {
		t.Fatal("cache was refreshed without ClearCache")
	}

	r.ClearCache()
	rule, err := r.Resolve(ctx, "서울", "acme")
	if err != nil {
		t.Fatalf("Resolve after clear: %v", err)
	}
	if rule.Tiers[0].Cutoff != civil.MustClock("16:00") {
		t.Fatalf("cutoff after clear = %s, want 16:00", rule.Tiers[0].Cutoff)
	}
	if got := repo.calls.Load(); got != 2 {
		t.Fatalf("repository calls = %d, want 2", got)
	}
}

func TestRuleResolverReturnsPrivateCopies(t *testing.T) {
	repo := newFakeRuleRepo(dualCutoffRule())
	r := NewRuleResolver(repo, cache.NewMemoryRuleCache())
	ctx := context.Background()

	first, _ := r.Resolve(ctx, "부산", "acme")
	first.Tiers[0].Label = "mutated"

	second, _ := r.Resolve(ctx, "부산", "acme")
	if second.Tiers[0].Label != "morning" {
		t.Fatalf("cached rule mutated through a returned pointer: %q", second.Tiers[0].Label)
	}
}

func TestRuleResolverErrors(t *testing.T) {
	ctx := context.Background()

	r := NewRuleResolver(newFakeRuleRepo(), cache.NewMemoryRuleCache())
	_, err := r.Resolve(ctx, "서울", "acme")
	if !errors.Is(err, domain.ErrRuleNotFound) || perr.CodeOf(err) != perr.ErrorCodeNotFound {
		t.Fatalf("not found err = %v", err)
	}

	broken := singleCutoffRule()
	broken.WorkingWeekdays = 0
	repo := newFakeRuleRepo(broken)
	r = NewRuleResolver(repo, cache.NewMemoryRuleCache())
	for i := 0; i < 2; i++ {
		if _, err := r.Resolve(ctx, "서울", "acme"); !errors.Is(err, domain.ErrInvalidRule) {
			t.Fatalf("invalid rule err = %v", err)
		}
	}
	if got := repo.calls.Load(); got != 2 {
		t.Fatalf("invalid rule was cached: repository calls = %d", got)
	}

	failing := newFakeRuleRepo()
	failing.err = perr.New(perr.ErrorCodeUnavailable, "db down")
	r = NewRuleResolver(failing, cache.NewMemoryRuleCache())
	_, err = r.Resolve(ctx, "서울", "acme")
	if perr.CodeOf(err) != perr.ErrorCodeUnavailable || errors.Is(err, domain.ErrRuleNotFound) {
		t.Fatalf("storage err = %v", err)
	}
}
