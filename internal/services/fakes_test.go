package services

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"delivery-date-service/internal/adapters/cache"
	"delivery-date-service/internal/civil"
	"delivery-date-service/internal/domain"
	"delivery-date-service/internal/holiday"
	perr "delivery-date-service/internal/platform/errors"
)

type fakeRuleRepo struct {
	mu    sync.Mutex
	rules map[string]domain.DeliveryRule
	calls atomic.Int32
	err   error
}

func newFakeRuleRepo(rules ...domain.DeliveryRule) *fakeRuleRepo {
	f := &fakeRuleRepo{rules: map[string]domain.DeliveryRule{}}
	for _, r := range rules {
		f.put(r)
	}
	return f
}

func (f *fakeRuleRepo) put(r domain.DeliveryRule) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rules[domain.RuleKey(r.TenantID, r.Region)] = r.Clone()
}

func (f *fakeRuleRepo) FindActive(_ context.Context, tenantID, region string) (*domain.DeliveryRule, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.rules[domain.RuleKey(tenantID, region)]
	if !ok || !r.Active {
		return nil, perr.Wrapf(domain.ErrRuleNotFound, perr.ErrorCodeNotFound, "find rule tenant=%q region=%q", tenantID, region)
	}
	c := r.Clone()
	return &c, nil
}

// fakeHolidayRepo serves the generated national calendar to every tenant,
// plus any extra dates per tenant.
type fakeHolidayRepo struct {
	mu       sync.Mutex
	extra    map[string][]domain.Holiday
	inserted map[string][]domain.Holiday
	calls    atomic.Int32
	failFor  string
}

func newFakeHolidayRepo() *fakeHolidayRepo {
	return &fakeHolidayRepo{extra: map[string][]domain.Holiday{}, inserted: map[string][]domain.Holiday{}}
}

func (f *fakeHolidayRepo) ListByYear(_ context.Context, tenantID string, year int) ([]domain.Holiday, error) {
	f.calls.Add(1)
	out := holiday.Generate(year)
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, h := range f.extra[tenantID] {
		if h.Date.Year == year {
			out = append(out, h)
		}
	}
	return out, nil
}

func (f *fakeHolidayRepo) InsertMany(_ context.Context, tenantID string, hs []domain.Holiday) (int, error) {
	if tenantID == f.failFor {
		return 0, errors.New("insert failed")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	have := map[civil.Date]bool{}
	for _, h := range f.inserted[tenantID] {
		have[h.Date] = true
	}
	n := 0
	for _, h := range hs {
		if have[h.Date] {
			continue
		}
		have[h.Date] = true
		f.inserted[tenantID] = append(f.inserted[tenantID], h)
		n++
	}
	return n, nil
}

type engine struct {
	rules    *fakeRuleRepo
	holidays *fakeHolidayRepo
	resolver *RuleResolver
	provider *HolidayProvider
	days     *BusinessDays
	calc     *DeliveryDateCalculator
}

func newEngine(rules ...domain.DeliveryRule) *engine {
	e := &engine{rules: newFakeRuleRepo(rules...), holidays: newFakeHolidayRepo()}
	e.resolver = NewRuleResolver(e.rules, cache.NewMemoryRuleCache())
	e.provider = NewHolidayProvider(e.holidays, holiday.New(), cache.NewMemoryHolidayCache())
	e.days = NewBusinessDays(e.provider)
	e.calc = NewDeliveryDateCalculator(e.resolver, e.days)
	return e
}

func singleCutoffRule() domain.DeliveryRule {
	return domain.DeliveryRule{
		TenantID:        "acme",
		Region:          "서울",
		Tiers:           []domain.CutoffTier{{Cutoff: civil.MustClock("14:00"), LeadDays: 1, Label: "before"}},
		WorkingWeekdays: domain.MonToFri,
		ExcludeHolidays: true,
		Active:          true,
	}
}

func dualCutoffRule() domain.DeliveryRule {
	return domain.DeliveryRule{
		TenantID: "acme",
		Region:   "부산",
		Tiers: []domain.CutoffTier{
			{Cutoff: civil.MustClock("11:00"), LeadDays: 1, Label: "morning"},
			{Cutoff: civil.MustClock("14:00"), LeadDays: 2, Label: "afternoon"},
		},
		Overflow:        domain.OverflowTier{LeadDays: 3, Label: "evening"},
		WorkingWeekdays: domain.MonToFri,
		ExcludeHolidays: true,
		Active:          true,
	}
}

// splitLabelRule has one cutoff and an explicit overflow with its own label.
func splitLabelRule() domain.DeliveryRule {
	return domain.DeliveryRule{
		TenantID:        "acme",
		Region:          "대구",
		Tiers:           []domain.CutoffTier{{Cutoff: civil.MustClock("14:00"), LeadDays: 1, Label: "morning"}},
		Overflow:        domain.OverflowTier{LeadDays: 2, Label: "afternoon"},
		WorkingWeekdays: domain.MonToFri,
		ExcludeHolidays: true,
		Active:          true,
	}
}

func morningAfternoonEveningRule() domain.DeliveryRule {
	return domain.DeliveryRule{
		TenantID: "acme",
		Region:   "광주",
		Tiers: []domain.CutoffTier{
			{Cutoff: civil.MustClock("10:00"), LeadDays: 1, Label: "morning"},
			{Cutoff: civil.MustClock("15:00"), LeadDays: 2, Label: "afternoon"},
		},
		Overflow:        domain.OverflowTier{LeadDays: 3, Label: "evening"},
		WorkingWeekdays: domain.MonToFri,
		ExcludeHolidays: true,
		Active:          true,
	}
}

// kst builds an instant from Seoul wall-clock fields.
func kst(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, civil.Zone)
}

func date(y int, m time.Month, d int) civil.Date {
	return civil.NewDate(y, m, d)
}
