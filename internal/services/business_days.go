package services

import (
	"context"
	"fmt"
	"time"

	"delivery-date-service/internal/civil"
	"delivery-date-service/internal/domain"
	perr "delivery-date-service/internal/platform/errors"
	"delivery-date-service/internal/platform/metrics"
)

// BusinessDays walks the civil calendar under a delivery rule.
type BusinessDays struct {
	holidays *HolidayProvider
}

func NewBusinessDays(holidays *HolidayProvider) *BusinessDays {
	return &BusinessDays{holidays: holidays}
}

// calendar is the per-walk view of a rule: holiday sets are fetched once per
// year touched and the per-call custom dates are merged in.
type calendar struct {
	b        *BusinessDays
	rule     domain.DeliveryRule
	tenantID string
	custom   map[civil.Date]struct{}
	years    map[int]domain.HolidaySet
}

func (b *BusinessDays) calendar(rule domain.DeliveryRule, tenantID string, custom []civil.Date) *calendar {
	c := &calendar{b: b, rule: rule, tenantID: tenantID, years: make(map[int]domain.HolidaySet, 2)}
	if len(custom) > 0 {
		c.custom = make(map[civil.Date]struct{}, len(custom))
		for _, d := range custom {
			c.custom[d] = struct{}{}
		}
	}
	return c
}

func (c *calendar) isHoliday(ctx context.Context, d civil.Date) (bool, error) {
	if _, ok := c.custom[d]; ok {
		return true, nil
	}
	set, ok := c.years[d.Year]
	if !ok {
		var err error
		set, err = c.b.holidays.For(ctx, c.tenantID, d.Year)
		if err != nil {
			return false, err
		}
		c.years[d.Year] = set
	}
	return set.Contains(d), nil
}

// isBusinessDay applies the rejections in order: weekday, closed date, holiday.
func (c *calendar) isBusinessDay(ctx context.Context, d civil.Date) (bool, error) {
	if !c.rule.WorkingWeekdays.Has(d.Weekday()) {
		return false, nil
	}
	if c.rule.IsClosed(d) {
		return false, nil
	}
	if !c.rule.ExcludeHolidays {
		return true, nil
	}
	hol, err := c.isHoliday(ctx, d)
	if err != nil {
		return false, err
	}
	return !hol, nil
}

// walk returns the n-th business day strictly after start.
func (c *calendar) walk(ctx context.Context, start civil.Date, n int) (civil.Date, error) {
	if n <= 0 {
		return start, nil
	}

	d := start
	found := 0
	for examined := 1; examined <= domain.MaxBusinessDayWalk; examined++ {
		d = d.AddDays(1)
		ok, err := c.isBusinessDay(ctx, d)
		if err != nil {
			return civil.Date{}, fmt.Errorf("business days: %w", err)
		}
		if !ok {
			continue
		}
		found++
		if found == n {
			metrics.BusinessDayWalk.Observe(float64(examined))
			return d, nil
		}
	}

	metrics.BusinessDayWalk.Observe(float64(domain.MaxBusinessDayWalk))
	return civil.Date{}, perr.Wrapf(domain.ErrBusinessDaysUnreachable, perr.ErrorCodeMisconfigured,
		"business days tenant=%q region=%q: found %d of %d within %d days after %s",
		c.tenantID, c.rule.Region, found, n, domain.MaxBusinessDayWalk, start)
}

// Advance returns the civil date n business days after the civil date of start.
// The start day itself never counts. Custom dates are treated as holidays for
// this call when the rule excludes holidays.
func (b *BusinessDays) Advance(ctx context.Context, start time.Time, n int, rule domain.DeliveryRule, tenantID string, custom ...civil.Date) (civil.Date, error) {
	return b.calendar(rule, tenantID, custom).walk(ctx, civil.DateOf(start), n)
}

// Next returns the first business day strictly after the civil date of from.
func (b *BusinessDays) Next(ctx context.Context, from time.Time, rule domain.DeliveryRule, tenantID string, custom ...civil.Date) (civil.Date, error) {
	return b.Advance(ctx, from, 1, rule, tenantID, custom...)
}

// IsBusinessDay reports whether d passes the weekday, closed-date and holiday tests.
func (b *BusinessDays) IsBusinessDay(ctx context.Context, d civil.Date, rule domain.DeliveryRule, tenantID string, custom ...civil.Date) (bool, error) {
	return b.calendar(rule, tenantID, custom).isBusinessDay(ctx, d)
}

// IsHoliday reports whether d is a tenant or custom holiday, regardless of the
// rule's ExcludeHolidays flag.
func (b *BusinessDays) IsHoliday(ctx context.Context, d civil.Date, tenantID string, custom ...civil.Date) (bool, error) {
	return b.calendar(domain.DeliveryRule{}, tenantID, custom).isHoliday(ctx, d)
}
