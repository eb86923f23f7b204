package services

import (
	"context"
	"errors"
	"strconv"

	"delivery-date-service/internal/civil"
	"delivery-date-service/internal/domain"
	perr "delivery-date-service/internal/platform/errors"
	"delivery-date-service/internal/platform/logger"
	"delivery-date-service/internal/platform/metrics"
)

// DeliveryDateCalculator turns an order instant into a delivery date and label.
type DeliveryDateCalculator struct {
	rules *RuleResolver
	days  *BusinessDays
}

func NewDeliveryDateCalculator(rules *RuleResolver, days *BusinessDays) *DeliveryDateCalculator {
	return &DeliveryDateCalculator{rules: rules, days: days}
}

// Calculate resolves the rule, rolls a non-business order day forward to the
// next business day (civil midnight), classifies the original clock time into
// a tier and advances the tier's lead days from the reference day.
func (c *DeliveryDateCalculator) Calculate(ctx context.Context, req domain.CalculateRequest) (_ *domain.DeliveryResult, err error) {
	defer func() { metrics.Calculations.WithLabelValues(outcome(err)).Inc() }()

	if req.OrderedAt.IsZero() {
		return nil, perr.WithField(perr.InvalidArgf("calculate delivery date: ordered_at is required"), "ordered_at")
	}

	rule, err := c.rules.Resolve(ctx, req.Region, req.TenantID)
	if err != nil {
		return nil, err
	}
	tenantID := rule.TenantID

	clock := civil.Clock(civil.MinutesOfDay(req.OrderedAt))
	orderDay := civil.DateOf(req.OrderedAt)
	cal := c.days.calendar(*rule, tenantID, req.CustomHolidays)

	ref := orderDay
	rolled := false
	ok, err := cal.isBusinessDay(ctx, orderDay)
	if err != nil {
		return nil, err
	}
	if !ok {
		if ref, err = cal.walk(ctx, orderDay, 1); err != nil {
			return nil, err
		}
		rolled = true
		metrics.Rollovers.Inc()
	}

	sel := rule.Classify(clock)
	metrics.TierSelections.WithLabelValues(strconv.Itoa(sel.Tier)).Inc()

	date, err := cal.walk(ctx, ref, sel.LeadDays)
	if err != nil {
		return nil, err
	}

	onHoliday, err := cal.isHoliday(ctx, date)
	if err != nil {
		return nil, err
	}

	res := &domain.DeliveryResult{
		DeliveryDate:   date.Time(),
		Date:           date,
		LeadDays:       sel.LeadDays,
		Label:          sel.Label,
		Tier:           sel.Tier,
		ReferenceDate:  ref,
		RolledOver:     rolled,
		LandsOnHoliday: onHoliday,
		LandsOnWeekend: date.IsWeekend(),
		Rule:           domain.EchoOf(*rule),
	}

	logger.C(ctx).Debug().
		Str("region", rule.Region).
		Str("order_day", orderDay.String()).
		Str("order_clock", clock.String()).
		Str("reference", ref.String()).
		Bool("rolled_over", rolled).
		Int("tier", sel.Tier).
		Str("delivery_date", date.String()).
		Msg("delivery date calculated")

	return res, nil
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrRuleNotFound):
		return "rule_not_found"
	case errors.Is(err, domain.ErrBusinessDaysUnreachable):
		return "unreachable"
	case errors.Is(err, domain.ErrInvalidRule):
		return "invalid_rule"
	default:
		return "error"
	}
}
