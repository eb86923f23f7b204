package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	Calculations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "delivery_date_calculations_total",
		Help: "Delivery date calculations, labelled by outcome (ok, rule_not_found, unreachable, invalid_rule, error).",
	}, []string{"outcome"})

	Rollovers = promauto.NewCounter(prometheus.CounterOpts{
		Name: "delivery_date_rollovers_total",
		Help: "Orders that arrived on a non-business day and were rolled to the next business day.",
	})

	TierSelections = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "delivery_date_tier_selections_total",
		Help: "Cutoff tier chosen per calculation, labelled by tier position (1-based, last is overflow).",
	}, []string{"tier"})

	CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "delivery_date_cache_lookups_total",
		Help: "Rule and holiday cache lookups, labelled by cache and result (hit, miss).",
	}, []string{"cache", "result"})

	HolidayConversionFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "delivery_date_holiday_conversion_failures_total",
		Help: "Lunar holidays dropped because the lunar to solar conversion failed.",
	})

	BusinessDayWalk = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "delivery_date_business_day_walk_days",
		Help:    "Candidate civil days examined per business-day walk.",
		Buckets: []float64{1, 2, 3, 5, 7, 10, 15, 30, 60, 365},
	})
)
