package domain

import (
	"slices"
	"strings"

	"delivery-date-service/internal/civil"
	perr "delivery-date-service/internal/platform/errors"
	"delivery-date-service/internal/platform/validate"

	"golang.org/x/text/unicode/norm"
)

// CutoffTier applies to orders placed strictly before Cutoff.
type CutoffTier struct {
	Cutoff   civil.Clock `json:"cutoff" validate:"min=0,max=1439"`
	LeadDays int         `json:"lead_days" validate:"min=1"`
	Label    string      `json:"label" validate:"required"`
}

// OverflowTier applies to orders at or after the last cutoff.
type OverflowTier struct {
	LeadDays int    `json:"lead_days"`
	Label    string `json:"label"`
}

func (o OverflowTier) IsZero() bool { return o.LeadDays == 0 && o.Label == "" }

// DeliveryRule is the per tenant and region delivery policy.
type DeliveryRule struct {
	TenantID        string       `json:"tenant_id" validate:"required"`
	Region          string       `json:"region" validate:"required"`
	Tiers           []CutoffTier `json:"tiers" validate:"min=1,max=2,dive"`
	Overflow        OverflowTier `json:"overflow"`
	WorkingWeekdays WeekdaySet   `json:"working_weekdays"`
	ClosedDates     []civil.Date `json:"closed_dates"`
	ExcludeHolidays bool         `json:"exclude_holidays"`
	Active          bool         `json:"active"`
}

// Selection is the outcome of classifying an order clock time against a rule.
// Tier is 1-based; the overflow tier is len(Tiers)+1.
type Selection struct {
	Tier     int
	LeadDays int
	Label    string
	Overflow bool
}

// EffectiveOverflow fills an unset overflow tier from the last cutoff tier:
// one more lead day and the same label. Each field defaults independently.
func (r DeliveryRule) EffectiveOverflow() OverflowTier {
	o := r.Overflow
	if len(r.Tiers) == 0 {
		return o
	}
	last := r.Tiers[len(r.Tiers)-1]
	if o.LeadDays == 0 {
		o.LeadDays = last.LeadDays + 1
	}
	if o.Label == "" {
		o.Label = last.Label
	}
	return o
}

// Classify picks the first tier whose cutoff is strictly after c. Orders at
// or after the last cutoff fall through to the overflow tier.
func (r DeliveryRule) Classify(c civil.Clock) Selection {
	for i, t := range r.Tiers {
		if c < t.Cutoff {
			return Selection{Tier: i + 1, LeadDays: t.LeadDays, Label: t.Label}
		}
	}
	o := r.EffectiveOverflow()
	return Selection{Tier: len(r.Tiers) + 1, LeadDays: o.LeadDays, Label: o.Label, Overflow: true}
}

// IsClosed reports whether d is one of the rule's closed dates.
func (r DeliveryRule) IsClosed(d civil.Date) bool {
	return slices.Contains(r.ClosedDates, d)
}

// Validate checks the structural invariants. Failures wrap ErrInvalidRule and
// carry the offending field.
func (r DeliveryRule) Validate() error {
	if err := validate.Struct(r); err != nil {
		field := ""
		if e, ok := perr.As(err); ok {
			field = e.Field()
		}
		return r.invalid(field, "%v", err)
	}

	for i := 1; i < len(r.Tiers); i++ {
		if r.Tiers[i].Cutoff <= r.Tiers[i-1].Cutoff {
			return r.invalid("tiers", "cutoff %s must be after %s", r.Tiers[i].Cutoff, r.Tiers[i-1].Cutoff)
		}
	}
	if r.WorkingWeekdays.IsEmpty() {
		return r.invalid("working_weekdays", "working weekday set is empty")
	}
	if r.Overflow.LeadDays < 0 {
		return r.invalid("overflow", "overflow lead days must not be negative")
	}
	return nil
}

func (r DeliveryRule) invalid(field, format string, a ...any) error {
	args := append([]any{r.TenantID, r.Region}, a...)
	err := perr.Wrapf(ErrInvalidRule, perr.ErrorCodeValidation, "rule tenant=%q region=%q: "+format, args...)
	return perr.WithField(err, field)
}

// Clone returns a copy that shares no slices with r.
func (r DeliveryRule) Clone() DeliveryRule {
	c := r
	c.Tiers = slices.Clone(r.Tiers)
	c.ClosedDates = slices.Clone(r.ClosedDates)
	return c
}

// NormalizeKey trims s and converts it to NFC so composed and decomposed
// Hangul spell the same region.
func NormalizeKey(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// RuleKey is the cache key for a tenant and region.
func RuleKey(tenantID, region string) string {
	return NormalizeKey(tenantID) + "|" + NormalizeKey(region)
}
