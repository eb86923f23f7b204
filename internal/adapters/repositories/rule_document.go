package repositories

import (
	"fmt"
	"strings"

	"delivery-date-service/internal/civil"
	"delivery-date-service/internal/domain"
)

// RuleDoc is the file form of a delivery rule, shared by the JSON seed file and
// the YAML rule file. Clock times are "HH:MM", dates "YYYY-MM-DD", weekdays "mon".
type RuleDoc struct {
	TenantID        string       `json:"tenant_id" yaml:"tenant_id"`
	Region          string       `json:"region" yaml:"region"`
	Tiers           []TierDoc    `json:"tiers" yaml:"tiers"`
	Overflow        *OverflowDoc `json:"overflow,omitempty" yaml:"overflow,omitempty"`
	WorkingWeekdays []string     `json:"working_weekdays" yaml:"working_weekdays"`
	ClosedDates     []string     `json:"closed_dates,omitempty" yaml:"closed_dates,omitempty"`
	ExcludeHolidays *bool        `json:"exclude_holidays,omitempty" yaml:"exclude_holidays,omitempty"`
	Active          *bool        `json:"active,omitempty" yaml:"active,omitempty"`
}

type TierDoc struct {
	Cutoff   string `json:"cutoff" yaml:"cutoff"`
	LeadDays int    `json:"lead_days" yaml:"lead_days"`
	Label    string `json:"label" yaml:"label"`
}

type OverflowDoc struct {
	LeadDays int    `json:"lead_days" yaml:"lead_days"`
	Label    string `json:"label" yaml:"label"`
}

// ToDomain parses the document. exclude_holidays and active default to true.
// Keys are normalized; structural validation is left to DeliveryRule.Validate.
func (d RuleDoc) ToDomain() (domain.DeliveryRule, error) {
	r := domain.DeliveryRule{
		TenantID:        domain.NormalizeKey(d.TenantID),
		Region:          domain.NormalizeKey(d.Region),
		ExcludeHolidays: d.ExcludeHolidays == nil || *d.ExcludeHolidays,
		Active:          d.Active == nil || *d.Active,
	}

	for i, t := range d.Tiers {
		c, err := civil.ParseClock(t.Cutoff)
		if err != nil {
			return domain.DeliveryRule{}, fmt.Errorf("rule %s/%s: tier #%d: %w", d.TenantID, d.Region, i+1, err)
		}
		r.Tiers = append(r.Tiers, domain.CutoffTier{Cutoff: c, LeadDays: t.LeadDays, Label: strings.TrimSpace(t.Label)})
	}
	if d.Overflow != nil {
		r.Overflow = domain.OverflowTier{LeadDays: d.Overflow.LeadDays, Label: strings.TrimSpace(d.Overflow.Label)}
	}

	wd, err := domain.ParseWeekdaySet(d.WorkingWeekdays)
	if err != nil {
		return domain.DeliveryRule{}, fmt.Errorf("rule %s/%s: %w", d.TenantID, d.Region, err)
	}
	r.WorkingWeekdays = wd

	for _, s := range d.ClosedDates {
		cd, err := civil.ParseDate(strings.TrimSpace(s))
		if err != nil {
			return domain.DeliveryRule{}, fmt.Errorf("rule %s/%s: closed date: %w", d.TenantID, d.Region, err)
		}
		r.ClosedDates = append(r.ClosedDates, cd)
	}

	return r, nil
}

// DocFromDomain is the inverse of ToDomain.
func DocFromDomain(r domain.DeliveryRule) RuleDoc {
	d := RuleDoc{
		TenantID:        r.TenantID,
		Region:          r.Region,
		WorkingWeekdays: r.WorkingWeekdays.Strings(),
		ExcludeHolidays: &r.ExcludeHolidays,
		Active:          &r.Active,
	}
	for _, t := range r.Tiers {
		d.Tiers = append(d.Tiers, TierDoc{Cutoff: t.Cutoff.String(), LeadDays: t.LeadDays, Label: t.Label})
	}
	if !r.Overflow.IsZero() {
		d.Overflow = &OverflowDoc{LeadDays: r.Overflow.LeadDays, Label: r.Overflow.Label}
	}
	for _, cd := range r.ClosedDates {
		d.ClosedDates = append(d.ClosedDates, cd.String())
	}
	return d
}

// ParseRuleDocs converts and validates every document.
func ParseRuleDocs(docs []RuleDoc) ([]domain.DeliveryRule, error) {
	out := make([]domain.DeliveryRule, 0, len(docs))
	for i, doc := range docs {
		r, err := doc.ToDomain()
		if err != nil {
			return nil, fmt.Errorf("parse rules: item #%d: %w", i+1, err)
		}
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("parse rules: item #%d: %w", i+1, err)
		}
		out = append(out, r)
	}
	return out, nil
}
