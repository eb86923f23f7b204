package domain

import (
	"errors"
	"testing"
	"time"

	"delivery-date-service/internal/civil"
	perr "delivery-date-service/internal/platform/errors"
)

func dualCutoffRule() DeliveryRule {
	return DeliveryRule{
		TenantID: "acme",
		Region:   "서울",
		Tiers: []CutoffTier{
			{Cutoff: civil.MustClock("11:00"), LeadDays: 1, Label: "morning"},
			{Cutoff: civil.MustClock("14:00"), LeadDays: 2, Label: "afternoon"},
		},
		Overflow:        OverflowTier{LeadDays: 3, Label: "evening"},
		WorkingWeekdays: MonToFri,
		Active:          true,
	}
}

func TestClassify(t *testing.T) {
	rule := dualCutoffRule()

	cases := []struct {
		clock    string
		tier     int
		lead     int
		label    string
		overflow bool
	}{
		{"00:00", 1, 1, "morning", false},
		{"10:59", 1, 1, "morning", false},
		{"11:00", 2, 2, "afternoon", false}, // strict less-than
		{"13:59", 2, 2, "afternoon", false},
		{"14:00", 3, 3, "evening", true},
		{"16:00", 3, 3, "evening", true},
		{"23:59", 3, 3, "evening", true},
	}
	for _, c := range cases {
		t.Run(c.clock, func(t *testing.T) {
			got := rule.Classify(civil.MustClock(c.clock))
			if got.Tier != c.tier || got.LeadDays != c.lead || got.Label != c.label || got.Overflow != c.overflow {
				t.Fatalf("Classify(%s) = %+v, want tier=%d lead=%d label=%q overflow=%v",
					c.clock, got, c.tier, c.lead, c.label, c.overflow)
			}
		})
	}
}

func TestEffectiveOverflowDefaults(t *testing.T) {
	rule := DeliveryRule{
		Tiers: []CutoffTier{{Cutoff: civil.MustClock("14:00"), LeadDays: 1, Label: "before"}},
	}
	o := rule.EffectiveOverflow()
	if o.LeadDays != 2 || o.Label != "before" {
		t.Fatalf("EffectiveOverflow = %+v, want lead 2 label before", o)
	}

	rule.Overflow = OverflowTier{Label: "late"}
	o = rule.EffectiveOverflow()
	if o.LeadDays != 2 || o.Label != "late" {
		t.Fatalf("EffectiveOverflow partial = %+v, want lead 2 label late", o)
	}

	sel := rule.Classify(civil.MustClock("15:00"))
	if sel.Tier != 2 || sel.LeadDays != 2 {
		t.Fatalf("Classify single tier overflow = %+v", sel)
	}
}

func TestValidate(t *testing.T) {
	if err := dualCutoffRule().Validate(); err != nil {
		t.Fatalf("Validate valid rule: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*DeliveryRule)
		field  string
	}{
		{"no tiers", func(r *DeliveryRule) { r.Tiers = nil }, "tiers"},
		{"three tiers", func(r *DeliveryRule) {
			r.Tiers = append(r.Tiers, CutoffTier{Cutoff: civil.MustClock("18:00"), LeadDays: 4, Label: "night"})
		}, "tiers"},
		{"cutoffs not increasing", func(r *DeliveryRule) { r.Tiers[1].Cutoff = civil.MustClock("11:00") }, "tiers"},
		{"zero lead", func(r *DeliveryRule) { r.Tiers[0].LeadDays = 0 }, "lead_days"},
		{"missing label", func(r *DeliveryRule) { r.Tiers[0].Label = "" }, "label"},
		{"empty weekdays", func(r *DeliveryRule) { r.WorkingWeekdays = 0 }, "working_weekdays"},
		{"missing tenant", func(r *DeliveryRule) { r.TenantID = "" }, "tenant_id"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rule := dualCutoffRule()
			rule.Tiers = append([]CutoffTier(nil), rule.Tiers...)
			c.mutate(&rule)

			err := rule.Validate()
			if err == nil {
				t.Fatal("Validate = nil, want error")
			}
			if !errors.Is(err, ErrInvalidRule) {
				t.Fatalf("Validate error %v does not wrap ErrInvalidRule", err)
			}
			if perr.CodeOf(err) != perr.ErrorCodeValidation {
				t.Fatalf("CodeOf = %v, want Validation", perr.CodeOf(err))
			}
			e, _ := perr.As(err)
			if e.Field() != c.field {
				t.Fatalf("Field = %q, want %q", e.Field(), c.field)
			}
		})
	}
}

func TestIsClosedAndClone(t *testing.T) {
	rule := dualCutoffRule()
	closed := civil.NewDate(2026, time.January, 7)
	rule.ClosedDates = []civil.Date{closed}

	if !rule.IsClosed(closed) || rule.IsClosed(closed.AddDays(1)) {
		t.Fatal("IsClosed mismatch")
	}

	c := rule.Clone()
	c.Tiers[0].Label = "changed"
	c.ClosedDates[0] = closed.AddDays(3)
	if rule.Tiers[0].Label != "morning" || rule.ClosedDates[0] != closed {
		t.Fatal("Clone shares slices with the original")
	}
}

func TestEchoOf(t *testing.T) {
	rule := dualCutoffRule()
	closed := civil.NewDate(2026, time.January, 7)
	rule.ClosedDates = []civil.Date{closed}

	echo := EchoOf(rule)
	if echo.TenantID != "acme" || echo.Region != "서울" {
		t.Fatalf("identity = %q/%q", echo.TenantID, echo.Region)
	}
	if len(echo.ClosedDates) != 1 || echo.ClosedDates[0] != closed {
		t.Fatalf("closed dates = %v", echo.ClosedDates)
	}
	if len(echo.Tiers) != 2 || echo.Overflow.Label != "evening" || len(echo.WorkingWeekdays) != 5 {
		t.Fatalf("echo = %+v", echo)
	}

	rule.ClosedDates[0] = closed.AddDays(1)
	rule.Tiers[0].Label = "changed"
	if echo.ClosedDates[0] != closed || echo.Tiers[0].Label != "morning" {
		t.Fatal("echo shares slices with the rule")
	}
}

func TestRuleKeyNormalizes(t *testing.T) {
	composed := "서울"
	decomposed := "\u1109\u1165\u110b\u116e\u11af"
	if RuleKey(" acme ", decomposed) != RuleKey("acme", composed) {
		t.Fatalf("RuleKey(%q) != RuleKey(%q)", decomposed, composed)
	}
}

func TestWeekdaySet(t *testing.T) {
	set, err := ParseWeekdaySet([]string{"mon", "Tuesday", "3", "thu", "fri"})
	if err != nil {
		t.Fatalf("ParseWeekdaySet: %v", err)
	}
	if set != MonToFri {
		t.Fatalf("ParseWeekdaySet = %07b, want %07b", set, MonToFri)
	}
	if set.Has(time.Saturday) || set.Has(time.Sunday) || !set.Has(time.Wednesday) {
		t.Fatal("Has mismatch")
	}
	if got := NewWeekdaySet(time.Saturday).Strings(); len(got) != 1 || got[0] != "sat" {
		t.Fatalf("Strings = %v", got)
	}
	if !WeekdaySet(0).IsEmpty() {
		t.Fatal("zero set not empty")
	}
	if _, err := ParseWeekday("someday"); err == nil {
		t.Fatal("ParseWeekday(someday) = nil error")
	}
}

func TestHolidaySet(t *testing.T) {
	d := civil.NewDate(2026, time.March, 2)
	set := NewHolidaySet([]Holiday{
		{Date: d, Name: "대체공휴일", Substitute: true},
		{Date: d, Name: "duplicate"},
	})
	if !set.Contains(d) || set[d] != "대체공휴일" {
		t.Fatalf("HolidaySet = %v", set)
	}
	if set.Contains(d.AddDays(1)) {
		t.Fatal("Contains unexpected date")
	}
}
