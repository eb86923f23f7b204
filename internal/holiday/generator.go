// Package holiday generates the Korean public holiday calendar for a year.
//
// Fixed solar holidays are rickar/cal definitions; the weekend substitute rule
// is expressed through their Observed alternates. Lunar holidays are converted
// to solar dates with lunar-go.
package holiday

import (
	"cmp"
	"fmt"
	"slices"
	"sync"
	"time"

	"delivery-date-service/internal/civil"
	"delivery-date-service/internal/domain"
	"delivery-date-service/internal/platform/logger"
	"delivery-date-service/internal/platform/metrics"

	"github.com/6tail/lunar-go/calendar"
	"github.com/rickar/cal/v2"
)

// SubstituteName labels the observed day of a fixed holiday that fell on a weekend.
const SubstituteName = "대체공휴일"

// Saturday moves to the following Monday, Sunday to the next day.
var weekendSubstitute = []cal.AltDay{
	{Day: time.Saturday, Offset: 2},
	{Day: time.Sunday, Offset: 1},
}

func fixedDay(name string, month time.Month, day int, substitute bool) *cal.Holiday {
	h := &cal.Holiday{
		Name:  name,
		Type:  cal.ObservancePublic,
		Month: month,
		Day:   day,
		Func:  cal.CalcDayOfMonth,
	}
	if substitute {
		h.Observed = weekendSubstitute
	}
	return h
}

// Fixed lists the solar holidays. 신정 and 현충일 carry no substitute day.
var Fixed = []*cal.Holiday{
	fixedDay("신정", time.January, 1, false),
	fixedDay("삼일절", time.March, 1, true),
	fixedDay("어린이날", time.May, 5, true),
	fixedDay("현충일", time.June, 6, false),
	fixedDay("광복절", time.August, 15, true),
	fixedDay("개천절", time.October, 3, true),
	fixedDay("한글날", time.October, 9, true),
	fixedDay("기독탄신일", time.December, 25, true),
}

// LunarHoliday is a lunar calendar date expanded Span days to either side.
type LunarHoliday struct {
	Name  string
	Month int
	Day   int
	Span  int
}

var Lunar = []LunarHoliday{
	{Name: "설날", Month: 1, Day: 1, Span: 1},
	{Name: "부처님오신날", Month: 4, Day: 8},
	{Name: "추석", Month: 8, Day: 15, Span: 1},
}

// LunarToSolar converts a lunar date in the given lunar year to its civil date.
type LunarToSolar func(year, month, day int) (civil.Date, error)

// Generator produces holiday lists. The zero value is not usable; use New.
type Generator struct {
	fixed   []*cal.Holiday
	lunar   []LunarHoliday
	convert LunarToSolar
	log     *logger.Logger
}

type Option func(*Generator)

// WithConverter swaps the lunar conversion, mainly for tests.
func WithConverter(fn LunarToSolar) Option {
	return func(g *Generator) { g.convert = fn }
}

func New(opts ...Option) *Generator {
	g := &Generator{
		fixed:   Fixed,
		lunar:   Lunar,
		convert: ConvertLunar,
		log:     logger.Named("holiday"),
	}
	for _, o := range opts {
		o(g)
	}
	return g
}

var defaultGenerator = sync.OnceValue(func() *Generator { return New() })

// Generate returns the holidays of year using the default generator.
func Generate(year int) []domain.Holiday {
	return defaultGenerator().Generate(year)
}

// Generate returns every holiday of year sorted by date then name. A lunar
// holiday whose conversion fails is logged and left out. Duplicate dates are
// kept; callers that persist deduplicate on (tenant, date).
func (g *Generator) Generate(year int) []domain.Holiday {
	out := make([]domain.Holiday, 0, len(g.fixed)+2*len(g.lunar)+2)

	for _, h := range g.fixed {
		actual, observed := h.Calc(year)
		if actual.IsZero() {
			continue
		}
		out = append(out, domain.Holiday{Date: dateOf(actual), Name: h.Name})
		if !observed.IsZero() && !observed.Equal(actual) {
			out = append(out, domain.Holiday{Date: dateOf(observed), Name: SubstituteName, Substitute: true})
		}
	}

	for _, lh := range g.lunar {
		day, err := g.convert(year, lh.Month, lh.Day)
		if err != nil {
			metrics.HolidayConversionFailures.Inc()
			g.log.Warn().Err(err).Int("year", year).Str("holiday", lh.Name).Msg("lunar conversion failed; holiday omitted")
			continue
		}
		for off := -lh.Span; off <= lh.Span; off++ {
			out = append(out, domain.Holiday{Date: day.AddDays(off), Name: lh.Name, Lunar: true})
		}
	}

	slices.SortStableFunc(out, func(a, b domain.Holiday) int {
		if c := a.Date.Compare(b.Date); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return out
}

// ConvertLunar converts a Korean lunar date. lunar-go supplies the month
// layout and panics on impossible dates; koreanMonthStart moves the first day
// of the month when the new moon falls after midnight in civil.Zone.
func ConvertLunar(year, month, day int) (d civil.Date, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("convert lunar %04d-%02d-%02d: %v", year, month, day, r)
		}
	}()
	calendar.NewLunarFromYmd(year, month, day)
	first := calendar.NewLunarFromYmd(year, month, 1).GetSolar()
	start := civil.NewDate(first.GetYear(), time.Month(first.GetMonth()), first.GetDay())
	return koreanMonthStart(start).AddDays(day - 1), nil
}

// rickar/cal builds dates in its own location; keep the calendar fields as-is.
func dateOf(t time.Time) civil.Date {
	y, m, d := t.Date()
	return civil.NewDate(y, m, d)
}
