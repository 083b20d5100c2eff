package bond

import (
	"sort"
	"time"
)

const (
	// DayCount is the ACT/365 denominator used by every formula.
	DayCount = 365.0
	// StepDays is the strict semiannual step of the coupon grid.
	StepDays = 182
	// maxGridSteps bounds grid generation against malformed maturities.
	maxGridSteps = 120
)

// normalizeDate drops the time-of-day component. Dates are pinned to
// UTC so day arithmetic never crosses a DST boundary.
func normalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// daysBetween returns the number of calendar days from start to end.
func daysBetween(start, end time.Time) int {
	return int(end.Sub(start).Hours() / 24)
}

// couponDates builds the coupon grid by counting back from maturity in
// StepDays steps until a date at or before until is reached. The grid is
// anchored to maturity, not to the issue date: the final period always
// ends exactly at redemption even if the oldest boundary misaligns with
// the true issuance calendar. Returned ascending.
func couponDates(maturity, until time.Time) []time.Time {
	d := normalizeDate(maturity)
	until = normalizeDate(until)

	dates := []time.Time{d}
	for i := 0; i < maxGridSteps; i++ {
		d = d.AddDate(0, 0, -StepDays)
		dates = append(dates, d)
		if !d.After(until) {
			break
		}
	}

	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	out := dates[:0]
	for _, d := range dates {
		if len(out) == 0 || !d.Equal(out[len(out)-1]) {
			out = append(out, d)
		}
	}
	return out
}

// futureEvents turns the grid into dated payments strictly after ref.
// On the maturity date the coupon is emitted before the redemption.
func futureEvents(dates []time.Time, ref time.Time, coupon, par float64) []CashflowEvent {
	if len(dates) == 0 {
		return nil
	}

	maturity := dates[len(dates)-1]
	events := []CashflowEvent{}
	for _, d := range dates {
		if !d.After(ref) {
			continue
		}
		if coupon > 0 {
			events = append(events, CashflowEvent{Date: d, Amount: coupon, Kind: EventCoupon})
		}
		if d.Equal(maturity) {
			events = append(events, CashflowEvent{Date: d, Amount: par, Kind: EventRedemption})
		}
	}
	return events
}

// BuildSchedule returns the future coupon and redemption payments of b
// as seen from ref. The instrument must not have matured.
func BuildSchedule(b *Bond, ref time.Time) ([]CashflowEvent, error) {
	ref = normalizeDate(ref)
	if !ref.Before(normalizeDate(b.MaturityDate)) {
		return nil, ErrBondMatured
	}

	dates := couponDates(b.MaturityDate, ref)
	return futureEvents(dates, ref, b.CouponAmount(), b.ParValue), nil
}
