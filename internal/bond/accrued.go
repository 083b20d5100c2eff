package bond

import "time"

// periodAround returns the previous coupon boundary and the length in
// days of the period ending at next, where next is a member of dates.
// When next is the oldest generated boundary the previous one is
// extrapolated a step back; a non-positive length falls back to the
// nominal 365/k period.
func periodAround(dates []time.Time, next time.Time, couponsPerYear int) (time.Time, int) {
	nominal := 365 / couponsPerYear
	if nominal < 1 {
		nominal = 1
	}

	idx := 0
	for i, d := range dates {
		if d.Equal(next) {
			idx = i
			break
		}
	}

	var prev time.Time
	if idx == 0 {
		step := nominal
		if len(dates) >= 2 {
			step = daysBetween(dates[0], dates[1])
		}
		prev = next.AddDate(0, 0, -step)
	} else {
		prev = dates[idx-1]
	}

	length := daysBetween(prev, next)
	if length <= 0 {
		length = nominal
	}
	return prev, length
}

// AccruedInterest returns the coupon interest (НКД) accrued from the
// last coupon boundary to ref. Zero-coupon instruments accrue nothing.
// Pure: usable on any date, including after maturity.
func AccruedInterest(b *Bond, ref time.Time) float64 {
	if b.ZeroCoupon() {
		return 0
	}

	ref = normalizeDate(ref)
	dates := couponDates(b.MaturityDate, ref)

	next := dates[len(dates)-1]
	for _, d := range dates {
		if d.After(ref) {
			next = d
			break
		}
	}

	prev, length := periodAround(dates, next, b.CouponsPerYear)

	since := daysBetween(prev, ref)
	if since <= 0 {
		return 0
	}
	if since > length {
		// ref past the last boundary; a full period is the most that
		// can have accrued
		since = length
	}
	return b.CouponAmount() * float64(since) / float64(length)
}
