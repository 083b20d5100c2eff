package bond

import (
	"math"
	"time"
)

// Formula labels reported in pricing and yield results.
const (
	FormulaSecondarySIM  = "SIM (discount/final coupon)"
	FormulaSecondaryYTM  = "YTM (effective rate)"
	FormulaPrimarySIM    = "SIM (discount, primary)"
	FormulaPrimaryMinfin = "Minfin (power exponent)"
)

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// simPrice discounts a single redemption amount with simple interest:
// PV = FV / (1 + y*t), t in ACT/365 years.
func simPrice(redemption float64, days int, y float64) float64 {
	t := math.Max(0, float64(days)/DayCount)
	return redemption / (1 + y*t)
}

// secondaryDirty prices b on the secondary market at the decimal yield
// y. Discount bonds and bonds with a single remaining payment use
// simple interest; otherwise every future coupon and the redemption are
// discounted individually at the effective rate.
func secondaryDirty(b *Bond, ref time.Time, y float64) (float64, string) {
	maturity := normalizeDate(b.MaturityDate)
	dates := couponDates(b.MaturityDate, ref)
	coupon := b.CouponAmount()

	remain := 0
	for _, d := range dates {
		if d.After(ref) {
			remain++
		}
	}

	if coupon == 0 || remain <= 1 {
		return simPrice(b.ParValue+coupon, daysBetween(ref, maturity), y), FormulaSecondarySIM
	}

	pv := 0.0
	for _, e := range futureEvents(dates, ref, coupon, b.ParValue) {
		t := math.Max(0, float64(daysBetween(ref, e.Date))/DayCount)
		pv += e.Amount / math.Pow(1+y, t)
	}
	return pv, FormulaSecondaryYTM
}

// primaryDirty prices b with the primary-market convention at the
// decimal yield y. Discount bonds use simple interest on the par value
// alone. Coupon bonds use the Minfin formula: each cashflow due in DD
// days is discounted by (1 + y/k)^(DD/KDP0), where KDP0 is the length
// in days of the coupon period containing ref. Note the exponent is
// period-relative, not ACT/365; a coupon falling exactly on ref is
// included at full value.
func primaryDirty(b *Bond, ref time.Time, y float64) (float64, string) {
	maturity := normalizeDate(b.MaturityDate)

	if b.ZeroCoupon() {
		return simPrice(b.ParValue, daysBetween(ref, maturity), y), FormulaPrimarySIM
	}

	dates := couponDates(b.MaturityDate, ref)

	var future []time.Time
	for _, d := range dates {
		if !d.Before(ref) {
			future = append(future, d)
		}
	}
	if len(future) == 0 {
		return 0, FormulaPrimaryMinfin
	}

	_, kdp0 := periodAround(dates, future[0], b.CouponsPerYear)

	coupon := b.CouponAmount()
	base := 1 + y/float64(b.CouponsPerYear)

	pv := 0.0
	for _, d := range future {
		df := math.Pow(base, float64(daysBetween(ref, d))/float64(kdp0))
		pv += coupon / df
		if d.Equal(maturity) {
			pv += b.ParValue / df
		}
	}
	return pv, FormulaPrimaryMinfin
}

// PriceFromYield converts an annual yield in percent to a dirty price
// under the given market convention. The instrument must not have
// matured at ref.
func PriceFromYield(b *Bond, ref time.Time, yieldPercent float64, market Market) (*PricingResult, error) {
	ref = normalizeDate(ref)
	if !ref.Before(normalizeDate(b.MaturityDate)) {
		return nil, ErrBondMatured
	}
	if yieldPercent < 0 {
		return nil, ErrInvalidYield
	}

	y := yieldPercent / 100

	var dirty float64
	var formula string
	switch market {
	case Primary:
		dirty, formula = primaryDirty(b, ref, y)
	default:
		dirty, formula = secondaryDirty(b, ref, y)
	}

	ai := AccruedInterest(b, ref)
	clean := dirty - ai

	return &PricingResult{
		DirtyPrice:      round2(dirty),
		AccruedInterest: round2(ai),
		CleanPrice:      round2(clean),
		Currency:        b.Currency,
		Formula:         formula,
	}, nil
}
