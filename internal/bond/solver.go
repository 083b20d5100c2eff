package bond

import (
	"math"
	"time"
)

const (
	solveTolerance  = 1e-10
	solveMaxIter    = 200
	bracketGrowth   = 1.5
	bracketMaxTries = 60

	// Search domain for the decimal yield. The secondary ceiling is
	// tighter because the effective-rate formula blows up slower; the
	// bracket expansion widens either one when needed.
	yieldLo          = 1e-10
	secondaryYieldHi = 2.0
	primaryYieldHi   = 5.0
)

// bisect finds a root of f in [lo, hi] by bisection. If f(lo) and f(hi)
// have the same sign, hi is repeatedly grown by bracketGrowth until a
// sign change appears or the retry budget runs out. The boolean reports
// whether a sign change was ever found; when false the returned value
// is the midpoint of the final interval, a best-effort approximation.
func bisect(f func(float64) float64, lo, hi float64) (float64, bool) {
	fLo, fHi := f(lo), f(hi)
	if fLo == 0 {
		return lo, true
	}
	if fHi == 0 {
		return hi, true
	}

	bracketed := fLo*fHi <= 0
	if !bracketed {
		for i := 0; i < bracketMaxTries; i++ {
			hi *= bracketGrowth
			fHi = f(hi)
			if fLo*fHi <= 0 {
				bracketed = true
				break
			}
		}
	}

	for i := 0; i < solveMaxIter; i++ {
		mid := 0.5 * (lo + hi)
		fMid := f(mid)
		if math.Abs(fMid) < solveTolerance {
			return mid, bracketed
		}
		if fLo*fMid <= 0 {
			hi = mid
		} else {
			lo, fLo = mid, fMid
		}
	}

	return 0.5 * (lo + hi), bracketed
}

// YieldFromPrice inverts the pricing formula of the given market
// convention: it finds the annual yield in percent at which the dirty
// price equals dirtyPrice. Single-payment cases invert the simple-
// interest formula in closed form; the rest go through the bisection
// solver against the matching forward formula.
func YieldFromPrice(b *Bond, ref time.Time, dirtyPrice float64, market Market) (*YieldResult, error) {
	ref = normalizeDate(ref)
	maturity := normalizeDate(b.MaturityDate)

	if dirtyPrice <= 0 {
		return nil, ErrInvalidPrice
	}
	if !ref.Before(maturity) {
		return nil, ErrBondMatured
	}

	res := &YieldResult{Currency: b.Currency}

	if market == Primary {
		if b.ZeroCoupon() {
			res.YieldPercent = round2(simYield(b.ParValue, daysBetween(ref, maturity), dirtyPrice) * 100)
			res.Formula = FormulaPrimarySIM
			return res, nil
		}

		f := func(y float64) float64 {
			pv, _ := primaryDirty(b, ref, y)
			return pv - dirtyPrice
		}
		y, ok := bisect(f, yieldLo, primaryYieldHi)
		res.YieldPercent = round2(y * 100)
		res.Formula = FormulaPrimaryMinfin
		res.Approximate = !ok
		return res, nil
	}

	dates := couponDates(b.MaturityDate, ref)
	coupon := b.CouponAmount()
	remain := 0
	for _, d := range dates {
		if d.After(ref) {
			remain++
		}
	}

	if coupon == 0 || remain <= 1 {
		res.YieldPercent = round2(simYield(b.ParValue+coupon, daysBetween(ref, maturity), dirtyPrice) * 100)
		res.Formula = FormulaSecondarySIM
		return res, nil
	}

	f := func(y float64) float64 {
		pv, _ := secondaryDirty(b, ref, y)
		return pv - dirtyPrice
	}
	y, ok := bisect(f, yieldLo, secondaryYieldHi)
	res.YieldPercent = round2(y * 100)
	res.Formula = FormulaSecondaryYTM
	res.Approximate = !ok
	return res, nil
}

// simYield inverts PV = FV / (1 + y*t) for y.
func simYield(redemption float64, days int, price float64) float64 {
	t := math.Max(0, float64(days)/DayCount)
	if t == 0 {
		return 0
	}
	return (redemption/price - 1) / t
}
