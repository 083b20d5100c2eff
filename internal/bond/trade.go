package bond

import "time"

// Trade evaluates a buy→sell round trip on the secondary market. Both
// legs are priced independently, so each may land in a different
// regime (SIM near maturity, YTM otherwise). Coupons with
// buyDate < date <= sellDate count as received; if the trade spans
// maturity the redemption falls inside that window and the sell dirty
// price is zero, so the par repayment is realized through the coupon
// leg of the P&L.
func Trade(b *Bond, buyDate time.Time, buyYieldPercent float64, sellDate time.Time, sellYieldPercent float64) (*TradeOutcome, error) {
	buyDate = normalizeDate(buyDate)
	sellDate = normalizeDate(sellDate)
	maturity := normalizeDate(b.MaturityDate)

	if !sellDate.After(buyDate) {
		return nil, ErrInvalidTradeDates
	}

	buyRes, err := PriceFromYield(b, buyDate, buyYieldPercent, Secondary)
	if err != nil {
		return nil, err
	}

	sellDirty := 0.0
	if sellDate.Before(maturity) {
		sellRes, err := PriceFromYield(b, sellDate, sellYieldPercent, Secondary)
		if err != nil {
			return nil, err
		}
		sellDirty = sellRes.DirtyPrice
	}

	events := futureEvents(couponDates(b.MaturityDate, buyDate), buyDate, b.CouponAmount(), b.ParValue)

	received := []CashflowEvent{}
	total := 0.0
	for _, e := range events {
		if e.Date.After(sellDate) {
			continue
		}
		received = append(received, e)
		total += e.Amount
	}

	daysHeld := daysBetween(buyDate, sellDate)
	profit := sellDirty - buyRes.DirtyPrice + total

	return &TradeOutcome{
		Buy:                 TradeLeg{Date: buyDate, YieldPercent: buyYieldPercent, DirtyPrice: buyRes.DirtyPrice},
		Sell:                TradeLeg{Date: sellDate, YieldPercent: sellYieldPercent, DirtyPrice: sellDirty},
		CouponsReceived:     received,
		CouponsTotal:        round2(total),
		ProfitAbsolute:      round2(profit),
		ProfitAnnualizedPct: round2(profit / buyRes.DirtyPrice * (DayCount / float64(daysHeld)) * 100),
		DaysHeld:            daysHeld,
		Currency:            b.Currency,
	}, nil
}
