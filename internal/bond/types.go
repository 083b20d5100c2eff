package bond

import "time"

// Market selects the pricing convention.
type Market int

const (
	// Secondary prices with simple interest when at most one payment
	// remains and with the effective YTM rate otherwise.
	Secondary Market = iota
	// Primary prices with the Ministry of Finance auction formula.
	Primary
)

func (m Market) String() string {
	switch m {
	case Secondary:
		return "Secondary"
	case Primary:
		return "Primary"
	default:
		return "Unknown"
	}
}

// EventKind is the type of a scheduled cash payment.
type EventKind int

const (
	EventCoupon EventKind = iota
	EventRedemption
)

func (k EventKind) String() string {
	switch k {
	case EventCoupon:
		return "Coupon"
	case EventRedemption:
		return "Redemption"
	default:
		return "Unknown"
	}
}

const (
	DefaultParValue       = 1000.0
	DefaultCouponsPerYear = 2
	DefaultCurrency       = "UAH"
)

// Bond is one row of the normalized reference directory: a single
// government bond instrument.
type Bond struct {
	ISIN           string
	ParValue       float64
	CouponRate     float64 // decimal fraction, 0.16 = 16%
	CouponsPerYear int
	IssueDate      time.Time
	MaturityDate   time.Time
	Currency       string
}

// Normalize fills missing reference fields with the directory defaults
// and validates the date invariant.
func (b *Bond) Normalize() error {
	if b.MaturityDate.IsZero() {
		return ErrInvalidMaturityDate
	}
	if b.ParValue <= 0 {
		b.ParValue = DefaultParValue
	}
	if b.CouponsPerYear < 1 {
		b.CouponsPerYear = DefaultCouponsPerYear
	}
	if b.CouponRate < 0 {
		b.CouponRate = 0
	}
	if b.Currency == "" {
		b.Currency = DefaultCurrency
	}
	if b.IssueDate.IsZero() {
		b.IssueDate = b.MaturityDate.AddDate(0, 0, -365)
	}
	if !b.MaturityDate.After(b.IssueDate) {
		return ErrInvalidIssueDate
	}
	return nil
}

// ZeroCoupon reports whether the instrument pays no coupons (a discount
// bond).
func (b *Bond) ZeroCoupon() bool {
	return b.CouponRate <= 0 || b.CouponsPerYear <= 0
}

// CouponAmount returns the coupon paid per period for one bond.
func (b *Bond) CouponAmount() float64 {
	if b.ZeroCoupon() {
		return 0
	}
	return b.ParValue * b.CouponRate / float64(b.CouponsPerYear)
}

// CashflowEvent is a single dated payment on the coupon grid. At
// maturity the final coupon and the redemption are two separate events,
// coupon first.
type CashflowEvent struct {
	Date   time.Time
	Amount float64
	Kind   EventKind
}

// PricingResult is the output of PriceFromYield. Prices are rounded to
// 2 decimals at this boundary only.
type PricingResult struct {
	DirtyPrice      float64
	AccruedInterest float64
	CleanPrice      float64
	Currency        string
	Formula         string
}

// YieldResult is the output of YieldFromPrice.
//
// Approximate is set when the solver exhausted its bracket-expansion
// budget without finding a sign change; the yield is then the midpoint
// of the final search interval rather than a converged root.
type YieldResult struct {
	YieldPercent float64
	Currency     string
	Formula      string
	Approximate  bool
}

// TradeLeg is one side of a buy→sell round trip.
type TradeLeg struct {
	Date         time.Time
	YieldPercent float64
	DirtyPrice   float64
}

// TradeOutcome is the realized result of buying and later selling one
// bond on the secondary market.
type TradeOutcome struct {
	Buy             TradeLeg
	Sell            TradeLeg
	CouponsReceived []CashflowEvent
	CouponsTotal    float64
	ProfitAbsolute  float64
	// ProfitAnnualizedPct is the simple annualized return in percent:
	// (profit / buy dirty) * (365 / days held) * 100.
	ProfitAnnualizedPct float64
	DaysHeld            int
	Currency            string
}
