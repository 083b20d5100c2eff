package bond_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"ovdp/calc/internal/bond"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func couponBond(maturity time.Time) *bond.Bond {
	return &bond.Bond{
		ISIN:           "UA4000000001",
		ParValue:       1000,
		CouponRate:     0.16,
		CouponsPerYear: 2,
		IssueDate:      maturity.AddDate(-2, 0, 0),
		MaturityDate:   maturity,
		Currency:       "UAH",
	}
}

func discountBond(maturity time.Time) *bond.Bond {
	return &bond.Bond{
		ISIN:         "UA4000000002",
		ParValue:     1000,
		MaturityDate: maturity,
		Currency:     "UAH",
	}
}

func TestBuildSchedule_GridAnchoredToMaturity(t *testing.T) {
	t.Parallel()

	maturity := date(2027, time.May, 30)
	ref := date(2025, time.June, 1)

	events, err := bond.BuildSchedule(couponBond(maturity), ref)
	require.NoError(t, err)

	for _, e := range events {
		days := int(maturity.Sub(e.Date).Hours() / 24)
		require.Zerof(t, days%bond.StepDays, "date %s off the 182-day grid", e.Date.Format("2006-01-02"))
		require.True(t, e.Date.After(ref))
	}
}

func TestBuildSchedule_FourPeriodsRemaining(t *testing.T) {
	t.Parallel()

	// maturity = ref + 4*182d, so exactly four coupon dates remain
	maturity := date(2027, time.May, 30)
	ref := date(2025, time.June, 1)

	events, err := bond.BuildSchedule(couponBond(maturity), ref)
	require.NoError(t, err)

	var coupons []bond.CashflowEvent
	for _, e := range events {
		if e.Kind == bond.EventCoupon {
			coupons = append(coupons, e)
		}
	}

	require.Len(t, coupons, 4)
	require.True(t, coupons[len(coupons)-1].Date.Equal(maturity))
	for i := 1; i < len(coupons); i++ {
		require.Equal(t, bond.StepDays, int(coupons[i].Date.Sub(coupons[i-1].Date).Hours()/24))
	}
}

func TestBuildSchedule_CouponBeforeRedemptionAtMaturity(t *testing.T) {
	t.Parallel()

	maturity := date(2026, time.January, 10)
	events, err := bond.BuildSchedule(couponBond(maturity), date(2025, time.July, 1))
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(events), 2)

	last := events[len(events)-1]
	prev := events[len(events)-2]
	require.True(t, last.Date.Equal(maturity))
	require.True(t, prev.Date.Equal(maturity))
	require.Equal(t, bond.EventCoupon, prev.Kind)
	require.Equal(t, bond.EventRedemption, last.Kind)
	require.InDelta(t, 80.0, prev.Amount, 1e-9)
	require.InDelta(t, 1000.0, last.Amount, 1e-9)
}

func TestBuildSchedule_ZeroCouponDegeneratesToRedemption(t *testing.T) {
	t.Parallel()

	maturity := date(2026, time.January, 1)
	events, err := bond.BuildSchedule(discountBond(maturity), date(2025, time.July, 1))
	require.NoError(t, err)

	require.Len(t, events, 1)
	require.Equal(t, bond.EventRedemption, events[0].Kind)
	require.True(t, events[0].Date.Equal(maturity))
	require.InDelta(t, 1000.0, events[0].Amount, 1e-9)
}

func TestBuildSchedule_RejectsMaturedBond(t *testing.T) {
	t.Parallel()

	maturity := date(2025, time.January, 1)

	_, err := bond.BuildSchedule(couponBond(maturity), maturity)
	require.ErrorIs(t, err, bond.ErrBondMatured)

	_, err = bond.BuildSchedule(couponBond(maturity), maturity.AddDate(0, 1, 0))
	require.ErrorIs(t, err, bond.ErrBondMatured)
}

func TestNormalize_Defaults(t *testing.T) {
	t.Parallel()

	b := &bond.Bond{ISIN: "UA4000000003", MaturityDate: date(2026, time.March, 1)}
	require.NoError(t, b.Normalize())

	require.Equal(t, 1000.0, b.ParValue)
	require.Equal(t, 2, b.CouponsPerYear)
	require.Equal(t, "UAH", b.Currency)
	require.True(t, b.IssueDate.Equal(date(2025, time.March, 1)))
}

func TestNormalize_Invalid(t *testing.T) {
	t.Parallel()

	require.ErrorIs(t, (&bond.Bond{}).Normalize(), bond.ErrInvalidMaturityDate)

	b := &bond.Bond{
		MaturityDate: date(2025, time.January, 1),
		IssueDate:    date(2026, time.January, 1),
	}
	require.ErrorIs(t, b.Normalize(), bond.ErrInvalidIssueDate)
}
