package bond_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"ovdp/calc/internal/bond"
)

func TestAccruedInterest_MidPeriod(t *testing.T) {
	t.Parallel()

	// grid: ... 2025-06-01, 2025-11-30, ... 2027-05-30
	b := couponBond(date(2027, time.May, 30))

	// 92 days into a 182-day period, coupon 80 per period
	got := bond.AccruedInterest(b, date(2025, time.September, 1))
	require.InDelta(t, 80.0*92.0/182.0, got, 1e-9)
}

func TestAccruedInterest_ZeroOnCouponDate(t *testing.T) {
	t.Parallel()

	b := couponBond(date(2027, time.May, 30))
	require.Zero(t, bond.AccruedInterest(b, date(2025, time.June, 1)))
}

func TestAccruedInterest_ZeroCouponBond(t *testing.T) {
	t.Parallel()

	b := discountBond(date(2026, time.January, 1))
	require.Zero(t, bond.AccruedInterest(b, date(2025, time.July, 1)))
}

func TestAccruedInterest_BoundedByCouponAmount(t *testing.T) {
	t.Parallel()

	b := couponBond(date(2027, time.May, 30))
	coupon := b.CouponAmount()

	for d := date(2025, time.January, 1); d.Before(b.MaturityDate); d = d.AddDate(0, 0, 7) {
		ai := bond.AccruedInterest(b, d)
		require.GreaterOrEqual(t, ai, 0.0)
		require.LessOrEqual(t, ai, coupon)
	}
}
