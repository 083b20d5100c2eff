package bond_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"ovdp/calc/internal/bond"
)

func TestYieldFromPrice_RoundTripAllFormulas(t *testing.T) {
	t.Parallel()

	maturity := date(2027, time.May, 30)
	ref := date(2025, time.September, 1)

	cases := []struct {
		name    string
		bond    *bond.Bond
		market  bond.Market
		formula string
	}{
		{"secondary YTM", couponBond(maturity), bond.Secondary, bond.FormulaSecondaryYTM},
		{"secondary SIM", discountBond(maturity), bond.Secondary, bond.FormulaSecondarySIM},
		{"primary Minfin", couponBond(maturity), bond.Primary, bond.FormulaPrimaryMinfin},
		{"primary SIM", discountBond(maturity), bond.Primary, bond.FormulaPrimarySIM},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			for _, y := range []float64{1, 2, 5, 10, 16, 25, 40, 75} {
				priced, err := bond.PriceFromYield(tc.bond, ref, y, tc.market)
				require.NoError(t, err)

				res, err := bond.YieldFromPrice(tc.bond, ref, priced.DirtyPrice, tc.market)
				require.NoError(t, err)

				require.Equal(t, tc.formula, res.Formula)
				require.False(t, res.Approximate)
				require.InDeltaf(t, y, res.YieldPercent, 0.05, "round trip at y=%.0f%%", y)
			}
		})
	}
}

func TestYieldFromPrice_SIMClosedFormInversion(t *testing.T) {
	t.Parallel()

	b := discountBond(date(2026, time.January, 1))
	ref := date(2025, time.July, 1)

	res, err := bond.YieldFromPrice(b, ref, 929.70, bond.Secondary)
	require.NoError(t, err)

	require.Equal(t, bond.FormulaSecondarySIM, res.Formula)
	require.InDelta(t, 15.0, res.YieldPercent, 0.01)
}

func TestYieldFromPrice_BracketExpansionFindsExtremeYield(t *testing.T) {
	t.Parallel()

	// a deep-discount target forces the solver well past the initial
	// search ceiling
	b := couponBond(date(2027, time.May, 30))
	ref := date(2025, time.September, 1)

	res, err := bond.YieldFromPrice(b, ref, 150.0, bond.Secondary)
	require.NoError(t, err)

	require.False(t, res.Approximate)
	require.Greater(t, res.YieldPercent, 200.0)

	priced, err := bond.PriceFromYield(b, ref, res.YieldPercent, bond.Secondary)
	require.NoError(t, err)
	require.InDelta(t, 150.0, priced.DirtyPrice, 1.0)
}

func TestYieldFromPrice_UnreachablePriceFlaggedApproximate(t *testing.T) {
	t.Parallel()

	// the price exceeds the undiscounted cashflow total, so no yield in
	// (0, inf) can reach it and the bracket never closes
	b := couponBond(date(2027, time.May, 30))
	ref := date(2025, time.September, 1)

	res, err := bond.YieldFromPrice(b, ref, 5000.0, bond.Secondary)
	require.NoError(t, err)
	require.True(t, res.Approximate)
}

func TestYieldFromPrice_InvalidInputs(t *testing.T) {
	t.Parallel()

	b := couponBond(date(2027, time.May, 30))

	_, err := bond.YieldFromPrice(b, date(2025, time.September, 1), 0, bond.Secondary)
	require.ErrorIs(t, err, bond.ErrInvalidPrice)

	_, err = bond.YieldFromPrice(b, date(2027, time.May, 30), 1000, bond.Secondary)
	require.ErrorIs(t, err, bond.ErrBondMatured)
}
