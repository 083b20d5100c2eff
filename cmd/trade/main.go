package main

import (
	"flag"
	"fmt"
	"time"

	"ovdp/calc/internal/bond"
)

func parseDate(name, s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("-%s flag is required", name)
	}
	return time.Parse("2006-01-02", s)
}

func main() {
	isin := flag.String("isin", "", "ISIN of the bond (informational)")
	par := flag.Float64("par", 1000, "Par value of the bond")
	coupon := flag.Float64("coupon", 0.0, "Annual coupon rate (%) of the bond, 0 for discount bonds")
	frequency := flag.Int("frequency", 2, "Coupon payments per year")
	currency := flag.String("currency", "UAH", "Currency of the bond")
	maturityDateStr := flag.String("maturitydate", "", "Maturity date of the bond (YYYY-MM-DD)")
	buyDateStr := flag.String("buydate", "", "Buy date (YYYY-MM-DD)")
	buyYield := flag.Float64("buyyield", 0.0, "Secondary-market yield (%) at the buy date")
	sellDateStr := flag.String("selldate", "", "Sell date (YYYY-MM-DD)")
	sellYield := flag.Float64("sellyield", 0.0, "Secondary-market yield (%) at the sell date")

	flag.Parse()

	maturityDate, err := parseDate("maturitydate", *maturityDateStr)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	buyDate, err := parseDate("buydate", *buyDateStr)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	sellDate, err := parseDate("selldate", *sellDateStr)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	if *coupon < 0.0 || *coupon > 100.0 {
		fmt.Println("Error: coupon rate must be between 0.0 and 100.0")
		return
	}

	if *par <= 0.0 {
		fmt.Println("Error: par value must be greater than 0.0")
		return
	}

	b := &bond.Bond{
		ISIN:           *isin,
		ParValue:       *par,
		CouponRate:     *coupon / 100,
		CouponsPerYear: *frequency,
		MaturityDate:   maturityDate,
		Currency:       *currency,
	}

	if err := b.Normalize(); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	out, err := bond.Trade(b, buyDate, *buyYield, sellDate, *sellYield)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Printf("Trade:\n")
	fmt.Printf("\tBuy:  %s at %.2f%%  dirty %.2f %s\n",
		out.Buy.Date.Format("2006-01-02"), out.Buy.YieldPercent, out.Buy.DirtyPrice, out.Currency)
	fmt.Printf("\tSell: %s at %.2f%%  dirty %.2f %s\n",
		out.Sell.Date.Format("2006-01-02"), out.Sell.YieldPercent, out.Sell.DirtyPrice, out.Currency)
	fmt.Printf("\tDays Held: %d\n", out.DaysHeld)

	if len(out.CouponsReceived) > 0 {
		fmt.Printf("Payments received:\n")
		for _, e := range out.CouponsReceived {
			fmt.Printf("\t%s  %10.2f  %s\n", e.Date.Format("2006-01-02"), e.Amount, e.Kind)
		}
	}

	fmt.Printf("Outcome:\n")
	fmt.Printf("\tPayments Total: %.2f %s\n", out.CouponsTotal, out.Currency)
	fmt.Printf("\tProfit: %.2f %s\n", out.ProfitAbsolute, out.Currency)
	fmt.Printf("\tAnnualized Simple Return: %.2f%%\n", out.ProfitAnnualizedPct)
}
