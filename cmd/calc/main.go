package main

import (
	"flag"
	"fmt"
	"time"

	"ovdp/calc/internal/bond"
)

func parseDate(s *string) (time.Time, error) {
	if s == nil || *s == "" {
		return time.Now(), nil
	}
	ts, err := time.Parse("2006-01-02", *s)
	if err == nil {
		return ts, nil
	}
	return time.Time{}, err
}

func parseMarket(s string) (bond.Market, error) {
	switch s {
	case "secondary":
		return bond.Secondary, nil
	case "primary":
		return bond.Primary, nil
	}
	return bond.Secondary, fmt.Errorf("unknown market %q", s)
}

func main() {
	isin := flag.String("isin", "", "ISIN of the bond (informational)")
	par := flag.Float64("par", 1000, "Par value of the bond")
	coupon := flag.Float64("coupon", 0.0, "Annual coupon rate (%) of the bond, 0 for discount bonds")
	frequency := flag.Int("frequency", 2, "Coupon payments per year")
	currency := flag.String("currency", "UAH", "Currency of the bond")
	maturityDateStr := flag.String("maturitydate", "", "Maturity date of the bond (YYYY-MM-DD)")
	issueDateStr := flag.String("issuedate", "", "Issue date of the bond (YYYY-MM-DD)")
	calcDateStr := flag.String("date", "", "Calculation date (YYYY-MM-DD), defaults to today")
	marketStr := flag.String("market", "secondary", "Market convention: secondary or primary")
	yield := flag.Float64("yield", 0.0, "Annual yield (%) to convert to a price")
	price := flag.Float64("price", 0.0, "Dirty price to convert to a yield")

	flag.Parse()

	flagsSet := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) {
		flagsSet[f.Name] = true
	})

	if !flagsSet["maturitydate"] || maturityDateStr == nil || *maturityDateStr == "" {
		fmt.Println("Error: -maturitydate flag is required")
		return
	}

	if flagsSet["yield"] == flagsSet["price"] {
		fmt.Println("Error: exactly one of -yield or -price is required")
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

	if *frequency < 1 {
		fmt.Println("Error: frequency must be at least 1")
		return
	}

	market, err := parseMarket(*marketStr)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	maturityDate, err := parseDate(maturityDateStr)
	if err != nil {
		fmt.Printf("Error: invalid maturity date: %v\n", err)
		return
	}

	issueDate, err := parseDate(issueDateStr)
	if err != nil {
		fmt.Printf("Error: invalid issue date: %v\n", err)
		return
	}
	if *issueDateStr == "" {
		issueDate = time.Time{}
	}

	calcDate, err := parseDate(calcDateStr)
	if err != nil {
		fmt.Printf("Error: invalid calculation date: %v\n", err)
		return
	}

	b := &bond.Bond{
		ISIN:           *isin,
		ParValue:       *par,
		CouponRate:     *coupon / 100,
		CouponsPerYear: *frequency,
		IssueDate:      issueDate,
		MaturityDate:   maturityDate,
		Currency:       *currency,
	}

	if err := b.Normalize(); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Printf("Bond:\n")
	if b.ISIN != "" {
		fmt.Printf("\tISIN: %s\n", b.ISIN)
	}
	fmt.Printf("\tPar Value: %.2f %s\n", b.ParValue, b.Currency)
	fmt.Printf("\tCoupon Rate: %.2f%%\n", b.CouponRate*100)
	fmt.Printf("\tCoupons Per Year: %d\n", b.CouponsPerYear)
	fmt.Printf("\tMaturity Date: %s\n", b.MaturityDate.Format("2006-01-02"))
	fmt.Printf("\tCalculation Date: %s\n", calcDate.Format("2006-01-02"))
	fmt.Printf("\tMarket: %s\n", market)

	if flagsSet["yield"] {
		res, err := bond.PriceFromYield(b, calcDate, *yield, market)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		fmt.Printf("Result:\n")
		fmt.Printf("\tDirty Price: %.2f %s\n", res.DirtyPrice, res.Currency)
		fmt.Printf("\tAccrued Interest: %.2f\n", res.AccruedInterest)
		fmt.Printf("\tClean Price: %.2f\n", res.CleanPrice)
		fmt.Printf("\tFormula: %s\n", res.Formula)
	} else {
		res, err := bond.YieldFromPrice(b, calcDate, *price, market)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		fmt.Printf("Result:\n")
		fmt.Printf("\tYield: %.2f%%\n", res.YieldPercent)
		fmt.Printf("\tFormula: %s\n", res.Formula)
		if res.Approximate {
			fmt.Printf("\tWarning: no exact root found, yield is a best-effort approximation\n")
		}
	}

	events, err := bond.BuildSchedule(b, calcDate)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Printf("Schedule:\n")
	for _, e := range events {
		fmt.Printf("\t%s  %10.2f  %s\n", e.Date.Format("2006-01-02"), e.Amount, e.Kind)
	}
}
