package collect

import (
	"context"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"
	"github.com/rs/zerolog"

	"ovdp/calc/internal/bond"
)

var SourceMinfinUA = "MinfinUA"

// MinfinBondsURL lists outstanding domestic government bonds with
// their coupon terms in an HTML table.
var MinfinBondsURL = "https://index.minfin.com.ua/ua/finance/bonds/"

type MinfinUACollector struct {
	log zerolog.Logger
}

func NewMinfinUACollector(log zerolog.Logger) *MinfinUACollector {
	return &MinfinUACollector{log: log}
}

func (c *MinfinUACollector) Source() string {
	return SourceMinfinUA
}

var (
	MF_COL_ISIN          = 0
	MF_COL_CURRENCY      = 1
	MF_COL_ISSUE_DATE    = 2
	MF_COL_MATURITY_DATE = 3
	MF_COL_COUPON_RATE   = 4
	MF_COL_PAR_VALUE     = 5
)

func (c *MinfinUACollector) Collect(ctx context.Context, asOf time.Time) (*CollectedRecords, error) {
	x := colly.NewCollector()

	collected := NewCollectedRecords(SourceMinfinUA, asOf)
	seen := map[string]bool{}

	x.OnHTML("table tr", func(e *colly.HTMLElement) {
		cr := c.readRecord(e)
		if cr == nil || seen[cr.Bond.ISIN] {
			return
		}
		seen[cr.Bond.ISIN] = true
		collected.AddRecord(cr)
	})

	c.log.Info().Str("url", MinfinBondsURL).Msg("scraping bond list")

	if err := x.Visit(MinfinBondsURL); err != nil {
		return nil, err
	}

	if len(collected.Records) == 0 {
		return nil, ErrDataUnavailable
	}

	return collected, nil
}

func (c *MinfinUACollector) readRecord(e *colly.HTMLElement) *CollectedRecord {
	b := &bond.Bond{}
	cr := &CollectedRecord{Bond: b}

	e.ForEach("td", func(col int, el *colly.HTMLElement) {
		text := strings.TrimSpace(el.Text)
		switch col {
		case MF_COL_ISIN:
			b.ISIN = text
		case MF_COL_CURRENCY:
			b.Currency = text
		case MF_COL_ISSUE_DATE:
			if ts, err := parseHandbookDate(text); err == nil {
				b.IssueDate = ts
			}
		case MF_COL_MATURITY_DATE:
			if ts, err := parseHandbookDate(text); err == nil {
				b.MaturityDate = ts
			} else {
				cr.SetError(bond.ErrInvalidMaturityDate)
			}
		case MF_COL_COUPON_RATE:
			if rate, err := parsePercent(text); err == nil {
				b.CouponRate = rate
			}
		case MF_COL_PAR_VALUE:
			if par, err := parseDecimal(text); err == nil && par > 0 {
				b.ParValue = par
			}
		}
	})

	if !strings.HasPrefix(b.ISIN, "UA") {
		return nil
	}

	if cr.Err == nil {
		cr.Err = b.Normalize()
	}

	return cr
}
