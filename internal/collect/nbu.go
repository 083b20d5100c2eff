package collect

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pbnjay/grate"
	"github.com/rs/zerolog"

	"ovdp/calc/internal/bond"
)

var SourceNBU = "NBU"

// SecHdbkURL is the NBU fair-value securities handbook, an xls workbook
// with one row per scheduled payment.
var SecHdbkURL = "https://bank.gov.ua/files/Fair_value/sec_hdbk.xls"

// FallbackPaths are tried in order when the NBU endpoint is unreachable
// or its format cannot be parsed.
var FallbackPaths = []string{
	"data/sec_hdbk.xls",
	"data/sec_hdbk_sample.xlsx",
	"data/sec_hdbk_sample.csv",
}

// Handbook column layout. The sheet has a few preamble rows before the
// header; data rows are recognized by the UA ISIN prefix.
var (
	NBU_COL_ISIN            = 0
	NBU_COL_TYPE            = 1
	NBU_COL_CURRENCY        = 2
	NBU_COL_ISSUE_DATE      = 3
	NBU_COL_PAR_VALUE       = 4
	NBU_COL_COUPONS_PER_YR  = 5
	NBU_COL_MATURITY_DATE   = 6
	NBU_COL_PAYMENT_DATE    = 7
	NBU_COL_NOMINAL_YIELD   = 8
	nbuMinColumns           = 9
)

type NBUCollector struct {
	log zerolog.Logger
}

func NewNBUCollector(log zerolog.Logger) *NBUCollector {
	return &NBUCollector{log: log}
}

func (c *NBUCollector) Source() string {
	return SourceNBU
}

// Collect downloads the handbook and normalizes it to one record per
// ISIN. When the endpoint fails it falls back to the local files in
// FallbackPaths.
func (c *NBUCollector) Collect(ctx context.Context, asOf time.Time) (*CollectedRecords, error) {
	collected, err := c.collectWeb(ctx, asOf)
	if err == nil {
		return collected, nil
	}

	c.log.Warn().Err(err).Msg("NBU endpoint unavailable, trying local fallbacks")

	for _, path := range FallbackPaths {
		if _, statErr := os.Stat(path); statErr != nil {
			continue
		}
		collected, ferr := c.parseWorkbook(path, asOf)
		if ferr != nil {
			c.log.Warn().Err(ferr).Str("path", path).Msg("failed to read fallback file")
			continue
		}
		c.log.Info().Str("path", path).Int("records", len(collected.Records)).Msg("loaded fallback file")
		return collected, nil
	}

	return nil, err
}

func (c *NBUCollector) collectWeb(ctx context.Context, asOf time.Time) (*CollectedRecords, error) {
	c.log.Info().Str("url", SecHdbkURL).Msg("fetching NBU securities handbook")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, SecHdbkURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to get data: http %d", resp.StatusCode)
	}

	tmp, err := os.CreateTemp("", "sec_hdbk-*.xls")
	if err != nil {
		return nil, err
	}
	defer os.Remove(tmp.Name())

	size, err := io.Copy(tmp, resp.Body)
	tmp.Close()
	if err != nil {
		return nil, err
	}

	c.log.Debug().Int64("bytes", size).Str("path", tmp.Name()).Msg("downloaded handbook")

	return c.parseWorkbook(tmp.Name(), asOf)
}

func (c *NBUCollector) parseWorkbook(path string, asOf time.Time) (*CollectedRecords, error) {
	wb, err := grate.Open(path)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	collected := NewCollectedRecords(SourceNBU, asOf)
	seen := map[string]bool{}

	sheets, err := wb.List()
	if err != nil {
		return nil, err
	}
	for _, sheetName := range sheets {
		sheet, err := wb.Get(sheetName)
		if err != nil {
			return nil, err
		}

		for sheet.Next() {
			row := sheet.Strings()
			cr, err := c.parseRow(row)
			if err != nil {
				continue
			}
			// the handbook repeats the instrument on every payment
			// row; keep the first occurrence
			if seen[cr.Bond.ISIN] {
				continue
			}
			seen[cr.Bond.ISIN] = true
			collected.AddRecord(cr)
		}
	}

	if len(collected.Records) == 0 {
		return nil, ErrDataUnavailable
	}

	return collected, nil
}

func (c *NBUCollector) parseRow(row []string) (*CollectedRecord, error) {
	if len(row) < nbuMinColumns {
		return nil, ErrInvalidRow
	}

	isin := strings.TrimSpace(row[NBU_COL_ISIN])
	if !strings.HasPrefix(isin, "UA") {
		return nil, ErrInvalidRow
	}

	b := &bond.Bond{ISIN: isin}
	cr := &CollectedRecord{Bond: b}

	b.Currency = strings.TrimSpace(row[NBU_COL_CURRENCY])

	if ts, err := parseHandbookDate(row[NBU_COL_MATURITY_DATE]); err == nil {
		b.MaturityDate = ts
	} else {
		cr.SetError(bond.ErrInvalidMaturityDate)
	}

	if ts, err := parseHandbookDate(row[NBU_COL_ISSUE_DATE]); err == nil {
		b.IssueDate = ts
	}

	if par, err := parseDecimal(row[NBU_COL_PAR_VALUE]); err == nil && par > 0 {
		b.ParValue = par
	}

	if k, err := strconv.Atoi(strings.TrimSpace(row[NBU_COL_COUPONS_PER_YR])); err == nil && k >= 1 {
		b.CouponsPerYear = k
	}

	// the handbook quotes the nominal coupon level as a percent; zero
	// or missing marks a discount instrument
	if rate, err := parsePercent(row[NBU_COL_NOMINAL_YIELD]); err == nil {
		b.CouponRate = rate
	}

	if cr.Err == nil {
		cr.Err = b.Normalize()
	}

	return cr, nil
}

// parseDecimal reads a number that may use a comma decimal separator
// and a percent sign.
func parseDecimal(s string) (float64, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	s = strings.TrimSuffix(s, "%")
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidRow
	}
	return strconv.ParseFloat(s, 64)
}

// parsePercent reads a rate quoted either as a percent (16, "16%") or
// as a decimal fraction (0.16), returning a decimal fraction.
func parsePercent(s string) (float64, error) {
	v, err := parseDecimal(s)
	if err != nil {
		return 0, err
	}
	if v > 1 {
		v /= 100
	}
	return v, nil
}

var handbookDateLayouts = []string{
	"02.01.2006",
	"2006-01-02",
	"02/01/2006",
	"02-Jan-2006",
}

func parseHandbookDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range handbookDateLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}
