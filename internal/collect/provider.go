package collect

import (
	"sort"
	"time"

	"github.com/parquet-go/parquet-go"

	"ovdp/calc/internal/bond"
)

// Provider is the read-only per-ISIN lookup the pricing engine
// consumes. It is immutable after construction and safe for concurrent
// use.
type Provider struct {
	records map[string]*bond.Bond
	source  string
	asOf    time.Time
}

func NewProvider(collected *CollectedRecords) *Provider {
	records := make(map[string]*bond.Bond, len(collected.Records))
	for _, b := range collected.Records {
		records[b.ISIN] = b
	}
	return &Provider{
		records: records,
		source:  collected.Source,
		asOf:    collected.AsOf,
	}
}

func (p *Provider) Get(isin string) (*bond.Bond, error) {
	b, ok := p.records[isin]
	if !ok {
		return nil, bond.ErrBondNotFound
	}
	return b, nil
}

func (p *Provider) ISINs() []string {
	isins := make([]string, 0, len(p.records))
	for isin := range p.records {
		isins = append(isins, isin)
	}
	sort.Strings(isins)
	return isins
}

func (p *Provider) Len() int {
	return len(p.records)
}

func (p *Provider) Source() string {
	return p.source
}

func (p *Provider) AsOf() time.Time {
	return p.asOf
}

// LoadFromParquet rebuilds a Provider from a directory snapshot written
// by StoreToPath.
func LoadFromParquet(path string, asOf time.Time) (*Provider, error) {
	rows, err := parquet.ReadFile[bond.Bond](path)
	if err != nil {
		return nil, err
	}

	collected := NewCollectedRecords(SourceNBU, asOf)
	for i := range rows {
		b := rows[i]
		collected.AddRecord(&CollectedRecord{Bond: &b})
	}

	return NewProvider(collected), nil
}
