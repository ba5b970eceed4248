// Package ledger holds the record rules that do not touch storage: payload
// decoding and validation, derived money fields, update merging and the
// month/search filters.
package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/GlebRadaev/recordbook/internal/domain"
)

// Compute returns the derived fields for the given money inputs.
// Results may be negative: overpayment and loss are both valid states.
// profitTotal and capitalTotal mirror profit and capital.
func Compute(total, deposit, capital float64) domain.Derived {
	t := decimal.NewFromFloat(total)
	c := decimal.NewFromFloat(capital)

	remain := t.Sub(decimal.NewFromFloat(deposit)).InexactFloat64()
	profit := t.Sub(c).InexactFloat64()

	return domain.Derived{
		Remain:       remain,
		Profit:       profit,
		ProfitTotal:  profit,
		CapitalTotal: c.InexactFloat64(),
	}
}

// Apply writes d onto r.
func Apply(r *domain.Record, d domain.Derived) {
	r.Remain = d.Remain
	r.Profit = d.Profit
	r.ProfitTotal = d.ProfitTotal
	r.CapitalTotal = d.CapitalTotal
}
