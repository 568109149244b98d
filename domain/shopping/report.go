package shopping

import "github.com/shopspring/decimal"

// meanPrecision keeps enough digits of total/count that the final half-even
// rounding sees the true quotient.
const meanPrecision = 16

// Report is the count/total/mean of the orders in a date window.
type Report struct {
	Count int64
	Total decimal.Decimal
	Mean  decimal.Decimal
}

// NewReport normalises a raw summary. An empty window reports exact zeros.
// Otherwise the total is kept exact and the mean is total/count rounded
// half-even to MoneyScale places.
func NewReport(s Summary) Report {
	if s.Count == 0 {
		return Report{Total: decimal.Zero, Mean: decimal.Zero}
	}
	mean := s.Total.DivRound(decimal.NewFromInt(s.Count), meanPrecision).RoundBank(MoneyScale)
	return Report{Count: s.Count, Total: s.Total, Mean: mean}
}
