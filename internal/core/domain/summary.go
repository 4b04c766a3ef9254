package domain

import "github.com/shopspring/decimal"

// Summary aggregates the ledger over a date range.
type Summary struct {
	TotalIncome  decimal.Decimal `json:"totalIncome"`
	TotalExpense decimal.Decimal `json:"totalExpense"`
	Balance      decimal.Decimal `json:"balance"`
	Count        int             `json:"count"`
}

// Summarize folds a transaction list into totals. Balance is income minus
// expenses; unknown kinds count as expenses.
func Summarize(txns []Transaction) Summary {
	s := Summary{
		TotalIncome:  decimal.Zero,
		TotalExpense: decimal.Zero,
	}
	for _, t := range txns {
		if t.Kind == Income {
			s.TotalIncome = s.TotalIncome.Add(t.Amount)
		} else {
			s.TotalExpense = s.TotalExpense.Add(t.Amount)
		}
	}
	s.Balance = s.TotalIncome.Sub(s.TotalExpense)
	s.Count = len(txns)
	return s
}
