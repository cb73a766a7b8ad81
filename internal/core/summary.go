package core

import "github.com/shopspring/decimal"

// CategoryAmount is one row of the per-category expense breakdown.
type CategoryAmount struct {
	Name   string
	Amount decimal.Decimal
}

// FinancialSummary is derived state: recomputed from the current lists on
// every read, never stored.
type FinancialSummary struct {
	TotalBalance decimal.Decimal
	TotalIncome  decimal.Decimal
	TotalExpense decimal.Decimal
	ByCategory   []CategoryAmount
}

// Summarize computes totals and the expense breakdown. Breakdown entries
// appear in first-seen order over the transaction list; categories with no
// expense transactions get no entry. A full recompute each call is fine at
// the list sizes this application sees.
func Summarize(accounts []Account, txns []Transaction) FinancialSummary {
	s := FinancialSummary{}
	for _, a := range accounts {
		s.TotalBalance = s.TotalBalance.Add(a.Balance)
	}

	index := map[string]int{}
	for _, t := range txns {
		switch t.Direction {
		case Income:
			s.TotalIncome = s.TotalIncome.Add(t.Amount)
		case Expense:
			s.TotalExpense = s.TotalExpense.Add(t.Amount)
			i, ok := index[t.Category]
			if !ok {
				i = len(s.ByCategory)
				index[t.Category] = i
				s.ByCategory = append(s.ByCategory, CategoryAmount{Name: t.Category})
			}
			s.ByCategory[i].Amount = s.ByCategory[i].Amount.Add(t.Amount)
		}
	}
	return s
}

// NetBalance is income minus expense over the summarized transactions.
func (s FinancialSummary) NetBalance() decimal.Decimal {
	return s.TotalIncome.Sub(s.TotalExpense)
}
