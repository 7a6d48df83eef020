package ledger

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// ComputeBudgetStatus joins category budgets against actual spend inside the
// period bounds (inclusive). Budgeted categories with no spend still yield a
// record with zero spend; spend in unbudgeted categories is not reported
// here, it belongs to category-breakdown reporting.
//
// UtilizationPercent is defined as zero when the budget amount is zero, even
// with positive spend.
func ComputeBudgetStatus(budgets []CategoryBudget, expenses []Expense, bounds PeriodBounds) []BudgetStatus {
	spent := make(map[uuid.UUID]int64)
	for _, e := range expenses {
		if e.CategoryID == uuid.Nil {
			continue
		}
		if !bounds.Contains(e.OccurredAt) {
			continue
		}
		spent[e.CategoryID] += e.Amount
	}

	statuses := make([]BudgetStatus, len(budgets))
	for i, b := range budgets {
		s := spent[b.CategoryID]
		status := BudgetStatus{
			CategoryID:         b.CategoryID,
			BudgetAmount:       b.Amount,
			SpentAmount:        s,
			RemainingAmount:    b.Amount - s,
			UtilizationPercent: decimal.Zero,
			OverBudget:         s > b.Amount,
		}
		if b.Amount != 0 {
			status.UtilizationPercent = decimal.NewFromInt(s).
				Mul(oneHundred).
				DivRound(decimal.NewFromInt(b.Amount), 2)
		}
		statuses[i] = status
	}
	return statuses
}
