package memory

import (
	"time"

	"github.com/shopspring/decimal"

	"kakeibo/internal/core"
)

// Seed IDs are fixed so the demo dataset is predictable across runs.
const (
	SeedCashID     = "seed-cash"
	SeedCheckingID = "seed-checking"
	SeedSavingsID  = "seed-savings"
)

func SeedAccounts() []core.Account {
	return []core.Account{
		{ID: SeedCashID, Name: "Cash", Balance: decimal.NewFromInt(50000), Type: core.Cash, Currency: "JPY"},
		{ID: SeedCheckingID, Name: "Checking", Balance: decimal.NewFromInt(120000), Type: core.Checking, Currency: "JPY"},
		{ID: SeedSavingsID, Name: "Savings", Balance: decimal.NewFromInt(800000), Type: core.Savings, Currency: "JPY"},
	}
}

func SeedTransactions() []core.Transaction {
	day := func(offset int) time.Time {
		return time.Now().AddDate(0, 0, -offset).Truncate(24 * time.Hour)
	}
	return []core.Transaction{
		{ID: "seed-t1", AccountID: SeedCheckingID, Amount: decimal.NewFromInt(280000), Direction: core.Income, Category: "給料", Date: day(14), Description: "月給"},
		{ID: "seed-t2", AccountID: SeedCashID, Amount: decimal.NewFromInt(1200), Direction: core.Expense, Category: "食", Date: day(3), Description: "ランチ"},
		{ID: "seed-t3", AccountID: SeedCashID, Amount: decimal.NewFromInt(430), Direction: core.Expense, Category: "交通", Date: day(2), Description: "電車"},
		{ID: "seed-t4", AccountID: SeedCheckingID, Amount: decimal.NewFromInt(65000), Direction: core.Expense, Category: "住居", Date: day(10), Description: "家賃"},
		{ID: "seed-t5", AccountID: SeedCashID, Amount: decimal.NewFromInt(3500), Direction: core.Expense, Category: "食", Date: day(1), Description: "スーパー"},
	}
}
