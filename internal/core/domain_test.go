package core

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestAccountValidate(t *testing.T) {
	good := Account{Name: "Cash", Type: Cash, Balance: decimal.NewFromInt(1000), Currency: "JPY"}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []Account{
		{Name: "", Type: Cash},
		{Name: "   ", Type: Checking},
		{Name: "x", Type: AccountType("wallet")},
	}
	for i, a := range bads {
		if err := a.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestTransactionValidate(t *testing.T) {
	good := Transaction{
		AccountID: "a1",
		Amount:    decimal.NewFromInt(150),
		Direction: Expense,
		Category:  "食",
		Date:      time.Now(),
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	cases := []struct {
		name string
		txn  Transaction
	}{
		{"no account", Transaction{Amount: decimal.NewFromInt(1), Direction: Expense}},
		{"negative amount", Transaction{AccountID: "a1", Amount: decimal.NewFromInt(-1), Direction: Expense}},
		{"bad direction", Transaction{AccountID: "a1", Amount: decimal.NewFromInt(1), Direction: Direction("transfer")}},
	}
	for _, tc := range cases {
		if err := tc.txn.Validate(); err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
	}
}

func TestDirectionSigned(t *testing.T) {
	amt := decimal.NewFromInt(150)
	if got := Income.Signed(amt); !got.Equal(amt) {
		t.Fatalf("income delta = %s", got)
	}
	if got := Expense.Signed(amt); !got.Equal(amt.Neg()) {
		t.Fatalf("expense delta = %s", got)
	}
}

func TestSortTransactionsDesc(t *testing.T) {
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	txns := []Transaction{
		{ID: "a", Date: base},
		{ID: "b", Date: base.AddDate(0, 0, 2)},
		{ID: "c", Date: base.AddDate(0, 0, 1)},
	}
	SortTransactionsDesc(txns)
	want := []string{"b", "c", "a"}
	for i, id := range want {
		if txns[i].ID != id {
			t.Fatalf("pos %d: got %s want %s", i, txns[i].ID, id)
		}
	}
}

func TestCatalogByDirection(t *testing.T) {
	for _, c := range CatalogByDirection(Income) {
		if c.Direction != Income {
			t.Fatalf("category %s leaked into income catalog", c.Name)
		}
	}
	if len(CatalogByDirection(Expense)) == 0 {
		t.Fatal("expense catalog empty")
	}
}
