package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"kakeibo/internal/core"
	"kakeibo/internal/store"
)

func TestSeededFetch(t *testing.T) {
	s := NewSeeded()
	accounts, sub, err := s.FetchAccounts(context.Background(), "anyone")
	if err != nil {
		t.Fatalf("fetch accounts: %v", err)
	}
	defer sub.Cancel()
	if len(accounts) != 3 {
		t.Fatalf("seed accounts = %d", len(accounts))
	}

	txns, tsub, err := s.FetchTransactions(context.Background(), "anyone")
	if err != nil {
		t.Fatalf("fetch transactions: %v", err)
	}
	defer tsub.Cancel()
	for i := 1; i < len(txns); i++ {
		if txns[i].Date.After(txns[i-1].Date) {
			t.Fatalf("transactions not sorted desc at %d", i)
		}
	}
}

func TestStaticSubscriptionNeverFires(t *testing.T) {
	s := NewSeeded()
	_, sub, err := s.FetchAccounts(context.Background(), "u")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	select {
	case snap, ok := <-sub.Updates():
		if ok {
			t.Fatalf("unexpected push: %v", snap)
		}
		t.Fatal("channel closed before cancel")
	case <-time.After(20 * time.Millisecond):
	}
	sub.Cancel()
	if _, ok := <-sub.Updates(); ok {
		t.Fatal("channel should be closed after cancel")
	}
}

func TestAccountLifecycle(t *testing.T) {
	s := New(nil, nil)
	ctx := context.Background()

	created, err := s.CreateAccount(ctx, "u", core.Account{Name: "Wallet", Type: core.Cash, Balance: decimal.NewFromInt(100)})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected assigned ID")
	}

	created.Balance = decimal.NewFromInt(250)
	if err := s.UpdateAccount(ctx, "u", created); err != nil {
		t.Fatalf("update: %v", err)
	}
	accounts, sub, _ := s.FetchAccounts(ctx, "u")
	sub.Cancel()
	if !accounts[0].Balance.Equal(decimal.NewFromInt(250)) {
		t.Fatalf("balance = %s", accounts[0].Balance)
	}

	if err := s.DeleteAccount(ctx, "u", created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.DeleteAccount(ctx, "u", created.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("second delete = %v, want ErrNotFound", err)
	}
}

func TestCreateTransactionKeepsOrder(t *testing.T) {
	s := New(nil, nil)
	ctx := context.Background()
	old := core.Transaction{AccountID: "a", Amount: decimal.NewFromInt(10), Direction: core.Expense, Category: "食", Date: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	newer := core.Transaction{AccountID: "a", Amount: decimal.NewFromInt(20), Direction: core.Expense, Category: "食", Date: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)}
	if _, err := s.CreateTransaction(ctx, "u", old); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := s.CreateTransaction(ctx, "u", newer); err != nil {
		t.Fatalf("create: %v", err)
	}
	txns, sub, _ := s.FetchTransactions(ctx, "u")
	sub.Cancel()
	if !txns[0].Date.After(txns[1].Date) {
		t.Fatal("newest transaction not first")
	}
}

func TestFetchReturnsCopies(t *testing.T) {
	s := NewSeeded()
	ctx := context.Background()
	a1, sub1, _ := s.FetchAccounts(ctx, "u")
	sub1.Cancel()
	a1[0].Name = "mutated"
	a2, sub2, _ := s.FetchAccounts(ctx, "u")
	sub2.Cancel()
	if a2[0].Name == "mutated" {
		t.Fatal("fetch exposed internal slice")
	}
}
