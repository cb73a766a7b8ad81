// Package memory is the local-mode data provider: a process-local,
// mutex-guarded stand-in for the remote store. Data never survives a
// restart and subscriptions never fire.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"kakeibo/internal/core"
	"kakeibo/internal/store"
)

type Store struct {
	mu       sync.Mutex
	accounts []core.Account
	txns     []core.Transaction
}

func New(accounts []core.Account, txns []core.Transaction) *Store {
	s := &Store{
		accounts: append([]core.Account(nil), accounts...),
		txns:     append([]core.Transaction(nil), txns...),
	}
	core.SortTransactionsDesc(s.txns)
	return s
}

// NewSeeded returns a store pre-populated with the demo dataset.
func NewSeeded() *Store {
	return New(SeedAccounts(), SeedTransactions())
}

func (s *Store) FetchAccounts(_ context.Context, _ string) ([]core.Account, store.Subscription[core.Account], error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Account(nil), s.accounts...), store.NewStaticSubscription[core.Account](), nil
}

func (s *Store) FetchTransactions(_ context.Context, _ string) ([]core.Transaction, store.Subscription[core.Transaction], error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := append([]core.Transaction(nil), s.txns...)
	core.SortTransactionsDesc(out)
	return out, store.NewStaticSubscription[core.Transaction](), nil
}

func (s *Store) CreateAccount(_ context.Context, _ string, a core.Account) (core.Account, error) {
	if err := a.Validate(); err != nil {
		return core.Account{}, err
	}
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts = append(s.accounts, a)
	return a, nil
}

func (s *Store) UpdateAccount(_ context.Context, _ string, a core.Account) error {
	if err := a.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.accounts {
		if s.accounts[i].ID == a.ID {
			s.accounts[i] = a
			return nil
		}
	}
	return fmt.Errorf("update account %s: %w", a.ID, store.ErrNotFound)
}

// DeleteAccount removes the account only. Transactions keep referencing the
// dead ID and render as "unknown account" downstream.
func (s *Store) DeleteAccount(_ context.Context, _ string, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.accounts {
		if s.accounts[i].ID == id {
			s.accounts = append(s.accounts[:i], s.accounts[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("delete account %s: %w", id, store.ErrNotFound)
}

func (s *Store) CreateTransaction(_ context.Context, _ string, t core.Transaction) (core.Transaction, error) {
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.txns = append(s.txns, t)
	core.SortTransactionsDesc(s.txns)
	return t, nil
}
