package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"kakeibo/internal/auth"
	"kakeibo/internal/core"
	"kakeibo/internal/log"
	"kakeibo/internal/store"
)

// UnknownAccountLabel is what an orphaned transaction's account renders as.
const UnknownAccountLabel = "unknown account"

var (
	ErrSessionClosed  = errors.New("session closed")
	ErrAccountMissing = errors.New("account not found")
)

// Session holds the only mutable copy of the current lists. Everything
// handed out is a fresh snapshot; the lists themselves are replaced, never
// mutated in place.
type Session struct {
	user     auth.User
	mode     store.Mode
	provider store.Provider
	authn    auth.Authenticator
	logger   *log.Logger

	mu       sync.RWMutex
	accounts []core.Account
	txns     []core.Transaction
	closed   bool

	accSub store.Subscription[core.Account]
	txnSub store.Subscription[core.Transaction]
	pumps  sync.WaitGroup
}

// start loads the initial snapshots and, in remote mode, wires the two
// independent subscription pumps. The pumps replace a whole list per push;
// the two collections carry no ordering guarantee relative to each other.
func (s *Session) start(ctx context.Context) error {
	accounts, accSub, err := s.provider.FetchAccounts(ctx, s.user.UID)
	if err != nil {
		return fmt.Errorf("fetch accounts: %w", err)
	}
	txns, txnSub, err := s.provider.FetchTransactions(ctx, s.user.UID)
	if err != nil {
		accSub.Cancel()
		return fmt.Errorf("fetch transactions: %w", err)
	}
	core.SortTransactionsDesc(txns)

	s.mu.Lock()
	s.accounts = accounts
	s.txns = txns
	s.accSub = accSub
	s.txnSub = txnSub
	s.mu.Unlock()

	s.pumps.Add(2)
	go func() {
		defer s.pumps.Done()
		for snap := range accSub.Updates() {
			s.replaceAccounts(snap)
		}
	}()
	go func() {
		defer s.pumps.Done()
		for snap := range txnSub.Updates() {
			s.replaceTransactions(snap)
		}
	}()
	return nil
}

func (s *Session) replaceAccounts(snap []core.Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.accounts = snap
}

func (s *Session) replaceTransactions(snap []core.Transaction) {
	core.SortTransactionsDesc(snap)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.txns = snap
}

// SignOut cancels both subscriptions, waits for the pumps to drain, and
// only then clears state. A push arriving after sign-out is never applied.
func (s *Session) SignOut(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	accSub, txnSub := s.accSub, s.txnSub
	s.mu.Unlock()

	accSub.Cancel()
	txnSub.Cancel()
	s.pumps.Wait()

	s.mu.Lock()
	s.closed = true
	s.accounts = nil
	s.txns = nil
	uid := s.user.UID
	s.user = auth.User{}
	s.mu.Unlock()

	if err := s.authn.SignOut(ctx, uid); err != nil {
		s.logger.WarnContext(ctx, "identity sign-out failed", log.FieldError, err)
	}
	return nil
}

func (s *Session) User() auth.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

func (s *Session) Mode() store.Mode { return s.mode }

// Accounts returns a copy of the current account list.
func (s *Session) Accounts() []core.Account {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]core.Account(nil), s.accounts...)
}

// Transactions returns a copy of the current list, newest first.
func (s *Session) Transactions() []core.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]core.Transaction(nil), s.txns...)
}

// Summary recomputes the derived statistics from the current lists.
func (s *Session) Summary() core.FinancialSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return core.Summarize(s.accounts, s.txns)
}

// AccountLabel resolves an account ID for rendering. Orphaned references
// are not an error, they read as the placeholder label.
func (s *Session) AccountLabel(id string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.accounts {
		if a.ID == id {
			return a.Name
		}
	}
	return UnknownAccountLabel
}

// CreateAccount dispatches on mode: local applies the result to the current
// list synchronously, remote leaves visibility to the live subscription.
func (s *Session) CreateAccount(ctx context.Context, a core.Account) (core.Account, error) {
	if err := s.checkOpen(); err != nil {
		return core.Account{}, err
	}
	created, err := s.provider.CreateAccount(ctx, s.User().UID, a)
	if err != nil {
		return core.Account{}, err
	}
	if s.mode == store.ModeLocal {
		s.mu.Lock()
		s.accounts = append(append([]core.Account(nil), s.accounts...), created)
		s.mu.Unlock()
	}
	return created, nil
}

func (s *Session) UpdateAccount(ctx context.Context, a core.Account) error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	if err := s.provider.UpdateAccount(ctx, s.User().UID, a); err != nil {
		return err
	}
	if s.mode == store.ModeLocal {
		s.mu.Lock()
		next := append([]core.Account(nil), s.accounts...)
		for i := range next {
			if next[i].ID == a.ID {
				next[i] = a
			}
		}
		s.accounts = next
		s.mu.Unlock()
	}
	return nil
}

// DeleteAccount is irreversible and performs no cascade: transactions
// referencing the ID stay behind as orphans. Interactive confirmation is
// the caller's job.
func (s *Session) DeleteAccount(ctx context.Context, id string) error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	if err := s.provider.DeleteAccount(ctx, s.User().UID, id); err != nil {
		return err
	}
	if s.mode == store.ModeLocal {
		s.mu.Lock()
		next := make([]core.Account, 0, len(s.accounts))
		for _, a := range s.accounts {
			if a.ID != id {
				next = append(next, a)
			}
		}
		s.accounts = next
		s.mu.Unlock()
	}
	return nil
}

// CreateTransaction inserts the transaction and issues the paired balance
// update as a second, independent write. If the balance write fails after
// the insert succeeded the two entities are inconsistent; that window is a
// documented property of the design, so it is logged and nothing else.
func (s *Session) CreateTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	if err := s.checkOpen(); err != nil {
		return core.Transaction{}, err
	}
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}

	account, ok := s.findAccount(t.AccountID)
	if !ok {
		return core.Transaction{}, fmt.Errorf("create transaction: %w", ErrAccountMissing)
	}
	account.Balance = account.Balance.Add(t.Direction.Signed(t.Amount))

	created, err := s.provider.CreateTransaction(ctx, s.User().UID, t)
	if err != nil {
		return core.Transaction{}, err
	}
	if err := s.provider.UpdateAccount(ctx, s.User().UID, account); err != nil {
		s.logger.ErrorContext(ctx, "balance update failed after transaction insert",
			log.FieldAccountID, account.ID, log.FieldError, err)
		return created, nil
	}

	if s.mode == store.ModeLocal {
		s.mu.Lock()
		txns := append(append([]core.Transaction(nil), s.txns...), created)
		core.SortTransactionsDesc(txns)
		s.txns = txns
		next := append([]core.Account(nil), s.accounts...)
		for i := range next {
			if next[i].ID == account.ID {
				next[i] = account
			}
		}
		s.accounts = next
		s.mu.Unlock()
	}
	return created, nil
}

func (s *Session) findAccount(id string) (core.Account, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.accounts {
		if a.ID == id {
			return a, true
		}
	}
	return core.Account{}, false
}

func (s *Session) checkOpen() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrSessionClosed
	}
	return nil
}
