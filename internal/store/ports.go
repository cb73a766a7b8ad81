package store

import (
	"context"
	"errors"
	"sync"

	"kakeibo/internal/core"
)

// Mode says which provider flavour a session runs against. It is decided
// once, before a session starts, and never changes mid-session.
type Mode string

const (
	ModeLocal  Mode = "local"
	ModeRemote Mode = "remote"
)

var ErrNotFound = errors.New("not found")

// Ports for the data providers.
type (
	// Subscription delivers full replacement snapshots for one collection.
	// Every value received supersedes all previous ones; there is no partial
	// merge. Cancel closes the updates channel; no value is delivered after
	// Cancel returns.
	Subscription[T any] interface {
		Updates() <-chan []T
		Cancel()
	}

	// Provider is the single read/write contract shared by the in-memory
	// seed provider and the Firestore adapter. Fetch operations return the
	// initial snapshot plus a subscription; the local provider's
	// subscription simply never fires.
	Provider interface {
		FetchAccounts(ctx context.Context, uid string) ([]core.Account, Subscription[core.Account], error)
		FetchTransactions(ctx context.Context, uid string) ([]core.Transaction, Subscription[core.Transaction], error)

		CreateAccount(ctx context.Context, uid string, a core.Account) (core.Account, error)
		UpdateAccount(ctx context.Context, uid string, a core.Account) error
		DeleteAccount(ctx context.Context, uid string, id string) error
		CreateTransaction(ctx context.Context, uid string, t core.Transaction) (core.Transaction, error)
	}
)

// StaticSubscription satisfies Subscription for providers without live
// updates: the channel never carries a value and closes on Cancel.
type StaticSubscription[T any] struct {
	ch   chan []T
	once sync.Once
}

func NewStaticSubscription[T any]() *StaticSubscription[T] {
	return &StaticSubscription[T]{ch: make(chan []T)}
}

func (s *StaticSubscription[T]) Updates() <-chan []T { return s.ch }

func (s *StaticSubscription[T]) Cancel() {
	s.once.Do(func() { close(s.ch) })
}
