// Package firestore adapts the remote document store to the provider port.
// Collections `accounts` and `transactions` carry a `uid` field as the sole
// per-user filter; reads are live snapshot queries that push full
// replacement lists on every change.
package firestore

import (
	"context"
	"errors"
	"fmt"
	"sync"

	cfs "cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"kakeibo/internal/core"
	"kakeibo/internal/log"
	"kakeibo/internal/store"
)

const (
	accountsCollection     = "accounts"
	transactionsCollection = "transactions"
)

type Provider struct {
	client *cfs.Client
	logger *log.Logger
}

// New constructs the Firestore-backed provider from a credentials file.
// An error here means the application falls back to local mode.
func New(ctx context.Context, projectID, credentialsFile string, logger *log.Logger) (*Provider, error) {
	client, err := cfs.NewClient(ctx, projectID, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("create firestore client: %w", err)
	}
	return &Provider{
		client: client,
		logger: logger.WithComponent(log.ComponentStore),
	}, nil
}

func (p *Provider) Close() error {
	return p.client.Close()
}

func (p *Provider) FetchAccounts(ctx context.Context, uid string) ([]core.Account, store.Subscription[core.Account], error) {
	q := p.client.Collection(accountsCollection).Where("uid", "==", uid)
	return fetchLive(ctx, p.logger, q, decodeAccount)
}

func (p *Provider) FetchTransactions(ctx context.Context, uid string) ([]core.Transaction, store.Subscription[core.Transaction], error) {
	q := p.client.Collection(transactionsCollection).
		Where("uid", "==", uid).
		OrderBy("date", cfs.Desc)
	return fetchLive(ctx, p.logger, q, decodeTransaction)
}

func (p *Provider) CreateAccount(ctx context.Context, uid string, a core.Account) (core.Account, error) {
	if err := a.Validate(); err != nil {
		return core.Account{}, err
	}
	ref, _, err := p.client.Collection(accountsCollection).Add(ctx, encodeAccount(uid, a))
	if err != nil {
		return core.Account{}, fmt.Errorf("create account: %w", err)
	}
	a.ID = ref.ID
	return a, nil
}

func (p *Provider) UpdateAccount(ctx context.Context, uid string, a core.Account) error {
	if err := a.Validate(); err != nil {
		return err
	}
	_, err := p.client.Collection(accountsCollection).Doc(a.ID).Set(ctx, encodeAccount(uid, a))
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("update account %s: %w", a.ID, store.ErrNotFound)
		}
		return fmt.Errorf("update account %s: %w", a.ID, err)
	}
	return nil
}

// DeleteAccount removes the account document only. No cascade: transactions
// keep the dead reference and resolve to "unknown account" at render time.
func (p *Provider) DeleteAccount(ctx context.Context, _ string, id string) error {
	_, err := p.client.Collection(accountsCollection).Doc(id).Delete(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("delete account %s: %w", id, store.ErrNotFound)
		}
		return fmt.Errorf("delete account %s: %w", id, err)
	}
	return nil
}

func (p *Provider) CreateTransaction(ctx context.Context, uid string, t core.Transaction) (core.Transaction, error) {
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}
	ref, _, err := p.client.Collection(transactionsCollection).Add(ctx, encodeTransaction(uid, t))
	if err != nil {
		return core.Transaction{}, fmt.Errorf("create transaction: %w", err)
	}
	t.ID = ref.ID
	return t, nil
}

// fetchLive runs the query once for the initial snapshot, then pumps every
// later snapshot into the subscription channel until cancelled.
func fetchLive[T any](ctx context.Context, logger *log.Logger, q cfs.Query, decode func(*cfs.DocumentSnapshot) (T, error)) ([]T, store.Subscription[T], error) {
	// The listener outlives the fetch call's context: it belongs to the
	// session, which cancels it explicitly at sign-out.
	listenCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	iter := q.Snapshots(listenCtx)

	first, err := iter.Next()
	if err != nil {
		cancel()
		iter.Stop()
		return nil, nil, fmt.Errorf("initial snapshot: %w", err)
	}
	initial, err := decodeAll(first, decode)
	if err != nil {
		cancel()
		iter.Stop()
		return nil, nil, err
	}

	sub := &liveSubscription[T]{ch: make(chan []T), cancel: cancel, iter: iter.Stop}
	go func() {
		defer close(sub.ch)
		for {
			snap, err := iter.Next()
			if err != nil {
				if status.Code(err) != codes.Canceled && !errors.Is(err, context.Canceled) {
					logger.Error("snapshot listener stopped", log.FieldError, err)
				}
				return
			}
			items, err := decodeAll(snap, decode)
			if err != nil {
				logger.Error("snapshot decode failed", log.FieldError, err)
				continue
			}
			select {
			case sub.ch <- items:
			case <-listenCtx.Done():
				return
			}
		}
	}()
	return initial, sub, nil
}

func decodeAll[T any](snap *cfs.QuerySnapshot, decode func(*cfs.DocumentSnapshot) (T, error)) ([]T, error) {
	var out []T
	for {
		doc, err := snap.Documents.Next()
		if err == iterator.Done {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("iterate snapshot: %w", err)
		}
		item, err := decode(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
}

type liveSubscription[T any] struct {
	ch     chan []T
	cancel context.CancelFunc
	iter   func()
	once   sync.Once
}

func (s *liveSubscription[T]) Updates() <-chan []T { return s.ch }

func (s *liveSubscription[T]) Cancel() {
	s.once.Do(func() {
		s.cancel()
		s.iter()
	})
}
