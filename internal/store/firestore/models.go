package firestore

import (
	"fmt"
	"time"

	cfs "cloud.google.com/go/firestore"
	"github.com/shopspring/decimal"

	"kakeibo/internal/core"
)

// Document shapes. Money travels as decimal strings so nothing on the wire
// is a float.
type (
	accountDoc struct {
		UID      string `firestore:"uid"`
		Name     string `firestore:"name"`
		Balance  string `firestore:"balance"`
		Type     string `firestore:"type"`
		Currency string `firestore:"currency"`
	}

	transactionDoc struct {
		UID         string    `firestore:"uid"`
		AccountID   string    `firestore:"accountId"`
		Amount      string    `firestore:"amount"`
		Direction   string    `firestore:"direction"`
		Category    string    `firestore:"category"`
		Date        time.Time `firestore:"date"`
		Description string    `firestore:"description"`
	}
)

func encodeAccount(uid string, a core.Account) accountDoc {
	return accountDoc{
		UID:      uid,
		Name:     a.Name,
		Balance:  a.Balance.String(),
		Type:     string(a.Type),
		Currency: a.Currency,
	}
}

func decodeAccount(doc *cfs.DocumentSnapshot) (core.Account, error) {
	var d accountDoc
	if err := doc.DataTo(&d); err != nil {
		return core.Account{}, fmt.Errorf("decode account %s: %w", doc.Ref.ID, err)
	}
	balance, err := decimal.NewFromString(d.Balance)
	if err != nil {
		return core.Account{}, fmt.Errorf("decode account %s balance %q: %w", doc.Ref.ID, d.Balance, err)
	}
	return core.Account{
		ID:       doc.Ref.ID,
		Name:     d.Name,
		Balance:  balance,
		Type:     core.AccountType(d.Type),
		Currency: d.Currency,
	}, nil
}

func encodeTransaction(uid string, t core.Transaction) transactionDoc {
	return transactionDoc{
		UID:         uid,
		AccountID:   t.AccountID,
		Amount:      t.Amount.String(),
		Direction:   string(t.Direction),
		Category:    t.Category,
		Date:        t.Date,
		Description: t.Description,
	}
}

func decodeTransaction(doc *cfs.DocumentSnapshot) (core.Transaction, error) {
	var d transactionDoc
	if err := doc.DataTo(&d); err != nil {
		return core.Transaction{}, fmt.Errorf("decode transaction %s: %w", doc.Ref.ID, err)
	}
	amount, err := decimal.NewFromString(d.Amount)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("decode transaction %s amount %q: %w", doc.Ref.ID, d.Amount, err)
	}
	return core.Transaction{
		ID:          doc.Ref.ID,
		AccountID:   d.AccountID,
		Amount:      amount,
		Direction:   core.Direction(d.Direction),
		Category:    d.Category,
		Date:        d.Date,
		Description: d.Description,
	}, nil
}
