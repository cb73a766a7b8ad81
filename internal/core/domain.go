package core

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	Checking   AccountType = "checking"
	Savings    AccountType = "savings"
	Credit     AccountType = "credit"
	Cash       AccountType = "cash"
	Investment AccountType = "investment"
)

const (
	Income  Direction = "income"
	Expense Direction = "expense"
)

type (
	AccountType string

	// Direction tags a transaction as income or expense and determines
	// the sign applied to the owning account's balance.
	Direction string

	Account struct {
		ID       string
		Name     string
		Balance  decimal.Decimal
		Type     AccountType
		Currency string
	}

	// Transaction records a single movement of money. Amount is always a
	// non-negative magnitude; Direction carries the sign. Transactions are
	// never mutated after creation.
	Transaction struct {
		ID          string
		AccountID   string
		Amount      decimal.Decimal
		Direction   Direction
		Category    string
		Date        time.Time
		Description string
	}

	Category struct {
		ID        string
		Name      string
		Direction Direction
	}
)

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidDirection = errors.New("invalid direction")
	ErrInvalidType      = errors.New("invalid account type")
	ErrEmptyName        = errors.New("empty account name")
	ErrEmptyAccountRef  = errors.New("empty account reference")
)

func (t AccountType) Valid() bool {
	switch t {
	case Checking, Savings, Credit, Cash, Investment:
		return true
	default:
		return false
	}
}

func (d Direction) Valid() bool {
	return d == Income || d == Expense
}

// Signed returns the balance delta this direction applies to an amount.
func (d Direction) Signed(amount decimal.Decimal) decimal.Decimal {
	if d == Expense {
		return amount.Neg()
	}
	return amount
}

func (a Account) Validate() error {
	if len(strings.TrimSpace(a.Name)) == 0 {
		return ErrEmptyName
	}
	if len(a.Name) > 100 {
		return errors.New("account name too long (max 100 characters)")
	}
	if !a.Type.Valid() {
		return ErrInvalidType
	}
	return nil
}

func (t Transaction) Validate() error {
	if strings.TrimSpace(t.AccountID) == "" {
		return ErrEmptyAccountRef
	}
	if t.Amount.IsNegative() {
		return ErrInvalidAmount
	}
	if !t.Direction.Valid() {
		return ErrInvalidDirection
	}
	if len(t.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	return nil
}

// SortTransactionsDesc orders transactions newest first, in place.
// Ties fall back to ID so the order is stable across snapshots.
func SortTransactionsDesc(txns []Transaction) {
	sort.SliceStable(txns, func(i, j int) bool {
		if !txns[i].Date.Equal(txns[j].Date) {
			return txns[i].Date.After(txns[j].Date)
		}
		return txns[i].ID > txns[j].ID
	})
}
