package advice

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"kakeibo/internal/core"
	"kakeibo/internal/log"
)

func testLogger() *log.Logger { return log.New(log.DefaultConfig()) }

func sampleState() ([]core.Account, []core.Transaction) {
	accounts := []core.Account{
		{ID: "a1", Name: "Cash", Type: core.Cash, Balance: decimal.NewFromInt(50000), Currency: "JPY"},
	}
	txns := []core.Transaction{
		{ID: "t1", AccountID: "a1", Amount: decimal.NewFromInt(1200), Direction: core.Expense,
			Category: "食", Date: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), Description: "ランチ"},
	}
	return accounts, txns
}

func TestAdviseDisabledWithoutKey(t *testing.T) {
	c := New("", "gemini-2.0-flash", testLogger())
	require.False(t, c.Enabled())

	accounts, txns := sampleState()
	got := c.Advise(context.Background(), accounts, txns)
	require.Equal(t, DisabledMessage, got)
	require.Nil(t, c.generate, "no key must mean no request path at all")
}

func TestAdviseFailureReturnsFixedMessage(t *testing.T) {
	c := New("some-key", "gemini-2.0-flash", testLogger())
	calls := 0
	c.generate = func(context.Context, string) (string, error) {
		calls++
		return "", errors.New("quota exceeded: project 12345")
	}

	accounts, txns := sampleState()
	got := c.Advise(context.Background(), accounts, txns)
	require.Equal(t, UnavailableMessage, got)
	require.Equal(t, 1, calls, "no retries")
	require.NotContains(t, got, "quota", "underlying error must not leak")
}

func TestAdviseReturnsModelTextVerbatim(t *testing.T) {
	c := New("some-key", "gemini-2.0-flash", testLogger())
	var seenPrompt string
	c.generate = func(_ context.Context, prompt string) (string, error) {
		seenPrompt = prompt
		return "毎月の食費を見直しましょう。", nil
	}

	accounts, txns := sampleState()
	got := c.Advise(context.Background(), accounts, txns)
	require.Equal(t, "毎月の食費を見直しましょう。", got)

	// The prompt embeds the serialized state.
	require.Contains(t, seenPrompt, "Cash")
	require.Contains(t, seenPrompt, "50000")
	require.Contains(t, seenPrompt, "食")
}

func TestBuildPromptCapsTransactions(t *testing.T) {
	var txns []core.Transaction
	for i := 0; i < recentLimit+10; i++ {
		txns = append(txns, core.Transaction{
			ID: "t", AccountID: "a", Amount: decimal.NewFromInt(1),
			Direction: core.Expense, Category: "食", Date: time.Now(),
		})
	}
	prompt := buildPrompt(nil, txns)
	require.Contains(t, prompt, "他 10 件")
	require.LessOrEqual(t, strings.Count(prompt, "支出"), recentLimit+2)
}
