package advice

import (
	"fmt"
	"strings"

	"kakeibo/internal/core"
)

// recentLimit caps how many transactions go into the prompt.
const recentLimit = 30

const promptHeader = "あなたは家計簿アプリのファイナンシャルアドバイザーです。\n" +
	"以下の口座と最近の取引をもとに、具体的で実行しやすい家計のアドバイスを\n" +
	"3項目以内、日本語で簡潔に書いてください。数値は提示されたものだけを使い、\n" +
	"推測で金額を作らないでください。\n"

// buildPrompt serializes the current state into a compact human-readable
// summary and embeds it in the fixed instruction template.
func buildPrompt(accounts []core.Account, txns []core.Transaction) string {
	var b strings.Builder
	b.WriteString(promptHeader)

	b.WriteString("\n[口座]\n")
	if len(accounts) == 0 {
		b.WriteString("(なし)\n")
	}
	for _, a := range accounts {
		fmt.Fprintf(&b, "- %s (%s): %s %s\n", a.Name, a.Type, a.Balance.String(), a.Currency)
	}

	b.WriteString("\n[最近の取引]\n")
	if len(txns) == 0 {
		b.WriteString("(なし)\n")
	}
	for i, t := range txns {
		if i >= recentLimit {
			fmt.Fprintf(&b, "... 他 %d 件\n", len(txns)-recentLimit)
			break
		}
		sign := "支出"
		if t.Direction == core.Income {
			sign = "収入"
		}
		fmt.Fprintf(&b, "- %s %s %s (%s) %s\n",
			t.Date.Format("2006-01-02"), sign, t.Amount.String(), t.Category, t.Description)
	}

	sum := core.Summarize(accounts, txns)
	fmt.Fprintf(&b, "\n[集計] 総残高 %s / 収入合計 %s / 支出合計 %s\n",
		sum.TotalBalance.String(), sum.TotalIncome.String(), sum.TotalExpense.String())
	return b.String()
}
