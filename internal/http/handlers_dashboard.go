package http

import (
	"log/slog"
	"net/http"

	"kakeibo/internal/core"
	"kakeibo/internal/session"
)

// requireSession resolves the cookie or writes an inline error partial.
func (s *Server) requireSession(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	sess, _, ok := s.currentSession(r)
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`<div class="error">セッションが切れました。再度ログインしてください。</div>`))
		return nil, false
	}
	return sess, true
}

func (s *Server) renderPartial(w http.ResponseWriter, r *http.Request, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		slog.ErrorContext(r.Context(), "Template execution error", "error", err, "template", name)
		_, _ = w.Write([]byte(`<div class="error">表示に失敗しました</div>`))
	}
}

func (s *Server) handleSummaryPartial(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.requireSession(w, r)
	if !ok {
		return
	}
	sum := sess.Summary()

	type row struct {
		Name   string
		Amount string
		Width  int
	}
	data := struct {
		TotalBalance string
		TotalIncome  string
		TotalExpense string
		Net          string
		Rows         []row
	}{
		TotalBalance: formatMoney(sum.TotalBalance),
		TotalIncome:  formatMoney(sum.TotalIncome),
		TotalExpense: formatMoney(sum.TotalExpense),
		Net:          formatMoney(sum.NetBalance()),
	}

	// Bar widths scale against the largest category.
	var max = sum.TotalExpense
	for _, c := range sum.ByCategory {
		if c.Amount.GreaterThan(max) {
			max = c.Amount
		}
	}
	for _, c := range sum.ByCategory {
		width := 0
		if max.Sign() > 0 {
			width = int(c.Amount.Mul(hundred).Div(max).IntPart())
			if width < 2 {
				width = 2
			}
			if width > 100 {
				width = 100
			}
		}
		data.Rows = append(data.Rows, row{Name: c.Name, Amount: formatMoney(c.Amount), Width: width})
	}
	s.renderPartial(w, r, "summary.html", data)
}

func (s *Server) handleAccountsPartial(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.requireSession(w, r)
	if !ok {
		return
	}

	type row struct {
		ID       string
		Name     string
		Type     string
		Balance  string
		Currency string
	}
	var rows []row
	for _, a := range sess.Accounts() {
		rows = append(rows, row{
			ID:       a.ID,
			Name:     a.Name,
			Type:     string(a.Type),
			Balance:  formatMoney(a.Balance),
			Currency: a.Currency,
		})
	}
	data := struct {
		Accounts []row
		Types    []core.AccountType
	}{
		Accounts: rows,
		Types:    []core.AccountType{core.Checking, core.Savings, core.Credit, core.Cash, core.Investment},
	}
	s.renderPartial(w, r, "accounts.html", data)
}

func (s *Server) handleTransactionsPartial(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.requireSession(w, r)
	if !ok {
		return
	}

	type row struct {
		Date        string
		Account     string
		Direction   string
		Amount      string
		Category    string
		Description string
	}
	var rows []row
	for _, t := range sess.Transactions() {
		rows = append(rows, row{
			Date:        t.Date.Format("2006-01-02"),
			Account:     sess.AccountLabel(t.AccountID),
			Direction:   string(t.Direction),
			Amount:      formatMoney(t.Amount),
			Category:    t.Category,
			Description: t.Description,
		})
	}
	data := struct {
		Transactions []row
		Accounts     []core.Account
		Categories   []core.Category
	}{
		Transactions: rows,
		Accounts:     sess.Accounts(),
		Categories:   core.Catalog(),
	}
	s.renderPartial(w, r, "transactions.html", data)
}

func (s *Server) handleWidgetsPartial(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireSession(w, r); !ok {
		return
	}
	snap := s.widgets.Refresh(r.Context())
	s.renderPartial(w, r, "widgets.html", snap)
}
