package http

import (
	"html/template"
	"log/slog"
	"net/http"

	"github.com/shopspring/decimal"

	"kakeibo/internal/core"
)

func (s *Server) handleCreateAccount(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	sess, ok := s.requireSession(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`<div class="error">リクエストの形式が正しくありません</div>`))
		return
	}

	// A zero opening balance is fine, only garbage is rejected.
	balance := decimal.Zero
	if v := sanitizeInput(r.Form.Get("balance")); v != "" && v != "0" {
		parsed, err := parseAmount(v)
		if err != nil {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`<div class="error">残高が正しくありません</div>`))
			return
		}
		balance = parsed
	}

	account := core.Account{
		Name:     sanitizeInput(r.Form.Get("name")),
		Type:     core.AccountType(sanitizeInput(r.Form.Get("type"))),
		Balance:  balance,
		Currency: currencyOrDefault(r.Form.Get("currency")),
	}
	if err := account.Validate(); err != nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">入力が正しくありません: ` + template.HTMLEscapeString(err.Error()) + `</div>`))
		return
	}

	created, err := sess.CreateAccount(r.Context(), account)
	if err != nil {
		slog.ErrorContext(r.Context(), "Account create error", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`<div class="error">口座の作成に失敗しました</div>`))
		return
	}

	w.Header().Set("HX-Trigger", "accounts:changed")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`<div class="success">口座を作成しました: ` + template.HTMLEscapeString(created.Name) + `</div>`))
}

func (s *Server) handleUpdateAccount(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	sess, ok := s.requireSession(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`<div class="error">リクエストの形式が正しくありません</div>`))
		return
	}

	id := sanitizeInput(r.Form.Get("id"))
	current, found := findAccount(sess.Accounts(), id)
	if !found {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`<div class="error">口座が見つかりません</div>`))
		return
	}

	if v := sanitizeInput(r.Form.Get("name")); v != "" {
		current.Name = v
	}
	if v := sanitizeInput(r.Form.Get("type")); v != "" {
		current.Type = core.AccountType(v)
	}
	if v := sanitizeInput(r.Form.Get("balance")); v != "" {
		balance, err := parseAmount(v)
		if err != nil {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`<div class="error">残高が正しくありません</div>`))
			return
		}
		current.Balance = balance
	}
	if err := current.Validate(); err != nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">入力が正しくありません: ` + template.HTMLEscapeString(err.Error()) + `</div>`))
		return
	}

	if err := sess.UpdateAccount(r.Context(), current); err != nil {
		slog.ErrorContext(r.Context(), "Account update error", "error", err, "account_id", id)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`<div class="error">口座の更新に失敗しました</div>`))
		return
	}

	w.Header().Set("HX-Trigger", "accounts:changed")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`<div class="success">口座を更新しました</div>`))
}

// handleDeleteAccount is irreversible; the form must carry confirm=yes,
// which the UI sets only after an explicit confirmation dialog.
func (s *Server) handleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	sess, ok := s.requireSession(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`<div class="error">リクエストの形式が正しくありません</div>`))
		return
	}
	if r.Form.Get("confirm") != "yes" {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">削除には確認が必要です</div>`))
		return
	}

	id := sanitizeInput(r.Form.Get("id"))
	if err := sess.DeleteAccount(r.Context(), id); err != nil {
		slog.ErrorContext(r.Context(), "Account delete error", "error", err, "account_id", id)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`<div class="error">口座の削除に失敗しました</div>`))
		return
	}

	w.Header().Set("HX-Trigger", "accounts:changed")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`<div class="success">口座を削除しました</div>`))
}

func findAccount(accounts []core.Account, id string) (core.Account, bool) {
	for _, a := range accounts {
		if a.ID == id {
			return a, true
		}
	}
	return core.Account{}, false
}

func currencyOrDefault(s string) string {
	if v := sanitizeInput(s); v != "" {
		return v
	}
	return "JPY"
}
