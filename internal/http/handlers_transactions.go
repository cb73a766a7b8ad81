package http

import (
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"kakeibo/internal/core"
	"kakeibo/internal/session"
)

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
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

	amount, err := parseAmount(r.Form.Get("amount"))
	if err != nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">金額が正しくありません</div>`))
		return
	}
	direction, ok := parseDirection(r.Form.Get("direction"))
	if !ok {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">収支区分が正しくありません</div>`))
		return
	}

	date := time.Now()
	if v := sanitizeInput(r.Form.Get("date")); v != "" {
		if parsed, err := time.Parse("2006-01-02", v); err == nil {
			date = parsed
		}
	}

	txn := core.Transaction{
		AccountID:   sanitizeInput(r.Form.Get("account_id")),
		Amount:      amount,
		Direction:   direction,
		Category:    sanitizeInput(r.Form.Get("category")),
		Date:        date,
		Description: sanitizeInput(r.Form.Get("description")),
	}
	if err := txn.Validate(); err != nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">入力が正しくありません: ` + template.HTMLEscapeString(err.Error()) + `</div>`))
		return
	}

	created, err := sess.CreateTransaction(r.Context(), txn)
	if err != nil {
		if errors.Is(err, session.ErrAccountMissing) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`<div class="error">対象の口座が見つかりません</div>`))
			return
		}
		slog.ErrorContext(r.Context(), "Transaction create error", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`<div class="error">取引の登録に失敗しました</div>`))
		return
	}

	w.Header().Set("HX-Trigger", "transactions:changed")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`<div class="success">取引を登録しました (` +
		template.HTMLEscapeString(created.Category) + ` ` +
		template.HTMLEscapeString(formatMoney(created.Amount)) + `)</div>`))
}
