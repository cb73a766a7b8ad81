package http

import (
	"errors"
	"log/slog"
	"net/http"

	"kakeibo/internal/auth"
	"kakeibo/internal/store"
)

type loginPage struct {
	RemoteAvailable bool
	DefaultRemote   bool
	Error           string
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if s.templates == nil {
		slog.ErrorContext(r.Context(), "Templates not loaded", "url", r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	sess, _, ok := s.currentSession(r)
	if !ok {
		s.renderLogin(w, r, loginPage{
			RemoteAvailable: s.manager.RemoteAvailable(),
			DefaultRemote:   s.manager.DefaultMode() == store.ModeRemote,
		}, http.StatusOK)
		return
	}

	data := struct {
		Email         string
		Mode          string
		AdviceEnabled bool
	}{
		Email:         sess.User().Email,
		Mode:          string(sess.Mode()),
		AdviceEnabled: s.advisor.Enabled(),
	}
	if err := s.templates.ExecuteTemplate(w, "dashboard.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Dashboard template execution failed", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) renderLogin(w http.ResponseWriter, r *http.Request, data loginPage, status int) {
	w.WriteHeader(status)
	if err := s.templates.ExecuteTemplate(w, "login.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Login template execution failed", "error", err)
	}
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	email := sanitizeInput(r.Form.Get("email"))
	password := r.Form.Get("password")

	// The mode may be overridden at the login step only; after that the
	// session is pinned to it.
	mode := s.manager.DefaultMode()
	if r.Form.Get("mode") == string(store.ModeLocal) {
		mode = store.ModeLocal
	} else if r.Form.Get("mode") == string(store.ModeRemote) {
		mode = store.ModeRemote
	}

	sess, err := s.manager.SignIn(r.Context(), email, password, mode)
	if err != nil {
		page := loginPage{
			RemoteAvailable: s.manager.RemoteAvailable(),
			DefaultRemote:   s.manager.DefaultMode() == store.ModeRemote,
		}
		if errors.Is(err, auth.ErrInvalidCredentials) {
			page.Error = "メールアドレスまたはパスワードが正しくありません"
			s.renderLogin(w, r, page, http.StatusUnauthorized)
			return
		}
		slog.ErrorContext(r.Context(), "Sign-in failed", "error", err)
		page.Error = "ログインに失敗しました。しばらくしてからもう一度お試しください"
		s.renderLogin(w, r, page, http.StatusBadGateway)
		return
	}

	token := newSessionToken()
	s.sessions.put(token, sess)
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if sess, token, ok := s.currentSession(r); ok {
		s.sessions.remove(token)
		if err := sess.SignOut(r.Context()); err != nil {
			slog.ErrorContext(r.Context(), "Sign-out failed", "error", err)
		}
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
