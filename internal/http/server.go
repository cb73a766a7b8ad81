package http

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"kakeibo/internal/advice"
	"kakeibo/internal/session"
	"kakeibo/internal/widgets"
	appweb "kakeibo/web"
)

const sessionCookie = "kakeibo_session"

type Server struct {
	http.Server
	templates *template.Template

	manager *session.Manager
	advisor *advice.Client
	widgets *widgets.Service

	sessions    *sessionRegistry
	rateLimiter *rateLimiter
}

// sessionRegistry maps cookie tokens to live sessions.
type sessionRegistry struct {
	mu       sync.Mutex
	sessions map[string]*session.Session
}

func newSessionRegistry() *sessionRegistry {
	return &sessionRegistry{sessions: make(map[string]*session.Session)}
}

func (r *sessionRegistry) put(token string, s *session.Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[token] = s
}

func (r *sessionRegistry) get(token string) (*session.Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[token]
	return s, ok
}

func (r *sessionRegistry) remove(token string) (*session.Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[token]
	delete(r.sessions, token)
	return s, ok
}

// Simple in-memory rate limiter for POST endpoints.
type rateLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientInfo
}

type clientInfo struct {
	lastRequest time.Time
	requests    int
}

func newRateLimiter() *rateLimiter {
	return &rateLimiter{clients: make(map[string]*clientInfo)}
}

func (rl *rateLimiter) allow(clientIP string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()

	// Opportunistic cleanup of stale entries.
	if len(rl.clients) > 1024 {
		cutoff := now.Add(-10 * time.Minute)
		for ip, c := range rl.clients {
			if c.lastRequest.Before(cutoff) {
				delete(rl.clients, ip)
			}
		}
	}

	client, exists := rl.clients[clientIP]
	if !exists || now.Sub(client.lastRequest) > time.Minute {
		rl.clients[clientIP] = &clientInfo{lastRequest: now, requests: 1}
		return true
	}
	client.requests++
	client.lastRequest = now
	return client.requests <= 60
}

// NewServer configures routes and templates, returning a ready-to-run http.Server.
func NewServer(addr string, manager *session.Manager, advisor *advice.Client, ws *widgets.Service) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		manager:     manager,
		advisor:     advisor,
		widgets:     ws,
		sessions:    newSessionRegistry(),
		rateLimiter: newRateLimiter(),
	}

	// Parse embedded templates at startup.
	t, err := template.New("").Funcs(template.FuncMap{
		"money": formatMoney,
	}).ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		slog.Warn("Failed parsing templates", "error", err)
	}
	s.templates = t

	// Static assets (served from embedded FS)
	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("/static/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", "public, max-age=3600, immutable")
			static.ServeHTTP(w, r)
		}))
	} else {
		slog.Warn("Failed to mount embedded static FS", "error", err)
	}

	mux.HandleFunc("/", s.withSecurityHeaders(s.handleIndex))
	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", handleReady)
	mux.HandleFunc("/login", s.withSecurityHeaders(s.handleLogin))
	mux.HandleFunc("/logout", s.withSecurityHeaders(s.handleLogout))
	mux.HandleFunc("/accounts", s.withSecurityHeaders(s.handleCreateAccount))
	mux.HandleFunc("/accounts/update", s.withSecurityHeaders(s.handleUpdateAccount))
	mux.HandleFunc("/accounts/delete", s.withSecurityHeaders(s.handleDeleteAccount))
	mux.HandleFunc("/transactions", s.withSecurityHeaders(s.handleCreateTransaction))
	mux.HandleFunc("/advice", s.withSecurityHeaders(s.handleAdvice))
	// UI partials
	mux.HandleFunc("/ui/summary", s.withSecurityHeaders(s.handleSummaryPartial))
	mux.HandleFunc("/ui/accounts", s.withSecurityHeaders(s.handleAccountsPartial))
	mux.HandleFunc("/ui/transactions", s.withSecurityHeaders(s.handleTransactionsPartial))
	mux.HandleFunc("/ui/widgets", s.withSecurityHeaders(s.handleWidgetsPartial))

	return s
}

// withSecurityHeaders adds security headers, rate limiting, and request logging.
func (s *Server) withSecurityHeaders(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		clientIP := r.Header.Get("X-Forwarded-For")
		if clientIP == "" {
			clientIP = r.Header.Get("X-Real-IP")
		}
		if clientIP == "" {
			clientIP = r.RemoteAddr
		}

		if r.Method == http.MethodPost && !s.rateLimiter.allow(clientIP) {
			slog.WarnContext(r.Context(), "Rate limit exceeded", "client_ip", clientIP, "url", r.URL.Path)
			w.Header().Set("Retry-After", "60")
			http.Error(w, "Rate limit exceeded. Please try again later.", http.StatusTooManyRequests)
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "default-src 'self'; script-src 'self' https://unpkg.com; style-src 'self' 'unsafe-inline'; img-src 'self' data:; connect-src 'self'")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		slog.InfoContext(r.Context(), "Request completed",
			"method", r.Method,
			"url", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", time.Since(start).Milliseconds(),
			"client_ip", clientIP)
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// newSessionToken creates an opaque cookie value.
func newSessionToken() string {
	bytes := make([]byte, 16)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("tok_%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(bytes)
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// currentSession resolves the cookie to a live session, if any.
func (s *Server) currentSession(r *http.Request) (*session.Session, string, bool) {
	c, err := r.Cookie(sessionCookie)
	if err != nil || c.Value == "" {
		return nil, "", false
	}
	sess, ok := s.sessions.get(c.Value)
	return sess, c.Value, ok
}
