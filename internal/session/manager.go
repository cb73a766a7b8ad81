// Package session is the synchronization layer: one mode-independent view
// of the signed-in user's accounts and transactions, kept live in remote
// mode and mutated in place in local mode.
package session

import (
	"context"
	"fmt"

	"kakeibo/internal/auth"
	"kakeibo/internal/log"
	"kakeibo/internal/store"
)

// Manager owns the configured providers and mints sessions. The default
// mode is decided once at startup (remote when a Firestore client exists);
// a login may still force local mode for the session it starts.
type Manager struct {
	local      store.Provider
	remote     store.Provider // nil when the remote store is unconfigured
	localAuth  auth.Authenticator
	remoteAuth auth.Authenticator
	logger     *log.Logger
}

func NewManager(local, remote store.Provider, localAuth, remoteAuth auth.Authenticator, logger *log.Logger) *Manager {
	return &Manager{
		local:      local,
		remote:     remote,
		localAuth:  localAuth,
		remoteAuth: remoteAuth,
		logger:     logger.WithComponent(log.ComponentSession),
	}
}

// DefaultMode is remote exactly when the remote store client was built.
func (m *Manager) DefaultMode() store.Mode {
	if m.remote != nil {
		return store.ModeRemote
	}
	return store.ModeLocal
}

// RemoteAvailable reports whether a login may choose remote mode at all.
func (m *Manager) RemoteAvailable() bool { return m.remote != nil }

// SignIn authenticates and starts a session in the requested mode.
// Requesting remote mode without a configured remote store is an error;
// forcing local mode is always possible.
func (m *Manager) SignIn(ctx context.Context, email, password string, mode store.Mode) (*Session, error) {
	provider := m.local
	authn := m.localAuth
	if mode == store.ModeRemote {
		if m.remote == nil {
			return nil, fmt.Errorf("remote mode requested but no remote store is configured")
		}
		provider = m.remote
		authn = m.remoteAuth
	}

	user, err := authn.SignIn(ctx, email, password)
	if err != nil {
		// Leave no trace: a failed login changes nothing.
		return nil, err
	}

	s := &Session{
		user:     user,
		mode:     mode,
		provider: provider,
		authn:    authn,
		logger:   m.logger.With(log.FieldUserID, user.UID, log.FieldMode, string(mode)),
	}
	if err := s.start(ctx); err != nil {
		return nil, err
	}
	m.logger.InfoContext(ctx, "session started", log.FieldUserID, user.UID, log.FieldMode, string(mode))
	return s, nil
}
