// Package backend builds the data providers and authenticators from
// configuration. Missing remote configuration is not an error: the
// application degrades to local mode with seed data.
package backend

import (
	"context"

	"kakeibo/internal/auth"
	"kakeibo/internal/config"
	"kakeibo/internal/log"
	fsstore "kakeibo/internal/store/firestore"
	"kakeibo/internal/store/memory"

	"kakeibo/internal/store"
)

// Providers holds everything mode selection needs. Remote is nil when the
// remote store is unconfigured or could not be constructed; the login form
// then only offers local mode.
type Providers struct {
	Local      store.Provider
	Remote     store.Provider
	LocalAuth  auth.Authenticator
	RemoteAuth auth.Authenticator
	Cleanup    func() error
}

func Build(ctx context.Context, cfg *config.Config, logger *log.Logger) *Providers {
	p := &Providers{
		Local:     memory.NewSeeded(),
		LocalAuth: auth.NewLocal(),
	}

	if !cfg.RemoteStoreConfigured() {
		logger.Info("remote store not configured, running in local mode")
		return p
	}

	remote, err := fsstore.New(ctx, cfg.FirestoreProjectID, cfg.FirestoreCredentialsFile, logger)
	if err != nil {
		logger.Warn("remote store unavailable, falling back to local mode", log.FieldError, err)
		return p
	}

	p.Remote = remote
	p.RemoteAuth = auth.NewIdentityToolkit(cfg.IdentityAPIKey, logger)
	p.Cleanup = remote.Close
	logger.Info("initialized remote store", "project", cfg.FirestoreProjectID)
	return p
}
