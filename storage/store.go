// Package storage holds per-session key/value state: the tokens, cached
// user profile and UI preferences a browser would keep in local storage.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"news-reader/config"
	"news-reader/models"
)

var ErrNotFound = errors.New("storage: key not found")

// Fixed keys written by the service.
const (
	KeyAccessToken  = "access_token"
	KeyRefreshToken = "refresh_token"
	KeyUser         = "user"
	KeyTheme        = "theme"
	KeyCategory     = "category"
	KeyLanguage     = "language"
)

type Store interface {
	Get(ctx context.Context, session, key string) (string, error)
	Set(ctx context.Context, session, key, value string) error
	// Clear removes every key of the session.
	Clear(ctx context.Context, session string) error
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// Open returns the store selected by cfg.Driver.
func Open(ctx context.Context, cfg config.StorageConfig) (Store, error) {
	switch cfg.Driver {
	case config.DriverMemory, "":
		return NewMemory(), nil
	case config.DriverMongo:
		return NewMongo(ctx, cfg.MongoURI, cfg.MongoDatabase)
	case config.DriverSQLite:
		return NewSQLite(ctx, cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("storage: unknown driver %q", cfg.Driver)
	}
}

// LoadAuth reads the persisted login. A session that never logged in
// yields ErrNotFound.
func LoadAuth(ctx context.Context, s Store, session string) (models.AuthSession, error) {
	var out models.AuthSession
	token, err := s.Get(ctx, session, KeyAccessToken)
	if err != nil {
		return out, err
	}
	out.AccessToken = token

	if out.RefreshToken, err = s.Get(ctx, session, KeyRefreshToken); err != nil && !errors.Is(err, ErrNotFound) {
		return out, err
	}

	raw, err := s.Get(ctx, session, KeyUser)
	switch {
	case errors.Is(err, ErrNotFound):
		return out, nil
	case err != nil:
		return out, err
	}
	var u models.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return out, fmt.Errorf("decode user blob: %w", err)
	}
	out.User = &u
	return out, nil
}

func SaveAuth(ctx context.Context, s Store, session string, auth models.AuthSession) error {
	if err := s.Set(ctx, session, KeyAccessToken, auth.AccessToken); err != nil {
		return err
	}
	if err := s.Set(ctx, session, KeyRefreshToken, auth.RefreshToken); err != nil {
		return err
	}
	if auth.User == nil {
		return nil
	}
	return SaveUser(ctx, s, session, *auth.User)
}

// SaveUser rewrites the denormalized profile blob.
func SaveUser(ctx context.Context, s Store, session string, u models.User) error {
	b, err := json.Marshal(u)
	if err != nil {
		return err
	}
	return s.Set(ctx, session, KeyUser, string(b))
}
