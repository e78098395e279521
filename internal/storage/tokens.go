package storage

import (
	"context"
	"errors"
	"fmt"
	"scout-client/internal/config"
	"scout-client/internal/constants"
	"time"

	"github.com/rs/zerolog"
)

type Tokens struct {
	Access  string
	Refresh string
}

func (t Tokens) Empty() bool {
	return t.Access == "" && t.Refresh == ""
}

// TokenPersistence reads and writes the session token pair across the
// cookie jar and the legacy store.
type TokenPersistence struct {
	jar    CookieJar
	legacy LocalStore
	secure bool
	now    func() time.Time
	logger zerolog.Logger
}

func NewTokenPersistence(jar CookieJar, legacy LocalStore, cfg *config.Config, logger zerolog.Logger) *TokenPersistence {
	return &TokenPersistence{
		jar:    jar,
		legacy: legacy,
		secure: cfg.Secure(),
		now:    time.Now,
		logger: logger,
	}
}

// Load returns the persisted tokens. The cookie jar wins; when it holds no
// access token the legacy store is consulted and, if it has one, both
// values are copied into the jar and deleted from the legacy store.
func (p *TokenPersistence) Load(ctx context.Context) (Tokens, error) {
	access, ok, err := p.jar.Get(ctx, constants.AccessTokenKey)
	if err != nil {
		return Tokens{}, err
	}
	if ok && access != "" {
		refresh, _, err := p.jar.Get(ctx, constants.RefreshTokenKey)
		if err != nil {
			return Tokens{}, err
		}
		return Tokens{Access: access, Refresh: refresh}, nil
	}

	if p.legacy == nil {
		return Tokens{}, nil
	}
	return p.migrateLegacy(ctx)
}

func (p *TokenPersistence) migrateLegacy(ctx context.Context) (Tokens, error) {
	access, ok, err := p.legacy.Get(ctx, constants.AccessTokenKey)
	if err != nil {
		return Tokens{}, err
	}
	if !ok || access == "" {
		return Tokens{}, nil
	}
	refresh, _, err := p.legacy.Get(ctx, constants.RefreshTokenKey)
	if err != nil {
		return Tokens{}, err
	}

	tokens := Tokens{Access: access, Refresh: refresh}
	if err := p.Save(ctx, tokens); err != nil {
		return tokens, fmt.Errorf("failed to migrate legacy tokens: %w", err)
	}
	if err := p.clearLegacy(ctx); err != nil {
		return tokens, fmt.Errorf("failed to clear legacy tokens: %w", err)
	}

	p.logger.Info().Msg("migrated tokens from legacy storage")
	return tokens, nil
}

// Save writes both tokens into the cookie jar. An empty refresh token
// removes the refresh cookie.
func (p *TokenPersistence) Save(ctx context.Context, t Tokens) error {
	now := p.now()
	if err := p.jar.Set(ctx, p.cookie(constants.AccessTokenKey, t.Access, now.Add(constants.AccessTokenMaxAge))); err != nil {
		return err
	}
	if t.Refresh == "" {
		return p.jar.Delete(ctx, constants.RefreshTokenKey)
	}
	return p.jar.Set(ctx, p.cookie(constants.RefreshTokenKey, t.Refresh, now.Add(constants.RefreshTokenMaxAge)))
}

// Clear removes every persisted copy. A cookie the jar refuses to delete
// is overwritten with an expired one instead.
func (p *TokenPersistence) Clear(ctx context.Context) error {
	var errs []error
	for _, name := range []string{constants.AccessTokenKey, constants.RefreshTokenKey} {
		if err := p.jar.Delete(ctx, name); err != nil {
			p.logger.Warn().Err(err).Str("cookie", name).Msg("cookie delete failed, expiring instead")
			if err := p.jar.Set(ctx, p.cookie(name, "", time.Unix(0, 0))); err != nil {
				errs = append(errs, err)
			}
		}
	}
	if p.legacy != nil {
		if err := p.clearLegacy(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (p *TokenPersistence) clearLegacy(ctx context.Context) error {
	return errors.Join(
		p.legacy.Remove(ctx, constants.AccessTokenKey),
		p.legacy.Remove(ctx, constants.RefreshTokenKey),
	)
}

func (p *TokenPersistence) cookie(name, value string, expires time.Time) Cookie {
	return Cookie{
		Name:     name,
		Value:    value,
		Path:     constants.CookiePath,
		SameSite: constants.CookieSameSite,
		Secure:   p.secure,
		Expires:  expires,
	}
}
