package constants

import "time"

const (
	AccessTokenKey     = "access_token"
	RefreshTokenKey    = "refresh_token"
	AccessTokenMaxAge  = 7 * 24 * time.Hour
	RefreshTokenMaxAge = 30 * 24 * time.Hour
	CookieSameSite     = "lax"
	CookiePath         = "/"
)

const (
	ExternalAPITimeout = 10 * time.Second
	RequestTimeout     = 30 * time.Second
	DatabaseTimeout    = 5 * time.Second
)

const (
	DefaultPage     = 1
	DefaultPageSize = 20
)

const (
	DefaultToastDuration = 5 * time.Second
	ToastIDAlphabet      = "0123456789abcdefghijklmnopqrstuvwxyz"
	ToastIDLength        = 7
)

const (
	DBMaxOpenConns    = 4
	DBMaxIdleConns    = 2
	DBConnMaxLifetime = 1 * time.Hour
	DBMaxIdleTime     = 10 * time.Minute
)

const (
	ShutdownTimeout = 5 * time.Second
)

const (
	MockAccessTokenTTL  = 15 * time.Minute
	MockRefreshTokenTTL = 30 * 24 * time.Hour
)
