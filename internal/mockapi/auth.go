package mockapi

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/mail"
	"scout-client/internal/domain"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type claims struct {
	UserID     string      `json:"user_id"`
	Email      string      `json:"email"`
	Role       domain.Role `json:"role"`
	Generation int         `json:"gen"`
	jwt.RegisteredClaims
}

type ctxKey struct{}

func userFrom(ctx context.Context) *account {
	a, _ := ctx.Value(ctxKey{}).(*account)
	return a
}

// AddUser creates an account with the given tier and returns its user.
func (s *Server) AddUser(email, password, firstName, lastName string, role domain.Role, tier domain.Tier) (*domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addAccountLocked(email, hash, firstName, lastName, role, tier)
}

func (s *Server) addAccountLocked(email string, hash []byte, firstName, lastName string, role domain.Role, tier domain.Tier) (*domain.User, error) {
	email = strings.ToLower(email)
	if _, ok := s.accounts[email]; ok {
		return nil, fmt.Errorf("email %s already registered", email)
	}
	now := time.Now().UTC()
	a := &account{
		user: domain.User{
			ID:        uuid.NewString(),
			Email:     email,
			FirstName: firstName,
			LastName:  lastName,
			Role:      role,
			CreatedAt: now,
			UpdatedAt: now,
		},
		passwordHash: hash,
	}
	s.accounts[email] = a
	s.usersByID[a.user.ID] = a
	s.subs[a.user.ID] = &domain.Subscription{
		ID:        uuid.NewString(),
		UserID:    a.user.ID,
		Tier:      tier,
		Status:    domain.StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	u := a.user
	return &u, nil
}

// InvalidateAccessTokens makes every access token issued so far fail
// with 401. Refresh tokens stay valid.
func (s *Server) InvalidateAccessTokens() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
}

// RevokeRefreshTokens drops every outstanding refresh token.
func (s *Server) RevokeRefreshTokens() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refresh = make(map[string]refreshEntry)
}

// issueTokens must be called with s.mu held.
func (s *Server) issueTokens(u domain.User) (string, string, error) {
	now := time.Now()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		UserID:     u.ID,
		Email:      u.Email,
		Role:       u.Role,
		Generation: s.generation,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "scout-mock-api",
		},
	})
	access, err := tok.SignedString(s.secret)
	if err != nil {
		return "", "", fmt.Errorf("failed to sign access token: %w", err)
	}

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", "", fmt.Errorf("failed to generate refresh token: %w", err)
	}
	refresh := hex.EncodeToString(buf)
	s.refresh[refresh] = refreshEntry{userID: u.ID, expiresAt: now.Add(s.refreshTTL)}
	return access, refresh, nil
}

func (s *Server) authResponse(w http.ResponseWriter, status int, a *account, withUser bool) {
	s.mu.Lock()
	access, refresh, err := s.issueTokens(a.user)
	s.mu.Unlock()
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to issue tokens")
		writeError(w, http.StatusInternalServerError, "TOKEN_FAILED", "Failed to generate tokens")
		return
	}

	resp := domain.AuthResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int(s.accessTTL.Seconds()),
	}
	if withUser {
		u := a.user
		resp.User = &u
	}
	writeData(w, status, resp)
}

func (s *Server) authenticated(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || raw == "" {
			writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Missing authorization token")
			return
		}

		tok, err := jwt.ParseWithClaims(raw, &claims{}, func(token *jwt.Token) (any, error) {
			return s.secret, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil || !tok.Valid {
			writeError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token")
			return
		}
		cl, ok := tok.Claims.(*claims)
		if !ok {
			writeError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid token claims")
			return
		}

		s.mu.RLock()
		a := s.usersByID[cl.UserID]
		stale := cl.Generation != s.generation
		s.mu.RUnlock()
		if a == nil || stale {
			writeError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token")
			return
		}

		next(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, a)))
	})
}

func (s *Server) admin(next http.HandlerFunc) http.Handler {
	return s.authenticated(func(w http.ResponseWriter, r *http.Request) {
		if userFrom(r.Context()).user.Role != domain.RoleAdmin {
			writeError(w, http.StatusForbidden, "FORBIDDEN", "Admin access required")
			return
		}
		next(w, r)
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !decode(w, r, &req) {
		return
	}

	s.mu.RLock()
	a := s.accounts[strings.ToLower(req.Email)]
	s.mu.RUnlock()
	if a == nil || bcrypt.CompareHashAndPassword(a.passwordHash, []byte(req.Password)) != nil {
		writeError(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password")
		return
	}

	s.logger.Debug().Str("email", a.user.Email).Msg("mock login")
	s.authResponse(w, http.StatusOK, a, true)
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterRequest
	if !decode(w, r, &req) {
		return
	}

	fields := map[string][]string{}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		fields["email"] = append(fields["email"], "Invalid email address")
	}
	if len(req.Password) < 8 {
		fields["password"] = append(fields["password"], "Password must be at least 8 characters")
	}
	if req.FirstName == "" {
		fields["first_name"] = append(fields["first_name"], "First name is required")
	}
	if req.LastName == "" {
		fields["last_name"] = append(fields["last_name"], "Last name is required")
	}
	if len(fields) > 0 {
		writeFieldErrors(w, fields)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.MinCost)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "HASH_FAILED", "Failed to process password")
		return
	}

	s.mu.Lock()
	_, err = s.addAccountLocked(req.Email, hash, req.FirstName, req.LastName, domain.RoleScout, domain.TierFree)
	var a *account
	if err == nil {
		a = s.accounts[strings.ToLower(req.Email)]
	}
	s.mu.Unlock()
	if err != nil {
		writeError(w, http.StatusConflict, "EMAIL_EXISTS", "Email already registered")
		return
	}

	s.authResponse(w, http.StatusCreated, a, true)
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	if !decode(w, r, &req) {
		return
	}

	s.mu.Lock()
	entry, ok := s.refresh[req.RefreshToken]
	if ok {
		delete(s.refresh, req.RefreshToken)
	}
	a := s.usersByID[entry.userID]
	s.mu.Unlock()

	if !ok || time.Now().After(entry.expiresAt) {
		writeError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired refresh token")
		return
	}
	if a == nil {
		writeError(w, http.StatusUnauthorized, "USER_NOT_FOUND", "User not found")
		return
	}

	s.authResponse(w, http.StatusOK, a, false)
}

func (s *Server) handleForgotPassword(w http.ResponseWriter, _ *http.Request) {
	writeMessage(w, "If the email exists, a reset link has been sent")
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	a := userFrom(r.Context())

	s.mu.Lock()
	for token, entry := range s.refresh {
		if entry.userID == a.user.ID {
			delete(s.refresh, token)
		}
	}
	s.mu.Unlock()

	writeMessage(w, "Successfully logged out")
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, userFrom(r.Context()).user)
}
