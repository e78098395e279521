package api

import (
	"context"
	"net/url"
	"scout-client/internal/domain"
)

// AccountService covers the signed-in user's own resources.
type AccountService struct {
	gw *Gateway
}

func NewAccountService(gw *Gateway) *AccountService {
	return &AccountService{gw: gw}
}

// Logout revokes the refresh tokens server side.
func (s *AccountService) Logout(ctx context.Context) error {
	_, err := unwrap(Post[Envelope[struct{}]](ctx, s.gw, "/auth/logout", nil, true))
	return err
}

func (s *AccountService) SavedPlayers(ctx context.Context) ([]domain.Player, error) {
	data, err := unwrap(Get[Envelope[struct {
		Players []domain.Player `json:"players"`
	}]](ctx, s.gw, "/users/me/saved-players", nil, true))
	if err != nil {
		return nil, err
	}
	return data.Players, nil
}

func (s *AccountService) SavePlayer(ctx context.Context, playerID string) error {
	_, err := unwrap(Post[Envelope[struct{}]](ctx, s.gw, "/users/me/saved-players", map[string]string{"player_id": playerID}, true))
	return err
}

func (s *AccountService) RemoveSavedPlayer(ctx context.Context, playerID string) error {
	_, err := unwrap(Delete[Envelope[struct{}]](ctx, s.gw, "/users/me/saved-players/"+url.PathEscape(playerID), true))
	return err
}

func (s *AccountService) Contacts(ctx context.Context) ([]domain.ContactRequest, error) {
	data, err := unwrap(Get[Envelope[struct {
		Contacts []domain.ContactRequest `json:"contacts"`
	}]](ctx, s.gw, "/users/me/contacts", nil, true))
	if err != nil {
		return nil, err
	}
	return data.Contacts, nil
}

func (s *AccountService) RequestContact(ctx context.Context, playerID, message string) error {
	body := map[string]string{"player_id": playerID}
	if message != "" {
		body["message"] = message
	}
	_, err := unwrap(Post[Envelope[struct{}]](ctx, s.gw, "/contacts", body, true))
	return err
}
