package api

import (
	"scout-client/internal/domain"
)

// Envelope wraps every backend response.
type Envelope[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Message string `json:"message,omitempty"`
}

// PlayerPage is a paginated player list. The backend names the list
// "players"; the generic listing shape uses "items".
type PlayerPage struct {
	Players    []domain.Player   `json:"players"`
	Items      []domain.Player   `json:"items"`
	Pagination domain.Pagination `json:"pagination"`
}

func (p *PlayerPage) Results() []domain.Player {
	if len(p.Players) > 0 {
		return p.Players
	}
	return p.Items
}

func unwrap[T any](env *Envelope[T], err error) (T, error) {
	var zero T
	if err != nil {
		return zero, err
	}
	if !env.Success {
		return zero, &Error{Kind: KindServer, StatusCode: 200, Message: env.Message, Err: ErrUnsuccessful}
	}
	return env.Data, nil
}
