package api

import (
	"context"
	"net/url"
	"scout-client/internal/domain"
	"strconv"
)

type ListPlayersParams struct {
	Page         int
	Limit        int
	Query        string
	Position     string
	Country      string
	AgeMin       int
	AgeMax       int
	VerifiedOnly bool
	TournamentID string
}

// Values encodes the params, leaving out zero values.
func (p ListPlayersParams) Values() url.Values {
	v := url.Values{}
	setInt(v, "page", p.Page)
	setInt(v, "limit", p.Limit)
	setString(v, "q", p.Query)
	setString(v, "position", p.Position)
	setString(v, "country", p.Country)
	setInt(v, "age_min", p.AgeMin)
	setInt(v, "age_max", p.AgeMax)
	if p.VerifiedOnly {
		v.Set("verified", "true")
	}
	setString(v, "tournament_id", p.TournamentID)
	return v
}

type PlayersService struct {
	gw *Gateway
}

func NewPlayersService(gw *Gateway) *PlayersService {
	return &PlayersService{gw: gw}
}

func (s *PlayersService) List(ctx context.Context, params ListPlayersParams) (*PlayerPage, error) {
	page, err := unwrap(Get[Envelope[PlayerPage]](ctx, s.gw, "/players", params.Values(), true))
	if err != nil {
		return nil, err
	}
	return &page, nil
}

type playerData struct {
	Player domain.Player `json:"player"`
}

func (s *PlayersService) Get(ctx context.Context, id string) (*domain.Player, error) {
	data, err := unwrap(Get[Envelope[playerData]](ctx, s.gw, "/players/"+url.PathEscape(id), nil, true))
	if err != nil {
		return nil, err
	}
	return &data.Player, nil
}

func (s *PlayersService) Create(ctx context.Context, player domain.Player) (*domain.Player, error) {
	data, err := unwrap(Post[Envelope[playerData]](ctx, s.gw, "/admin/players", player, true))
	if err != nil {
		return nil, err
	}
	return &data.Player, nil
}

func (s *PlayersService) Update(ctx context.Context, id string, player domain.Player) (*domain.Player, error) {
	data, err := unwrap(Put[Envelope[playerData]](ctx, s.gw, "/admin/players/"+url.PathEscape(id), player, true))
	if err != nil {
		return nil, err
	}
	return &data.Player, nil
}

func (s *PlayersService) Delete(ctx context.Context, id string) error {
	_, err := unwrap(Delete[Envelope[struct{}]](ctx, s.gw, "/admin/players/"+url.PathEscape(id), true))
	return err
}

func (s *PlayersService) Verify(ctx context.Context, id string, verified bool) (*domain.Player, error) {
	body := map[string]bool{"is_verified": verified}
	data, err := unwrap(Post[Envelope[playerData]](ctx, s.gw, "/admin/players/"+url.PathEscape(id)+"/verify", body, true))
	if err != nil {
		return nil, err
	}
	return &data.Player, nil
}

func setInt(v url.Values, key string, n int) {
	if n != 0 {
		v.Set(key, strconv.Itoa(n))
	}
}

func setString(v url.Values, key, s string) {
	if s != "" {
		v.Set(key, s)
	}
}
