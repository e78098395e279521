package search

import (
	"context"
	"fmt"
	"scout-client/internal/api"
	"scout-client/internal/constants"
	"scout-client/internal/domain"
	"scout-client/internal/observe"
	"sync"

	"github.com/rs/zerolog"
)

type PlayerLister interface {
	List(ctx context.Context, params api.ListPlayersParams) (*api.PlayerPage, error)
}

type FilterKey string

const (
	FilterPosition     FilterKey = "position"
	FilterCountry      FilterKey = "country"
	FilterAgeMin       FilterKey = "age_min"
	FilterAgeMax       FilterKey = "age_max"
	FilterVerifiedOnly FilterKey = "verified_only"
	FilterTournamentID FilterKey = "tournament_id"
)

type Filters struct {
	Position     string
	Country      string
	AgeMin       int
	AgeMax       int
	VerifiedOnly bool
	TournamentID string
}

// Snapshot is a copy of the search state safe to hand to observers.
type Snapshot struct {
	Query      string
	Filters    Filters
	Page       int
	Limit      int
	Results    []domain.Player
	Pagination domain.Pagination
	Loading    bool
}

// State holds the query, filters and accumulated results of a player
// search. Each request takes a sequence number; a response that arrives
// after a newer request was issued is dropped.
type State struct {
	mu         sync.Mutex
	query      string
	filters    Filters
	page       int
	limit      int
	results    []domain.Player
	pagination domain.Pagination
	loading    bool
	seq        uint64

	players PlayerLister
	hub     observe.Hub[Snapshot]
	logger  zerolog.Logger
}

func New(players PlayerLister, logger zerolog.Logger) *State {
	return &State{
		players: players,
		page:    constants.DefaultPage,
		limit:   constants.DefaultPageSize,
		pagination: domain.Pagination{
			Page:  constants.DefaultPage,
			Limit: constants.DefaultPageSize,
		},
		logger: logger,
	}
}

func (s *State) SetQuery(q string) {
	s.mu.Lock()
	s.query = q
	s.page = constants.DefaultPage
	s.mu.Unlock()
	s.publish()
}

// SetFilter sets one filter and resets the page. A nil value clears it.
func (s *State) SetFilter(key FilterKey, value any) error {
	s.mu.Lock()
	err := s.setFilterLocked(key, value)
	if err == nil {
		s.page = constants.DefaultPage
	}
	s.mu.Unlock()

	if err != nil {
		return err
	}
	s.publish()
	return nil
}

func (s *State) setFilterLocked(key FilterKey, value any) error {
	switch key {
	case FilterPosition:
		return assign(&s.filters.Position, key, value)
	case FilterCountry:
		return assign(&s.filters.Country, key, value)
	case FilterTournamentID:
		return assign(&s.filters.TournamentID, key, value)
	case FilterAgeMin:
		return assign(&s.filters.AgeMin, key, value)
	case FilterAgeMax:
		return assign(&s.filters.AgeMax, key, value)
	case FilterVerifiedOnly:
		return assign(&s.filters.VerifiedOnly, key, value)
	default:
		return fmt.Errorf("unknown filter %q", key)
	}
}

func assign[T any](dst *T, key FilterKey, value any) error {
	if value == nil {
		var zero T
		*dst = zero
		return nil
	}
	v, ok := value.(T)
	if !ok {
		return fmt.Errorf("filter %q: unexpected value type %T", key, value)
	}
	*dst = v
	return nil
}

func (s *State) ResetFilters() {
	s.mu.Lock()
	s.query = ""
	s.filters = Filters{}
	s.page = constants.DefaultPage
	s.limit = constants.DefaultPageSize
	s.mu.Unlock()
	s.publish()
}

// Search runs the current query and replaces the results. On failure the
// results are cleared.
func (s *State) Search(ctx context.Context) error {
	s.mu.Lock()
	params := api.ListPlayersParams{
		Page:         s.page,
		Limit:        s.limit,
		Query:        s.query,
		Position:     s.filters.Position,
		Country:      s.filters.Country,
		AgeMin:       s.filters.AgeMin,
		AgeMax:       s.filters.AgeMax,
		VerifiedOnly: s.filters.VerifiedOnly,
		TournamentID: s.filters.TournamentID,
	}
	seq := s.begin()
	s.mu.Unlock()
	s.publish()

	page, err := s.players.List(ctx, params)

	s.mu.Lock()
	if seq != s.seq {
		s.mu.Unlock()
		s.logger.Debug().Uint64("seq", seq).Msg("discarding stale search response")
		return nil
	}
	s.loading = false
	if err != nil {
		s.results = nil
		s.mu.Unlock()
		s.publish()
		s.logger.Warn().Err(err).Str("query", params.Query).Msg("search failed")
		return fmt.Errorf("search failed: %w", err)
	}
	s.results = page.Results()
	s.pagination = page.Pagination
	count := len(s.results)
	s.mu.Unlock()
	s.publish()

	s.logger.Debug().Str("query", params.Query).Int("page", params.Page).Int("results", count).Msg("search completed")
	return nil
}

// LoadMore fetches the next page and appends it. Only the query, position
// and country carry over. At the last page it does nothing.
func (s *State) LoadMore(ctx context.Context) error {
	s.mu.Lock()
	if s.pagination.Page >= s.pagination.TotalPages {
		s.mu.Unlock()
		return nil
	}
	prevPage := s.page
	s.page++
	params := api.ListPlayersParams{
		Page:     s.page,
		Limit:    s.limit,
		Query:    s.query,
		Position: s.filters.Position,
		Country:  s.filters.Country,
	}
	seq := s.begin()
	s.mu.Unlock()
	s.publish()

	page, err := s.players.List(ctx, params)

	s.mu.Lock()
	if seq != s.seq {
		s.mu.Unlock()
		s.logger.Debug().Uint64("seq", seq).Msg("discarding stale load-more response")
		return nil
	}
	s.loading = false
	if err != nil {
		s.page = prevPage
		s.mu.Unlock()
		s.publish()
		s.logger.Warn().Err(err).Int("page", params.Page).Msg("load more failed")
		return fmt.Errorf("load more failed: %w", err)
	}
	s.results = append(s.results, page.Results()...)
	s.pagination = page.Pagination
	s.mu.Unlock()
	s.publish()
	return nil
}

// begin must be called with s.mu held.
func (s *State) begin() uint64 {
	s.seq++
	s.loading = true
	return s.seq
}

func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *State) snapshotLocked() Snapshot {
	results := make([]domain.Player, len(s.results))
	copy(results, s.results)
	return Snapshot{
		Query:      s.query,
		Filters:    s.filters,
		Page:       s.page,
		Limit:      s.limit,
		Results:    results,
		Pagination: s.pagination,
		Loading:    s.loading,
	}
}

func (s *State) Subscribe(fn func(Snapshot)) func() {
	return s.hub.Subscribe(fn)
}

func (s *State) publish() {
	if s.hub.Len() == 0 {
		return
	}
	s.hub.Publish(s.Snapshot())
}
