package mockapi

import (
	"net/http"
	"scout-client/internal/constants"
	"scout-client/internal/domain"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

func queryInt(r *http.Request, key string, fallback int) int {
	n, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func age(dob string, now time.Time) (int, bool) {
	t, err := time.Parse(time.DateOnly, dob)
	if err != nil {
		return 0, false
	}
	years := now.Year() - t.Year()
	if now.YearDay() < t.YearDay() {
		years--
	}
	return years, true
}

func matchesPlayer(p domain.Player, r *http.Request, now time.Time) bool {
	q := r.URL.Query()
	if text := strings.ToLower(q.Get("q")); text != "" {
		hay := strings.ToLower(p.FirstName + " " + p.LastName + " " + p.City + " " + p.SchoolName)
		if !strings.Contains(hay, text) {
			return false
		}
	}
	if v := q.Get("position"); v != "" && !strings.EqualFold(p.Position, v) {
		return false
	}
	if v := q.Get("country"); v != "" && !strings.EqualFold(p.Country, v) {
		return false
	}
	if v := q.Get("tournament_id"); v != "" && p.TournamentID != v {
		return false
	}
	if q.Get("verified") == "true" && !p.IsVerified {
		return false
	}
	years, ok := age(p.DateOfBirth, now)
	if v := queryInt(r, "age_min", 0); v > 0 && (!ok || years < v) {
		return false
	}
	if v := queryInt(r, "age_max", 0); v > 0 && (!ok || years > v) {
		return false
	}
	return true
}

func paginate[T any](items []T, page, limit int) ([]T, domain.Pagination) {
	total := len(items)
	p := domain.Pagination{Page: page, Limit: limit, Total: total, TotalPages: (total + limit - 1) / limit}
	start := (page - 1) * limit
	if start >= total {
		return []T{}, p
	}
	end := min(start+limit, total)
	return items[start:end], p
}

func (s *Server) handleListPlayers(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", constants.DefaultPage)
	limit := min(queryInt(r, "limit", constants.DefaultPageSize), 100)
	now := time.Now()

	s.mu.RLock()
	matched := make([]domain.Player, 0, len(s.players))
	for _, p := range s.players {
		if matchesPlayer(p, r, now) {
			matched = append(matched, p)
		}
	}
	s.mu.RUnlock()

	results, pagination := paginate(matched, page, limit)
	writeData(w, http.StatusOK, map[string]any{
		"players":    results,
		"pagination": pagination,
	})
}

func (s *Server) findPlayerLocked(id string) int {
	return slices.IndexFunc(s.players, func(p domain.Player) bool { return p.ID == id })
}

func (s *Server) handleGetPlayer(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.findPlayerLocked(r.PathValue("id"))
	if i < 0 {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Player not found")
		return
	}
	writeData(w, http.StatusOK, map[string]any{"player": s.players[i]})
}

func validatePlayer(p domain.Player) map[string][]string {
	fields := map[string][]string{}
	if len(p.FirstName) < 2 {
		fields["first_name"] = []string{"First name must be at least 2 characters"}
	}
	if len(p.LastName) < 2 {
		fields["last_name"] = []string{"Last name must be at least 2 characters"}
	}
	if _, err := time.Parse(time.DateOnly, p.DateOfBirth); err != nil {
		fields["date_of_birth"] = []string{"Date must be in YYYY-MM-DD format"}
	}
	if p.Country == "" {
		fields["country"] = []string{"Country is required"}
	}
	return fields
}

func (s *Server) handleCreatePlayer(w http.ResponseWriter, r *http.Request) {
	var p domain.Player
	if !decode(w, r, &p) {
		return
	}
	if fields := validatePlayer(p); len(fields) > 0 {
		writeFieldErrors(w, fields)
		return
	}

	now := time.Now().UTC()
	p.ID = uuid.NewString()
	p.VerificationStatus = "pending"
	p.CreatedAt, p.UpdatedAt = now, now

	s.mu.Lock()
	s.players = append(s.players, p)
	s.mu.Unlock()

	writeData(w, http.StatusCreated, map[string]any{"player": p})
}

func (s *Server) handleUpdatePlayer(w http.ResponseWriter, r *http.Request) {
	var p domain.Player
	if !decode(w, r, &p) {
		return
	}
	if fields := validatePlayer(p); len(fields) > 0 {
		writeFieldErrors(w, fields)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.findPlayerLocked(r.PathValue("id"))
	if i < 0 {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Player not found")
		return
	}
	existing := s.players[i]
	p.ID = existing.ID
	p.CreatedAt = existing.CreatedAt
	p.VerificationStatus = existing.VerificationStatus
	p.IsVerified = existing.IsVerified
	p.UpdatedAt = time.Now().UTC()
	s.players[i] = p

	writeData(w, http.StatusOK, map[string]any{"player": p})
}

func (s *Server) handleDeletePlayer(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.findPlayerLocked(r.PathValue("id"))
	if i < 0 {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Player not found")
		return
	}
	s.players = slices.Delete(s.players, i, i+1)
	writeMessage(w, "Player deleted")
}

func (s *Server) handleVerifyPlayer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IsVerified bool `json:"is_verified"`
	}
	if !decode(w, r, &req) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.findPlayerLocked(r.PathValue("id"))
	if i < 0 {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Player not found")
		return
	}
	p := &s.players[i]
	p.IsVerified = req.IsVerified
	p.VerificationStatus = "pending"
	if req.IsVerified {
		p.VerificationStatus = "verified"
	}
	p.UpdatedAt = time.Now().UTC()

	writeData(w, http.StatusOK, map[string]any{"player": *p})
}
