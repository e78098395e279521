package mockapi

import (
	"net/http"
	"scout-client/internal/domain"
	"slices"
	"time"

	"github.com/google/uuid"
)

var plans = []domain.Plan{
	{ID: "free", Name: "Free", Tier: domain.TierFree, Features: []string{"Browse player profiles", "Basic search"}},
	{ID: "scout", Name: "Scout", Tier: domain.TierScout, PriceMonthly: 2900, PriceYearly: 29000, Features: []string{"Full match footage", "Save players", "Advanced filters"}},
	{ID: "pro", Name: "Pro", Tier: domain.TierPro, PriceMonthly: 9900, PriceYearly: 99000, Features: []string{"All Scout features", "Contact requests", "Priority support"}, IsPopular: true},
	{ID: "club", Name: "Club / Enterprise", Tier: domain.TierClub, PriceMonthly: 99900, PriceYearly: 999000, Features: []string{"All Pro features", "API access", "Multiple team members"}},
}

func (s *Server) handlePlans(w http.ResponseWriter, _ *http.Request) {
	writeData(w, http.StatusOK, map[string]any{"tiers": plans})
}

func (s *Server) subscriptionFor(userID string) domain.Subscription {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if sub, ok := s.subs[userID]; ok {
		return *sub
	}
	return domain.Subscription{UserID: userID, Tier: domain.TierFree, Status: domain.StatusActive}
}

// requireTier writes a 403 and reports false when the caller's tier is
// below required.
func (s *Server) requireTier(w http.ResponseWriter, r *http.Request, required domain.Tier) bool {
	sub := s.subscriptionFor(userFrom(r.Context()).user.ID)
	if sub.Status == domain.StatusActive && sub.Tier.Satisfies(required) {
		return true
	}
	writeError(w, http.StatusForbidden, "UPGRADE_REQUIRED", "Your plan does not include this feature")
	return false
}

func (s *Server) handleMySubscription(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, s.subscriptionFor(userFrom(r.Context()).user.ID))
}

// handleCheckout upgrades immediately; there is no payment step.
func (s *Server) handleCheckout(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Tier domain.Tier `json:"tier"`
	}
	if !decode(w, r, &req) {
		return
	}
	if !req.Tier.Valid() || req.Tier == domain.TierFree {
		writeError(w, http.StatusBadRequest, "INVALID_TIER", "Invalid subscription tier")
		return
	}

	userID := userFrom(r.Context()).user.ID
	sessionID := uuid.NewString()
	now := time.Now().UTC()
	end := now.AddDate(0, 1, 0)

	s.mu.Lock()
	s.subs[userID] = &domain.Subscription{
		ID:                 uuid.NewString(),
		UserID:             userID,
		Tier:               req.Tier,
		Status:             domain.StatusActive,
		CurrentPeriodStart: &now,
		CurrentPeriodEnd:   &end,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	s.mu.Unlock()

	writeData(w, http.StatusOK, map[string]string{
		"checkout_url": s.checkoutBase + sessionID,
		"session_id":   sessionID,
	})
}

func (s *Server) handleCancel(w http.ResponseWriter, r *http.Request) {
	userID := userFrom(r.Context()).user.ID

	s.mu.Lock()
	defer s.mu.Unlock()
	sub, ok := s.subs[userID]
	if !ok || sub.Tier == domain.TierFree {
		writeError(w, http.StatusBadRequest, "NO_SUBSCRIPTION", "No active subscription to cancel")
		return
	}
	now := time.Now().UTC()
	sub.Tier = domain.TierFree
	sub.Status = domain.StatusActive
	sub.CancelledAt = &now
	sub.UpdatedAt = now

	writeMessage(w, "Subscription cancelled")
}

func (s *Server) handleSavedPlayers(w http.ResponseWriter, r *http.Request) {
	userID := userFrom(r.Context()).user.ID

	s.mu.RLock()
	out := make([]domain.Player, 0, len(s.saved[userID]))
	for _, id := range s.saved[userID] {
		if i := s.findPlayerLocked(id); i >= 0 {
			out = append(out, s.players[i])
		}
	}
	s.mu.RUnlock()

	writeData(w, http.StatusOK, map[string]any{"players": out})
}

func (s *Server) handleSavePlayer(w http.ResponseWriter, r *http.Request) {
	if !s.requireTier(w, r, domain.TierScout) {
		return
	}
	var req struct {
		PlayerID string `json:"player_id"`
	}
	if !decode(w, r, &req) {
		return
	}
	userID := userFrom(r.Context()).user.ID

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.findPlayerLocked(req.PlayerID) < 0 {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Player not found")
		return
	}
	if !slices.Contains(s.saved[userID], req.PlayerID) {
		s.saved[userID] = append(s.saved[userID], req.PlayerID)
	}
	writeJSON(w, http.StatusCreated, map[string]any{"success": true, "message": "Player saved"})
}

func (s *Server) handleRemoveSavedPlayer(w http.ResponseWriter, r *http.Request) {
	userID := userFrom(r.Context()).user.ID
	id := r.PathValue("id")

	s.mu.Lock()
	defer s.mu.Unlock()
	i := slices.Index(s.saved[userID], id)
	if i < 0 {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Saved player not found")
		return
	}
	s.saved[userID] = slices.Delete(s.saved[userID], i, i+1)
	writeMessage(w, "Player removed from saved list")
}

func (s *Server) handleContacts(w http.ResponseWriter, r *http.Request) {
	userID := userFrom(r.Context()).user.ID

	s.mu.RLock()
	out := slices.Clone(s.contacts[userID])
	s.mu.RUnlock()
	if out == nil {
		out = []domain.ContactRequest{}
	}

	writeData(w, http.StatusOK, map[string]any{"contacts": out})
}

func (s *Server) handleRequestContact(w http.ResponseWriter, r *http.Request) {
	if !s.requireTier(w, r, domain.TierPro) {
		return
	}
	var req struct {
		PlayerID string `json:"player_id"`
		Message  string `json:"message"`
	}
	if !decode(w, r, &req) {
		return
	}
	userID := userFrom(r.Context()).user.ID

	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.findPlayerLocked(req.PlayerID)
	if i < 0 {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Player not found")
		return
	}
	contact := domain.ContactRequest{
		ID:         uuid.NewString(),
		UserID:     userID,
		PlayerID:   req.PlayerID,
		PlayerName: s.players[i].FullName(),
		Message:    req.Message,
		Status:     domain.ContactPending,
		CreatedAt:  time.Now().UTC(),
	}
	s.contacts[userID] = append(s.contacts[userID], contact)

	writeData(w, http.StatusCreated, map[string]any{"contact": contact})
}
