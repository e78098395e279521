package mockapi

import (
	"fmt"
	"scout-client/internal/domain"
	"time"

	"github.com/google/uuid"
)

const (
	DemoEmail    = "scout@example.com"
	DemoPassword = "password123"
	AdminEmail   = "admin@example.com"
)

var seedNames = []struct {
	first, last, position, country, city string
}{
	{"Kwame", "Mensah", "Central Midfielder", "Ghana", "Kumasi"},
	{"Tunde", "Adeyemi", "Striker", "Nigeria", "Lagos"},
	{"Moussa", "Diallo", "Winger", "Senegal", "Dakar"},
	{"Brian", "Otieno", "Goalkeeper", "Kenya", "Nairobi"},
	{"Youssef", "El Idrissi", "Center Back", "Morocco", "Casablanca"},
	{"Sipho", "Dlamini", "Full Back", "South Africa", "Durban"},
	{"Ibrahim", "Traoré", "Attacking Midfielder", "Mali", "Bamako"},
	{"Chinedu", "Okafor", "Defensive Midfielder", "Nigeria", "Enugu"},
	{"Samuel", "Boateng", "Forward", "Ghana", "Accra"},
	{"Thabo", "Nkosi", "Wing Back", "South Africa", "Pretoria"},
	{"Amadou", "Sow", "Striker", "Senegal", "Thiès"},
	{"Emeka", "Eze", "Winger", "Nigeria", "Abuja"},
}

// Seed adds demo accounts, an academy and players. The demo scout is on
// the pro tier.
func (s *Server) Seed() error {
	if _, err := s.AddUser(DemoEmail, DemoPassword, "Demo", "Scout", domain.RoleScout, domain.TierPro); err != nil {
		return fmt.Errorf("failed to seed demo scout: %w", err)
	}
	if _, err := s.AddUser(AdminEmail, DemoPassword, "Site", "Admin", domain.RoleAdmin, domain.TierClub); err != nil {
		return fmt.Errorf("failed to seed admin: %w", err)
	}

	now := time.Now().UTC()
	academy := domain.Academy{
		ID:          uuid.NewString(),
		Name:        "Right to Dream",
		Country:     "Ghana",
		City:        "Old Akrade",
		FoundedYear: 1999,
		IsVerified:  true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	tournamentID := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.academies = append(s.academies, academy)
	for i, n := range seedNames {
		p := domain.Player{
			ID:                 uuid.NewString(),
			FirstName:          n.first,
			LastName:           n.last,
			DateOfBirth:        now.AddDate(-(14 + i%6), 0, -i).Format(time.DateOnly),
			Position:           n.position,
			Country:            n.country,
			City:               n.city,
			VerificationStatus: "pending",
			CreatedAt:          now,
			UpdatedAt:          now,
		}
		if i%2 == 0 {
			p.IsVerified = true
			p.VerificationStatus = "verified"
		}
		if i%3 == 0 {
			p.TournamentID = tournamentID
			p.TournamentYear = now.Year()
		}
		if i%4 == 0 {
			p.AcademyID = academy.ID
			p.AcademyName = academy.Name
		}
		s.players = append(s.players, p)
	}
	s.logger.Info().Int("players", len(s.players)).Str("demo_user", DemoEmail).Msg("mock backend seeded")
	return nil
}

// Players returns a copy of the stored players.
func (s *Server) Players() []domain.Player {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Player, len(s.players))
	copy(out, s.players)
	return out
}
