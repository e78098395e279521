package domain

import (
	"time"
)

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleScout  Role = "scout"
	RolePlayer Role = "player"
)

type User struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	Role          Role      `json:"role"`
	EmailVerified bool      `json:"email_verified"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at,omitempty"`
}

// AuthResponse is returned by login, register and refresh. Refresh
// responses omit the user.
type AuthResponse struct {
	User         *User  `json:"user,omitempty"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
}

type RegisterRequest struct {
	Email            string `json:"email"`
	Password         string `json:"password"`
	FirstName        string `json:"first_name"`
	LastName         string `json:"last_name"`
	OrganizationName string `json:"organization_name,omitempty"`
	OrganizationType string `json:"organization_type,omitempty"`
}

type Player struct {
	ID                 string      `json:"id"`
	UserID             string      `json:"user_id,omitempty"`
	FirstName          string      `json:"first_name"`
	LastName           string      `json:"last_name"`
	DateOfBirth        string      `json:"date_of_birth"`
	Position           string      `json:"position"`
	PreferredFoot      string      `json:"preferred_foot,omitempty"`
	HeightCm           int         `json:"height_cm,omitempty"`
	WeightKg           int         `json:"weight_kg,omitempty"`
	Country            string      `json:"country"`
	State              string      `json:"state,omitempty"`
	City               string      `json:"city,omitempty"`
	SchoolName         string      `json:"school_name,omitempty"`
	VerificationStatus string      `json:"verification_status"`
	IsVerified         bool        `json:"is_verified,omitempty"`
	ProfilePhotoURL    string      `json:"profile_photo_url,omitempty"`
	ThumbnailURL       string      `json:"thumbnail_url,omitempty"`
	TournamentID       string      `json:"tournament_id,omitempty"`
	TournamentYear     int         `json:"tournament_year,omitempty"`
	AcademyID          string      `json:"academy_id,omitempty"`
	AcademyName        string      `json:"academy_name,omitempty"`
	VideoCount         int         `json:"video_count,omitempty"`
	CreatedAt          time.Time   `json:"created_at"`
	UpdatedAt          time.Time   `json:"updated_at"`
	Tournament         *Tournament `json:"tournament,omitempty"`
	Academy            *Academy    `json:"academy,omitempty"`
}

func (p Player) FullName() string {
	return p.FirstName + " " + p.LastName
}

type Tournament struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Year      int       `json:"year"`
	Location  string    `json:"location,omitempty"`
	Country   string    `json:"country,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type Academy struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Country     string    `json:"country"`
	State       string    `json:"state,omitempty"`
	City        string    `json:"city,omitempty"`
	Address     string    `json:"address,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	Email       string    `json:"email,omitempty"`
	Website     string    `json:"website,omitempty"`
	FoundedYear int       `json:"founded_year,omitempty"`
	LogoURL     string    `json:"logo_url,omitempty"`
	PlayerCount int       `json:"player_count,omitempty"`
	IsVerified  bool      `json:"is_verified"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

type SavedPlayer struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	PlayerID  string    `json:"player_id"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	Player    *Player   `json:"player,omitempty"`
}

type ContactStatus string

const (
	ContactPending   ContactStatus = "pending"
	ContactForwarded ContactStatus = "forwarded"
	ContactResponded ContactStatus = "responded"
)

type ContactRequest struct {
	ID         string        `json:"id"`
	UserID     string        `json:"user_id,omitempty"`
	PlayerID   string        `json:"player_id"`
	PlayerName string        `json:"player_name,omitempty"`
	Message    string        `json:"message,omitempty"`
	Status     ContactStatus `json:"status"`
	CreatedAt  time.Time     `json:"created_at"`
}
