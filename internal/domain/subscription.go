package domain

import (
	"fmt"
	"time"
)

// Tier is a subscription level. Tiers are totally ordered by declaration.
type Tier string

const (
	TierFree  Tier = "free"
	TierScout Tier = "scout"
	TierPro   Tier = "pro"
	TierClub  Tier = "club"
)

var tierOrder = []Tier{TierFree, TierScout, TierPro, TierClub}

// Tiers returns every tier, lowest first.
func Tiers() []Tier {
	out := make([]Tier, len(tierOrder))
	copy(out, tierOrder)
	return out
}

// Order is the tier's position in the ordering, or -1 when unknown.
func (t Tier) Order() int {
	for i, v := range tierOrder {
		if v == t {
			return i
		}
	}
	return -1
}

// Satisfies reports whether t grants access to something requiring required.
func (t Tier) Satisfies(required Tier) bool {
	return t.Order() >= required.Order()
}

func (t Tier) Valid() bool {
	return t.Order() >= 0
}

func ParseTier(s string) (Tier, error) {
	t := Tier(s)
	if !t.Valid() {
		return "", fmt.Errorf("unknown subscription tier %q", s)
	}
	return t, nil
}

type SubscriptionStatus string

const (
	StatusActive    SubscriptionStatus = "active"
	StatusCancelled SubscriptionStatus = "cancelled"
	StatusPastDue   SubscriptionStatus = "past_due"
	StatusInactive  SubscriptionStatus = "inactive"
)

type Subscription struct {
	ID                 string             `json:"id"`
	UserID             string             `json:"user_id"`
	Tier               Tier               `json:"tier"`
	Status             SubscriptionStatus `json:"status"`
	CurrentPeriodStart *time.Time         `json:"current_period_start,omitempty"`
	CurrentPeriodEnd   *time.Time         `json:"current_period_end,omitempty"`
	CancelAtPeriodEnd  bool               `json:"cancel_at_period_end"`
	CancelledAt        *time.Time         `json:"cancelled_at,omitempty"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
}

type Plan struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Tier         Tier     `json:"tier"`
	PriceMonthly int      `json:"price_monthly"`
	PriceYearly  int      `json:"price_yearly"`
	Features     []string `json:"features"`
	IsPopular    bool     `json:"is_popular,omitempty"`
}
