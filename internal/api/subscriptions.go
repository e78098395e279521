package api

import (
	"context"
	"scout-client/internal/domain"
)

type SubscriptionService struct {
	gw *Gateway
}

func NewSubscriptionService(gw *Gateway) *SubscriptionService {
	return &SubscriptionService{gw: gw}
}

type planList struct {
	Plans []domain.Plan `json:"plans"`
	Tiers []domain.Plan `json:"tiers"`
}

// Plans lists the purchasable plans. The backend names the list "tiers".
func (s *SubscriptionService) Plans(ctx context.Context) ([]domain.Plan, error) {
	data, err := unwrap(Get[Envelope[planList]](ctx, s.gw, "/subscriptions/plans", nil, false))
	if err != nil {
		return nil, err
	}
	if len(data.Plans) > 0 {
		return data.Plans, nil
	}
	return data.Tiers, nil
}

type checkoutSession struct {
	URL         string `json:"url"`
	CheckoutURL string `json:"checkout_url"`
	SessionID   string `json:"session_id,omitempty"`
}

func (s *SubscriptionService) Me(ctx context.Context) (*domain.Subscription, error) {
	sub, err := unwrap(Get[Envelope[domain.Subscription]](ctx, s.gw, "/subscriptions/me", nil, true))
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// Checkout starts a payment session for tier and returns its URL.
func (s *SubscriptionService) Checkout(ctx context.Context, tier domain.Tier) (string, error) {
	data, err := unwrap(Post[Envelope[checkoutSession]](ctx, s.gw, "/subscriptions/checkout", map[string]domain.Tier{"tier": tier}, true))
	if err != nil {
		return "", err
	}
	if data.URL != "" {
		return data.URL, nil
	}
	return data.CheckoutURL, nil
}

func (s *SubscriptionService) Cancel(ctx context.Context) error {
	_, err := unwrap(Post[Envelope[struct{}]](ctx, s.gw, "/subscriptions/cancel", nil, true))
	return err
}
