// Package guard decides whether a route may be entered and where to send
// the user otherwise.
package guard

import (
	"context"
	"scout-client/internal/domain"
	"scout-client/internal/navigation"

	"github.com/rs/zerolog"
)

// Route is the navigation target being checked.
type Route struct {
	FullPath     string
	RequiredTier domain.Tier
}

// Decision is the outcome of a guard. A nil Redirect allows the route.
type Decision struct {
	Redirect *navigation.Destination
}

func (d Decision) Allowed() bool {
	return d.Redirect == nil
}

func Allow() Decision {
	return Decision{}
}

func RedirectTo(dest navigation.Destination) Decision {
	return Decision{Redirect: &dest}
}

// CheckTier allows when nothing is required or current satisfies required,
// otherwise it redirects to pricing.
func CheckTier(required, current domain.Tier) Decision {
	if required == "" || current.Satisfies(required) {
		return Allow()
	}
	return RedirectTo(navigation.To(navigation.PricingPath))
}

type Session interface {
	IsAuthenticated() bool
	IsAdmin() bool
	Initialized() bool
	Restore(ctx context.Context)
}

type TierSource interface {
	Ensure(ctx context.Context) error
	Tier() domain.Tier
}

type Guard func(ctx context.Context, route Route) Decision

type Guards struct {
	sess   Session
	tiers  TierSource
	logger zerolog.Logger
}

func New(sess Session, tiers TierSource, logger zerolog.Logger) *Guards {
	return &Guards{sess: sess, tiers: tiers, logger: logger}
}

// RequireAuth sends anonymous users to login, remembering where they were
// going unless that was the dashboard.
func (g *Guards) RequireAuth(_ context.Context, route Route) Decision {
	if g.sess.IsAuthenticated() {
		return Allow()
	}
	returnTo := route.FullPath
	if returnTo == navigation.DashboardPath {
		returnTo = ""
	}
	return RedirectTo(navigation.Login(returnTo))
}

func (g *Guards) Guest(_ context.Context, _ Route) Decision {
	if g.sess.IsAuthenticated() {
		return RedirectTo(navigation.To(navigation.DashboardPath))
	}
	return Allow()
}

func (g *Guards) Admin(_ context.Context, _ Route) Decision {
	if !g.sess.IsAuthenticated() {
		return RedirectTo(navigation.Login(""))
	}
	if !g.sess.IsAdmin() {
		return RedirectTo(navigation.To(navigation.DashboardPath))
	}
	return Allow()
}

func (g *Guards) RedirectAuthenticated(ctx context.Context, _ Route) Decision {
	g.restore(ctx)
	if g.sess.IsAuthenticated() {
		return RedirectTo(navigation.To(navigation.DiscoverPath))
	}
	return Allow()
}

// Subscription requires a session and then the route's tier. A
// subscription that cannot be loaded counts as free.
func (g *Guards) Subscription(ctx context.Context, route Route) Decision {
	g.restore(ctx)
	if !g.sess.IsAuthenticated() {
		return RedirectTo(navigation.Login(""))
	}
	if route.RequiredTier == "" {
		return Allow()
	}
	if err := g.tiers.Ensure(ctx); err != nil {
		g.logger.Warn().Err(err).Str("path", route.FullPath).Msg("failed to load subscription for route")
	}
	d := CheckTier(route.RequiredTier, g.tiers.Tier())
	if !d.Allowed() {
		g.logger.Debug().
			Str("path", route.FullPath).
			Str("required", string(route.RequiredTier)).
			Str("current", string(g.tiers.Tier())).
			Msg("tier too low, redirecting")
	}
	return d
}

func (g *Guards) restore(ctx context.Context) {
	if !g.sess.Initialized() {
		g.sess.Restore(ctx)
	}
}

// Chain runs guards in order and returns the first redirect.
func Chain(guards ...Guard) Guard {
	return func(ctx context.Context, route Route) Decision {
		for _, guard := range guards {
			if d := guard(ctx, route); !d.Allowed() {
				return d
			}
		}
		return Allow()
	}
}

// Enforce runs guard and follows its redirect. It reports whether the
// route was allowed.
func Enforce(ctx context.Context, guard Guard, route Route, nav navigation.Navigator) bool {
	d := guard(ctx, route)
	if d.Allowed() {
		return true
	}
	nav.Navigate(*d.Redirect)
	return false
}
