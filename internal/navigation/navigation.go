package navigation

import (
	"net/url"
	"scout-client/internal/observe"
	"sync"

	"github.com/rs/zerolog"
)

const (
	LoginPath     = "/auth/login"
	DashboardPath = "/dashboard"
	DiscoverPath  = "/discover"
	PricingPath   = "/pricing"

	RedirectParam = "redirect"
)

type Destination struct {
	Path  string
	Query url.Values
}

func (d Destination) String() string {
	if len(d.Query) == 0 {
		return d.Path
	}
	return d.Path + "?" + d.Query.Encode()
}

func To(path string) Destination {
	return Destination{Path: path}
}

// Login points at the login entry point. A non-empty returnTo is carried
// as the redirect parameter.
func Login(returnTo string) Destination {
	d := Destination{Path: LoginPath}
	if returnTo != "" {
		d.Query = url.Values{RedirectParam: []string{returnTo}}
	}
	return d
}

type Navigator interface {
	Navigate(dest Destination)
}

// Recorder is a Navigator that keeps the navigation history and notifies
// subscribers. Whatever renders the application decides what a
// navigation means.
type Recorder struct {
	mu      sync.Mutex
	history []Destination
	hub     observe.Hub[Destination]
	logger  zerolog.Logger
}

func NewRecorder(logger zerolog.Logger) *Recorder {
	return &Recorder{logger: logger}
}

func (r *Recorder) Navigate(dest Destination) {
	r.mu.Lock()
	r.history = append(r.history, dest)
	r.mu.Unlock()

	r.logger.Debug().Str("destination", dest.String()).Msg("navigate")
	r.hub.Publish(dest)
}

// Last returns the most recent destination.
func (r *Recorder) Last() (Destination, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.history) == 0 {
		return Destination{}, false
	}
	return r.history[len(r.history)-1], true
}

func (r *Recorder) History() []Destination {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Destination, len(r.history))
	copy(out, r.history)
	return out
}

func (r *Recorder) Subscribe(fn func(Destination)) func() {
	return r.hub.Subscribe(fn)
}
