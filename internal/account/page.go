package account

import (
	"context"
	"sync"
)

// Phase is the lifecycle state of a profile page.
type Phase int

const (
	PhaseLoading Phase = iota
	PhaseReady
	PhaseNoData
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseReady:
		return "ready"
	case PhaseNoData:
		return "no-data"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

const noProfileMessage = "No profile data found"

// State is a snapshot of a page.
type State struct {
	Phase   Phase
	Profile *Profile
	Message string
}

// Page tracks the profile shown for the signed-in identity. It refetches
// only when the email or role changes.
type Page struct {
	fetcher Fetcher

	mu     sync.Mutex
	email  string
	role   Role
	synced bool
	state  State
}

func NewPage(f Fetcher) *Page {
	return &Page{fetcher: f, state: State{Phase: PhaseLoading}}
}

// State returns the current snapshot.
func (p *Page) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Sync brings the page up to date for the identity and returns the resulting state.
func (p *Page) Sync(ctx context.Context, email string, role Role) State {
	p.mu.Lock()
	if p.synced && p.email == email && p.role == role && p.state.Phase != PhaseLoading {
		s := p.state
		p.mu.Unlock()
		return s
	}
	p.email, p.role, p.synced = email, role, true
	p.state = State{Phase: PhaseLoading}
	p.mu.Unlock()

	next := p.load(ctx, email, role)

	p.mu.Lock()
	defer p.mu.Unlock()
	// identity moved on while we were fetching
	if p.email != email || p.role != role {
		return p.state
	}
	p.state = next
	return next
}

func (p *Page) load(ctx context.Context, email string, role Role) State {
	if email == "" {
		return State{Phase: PhaseFailed, Message: ErrNoEmail.Error()}
	}
	profile, err := p.fetcher.FetchProfile(ctx, email, role)
	if err != nil {
		return State{Phase: PhaseFailed, Message: err.Error()}
	}
	if profile == nil {
		return State{Phase: PhaseNoData, Message: noProfileMessage}
	}
	return State{Phase: PhaseReady, Profile: profile}
}
