// Package guard decides whether a protected page renders, waits, or sends
// the visitor to sign in.
package guard

import (
	"sync"

	"usermgmt/portal-service/internal/models"
	"usermgmt/portal-service/internal/nav"
)

type State int

const (
	Checking State = iota
	Authenticated
	Unauthenticated
)

func (s State) String() string {
	switch s {
	case Checking:
		return "checking"
	case Authenticated:
		return "authenticated"
	case Unauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

type Render int

const (
	RenderLoading Render = iota
	RenderRedirecting
	RenderContent
)

// Evaluate maps a session snapshot to a guard state. Loading always wins.
func Evaluate(user *models.User, loading bool) State {
	switch {
	case loading:
		return Checking
	case user == nil:
		return Unauthenticated
	default:
		return Authenticated
	}
}

// Guard is the state machine behind a protected layout. Navigation to the
// login path happens only on the transition into Unauthenticated, which is
// terminal.
type Guard struct {
	mu        sync.Mutex
	navigator nav.Navigator
	loginPath string
	state     State
}

func New(navigator nav.Navigator, loginPath string) *Guard {
	if loginPath == "" {
		loginPath = nav.LoginPath
	}
	return &Guard{navigator: navigator, loginPath: loginPath, state: Checking}
}

func (g *Guard) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Observe feeds the latest session snapshot and returns what to render.
func (g *Guard) Observe(user *models.User, loading bool) Render {
	g.mu.Lock()
	if g.state == Unauthenticated {
		g.mu.Unlock()
		return RenderRedirecting
	}
	next := Evaluate(user, loading)
	g.state = next
	g.mu.Unlock()

	switch next {
	case Checking:
		return RenderLoading
	case Unauthenticated:
		if g.navigator != nil {
			g.navigator.Navigate(g.loginPath)
		}
		return RenderRedirecting
	default:
		return RenderContent
	}
}
