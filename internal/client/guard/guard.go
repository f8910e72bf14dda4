// Package guard decides whether navigation to a protected view is admitted,
// deferred, or redirected to the login entry point.
package guard

import (
	"sync"

	"github.com/anandk87/filetrack/internal/client/models"
)

// SessionState is the slice of the session manager the guard consumes.
type SessionState interface {
	IsLoading() bool
	Current() (*models.Session, bool)
}

type Action int

const (
	// Grant admits the navigation.
	Grant Action = iota
	// Defer means the session is still bootstrapping: render a neutral
	// waiting state and do not redirect.
	Defer
	// Redirect sends the visitor to the login route.
	Redirect
)

type Decision struct {
	Action Action
	// To is the redirect target when Action is Redirect.
	To string
}

type Guard struct {
	session    SessionState
	loginRoute string

	mu      sync.Mutex
	pending string
}

func New(session SessionState, loginRoute string) *Guard {
	return &Guard{session: session, loginRoute: loginRoute}
}

// Admit evaluates navigation to route. Unauthenticated attempts are
// redirected to the login route and the originally requested destination is
// recorded for a post-login return.
func (g *Guard) Admit(route string) Decision {
	if g.session.IsLoading() {
		return Decision{Action: Defer}
	}
	if _, ok := g.session.Current(); ok {
		return Decision{Action: Grant}
	}

	g.mu.Lock()
	g.pending = route
	g.mu.Unlock()
	return Decision{Action: Redirect, To: g.loginRoute}
}

// PendingDestination returns the most recent route an unauthenticated
// visitor was turned away from, or "" when there is none. It is recorded so
// a login flow can send the user back, but it is never consumed
// automatically.
func (g *Guard) PendingDestination() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.pending
}

// ClearPendingDestination forgets the recorded destination, e.g. after a
// login flow chose to use (or ignore) it.
func (g *Guard) ClearPendingDestination() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.pending = ""
}
