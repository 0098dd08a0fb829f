package flows

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/notekeeper/internal/client/services"
	"github.com/dmitrijs2005/notekeeper/internal/client/session"
	"github.com/dmitrijs2005/notekeeper/internal/logging"
)

const (
	AffordanceLogin  = "Login"
	AffordanceLogout = "Logout"
)

// Gate mirrors the authenticated flag of the session store and offers
// either a Login link or a Logout action.
type Gate struct {
	store *session.Store
	auth  services.AuthService
	nav   Navigator
	log   logging.Logger

	mu     sync.RWMutex
	authed bool
}

func NewGate(store *session.Store, auth services.AuthService, nav Navigator, log logging.Logger) *Gate {
	return &Gate{store: store, auth: auth, nav: nav, log: log, authed: store.IsAuthenticated()}
}

// Watch follows session changes until ctx is done. onChange, when not nil,
// is called with every new value.
func (g *Gate) Watch(ctx context.Context, onChange func(authenticated bool)) {
	ch, cancel := g.store.Subscribe()
	defer cancel()

	for {
		select {
		case <-ctx.Done():
			return
		case v, ok := <-ch:
			if !ok {
				return
			}
			g.mu.Lock()
			changed := g.authed != v
			g.authed = v
			g.mu.Unlock()

			if changed {
				g.log.Debug(ctx, "session state changed", "authenticated", v)
				if onChange != nil {
					onChange(v)
				}
			}
		}
	}
}

func (g *Gate) IsAuthenticated() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.authed
}

// Affordance is the label of the session control.
func (g *Gate) Affordance() string {
	if g.IsAuthenticated() {
		return AffordanceLogout
	}
	return AffordanceLogin
}

// Logout clears the session and goes to the login route. The local flag is
// updated right away instead of waiting for Watch.
func (g *Gate) Logout(ctx context.Context) error {
	if err := g.auth.Logout(ctx); err != nil {
		return err
	}
	g.mu.Lock()
	g.authed = false
	g.mu.Unlock()

	g.nav.Navigate(RouteLogin)
	return nil
}
