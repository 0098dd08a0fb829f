package flows

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/notekeeper/internal/client/client"
	"github.com/dmitrijs2005/notekeeper/internal/client/session"
	"github.com/dmitrijs2005/notekeeper/internal/client/validation"
)

// fakeAuth implements services.AuthService. When gate is set, calls block
// until it is closed.
type fakeAuth struct {
	store *session.Store
	gate  chan struct{}

	LoginRet    session.Record
	LoginErr    error
	RegisterErr error
	LogoutErr   error

	mu            sync.Mutex
	loginCalls    int
	registerCalls int
	lastForm      validation.RegistrationForm
	lastCreds     client.Credentials
}

func (f *fakeAuth) wait() {
	if f.gate != nil {
		<-f.gate
	}
}

func (f *fakeAuth) Login(ctx context.Context, creds client.Credentials) (session.Record, error) {
	f.mu.Lock()
	f.loginCalls++
	f.lastCreds = creds
	f.mu.Unlock()
	f.wait()

	if f.LoginErr != nil {
		return session.Record{}, f.LoginErr
	}
	if f.store != nil {
		if err := f.store.Set(ctx, f.LoginRet); err != nil {
			return session.Record{}, err
		}
	}
	return f.LoginRet, nil
}

func (f *fakeAuth) Register(ctx context.Context, form validation.RegistrationForm) (*client.RegisterResult, error) {
	f.mu.Lock()
	f.registerCalls++
	f.lastForm = form
	f.mu.Unlock()
	f.wait()

	if f.RegisterErr != nil {
		return nil, f.RegisterErr
	}
	return &client.RegisterResult{Username: form.Username}, nil
}

func (f *fakeAuth) Logout(ctx context.Context) error {
	if f.LogoutErr != nil {
		return f.LogoutErr
	}
	if f.store != nil {
		return f.store.Clear(ctx)
	}
	return nil
}

func (f *fakeAuth) calls() (login, register int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loginCalls, f.registerCalls
}

// recorder collects navigations and notifications.
type recorder struct {
	mu       sync.Mutex
	routes   []string
	messages []string
}

func (r *recorder) Navigate(route string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.routes = append(r.routes, route)
}

func (r *recorder) Notify(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, msg)
}

func (r *recorder) Routes() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.routes...)
}

func (r *recorder) Messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.messages...)
}

// manualClock replaces afterFunc; timers fire only on Advance.
type manualClock struct {
	mu     sync.Mutex
	now    time.Duration
	timers []*manualTimer
}

type manualTimer struct {
	at      time.Duration
	f       func()
	stopped bool
	fired   bool
}

func (t *manualTimer) Stop() bool {
	active := !t.stopped && !t.fired
	t.stopped = true
	return active
}

func installClock(t *testing.T) *manualClock {
	t.Helper()
	c := &manualClock{}
	old := afterFunc
	afterFunc = func(d time.Duration, f func()) stopper {
		c.mu.Lock()
		defer c.mu.Unlock()
		tm := &manualTimer{at: c.now + d, f: f}
		c.timers = append(c.timers, tm)
		return tm
	}
	t.Cleanup(func() { afterFunc = old })
	return c
}

func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now += d
	var due []func()
	for _, tm := range c.timers {
		if !tm.stopped && !tm.fired && tm.at <= c.now {
			tm.fired = true
			due = append(due, tm.f)
		}
	}
	c.mu.Unlock()

	for _, f := range due {
		f()
	}
}

func (c *manualClock) Scheduled() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.timers)
}

func validForm() validation.RegistrationForm {
	return validation.RegistrationForm{
		Username:        "bob",
		Email:           "bob@example.com",
		Password:        "Secret123!",
		ConfirmPassword: "Secret123!",
	}
}
