package flows

import (
	"context"
	"fmt"
	"maps"
	"strings"
	"sync"

	"github.com/dmitrijs2005/notekeeper/internal/client/client"
	"github.com/dmitrijs2005/notekeeper/internal/client/services"
	"github.com/dmitrijs2005/notekeeper/internal/client/validation"
	"github.com/dmitrijs2005/notekeeper/internal/logging"
)

// LoginView is a snapshot of the login form for rendering.
type LoginView struct {
	Email   string
	State   State
	Message string
	Errors  validation.ErrorMap
}

// Login drives the sign-in form: Editing -> Submitting -> Authenticated | Failed.
// Only presence of both fields is checked locally; everything else is up to
// the server.
type Login struct {
	auth   services.AuthService
	nav    Navigator
	notify Notifier
	log    logging.Logger

	mu      sync.Mutex
	creds   client.Credentials
	state   State
	message string
	errs    validation.ErrorMap
}

func NewLogin(auth services.AuthService, nav Navigator, notify Notifier, log logging.Logger) *Login {
	return &Login{auth: auth, nav: nav, notify: notify, log: log, errs: validation.ErrorMap{}}
}

// SetField accepts validation.FieldEmail and validation.FieldPassword.
func (l *Login) SetField(name, value string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	switch name {
	case validation.FieldEmail:
		l.creds.Email = value
	case validation.FieldPassword:
		l.creds.Password = value
	default:
		return fmt.Errorf("unknown field %q", name)
	}
	delete(l.errs, name)
	if l.state == StateFailed {
		l.state = StateEditing
	}
	return nil
}

// Submit sends the credentials. On success the session is stored by the
// auth service and the UI moves to the dashboard. On failure the form keeps
// its values.
func (l *Login) Submit(ctx context.Context) error {
	l.mu.Lock()
	if l.state == StateSubmitting {
		l.mu.Unlock()
		return ErrSubmitInProgress
	}

	l.errs = validation.ErrorMap{}
	if strings.TrimSpace(l.creds.Email) == "" {
		l.errs[validation.FieldEmail] = validation.MsgEmailRequired
	}
	if l.creds.Password == "" {
		l.errs[validation.FieldPassword] = validation.MsgPasswordRequired
	}
	if !l.errs.Valid() {
		verr := &ValidationError{Errors: maps.Clone(l.errs)}
		msg := l.errs[validation.FieldEmail]
		if msg == "" {
			msg = l.errs[validation.FieldPassword]
		}
		l.mu.Unlock()

		l.notify.Notify(msg)
		return verr
	}

	l.state = StateSubmitting
	l.message = ""
	creds := l.creds
	l.mu.Unlock()

	rec, err := l.auth.Login(ctx, creds)

	l.mu.Lock()
	if err != nil {
		l.state = StateFailed
		l.message = userMessage(err, client.MsgLoginFailed)
		msg := l.message
		l.mu.Unlock()

		l.notify.Notify(msg)
		return err
	}
	l.state = StateAuthenticated
	l.creds.Password = ""
	l.mu.Unlock()

	l.log.Debug(ctx, "login flow authenticated", "username", rec.Username)
	l.nav.Navigate(RouteDashboard)
	return nil
}

// Reset returns an authenticated form to an empty Editing state, used when
// the login route is shown again after a logout.
func (l *Login) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.state == StateSubmitting {
		return
	}
	l.creds = client.Credentials{}
	l.state = StateEditing
	l.message = ""
	l.errs = validation.ErrorMap{}
}

func (l *Login) View() LoginView {
	l.mu.Lock()
	defer l.mu.Unlock()
	return LoginView{
		Email:   l.creds.Email,
		State:   l.state,
		Message: l.message,
		Errors:  maps.Clone(l.errs),
	}
}
