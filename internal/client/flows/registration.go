package flows

import (
	"context"
	"fmt"
	"maps"
	"sync"
	"time"

	"github.com/dmitrijs2005/notekeeper/internal/client/client"
	"github.com/dmitrijs2005/notekeeper/internal/client/services"
	"github.com/dmitrijs2005/notekeeper/internal/client/validation"
	"github.com/dmitrijs2005/notekeeper/internal/logging"
)

const (
	MsgFixFields            = "Please fill in all required fields correctly"
	MsgRegistrationComplete = "Registration successful! Redirecting to login..."
)

// DefaultRedirectDelay is how long the success message stays on screen.
const DefaultRedirectDelay = 2 * time.Second

type stopper interface {
	Stop() bool
}

// afterFunc schedules f once after d; tests swap it for a manual clock.
var afterFunc = func(d time.Duration, f func()) stopper {
	return time.AfterFunc(d, f)
}

// RegistrationView is a snapshot of the registration form for rendering.
type RegistrationView struct {
	Form    validation.RegistrationForm
	Errors  validation.ErrorMap
	Touched map[string]bool
	State   State
	Success bool
	Message string
}

// VisibleErrors returns the errors of touched fields only.
func (v RegistrationView) VisibleErrors() validation.ErrorMap {
	out := validation.ErrorMap{}
	for f, msg := range v.Errors {
		if v.Touched[f] {
			out[f] = msg
		}
	}
	return out
}

// Registration drives the sign-up form:
// Editing -> Validating -> Submitting -> Success | Failed.
type Registration struct {
	auth   services.AuthService
	nav    Navigator
	notify Notifier
	log    logging.Logger
	delay  time.Duration

	mu       sync.Mutex
	form     validation.RegistrationForm
	errs     validation.ErrorMap
	touched  map[string]bool
	state    State
	success  bool
	message  string
	redirect stopper
	closed   bool
}

// NewRegistration returns an empty form. A non-positive delay means
// DefaultRedirectDelay.
func NewRegistration(auth services.AuthService, nav Navigator, notify Notifier, log logging.Logger, delay time.Duration) *Registration {
	if delay <= 0 {
		delay = DefaultRedirectDelay
	}
	return &Registration{
		auth:    auth,
		nav:     nav,
		notify:  notify,
		log:     log,
		delay:   delay,
		errs:    validation.ErrorMap{},
		touched: map[string]bool{},
	}
}

// SetField updates one field and drops its error. Editing a failed form
// puts it back into Editing.
func (r *Registration) SetField(name, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.form.Set(name, value) {
		return fmt.Errorf("unknown field %q", name)
	}
	delete(r.errs, name)
	if r.state == StateFailed {
		r.state = StateEditing
	}
	return nil
}

// Blur marks a field as touched so its error becomes visible.
func (r *Registration) Blur(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.touched[name] = true
}

// Submit validates the form and, when it is clean, registers the user. On
// success exactly one redirect to the login route is scheduled. Submitting
// again after success is a no-op.
func (r *Registration) Submit(ctx context.Context) error {
	r.mu.Lock()
	switch r.state {
	case StateSubmitting:
		r.mu.Unlock()
		return ErrSubmitInProgress
	case StateSuccess:
		r.mu.Unlock()
		return nil
	}

	r.state = StateValidating
	r.errs = validation.ValidateRegistrationForm(r.form)
	if !r.errs.Valid() {
		for _, f := range validation.Fields {
			r.touched[f] = true
		}
		r.state = StateEditing
		verr := &ValidationError{Errors: maps.Clone(r.errs)}
		r.mu.Unlock()

		r.notify.Notify(MsgFixFields)
		return verr
	}

	r.state = StateSubmitting
	r.message = ""
	form := r.form
	r.mu.Unlock()

	_, err := r.auth.Register(ctx, form)

	r.mu.Lock()
	if err != nil {
		r.state = StateFailed
		r.success = false
		r.message = userMessage(err, client.MsgRegistrationFailed)
		msg := r.message
		r.mu.Unlock()

		r.notify.Notify(msg)
		return err
	}

	r.state = StateSuccess
	r.success = true
	r.message = ""
	if !r.closed {
		r.redirect = afterFunc(r.delay, r.redirectToLogin)
	}
	r.mu.Unlock()

	r.log.Info(ctx, "registration complete, redirect scheduled", "delay", r.delay)
	r.notify.Notify(MsgRegistrationComplete)
	return nil
}

func (r *Registration) redirectToLogin() {
	r.mu.Lock()
	closed := r.closed
	r.redirect = nil
	r.mu.Unlock()

	if !closed {
		r.nav.Navigate(RouteLogin)
	}
}

// View returns a copy of the current form state.
func (r *Registration) View() RegistrationView {
	r.mu.Lock()
	defer r.mu.Unlock()
	return RegistrationView{
		Form:    r.form,
		Errors:  maps.Clone(r.errs),
		Touched: maps.Clone(r.touched),
		State:   r.state,
		Success: r.success,
		Message: r.message,
	}
}

// Close cancels a pending redirect. The form must not be used afterwards.
func (r *Registration) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	if r.redirect != nil {
		r.redirect.Stop()
		r.redirect = nil
	}
}
