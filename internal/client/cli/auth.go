package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/notekeeper/internal/client/flows"
	"github.com/dmitrijs2005/notekeeper/internal/client/validation"
	"github.com/dmitrijs2005/notekeeper/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// readSecret reads a hidden value and wipes the buffer once it has been
// copied.
func (a *App) readSecret(prompt string) (string, error) {
	pw, err := getPassword(a.out, prompt)
	if err != nil {
		return "", err
	}
	defer common.WipeByteArray(pw)
	return string(pw), nil
}

// newRegistration replaces the current registration form, cancelling any
// redirect the previous one still had pending.
func (a *App) newRegistration() *flows.Registration {
	notify := flows.NotifierFunc(func(msg string) { a.println(msg) })
	r := flows.NewRegistration(a.authService, a.router, notify, a.log, a.config.RedirectDelay)

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.registration != nil {
		a.registration.Close()
	}
	a.registration = r
	return r
}

// Register shows the sign-up form, asks for the four fields and submits
// them. Field errors are printed in form order.
func (a *App) Register(ctx context.Context) error {
	a.router.Navigate(flows.RouteRegister)
	r := a.newRegistration()

	prompts := map[string]string{
		validation.FieldUsername:        "Enter username",
		validation.FieldEmail:           "Enter email",
		validation.FieldPassword:        "Enter password",
		validation.FieldConfirmPassword: "Confirm password",
	}

	for _, field := range validation.Fields {
		var (
			value string
			err   error
		)
		switch field {
		case validation.FieldPassword, validation.FieldConfirmPassword:
			value, err = a.readSecret(prompts[field])
		default:
			value, err = getSimpleText(a.reader, prompts[field], a.out)
		}
		if err != nil {
			return err
		}
		if err := r.SetField(field, value); err != nil {
			return err
		}
		r.Blur(field)
	}

	err := r.Submit(ctx)
	var verr *flows.ValidationError
	if errors.As(err, &verr) {
		visible := r.View().VisibleErrors()
		for _, field := range validation.Fields {
			if msg, ok := visible[field]; ok {
				a.println(" - " + msg)
			}
		}
	}
	return err
}

// Login asks for email and password and submits them. On success the
// router moves to the dashboard; failures are reported by the flow.
func (a *App) Login(ctx context.Context) error {
	a.router.Navigate(flows.RouteLogin)

	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := a.readSecret("Enter password")
	if err != nil {
		return err
	}

	if err := a.login.SetField(validation.FieldEmail, email); err != nil {
		return err
	}
	if err := a.login.SetField(validation.FieldPassword, password); err != nil {
		return err
	}
	return a.login.Submit(ctx)
}

// Logout drops the session. It is safe to call when nobody is logged in.
func (a *App) Logout(ctx context.Context) error {
	if err := a.gate.Logout(ctx); err != nil {
		a.log.Error(ctx, "logout failed", "error", err)
		a.println("Logout failed")
		return err
	}
	a.println("Logged out")
	return nil
}
