// Package services contains application services for the notes client.
// This file defines the authentication service: login, register and logout
// on top of the remote auth client and the session store.
package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/notekeeper/internal/client/client"
	"github.com/dmitrijs2005/notekeeper/internal/client/session"
	"github.com/dmitrijs2005/notekeeper/internal/client/validation"
	"github.com/dmitrijs2005/notekeeper/internal/logging"
)

// AuthService defines authentication operations for the UI flows.
//
// Contract:
//   - Login: authenticate against the server and replace the session with
//     the returned identity.
//   - Register: create a new user on the server. The session is untouched.
//   - Logout: drop the session. Safe to call when nobody is logged in.
//
// Remote failures are returned as *client.AuthError unchanged so callers
// can show their Message.
type AuthService interface {
	Login(ctx context.Context, creds client.Credentials) (session.Record, error)
	Register(ctx context.Context, form validation.RegistrationForm) (*client.RegisterResult, error)
	Logout(ctx context.Context) error
}

type authService struct {
	client client.Client
	store  *session.Store
	log    logging.Logger
}

// NewAuthService constructs an AuthService bound to the given API client and
// session store.
func NewAuthService(c client.Client, store *session.Store, log logging.Logger) AuthService {
	return &authService{client: c, store: store, log: log}
}

// Login authenticates and stores the session as one record.
func (a *authService) Login(ctx context.Context, creds client.Credentials) (session.Record, error) {
	res, err := a.client.Login(ctx, creds)
	if err != nil {
		a.log.Warn(ctx, "login failed", "email", creds.Email, "error", err)
		return session.Record{}, err
	}

	rec := session.Record{Token: res.AccessToken, UserID: res.UserID, Username: res.Username}
	if err := a.store.Set(ctx, rec); err != nil {
		a.log.Error(ctx, "session save failed", "error", err)
		return session.Record{}, fmt.Errorf("login: %w", err)
	}

	a.log.Info(ctx, "logged in", "user_id", rec.UserID, "username", rec.Username)
	return rec, nil
}

// Register forwards the form to the server as is.
func (a *authService) Register(ctx context.Context, form validation.RegistrationForm) (*client.RegisterResult, error) {
	res, err := a.client.Register(ctx, form)
	if err != nil {
		a.log.Warn(ctx, "registration failed", "username", form.Username, "error", err)
		return nil, err
	}
	a.log.Info(ctx, "registered", "username", form.Username)
	return res, nil
}

// Logout clears the session.
func (a *authService) Logout(ctx context.Context) error {
	if err := a.store.Clear(ctx); err != nil {
		a.log.Error(ctx, "session clear failed", "error", err)
		return fmt.Errorf("logout: %w", err)
	}
	a.log.Info(ctx, "logged out")
	return nil
}
