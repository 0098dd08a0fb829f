package client

import (
	"context"

	"github.com/dmitrijs2005/notekeeper/internal/client/validation"
)

// Credentials are the login form values.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResult is the identity granted by a successful login.
type LoginResult struct {
	AccessToken string
	UserID      string
	Username    string
}

// RegisterResult is what the server acknowledged on sign-up. Every field is
// optional.
type RegisterResult struct {
	Message  string
	UserID   string
	Username string
}

type Client interface {
	Login(ctx context.Context, creds Credentials) (*LoginResult, error)
	Register(ctx context.Context, form validation.RegistrationForm) (*RegisterResult, error)
}
