package client

import "errors"

var (
	ErrUnavailable     = errors.New("server unavailable")
	ErrRejected        = errors.New("request rejected")
	ErrInvalidResponse = errors.New("invalid response")
)

// Messages shown when the server does not provide one.
const (
	MsgLoginFailed          = "Login failed"
	MsgRegistrationFailed   = "Registration failed"
	MsgInvalidLoginResponse = "Invalid login response"
)

// AuthError is returned by every failed Login or Register call.
type AuthError struct {
	// Op is "login" or "register".
	Op string
	// Status is the HTTP status code, 0 when no response was received.
	Status int
	// Message is meant for the user.
	Message string
	Err     error
}

func (e *AuthError) Error() string {
	return e.Message
}

func (e *AuthError) Unwrap() error {
	return e.Err
}
