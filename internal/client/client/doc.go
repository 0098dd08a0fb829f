// Package client talks to the notes API.
//
// # Overview
//
// Client is the transport-agnostic contract used by the services layer:
// Login and Register. HTTPClient implements it with JSON over HTTP against
// two endpoints below a configurable base URL:
//
//	POST {base}/login/      {email, password}
//	POST {base}/register/   {username, email, password, confirm_password}
//
// Every call is a single attempt. There is no retry, backoff or timeout
// beyond what the caller's context imposes.
//
// # Error Handling
//
// All failures are returned as *AuthError, whose Error method yields the
// message meant for the user: the server-provided one when the body carries
// it, otherwise "Login failed" or "Registration failed". The wrapped cause
// can be matched with errors.Is: ErrUnavailable (transport), ErrRejected
// (4xx/5xx), ErrInvalidResponse (2xx without the expected fields).
package client
