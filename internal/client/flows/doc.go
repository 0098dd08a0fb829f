// Package flows holds the interactive state of the client: the registration
// and login forms, the note draft dashboard and the session-aware gate that
// chooses between the Login and Logout affordances.
//
// Flows are UI-agnostic. They talk to the outside world through Navigator
// and Notifier, and to the server through services.AuthService. All types are
// safe for concurrent use; network calls run on the caller's goroutine.
package flows
