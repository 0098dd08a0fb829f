package session

// Persisted key names.
const (
	KeyToken    = "token"
	KeyUserID   = "user_id"
	KeyUsername = "username"
)

// LegacyKeys were written by an older token scheme. They are only ever
// deleted, on logout.
var LegacyKeys = []string{"access", "refresh"}

// Record is the authenticated identity returned by a successful login.
type Record struct {
	Token    string
	UserID   string
	Username string
}
