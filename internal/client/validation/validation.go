// Package validation holds the pure checks applied to the registration form
// before anything is sent to the API.
package validation

import (
	"regexp"
	"strings"
)

// Field names, as used in ErrorMap keys and in the API request body.
const (
	FieldUsername        = "username"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirm_password"
)

// Fields lists the registration fields in form order.
var Fields = []string{FieldUsername, FieldEmail, FieldPassword, FieldConfirmPassword}

const (
	MsgUsernameRequired  = "Username is required"
	MsgEmailRequired     = "Email is required"
	MsgEmailInvalid      = "Please enter a valid email address"
	MsgPasswordRequired  = "Password is required"
	MsgPasswordFormat    = "Password must be 8-15 characters long and contain only letters, numbers and !@#$%^&*"
	MsgConfirmRequired   = "Please confirm your password"
	MsgPasswordsMismatch = "Passwords do not match"
)

// emailChar excludes '@' and every character browsers treat as whitespace:
// ASCII space and controls \t\n\v\f\r, Unicode space separators, the line
// and paragraph separators and the BOM.
const emailChar = `[^@\s\x{0B}\p{Zs}\x{2028}\x{2029}\x{FEFF}]`

var (
	emailRe    = regexp.MustCompile(`^` + emailChar + `+@` + emailChar + `+\.` + emailChar + `+$`)
	passwordRe = regexp.MustCompile(`^[A-Za-z0-9!@#$%^&*]{8,15}$`)
)

// RegistrationForm is the sign-up input. ConfirmPassword is sent to the
// server unchanged.
type RegistrationForm struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// Get returns the value of the named field, "" for unknown names.
func (f RegistrationForm) Get(field string) string {
	switch field {
	case FieldUsername:
		return f.Username
	case FieldEmail:
		return f.Email
	case FieldPassword:
		return f.Password
	case FieldConfirmPassword:
		return f.ConfirmPassword
	}
	return ""
}

// Set assigns the named field and reports whether the name was known.
func (f *RegistrationForm) Set(field, value string) bool {
	switch field {
	case FieldUsername:
		f.Username = value
	case FieldEmail:
		f.Email = value
	case FieldPassword:
		f.Password = value
	case FieldConfirmPassword:
		f.ConfirmPassword = value
	default:
		return false
	}
	return true
}

// ErrorMap maps a field name to its message. Only failing fields have keys.
type ErrorMap map[string]string

// Valid reports whether no field failed.
func (m ErrorMap) Valid() bool {
	return len(m) == 0
}

// ValidateEmail reports whether s has the local@domain.tld shape: three
// non-empty runs of characters other than whitespace and '@', separated by
// '@' and '.'.
func ValidateEmail(s string) bool {
	return emailRe.MatchString(s)
}

// ValidatePassword reports whether s is 8 to 15 characters drawn from ASCII
// letters, digits and !@#$%^&*.
func ValidatePassword(s string) bool {
	return passwordRe.MatchString(s)
}

// ValidateRegistrationForm checks every field independently and returns at
// most one message per field.
func ValidateRegistrationForm(f RegistrationForm) ErrorMap {
	errs := ErrorMap{}

	if strings.TrimSpace(f.Username) == "" {
		errs[FieldUsername] = MsgUsernameRequired
	}

	switch {
	case f.Email == "":
		errs[FieldEmail] = MsgEmailRequired
	case !ValidateEmail(f.Email):
		errs[FieldEmail] = MsgEmailInvalid
	}

	switch {
	case f.Password == "":
		errs[FieldPassword] = MsgPasswordRequired
	case !ValidatePassword(f.Password):
		errs[FieldPassword] = MsgPasswordFormat
	}

	switch {
	case f.ConfirmPassword == "":
		errs[FieldConfirmPassword] = MsgConfirmRequired
	case f.ConfirmPassword != f.Password:
		errs[FieldConfirmPassword] = MsgPasswordsMismatch
	}

	return errs
}
