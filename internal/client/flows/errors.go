package flows

import (
	"errors"
	"sort"
	"strings"

	"github.com/dmitrijs2005/notekeeper/internal/client/client"
	"github.com/dmitrijs2005/notekeeper/internal/client/validation"
)

// ErrSubmitInProgress is returned when a form is submitted again before the
// previous request has finished.
var ErrSubmitInProgress = errors.New("submit already in progress")

// ValidationError reports form fields rejected before any request was sent.
type ValidationError struct {
	Errors validation.ErrorMap
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Errors))
	for f := range e.Errors {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return "invalid fields: " + strings.Join(fields, ", ")
}

// userMessage returns the text to show for a failed auth request.
func userMessage(err error, fallback string) string {
	var ae *client.AuthError
	if errors.As(err, &ae) && ae.Message != "" {
		return ae.Message
	}
	return fallback
}
