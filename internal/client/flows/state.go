package flows

// State is the lifecycle stage of a form.
type State int

const (
	StateEditing State = iota
	StateValidating
	StateSubmitting
	StateSuccess
	StateAuthenticated
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateEditing:
		return "editing"
	case StateValidating:
		return "validating"
	case StateSubmitting:
		return "submitting"
	case StateSuccess:
		return "success"
	case StateAuthenticated:
		return "authenticated"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}
