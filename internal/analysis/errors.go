package analysis

import "errors"

// InputError reports a request that cannot be analyzed as given.
type InputError struct {
	Field   string
	Message string
}

func (e *InputError) Error() string {
	return "analysis: invalid " + e.Field + ": " + e.Message
}

// ResolutionError reports that a collaborator could not resolve the
// request (address not found, places search failed). Message is safe to
// show to the user; Err, when set, holds the cause.
type ResolutionError struct {
	Message string
	Err     error
}

func (e *ResolutionError) Error() string {
	if e.Err == nil {
		return "analysis: " + e.Message
	}
	return "analysis: " + e.Message + ": " + e.Err.Error()
}

func (e *ResolutionError) Unwrap() error { return e.Err }

// UserMessage returns the text to show for err: the message of an
// InputError or ResolutionError in its chain, otherwise a generic one.
func UserMessage(err error) string {
	var ie *InputError
	if errors.As(err, &ie) {
		return ie.Field + ": " + ie.Message
	}
	var re *ResolutionError
	if errors.As(err, &re) {
		return re.Message
	}
	return "internal error"
}
