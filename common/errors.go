package common

import "fmt"

// ValidationError reports a mark code that is not exactly four word characters.
type ValidationError struct {
	Code string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid geodetic mark code %q: must be exactly 4 letters or digits", e.Code)
}

// NotFoundError reports a code the GDB service affirmatively does not know.
// Distinct from ConnectivityError: the service was reached and answered.
type NotFoundError struct {
	Code string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("geodetic mark %s does not exist", e.Code)
}

// ConnectivityError reports that the GDB service could not be reached or
// returned a non-success status. Once one occurs, the client stops trying
// for the rest of its lifetime.
type ConnectivityError struct {
	URL string
	Err error
}

func (e *ConnectivityError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cannot connect to the geodetic database: %v", e.Err)
	}
	return "cannot connect to the geodetic database"
}

func (e *ConnectivityError) Unwrap() error { return e.Err }

// DecodeError reports a response body that is not valid JSON. A well-behaved
// service should never cause one.
type DecodeError struct {
	Code string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("invalid JSON payload for mark %s: %v", e.Code, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
