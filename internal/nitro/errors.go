package nitro

import "fmt"

// StatusError reports a non-success HTTP status from the API. The request is
// not retried; the caller decides what a failed source means for the widget.
type StatusError struct {
	URL    string
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s returned %d", e.URL, e.Status)
}

// DecodeError reports a response body that could not be parsed as JSON.
type DecodeError struct {
	URL string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding response from %s: %v", e.URL, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
