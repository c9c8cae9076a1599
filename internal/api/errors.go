package api

import (
	"errors"
	"fmt"
)

// TransportError covers everything between issuing the request and getting a
// usable body: dial failures, non-2xx statuses and malformed JSON.
type TransportError struct {
	Op         string // e.g. "GET /api/holdings"
	StatusCode int    // zero when no response was received
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: API returned %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ApplicationError is a well-formed response that reports success:false.
type ApplicationError struct {
	Op     string
	Reason string // optional human readable reason from the service
}

func (e *ApplicationError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("%s: request rejected", e.Op)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}

// Reason returns the service's reason for err when it is an ApplicationError.
func Reason(err error) (string, bool) {
	var appErr *ApplicationError
	if errors.As(err, &appErr) && appErr.Reason != "" {
		return appErr.Reason, true
	}
	return "", false
}

// Detail returns the message a user should see for a failed call.
func Detail(err error) string {
	var transportErr *TransportError
	if errors.As(err, &transportErr) {
		if transportErr.StatusCode != 0 {
			return fmt.Sprintf("API returned %d", transportErr.StatusCode)
		}
		if transportErr.Err != nil {
			return transportErr.Err.Error()
		}
	}
	if reason, ok := Reason(err); ok {
		return reason
	}
	return err.Error()
}
