package kycapi

import (
	"errors"
	"fmt"
)

// RequestError is returned for every failed upstream call. Callers treat all
// failures alike; StatusCode is kept for logging only.
type RequestError struct {
	Op         string
	StatusCode int
	Err        error
}

var ErrUnexpectedStatus = errors.New("unexpected http status")

func (e *RequestError) Error() string {
	if e == nil {
		return ""
	}
	switch {
	case e.Err != nil && e.StatusCode > 0:
		return fmt.Sprintf("%s: status=%d: %v", e.Op, e.StatusCode, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	case e.StatusCode > 0:
		return fmt.Sprintf("%s: status=%d", e.Op, e.StatusCode)
	default:
		return e.Op
	}
}

func (e *RequestError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// StatusCode extracts the upstream status from err, or 0 for transport failures.
func StatusCode(err error) int {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr.StatusCode
	}
	return 0
}
