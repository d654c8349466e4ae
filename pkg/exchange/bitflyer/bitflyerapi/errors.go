package bitflyerapi

import (
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"
)

// TimeoutError means the transport failed before any response was observed.
type TimeoutError struct {
	Message string
}

func (e *TimeoutError) Error() string {
	return "bitflyer: request failed: " + e.Message
}

// ErrorResponse is returned when the exchange answered with a non-200 status.
// Body is kept verbatim for diagnostics.
type ErrorResponse struct {
	Method     string
	Path       string
	StatusCode int
	Body       []byte
}

func (e *ErrorResponse) Error() string {
	return fmt.Sprintf("bitflyer: %s %s: %d %s", e.Method, e.Path, e.StatusCode, string(e.Body))
}

// APIError decodes the exchange error envelope, e.g.
//
//	{"status":-208,"error_message":"Order is not accepted","data":null}
func (e *ErrorResponse) APIError() (*APIError, bool) {
	var apiErr APIError
	if err := json.Unmarshal(e.Body, &apiErr); err != nil || apiErr.ErrorMessage == "" {
		return nil, false
	}

	return &apiErr, true
}

type APIError struct {
	Status       int    `json:"status"`
	ErrorMessage string `json:"error_message"`
}

// InvalidResponseError is returned when the status is 200 but the body does not match the expected schema.
type InvalidResponseError struct {
	Body []byte
	Err  error
}

func (e *InvalidResponseError) Error() string {
	return fmt.Sprintf("bitflyer: invalid response: %v: %s", e.Err, string(e.Body))
}

func (e *InvalidResponseError) Unwrap() error {
	return e.Err
}

func newInvalidResponse(body []byte, format string, args ...interface{}) *InvalidResponseError {
	return &InvalidResponseError{Body: body, Err: errors.Errorf(format, args...)}
}

func IsTimeout(err error) bool {
	var e *TimeoutError
	return errors.As(err, &e)
}

func IsErrorResponse(err error) bool {
	var e *ErrorResponse
	return errors.As(err, &e)
}

func IsInvalidResponse(err error) bool {
	var e *InvalidResponseError
	return errors.As(err, &e)
}
