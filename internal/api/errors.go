package api

import (
	"errors"
	"fmt"
)

// genericErrMessage is shown when the server supplies neither a
// "message" nor an "error" field in a failure response.
const genericErrMessage = "connection error, please try again"

// AuthError indicates missing, expired, or insufficient credentials
// (HTTP 401/403, or no stored token at all). It is terminal: callers
// must clear the session and return to sign-in, never retry.
type AuthError struct {
	StatusCode int
	Message    string
}

func (e *AuthError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("auth error: %s", e.Message)
	}
	return fmt.Sprintf("auth error (%d): %s", e.StatusCode, e.Message)
}

// IsAuthError reports whether err (or any error in its chain) is an AuthError.
func IsAuthError(err error) bool {
	var authErr *AuthError
	return errors.As(err, &authErr)
}

// RequestError is any other failed request: a non-2xx response carrying
// the server-supplied message, or a network-level failure with no
// response at all (StatusCode 0). Never retried automatically.
type RequestError struct {
	StatusCode int
	Message    string
}

func (e *RequestError) Error() string {
	if e.StatusCode == 0 {
		return e.Message
	}
	return fmt.Sprintf("request failed (%d): %s", e.StatusCode, e.Message)
}

// IsRequestError reports whether err chains to a RequestError.
func IsRequestError(err error) bool {
	var reqErr *RequestError
	return errors.As(err, &reqErr)
}

// UserMessage extracts the text to surface in a dialog for a failed
// action: the server's message verbatim when present, a generic
// string otherwise.
func UserMessage(err error) string {
	var authErr *AuthError
	if errors.As(err, &authErr) {
		return authErr.Message
	}
	var reqErr *RequestError
	if errors.As(err, &reqErr) && reqErr.Message != "" {
		return reqErr.Message
	}
	return genericErrMessage
}

// errorEnvelope is the wire shape of a failure response.
type errorEnvelope struct {
	Message string `json:"message"`
	Err     string `json:"error"`
}

// text returns the first populated field, empty when neither is set.
func (e errorEnvelope) text() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Err
}
