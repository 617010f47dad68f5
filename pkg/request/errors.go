package request

import "errors"

var (
	// ErrInternalServer is returned to clients when a handler fails unexpectedly.
	ErrInternalServer = errors.New("internal server error")

	// ErrUnauthorized is returned when the request does not carry valid credentials.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrTooManyRequests is returned when the caller is rate limited.
	ErrTooManyRequests = errors.New("too many requests")
)
