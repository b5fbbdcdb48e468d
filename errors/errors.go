package errors

import "fmt"

var (
	// Realtime event taxonomy. All four are recovered at the inbound-event
	// boundary: they abort one event, never the connection.
	ErrAuthenticationMissing = fmt.Errorf("authentication missing")
	ErrUpstreamPersistence   = fmt.Errorf("upstream persistence failure")
	ErrUpstreamIndex         = fmt.Errorf("upstream index failure")
	ErrMalformedEvent        = fmt.Errorf("malformed event")
	ErrUnknownEvent          = fmt.Errorf("unknown event")

	ErrBackpressure     = fmt.Errorf("connection backpressure")
	ErrConnectionClosed = fmt.Errorf("connection closed")
	ErrWorkerPanic      = fmt.Errorf("worker panic")
	ErrEmptyWords       = fmt.Errorf("no words have been found")

	ErrInvalidPassword    = fmt.Errorf("invalid password")
	ErrInvalidCredentials = fmt.Errorf("invalid credentials")
	ErrTokenGeneration    = fmt.Errorf("token generation failed")
	ErrUserAlreadyExists  = fmt.Errorf("user already exists")

	ErrMessageNotFound = fmt.Errorf("message not found")
	ErrChannelNotFound = fmt.Errorf("channel not found")
)
