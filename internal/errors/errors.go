// Package errors holds the sentinel errors shared across layers. Services
// wrap them with fmt.Errorf("%w: ...") and the API maps them to status codes
// with errors.Is.
package errors

import "errors"

var (
	// ErrNotFound: the conversation or model does not exist. 404.
	ErrNotFound = errors.New("resource not found")

	// ErrValidation: the client sent a malformed or out-of-range request. 400.
	ErrValidation = errors.New("validation failed")

	// ErrBusy: the conversation is still answering its previous message. 409.
	ErrBusy = errors.New("a query is already being processed")

	// ErrNotConfigured: the provider credential is missing or still the
	// placeholder from the sample .env. 503.
	ErrNotConfigured = errors.New("provider not configured")

	// ErrUpstream: Serper or Clarifai failed at the transport, status or
	// decoding level. 502.
	ErrUpstream = errors.New("upstream provider error")
)
