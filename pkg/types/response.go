// Package types defines the JSON envelopes every ClasSmart endpoint speaks:
// {"data": ...} on success, {"error": {code, message, details}} on failure.
// The browser clients and the Go SDK both decode these shapes.
package types

// SuccessEnvelope wraps every 2xx payload.
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// APIError is the public error body; code maps to an HTTP status centrally.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ErrorEnvelope wraps every error payload.
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}
