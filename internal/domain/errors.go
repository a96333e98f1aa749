package domain

import "net/http"

type ErrorKind string

const (
	ErrKindValidation ErrorKind = "VALIDATION"
	ErrKindState      ErrorKind = "STATE"
	ErrKindNotFound   ErrorKind = "NOT_FOUND"
	ErrKindUpstream   ErrorKind = "UPSTREAM"
)

// Error is the taxonomy every pipeline failure maps into. Status is the HTTP
// status the api layer answers with; VendorCode carries the GDS error code
// when the failure came from upstream.
type Error struct {
	Kind       ErrorKind
	Status     int
	Message    string
	VendorCode int64
}

func (e *Error) Error() string {
	return e.Message
}

// NewValidationError reports missing or malformed caller input. No remote
// call was attempted.
func NewValidationError(msg string) *Error {
	return &Error{Kind: ErrKindValidation, Status: http.StatusBadRequest, Message: msg}
}

// NewStateError reports absent cached pipeline state (offers or priced
// offer); the caller must re-run an earlier stage.
func NewStateError(msg string) *Error {
	return &Error{Kind: ErrKindState, Status: http.StatusBadRequest, Message: msg}
}

func NewNotFoundError(msg string) *Error {
	return &Error{Kind: ErrKindNotFound, Status: http.StatusNotFound, Message: msg}
}

// NewUpstreamError wraps a GDS-side failure. A non-positive status falls back
// to 502.
func NewUpstreamError(msg string, status int, vendorCode int64) *Error {
	if status <= 0 {
		status = http.StatusBadGateway
	}
	return &Error{Kind: ErrKindUpstream, Status: status, Message: msg, VendorCode: vendorCode}
}
