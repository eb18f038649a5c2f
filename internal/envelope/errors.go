// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package envelope

// Closed error taxonomy (spec.md §7). Handlers may mint additional
// domain codes but every code on the wire must be SCREAMING_SNAKE_CASE.
const (
	CodeInvalidEnvelope      = "INVALID_ENVELOPE"
	CodeUnknownOperation     = "UNKNOWN_OPERATION"
	CodeMethodNotAllowed     = "METHOD_NOT_ALLOWED"
	CodeSchemaValidation     = "SCHEMA_VALIDATION_FAILED"
	CodeAuthRequired         = "AUTH_REQUIRED"
	CodeInsufficientScopes   = "INSUFFICIENT_SCOPES"
	CodeInvalidCard          = "INVALID_CARD"
	CodePatronNotFound       = "PATRON_NOT_FOUND"
	CodeOpRemoved            = "OP_REMOVED"
	CodeOperationNotFound    = "OPERATION_NOT_FOUND"
	CodeRateLimited          = "RATE_LIMITED"
	CodeInternalError        = "INTERNAL_ERROR"
	CodeIdempotencyRequired  = "IDEMPOTENCY_KEY_REQUIRED"
	CodeOverdueItemsExist    = "OVERDUE_ITEMS_EXIST"
)

// CallError is the single error shape that crosses the dispatcher
// boundary, whether minted by the transport (auth, validation,
// deprecation) or by a handler's domain logic.
type CallError struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Cause   map[string]any `json:"cause,omitempty"`
}

func (e *CallError) Error() string {
	return e.Code + ": " + e.Message
}

// New constructs a CallError with no cause.
func New(code, message string) *CallError {
	return &CallError{Code: code, Message: message}
}

// WithCause attaches a stable-per-code cause payload.
func WithCause(code, message string, cause map[string]any) *CallError {
	return &CallError{Code: code, Message: message, Cause: cause}
}
