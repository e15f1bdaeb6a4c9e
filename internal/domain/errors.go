package domain

// APIError is the standardized JSON error envelope
type APIError struct {
	Type   string            `json:"type"`
	Title  string            `json:"title"`
	Status int               `json:"status"`
	Detail string            `json:"detail,omitempty"`
	Errors map[string]string `json:"errors,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return e.Title
}

// Error types used in the APIError envelope
const (
	ErrorTypeValidation     = "validation_error"
	ErrorTypeNotFound       = "not_found"
	ErrorTypeBadRequest     = "bad_request"
	ErrorTypeConflict       = "conflict"
	ErrorTypeUnauthorized   = "unauthorized"
	ErrorTypeForbidden      = "forbidden"
	ErrorTypeStateInvariant = "state_invariant_violation"
	ErrorTypeUnavailable    = "external_dependency_unavailable"
	ErrorTypeInternal       = "internal_error"
)
