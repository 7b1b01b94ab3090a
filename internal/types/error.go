package types

import "fmt"

// Error kinds. Upload is kept distinct from persistence so callers can
// abort a create/update flow when the image side-channel fails.
const (
	KindValidation     = "validation"
	KindAuthentication = "authentication"
	KindPersistence    = "persistence"
	KindUpload         = "upload"
)

type CustomError struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Kind    string            `json:"kind"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func (e *CustomError) Error() string {
	return fmt.Sprintf("%d: %s [kind: %s]", e.Code, e.Message, e.Kind)
}

// NewValidationError reports per-field failures from a form schema.
// It never reaches the persistence layer.
func NewValidationError(fields map[string]string) *CustomError {
	return &CustomError{
		Code:    400,
		Message: "Validation failed",
		Kind:    KindValidation,
		Fields:  fields,
	}
}

// NewAuthenticationError reports a missing or invalid session on an
// owner-scoped operation.
func NewAuthenticationError(message string) *CustomError {
	return &CustomError{
		Code:    401,
		Message: message,
		Kind:    KindAuthentication,
	}
}

// NewPersistenceError wraps a store-level rejection, carrying the
// store's message. No structured error code beyond the message.
func NewPersistenceError(message string) *CustomError {
	return &CustomError{
		Code:    500,
		Message: message,
		Kind:    KindPersistence,
	}
}

// NewNotFoundOrForbidden reports the zero-rows-affected outcome of an
// ownership-scoped mutation. The store cannot distinguish a missing row
// from a row owned by someone else, so neither do we.
func NewNotFoundOrForbidden(entity string) *CustomError {
	return &CustomError{
		Code:    404,
		Message: fmt.Sprintf("%s not found or not owned by caller", entity),
		Kind:    KindPersistence,
	}
}

// NewUploadError reports a failure in the image-upload step. Callers
// must not proceed to create or update the parent entity.
func NewUploadError(message string) *CustomError {
	return &CustomError{
		Code:    502,
		Message: message,
		Kind:    KindUpload,
	}
}
