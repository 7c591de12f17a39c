package model

// ErrorResponse is the JSON body returned for non-validation failures.
type ErrorResponse struct {
	Message string `json:"message"`
	Stack   string `json:"stack,omitempty"`
}

// Standard error codes for domain errors.
const (
	ErrCodeProductNotFound     = "PRODUCT_NOT_FOUND"
	ErrCodeReviewNotFound      = "REVIEW_NOT_FOUND"
	ErrCodeSearchQueryRequired = "SEARCH_QUERY_REQUIRED"
	ErrCodeInvalidRequestBody  = "INVALID_REQUEST_BODY"
	ErrCodeInternalError       = "INTERNAL_ERROR"
)

// Domain errors for business logic
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrProductNotFound     = NewDomainError(ErrCodeProductNotFound, "Product not found")
	ErrReviewNotFound      = NewDomainError(ErrCodeReviewNotFound, "Review not found")
	ErrSearchQueryRequired = NewDomainError(ErrCodeSearchQueryRequired, "Search query is required")
	ErrInvalidRequestBody  = NewDomainError(ErrCodeInvalidRequestBody, "Invalid request body")
)
