package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
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
	ErrNotFound           = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists      = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput       = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrInvalidState       = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrEmptyCart          = NewDomainError("EMPTY_CART", "Cart contains no items")
	ErrSubmissionInFlight = NewDomainError("SUBMISSION_IN_FLIGHT", "An order submission is already in progress")
	ErrSubmissionFailed   = NewDomainError("SUBMISSION_FAILED", "Order could not be submitted")
	ErrStoreUnavailable   = NewDomainError("STORE_UNAVAILABLE", "Backing store is unavailable")
)
