package entity

// DomainError carries a stable machine-readable code alongside the message.
// Handlers map these to HTTP statuses; errors.Is works on the sentinel values.
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *DomainError) Error() string { return e.Message }

func NewDomainError(code, message string) *DomainError {
	return &DomainError{Code: code, Message: message}
}

var (
	ErrNotFound         = NewDomainError("NOT_FOUND", "resource not found")
	ErrInvalidInput     = NewDomainError("VALIDATION_ERROR", "invalid input")
	ErrDuplicatePending = NewDomainError("DUPLICATE_PENDING", "you already have a pending application, please wait for approval or rejection")
	ErrNotApproved      = NewDomainError("NOT_APPROVED", "your loan application is not yet approved")
	ErrEmailTaken       = NewDomainError("EMAIL_TAKEN", "an account with that email already exists")
	ErrInvalidLogin     = NewDomainError("INVALID_CREDENTIALS", "invalid login credentials")
)
