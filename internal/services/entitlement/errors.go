package entitlement

import "errors"

// Ошибки аутентификации.
var (
	ErrUnknownEmail     = errors.New("user not found")
	ErrBadCredential    = errors.New("incorrect password")
	ErrAwaitingApproval = errors.New("account is awaiting administrator approval")
	ErrSuspended        = errors.New("account has been suspended")
)

// Ошибки валидации при регистрации и запросе продления.
var (
	ErrMissingField   = errors.New("all fields are required")
	ErrInvalidPlan    = errors.New("unknown subscription plan")
	ErrDuplicateEmail = errors.New("email already exists")
)

// Ошибки административных операций.
var (
	ErrAccountNotFound = errors.New("account not found")
	ErrAccountBanned   = errors.New("account is banned")
	ErrAdminAccount    = errors.New("operation is not allowed on the admin account")
)

// IsAuthError сообщает, относится ли ошибка к отказу во входе.
func IsAuthError(err error) bool {
	return errors.Is(err, ErrUnknownEmail) ||
		errors.Is(err, ErrBadCredential) ||
		errors.Is(err, ErrAwaitingApproval) ||
		errors.Is(err, ErrSuspended)
}

// IsValidationError сообщает, относится ли ошибка к некорректным входным данным.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrMissingField) ||
		errors.Is(err, ErrInvalidPlan) ||
		errors.Is(err, ErrDuplicateEmail)
}
