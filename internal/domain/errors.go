package domain

import "fmt"

// Error is a domain rule violation carrying a stable machine-readable code
// alongside a human-readable message.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Is matches domain errors by code, so instances carrying formatted
// messages still compare equal to the package sentinels via errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// Sentinel domain errors. Match with errors.Is; the values returned by
// domain operations carry messages specific to the violation.
var (
	ErrBusinessPolicyViolation = &Error{Code: "business.policy_violation", Message: "business policy violated"}
	ErrCurrencyMismatch        = &Error{Code: "money.currency_mismatch", Message: "both operands must have the same currency"}
	ErrNegativeAmount          = &Error{Code: "money.negative_amount", Message: "amount is negative"}
	ErrNegativeOrZeroAmount    = &Error{Code: "money.negative_or_zero_amount", Message: "amount is negative or zero"}
	ErrMaxAmountExceeded       = &Error{Code: "money.max_amount_exceeded", Message: "amount is more than the maximum allowed"}
	ErrInvalidFullNameFormat   = &Error{Code: "user.invalid_full_name_format", Message: "full name format is invalid"}
	ErrFriendAlreadyExists     = &Error{Code: "user.friend_already_exists", Message: "user is already a friend"}
	ErrInvalidCurrencyCode     = &Error{Code: "currency.invalid_code", Message: "currency code is not valid"}
	ErrInvalidCurrencyNumber   = &Error{Code: "currency.invalid_number", Message: "currency number is not valid"}
	ErrInvalidShareID          = &Error{Code: "share.invalid_id", Message: "share id is invalid"}
)

func newError(sentinel *Error, format string, args ...any) *Error {
	return &Error{Code: sentinel.Code, Message: fmt.Sprintf(format, args...)}
}
