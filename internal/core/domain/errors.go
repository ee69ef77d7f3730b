package domain

import "errors"

// Common domain errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInternalServer     = errors.New("internal server error")
	ErrDuplicateEntry     = errors.New("duplicate entry")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("token invalid")
)

// Member errors
var (
	ErrMemberNotFound      = errors.New("member not found")
	ErrMemberAlreadyExists = errors.New("member already registered")
	ErrMemberInactive      = errors.New("member account is inactive")
)

// Loan errors
var (
	ErrLoanNotFound      = errors.New("loan not found")
	ErrLoanNoDueDate     = errors.New("loan has no due date")
	ErrInvalidLoanStatus = errors.New("invalid loan status")
	ErrCreditCheckFailed = errors.New("credit check failed")
	ErrExceedsLimit      = errors.New("requested amount exceeds loan limit")
)

// Savings errors
var (
	ErrSavingsNotFound     = errors.New("savings account not found")
	ErrInsufficientBalance = errors.New("insufficient savings balance")
)

// Restructuring errors
var (
	ErrRestructuringNotFound = errors.New("restructuring request not found")
	ErrInvalidState          = errors.New("restructuring request is not in a pending state")
)

// Settings errors
var (
	ErrSettingNotFound = errors.New("setting not found")
)
