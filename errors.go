package main

import "errors"

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrDuplicateEmail     = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrSenderNotFound     = errors.New("sender account not found")
	ErrRecipientNotFound  = errors.New("recipient account not found")
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrStorageFailure     = errors.New("storage failure")
)

// inputError carries a caller-facing message and matches ErrInvalidInput.
type inputError struct {
	msg string
}

func (e *inputError) Error() string { return e.msg }

func (e *inputError) Unwrap() error { return ErrInvalidInput }

func invalidInput(msg string) error {
	return &inputError{msg: msg}
}
