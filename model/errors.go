package model

import "fmt"

// CodedError carries a stable numeric code next to the message. Callers match
// on the sentinel values with errors.Is.
type CodedError struct {
	Code uint64
	Msg  string
}

func (e *CodedError) Error() string {
	return fmt.Sprintf("%s (code: %d)", e.Msg, e.Code)
}

var (
	// Returned by WorldState.CreateAccount when the id is taken.
	ErrAccountExists = &CodedError{Code: 934823094, Msg: "user already exists"}
	// Returned by WorldState.UpdateAccount when the id is unknown.
	ErrAccountNotFound = &CodedError{Code: 934823095, Msg: "account does not exist"}
)
