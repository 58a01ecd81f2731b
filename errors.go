package bnn

import (
	"fmt"
)

// Error is a wrapper for specific types of errors for which there is no additional information
// necessary. These errors are defined as global variables.
type Error struct{ string }

func (err Error) Error() string {
	return err.string
}

// These are the global errors that may be returned or panicked.
var (
	ErrNetNotFinalized   = Error{"Network has not been finalized"}
	ErrNetFinalized      = Error{"Network has already been finalized"}
	ErrNoInputs          = Error{"Node has no inputs"}
	ErrNoHP              = Error{"HyperParameter does not exist"}
	ErrNegativeIter      = Error{"Iteration is negative"}
	ErrFrozen            = Error{"Network is frozen"}
	ErrRegisterWrongType = Error{"Type is not recognized"}
	ErrRegisterNilReturn = Error{"Function return is nil"}
	ErrRegisterDuplicate = Error{"Type string is already registered"}
	ErrNotRegistered     = Error{"Type string has not been registered"}
)

// NilArgError documents errors resulting from certain arguments provided to a function being nil.
type NilArgError struct{ string }

func (err NilArgError) Error() string {
	return err.string + " is nil"
}

// SizeMismatchError is returned when the number of values given does not match the number that
// was expected, such as the inputs of a Network.
type SizeMismatchError struct {
	Expected, Given int
	Of              string
}

func (err SizeMismatchError) Error() string {
	return fmt.Sprintf("Size mismatch of %s: expected %d, given %d", err.Of, err.Expected, err.Given)
}
