package constraint

import (
	"errors"
	"fmt"
)

// Validation errors.
var (
	// ErrNotEnoughAccountKeys indicates fewer accounts were supplied than
	// the schema declares.
	ErrNotEnoughAccountKeys = errors.New("not enough account keys")

	// ErrNotSigner indicates a required signer did not sign.
	ErrNotSigner = errors.New("account is not a signer")

	// ErrNotOwnedByProgram indicates an account expected to hold program
	// state is not owned by the program or is uninitialized.
	ErrNotOwnedByProgram = errors.New("account not owned by program")

	// ErrNotTokenAccount indicates an account is not owned by the token program.
	ErrNotTokenAccount = errors.New("account is not a token account")

	// ErrUnexpectedTokenAccount indicates an account is owned by the token
	// program where one must not be.
	ErrUnexpectedTokenAccount = errors.New("unexpected token account")

	// ErrAlreadyInitialized indicates an account expected to be fresh has
	// an owner or balance already.
	ErrAlreadyInitialized = errors.New("account already initialized")

	// ErrNotWritable indicates a declared-writable account is read-only in
	// this invocation.
	ErrNotWritable = errors.New("account is not writable")
)

// PositionError reports which account position failed validation and why.
// It wraps the underlying sentinel so errors.Is works across the dispatch
// boundary.
type PositionError struct {
	Position int
	Spec     Spec
	Err      error
}

// Error implements error.
func (e *PositionError) Error() string {
	if e.Spec.Name != "" {
		return fmt.Sprintf("account %d (%s): %v", e.Position, e.Spec.Name, e.Err)
	}
	return fmt.Sprintf("account %d: %v", e.Position, e.Err)
}

// Unwrap returns the underlying validation error.
func (e *PositionError) Unwrap() error {
	return e.Err
}
