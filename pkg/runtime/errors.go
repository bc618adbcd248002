package runtime

import "errors"

// Runtime errors.
var (
	// ErrComputeExhausted indicates the invocation ran out of compute units.
	ErrComputeExhausted = errors.New("compute units exhausted")

	// ErrInsufficientFunds indicates the source account has insufficient lamports.
	ErrInsufficientFunds = errors.New("insufficient funds for operation")

	// ErrAccountNotSigner indicates a required signer is missing.
	ErrAccountNotSigner = errors.New("account is not a signer")

	// ErrAccountNotWritable indicates a required writable account is not writable.
	ErrAccountNotWritable = errors.New("account is not writable")

	// ErrAccountAlreadyExists indicates an account already exists at the address.
	ErrAccountAlreadyExists = errors.New("account already exists")

	// ErrAccountDataTooLarge indicates the requested space exceeds the maximum.
	ErrAccountDataTooLarge = errors.New("account data too large")

	// ErrAccountNotRentExempt indicates the account would not be rent exempt.
	ErrAccountNotRentExempt = errors.New("account not rent exempt")
)
