package pda

import (
	"errors"
	"fmt"

	"github.com/fortiblox/x1-progkit/pkg/types"
)

// PDA errors.
var (
	// ErrTooManySeeds indicates more than MaxSeeds seeds were supplied.
	ErrTooManySeeds = errors.New("too many seeds")

	// ErrSeedTooLong indicates a single seed exceeds MaxSeedLen bytes.
	ErrSeedTooLong = errors.New("seed too long")

	// ErrInvalidAddress indicates the seeds hash to a point on the ed25519
	// curve, which is not a valid program-derived address.
	ErrInvalidAddress = errors.New("address on curve, not a valid PDA")

	// ErrNoViableBump indicates no bump in 255..0 produced an off-curve address.
	ErrNoViableBump = errors.New("no viable bump seed found")

	// ErrMismatch indicates an account key does not match its expected PDA.
	ErrMismatch = errors.New("program derived address mismatch")
)

// MismatchError reports a failed PDA assertion along with the numeric
// program error code the caller chose for it. It wraps ErrMismatch so
// callers can test with errors.Is.
type MismatchError struct {
	Account types.Pubkey
	Code    uint32
}

// Error implements error.
func (e *MismatchError) Error() string {
	return fmt.Sprintf("program derived address mismatch for %s (code %d)", e.Account, e.Code)
}

// Unwrap makes errors.Is(err, ErrMismatch) hold.
func (e *MismatchError) Unwrap() error {
	return ErrMismatch
}

// ErrorCode returns the caller-supplied program error code.
func (e *MismatchError) ErrorCode() uint32 {
	return e.Code
}
