package dispatch

import (
	"errors"

	"github.com/fortiblox/x1-progkit/pkg/constraint"
	"github.com/fortiblox/x1-progkit/pkg/layout"
	"github.com/fortiblox/x1-progkit/pkg/pda"
	"github.com/fortiblox/x1-progkit/pkg/runtime"
)

// Dispatch errors.
var (
	// ErrEmptyInstructionData indicates the raw instruction had no bytes.
	ErrEmptyInstructionData = errors.New("empty instruction data")

	// ErrUnknownDiscriminant indicates no schema is registered for the
	// instruction's leading byte.
	ErrUnknownDiscriminant = errors.New("unknown instruction discriminant")

	// ErrPayloadSizeMismatch indicates the payload length does not equal
	// the schema's fixed payload size.
	ErrPayloadSizeMismatch = errors.New("instruction payload size mismatch")

	// ErrDuplicateDiscriminant indicates two schemas were registered under
	// the same discriminant.
	ErrDuplicateDiscriminant = errors.New("duplicate instruction discriminant")
)

// Builtin numeric error codes surfaced at the dispatch boundary. Program
// errors use codes from 6000 up (InvalidDiscriminator is pinned at 6001 by
// convention); the builtin codes stay below that range so a host can log a
// single number per abort without colliding with program-defined codes.
const (
	CodeUnknown              uint32 = 1000
	CodeNotEnoughAccountKeys uint32 = 1001
	CodeEmptyInstructionData uint32 = 1002
	CodeUnknownDiscriminant  uint32 = 1003
	CodePayloadSizeMismatch  uint32 = 1004
	CodeSizeMismatch         uint32 = 1005
	CodeNotSigner            uint32 = 1010
	CodeNotOwnedByProgram    uint32 = 1011
	CodeNotTokenAccount      uint32 = 1012
	CodeUnexpectedToken      uint32 = 1013
	CodeAlreadyInitialized   uint32 = 1014
	CodeNotWritable          uint32 = 1015
	CodePdaMismatch          uint32 = 1020
	CodeComputeExhausted     uint32 = 1030
	CodeInsufficientFunds    uint32 = 1031
)

// coder is implemented by errors that carry their own program error code,
// such as pda.MismatchError and program-defined error types.
type coder interface {
	ErrorCode() uint32
}

// ErrorCode maps a dispatch failure to its numeric code. Errors that carry
// a program code report it themselves; everything else falls through the
// builtin table.
func ErrorCode(err error) uint32 {
	var c coder
	if errors.As(err, &c) {
		return c.ErrorCode()
	}

	switch {
	case errors.Is(err, constraint.ErrNotEnoughAccountKeys):
		return CodeNotEnoughAccountKeys
	case errors.Is(err, ErrEmptyInstructionData):
		return CodeEmptyInstructionData
	case errors.Is(err, ErrUnknownDiscriminant):
		return CodeUnknownDiscriminant
	case errors.Is(err, ErrPayloadSizeMismatch):
		return CodePayloadSizeMismatch
	case errors.Is(err, layout.ErrSizeMismatch):
		return CodeSizeMismatch
	case errors.Is(err, constraint.ErrNotSigner):
		return CodeNotSigner
	case errors.Is(err, constraint.ErrNotOwnedByProgram):
		return CodeNotOwnedByProgram
	case errors.Is(err, constraint.ErrNotTokenAccount):
		return CodeNotTokenAccount
	case errors.Is(err, constraint.ErrUnexpectedTokenAccount):
		return CodeUnexpectedToken
	case errors.Is(err, constraint.ErrAlreadyInitialized):
		return CodeAlreadyInitialized
	case errors.Is(err, constraint.ErrNotWritable):
		return CodeNotWritable
	case errors.Is(err, pda.ErrMismatch):
		return CodePdaMismatch
	case errors.Is(err, runtime.ErrComputeExhausted):
		return CodeComputeExhausted
	case errors.Is(err, runtime.ErrInsufficientFunds):
		return CodeInsufficientFunds
	default:
		return CodeUnknown
	}
}
