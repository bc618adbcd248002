// Package constraint checks an instruction's account list against its
// declared constraint schema before any handler logic runs. Validation is
// pure, single-pass and short-circuits at the first failing position, which
// keeps the cost bounded under compute metering.
package constraint

import (
	"github.com/fortiblox/x1-progkit/pkg/runtime"
	"github.com/fortiblox/x1-progkit/pkg/types"
)

// Kind classifies the ownership and initialization state an account
// position must satisfy.
type Kind uint8

// Account constraint kinds.
const (
	// Any places no constraint on the account.
	Any Kind = iota

	// Signer requires the account to have signed the transaction.
	Signer

	// ProgramOwned requires the account to be owned by the executing
	// program and initialized (non-zero balance).
	ProgramOwned

	// TokenOwned requires the account to be owned by the token program
	// and initialized.
	TokenOwned

	// NotTokenOwned requires the account to not be owned by the token
	// program (associated-token wallets and the like).
	NotTokenOwned

	// Uninitialized requires a fresh system account with a zero balance.
	// Uninitialized accounts are always validated as writable: an account
	// about to be created must be mutable whatever the spec declares.
	Uninitialized
)

// String returns the kind's schema name.
func (k Kind) String() string {
	switch k {
	case Any:
		return "any"
	case Signer:
		return "signer"
	case ProgramOwned:
		return "program"
	case TokenOwned:
		return "token"
	case NotTokenOwned:
		return "not_token"
	case Uninitialized:
		return "uninitialized"
	default:
		return "unknown"
	}
}

// Spec declares the constraints for one account position. Specs are built
// once at registration time and never mutated.
type Spec struct {
	Kind     Kind
	Writable bool
	Name     string
	Desc     string
}

// Validate checks accounts positionally against specs for the program
// identified by programID. It fails with ErrNotEnoughAccountKeys before any
// per-position work if the list is short; extra trailing accounts are
// ignored. On success it returns the first len(specs) handles in input
// order. Validate never mutates the handles.
func Validate(accounts []*runtime.AccountHandle, specs []Spec, programID types.Pubkey) ([]*runtime.AccountHandle, error) {
	if len(accounts) < len(specs) {
		return nil, ErrNotEnoughAccountKeys
	}

	for i := range specs {
		spec := &specs[i]
		if err := checkOne(accounts[i], spec, programID); err != nil {
			return nil, &PositionError{Position: i, Spec: *spec, Err: err}
		}
	}

	return accounts[:len(specs):len(specs)], nil
}

// checkOne applies a single spec to a single handle.
func checkOne(h *runtime.AccountHandle, spec *Spec, programID types.Pubkey) error {
	switch spec.Kind {
	case Signer:
		if !h.IsSigner {
			return ErrNotSigner
		}

	case ProgramOwned:
		if !h.IsOwnedBy(programID) {
			return ErrNotOwnedByProgram
		}
		if *h.Lamports == 0 {
			return ErrNotOwnedByProgram
		}

	case TokenOwned:
		if !h.IsOwnedBy(types.TokenProgramID) {
			return ErrNotTokenAccount
		}
		if *h.Lamports == 0 {
			return ErrNotTokenAccount
		}

	case NotTokenOwned:
		if h.IsOwnedBy(types.TokenProgramID) {
			return ErrUnexpectedTokenAccount
		}

	case Uninitialized:
		if !h.IsOwnedBy(types.SystemProgramID) {
			return ErrAlreadyInitialized
		}
		if *h.Lamports != 0 {
			return ErrAlreadyInitialized
		}

	case Any:
		// No ownership constraint.
	}

	if (spec.Writable || spec.Kind == Uninitialized) && !h.IsWritable {
		return ErrNotWritable
	}

	return nil
}
