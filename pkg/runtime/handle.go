// Package runtime provides the program-side view of an X1 invocation: the
// borrowed account handles supplied by the host, the invoke context with its
// compute meter and sysvar values, and the native primitives (lamport
// transfer, PDA account creation, account close) a handler composes.
package runtime

import (
	"github.com/fortiblox/x1-progkit/pkg/types"
)

// AccountHandle is a borrowed view of one account for the duration of a
// single instruction invocation. The lamport balance is held behind a
// pointer so mutations through one handle are visible through every handle
// referencing the same account, matching the host's aliasing model.
type AccountHandle struct {
	Key        types.Pubkey
	Lamports   *uint64
	Data       []byte
	Owner      types.Pubkey
	IsSigner   bool
	IsWritable bool
}

// NewAccountHandle builds a handle over an account snapshot.
func NewAccountHandle(key types.Pubkey, acct *types.Account, isSigner, isWritable bool) *AccountHandle {
	lamports := acct.Lamports
	return &AccountHandle{
		Key:        key,
		Lamports:   &lamports,
		Data:       acct.Data,
		Owner:      acct.Owner,
		IsSigner:   isSigner,
		IsWritable: isWritable,
	}
}

// IsOwnedBy returns true if the account is owned by the given program.
func (h *AccountHandle) IsOwnedBy(programID types.Pubkey) bool {
	return h.Owner == programID
}

// DataLen returns the length of the account data buffer.
func (h *AccountHandle) DataLen() int {
	return len(h.Data)
}

// IsUninitialized returns true if the account is a fresh system account:
// owned by the system program with a zero balance.
func (h *AccountHandle) IsUninitialized() bool {
	return h.Owner == types.SystemProgramID && *h.Lamports == 0
}

// ToAccount materializes the handle back into a persisted account. The data
// buffer is shared, not copied; the caller owns the copy discipline.
func (h *AccountHandle) ToAccount() *types.Account {
	return &types.Account{
		Lamports: *h.Lamports,
		Data:     h.Data,
		Owner:    h.Owner,
	}
}
