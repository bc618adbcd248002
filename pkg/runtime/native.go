package runtime

import (
	"fmt"

	"github.com/fortiblox/x1-progkit/pkg/pda"
	"github.com/fortiblox/x1-progkit/pkg/types"
)

// MaxAccountDataSize is the largest data buffer an account may allocate.
const MaxAccountDataSize = 10 * 1024 * 1024 // 10 MB

// TransferLamports moves lamports between two accounts of the current
// invocation. The source must have signed and both accounts must be
// writable.
func TransferLamports(from, to *AccountHandle, amount uint64) error {
	if !from.IsSigner {
		return fmt.Errorf("%w: transfer source", ErrAccountNotSigner)
	}
	if !from.IsWritable {
		return fmt.Errorf("%w: transfer source", ErrAccountNotWritable)
	}
	if !to.IsWritable {
		return fmt.Errorf("%w: transfer destination", ErrAccountNotWritable)
	}
	if *from.Lamports < amount {
		return fmt.Errorf("%w: need %d lamports, have %d", ErrInsufficientFunds, amount, *from.Lamports)
	}
	*from.Lamports -= amount
	*to.Lamports += amount
	return nil
}

// CreateAccountAtPDA creates a program-owned account at a derived address:
// it asserts that to.Key matches the seeds and bump under the executing
// program, funds the new account to its rent-exempt minimum from the funder,
// allocates space and assigns ownership to the program. The cold-path
// counterpart of storing a bump and verifying it on later invocations.
func CreateAccountAtPDA(ctx *InvokeContext, from, to *AccountHandle, space uint64, seeds [][]byte, bump uint8) error {
	if !pda.VerifyWithKnownBump(to.Key, seeds, bump, ctx.ProgramID) {
		return fmt.Errorf("%w: new account %s", pda.ErrMismatch, to.Key)
	}
	if !from.IsSigner {
		return fmt.Errorf("%w: funding account", ErrAccountNotSigner)
	}
	if !from.IsWritable {
		return fmt.Errorf("%w: funding account", ErrAccountNotWritable)
	}
	if !to.IsWritable {
		return fmt.Errorf("%w: new account", ErrAccountNotWritable)
	}
	if *to.Lamports > 0 || len(to.Data) > 0 {
		return ErrAccountAlreadyExists
	}
	if space > MaxAccountDataSize {
		return ErrAccountDataTooLarge
	}

	lamports := ctx.RentExemptMinimum(space)
	if *from.Lamports < lamports {
		return fmt.Errorf("%w: need %d lamports, have %d", ErrInsufficientFunds, lamports, *from.Lamports)
	}

	*from.Lamports -= lamports
	*to.Lamports += lamports
	to.Data = make([]byte, space)
	to.Owner = ctx.ProgramID
	return nil
}

// CloseAccount sweeps an account's lamports to the receiver, tombstones the
// data and shrinks the buffer so the host reclaims it at commit.
func CloseAccount(acct, receiver *AccountHandle) error {
	if !acct.IsWritable {
		return fmt.Errorf("%w: account to close", ErrAccountNotWritable)
	}
	if !receiver.IsWritable {
		return fmt.Errorf("%w: lamport receiver", ErrAccountNotWritable)
	}

	*receiver.Lamports += *acct.Lamports
	*acct.Lamports = 0

	// Tombstone the first byte so stale references read a closed marker.
	if len(acct.Data) > 0 {
		acct.Data[0] = 0xff
		acct.Data = acct.Data[:1]
	}
	acct.Owner = types.SystemProgramID
	return nil
}
