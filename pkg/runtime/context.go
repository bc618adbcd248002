package runtime

import (
	"github.com/fortiblox/x1-progkit/pkg/types"
)

// DefaultComputeBudget is the per-instruction compute allowance when the
// host does not specify one.
const DefaultComputeBudget uint64 = 200_000

// Clock is the clock sysvar snapshot for the current invocation.
type Clock struct {
	Slot          uint64
	Epoch         uint64
	UnixTimestamp int64
}

// InvokeContext carries the execution state of one instruction invocation:
// the program being executed, the host-supplied sysvar values and the
// compute meter. Execution is single-threaded; the context performs no
// locking.
type InvokeContext struct {
	// ProgramID is the program being executed.
	ProgramID types.Pubkey

	// Clock is the clock sysvar at the invoked slot.
	Clock Clock

	computeUnits uint64
	budget       uint64
}

// NewInvokeContext creates a context for one invocation with the given
// compute budget. A zero budget selects DefaultComputeBudget.
func NewInvokeContext(programID types.Pubkey, budget uint64) *InvokeContext {
	if budget == 0 {
		budget = DefaultComputeBudget
	}
	return &InvokeContext{
		ProgramID: programID,
		budget:    budget,
	}
}

// ConsumeUnits charges n compute units against the budget.
func (ctx *InvokeContext) ConsumeUnits(n uint64) error {
	if ctx.computeUnits+n > ctx.budget {
		ctx.computeUnits = ctx.budget
		return ErrComputeExhausted
	}
	ctx.computeUnits += n
	return nil
}

// UnitsConsumed returns the compute units charged so far.
func (ctx *InvokeContext) UnitsConsumed() uint64 {
	return ctx.computeUnits
}

// UnitsRemaining returns the compute units left in the budget.
func (ctx *InvokeContext) UnitsRemaining() uint64 {
	return ctx.budget - ctx.computeUnits
}

// RentExemptMinimum returns the minimum balance for rent exemption of an
// account with the given data size.
func (ctx *InvokeContext) RentExemptMinimum(dataSize uint64) uint64 {
	return types.RentExemptMinimum(dataSize)
}
