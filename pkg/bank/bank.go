package bank

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/fortiblox/x1-progkit/pkg/dispatch"
	"github.com/fortiblox/x1-progkit/pkg/runtime"
	"github.com/fortiblox/x1-progkit/pkg/types"
)

// Bank executes instructions against a Store with all-or-nothing
// semantics. Handles are built over deep copies of the stored accounts;
// only a successful dispatch writes the copies back, so a failure at any
// stage leaves every account untouched.
type Bank struct {
	store     Store
	registry  *dispatch.Registry
	programID types.Pubkey
	budget    uint64
	clock     runtime.Clock
	log       zerolog.Logger
}

// New creates a bank executing one program's registry over a store.
func New(store Store, registry *dispatch.Registry, programID types.Pubkey, log zerolog.Logger) *Bank {
	return &Bank{
		store:     store,
		registry:  registry,
		programID: programID,
		budget:    runtime.DefaultComputeBudget,
		log:       log.With().Str("program", programID.String()).Logger(),
	}
}

// SetComputeBudget overrides the per-instruction compute budget.
func (b *Bank) SetComputeBudget(budget uint64) {
	b.budget = budget
}

// SetClock sets the clock sysvar for subsequent invocations.
func (b *Bank) SetClock(clock runtime.Clock) {
	b.clock = clock
}

// Result reports one invocation's outcome.
type Result struct {
	// Err is nil on success.
	Err error

	// Code is the numeric error code on abort, 0 on success.
	Code uint32

	// UnitsConsumed is the compute charged by the invocation.
	UnitsConsumed uint64
}

// Execute runs one instruction. Accounts named by metas are loaded (missing
// accounts materialize as fresh system accounts), handles are built over
// copies, and dispatch runs single-threaded. On success the copies are
// committed and accounts drained to zero lamports are reaped; on failure
// everything is discarded and the numeric code is returned in the result.
func (b *Bank) Execute(raw []byte, metas []types.AccountMeta) Result {
	handles := make([]*runtime.AccountHandle, len(metas))
	byKey := make(map[types.Pubkey]*runtime.AccountHandle, len(metas))
	for i, meta := range metas {
		if prev, ok := byKey[meta.Pubkey]; ok {
			// Privileges attach to the account, not the position. A
			// repeated pubkey collapses into one handle with the union
			// of the requested flags, so a balance, owner or data
			// mutation through any position is the account's state.
			prev.IsSigner = prev.IsSigner || meta.IsSigner
			prev.IsWritable = prev.IsWritable || meta.IsWritable
			handles[i] = prev
			continue
		}
		acct, err := b.store.GetAccount(meta.Pubkey)
		if err != nil {
			return b.abort(fmt.Errorf("loading account %s: %w", meta.Pubkey, err), 0)
		}
		if acct == nil {
			acct = types.NewAccount(0, types.SystemProgramID)
		}
		handles[i] = runtime.NewAccountHandle(meta.Pubkey, acct, meta.IsSigner, meta.IsWritable)
		byKey[meta.Pubkey] = handles[i]
	}

	ctx := runtime.NewInvokeContext(b.programID, b.budget)
	ctx.Clock = b.clock

	if err := dispatch.Dispatch(ctx, b.registry, raw, handles); err != nil {
		return b.abort(err, ctx.UnitsConsumed())
	}

	committed := make(map[types.Pubkey]bool, len(handles))
	for _, h := range handles {
		if committed[h.Key] {
			continue
		}
		committed[h.Key] = true
		acct := h.ToAccount()
		var err error
		if acct.Lamports == 0 {
			// Drained accounts are reaped, matching the close semantics.
			err = b.store.DeleteAccount(h.Key)
		} else {
			err = b.store.SetAccount(h.Key, acct)
		}
		if err != nil {
			// A storage fault mid-commit is a host failure, not a program
			// abort; surface it loudly.
			b.log.Error().Err(err).Str("account", h.Key.String()).Msg("commit failed")
			return Result{Err: err, Code: dispatch.CodeUnknown, UnitsConsumed: ctx.UnitsConsumed()}
		}
	}

	b.log.Debug().
		Uint64("units", ctx.UnitsConsumed()).
		Int("accounts", len(metas)).
		Msg("instruction committed")

	return Result{UnitsConsumed: ctx.UnitsConsumed()}
}

// abort logs and packages a failed invocation. No state was written.
func (b *Bank) abort(err error, units uint64) Result {
	code := dispatch.ErrorCode(err)
	b.log.Debug().
		Err(err).
		Uint32("code", code).
		Msg("instruction aborted")
	return Result{Err: err, Code: code, UnitsConsumed: units}
}
