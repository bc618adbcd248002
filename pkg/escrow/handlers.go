package escrow

import (
	"github.com/fortiblox/x1-progkit/pkg/layout"
	"github.com/fortiblox/x1-progkit/pkg/pda"
	"github.com/fortiblox/x1-progkit/pkg/runtime"
	"github.com/fortiblox/x1-progkit/pkg/types"
)

// handleMake opens an escrow.
// Accounts (validated by schema):
//
//	[0] maker  (signer, writable)  funds the escrow
//	[1] escrow (uninitialized)     PDA to create
//
// The escrow PDA is created at the client-derived bump, funded with the
// escrowed lamports on top of its rent-exempt minimum, and its state
// records the maker, amount and bump.
func handleMake(ctx *runtime.InvokeContext, accounts []*runtime.AccountHandle, payload []byte) error {
	maker, escrowAcct := accounts[0], accounts[1]

	// Payload length is already exact; skip the second check.
	p := MakePayload.WrapUnchecked(payload)
	amount := p.Uint64("amount")
	bump := p.Byte("bump")

	if amount == 0 {
		return ErrZeroAmount
	}

	seeds := [][]byte{[]byte(EscrowSeed), maker.Key.Bytes()}
	if err := runtime.CreateAccountAtPDA(ctx, maker, escrowAcct, uint64(StateLayout.Size()), seeds, bump); err != nil {
		return err
	}
	if err := runtime.TransferLamports(maker, escrowAcct, amount); err != nil {
		return err
	}

	return StateLayout.WithState(escrowAcct, func(v layout.View) error {
		v.SetBytes("maker", maker.Key.Bytes())
		v.PutUint64("amount", amount)
		v.PutByte("bump", bump)
		return nil
	})
}

// handleTake settles an escrow.
// Accounts:
//
//	[0] taker  (signer, writable)  pays the maker, receives the escrow
//	[1] maker  (writable)          receives the taker's payment
//	[2] escrow (program, writable) escrow state PDA
//
// The taker pays the escrowed amount to the maker and the escrow account is
// closed into the taker, so the taker collects the escrowed lamports plus
// the rent deposit.
func handleTake(ctx *runtime.InvokeContext, accounts []*runtime.AccountHandle, _ []byte) error {
	taker, maker, escrowAcct := accounts[0], accounts[1], accounts[2]

	state, err := StateLayout.Load(escrowAcct)
	if err != nil {
		return err
	}
	recordedMaker, err := types.PubkeyFromBytes(state.Field("maker"))
	if err != nil {
		return err
	}
	if recordedMaker != maker.Key {
		return ErrMakerMismatch
	}

	// Hot path: one hash against the stored bump, never a bump search.
	seeds := [][]byte{[]byte(EscrowSeed), maker.Key.Bytes()}
	if err := pda.Assert(escrowAcct.Key, seeds, state.Byte("bump"), ctx.ProgramID, ErrBadEscrowAddress.Code); err != nil {
		return err
	}

	if err := runtime.TransferLamports(taker, maker, state.Uint64("amount")); err != nil {
		return err
	}
	return runtime.CloseAccount(escrowAcct, taker)
}

// handleClose cancels an escrow.
// Accounts:
//
//	[0] maker  (signer, writable)  original maker, receives everything back
//	[1] escrow (program, writable) escrow state PDA
func handleClose(ctx *runtime.InvokeContext, accounts []*runtime.AccountHandle, _ []byte) error {
	maker, escrowAcct := accounts[0], accounts[1]

	state, err := StateLayout.Load(escrowAcct)
	if err != nil {
		return err
	}
	recordedMaker, err := types.PubkeyFromBytes(state.Field("maker"))
	if err != nil {
		return err
	}
	if recordedMaker != maker.Key {
		return ErrMakerMismatch
	}

	if err := pda.ValidateAll(ctx.ProgramID, []pda.Assertion{
		{
			Key:   escrowAcct.Key,
			Seeds: [][]byte{[]byte(EscrowSeed), maker.Key.Bytes()},
			Bump:  state.Byte("bump"),
			Code:  ErrBadEscrowAddress.Code,
		},
	}); err != nil {
		return err
	}

	return runtime.CloseAccount(escrowAcct, maker)
}
