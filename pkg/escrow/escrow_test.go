package escrow

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/fortiblox/x1-progkit/pkg/constraint"
	"github.com/fortiblox/x1-progkit/pkg/dispatch"
	"github.com/fortiblox/x1-progkit/pkg/pda"
	"github.com/fortiblox/x1-progkit/pkg/runtime"
	"github.com/fortiblox/x1-progkit/pkg/types"
)

const escrowAmount = 1_000_000

func newHandle(key types.Pubkey, lamports uint64, owner types.Pubkey, signer, writable bool) *runtime.AccountHandle {
	l := lamports
	return &runtime.AccountHandle{
		Key:        key,
		Lamports:   &l,
		Owner:      owner,
		IsSigner:   signer,
		IsWritable: writable,
	}
}

func makeRaw(amount uint64, bump uint8) []byte {
	raw := make([]byte, 1+MakePayload.Size())
	raw[0] = InstructionMake
	binary.LittleEndian.PutUint64(raw[1:9], amount)
	raw[9] = bump
	return raw
}

// openEscrow runs Make and returns the maker and escrow handles.
func openEscrow(t *testing.T) (*runtime.AccountHandle, *runtime.AccountHandle) {
	t.Helper()

	maker := newHandle(types.Pubkey{1}, 100_000_000, types.SystemProgramID, true, true)

	seeds := [][]byte{[]byte(EscrowSeed), maker.Key.Bytes()}
	escrowKey, bump, err := pda.Derive(seeds, ProgramID, nil)
	if err != nil {
		t.Fatalf("derive failed: %v", err)
	}
	escrowAcct := newHandle(escrowKey, 0, types.SystemProgramID, false, true)

	ctx := runtime.NewInvokeContext(ProgramID, 0)
	accounts := []*runtime.AccountHandle{maker, escrowAcct}
	if err := dispatch.Dispatch(ctx, NewRegistry(), makeRaw(escrowAmount, bump), accounts); err != nil {
		t.Fatalf("make failed: %v", err)
	}
	return maker, escrowAcct
}

func TestMake(t *testing.T) {
	maker, escrowAcct := openEscrow(t)

	if escrowAcct.Owner != ProgramID {
		t.Error("escrow not owned by program after make")
	}
	rent := types.RentExemptMinimum(uint64(StateLayout.Size()))
	if *escrowAcct.Lamports != rent+escrowAmount {
		t.Errorf("escrow balance: got %d, want %d", *escrowAcct.Lamports, rent+escrowAmount)
	}
	if *maker.Lamports != 100_000_000-rent-escrowAmount {
		t.Errorf("maker balance: %d", *maker.Lamports)
	}

	state, err := StateLayout.Load(escrowAcct)
	if err != nil {
		t.Fatalf("loading state: %v", err)
	}
	recorded, _ := types.PubkeyFromBytes(state.Field("maker"))
	if recorded != maker.Key {
		t.Error("state does not record the maker")
	}
	if state.Uint64("amount") != escrowAmount {
		t.Errorf("state amount: %d", state.Uint64("amount"))
	}

	// The stored bump must verify with a single hash.
	seeds := [][]byte{[]byte(EscrowSeed), maker.Key.Bytes()}
	if !pda.VerifyWithKnownBump(escrowAcct.Key, seeds, state.Byte("bump"), ProgramID) {
		t.Error("stored bump does not verify")
	}
}

func TestMakeZeroAmount(t *testing.T) {
	var makerKey types.Pubkey
	makerKey[0] = 2
	maker := newHandle(makerKey, 100_000_000, types.SystemProgramID, true, true)

	seeds := [][]byte{[]byte(EscrowSeed), maker.Key.Bytes()}
	escrowKey, bump, err := pda.Derive(seeds, ProgramID, nil)
	if err != nil {
		t.Fatalf("derive failed: %v", err)
	}
	escrowAcct := newHandle(escrowKey, 0, types.SystemProgramID, false, true)

	ctx := runtime.NewInvokeContext(ProgramID, 0)
	err = dispatch.Dispatch(ctx, NewRegistry(), makeRaw(0, bump), []*runtime.AccountHandle{maker, escrowAcct})
	if !errors.Is(err, ErrZeroAmount) {
		t.Fatalf("expected ErrZeroAmount, got %v", err)
	}
	if *maker.Lamports != 100_000_000 {
		t.Error("failed make must not move lamports")
	}
}

func TestMakeRejectsInitializedEscrow(t *testing.T) {
	var makerKey types.Pubkey
	makerKey[0] = 3
	maker := newHandle(makerKey, 100_000_000, types.SystemProgramID, true, true)
	funded := newHandle(types.Pubkey{4}, 1, types.SystemProgramID, false, true)

	ctx := runtime.NewInvokeContext(ProgramID, 0)
	err := dispatch.Dispatch(ctx, NewRegistry(), makeRaw(escrowAmount, 255), []*runtime.AccountHandle{maker, funded})
	if !errors.Is(err, constraint.ErrAlreadyInitialized) {
		t.Fatalf("expected ErrAlreadyInitialized, got %v", err)
	}
}

func TestTake(t *testing.T) {
	maker, escrowAcct := openEscrow(t)
	escrowBalance := *escrowAcct.Lamports
	makerBalance := *maker.Lamports

	var takerKey types.Pubkey
	takerKey[0] = 9
	taker := newHandle(takerKey, 10_000_000, types.SystemProgramID, true, true)

	ctx := runtime.NewInvokeContext(ProgramID, 0)
	accounts := []*runtime.AccountHandle{taker, maker, escrowAcct}
	if err := dispatch.Dispatch(ctx, NewRegistry(), []byte{InstructionTake}, accounts); err != nil {
		t.Fatalf("take failed: %v", err)
	}

	if *maker.Lamports != makerBalance+escrowAmount {
		t.Errorf("maker balance after take: %d", *maker.Lamports)
	}
	// Taker pays the amount and sweeps the whole escrow (amount + rent).
	if *taker.Lamports != 10_000_000-escrowAmount+escrowBalance {
		t.Errorf("taker balance after take: %d", *taker.Lamports)
	}
	if *escrowAcct.Lamports != 0 {
		t.Error("escrow not drained")
	}
	if len(escrowAcct.Data) != 1 || escrowAcct.Data[0] != 0xff {
		t.Error("escrow not tombstoned")
	}
}

func TestTakeWrongMaker(t *testing.T) {
	_, escrowAcct := openEscrow(t)

	taker := newHandle(types.Pubkey{9}, 10_000_000, types.SystemProgramID, true, true)
	impostor := newHandle(types.Pubkey{8}, 0, types.SystemProgramID, false, true)

	ctx := runtime.NewInvokeContext(ProgramID, 0)
	accounts := []*runtime.AccountHandle{taker, impostor, escrowAcct}
	err := dispatch.Dispatch(ctx, NewRegistry(), []byte{InstructionTake}, accounts)
	if !errors.Is(err, ErrMakerMismatch) {
		t.Fatalf("expected ErrMakerMismatch, got %v", err)
	}
}

func TestTakeTamperedBump(t *testing.T) {
	maker, escrowAcct := openEscrow(t)

	// Corrupt the stored bump; the single-hash check must reject it.
	state := StateLayout.LoadUnchecked(escrowAcct)
	state.PutByte("bump", state.Byte("bump")-1)

	taker := newHandle(types.Pubkey{9}, 10_000_000, types.SystemProgramID, true, true)
	ctx := runtime.NewInvokeContext(ProgramID, 0)
	accounts := []*runtime.AccountHandle{taker, maker, escrowAcct}
	err := dispatch.Dispatch(ctx, NewRegistry(), []byte{InstructionTake}, accounts)
	if !errors.Is(err, pda.ErrMismatch) {
		t.Fatalf("expected pda.ErrMismatch, got %v", err)
	}
	if dispatch.ErrorCode(err) != ErrBadEscrowAddress.Code {
		t.Errorf("expected code %d, got %d", ErrBadEscrowAddress.Code, dispatch.ErrorCode(err))
	}
}

func TestClose(t *testing.T) {
	maker, escrowAcct := openEscrow(t)
	makerBalance := *maker.Lamports
	escrowBalance := *escrowAcct.Lamports

	ctx := runtime.NewInvokeContext(ProgramID, 0)
	accounts := []*runtime.AccountHandle{maker, escrowAcct}
	if err := dispatch.Dispatch(ctx, NewRegistry(), []byte{InstructionClose}, accounts); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	if *maker.Lamports != makerBalance+escrowBalance {
		t.Errorf("maker balance after close: %d", *maker.Lamports)
	}
	if *escrowAcct.Lamports != 0 {
		t.Error("escrow not drained on close")
	}
}

func TestCloseWrongMaker(t *testing.T) {
	_, escrowAcct := openEscrow(t)

	impostor := newHandle(types.Pubkey{7}, 1_000, types.SystemProgramID, true, true)
	ctx := runtime.NewInvokeContext(ProgramID, 0)
	accounts := []*runtime.AccountHandle{impostor, escrowAcct}
	err := dispatch.Dispatch(ctx, NewRegistry(), []byte{InstructionClose}, accounts)
	if !errors.Is(err, ErrMakerMismatch) {
		t.Fatalf("expected ErrMakerMismatch, got %v", err)
	}
}
