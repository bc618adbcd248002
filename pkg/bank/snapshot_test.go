package bank

import (
	"bytes"
	"errors"
	"testing"

	"github.com/fortiblox/x1-progkit/pkg/escrow"
	"github.com/fortiblox/x1-progkit/pkg/types"
)

func populatedStore(t *testing.T) *MemoryStore {
	t.Helper()
	store := NewMemoryStore()
	accounts := map[types.Pubkey]*types.Account{
		{1}: types.NewAccount(100_000_000, types.SystemProgramID),
		{2}: types.NewAccountWithData(5_000, []byte{0xaa, 0xbb, 0xcc}, escrow.ProgramID),
		{3}: types.NewAccountWithData(1, make([]byte, 64), types.TokenProgramID),
	}
	for key, acct := range accounts {
		if err := store.SetAccount(key, acct); err != nil {
			t.Fatalf("seeding store: %v", err)
		}
	}
	return store
}

func TestSnapshotRoundTrip(t *testing.T) {
	src := populatedStore(t)

	var buf bytes.Buffer
	if err := WriteSnapshot(src, &buf); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	dst := NewMemoryStore()
	if err := ReadSnapshot(dst, &buf); err != nil {
		t.Fatalf("read failed: %v", err)
	}

	if dst.AccountCount() != src.AccountCount() {
		t.Fatalf("account count: got %d, want %d", dst.AccountCount(), src.AccountCount())
	}
	err := src.ForEach(func(key types.Pubkey, want *types.Account) error {
		got, err := dst.GetAccount(key)
		if err != nil {
			return err
		}
		if got == nil {
			t.Errorf("account %s missing after restore", key)
			return nil
		}
		if got.Lamports != want.Lamports || got.Owner != want.Owner || !bytes.Equal(got.Data, want.Data) {
			t.Errorf("account %s restored wrong: %+v", key, got)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("comparing stores: %v", err)
	}
}

func TestSnapshotEmptyStore(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSnapshot(NewMemoryStore(), &buf); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	dst := NewMemoryStore()
	if err := ReadSnapshot(dst, &buf); err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if dst.AccountCount() != 0 {
		t.Errorf("restored %d accounts from an empty snapshot", dst.AccountCount())
	}
}

func TestSnapshotBadMagic(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSnapshot(populatedStore(t), &buf); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	raw := buf.Bytes()
	raw[0] = 'Y'

	err := ReadSnapshot(NewMemoryStore(), bytes.NewReader(raw))
	if !errors.Is(err, ErrBadSnapshotMagic) {
		t.Fatalf("expected ErrBadSnapshotMagic, got %v", err)
	}
}

func TestSnapshotCorruptPayload(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSnapshot(populatedStore(t), &buf); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	raw := buf.Bytes()
	raw[len(raw)-1] ^= 0x01

	dst := NewMemoryStore()
	err := ReadSnapshot(dst, bytes.NewReader(raw))
	if !errors.Is(err, ErrSnapshotChecksum) {
		t.Fatalf("expected ErrSnapshotChecksum, got %v", err)
	}
	// The checksum runs before any write; nothing may land in the store.
	if dst.AccountCount() != 0 {
		t.Errorf("corrupt snapshot wrote %d accounts", dst.AccountCount())
	}
}

func TestSnapshotTruncated(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSnapshot(populatedStore(t), &buf); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	err := ReadSnapshot(NewMemoryStore(), bytes.NewReader(buf.Bytes()[:20]))
	if !errors.Is(err, ErrTruncatedSnapshot) {
		t.Fatalf("expected ErrTruncatedSnapshot, got %v", err)
	}
}
