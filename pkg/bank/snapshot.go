package bank

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"golang.org/x/crypto/blake2b"

	"github.com/fortiblox/x1-progkit/pkg/types"
)

// Snapshot format:
// - magic:    4 bytes ("XPS1")
// - checksum: 32 bytes (BLAKE2b-256 of the compressed payload)
// - payload:  zstd-compressed account stream:
//     count: 8 bytes (little-endian uint64)
//     repeated: pubkey (32) || record_len (4, LE) || account record
var snapshotMagic = [4]byte{'X', 'P', 'S', '1'}

// Snapshot errors.
var (
	ErrBadSnapshotMagic    = errors.New("bad snapshot magic")
	ErrSnapshotChecksum    = errors.New("snapshot checksum mismatch")
	ErrTruncatedSnapshot   = errors.New("truncated snapshot")
	ErrSnapshotCountMismatch = errors.New("snapshot account count mismatch")
)

// WriteSnapshot dumps the full store to w.
func WriteSnapshot(store Store, w io.Writer) error {
	var raw bytes.Buffer

	var countBuf [8]byte
	binary.LittleEndian.PutUint64(countBuf[:], store.AccountCount())
	raw.Write(countBuf[:])

	err := store.ForEach(func(pubkey types.Pubkey, account *types.Account) error {
		record, err := SerializeAccount(account)
		if err != nil {
			return err
		}
		raw.Write(pubkey[:])
		var lenBuf [4]byte
		binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(record)))
		raw.Write(lenBuf[:])
		raw.Write(record)
		return nil
	})
	if err != nil {
		return fmt.Errorf("snapshot scan: %w", err)
	}

	var compressed bytes.Buffer
	enc, err := zstd.NewWriter(&compressed)
	if err != nil {
		return fmt.Errorf("zstd writer: %w", err)
	}
	if _, err := enc.Write(raw.Bytes()); err != nil {
		enc.Close()
		return fmt.Errorf("snapshot compress: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("snapshot compress: %w", err)
	}

	checksum := blake2b.Sum256(compressed.Bytes())

	if _, err := w.Write(snapshotMagic[:]); err != nil {
		return err
	}
	if _, err := w.Write(checksum[:]); err != nil {
		return err
	}
	_, err = w.Write(compressed.Bytes())
	return err
}

// ReadSnapshot restores accounts from r into store. Existing accounts with
// the same pubkeys are overwritten; the checksum is verified before any
// account is written.
func ReadSnapshot(store Store, r io.Reader) error {
	var header [4 + 32]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return fmt.Errorf("%w: %v", ErrTruncatedSnapshot, err)
	}
	if !bytes.Equal(header[:4], snapshotMagic[:]) {
		return ErrBadSnapshotMagic
	}

	compressed, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("reading snapshot: %w", err)
	}

	checksum := blake2b.Sum256(compressed)
	if !bytes.Equal(checksum[:], header[4:]) {
		return ErrSnapshotChecksum
	}

	dec, err := zstd.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return fmt.Errorf("zstd reader: %w", err)
	}
	defer dec.Close()

	raw, err := io.ReadAll(dec)
	if err != nil {
		return fmt.Errorf("snapshot decompress: %w", err)
	}

	if len(raw) < 8 {
		return ErrTruncatedSnapshot
	}
	count := binary.LittleEndian.Uint64(raw[:8])
	raw = raw[8:]

	var restored uint64
	for len(raw) > 0 {
		if len(raw) < 32+4 {
			return ErrTruncatedSnapshot
		}
		pubkey, err := types.PubkeyFromBytes(raw[:32])
		if err != nil {
			return err
		}
		recordLen := binary.LittleEndian.Uint32(raw[32:36])
		raw = raw[36:]
		if uint32(len(raw)) < recordLen {
			return ErrTruncatedSnapshot
		}
		account, err := DeserializeAccount(raw[:recordLen])
		if err != nil {
			return err
		}
		raw = raw[recordLen:]

		if err := store.SetAccount(pubkey, account); err != nil {
			return err
		}
		restored++
	}

	if restored != count {
		return fmt.Errorf("%w: header says %d, stream had %d", ErrSnapshotCountMismatch, count, restored)
	}
	return nil
}
