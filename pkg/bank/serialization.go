package bank

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/fortiblox/x1-progkit/pkg/types"
)

// Account record format:
// - lamports: 8 bytes (little-endian uint64)
// - data_len: 4 bytes (little-endian uint32)
// - data:     data_len bytes
// - owner:    32 bytes
const (
	recordHeaderSize = 8 + 4
	recordFooterSize = 32
	recordMinSize    = recordHeaderSize + recordFooterSize
)

// ErrInvalidAccountRecord is returned when a stored record is malformed.
var ErrInvalidAccountRecord = errors.New("invalid account record")

// SerializeAccount encodes an account into the record format.
func SerializeAccount(account *types.Account) ([]byte, error) {
	if account == nil {
		return nil, errors.New("cannot serialize nil account")
	}

	dataLen := len(account.Data)
	buf := make([]byte, recordMinSize+dataLen)

	offset := 0
	binary.LittleEndian.PutUint64(buf[offset:], account.Lamports)
	offset += 8
	binary.LittleEndian.PutUint32(buf[offset:], uint32(dataLen))
	offset += 4
	copy(buf[offset:], account.Data)
	offset += dataLen
	copy(buf[offset:], account.Owner[:])

	return buf, nil
}

// DeserializeAccount decodes an account from the record format.
func DeserializeAccount(data []byte) (*types.Account, error) {
	if len(data) < recordMinSize {
		return nil, fmt.Errorf("%w: need at least %d bytes, got %d",
			ErrInvalidAccountRecord, recordMinSize, len(data))
	}

	lamports := binary.LittleEndian.Uint64(data[0:8])
	dataLen := binary.LittleEndian.Uint32(data[8:12])

	expected := recordMinSize + int(dataLen)
	if len(data) != expected {
		return nil, fmt.Errorf("%w: need %d bytes, got %d",
			ErrInvalidAccountRecord, expected, len(data))
	}

	account := &types.Account{Lamports: lamports}
	if dataLen > 0 {
		account.Data = make([]byte, dataLen)
		copy(account.Data, data[recordHeaderSize:recordHeaderSize+int(dataLen)])
	}
	copy(account.Owner[:], data[recordHeaderSize+int(dataLen):])

	return account, nil
}
