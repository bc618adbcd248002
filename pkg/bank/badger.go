package bank

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/dgraph-io/badger/v4"

	"github.com/fortiblox/x1-progkit/pkg/types"
)

// accountKeyPrefix namespaces account records inside BadgerDB.
const accountKeyPrefix = "account:"

// BadgerStore is a persistent Store backed by BadgerDB.
type BadgerStore struct {
	db    *badger.DB
	count atomic.Uint64
}

// NewBadgerStore opens (or creates) a Badger-backed store at path.
func NewBadgerStore(path string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil // Badger's own logging is noise here

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger db: %w", err)
	}

	s := &BadgerStore{db: db}
	count, err := s.countAccounts()
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to count accounts: %w", err)
	}
	s.count.Store(count)

	return s, nil
}

// makeAccountKey builds the Badger key for an account.
func makeAccountKey(pubkey types.Pubkey) []byte {
	key := make([]byte, len(accountKeyPrefix)+32)
	copy(key, accountKeyPrefix)
	copy(key[len(accountKeyPrefix):], pubkey[:])
	return key
}

// GetAccount retrieves an account by pubkey.
// Returns nil, nil if the account does not exist.
func (s *BadgerStore) GetAccount(pubkey types.Pubkey) (*types.Account, error) {
	var account *types.Account

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(makeAccountKey(pubkey))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return nil
			}
			return err
		}
		return item.Value(func(val []byte) error {
			account, err = DeserializeAccount(val)
			return err
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get account %s: %w", pubkey, err)
	}
	return account, nil
}

// SetAccount stores an account.
func (s *BadgerStore) SetAccount(pubkey types.Pubkey, account *types.Account) error {
	record, err := SerializeAccount(account)
	if err != nil {
		return err
	}

	key := makeAccountKey(pubkey)
	existed := s.HasAccount(pubkey)

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, record)
	})
	if err != nil {
		return fmt.Errorf("failed to set account %s: %w", pubkey, err)
	}
	if !existed {
		s.count.Add(1)
	}
	return nil
}

// DeleteAccount removes an account.
func (s *BadgerStore) DeleteAccount(pubkey types.Pubkey) error {
	if !s.HasAccount(pubkey) {
		return nil
	}
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(makeAccountKey(pubkey))
	})
	if err != nil {
		return fmt.Errorf("failed to delete account %s: %w", pubkey, err)
	}
	s.count.Add(^uint64(0))
	return nil
}

// HasAccount returns true if the account exists.
func (s *BadgerStore) HasAccount(pubkey types.Pubkey) bool {
	err := s.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(makeAccountKey(pubkey))
		return err
	})
	return err == nil
}

// AccountCount returns the total number of accounts.
func (s *BadgerStore) AccountCount() uint64 {
	return s.count.Load()
}

// ForEach visits every stored account.
func (s *BadgerStore) ForEach(fn func(pubkey types.Pubkey, account *types.Account) error) error {
	return s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(accountKeyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			pubkey, err := types.PubkeyFromBytes(item.Key()[len(accountKeyPrefix):])
			if err != nil {
				return err
			}
			var account *types.Account
			if err := item.Value(func(val []byte) error {
				account, err = DeserializeAccount(val)
				return err
			}); err != nil {
				return err
			}
			if err := fn(pubkey, account); err != nil {
				return err
			}
		}
		return nil
	})
}

// countAccounts scans the account prefix once at startup.
func (s *BadgerStore) countAccounts() (uint64, error) {
	var count uint64
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(accountKeyPrefix)
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			count++
		}
		return nil
	})
	return count, err
}

// Close closes the underlying database.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}
