package bank

import (
	"sync"

	"github.com/fortiblox/x1-progkit/pkg/types"
)

// MemoryStore keeps accounts in a map. It backs tests and single-process
// hosts that bootstrap from a snapshot rather than a disk store.
type MemoryStore struct {
	mu       sync.RWMutex
	accounts map[types.Pubkey]*types.Account
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		accounts: make(map[types.Pubkey]*types.Account),
	}
}

// GetAccount returns a copy of the stored account, or nil, nil if the
// account does not exist. The copy keeps handle mutations away from the
// store until Execute commits them.
func (s *MemoryStore) GetAccount(pubkey types.Pubkey) (*types.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	account, ok := s.accounts[pubkey]
	if !ok {
		return nil, nil
	}
	return account.Clone(), nil
}

// SetAccount stores a copy of the account under pubkey, replacing any
// previous record.
func (s *MemoryStore) SetAccount(pubkey types.Pubkey, account *types.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.accounts[pubkey] = account.Clone()
	return nil
}

// DeleteAccount removes an account. Deleting a missing account is not an
// error; the commit loop reaps drained accounts unconditionally.
func (s *MemoryStore) DeleteAccount(pubkey types.Pubkey) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.accounts, pubkey)
	return nil
}

// HasAccount returns true if the account exists.
func (s *MemoryStore) HasAccount(pubkey types.Pubkey) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.accounts[pubkey]
	return ok
}

// AccountCount returns the total number of accounts.
func (s *MemoryStore) AccountCount() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return uint64(len(s.accounts))
}

// ForEach visits a copy of every stored account in unspecified order.
func (s *MemoryStore) ForEach(fn func(pubkey types.Pubkey, account *types.Account) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for pk, acct := range s.accounts {
		if err := fn(pk, acct.Clone()); err != nil {
			return err
		}
	}
	return nil
}

// Close drops every account. A closed store reads as empty; reopening
// means creating a new one.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.accounts = make(map[types.Pubkey]*types.Account)
	return nil
}
