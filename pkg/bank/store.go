// Package bank is the host side of an invocation: it stores accounts,
// assembles the borrowed handles a program executes against, and commits or
// discards the results atomically. A dispatch failure leaves the store
// byte-identical to before the invocation.
package bank

import (
	"github.com/fortiblox/x1-progkit/pkg/types"
)

// Store is the account storage interface.
type Store interface {
	// GetAccount retrieves an account by pubkey.
	// Returns nil, nil if the account does not exist.
	GetAccount(pubkey types.Pubkey) (*types.Account, error)

	// SetAccount stores an account.
	SetAccount(pubkey types.Pubkey, account *types.Account) error

	// DeleteAccount removes an account.
	DeleteAccount(pubkey types.Pubkey) error

	// HasAccount returns true if the account exists.
	HasAccount(pubkey types.Pubkey) bool

	// AccountCount returns the total number of accounts.
	AccountCount() uint64

	// ForEach visits every stored account. Used by snapshots; the visit
	// order is unspecified.
	ForEach(fn func(pubkey types.Pubkey, account *types.Account) error) error

	// Close closes the store.
	Close() error
}
