// Package accounts maintains the credit ledger: per-account balances,
// roles, and pending transaction bookkeeping.
package accounts

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/nexusbt/nexus/foundation/nexus/genesis"
	"github.com/nexusbt/nexus/foundation/nexus/signature"
)

// Set of error variables for the ledger.
var (
	ErrExists            = errors.New("account already exists")
	ErrNotFound          = errors.New("account not found")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrInvalidUsername   = errors.New("invalid username")
)

// =============================================================================

// Role represents the set of roles an account can hold. The member list is
// closed; anything else fails to parse.
type Role string

// Set of known roles.
const (
	RoleMember Role = "member"
	RoleAdmin  Role = "administrator"
)

// ParseRole converts a string into a Role.
func ParseRole(value string) (Role, error) {
	role := Role(value)
	switch role {
	case RoleMember, RoleAdmin:
		return role, nil
	}

	return "", fmt.Errorf("unknown role %q", value)
}

// IsAdmin reports whether the role carries administrator rights.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// =============================================================================

// Info represents the information stored for an individual account. Balances
// are whole credits and only change during settlement.
type Info struct {
	Identity   string `json:"identity"`
	Role       Role   `json:"role"`
	Balance    uint64 `json:"balance"`
	PendingTxs int    `json:"pending_txs"`
}

// Accounts manages the set of accounts who transact on the ledger.
type Accounts struct {
	genesis genesis.Genesis
	info    map[string]Info
	mu      sync.RWMutex
}

// New constructs an accounts value and provisions the administrator
// account named in the genesis.
func New(genesis genesis.Genesis) (*Accounts, error) {
	accts := Accounts{
		genesis: genesis,
		info:    make(map[string]Info),
	}

	if genesis.AdminUser != "" {
		identity, err := signature.GenerateIdentity()
		if err != nil {
			return nil, err
		}

		accts.info[genesis.AdminUser] = Info{
			Identity: identity,
			Role:     RoleAdmin,
			Balance:  genesis.InitialCredit,
		}
	}

	return &accts, nil
}

// Register creates a new account with the initial credit grant and a
// freshly derived ledger identity.
func (act *Accounts) Register(username string) (Info, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return Info{}, ErrInvalidUsername
	}

	act.mu.Lock()
	defer act.mu.Unlock()

	if _, exists := act.info[username]; exists {
		return Info{}, ErrExists
	}

	identity, err := signature.GenerateIdentity()
	if err != nil {
		return Info{}, err
	}

	info := Info{
		Identity: identity,
		Role:     RoleMember,
		Balance:  act.genesis.InitialCredit,
	}
	act.info[username] = info

	return info, nil
}

// Query returns the information for the specified account.
func (act *Accounts) Query(username string) (Info, error) {
	act.mu.RLock()
	defer act.mu.RUnlock()

	info, exists := act.info[username]
	if !exists {
		return Info{}, ErrNotFound
	}

	return info, nil
}

// Copy makes a copy of the current information for all accounts.
func (act *Accounts) Copy() map[string]Info {
	act.mu.RLock()
	defer act.mu.RUnlock()

	accounts := make(map[string]Info, len(act.info))
	for username, info := range act.info {
		accounts[username] = info
	}
	return accounts
}

// ApplyCredit adds the specified amount of credits to the account. Credits
// are only applied by the mining engine during settlement.
func (act *Accounts) ApplyCredit(username string, amount uint64) error {
	act.mu.Lock()
	defer act.mu.Unlock()

	info, exists := act.info[username]
	if !exists {
		return ErrNotFound
	}

	info.Balance += amount
	act.info[username] = info

	return nil
}

// ApplyDebit removes the specified amount of credits from the account. The
// balance is re-verified here even though it was checked at enqueue time,
// since multiple pending debits against the same account can interact.
func (act *Accounts) ApplyDebit(username string, amount uint64) error {
	act.mu.Lock()
	defer act.mu.Unlock()

	info, exists := act.info[username]
	if !exists {
		return ErrNotFound
	}

	if info.Balance < amount {
		return fmt.Errorf("balance %d, needed %d: %w", info.Balance, amount, ErrInsufficientFunds)
	}

	info.Balance -= amount
	act.info[username] = info

	return nil
}

// AddPending increments the count of transactions waiting in the pool
// for the account.
func (act *Accounts) AddPending(username string) error {
	act.mu.Lock()
	defer act.mu.Unlock()

	info, exists := act.info[username]
	if !exists {
		return ErrNotFound
	}

	info.PendingTxs++
	act.info[username] = info

	return nil
}

// SettlePending decrements the count of transactions waiting in the pool
// for the account. Settlement drains every pending transaction, including
// those that fail to apply.
func (act *Accounts) SettlePending(username string) {
	act.mu.Lock()
	defer act.mu.Unlock()

	info, exists := act.info[username]
	if !exists {
		return
	}

	if info.PendingTxs > 0 {
		info.PendingTxs--
	}
	act.info[username] = info
}

// Replace swaps the current set of accounts with the specified set. It is
// used when restoring from a snapshot.
func (act *Accounts) Replace(accounts map[string]Info) {
	act.mu.Lock()
	defer act.mu.Unlock()

	act.info = make(map[string]Info, len(accounts))
	for username, info := range accounts {
		act.info[username] = info
	}
}
