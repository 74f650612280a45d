package state

import (
	"errors"
	"time"

	"github.com/nexusbt/nexus/foundation/nexus/accounts"
	"github.com/nexusbt/nexus/foundation/nexus/catalogue"
	"github.com/nexusbt/nexus/foundation/nexus/chain"
)

// ErrForbidden is returned when a caller lacks the role an operation
// requires.
var ErrForbidden = errors.New("administrator role required")

// Stats carries aggregate information about the running simulation.
type Stats struct {
	ChainHeight uint64    `json:"chain_height"`
	PendingTxs  int       `json:"pending_txs"`
	Difficulty  uint16    `json:"difficulty"`
	ChainValid  bool      `json:"chain_valid"`
	Accounts    int       `json:"accounts"`
	Time        time.Time `json:"time"`
}

// =============================================================================

// RegisterAccount creates a new account with the initial credit grant.
func (s *State) RegisterAccount(username string) (accounts.Info, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	info, err := s.accounts.Register(username)
	if err != nil {
		return accounts.Info{}, err
	}

	s.evHandler("state: RegisterAccount: %q identity[%s] balance[%d]", username, info.Identity, info.Balance)

	return info, nil
}

// QueryAccount returns the information for a single account with no
// policy filtering. It is used to resolve callers at the boundary.
func (s *State) QueryAccount(username string) (accounts.Info, error) {
	return s.accounts.Query(username)
}

// QueryBalances returns the balances visible to the caller for the
// requested targets, filtered by the access policy. Reads take the state
// lock so they never observe a partially settled block.
func (s *State) QueryBalances(caller string, targets []string) (map[string]accounts.Info, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	callerInfo, err := s.accounts.Query(caller)
	if err != nil {
		return nil, err
	}

	return VisibleBalances(caller, callerInfo.Role, targets, s.accounts.Copy()), nil
}

// QueryWealthBoard returns every account balance. It is restricted to
// administrators.
func (s *State) QueryWealthBoard(caller string) (map[string]accounts.Info, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	callerInfo, err := s.accounts.Query(caller)
	if err != nil {
		return nil, err
	}
	if !callerInfo.Role.IsAdmin() {
		return nil, ErrForbidden
	}

	return s.accounts.Copy(), nil
}

// QueryBlocks returns the blocks visible to the caller, filtered by the
// access policy.
func (s *State) QueryBlocks(caller string, filter BlockFilter) ([]chain.BlockData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	callerInfo, err := s.accounts.Query(caller)
	if err != nil {
		return nil, err
	}

	return VisibleBlocks(caller, callerInfo.Role, filter, s.chain.Copy()), nil
}

// QueryMempool returns a copy of the pending transactions in enqueue
// order.
func (s *State) QueryMempool() []chain.Tx {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.mempool.Copy()
}

// QueryStats returns aggregate information about the simulation.
func (s *State) QueryStats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Stats{
		ChainHeight: s.chain.Height(),
		PendingTxs:  s.mempool.Count(),
		Difficulty:  s.genesis.Difficulty,
		ChainValid:  s.chain.Validate() == nil,
		Accounts:    len(s.accounts.Copy()),
		Time:        time.Now().UTC(),
	}
}

// =============================================================================

// SearchFiles returns the active files matching the filters.
func (s *State) SearchFiles(filter catalogue.QueryFilter) []catalogue.File {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.catalogue.Search(filter)
}

// ListFilesByOwner returns every file declared by the specified user.
func (s *State) ListFilesByOwner(username string) []catalogue.File {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.catalogue.ListByOwner(username)
}

// QueryFile returns the file with the specified id.
func (s *State) QueryFile(fileID uint64) (catalogue.File, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.catalogue.QueryByID(fileID)
}

// ReportFile flags an active file for moderation on behalf of the
// reporter.
func (s *State) ReportFile(fileID uint64, reporter string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.accounts.Query(reporter); err != nil {
		return err
	}

	if err := s.catalogue.Report(fileID); err != nil {
		return err
	}

	s.evHandler("state: ReportFile: file[%d] reported by %q", fileID, reporter)

	return nil
}

// RemoveFile takes a file out of the catalogue on behalf of the
// requester. Only the owner or an administrator may remove a file.
func (s *State) RemoveFile(fileID uint64, requester string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	requesterInfo, err := s.accounts.Query(requester)
	if err != nil {
		return err
	}

	if err := s.catalogue.Remove(fileID, requester, requesterInfo.Role.IsAdmin()); err != nil {
		return err
	}

	s.evHandler("state: RemoveFile: file[%d] removed by %q", fileID, requester)

	return nil
}
