package state

import (
	"fmt"

	"github.com/nexusbt/nexus/foundation/nexus/accounts"
	"github.com/nexusbt/nexus/foundation/nexus/catalogue"
	"github.com/nexusbt/nexus/foundation/nexus/chain"
	"github.com/nexusbt/nexus/foundation/nexus/credit"
)

// SubmitDeclare validates a declaration against the catalogue, inserts
// the pending file, and enqueues the declare transaction. The returned
// credit amount is granted to the uploader once the transaction is mined.
func (s *State) SubmitDeclare(username string, nf catalogue.NewFile) (catalogue.File, uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acct, err := s.accounts.Query(username)
	if err != nil {
		return catalogue.File{}, 0, err
	}

	creditOnApproval, err := credit.UploadCredit(nf.SizeGB, s.genesis.CreditPerGB)
	if err != nil {
		return catalogue.File{}, 0, err
	}

	nf.Uploader = username
	nf.OwnerIdentity = acct.Identity

	file, err := s.catalogue.Declare(nf)
	if err != nil {
		return catalogue.File{}, 0, err
	}

	tx := chain.NewTx(chain.KindDeclare, username, "", file.ID, creditOnApproval, 0)
	s.mempool.Append(tx)
	s.accounts.AddPending(username)

	s.evHandler("state: SubmitDeclare: file[%d] %q by %q pending credit[%d]", file.ID, file.Name, username, creditOnApproval)

	return file, creditOnApproval, nil
}

// SubmitDownload validates a download attempt, records it against the
// catalogue, and enqueues the download transaction. Owners download
// their own files for free and no transaction is created.
func (s *State) SubmitDownload(username string, fileID uint64) (cost uint64, fee uint64, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acct, err := s.accounts.Query(username)
	if err != nil {
		return 0, 0, err
	}

	file, err := s.catalogue.QueryByID(fileID)
	if err != nil {
		return 0, 0, err
	}

	// Check the funds cover the download before any state changes. The
	// balance is verified again at settlement time since other pending
	// debits can interact.
	if username != file.Uploader {
		cost, fee, err = credit.DownloadCost(file.SizeGB, s.genesis.CreditPerGB, s.genesis.TipRate)
		if err != nil {
			return 0, 0, err
		}
		if acct.Balance < cost+fee {
			return 0, 0, fmt.Errorf("balance %d, needed %d: %w", acct.Balance, cost+fee, accounts.ErrInsufficientFunds)
		}
	}

	cost, fee, err = s.catalogue.RecordDownload(fileID, username)
	if err != nil {
		return 0, 0, err
	}

	// An owner download carries no charge and produces no transaction.
	if cost == 0 {
		return 0, 0, nil
	}

	tx := chain.NewTx(chain.KindDownload, username, file.Uploader, fileID, cost, fee)
	s.mempool.Append(tx)
	s.accounts.AddPending(username)

	s.evHandler("state: SubmitDownload: file[%d] by %q cost[%d] fee[%d]", fileID, username, cost, fee)

	return cost, fee, nil
}

// CheckName is a pure pre-check of the duplicate name rule. It does not
// mutate state.
func (s *State) CheckName(username string, name string) (bool, *catalogue.Conflict) {
	return s.catalogue.CheckName(username, name)
}
