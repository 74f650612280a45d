// Package chain implements the append-only block chain for the credit
// ledger and the transaction type settled into it.
package chain

import (
	"fmt"
	"time"
)

// Kind represents the set of economic events a transaction can settle.
// The member list is closed.
type Kind string

// Set of transaction kinds.
const (
	KindDeclare  Kind = "declare"
	KindDownload Kind = "download"
)

// ParseKind converts a string into a Kind.
func ParseKind(value string) (Kind, error) {
	kind := Kind(value)
	switch kind {
	case KindDeclare, KindDownload:
		return kind, nil
	}

	return "", fmt.Errorf("unknown transaction kind %q", value)
}

// =============================================================================

// Tx is an economic event awaiting settlement. A transaction is created
// when a declare or download request passes validation, is immutable, and
// is consumed exactly once by the mining engine.
type Tx struct {
	Kind         Kind   `json:"kind"`
	Initiator    string `json:"initiator"`
	Counterparty string `json:"counterparty,omitempty"` // File owner for downloads.
	FileID       uint64 `json:"file_id"`
	Amount       uint64 `json:"amount"`
	Fee          uint64 `json:"fee,omitempty"` // Miner tip, downloads only.
	TimeStamp    uint64 `json:"timestamp"`
}

// NewTx constructs a new transaction stamped with the current time.
func NewTx(kind Kind, initiator string, counterparty string, fileID uint64, amount uint64, fee uint64) Tx {
	return Tx{
		Kind:         kind,
		Initiator:    initiator,
		Counterparty: counterparty,
		FileID:       fileID,
		Amount:       amount,
		Fee:          fee,
		TimeStamp:    uint64(time.Now().UTC().Unix()),
	}
}

// String implements the fmt.Stringer interface for logging.
func (tx Tx) String() string {
	return fmt.Sprintf("%s:%s:file[%d]:amount[%d]", tx.Kind, tx.Initiator, tx.FileID, tx.Amount)
}
