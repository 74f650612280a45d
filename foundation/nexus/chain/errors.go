package chain

import (
	"fmt"
	"strings"
)

// SettleError records a transaction that failed to apply during
// settlement. The rest of the batch still settles; the failed
// transaction is dropped from the block and reported back.
type SettleError struct {
	Tx  Tx
	Err error
}

// Error implements the error interface.
func (se SettleError) Error() string {
	return fmt.Sprintf("{TX: %s, ERROR: %s}", se.Tx, se.Err)
}

// SettleErrors represents the set of settlement failures for one block.
type SettleErrors []SettleError

// Error implements the error interface.
func (ses SettleErrors) Error() string {
	var sb strings.Builder
	for _, se := range ses {
		sb.WriteString(se.Error())
	}

	return sb.String()
}
