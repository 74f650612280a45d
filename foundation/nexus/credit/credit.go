// Package credit implements the fixed-point arithmetic for the credit
// economy. All math runs through decimal values so no floating point
// drift can ever enter the ledger. Amounts that reach account balances
// are whole credits.
package credit

import (
	"errors"

	"github.com/shopspring/decimal"
)

// ErrInvalidSize is returned when a size is zero or negative.
var ErrInvalidSize = errors.New("size must be a positive number of GB")

// one is the smallest fee a download can carry.
var one = decimal.NewFromInt(1)

// UploadCredit calculates the whole credits granted for sharing a resource
// of the specified size once the declaring transaction is mined.
func UploadCredit(sizeGB decimal.Decimal, creditPerGB uint64) (uint64, error) {
	if !sizeGB.IsPositive() {
		return 0, ErrInvalidSize
	}

	credit := sizeGB.Mul(decimal.NewFromUint64(creditPerGB)).Floor()

	return uint64(credit.IntPart()), nil
}

// DownloadCost calculates the whole credits a download costs and the fee
// paid to the miner who settles it. The fee is never less than one credit.
func DownloadCost(sizeGB decimal.Decimal, creditPerGB uint64, tipRate decimal.Decimal) (cost uint64, fee uint64, err error) {
	if !sizeGB.IsPositive() {
		return 0, 0, ErrInvalidSize
	}

	costDec := sizeGB.Mul(decimal.NewFromUint64(creditPerGB)).Floor()

	feeDec := costDec.Mul(tipRate).Floor()
	if feeDec.LessThan(one) {
		feeDec = one
	}

	return uint64(costDec.IntPart()), uint64(feeDec.IntPart()), nil
}
