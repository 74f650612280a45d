// Package genesis maintains access to the genesis file.
package genesis

import (
	"encoding/json"
	"os"
	"time"

	"github.com/shopspring/decimal"
)

// Genesis represents the genesis file. It carries the economic constants
// for the credit system and the account provisioned with the
// administrator role.
type Genesis struct {
	Date          time.Time       `json:"date"`
	ChainID       uint16          `json:"chain_id"`       // Unique id for this running instance.
	Difficulty    uint16          `json:"difficulty"`     // Constant in this design, recorded in every block.
	InitialCredit uint64          `json:"initial_credit"` // Credits granted to every new account.
	CreditPerGB   uint64          `json:"credit_per_gb"`  // Credits earned or spent per GB shared or downloaded.
	MiningReward  uint64          `json:"mining_reward"`  // Base reward for mining a block, before fees.
	TipRate       decimal.Decimal `json:"tip_rate"`       // Fraction of a download cost paid to the miner.
	MinSizeGB     decimal.Decimal `json:"min_size_gb"`    // Smallest declarable resource.
	MaxSizeGB     decimal.Decimal `json:"max_size_gb"`    // Largest declarable resource.
	AdminUser     string          `json:"admin_user"`     // Account provisioned with the administrator role.
}

// =============================================================================

// Load opens and consumes the genesis file.
func Load(path string) (Genesis, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Genesis{}, err
	}

	var genesis Genesis
	err = json.Unmarshal(content, &genesis)
	if err != nil {
		return Genesis{}, err
	}

	return genesis, nil
}

// Default returns a genesis with the demo economics. It is used when no
// genesis file is configured and by the tests.
func Default() Genesis {
	return Genesis{
		Date:          time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
		ChainID:       1,
		Difficulty:    1,
		InitialCredit: 10000,
		CreditPerGB:   1000,
		MiningReward:  50,
		TipRate:       decimal.RequireFromString("0.001"),
		MinSizeGB:     decimal.RequireFromString("0.01"),
		MaxSizeGB:     decimal.RequireFromString("1024"),
		AdminUser:     "admin",
	}
}
