package state

import (
	"strings"

	"github.com/nexusbt/nexus/foundation/nexus/accounts"
	"github.com/nexusbt/nexus/foundation/nexus/chain"
)

// BlockFilter represents the optional filters for a blocks query. Nil or
// empty fields impose no constraint.
type BlockFilter struct {
	Number       *uint64
	HashFragment string
	Miner        string
}

// VisibleBlocks applies the access policy to the chain: administrators
// see every block matching the filters; everyone else sees only the
// blocks they mined, and any miner filter they supplied is ignored.
// The function is pure and mutates nothing.
func VisibleBlocks(caller string, role accounts.Role, filter BlockFilter, blocks []chain.Block) []chain.BlockData {
	minerFilter := filter.Miner
	if !role.IsAdmin() {
		minerFilter = ""
	}

	var out []chain.BlockData
	for _, block := range blocks {
		if !role.IsAdmin() && block.Header.Miner != caller {
			continue
		}
		if filter.Number != nil && block.Header.Number != *filter.Number {
			continue
		}
		if minerFilter != "" && block.Header.Miner != minerFilter {
			continue
		}

		blockData := chain.NewBlockData(block)
		if filter.HashFragment != "" && !strings.Contains(blockData.Hash, filter.HashFragment) {
			continue
		}

		out = append(out, blockData)
	}

	return out
}

// VisibleBalances applies the access policy to a balance query: a
// non-administrator only ever sees their own balance regardless of the
// targets requested; others are omitted, not errored. The function is
// pure and mutates nothing.
func VisibleBalances(caller string, role accounts.Role, targets []string, all map[string]accounts.Info) map[string]accounts.Info {
	if !role.IsAdmin() {
		out := make(map[string]accounts.Info, 1)
		if info, exists := all[caller]; exists {
			out[caller] = info
		}
		return out
	}

	if len(targets) == 0 {
		return all
	}

	out := make(map[string]accounts.Info, len(targets))
	for _, target := range targets {
		if info, exists := all[target]; exists {
			out[target] = info
		}
	}

	return out
}
