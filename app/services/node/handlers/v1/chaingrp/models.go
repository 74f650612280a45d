package chaingrp

import "github.com/nexusbt/nexus/foundation/nexus/chain"

// AppMined is the response for a successfully mined block. Failures lists
// the transactions dropped from the block during settlement.
type AppMined struct {
	Block    chain.BlockData `json:"block"`
	Failures []string        `json:"failures"`
}
