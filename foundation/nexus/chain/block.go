package chain

import (
	"time"

	"github.com/nexusbt/nexus/foundation/nexus/signature"
)

// BlockHeader represents the common information required for each block.
type BlockHeader struct {
	Number        uint64 `json:"number"`          // Zero based position in the chain.
	PrevBlockHash string `json:"prev_block_hash"` // Hash of the previous block in the chain.
	TimeStamp     uint64 `json:"timestamp"`       // Time the block was mined.
	Miner         string `json:"miner"`           // The account who mined this block.
	MinerReward   uint64 `json:"miner_reward"`    // Base reward plus the fees collected in this block.
	Difficulty    uint16 `json:"difficulty"`      // Constant in this design, recorded for the record.
}

// Block represents a group of settled transactions batched together. A
// block is immutable once appended to the chain.
type Block struct {
	Header BlockHeader `json:"header"`
	Trans  []Tx        `json:"trans"`
}

// NewBlock constructs the next block for the chain from the settled
// transactions. The transactions keep their pool drain order.
func NewBlock(miner string, minerReward uint64, difficulty uint16, number uint64, prevBlockHash string, trans []Tx) Block {
	return Block{
		Header: BlockHeader{
			Number:        number,
			PrevBlockHash: prevBlockHash,
			TimeStamp:     uint64(time.Now().UTC().Unix()),
			Miner:         miner,
			MinerReward:   minerReward,
			Difficulty:    difficulty,
		},
		Trans: trans,
	}
}

// Hash returns the unique hash for the block. The digest covers the
// block's canonical serialization, which includes the previous block's
// hash, so any tampering breaks the chain links that follow.
func (b Block) Hash() string {
	return signature.Hash(b)
}

// =============================================================================

// BlockData represents the serializable form of a block with its hash
// made explicit. It is what snapshots store and queries return.
type BlockData struct {
	Hash  string      `json:"hash"`
	Block BlockHeader `json:"block"`
	Trans []Tx        `json:"trans"`
}

// NewBlockData constructs the value to serialize.
func NewBlockData(block Block) BlockData {
	return BlockData{
		Hash:  block.Hash(),
		Block: block.Header,
		Trans: block.Trans,
	}
}

// ToBlock converts a BlockData back into a Block.
func ToBlock(blockData BlockData) Block {
	return Block{
		Header: blockData.Block,
		Trans:  blockData.Trans,
	}
}
