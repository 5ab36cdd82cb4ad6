package externalapi

import "fmt"

// BlockVersion is the current latest supported block version.
const BlockVersion uint16 = 0

// Epoch is a fixed-duration slot of the chain. At most one block is
// consolidated per epoch.
type Epoch uint32

// CheckpointBeacon identifies a chain position: an epoch and the hash of the
// block at that epoch. A block header's beacon is its claim about its
// predecessor.
type CheckpointBeacon struct {
	Checkpoint    Epoch
	HashPrevBlock DomainHash
}

func (beacon CheckpointBeacon) String() string {
	return fmt.Sprintf("%d:%s", beacon.Checkpoint, beacon.HashPrevBlock)
}

// BlockHeader represents the header part of a witnet block
type BlockHeader struct {
	Version        uint16
	Beacon         CheckpointBeacon
	HashMerkleRoot DomainHash
}

// BlockEligibilityClaim is the proof that the miner was eligible to produce
// the block
type BlockEligibilityClaim struct {
	Proof []byte
}

// Block represents a witnet block
type Block struct {
	Header       *BlockHeader
	Proof        BlockEligibilityClaim
	Transactions []*Transaction
	Signature    *KeyedSignature
}

// Epoch returns the epoch the block claims to belong to
func (block *Block) Epoch() Epoch {
	return block.Header.Beacon.Checkpoint
}

// HashPrevBlock returns the hash the block claims for its predecessor
func (block *Block) HashPrevBlock() *DomainHash {
	return &block.Header.Beacon.HashPrevBlock
}

// Clone returns a deep clone of the block
func (block *Block) Clone() *Block {
	headerClone := *block.Header

	transactionsClone := make([]*Transaction, len(block.Transactions))
	for i, tx := range block.Transactions {
		transactionsClone[i] = tx.Clone()
	}

	return &Block{
		Header:       &headerClone,
		Proof:        BlockEligibilityClaim{Proof: cloneBytes(block.Proof.Proof)},
		Transactions: transactionsClone,
		Signature:    block.Signature.Clone(),
	}
}
