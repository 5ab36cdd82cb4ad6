package model

import "github.com/witnet/witnetd/domain/consensus/model/externalapi"

// BlockInChain is the result of a successful block validation: the block
// together with the UTXO pool and data request pool it results in. Nothing is
// committed until the caller decides to make it the new chain tip.
type BlockInChain struct {
	Block           *externalapi.Block
	UTXOPool        UTXOPool
	DataRequestPool DataRequestPool
}

// Beacon returns the beacon declared by the validated block
func (blockInChain *BlockInChain) Beacon() externalapi.CheckpointBeacon {
	return blockInChain.Block.Header.Beacon
}
