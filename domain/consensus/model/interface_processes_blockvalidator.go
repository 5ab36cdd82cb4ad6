package model

import "github.com/witnet/witnetd/domain/consensus/model/externalapi"

// BlockValidator exposes a set of validation classes, after which
// it's possible to determine whether a block is valid
type BlockValidator interface {
	ValidateBlock(block *externalapi.Block, currentEpoch externalapi.Epoch, chainBeacon externalapi.CheckpointBeacon,
		utxoPool UTXOPool, dataRequestPool DataRequestPool) (*BlockInChain, error)
	ValidateCandidate(block *externalapi.Block, currentEpoch externalapi.Epoch) error
}
