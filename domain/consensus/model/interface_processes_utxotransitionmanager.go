package model

import "github.com/witnet/witnetd/domain/consensus/model/externalapi"

// UTXOTransitionManager applies the transactions of a block to snapshots of
// the UTXO pool and the data request pool
type UTXOTransitionManager interface {
	ApplyBlockTransactions(block *externalapi.Block, utxoPool UTXOPool,
		dataRequestPool DataRequestPool) (*BlockInChain, error)
}
