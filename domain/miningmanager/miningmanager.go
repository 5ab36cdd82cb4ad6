package miningmanager

import (
	"github.com/witnet/witnetd/domain/consensus/model"
	"github.com/witnet/witnetd/domain/consensus/model/externalapi"
	"github.com/witnet/witnetd/domain/miningmanager/blocktemplatebuilder"
	"github.com/witnet/witnetd/domain/miningmanager/mempool"
)

// MiningManager creates block templates for mining as well as maintaining
// known transactions that have no yet been added to any block
type MiningManager interface {
	GetBlockTemplate(tipHash *externalapi.DomainHash, epoch externalapi.Epoch, utxoPool model.UTXOPool,
		dataRequestPool model.DataRequestPool, minerPKH externalapi.PublicKeyHash) *externalapi.Block
	HandleNewBlock(block *externalapi.Block)
	ValidateAndInsertTransaction(transaction *externalapi.Transaction, utxoPool model.UTXOPoolReader) error
	Transactions() []*mempool.Transaction
}

type miningManager struct {
	mempool              *mempool.Mempool
	blockTemplateBuilder *blocktemplatebuilder.BlockTemplateBuilder
}

// GetBlockTemplate creates a block template for a miner to consume, filled
// with the mempool transactions that apply on top of the given pools
func (mm *miningManager) GetBlockTemplate(tipHash *externalapi.DomainHash, epoch externalapi.Epoch,
	utxoPool model.UTXOPool, dataRequestPool model.DataRequestPool,
	minerPKH externalapi.PublicKeyHash) *externalapi.Block {

	mempoolTransactions := mm.mempool.Transactions()
	candidates := make([]*externalapi.Transaction, len(mempoolTransactions))
	for i, mempoolTransaction := range mempoolTransactions {
		candidates[i] = mempoolTransaction.Transaction
	}
	return mm.blockTemplateBuilder.GetBlockTemplate(tipHash, epoch, candidates, utxoPool, dataRequestPool, minerPKH)
}

// HandleNewBlock handles a new block that was just added to the chain
func (mm *miningManager) HandleNewBlock(block *externalapi.Block) {
	mm.mempool.HandleNewBlock(block)
}

// ValidateAndInsertTransaction validates the given transaction, and
// adds it to the set of known transactions that have not yet been
// added to any block
func (mm *miningManager) ValidateAndInsertTransaction(transaction *externalapi.Transaction,
	utxoPool model.UTXOPoolReader) error {

	return mm.mempool.ValidateAndInsertTransaction(transaction, utxoPool)
}

// Transactions returns the mempool transactions in the order they were
// accepted
func (mm *miningManager) Transactions() []*mempool.Transaction {
	return mm.mempool.Transactions()
}
