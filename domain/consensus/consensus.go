package consensus

import (
	"github.com/witnet/witnetd/domain/consensus/model"
	"github.com/witnet/witnetd/domain/consensus/model/externalapi"
	"github.com/witnet/witnetd/domain/consensus/utils/merkle"
	"github.com/witnet/witnetd/domain/consensus/utils/rewards"
	"github.com/witnet/witnetd/domain/consensus/utils/transactionhelper"
	"github.com/witnet/witnetd/domain/dagconfig"
)

// Consensus validates blocks and transactions of a witnet chain. It holds no
// chain state: every call works on the snapshots it is given.
type Consensus interface {
	ValidateBlock(block *externalapi.Block, currentEpoch externalapi.Epoch, chainBeacon externalapi.CheckpointBeacon,
		utxoPool model.UTXOPool, dataRequestPool model.DataRequestPool) (*model.BlockInChain, error)
	ValidateCandidate(block *externalapi.Block, currentEpoch externalapi.Epoch) error
	ValidateTransaction(tx *externalapi.Transaction, utxoPool model.UTXOPoolReader) error

	BlockReward(epoch externalapi.Epoch) uint64
	MerkleTreeRoot(transactions []*externalapi.Transaction) *externalapi.DomainHash
	TransactionFee(tx *externalapi.Transaction, utxoPool model.UTXOPoolReader) (uint64, error)
	ClassifyTransaction(tx *externalapi.Transaction) externalapi.TransactionType

	Params() *dagconfig.Params
}

type consensus struct {
	dagParams *dagconfig.Params

	blockValidator       model.BlockValidator
	transactionValidator model.TransactionValidator
}

// ValidateBlock validates block on top of the chain whose tip is chainBeacon,
// and returns the block together with the pools it results in
func (s *consensus) ValidateBlock(block *externalapi.Block, currentEpoch externalapi.Epoch,
	chainBeacon externalapi.CheckpointBeacon, utxoPool model.UTXOPool,
	dataRequestPool model.DataRequestPool) (*model.BlockInChain, error) {

	return s.blockValidator.ValidateBlock(block, currentEpoch, chainBeacon, utxoPool, dataRequestPool)
}

// ValidateCandidate validates a block proposed for currentEpoch
func (s *consensus) ValidateCandidate(block *externalapi.Block, currentEpoch externalapi.Epoch) error {
	return s.blockValidator.ValidateCandidate(block, currentEpoch)
}

// ValidateTransaction validates a single transaction against utxoPool
func (s *consensus) ValidateTransaction(tx *externalapi.Transaction, utxoPool model.UTXOPoolReader) error {
	return s.transactionValidator.ValidateTransaction(tx, utxoPool)
}

func (s *consensus) BlockReward(epoch externalapi.Epoch) uint64 {
	return rewards.BlockReward(epoch)
}

func (s *consensus) MerkleTreeRoot(transactions []*externalapi.Transaction) *externalapi.DomainHash {
	return merkle.CalculateHashMerkleRoot(transactions)
}

func (s *consensus) TransactionFee(tx *externalapi.Transaction, utxoPool model.UTXOPoolReader) (uint64, error) {
	return transactionhelper.Fee(tx, utxoPool)
}

func (s *consensus) ClassifyTransaction(tx *externalapi.Transaction) externalapi.TransactionType {
	return transactionhelper.Classify(tx)
}

func (s *consensus) Params() *dagconfig.Params {
	return s.dagParams
}
