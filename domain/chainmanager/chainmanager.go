package chainmanager

import (
	"github.com/pkg/errors"
	"github.com/witnet/witnetd/domain/consensus"
	"github.com/witnet/witnetd/domain/consensus/datastructures/chainstore"
	"github.com/witnet/witnetd/domain/consensus/model"
	"github.com/witnet/witnetd/domain/consensus/model/externalapi"
	"github.com/witnet/witnetd/domain/consensus/utils/consensushashing"
	"github.com/witnet/witnetd/domain/consensus/utils/utxo"
	"github.com/witnet/witnetd/domain/datarequest"
	"github.com/witnet/witnetd/domain/miningmanager"
	"github.com/witnet/witnetd/infrastructure/logger"
	"github.com/witnet/witnetd/util/prioritylock"
)

// ErrUTXOCommitmentMismatch indicates that replaying the stored chain led to
// a UTXO pool other than the one recorded when the blocks were stored
var ErrUTXOCommitmentMismatch = errors.New("UTXO commitment mismatch")

// ChainManager holds the state of the chain: its tip, the UTXO pool and the
// data request pool that result from it, and the mempool. Blocks are
// validated against snapshots of the state, which is replaced only once a
// block was validated and stored. Block processing takes precedence over
// mempool work.
type ChainManager struct {
	mtx *prioritylock.Mutex

	consensus     consensus.Consensus
	chainStore    *chainstore.ChainStore
	miningManager miningmanager.MiningManager

	tip             externalapi.CheckpointBeacon
	utxoPool        model.UTXOPool
	dataRequestPool model.DataRequestPool
}

// New returns a ChainManager on top of the blocks stored in chainStore. The
// stored blocks are replayed to rebuild the chain state.
func New(consensus consensus.Consensus, chainStore *chainstore.ChainStore,
	miningManager miningmanager.MiningManager) (*ChainManager, error) {

	cm := &ChainManager{
		mtx:             prioritylock.New(),
		consensus:       consensus,
		chainStore:      chainStore,
		miningManager:   miningManager,
		tip:             externalapi.CheckpointBeacon{HashPrevBlock: *consensus.Params().GenesisHash},
		utxoPool:        utxo.NewUTXOPool(),
		dataRequestPool: datarequest.NewPool(),
	}

	err := cm.replay()
	if err != nil {
		return nil, err
	}
	return cm, nil
}

func (cm *ChainManager) replay() error {
	onEnd := logger.LogAndMeasureExecutionTime(log, "replay")
	defer onEnd()

	blockHashes, err := cm.chainStore.BlockHashes()
	if err != nil {
		return err
	}

	for _, blockHash := range blockHashes {
		block, err := cm.chainStore.Block(blockHash)
		if err != nil {
			return err
		}
		blockInChain, err := cm.consensus.ValidateBlock(block, block.Epoch(), cm.tip, cm.utxoPool, cm.dataRequestPool)
		if err != nil {
			return errors.Wrapf(err, "stored block %s is invalid", blockHash)
		}

		storedCommitment, err := cm.chainStore.UTXOCommitment(blockHash)
		if err != nil {
			return err
		}
		commitment := blockInChain.UTXOPool.Commitment()
		if !commitment.Equal(storedCommitment) {
			return errors.Wrapf(ErrUTXOCommitmentMismatch, "replaying block %s led to UTXO commitment %s, "+
				"but %s was stored", blockHash, commitment, storedCommitment)
		}

		cm.setState(blockInChain, blockHash)
	}

	if len(blockHashes) > 0 {
		log.Infof("Loaded %d blocks, chain tip is %s", len(blockHashes), cm.tip)
	}
	return nil
}

// ProcessBlock validates block on top of the chain tip, and if it's valid,
// stores it and makes it the new tip
func (cm *ChainManager) ProcessBlock(block *externalapi.Block, currentEpoch externalapi.Epoch) (*model.BlockInChain, error) {
	cm.mtx.HighPriorityWriteLock()
	defer cm.mtx.HighPriorityWriteUnlock()

	blockInChain, err := cm.consensus.ValidateBlock(block, currentEpoch, cm.tip, cm.utxoPool, cm.dataRequestPool)
	if err != nil {
		return nil, err
	}

	err = cm.chainStore.StoreBlock(blockInChain)
	if err != nil {
		return nil, err
	}

	blockHash := consensushashing.BlockHash(block)
	cm.setState(blockInChain, blockHash)
	cm.miningManager.HandleNewBlock(block)

	log.Infof("Accepted block %s with %d transactions, chain tip is now %s",
		blockHash, len(block.Transactions), cm.tip)

	return blockInChain, nil
}

func (cm *ChainManager) setState(blockInChain *model.BlockInChain, blockHash *externalapi.DomainHash) {
	cm.tip = externalapi.CheckpointBeacon{Checkpoint: blockInChain.Block.Epoch(), HashPrevBlock: *blockHash}
	cm.utxoPool = blockInChain.UTXOPool
	cm.dataRequestPool = blockInChain.DataRequestPool
}

// SubmitTransaction validates tx against the UTXO pool of the chain tip and
// adds it to the mempool
func (cm *ChainManager) SubmitTransaction(tx *externalapi.Transaction) error {
	cm.mtx.LowPriorityWriteLock()
	defer cm.mtx.LowPriorityWriteUnlock()

	return cm.miningManager.ValidateAndInsertTransaction(tx, cm.utxoPool)
}

// BlockTemplate builds a block for epoch on top of the chain tip, paying its
// reward to minerPKH
func (cm *ChainManager) BlockTemplate(epoch externalapi.Epoch, minerPKH externalapi.PublicKeyHash) *externalapi.Block {
	cm.mtx.LowPriorityWriteLock()
	defer cm.mtx.LowPriorityWriteUnlock()

	return cm.miningManager.GetBlockTemplate(&cm.tip.HashPrevBlock, epoch, cm.utxoPool, cm.dataRequestPool, minerPKH)
}

// Tip returns the beacon of the chain tip: its epoch and its hash. Before
// any block was accepted the tip is the genesis hash at epoch 0.
func (cm *ChainManager) Tip() externalapi.CheckpointBeacon {
	cm.mtx.HighPriorityReadLock()
	defer cm.mtx.HighPriorityReadUnlock()

	return cm.tip
}

// UTXOPool returns a snapshot of the UTXO pool at the chain tip
func (cm *ChainManager) UTXOPool() model.UTXOPool {
	cm.mtx.HighPriorityReadLock()
	defer cm.mtx.HighPriorityReadUnlock()

	return cm.utxoPool.Clone()
}

// DataRequestPool returns a snapshot of the data request pool at the chain
// tip
func (cm *ChainManager) DataRequestPool() model.DataRequestPool {
	cm.mtx.HighPriorityReadLock()
	defer cm.mtx.HighPriorityReadUnlock()

	return cm.dataRequestPool.Clone()
}

// HasBlock returns whether the block with the given hash is part of the
// chain
func (cm *ChainManager) HasBlock(blockHash *externalapi.DomainHash) (bool, error) {
	cm.mtx.HighPriorityReadLock()
	defer cm.mtx.HighPriorityReadUnlock()

	return cm.chainStore.HasBlock(blockHash)
}

// Blocks returns the blocks of the chain, from the oldest to the tip
func (cm *ChainManager) Blocks() ([]*externalapi.Block, error) {
	cm.mtx.HighPriorityReadLock()
	defer cm.mtx.HighPriorityReadUnlock()

	blockHashes, err := cm.chainStore.BlockHashes()
	if err != nil {
		return nil, err
	}
	blocks := make([]*externalapi.Block, len(blockHashes))
	for i, blockHash := range blockHashes {
		blocks[i], err = cm.chainStore.Block(blockHash)
		if err != nil {
			return nil, err
		}
	}
	return blocks, nil
}

// Consensus returns the consensus rules the chain is validated with
func (cm *ChainManager) Consensus() consensus.Consensus {
	return cm.consensus
}
