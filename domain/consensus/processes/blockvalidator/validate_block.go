package blockvalidator

import (
	"github.com/pkg/errors"
	"github.com/witnet/witnetd/domain/consensus/model"
	"github.com/witnet/witnetd/domain/consensus/model/externalapi"
	"github.com/witnet/witnetd/domain/consensus/ruleerrors"
	"github.com/witnet/witnetd/domain/consensus/utils/consensushashing"
	"github.com/witnet/witnetd/domain/consensus/utils/merkle"
	"github.com/witnet/witnetd/infrastructure/logger"
)

// ValidateBlock checks block against the chain whose tip is chainBeacon, then
// applies its transactions to snapshots of utxoPool and dataRequestPool.
// Nothing the caller passed in is modified.
func (v *blockValidator) ValidateBlock(block *externalapi.Block, currentEpoch externalapi.Epoch,
	chainBeacon externalapi.CheckpointBeacon, utxoPool model.UTXOPool,
	dataRequestPool model.DataRequestPool) (*model.BlockInChain, error) {

	onEnd := logger.LogAndMeasureExecutionTime(log, "ValidateBlock")
	defer onEnd()

	err := v.checkEligibility(block)
	if err != nil {
		return nil, err
	}

	err = v.checkBlockHashMerkleRoot(block)
	if err != nil {
		return nil, err
	}

	err = v.checkBlockNotFromFuture(block, currentEpoch)
	if err != nil {
		return nil, err
	}

	err = v.checkBlockNotOlderThanTip(block, chainBeacon)
	if err != nil {
		return nil, err
	}

	err = v.checkPreviousHashIsKnown(block, chainBeacon)
	if err != nil {
		return nil, err
	}

	return v.utxoTransitionManager.ApplyBlockTransactions(block, utxoPool, dataRequestPool)
}

// ValidateCandidate checks a block proposed for the current epoch. Unlike
// ValidateBlock it requires the block to belong exactly to currentEpoch.
func (v *blockValidator) ValidateCandidate(block *externalapi.Block, currentEpoch externalapi.Epoch) error {
	onEnd := logger.LogAndMeasureExecutionTime(log, "ValidateCandidate")
	defer onEnd()

	err := v.checkEligibility(block)
	if err != nil {
		return err
	}

	if block.Epoch() != currentEpoch {
		return errors.Wrapf(ruleerrors.ErrCandidateFromDifferentEpoch, "candidate %s is from epoch %d "+
			"while the current epoch is %d", consensushashing.BlockHash(block), block.Epoch(), currentEpoch)
	}

	return nil
}

func (v *blockValidator) checkEligibility(block *externalapi.Block) error {
	if !v.eligibilityVerifier.VerifyBlockEligibility(block) {
		return errors.Wrapf(ruleerrors.ErrNotValidPoe, "block %s has an invalid proof of eligibility",
			consensushashing.BlockHash(block))
	}
	return nil
}

func (v *blockValidator) checkBlockHashMerkleRoot(block *externalapi.Block) error {
	calculatedHashMerkleRoot := merkle.CalculateHashMerkleRoot(block.Transactions)
	if !block.Header.HashMerkleRoot.Equal(calculatedHashMerkleRoot) {
		return errors.Wrapf(ruleerrors.ErrNotValidMerkleTree, "block hash merkle root is invalid - block "+
			"header indicates %s, but calculated value is %s",
			&block.Header.HashMerkleRoot, calculatedHashMerkleRoot)
	}
	return nil
}

func (v *blockValidator) checkBlockNotFromFuture(block *externalapi.Block, currentEpoch externalapi.Epoch) error {
	if block.Epoch() > currentEpoch {
		return errors.Wrapf(ruleerrors.ErrBlockFromFuture, "block epoch %d is greater than the current epoch %d",
			block.Epoch(), currentEpoch)
	}
	return nil
}

func (v *blockValidator) checkBlockNotOlderThanTip(block *externalapi.Block, chainBeacon externalapi.CheckpointBeacon) error {
	if block.Epoch() < chainBeacon.Checkpoint {
		return errors.Wrapf(ruleerrors.ErrBlockOlderThanTip, "block epoch %d is lower than the epoch %d "+
			"of the chain tip", block.Epoch(), chainBeacon.Checkpoint)
	}
	return nil
}

// checkPreviousHashIsKnown accepts blocks on top of the chain tip, and blocks
// on top of the genesis block, which start the chain
func (v *blockValidator) checkPreviousHashIsKnown(block *externalapi.Block, chainBeacon externalapi.CheckpointBeacon) error {
	hashPrevBlock := block.HashPrevBlock()
	if hashPrevBlock.Equal(&chainBeacon.HashPrevBlock) || hashPrevBlock.Equal(v.genesisHash) {
		return nil
	}
	return errors.Wrapf(ruleerrors.ErrPreviousHashNotKnown, "block previous hash %s is neither the chain tip %s "+
		"nor the genesis block", hashPrevBlock, &chainBeacon.HashPrevBlock)
}
