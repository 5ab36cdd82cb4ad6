package utxotransitionmanager

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/witnet/witnetd/domain/consensus/model"
	"github.com/witnet/witnetd/domain/consensus/model/externalapi"
	"github.com/witnet/witnetd/domain/consensus/ruleerrors"
	"github.com/witnet/witnetd/domain/consensus/utils/consensushashing"
	"github.com/witnet/witnetd/infrastructure/logger"
)

// ApplyBlockTransactions applies the transactions of block, in order, to
// clones of utxoPool and dataRequestPool. The given pools are never modified:
// on failure the clones are dropped, and on success they are returned inside
// the BlockInChain.
//
// The outputs spent by data request inputs stay in the pool until every
// transaction of the block was applied, since all the commitments to a data
// request spend the same output.
func (utm *utxoTransitionManager) ApplyBlockTransactions(block *externalapi.Block, utxoPool model.UTXOPool,
	dataRequestPool model.DataRequestPool) (*model.BlockInChain, error) {

	onEnd := logger.LogAndMeasureExecutionTime(log, "ApplyBlockTransactions")
	defer onEnd()

	workingUTXOPool := utxoPool.Clone()
	workingDataRequestPool := dataRequestPool.Clone()

	blockHash := consensushashing.BlockHash(block)
	epoch := block.Epoch()

	var removeLater []*externalapi.OutputPointer
	for _, tx := range block.Transactions {
		err := utm.transactionValidator.ValidateTransaction(tx, workingUTXOPool)
		if err != nil {
			return nil, err
		}

		for _, input := range tx.Inputs {
			if input.Kind == externalapi.InputKindDataRequest {
				removeLater = append(removeLater, input.OutputPointer())
				continue
			}
			workingUTXOPool.Remove(input.OutputPointer())
		}

		txHash := consensushashing.TransactionHash(tx)
		for i, output := range tx.Outputs {
			workingUTXOPool.Insert(externalapi.NewOutputPointer(txHash, uint32(i)), output)
		}

		err = workingDataRequestPool.ProcessTransaction(tx, epoch, blockHash)
		if err != nil {
			if errors.Is(err, ruleerrors.ErrInvalidDataRequestTransition) {
				return nil, err
			}
			return nil, errors.Wrapf(ruleerrors.ErrInvalidDataRequestTransition,
				"transaction %s was refused by the data request pool: %s", txHash, err)
		}
	}

	for _, outputPointer := range removeLater {
		workingUTXOPool.Remove(outputPointer)
	}

	log.Debug(logger.NewLogClosure(func() string {
		return fmt.Sprintf("Applied %d transactions of block %s, UTXO pool size is now %d with commitment %s",
			len(block.Transactions), blockHash, workingUTXOPool.Len(), workingUTXOPool.Commitment())
	}))

	return &model.BlockInChain{
		Block:           block,
		UTXOPool:        workingUTXOPool,
		DataRequestPool: workingDataRequestPool,
	}, nil
}
