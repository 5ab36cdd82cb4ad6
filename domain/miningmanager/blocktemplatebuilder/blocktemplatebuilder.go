package blocktemplatebuilder

import (
	"github.com/witnet/witnetd/domain/consensus"
	"github.com/witnet/witnetd/domain/consensus/model"
	"github.com/witnet/witnetd/domain/consensus/model/externalapi"
	"github.com/witnet/witnetd/domain/consensus/utils/consensushashing"
	"github.com/witnet/witnetd/infrastructure/logger"
)

// BlockTemplateBuilder creates block templates for a miner to consume
type BlockTemplateBuilder struct {
	consensus consensus.Consensus
}

// New creates a new BlockTemplateBuilder
func New(consensus consensus.Consensus) *BlockTemplateBuilder {
	return &BlockTemplateBuilder{consensus: consensus}
}

// GetBlockTemplate builds a block for epoch on top of the block whose hash is
// tipHash. Candidate transactions are tried in order, and the ones that don't
// apply on top of the previously selected ones are skipped. The block starts
// with a mint paying the block reward plus the fees of the selected
// transactions to minerPKH.
func (btb *BlockTemplateBuilder) GetBlockTemplate(tipHash *externalapi.DomainHash, epoch externalapi.Epoch,
	candidates []*externalapi.Transaction, utxoPool model.UTXOPool, dataRequestPool model.DataRequestPool,
	minerPKH externalapi.PublicKeyHash) *externalapi.Block {

	onEnd := logger.LogAndMeasureExecutionTime(log, "GetBlockTemplate")
	defer onEnd()

	workingUTXOPool := utxoPool.Clone()
	// trySelect never modifies the pool it is given
	workingDataRequestPool := dataRequestPool

	var selected []*externalapi.Transaction
	totalFees := uint64(0)
	mintValue := btb.consensus.BlockReward(epoch)
	for _, tx := range candidates {
		txHash := consensushashing.TransactionHash(tx)
		fee, nextDataRequestPool, ok := btb.trySelect(tx, txHash, epoch, tipHash, workingUTXOPool,
			workingDataRequestPool)
		if !ok {
			continue
		}
		if mintValue+fee < mintValue {
			log.Debugf("Skipping transaction %s: the mint value would overflow", txHash)
			continue
		}
		workingDataRequestPool = nextDataRequestPool

		for _, input := range tx.Inputs {
			// Data request outputs stay spendable by further commitments
			// until the block is applied
			if input.Kind == externalapi.InputKindDataRequest {
				continue
			}
			workingUTXOPool.Remove(input.OutputPointer())
		}
		for i, output := range tx.Outputs {
			workingUTXOPool.Insert(externalapi.NewOutputPointer(txHash, uint32(i)), output)
		}

		selected = append(selected, tx)
		totalFees += fee
		mintValue += fee
	}

	mint := &externalapi.Transaction{
		Version: externalapi.TransactionVersion,
		Epoch:   epoch,
		Outputs: []externalapi.Output{&externalapi.ValueTransferOutput{
			PKH:   minerPKH,
			Value: mintValue,
		}},
	}
	transactions := append([]*externalapi.Transaction{mint}, selected...)

	log.Debugf("Built a template for epoch %d with %d transactions paying %d in fees",
		epoch, len(selected), totalFees)

	return &externalapi.Block{
		Header: &externalapi.BlockHeader{
			Version:        externalapi.BlockVersion,
			Beacon:         externalapi.CheckpointBeacon{Checkpoint: epoch, HashPrevBlock: *tipHash},
			HashMerkleRoot: *btb.consensus.MerkleTreeRoot(transactions),
		},
		Transactions: transactions,
	}
}

// trySelect validates tx against the working pools and reports it to a clone
// of workingDataRequestPool, which it returns so that a refused transaction
// leaves no trace in the working one. The hash of the block being built is not
// known until every transaction is selected, so tipHash stands for it: this
// data request pool only screens candidates and is dropped afterwards.
func (btb *BlockTemplateBuilder) trySelect(tx *externalapi.Transaction, txHash *externalapi.DomainHash,
	epoch externalapi.Epoch, tipHash *externalapi.DomainHash, workingUTXOPool model.UTXOPool,
	workingDataRequestPool model.DataRequestPool) (uint64, model.DataRequestPool, bool) {

	err := btb.consensus.ValidateTransaction(tx, workingUTXOPool)
	if err != nil {
		log.Debugf("Skipping transaction %s: %s", txHash, err)
		return 0, nil, false
	}
	fee, err := btb.consensus.TransactionFee(tx, workingUTXOPool)
	if err != nil {
		log.Debugf("Skipping transaction %s: %s", txHash, err)
		return 0, nil, false
	}

	nextDataRequestPool := workingDataRequestPool.Clone()
	err = nextDataRequestPool.ProcessTransaction(tx, epoch, tipHash)
	if err != nil {
		log.Debugf("Skipping transaction %s: %s", txHash, err)
		return 0, nil, false
	}
	return fee, nextDataRequestPool, true
}
