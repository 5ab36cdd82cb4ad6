package app

import (
	"github.com/witnet/witnetd/domain/chainmanager"
	"github.com/witnet/witnetd/domain/consensus/model/externalapi"
	"github.com/witnet/witnetd/domain/consensus/utils/addresses"
	"github.com/witnet/witnetd/domain/consensus/utils/consensushashing"
	"github.com/witnet/witnetd/domain/consensus/utils/rewards"
	"github.com/witnet/witnetd/domain/datarequest"
)

func renderAddress(hrp string, pkh externalapi.PublicKeyHash) string {
	address, err := addresses.EncodeAddress(hrp, pkh)
	if err != nil {
		return pkh.String()
	}
	return address
}

// logBlockRewards logs where the mint of block pays to, and the rewards the
// data requests posted in block offer to their witnesses
func logBlockRewards(chainManager *chainmanager.ChainManager, block *externalapi.Block) {
	c := chainManager.Consensus()
	hrp := c.Params().Bech32HRP
	blockHash := consensushashing.BlockHash(block)
	blockReward := c.BlockReward(block.Epoch())

	for _, tx := range block.Transactions {
		switch c.ClassifyTransaction(tx) {
		case externalapi.TransactionTypeMint:
			mintValue := uint64(0)
			for _, output := range tx.Outputs {
				mintValue += output.Amount()
				if valueTransfer, ok := output.(*externalapi.ValueTransferOutput); ok {
					log.Debugf("Block %s pays %d satowits to %s", blockHash, valueTransfer.Value,
						renderAddress(hrp, valueTransfer.PKH))
				}
			}
			if mintValue >= blockReward {
				log.Infof("Block %s at epoch %d mints %d satowits: a reward of %d and %d in fees",
					blockHash, block.Epoch(), mintValue, blockReward, mintValue-blockReward)
			} else {
				log.Infof("Block %s at epoch %d mints %d satowits, below the reward of %d",
					blockHash, block.Epoch(), mintValue, blockReward)
			}

		case externalapi.TransactionTypeDataRequest:
			txHash := consensushashing.TransactionHash(tx)
			for i, output := range tx.Outputs {
				dataRequest, ok := output.(*externalapi.DataRequestOutput)
				if !ok {
					continue
				}
				logDataRequestRewards(externalapi.NewOutputPointer(txHash, uint32(i)), dataRequest, hrp)
			}
		}
	}
}

func logDataRequestRewards(outputPointer *externalapi.OutputPointer, dataRequest *externalapi.DataRequestOutput,
	hrp string) {

	commitReward, err := rewards.CommitReward(dataRequest)
	if err != nil {
		log.Warnf("Data request %s: %s", outputPointer, err)
		return
	}
	revealReward, err := rewards.RevealReward(dataRequest)
	if err != nil {
		log.Warnf("Data request %s: %s", outputPointer, err)
		return
	}
	valueTransferReward, err := rewards.ValueTransferReward(dataRequest)
	if err != nil {
		log.Warnf("Data request %s: %s", outputPointer, err)
		return
	}
	log.Infof("Data request %s by %s asks for %d witnesses: commit reward %d, reveal reward %d, "+
		"value transfer reward %d", outputPointer, renderAddress(hrp, dataRequest.PKH), dataRequest.Witnesses,
		commitReward, revealReward, valueTransferReward)
}

func logChainState(chainManager *chainmanager.ChainManager) {
	tip := chainManager.Tip()
	utxoPool := chainManager.UTXOPool()
	log.Infof("Chain tip is %s. The UTXO pool holds %d outputs, with commitment %s",
		tip, utxoPool.Len(), utxoPool.Commitment())

	dataRequestPool, ok := chainManager.DataRequestPool().(*datarequest.Pool)
	if !ok {
		return
	}
	log.Infof("%d data requests are being resolved, %d were tallied",
		len(dataRequestPool.PendingDataRequests()), len(dataRequestPool.FinishedDataRequests()))
	for _, outputPointer := range dataRequestPool.PendingDataRequests() {
		state, _ := dataRequestPool.DataRequestState(outputPointer)
		log.Debugf("Data request %s is in stage %s since epoch %d with %d commits and %d reveals",
			outputPointer, state.Stage, state.Epoch, len(state.Commits), len(state.Reveals))
	}
}
