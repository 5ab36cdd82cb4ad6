package app

import (
	"io"

	"github.com/pkg/errors"
	"github.com/witnet/witnetd/domain/chainmanager"
	"github.com/witnet/witnetd/domain/consensus/model/externalapi"
	"github.com/witnet/witnetd/domain/consensus/utils/consensushashing"
	"github.com/witnet/witnetd/infrastructure/os/signal"
)

var errInterrupted = errors.New("interrupted")

// importBlocks feeds the blocks stored in r to chainManager, in order. Blocks
// that are already part of the chain are skipped. It returns the number of
// blocks that were added to the chain.
func importBlocks(r io.Reader, chainManager *chainmanager.ChainManager, currentEpoch externalapi.Epoch,
	interrupt <-chan struct{}) (int, error) {

	imported := 0
	err := readBlocks(r, func(block *externalapi.Block) error {
		if signal.InterruptRequested(interrupt) {
			return errInterrupted
		}

		blockHash := consensushashing.BlockHash(block)
		hasBlock, err := chainManager.HasBlock(blockHash)
		if err != nil {
			return err
		}
		if hasBlock {
			log.Debugf("Skipping block %s: already in the chain", blockHash)
			return nil
		}

		_, err = chainManager.ProcessBlock(block, currentEpoch)
		if err != nil {
			return errors.Wrapf(err, "block %s at epoch %d was rejected", blockHash, block.Epoch())
		}
		imported++
		logBlockRewards(chainManager, block)
		return nil
	})
	if errors.Is(err, errInterrupted) {
		log.Infof("Import interrupted")
		return imported, nil
	}
	return imported, err
}

// exportBlocks writes the blocks of the chain to w, in chain order, in the
// format importBlocks reads
func exportBlocks(w io.Writer, chainManager *chainmanager.ChainManager) (int, error) {
	blocks, err := chainManager.Blocks()
	if err != nil {
		return 0, err
	}
	for _, block := range blocks {
		err := writeBlock(w, block)
		if err != nil {
			return 0, err
		}
	}
	return len(blocks), nil
}
