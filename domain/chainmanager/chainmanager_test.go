package chainmanager

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/witnet/witnetd/domain/consensus"
	"github.com/witnet/witnetd/domain/consensus/datastructures/chainstore"
	"github.com/witnet/witnetd/domain/consensus/model/externalapi"
	"github.com/witnet/witnetd/domain/consensus/ruleerrors"
	"github.com/witnet/witnetd/domain/consensus/utils/consensushashing"
	"github.com/witnet/witnetd/domain/dagconfig"
	"github.com/witnet/witnetd/domain/miningmanager"
	"github.com/witnet/witnetd/infrastructure/db/database/ldb"
)

var minerPKH = externalapi.PublicKeyHash{0x42}

func newTestChainManager(t *testing.T, path string) (*ChainManager, func()) {
	db, err := ldb.NewLevelDB(path, 8)
	if err != nil {
		t.Fatalf("NewLevelDB: %s", err)
	}
	chainStore, err := chainstore.New(db)
	if err != nil {
		t.Fatalf("chainstore.New: %+v", err)
	}
	c := consensus.New(&dagconfig.DevnetParams, nil)
	cm, err := New(c, chainStore, miningmanager.NewFactory().NewMiningManager(c))
	if err != nil {
		t.Fatalf("New: %+v", err)
	}
	return cm, func() {
		err := db.Close()
		if err != nil {
			t.Fatalf("Close: %s", err)
		}
	}
}

func TestProcessBlock(t *testing.T) {
	path := t.TempDir()
	cm, teardown := newTestChainManager(t, path)

	genesisTip := externalapi.CheckpointBeacon{HashPrevBlock: *dagconfig.DevnetParams.GenesisHash}
	if cm.Tip() != genesisTip {
		t.Fatalf("Tip: expected %s on an empty chain, got %s", genesisTip, cm.Tip())
	}

	firstBlock := cm.BlockTemplate(1, minerPKH)
	_, err := cm.ProcessBlock(firstBlock, 1)
	if err != nil {
		t.Fatalf("ProcessBlock: first block: %+v", err)
	}

	mintPointer := externalapi.NewOutputPointer(consensushashing.TransactionHash(firstBlock.Transactions[0]), 0)
	reward := cm.Consensus().BlockReward(1)
	spend := &externalapi.Transaction{
		Inputs:  []*externalapi.Input{{PreviousOutput: *mintPointer}},
		Outputs: []externalapi.Output{&externalapi.ValueTransferOutput{PKH: externalapi.PublicKeyHash{1}, Value: reward - 5}},
	}
	err = cm.SubmitTransaction(spend)
	if err != nil {
		t.Fatalf("SubmitTransaction: %+v", err)
	}

	secondBlock := cm.BlockTemplate(2, minerPKH)
	if len(secondBlock.Transactions) != 2 || secondBlock.Transactions[1] != spend {
		t.Fatalf("BlockTemplate: expected the mempool transaction in the template")
	}
	_, err = cm.ProcessBlock(secondBlock, 2)
	if err != nil {
		t.Fatalf("ProcessBlock: second block: %+v", err)
	}

	secondHash := consensushashing.BlockHash(secondBlock)
	expectedTip := externalapi.CheckpointBeacon{Checkpoint: 2, HashPrevBlock: *secondHash}
	if cm.Tip() != expectedTip {
		t.Fatalf("Tip: expected %s, got %s", expectedTip, cm.Tip())
	}
	utxoPool := cm.UTXOPool()
	if utxoPool.Len() != 2 || utxoPool.Contains(mintPointer) {
		t.Fatalf("UTXOPool: expected the second mint and the spend output, got %d outputs", utxoPool.Len())
	}
	if len(cm.miningManager.Transactions()) != 0 {
		t.Fatalf("ProcessBlock: included transactions were not removed from the mempool")
	}

	// A block from the future leaves the chain untouched
	futureBlock := cm.BlockTemplate(10, minerPKH)
	_, err = cm.ProcessBlock(futureBlock, 3)
	if !errors.Is(err, ruleerrors.ErrBlockFromFuture) {
		t.Fatalf("ProcessBlock: expected ErrBlockFromFuture, got %v", err)
	}
	if cm.Tip() != expectedTip {
		t.Fatalf("ProcessBlock: a refused block changed the tip")
	}

	commitment := cm.UTXOPool().Commitment()
	teardown()

	reopened, teardown := newTestChainManager(t, path)
	defer teardown()
	if reopened.Tip() != expectedTip {
		t.Fatalf("New: expected the tip %s after a restart, got %s", expectedTip, reopened.Tip())
	}
	if !reopened.UTXOPool().Commitment().Equal(commitment) {
		t.Fatalf("New: UTXO pool differs after a restart")
	}
}

func TestSnapshotsAreIsolated(t *testing.T) {
	cm, teardown := newTestChainManager(t, t.TempDir())
	defer teardown()

	_, err := cm.ProcessBlock(cm.BlockTemplate(1, minerPKH), 1)
	if err != nil {
		t.Fatalf("ProcessBlock: %+v", err)
	}

	snapshot := cm.UTXOPool()
	snapshot.Insert(externalapi.NewOutputPointer(&externalapi.DomainHash{}, 0), &externalapi.ValueTransferOutput{Value: 1})
	if cm.UTXOPool().Len() != 1 {
		t.Fatalf("UTXOPool: modifying a snapshot changed the chain state")
	}
}
