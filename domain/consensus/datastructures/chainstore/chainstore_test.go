package chainstore

import (
	"reflect"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/witnet/witnetd/domain/consensus/model"
	"github.com/witnet/witnetd/domain/consensus/model/externalapi"
	"github.com/witnet/witnetd/domain/consensus/utils/consensushashing"
	"github.com/witnet/witnetd/domain/consensus/utils/merkle"
	"github.com/witnet/witnetd/domain/consensus/utils/utxo"
	"github.com/witnet/witnetd/domain/datarequest"
	"github.com/witnet/witnetd/infrastructure/db/database"
	"github.com/witnet/witnetd/infrastructure/db/database/ldb"
)

func prepareChainStoreForTest(t *testing.T) (path string, db *ldb.LevelDB, cs *ChainStore) {
	path = t.TempDir()
	db, err := ldb.NewLevelDB(path, 8)
	if err != nil {
		t.Fatalf("NewLevelDB: %s", err)
	}
	cs, err = New(db)
	if err != nil {
		t.Fatalf("New: %s", err)
	}
	return path, db, cs
}

func blockInChain(epoch externalapi.Epoch, value uint64) *model.BlockInChain {
	mint := &externalapi.Transaction{
		Outputs: []externalapi.Output{&externalapi.ValueTransferOutput{Value: value}},
	}
	block := &externalapi.Block{
		Header: &externalapi.BlockHeader{
			Beacon:         externalapi.CheckpointBeacon{Checkpoint: epoch},
			HashMerkleRoot: *merkle.CalculateHashMerkleRoot([]*externalapi.Transaction{mint}),
		},
		Transactions: []*externalapi.Transaction{mint},
	}
	utxoPool := utxo.NewUTXOPool()
	utxoPool.Insert(externalapi.NewOutputPointer(consensushashing.TransactionHash(mint), 0), mint.Outputs[0])
	return &model.BlockInChain{Block: block, UTXOPool: utxoPool, DataRequestPool: datarequest.NewPool()}
}

func TestChainStore(t *testing.T) {
	path, db, cs := prepareChainStoreForTest(t)

	_, err := cs.Tip()
	if !database.IsNotFoundError(err) {
		t.Fatalf("Tip: expected ErrNotFound on an empty store, got %v", err)
	}

	first := blockInChain(1, 10)
	second := blockInChain(2, 20)
	for _, b := range []*model.BlockInChain{first, second} {
		err := cs.StoreBlock(b)
		if err != nil {
			t.Fatalf("StoreBlock: %+v", err)
		}
	}

	secondHash := consensushashing.BlockHash(second.Block)
	tip, err := cs.Tip()
	if err != nil {
		t.Fatalf("Tip: %+v", err)
	}
	if tip.Checkpoint != 2 || !tip.HashPrevBlock.Equal(secondHash) {
		t.Fatalf("Tip: expected %d:%s, got %s", 2, secondHash, tip)
	}

	storedBlock, err := cs.Block(secondHash)
	if err != nil {
		t.Fatalf("Block: %+v", err)
	}
	if !consensushashing.BlockHash(storedBlock).Equal(secondHash) ||
		len(storedBlock.Transactions) != 1 ||
		!consensushashing.TransactionHash(storedBlock.Transactions[0]).Equal(
			consensushashing.TransactionHash(second.Block.Transactions[0])) {

		t.Fatalf("Block: stored block differs.\nExpected: %s\nGot: %s", spew.Sdump(second.Block), spew.Sdump(storedBlock))
	}

	commitment, err := cs.UTXOCommitment(secondHash)
	if err != nil {
		t.Fatalf("UTXOCommitment: %+v", err)
	}
	if !commitment.Equal(second.UTXOPool.Commitment()) {
		t.Fatalf("UTXOCommitment: expected %s, got %s", second.UTXOPool.Commitment(), commitment)
	}

	err = db.Close()
	if err != nil {
		t.Fatalf("Close: %s", err)
	}

	// The index and the count survive a restart
	db, err = ldb.NewLevelDB(path, 8)
	if err != nil {
		t.Fatalf("NewLevelDB: %s", err)
	}
	defer db.Close()
	cs, err = New(db)
	if err != nil {
		t.Fatalf("New: %+v", err)
	}
	if cs.Count() != 2 {
		t.Fatalf("Count: expected 2, got %d", cs.Count())
	}
	blockHashes, err := cs.BlockHashes()
	if err != nil {
		t.Fatalf("BlockHashes: %+v", err)
	}
	expectedHashes := []*externalapi.DomainHash{consensushashing.BlockHash(first.Block), secondHash}
	if !reflect.DeepEqual(blockHashes, expectedHashes) {
		t.Fatalf("BlockHashes: expected %v, got %v", expectedHashes, blockHashes)
	}

	hasBlock, err := cs.HasBlock(consensushashing.BlockHash(first.Block))
	if err != nil || !hasBlock {
		t.Fatalf("HasBlock: expected the first block to be stored (err: %v)", err)
	}
}
