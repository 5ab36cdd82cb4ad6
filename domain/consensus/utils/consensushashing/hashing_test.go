package consensushashing

import (
	"testing"

	"github.com/witnet/witnetd/domain/consensus/model/externalapi"
)

func valueTransfer(value uint64) *externalapi.Transaction {
	return &externalapi.Transaction{
		Inputs: []*externalapi.Input{
			{Kind: externalapi.InputKindValueTransfer, PreviousOutput: externalapi.OutputPointer{OutputIndex: 1}},
		},
		Outputs: []externalapi.Output{&externalapi.ValueTransferOutput{Value: value}},
	}
}

func TestTransactionHashIsDeterministic(t *testing.T) {
	first := TransactionHash(valueTransfer(5))
	second := TransactionHash(valueTransfer(5))
	if !first.Equal(second) {
		t.Fatalf("TransactionHash: equal transactions hashed to %s and %s", first, second)
	}

	other := TransactionHash(valueTransfer(6))
	if first.Equal(other) {
		t.Fatalf("TransactionHash: different transactions hashed to the same value %s", first)
	}
}

func TestTransactionHashIgnoresSignatures(t *testing.T) {
	tx := valueTransfer(5)
	unsigned := TransactionHash(tx)

	tx.Signatures = []*externalapi.KeyedSignature{{Signature: []byte{1}, PublicKey: []byte{2}}}
	signed := TransactionHash(tx)
	if !unsigned.Equal(signed) {
		t.Fatalf("TransactionHash: adding a signature changed the hash from %s to %s", unsigned, signed)
	}
}

func TestTransactionHashes(t *testing.T) {
	txs := []*externalapi.Transaction{valueTransfer(1), valueTransfer(2)}
	hashes := TransactionHashes(txs)
	if len(hashes) != 2 {
		t.Fatalf("TransactionHashes: expected 2 hashes, got %d", len(hashes))
	}
	for i, tx := range txs {
		if !hashes[i].Equal(TransactionHash(tx)) {
			t.Fatalf("TransactionHashes: hash #%d doesn't match TransactionHash", i)
		}
	}
}

func TestBlockHashCoversHeaderOnly(t *testing.T) {
	block := &externalapi.Block{
		Header:       &externalapi.BlockHeader{Beacon: externalapi.CheckpointBeacon{Checkpoint: 3}},
		Transactions: []*externalapi.Transaction{valueTransfer(1)},
	}
	hash := BlockHash(block)

	block.Transactions = nil
	if !hash.Equal(BlockHash(block)) {
		t.Fatalf("BlockHash: the block hash must only depend on its header")
	}

	block.Header.Beacon.Checkpoint = 4
	if hash.Equal(BlockHash(block)) {
		t.Fatalf("BlockHash: changing the header epoch must change the block hash")
	}
}
