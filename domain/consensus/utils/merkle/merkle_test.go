package merkle

import (
	"testing"

	"github.com/witnet/witnetd/domain/consensus/model/externalapi"
	"github.com/witnet/witnetd/domain/consensus/utils/hashes"
)

func leaf(b byte) *externalapi.DomainHash {
	return externalapi.NewDomainHashFromByteArray(&[externalapi.DomainHashSize]byte{b})
}

func TestMerkleTreeRoot(t *testing.T) {
	a, b, c, d, e := leaf(1), leaf(2), leaf(3), leaf(4), leaf(5)
	ab := hashMerkleBranches(a, b)
	cd := hashMerkleBranches(c, d)
	abcd := hashMerkleBranches(ab, cd)

	tests := []struct {
		name     string
		leaves   []*externalapi.DomainHash
		expected *externalapi.DomainHash
	}{
		{name: "empty", leaves: nil, expected: hashes.HashData([]byte{})},
		{name: "single", leaves: []*externalapi.DomainHash{a}, expected: a},
		{name: "pair", leaves: []*externalapi.DomainHash{a, b}, expected: ab},
		{name: "odd leaf is promoted", leaves: []*externalapi.DomainHash{a, b, c}, expected: hashMerkleBranches(ab, c)},
		{name: "four", leaves: []*externalapi.DomainHash{a, b, c, d}, expected: abcd},
		{name: "odd node is promoted twice", leaves: []*externalapi.DomainHash{a, b, c, d, e}, expected: hashMerkleBranches(abcd, e)},
	}

	for _, test := range tests {
		root := MerkleTreeRoot(test.leaves)
		if !root.Equal(test.expected) {
			t.Errorf("MerkleTreeRoot %s: expected %s, got %s", test.name, test.expected, root)
		}
	}
}

func TestMerkleTreeRootEmptyIsKnownDigest(t *testing.T) {
	expected := "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	if root := MerkleTreeRoot(nil); root.String() != expected {
		t.Fatalf("MerkleTreeRoot: expected the SHA-256 of the empty string, got %s", root)
	}
}

func TestMerkleTreeRootOrderMatters(t *testing.T) {
	a, b := leaf(1), leaf(2)
	if MerkleTreeRoot([]*externalapi.DomainHash{a, b}).Equal(MerkleTreeRoot([]*externalapi.DomainHash{b, a})) {
		t.Fatalf("MerkleTreeRoot: swapping leaves must change the root")
	}
}

func transaction(value uint64) *externalapi.Transaction {
	return &externalapi.Transaction{
		Inputs:  []*externalapi.Input{},
		Outputs: []externalapi.Output{&externalapi.ValueTransferOutput{Value: value}},
	}
}

func TestValidateMerkleTree(t *testing.T) {
	newBlock := func() *externalapi.Block {
		txs := []*externalapi.Transaction{transaction(1), transaction(2), transaction(3)}
		return &externalapi.Block{
			Header:       &externalapi.BlockHeader{HashMerkleRoot: *CalculateHashMerkleRoot(txs)},
			Transactions: txs,
		}
	}

	if !ValidateMerkleTree(newBlock()) {
		t.Fatalf("ValidateMerkleTree: an unmodified block should validate")
	}

	mutated := newBlock()
	mutated.Transactions[1].Outputs[0].(*externalapi.ValueTransferOutput).Value = 20
	if ValidateMerkleTree(mutated) {
		t.Fatalf("ValidateMerkleTree: mutating a transaction should invalidate the merkle root")
	}

	reordered := newBlock()
	reordered.Transactions[0], reordered.Transactions[1] = reordered.Transactions[1], reordered.Transactions[0]
	if ValidateMerkleTree(reordered) {
		t.Fatalf("ValidateMerkleTree: reordering transactions should invalidate the merkle root")
	}

	alteredRoot := newBlock()
	alteredRoot.Header.HashMerkleRoot = *leaf(7)
	if ValidateMerkleTree(alteredRoot) {
		t.Fatalf("ValidateMerkleTree: altering the declared root should fail validation")
	}
}
