package merkle

import (
	"github.com/witnet/witnetd/domain/consensus/model/externalapi"
	"github.com/witnet/witnetd/domain/consensus/utils/consensushashing"
	"github.com/witnet/witnetd/domain/consensus/utils/hashes"
)

// hashMerkleBranches takes two hashes, treated as the left and right tree
// nodes, and returns the hash of their concatenation.
func hashMerkleBranches(left, right *externalapi.DomainHash) *externalapi.DomainHash {
	writer := hashes.NewHashWriter()
	writer.InfallibleWrite(left.ByteSlice())
	writer.InfallibleWrite(right.ByteSlice())
	return writer.Finalize()
}

// MerkleTreeRoot folds the given leaves into a single root.
//
// Each level is built by hashing adjacent pairs of the previous level. When a
// level has an odd number of nodes the last one is promoted unchanged to the
// next level. A single leaf is its own root, and the root of no leaves is the
// hash of the empty string.
func MerkleTreeRoot(leaves []*externalapi.DomainHash) *externalapi.DomainHash {
	switch len(leaves) {
	case 0:
		return hashes.HashData([]byte{})
	case 1:
		return leaves[0].Clone()
	}

	level := leaves
	for len(level) > 1 {
		nextLevel := make([]*externalapi.DomainHash, 0, (len(level)+1)/2)
		for i := 0; i < len(level); i += 2 {
			if i+1 == len(level) {
				nextLevel = append(nextLevel, level[i])
				continue
			}
			nextLevel = append(nextLevel, hashMerkleBranches(level[i], level[i+1]))
		}
		level = nextLevel
	}
	return level[0].Clone()
}

// CalculateHashMerkleRoot calculates the merkle root of a tree consisting of the
// given transaction hashes, in the given order.
func CalculateHashMerkleRoot(transactions []*externalapi.Transaction) *externalapi.DomainHash {
	return MerkleTreeRoot(consensushashing.TransactionHashes(transactions))
}

// ValidateMerkleTree returns whether the merkle root declared in the block
// header matches the one calculated over the block transactions.
func ValidateMerkleTree(block *externalapi.Block) bool {
	return block.Header.HashMerkleRoot.Equal(CalculateHashMerkleRoot(block.Transactions))
}
