package model

import "github.com/witnet/witnetd/domain/consensus/model/externalapi"

// UTXOPool is the set of spendable outputs at a given chain position,
// indexed by their output pointer
type UTXOPool interface {
	UTXOPoolReader
	Insert(outputPointer *externalapi.OutputPointer, output externalapi.Output)
	Remove(outputPointer *externalapi.OutputPointer)
	Clone() UTXOPool
}

// UTXOPoolReader is the read-only part of UTXOPool
type UTXOPoolReader interface {
	Get(outputPointer *externalapi.OutputPointer) (externalapi.Output, bool)
	Contains(outputPointer *externalapi.OutputPointer) bool
	Len() int
	Iterator() UTXOPoolIterator
	Commitment() *externalapi.DomainHash
}

// UTXOPoolIterator iterates over a UTXO pool in ascending output pointer order
type UTXOPoolIterator interface {
	Next() bool
	Get() (outputPointer *externalapi.OutputPointer, output externalapi.Output)
}
