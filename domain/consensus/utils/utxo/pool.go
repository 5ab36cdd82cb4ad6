package utxo

import (
	"sort"

	"github.com/pkg/errors"
	"github.com/witnet/witnetd/domain/consensus/model"
	"github.com/witnet/witnetd/domain/consensus/model/externalapi"
	"github.com/witnet/witnetd/domain/consensus/utils/multiset"
)

type utxoPool struct {
	outputs    map[externalapi.OutputPointer]externalapi.Output
	commitment *multiset.Multiset
}

// NewUTXOPool returns a new empty UTXO pool
func NewUTXOPool() model.UTXOPool {
	return &utxoPool{
		outputs:    make(map[externalapi.OutputPointer]externalapi.Output),
		commitment: multiset.New(),
	}
}

// Get returns the output pointed by outputPointer, if it is unspent
func (up *utxoPool) Get(outputPointer *externalapi.OutputPointer) (externalapi.Output, bool) {
	output, ok := up.outputs[*outputPointer]
	return output, ok
}

// Contains returns whether the output pointed by outputPointer is unspent
func (up *utxoPool) Contains(outputPointer *externalapi.OutputPointer) bool {
	_, ok := up.outputs[*outputPointer]
	return ok
}

// Len returns the number of unspent outputs
func (up *utxoPool) Len() int {
	return len(up.outputs)
}

// Insert adds an unspent output to the pool, replacing the output that was
// previously stored under the same pointer
func (up *utxoPool) Insert(outputPointer *externalapi.OutputPointer, output externalapi.Output) {
	if existing, ok := up.outputs[*outputPointer]; ok {
		up.commitment.Remove(mustSerializeUTXO(outputPointer, existing))
	}
	up.outputs[*outputPointer] = output
	up.commitment.Add(mustSerializeUTXO(outputPointer, output))
}

// Remove removes the output pointed by outputPointer. Removing a missing
// output is a no-op.
func (up *utxoPool) Remove(outputPointer *externalapi.OutputPointer) {
	existing, ok := up.outputs[*outputPointer]
	if !ok {
		return
	}
	delete(up.outputs, *outputPointer)
	up.commitment.Remove(mustSerializeUTXO(outputPointer, existing))
}

// Commitment returns a hash committing to the content of the pool. Two pools
// holding the same outputs have the same commitment regardless of the order
// the outputs were inserted in.
func (up *utxoPool) Commitment() *externalapi.DomainHash {
	return up.commitment.Hash()
}

// Clone returns a deep copy of the pool
func (up *utxoPool) Clone() model.UTXOPool {
	outputsClone := make(map[externalapi.OutputPointer]externalapi.Output, len(up.outputs))
	for outputPointer, output := range up.outputs {
		outputsClone[outputPointer] = output.Clone()
	}
	return &utxoPool{
		outputs:    outputsClone,
		commitment: up.commitment.Clone(),
	}
}

// Iterator returns an iterator over a snapshot of the pool, sorted by output
// pointer
func (up *utxoPool) Iterator() model.UTXOPoolIterator {
	outputPointers := make([]externalapi.OutputPointer, 0, len(up.outputs))
	for outputPointer := range up.outputs {
		outputPointers = append(outputPointers, outputPointer)
	}
	sort.Slice(outputPointers, func(i, j int) bool {
		return outputPointers[i].Less(&outputPointers[j])
	})

	outputs := make([]externalapi.Output, len(outputPointers))
	for i, outputPointer := range outputPointers {
		outputs[i] = up.outputs[outputPointer]
	}

	return &utxoPoolIterator{
		outputPointers: outputPointers,
		outputs:        outputs,
		index:          -1,
	}
}

type utxoPoolIterator struct {
	outputPointers []externalapi.OutputPointer
	outputs        []externalapi.Output
	index          int
}

func (it *utxoPoolIterator) Next() bool {
	it.index++
	return it.index < len(it.outputPointers)
}

func (it *utxoPoolIterator) Get() (*externalapi.OutputPointer, externalapi.Output) {
	return &it.outputPointers[it.index], it.outputs[it.index]
}

func mustSerializeUTXO(outputPointer *externalapi.OutputPointer, output externalapi.Output) []byte {
	serialized, err := SerializeUTXO(outputPointer, output)
	if err != nil {
		panic(errors.Wrapf(err, "couldn't serialize UTXO %s", outputPointer))
	}
	return serialized
}
