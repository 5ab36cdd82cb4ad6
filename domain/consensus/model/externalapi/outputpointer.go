package externalapi

import "fmt"

// OutputPointer identifies exactly one output slot: the hash of the transaction
// that created it and the index of the output inside that transaction.
type OutputPointer struct {
	TransactionID DomainHash
	OutputIndex   uint32
}

// NewOutputPointer returns a new OutputPointer
func NewOutputPointer(transactionID *DomainHash, outputIndex uint32) *OutputPointer {
	return &OutputPointer{
		TransactionID: *transactionID,
		OutputIndex:   outputIndex,
	}
}

// String stringifies an output pointer.
func (op OutputPointer) String() string {
	return fmt.Sprintf("%s:%d", op.TransactionID, op.OutputIndex)
}

// Equal returns whether op equals to other
func (op *OutputPointer) Equal(other *OutputPointer) bool {
	if op == nil || other == nil {
		return op == other
	}
	return op.TransactionID.Equal(&other.TransactionID) && op.OutputIndex == other.OutputIndex
}

// Clone returns a clone of OutputPointer
func (op *OutputPointer) Clone() *OutputPointer {
	clone := *op
	return &clone
}

// Less returns true if op sorts before other: by transaction id, then by index
func (op *OutputPointer) Less(other *OutputPointer) bool {
	if !op.TransactionID.Equal(&other.TransactionID) {
		return op.TransactionID.Less(&other.TransactionID)
	}
	return op.OutputIndex < other.OutputIndex
}
