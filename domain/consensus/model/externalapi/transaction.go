package externalapi

import "fmt"

// TransactionVersion is the current latest supported transaction version.
const TransactionVersion uint16 = 0

// Transaction represents a witnet transaction
type Transaction struct {
	Version uint16
	// Epoch is set on mints to the epoch of their block, which keeps the
	// mints of different blocks apart. It is zero on other transactions.
	Epoch      Epoch
	Inputs     []*Input
	Outputs    []Output
	Signatures []*KeyedSignature
}

// KeyedSignature is a signature together with the public key that produced it
type KeyedSignature struct {
	Signature []byte
	PublicKey []byte
}

// Clone returns a clone of the signature
func (signature *KeyedSignature) Clone() *KeyedSignature {
	if signature == nil {
		return nil
	}
	return &KeyedSignature{
		Signature: cloneBytes(signature.Signature),
		PublicKey: cloneBytes(signature.PublicKey),
	}
}

// Clone returns a deep clone of the transaction
func (tx *Transaction) Clone() *Transaction {
	inputsClone := make([]*Input, len(tx.Inputs))
	for i, input := range tx.Inputs {
		inputsClone[i] = input.Clone()
	}

	outputsClone := make([]Output, len(tx.Outputs))
	for i, output := range tx.Outputs {
		outputsClone[i] = output.Clone()
	}

	signaturesClone := make([]*KeyedSignature, len(tx.Signatures))
	for i, signature := range tx.Signatures {
		signaturesClone[i] = signature.Clone()
	}

	return &Transaction{
		Version:    tx.Version,
		Epoch:      tx.Epoch,
		Inputs:     inputsClone,
		Outputs:    outputsClone,
		Signatures: signaturesClone,
	}
}

// TransactionType is the role of a transaction. It is derived from the
// transaction's outputs and never stored.
type TransactionType uint8

// The transaction roles
const (
	TransactionTypeInvalid TransactionType = iota
	TransactionTypeMint
	TransactionTypeValueTransfer
	TransactionTypeDataRequest
	TransactionTypeCommit
	TransactionTypeReveal
	TransactionTypeTally
)

var transactionTypeStrings = [...]string{"InvalidType", "Mint", "ValueTransfer", "DataRequest", "Commit", "Reveal", "Tally"}

func (txType TransactionType) String() string {
	if int(txType) < len(transactionTypeStrings) {
		return transactionTypeStrings[txType]
	}
	return fmt.Sprintf("TransactionType(%d)", uint8(txType))
}
