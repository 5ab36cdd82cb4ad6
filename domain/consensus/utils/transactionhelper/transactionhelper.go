package transactionhelper

import (
	"github.com/pkg/errors"
	"github.com/witnet/witnetd/domain/consensus/model"
	"github.com/witnet/witnetd/domain/consensus/model/externalapi"
	"github.com/witnet/witnetd/domain/consensus/ruleerrors"
	"github.com/witnet/witnetd/domain/consensus/utils/consensushashing"
)

// InputsSum returns the sum of the values of the outputs pointed by the
// inputs of tx. It fails with ErrOutputNotFound on the first input whose
// output is not in utxoPool, and with ErrValueOverflow if the sum doesn't fit
// in 64 bits.
func InputsSum(tx *externalapi.Transaction, utxoPool model.UTXOPoolReader) (uint64, error) {
	totalValue := uint64(0)
	for _, input := range tx.Inputs {
		output, ok := utxoPool.Get(input.OutputPointer())
		if !ok {
			return 0, ruleerrors.NewErrOutputNotFound(input.OutputPointer().Clone())
		}
		newTotalValue := totalValue + output.Amount()
		if newTotalValue < totalValue {
			return 0, errors.Wrapf(ruleerrors.ErrValueOverflow, "the inputs of transaction %s "+
				"overflow a 64-bit value", consensushashing.TransactionHash(tx))
		}
		totalValue = newTotalValue
	}
	return totalValue, nil
}

// OutputsSum returns the sum of the values of the outputs of tx. It fails
// with ErrValueOverflow if the sum doesn't fit in 64 bits.
func OutputsSum(tx *externalapi.Transaction) (uint64, error) {
	totalValue := uint64(0)
	for _, output := range tx.Outputs {
		newTotalValue := totalValue + output.Amount()
		if newTotalValue < totalValue {
			return 0, errors.Wrapf(ruleerrors.ErrValueOverflow, "the outputs of transaction %s "+
				"overflow a 64-bit value", consensushashing.TransactionHash(tx))
		}
		totalValue = newTotalValue
	}
	return totalValue, nil
}

// Fee returns the difference between the inputs and the outputs of tx. The
// values of the inputs are looked up in utxoPool.
func Fee(tx *externalapi.Transaction, utxoPool model.UTXOPoolReader) (uint64, error) {
	inValue, err := InputsSum(tx, utxoPool)
	if err != nil {
		return 0, err
	}
	outValue, err := OutputsSum(tx)
	if err != nil {
		return 0, err
	}

	if outValue > inValue {
		return 0, errors.Wrapf(ruleerrors.ErrNegativeFee, "transaction outputs are worth %d "+
			"while its inputs are worth %d", outValue, inValue)
	}
	return inValue - outValue, nil
}

// IsMint returns whether tx is a mint transaction: one with no inputs, that
// is allowed to create new value
func IsMint(tx *externalapi.Transaction) bool {
	return len(tx.Inputs) == 0
}

// Classify returns the role of tx, read from the kind of its last output
func Classify(tx *externalapi.Transaction) externalapi.TransactionType {
	if len(tx.Outputs) == 0 {
		return externalapi.TransactionTypeInvalid
	}

	switch tx.Outputs[len(tx.Outputs)-1].Kind() {
	case externalapi.OutputKindDataRequest:
		return externalapi.TransactionTypeDataRequest
	case externalapi.OutputKindValueTransfer:
		if IsMint(tx) {
			return externalapi.TransactionTypeMint
		}
		return externalapi.TransactionTypeValueTransfer
	case externalapi.OutputKindCommit:
		return externalapi.TransactionTypeCommit
	case externalapi.OutputKindReveal:
		return externalapi.TransactionTypeReveal
	case externalapi.OutputKindTally:
		return externalapi.TransactionTypeTally
	}
	return externalapi.TransactionTypeInvalid
}
