package transactionvalidator

import (
	"github.com/pkg/errors"
	"github.com/witnet/witnetd/domain/consensus/model"
	"github.com/witnet/witnetd/domain/consensus/model/externalapi"
	"github.com/witnet/witnetd/domain/consensus/ruleerrors"
	"github.com/witnet/witnetd/domain/consensus/utils/consensushashing"
	"github.com/witnet/witnetd/domain/consensus/utils/transactionhelper"
)

// ValidateTransaction validates tx against the outputs in utxoPool. Mint
// transactions have no inputs and are not checked here.
func (v *transactionValidator) ValidateTransaction(tx *externalapi.Transaction, utxoPool model.UTXOPoolReader) error {
	if transactionhelper.IsMint(tx) {
		return nil
	}

	err := v.checkDuplicateTransactionInputs(tx)
	if err != nil {
		return err
	}

	err = v.checkInputKinds(tx, utxoPool)
	if err != nil {
		return err
	}

	err = v.checkDataRequestEligibility(tx)
	if err != nil {
		return err
	}

	_, err = transactionhelper.Fee(tx, utxoPool)
	if err != nil {
		return err
	}

	return nil
}

func (v *transactionValidator) checkDataRequestEligibility(tx *externalapi.Transaction) error {
	for i, input := range tx.Inputs {
		if input.Kind != externalapi.InputKindDataRequest {
			continue
		}
		if !v.eligibilityVerifier.VerifyDataRequestEligibility(input) {
			return errors.Wrapf(ruleerrors.ErrNotValidPoeDataRequest, "input %d of transaction %s "+
				"is not eligible to resolve data request %s", i, consensushashing.TransactionHash(tx),
				input.OutputPointer())
		}
	}
	return nil
}

func (v *transactionValidator) checkDuplicateTransactionInputs(tx *externalapi.Transaction) error {
	existingOutputPointers := make(map[externalapi.OutputPointer]struct{}, len(tx.Inputs))
	for _, input := range tx.Inputs {
		if _, exists := existingOutputPointers[input.PreviousOutput]; exists {
			return errors.Wrapf(ruleerrors.ErrDuplicateTxInputs, "transaction %s spends output %s more than once",
				consensushashing.TransactionHash(tx), input.OutputPointer())
		}
		existingOutputPointers[input.PreviousOutput] = struct{}{}
	}
	return nil
}

// spendableOutputKinds lists, per input kind, the output kinds it may spend.
// Data request inputs are removed from the UTXO pool only at the end of the
// block, so letting them point anywhere else would allow an output to be
// spent more than once.
var spendableOutputKinds = map[externalapi.InputKind][]externalapi.OutputKind{
	externalapi.InputKindValueTransfer: {externalapi.OutputKindValueTransfer, externalapi.OutputKindTally},
	externalapi.InputKindDataRequest:   {externalapi.OutputKindDataRequest},
	externalapi.InputKindCommit:        {externalapi.OutputKindCommit},
	externalapi.InputKindReveal:        {externalapi.OutputKindReveal},
}

func (v *transactionValidator) checkInputKinds(tx *externalapi.Transaction, utxoPool model.UTXOPoolReader) error {
	for i, input := range tx.Inputs {
		output, ok := utxoPool.Get(input.OutputPointer())
		if !ok {
			return ruleerrors.NewErrOutputNotFound(input.OutputPointer().Clone())
		}
		if !canSpend(input.Kind, output.Kind()) {
			return errors.Wrapf(ruleerrors.ErrMismatchedInputKind, "input %d of transaction %s is a %s "+
				"input but spends the %s output %s", i, consensushashing.TransactionHash(tx), input.Kind,
				output.Kind(), input.OutputPointer())
		}
	}
	return nil
}

func canSpend(inputKind externalapi.InputKind, outputKind externalapi.OutputKind) bool {
	for _, spendable := range spendableOutputKinds[inputKind] {
		if spendable == outputKind {
			return true
		}
	}
	return false
}
