package transactionvalidator

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/witnet/witnetd/domain/consensus/model/externalapi"
	"github.com/witnet/witnetd/domain/consensus/processes/eligibility"
	"github.com/witnet/witnetd/domain/consensus/ruleerrors"
	"github.com/witnet/witnetd/domain/consensus/utils/utxo"
)

type neverEligible struct{}

func (neverEligible) VerifyBlockEligibility(*externalapi.Block) bool       { return false }
func (neverEligible) VerifyDataRequestEligibility(*externalapi.Input) bool { return false }

var fundingPointer = externalapi.NewOutputPointer(
	externalapi.NewDomainHashFromByteArray(&[externalapi.DomainHashSize]byte{0xaa}), 0)

func spend(kind externalapi.InputKind, outputValue uint64) *externalapi.Transaction {
	return &externalapi.Transaction{
		Inputs:  []*externalapi.Input{{Kind: kind, PreviousOutput: *fundingPointer}},
		Outputs: []externalapi.Output{&externalapi.ValueTransferOutput{Value: outputValue}},
	}
}

func TestValidateTransaction(t *testing.T) {
	pool := utxo.NewUTXOPool()
	pool.Insert(fundingPointer, &externalapi.ValueTransferOutput{Value: 100})
	validator := New(eligibility.NewAlwaysEligible())

	tests := []struct {
		name          string
		tx            *externalapi.Transaction
		expectedError error
	}{
		{
			name: "valid spend",
			tx:   spend(externalapi.InputKindValueTransfer, 90),
		},
		{
			name:          "negative fee",
			tx:            spend(externalapi.InputKindValueTransfer, 101),
			expectedError: ruleerrors.ErrNegativeFee,
		},
		{
			name: "duplicate inputs",
			tx: &externalapi.Transaction{
				Inputs: []*externalapi.Input{
					{PreviousOutput: *fundingPointer},
					{PreviousOutput: *fundingPointer},
				},
				Outputs: []externalapi.Output{&externalapi.ValueTransferOutput{Value: 150}},
			},
			expectedError: ruleerrors.ErrDuplicateTxInputs,
		},
		{
			name: "mint creates value",
			tx: &externalapi.Transaction{
				Outputs: []externalapi.Output{&externalapi.ValueTransferOutput{Value: 1_000_000}},
			},
		},
		{
			name: "missing output",
			tx: &externalapi.Transaction{
				Inputs: []*externalapi.Input{{PreviousOutput: externalapi.OutputPointer{OutputIndex: 7}}},
			},
			expectedError: ruleerrors.ErrOutputNotFound,
		},
	}

	for _, test := range tests {
		err := validator.ValidateTransaction(test.tx, pool)
		if test.expectedError == nil {
			if err != nil {
				t.Fatalf("ValidateTransaction: %s: unexpected error: %s", test.name, err)
			}
			continue
		}
		if !errors.Is(err, test.expectedError) {
			t.Fatalf("ValidateTransaction: %s: expected %v, got %v", test.name, test.expectedError, err)
		}
	}
}

func TestValidateTransactionDataRequestEligibility(t *testing.T) {
	pool := utxo.NewUTXOPool()
	pool.Insert(fundingPointer, &externalapi.DataRequestOutput{Value: 100, Witnesses: 1})
	validator := New(neverEligible{})

	err := validator.ValidateTransaction(spend(externalapi.InputKindDataRequest, 10), pool)
	if !errors.Is(err, ruleerrors.ErrNotValidPoeDataRequest) {
		t.Fatalf("ValidateTransaction: expected ErrNotValidPoeDataRequest, got %v", err)
	}

	valueTransferPool := utxo.NewUTXOPool()
	valueTransferPool.Insert(fundingPointer, &externalapi.ValueTransferOutput{Value: 100})
	err = validator.ValidateTransaction(spend(externalapi.InputKindValueTransfer, 10), valueTransferPool)
	if err != nil {
		t.Fatalf("ValidateTransaction: ordinary spends should not need a proof of eligibility: %s", err)
	}
}

func TestValidateTransactionInputKinds(t *testing.T) {
	validator := New(eligibility.NewAlwaysEligible())

	outputs := map[externalapi.OutputKind]externalapi.Output{
		externalapi.OutputKindValueTransfer: &externalapi.ValueTransferOutput{Value: 100},
		externalapi.OutputKindDataRequest:   &externalapi.DataRequestOutput{Value: 100, Witnesses: 1},
		externalapi.OutputKindCommit:        &externalapi.CommitOutput{Value: 100},
		externalapi.OutputKindReveal:        &externalapi.RevealOutput{Value: 100},
		externalapi.OutputKindTally:         &externalapi.TallyOutput{Value: 100},
	}
	allowed := map[externalapi.InputKind][]externalapi.OutputKind{
		externalapi.InputKindValueTransfer: {externalapi.OutputKindValueTransfer, externalapi.OutputKindTally},
		externalapi.InputKindDataRequest:   {externalapi.OutputKindDataRequest},
		externalapi.InputKindCommit:        {externalapi.OutputKindCommit},
		externalapi.InputKindReveal:        {externalapi.OutputKindReveal},
	}

	for inputKind, allowedOutputKinds := range allowed {
		for outputKind, output := range outputs {
			pool := utxo.NewUTXOPool()
			pool.Insert(fundingPointer, output)

			expectAllowed := false
			for _, allowedOutputKind := range allowedOutputKinds {
				if allowedOutputKind == outputKind {
					expectAllowed = true
				}
			}

			err := validator.ValidateTransaction(spend(inputKind, 10), pool)
			if expectAllowed {
				if err != nil {
					t.Fatalf("ValidateTransaction: a %s input spending a %s output: unexpected error: %s",
						inputKind, outputKind, err)
				}
				continue
			}
			if !errors.Is(err, ruleerrors.ErrMismatchedInputKind) {
				t.Fatalf("ValidateTransaction: a %s input spending a %s output: expected "+
					"ErrMismatchedInputKind, got %v", inputKind, outputKind, err)
			}
		}
	}
}
