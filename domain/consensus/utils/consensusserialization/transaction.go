package consensusserialization

import (
	"io"

	"github.com/pkg/errors"
	"github.com/witnet/witnetd/domain/consensus/model/externalapi"
	"github.com/witnet/witnetd/domain/consensus/utils/serialization"
)

// maxCollectionLength bounds the number of inputs, outputs, signatures and
// transactions read from an untrusted source.
const maxCollectionLength = 1 << 20

// SerializeTransaction writes tx to w. Signatures are only written when
// includeSignatures is set, so the same encoding serves as the hashed body.
func SerializeTransaction(w io.Writer, tx *externalapi.Transaction, includeSignatures bool) error {
	err := serialization.WriteElements(w, tx.Version, tx.Epoch, uint64(len(tx.Inputs)))
	if err != nil {
		return err
	}
	for _, input := range tx.Inputs {
		err = serializeInput(w, input)
		if err != nil {
			return err
		}
	}

	err = serialization.WriteElement(w, uint64(len(tx.Outputs)))
	if err != nil {
		return err
	}
	for _, output := range tx.Outputs {
		err = SerializeOutput(w, output)
		if err != nil {
			return err
		}
	}

	if !includeSignatures {
		return nil
	}

	err = serialization.WriteElement(w, uint64(len(tx.Signatures)))
	if err != nil {
		return err
	}
	for _, signature := range tx.Signatures {
		err = serializeKeyedSignature(w, signature)
		if err != nil {
			return err
		}
	}
	return nil
}

// DeserializeTransaction reads a transaction serialized with its signatures
func DeserializeTransaction(r io.Reader) (*externalapi.Transaction, error) {
	tx := &externalapi.Transaction{}

	var numInputs uint64
	err := serialization.ReadElements(r, &tx.Version, &tx.Epoch, &numInputs)
	if err != nil {
		return nil, err
	}
	if numInputs > maxCollectionLength {
		return nil, serialization.NewMalformedError("too many inputs: %d", numInputs)
	}
	tx.Inputs = make([]*externalapi.Input, numInputs)
	for i := range tx.Inputs {
		tx.Inputs[i], err = deserializeInput(r)
		if err != nil {
			return nil, err
		}
	}

	var numOutputs uint64
	err = serialization.ReadElement(r, &numOutputs)
	if err != nil {
		return nil, err
	}
	if numOutputs > maxCollectionLength {
		return nil, serialization.NewMalformedError("too many outputs: %d", numOutputs)
	}
	tx.Outputs = make([]externalapi.Output, numOutputs)
	for i := range tx.Outputs {
		tx.Outputs[i], err = DeserializeOutput(r)
		if err != nil {
			return nil, err
		}
	}

	var numSignatures uint64
	err = serialization.ReadElement(r, &numSignatures)
	if err != nil {
		return nil, err
	}
	if numSignatures > maxCollectionLength {
		return nil, serialization.NewMalformedError("too many signatures: %d", numSignatures)
	}
	tx.Signatures = make([]*externalapi.KeyedSignature, numSignatures)
	for i := range tx.Signatures {
		tx.Signatures[i], err = deserializeKeyedSignature(r)
		if err != nil {
			return nil, err
		}
	}

	return tx, nil
}

func serializeInput(w io.Writer, input *externalapi.Input) error {
	err := serialization.WriteElement(w, uint8(input.Kind))
	if err != nil {
		return err
	}
	err = SerializeOutputPointer(w, &input.PreviousOutput)
	if err != nil {
		return err
	}
	return serialization.WriteElements(w, input.ProofOfEligibility, input.Nonce)
}

func deserializeInput(r io.Reader) (*externalapi.Input, error) {
	var kind uint8
	err := serialization.ReadElement(r, &kind)
	if err != nil {
		return nil, err
	}
	if externalapi.InputKind(kind) > externalapi.InputKindReveal {
		return nil, serialization.NewMalformedError("unknown input kind %d", kind)
	}

	input := &externalapi.Input{Kind: externalapi.InputKind(kind)}
	outputPointer, err := DeserializeOutputPointer(r)
	if err != nil {
		return nil, err
	}
	input.PreviousOutput = *outputPointer

	err = serialization.ReadElements(r, &input.ProofOfEligibility, &input.Nonce)
	if err != nil {
		return nil, err
	}
	return input, nil
}

// SerializeOutputPointer writes the given output pointer to w
func SerializeOutputPointer(w io.Writer, outputPointer *externalapi.OutputPointer) error {
	return serialization.WriteElements(w, &outputPointer.TransactionID, outputPointer.OutputIndex)
}

// DeserializeOutputPointer reads an output pointer from r
func DeserializeOutputPointer(r io.Reader) (*externalapi.OutputPointer, error) {
	outputPointer := &externalapi.OutputPointer{}
	err := serialization.ReadElements(r, &outputPointer.TransactionID, &outputPointer.OutputIndex)
	if err != nil {
		return nil, err
	}
	return outputPointer, nil
}

func serializeKeyedSignature(w io.Writer, signature *externalapi.KeyedSignature) error {
	if signature == nil {
		return serialization.WriteElements(w, []byte{}, []byte{})
	}
	return serialization.WriteElements(w, signature.Signature, signature.PublicKey)
}

func deserializeKeyedSignature(r io.Reader) (*externalapi.KeyedSignature, error) {
	signature := &externalapi.KeyedSignature{}
	err := serialization.ReadElements(r, &signature.Signature, &signature.PublicKey)
	if err != nil {
		return nil, err
	}
	return signature, nil
}

// SerializeOutput writes the kind tag of output followed by its fields
func SerializeOutput(w io.Writer, output externalapi.Output) error {
	err := serialization.WriteElement(w, uint8(output.Kind()))
	if err != nil {
		return err
	}

	switch o := output.(type) {
	case *externalapi.ValueTransferOutput:
		return serialization.WriteElements(w, o.PKH, o.Value)
	case *externalapi.DataRequestOutput:
		return serialization.WriteElements(w, o.PKH, o.DataRequest, o.Value, o.Witnesses, o.BackupWitnesses,
			o.CommitFee, o.RevealFee, o.TallyFee, o.TimeLock)
	case *externalapi.CommitOutput:
		return serialization.WriteElements(w, &o.Commitment, o.Value)
	case *externalapi.RevealOutput:
		return serialization.WriteElements(w, o.Reveal, o.PKH, o.Value)
	case *externalapi.TallyOutput:
		return serialization.WriteElements(w, o.Result, o.PKH, o.Value)
	}
	return errors.Errorf("unknown output type %T", output)
}

// DeserializeOutput reads an output written by SerializeOutput
func DeserializeOutput(r io.Reader) (externalapi.Output, error) {
	var kind uint8
	err := serialization.ReadElement(r, &kind)
	if err != nil {
		return nil, err
	}

	switch externalapi.OutputKind(kind) {
	case externalapi.OutputKindValueTransfer:
		o := &externalapi.ValueTransferOutput{}
		return o, serialization.ReadElements(r, &o.PKH, &o.Value)
	case externalapi.OutputKindDataRequest:
		o := &externalapi.DataRequestOutput{}
		return o, serialization.ReadElements(r, &o.PKH, &o.DataRequest, &o.Value, &o.Witnesses, &o.BackupWitnesses,
			&o.CommitFee, &o.RevealFee, &o.TallyFee, &o.TimeLock)
	case externalapi.OutputKindCommit:
		o := &externalapi.CommitOutput{}
		return o, serialization.ReadElements(r, &o.Commitment, &o.Value)
	case externalapi.OutputKindReveal:
		o := &externalapi.RevealOutput{}
		return o, serialization.ReadElements(r, &o.Reveal, &o.PKH, &o.Value)
	case externalapi.OutputKindTally:
		o := &externalapi.TallyOutput{}
		return o, serialization.ReadElements(r, &o.Result, &o.PKH, &o.Value)
	}
	return nil, serialization.NewMalformedError("unknown output kind %d", kind)
}
