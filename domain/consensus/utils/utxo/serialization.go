package utxo

import (
	"bytes"

	"github.com/witnet/witnetd/domain/consensus/model/externalapi"
	"github.com/witnet/witnetd/domain/consensus/utils/consensusserialization"
)

// SerializeUTXO returns the byte-slice representation for given output pointer-output pair
func SerializeUTXO(outputPointer *externalapi.OutputPointer, output externalapi.Output) ([]byte, error) {
	w := &bytes.Buffer{}

	err := consensusserialization.SerializeOutputPointer(w, outputPointer)
	if err != nil {
		return nil, err
	}

	err = consensusserialization.SerializeOutput(w, output)
	if err != nil {
		return nil, err
	}

	return w.Bytes(), nil
}
