package consensusserialization

import (
	"io"

	"github.com/witnet/witnetd/domain/consensus/model/externalapi"
	"github.com/witnet/witnetd/domain/consensus/utils/serialization"
)

// SerializeHeader writes the block header to w
func SerializeHeader(w io.Writer, header *externalapi.BlockHeader) error {
	return serialization.WriteElements(w, header.Version, header.Beacon.Checkpoint, &header.Beacon.HashPrevBlock,
		&header.HashMerkleRoot)
}

// DeserializeHeader reads a block header from r
func DeserializeHeader(r io.Reader) (*externalapi.BlockHeader, error) {
	header := &externalapi.BlockHeader{}
	err := serialization.ReadElements(r, &header.Version, &header.Beacon.Checkpoint, &header.Beacon.HashPrevBlock,
		&header.HashMerkleRoot)
	if err != nil {
		return nil, err
	}
	return header, nil
}

// SerializeBlock writes the full block, signatures included, to w
func SerializeBlock(w io.Writer, block *externalapi.Block) error {
	err := SerializeHeader(w, block.Header)
	if err != nil {
		return err
	}
	err = serialization.WriteElements(w, block.Proof.Proof, uint64(len(block.Transactions)))
	if err != nil {
		return err
	}
	for _, tx := range block.Transactions {
		err = SerializeTransaction(w, tx, true)
		if err != nil {
			return err
		}
	}

	hasSignature := block.Signature != nil
	err = serialization.WriteElement(w, hasSignature)
	if err != nil {
		return err
	}
	if hasSignature {
		return serializeKeyedSignature(w, block.Signature)
	}
	return nil
}

// DeserializeBlock reads a block written by SerializeBlock
func DeserializeBlock(r io.Reader) (*externalapi.Block, error) {
	header, err := DeserializeHeader(r)
	if err != nil {
		return nil, err
	}
	block := &externalapi.Block{Header: header}

	var numTransactions uint64
	err = serialization.ReadElements(r, &block.Proof.Proof, &numTransactions)
	if err != nil {
		return nil, err
	}
	if numTransactions > maxCollectionLength {
		return nil, serialization.NewMalformedError("too many transactions: %d", numTransactions)
	}
	block.Transactions = make([]*externalapi.Transaction, numTransactions)
	for i := range block.Transactions {
		block.Transactions[i], err = DeserializeTransaction(r)
		if err != nil {
			return nil, err
		}
	}

	var hasSignature bool
	err = serialization.ReadElement(r, &hasSignature)
	if err != nil {
		return nil, err
	}
	if hasSignature {
		block.Signature, err = deserializeKeyedSignature(r)
		if err != nil {
			return nil, err
		}
	}
	return block, nil
}
