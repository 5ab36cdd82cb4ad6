package consensushashing

import (
	"github.com/pkg/errors"
	"github.com/witnet/witnetd/domain/consensus/model/externalapi"
	"github.com/witnet/witnetd/domain/consensus/utils/consensusserialization"
	"github.com/witnet/witnetd/domain/consensus/utils/hashes"
)

// TransactionHash returns the transaction hash. Only the transaction body is
// hashed: signatures commit to this hash and cannot be part of it.
func TransactionHash(tx *externalapi.Transaction) *externalapi.DomainHash {
	writer := hashes.NewHashWriter()
	err := consensusserialization.SerializeTransaction(writer, tx, false)
	if err != nil {
		// It seems like this could only happen if the writer returned an error.
		// and this writer should never return an error (no allocations or possible failures)
		// the only non-writer error path here is unknown types in `WriteElement`
		panic(errors.Wrap(err, "TransactionHash() failed. this should never fail for structurally-valid transactions"))
	}

	return writer.Finalize()
}

// TransactionHashes returns the hashes of the given transactions, in order
func TransactionHashes(transactions []*externalapi.Transaction) []*externalapi.DomainHash {
	transactionHashes := make([]*externalapi.DomainHash, len(transactions))
	for i, tx := range transactions {
		transactionHashes[i] = TransactionHash(tx)
	}
	return transactionHashes
}
