package model

import "github.com/witnet/witnetd/domain/consensus/model/externalapi"

// TransactionValidator exposes a set of validation classes, after which
// it's possible to determine whether a transaction is valid
type TransactionValidator interface {
	ValidateTransaction(tx *externalapi.Transaction, utxoPool UTXOPoolReader) error
}
