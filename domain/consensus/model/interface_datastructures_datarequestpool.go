package model

import "github.com/witnet/witnetd/domain/consensus/model/externalapi"

// DataRequestPool keeps track of the data requests that are being resolved
// and of the stage each of them is in
type DataRequestPool interface {
	// ProcessTransaction reports a transaction included in the block with
	// the given epoch and hash. Transactions are reported in block order.
	ProcessTransaction(tx *externalapi.Transaction, epoch externalapi.Epoch, blockHash *externalapi.DomainHash) error
	Clone() DataRequestPool
}
