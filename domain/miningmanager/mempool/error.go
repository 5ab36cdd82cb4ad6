package mempool

import "github.com/pkg/errors"

var (
	// ErrMintTransaction indicates a mint transaction was submitted. Mints
	// are only created by block builders.
	ErrMintTransaction = errors.New("mint transactions are not accepted into the mempool")

	// ErrDuplicateTransaction indicates the transaction is already in the
	// mempool.
	ErrDuplicateTransaction = errors.New("transaction is already in the mempool")

	// ErrDoubleSpendInMempool indicates the transaction spends an output
	// that another mempool transaction already spends.
	ErrDoubleSpendInMempool = errors.New("output is already spent by a mempool transaction")
)
