package utxotransitionmanager

import (
	"github.com/witnet/witnetd/domain/consensus/model"
)

type utxoTransitionManager struct {
	transactionValidator model.TransactionValidator
}

// New instantiates a new UTXOTransitionManager
func New(transactionValidator model.TransactionValidator) model.UTXOTransitionManager {
	return &utxoTransitionManager{
		transactionValidator: transactionValidator,
	}
}
