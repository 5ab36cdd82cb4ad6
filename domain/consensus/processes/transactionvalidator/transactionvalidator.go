package transactionvalidator

import (
	"github.com/witnet/witnetd/domain/consensus/model"
)

// transactionValidator exposes a set of validation classes, after which
// it's possible to determine whether a transaction is valid
type transactionValidator struct {
	eligibilityVerifier model.EligibilityVerifier
}

// New instantiates a new TransactionValidator
func New(eligibilityVerifier model.EligibilityVerifier) model.TransactionValidator {
	return &transactionValidator{
		eligibilityVerifier: eligibilityVerifier,
	}
}
