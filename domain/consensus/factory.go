package consensus

import (
	"github.com/witnet/witnetd/domain/consensus/model"
	"github.com/witnet/witnetd/domain/consensus/processes/blockvalidator"
	"github.com/witnet/witnetd/domain/consensus/processes/eligibility"
	"github.com/witnet/witnetd/domain/consensus/processes/transactionvalidator"
	"github.com/witnet/witnetd/domain/consensus/processes/utxotransitionmanager"
	"github.com/witnet/witnetd/domain/dagconfig"
)

// New instantiates a new Consensus for the given network. A nil
// eligibilityVerifier accepts every proof of eligibility.
func New(dagParams *dagconfig.Params, eligibilityVerifier model.EligibilityVerifier) Consensus {
	if eligibilityVerifier == nil {
		eligibilityVerifier = eligibility.NewAlwaysEligible()
	}

	// Processes
	transactionValidator := transactionvalidator.New(eligibilityVerifier)
	utxoTransitionManager := utxotransitionmanager.New(transactionValidator)
	blockValidator := blockvalidator.New(
		dagParams.GenesisHash,
		eligibilityVerifier,
		utxoTransitionManager)

	log.Debugf("Consensus of network %s initialized", dagParams.Name)

	return &consensus{
		dagParams:            dagParams,
		blockValidator:       blockValidator,
		transactionValidator: transactionValidator,
	}
}
