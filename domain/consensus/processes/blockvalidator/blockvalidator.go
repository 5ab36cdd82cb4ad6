package blockvalidator

import (
	"github.com/witnet/witnetd/domain/consensus/model"
	"github.com/witnet/witnetd/domain/consensus/model/externalapi"
)

// blockValidator exposes a set of validation classes, after which
// it's possible to determine whether a block is valid
type blockValidator struct {
	genesisHash *externalapi.DomainHash

	eligibilityVerifier   model.EligibilityVerifier
	utxoTransitionManager model.UTXOTransitionManager
}

// New instantiates a new BlockValidator
func New(genesisHash *externalapi.DomainHash,
	eligibilityVerifier model.EligibilityVerifier,
	utxoTransitionManager model.UTXOTransitionManager) model.BlockValidator {

	return &blockValidator{
		genesisHash:           genesisHash,
		eligibilityVerifier:   eligibilityVerifier,
		utxoTransitionManager: utxoTransitionManager,
	}
}
