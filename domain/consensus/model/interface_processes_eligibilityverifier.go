package model

import "github.com/witnet/witnetd/domain/consensus/model/externalapi"

// EligibilityVerifier verifies proofs of eligibility
type EligibilityVerifier interface {
	VerifyBlockEligibility(block *externalapi.Block) bool
	VerifyDataRequestEligibility(input *externalapi.Input) bool
}
