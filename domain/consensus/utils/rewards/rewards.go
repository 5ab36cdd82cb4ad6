package rewards

import (
	"math/bits"

	"github.com/pkg/errors"
	"github.com/witnet/witnetd/domain/consensus/model/externalapi"
	"github.com/witnet/witnetd/domain/consensus/ruleerrors"
)

const (
	// SatowitsPerWit is the number of satowits in one wit
	SatowitsPerWit = 100_000_000

	// InitialBlockReward is the block reward, in satowits, before the first
	// halving
	InitialBlockReward = 500 * SatowitsPerWit

	// HalvingPeriod is the number of epochs between two halvings of the
	// block reward
	HalvingPeriod = 1_750_000

	// maxHalvings is the number of halvings after which the block reward is
	// zero. Shifting a uint64 by this much or more is meaningless.
	maxHalvings = 64
)

// BlockReward returns the value, in satowits, a mint transaction may create
// in a block of the given epoch
func BlockReward(epoch externalapi.Epoch) uint64 {
	halvings := uint64(epoch) / HalvingPeriod
	if halvings >= maxHalvings {
		return 0
	}

	// Equivalent to: InitialBlockReward / 2^halvings
	return InitialBlockReward >> halvings
}

// CommitReward returns the value each witness of dataRequest receives for its
// commitment, after paying the commit fee
func CommitReward(dataRequest *externalapi.DataRequestOutput) (uint64, error) {
	if dataRequest.Witnesses == 0 {
		return 0, errors.Wrapf(ruleerrors.ErrZeroWitnesses, "data request worth %d has no witnesses",
			dataRequest.Value)
	}
	perWitness := dataRequest.Value / uint64(dataRequest.Witnesses)
	return checkedSub(perWitness, dataRequest.CommitFee, "commit fee")
}

// RevealReward returns the value each witness of dataRequest receives for its
// reveal, after paying the reveal fee
func RevealReward(dataRequest *externalapi.DataRequestOutput) (uint64, error) {
	commitReward, err := CommitReward(dataRequest)
	if err != nil {
		return 0, err
	}
	return checkedSub(commitReward, dataRequest.RevealFee, "reveal fee")
}

// ValueTransferReward returns the net value each witness of dataRequest is
// paid by the tally, after all stage fees
func ValueTransferReward(dataRequest *externalapi.DataRequestOutput) (uint64, error) {
	revealReward, err := RevealReward(dataRequest)
	if err != nil {
		return 0, err
	}
	return checkedSub(revealReward, dataRequest.TallyFee, "tally fee")
}

// TallyChange returns the value that goes back to the creator of dataRequest
// when only numberOfReveals of its witnesses revealed
func TallyChange(dataRequest *externalapi.DataRequestOutput, numberOfReveals uint16) (uint64, error) {
	revealReward, err := RevealReward(dataRequest)
	if err != nil {
		return 0, err
	}
	if numberOfReveals > dataRequest.Witnesses {
		return 0, errors.Wrapf(ruleerrors.ErrRewardUnderflow, "%d reveals for a data request with %d witnesses",
			numberOfReveals, dataRequest.Witnesses)
	}

	missingReveals := uint64(dataRequest.Witnesses - numberOfReveals)
	high, change := bits.Mul64(revealReward, missingReveals)
	if high != 0 {
		return 0, errors.Wrapf(ruleerrors.ErrRewardOverflow, "tally change of %d missing reveals worth %d each",
			missingReveals, revealReward)
	}
	return change, nil
}

func checkedSub(value, fee uint64, feeName string) (uint64, error) {
	if fee > value {
		return 0, errors.Wrapf(ruleerrors.ErrRewardUnderflow, "%s %d is greater than the remaining reward %d",
			feeName, fee, value)
	}
	return value - fee, nil
}
