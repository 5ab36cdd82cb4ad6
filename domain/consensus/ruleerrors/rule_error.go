package ruleerrors

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/witnet/witnetd/domain/consensus/model/externalapi"
)

// Transaction-level rule errors. Any of them aborts the validation of the
// block that contains the transaction.
var (
	// ErrOutputNotFound indicates a transaction input references an output
	// that is not in the UTXO pool: it was already spent or never existed.
	ErrOutputNotFound = newRuleError("ErrOutputNotFound")

	// ErrNegativeFee indicates the outputs of a transaction are worth more
	// than its inputs.
	ErrNegativeFee = newRuleError("ErrNegativeFee")

	// ErrValueOverflow indicates the inputs or the outputs of a transaction
	// add up to more than fits in 64 bits.
	ErrValueOverflow = newRuleError("ErrValueOverflow")

	// ErrDuplicateTxInputs indicates a transaction spends the same output
	// more than once.
	ErrDuplicateTxInputs = newRuleError("ErrDuplicateTxInputs")

	// ErrMismatchedInputKind indicates an input spends an output of a kind
	// it is not allowed to spend, e.g. a data request input pointing to a
	// value transfer output.
	ErrMismatchedInputKind = newRuleError("ErrMismatchedInputKind")

	// ErrNotValidPoeDataRequest indicates a commitment doesn't prove its
	// eligibility to resolve the data request it spends.
	ErrNotValidPoeDataRequest = newRuleError("ErrNotValidPoeDataRequest")

	// ErrInvalidDataRequestTransition indicates the data request pool refused
	// a transaction, e.g. a commitment to a data request that is not in its
	// commit stage.
	ErrInvalidDataRequestTransition = newRuleError("ErrInvalidDataRequestTransition")
)

// Block-level rule errors, in the order the block validator checks them.
var (
	// ErrNotValidPoe indicates the block's proof of eligibility is invalid.
	ErrNotValidPoe = newRuleError("ErrNotValidPoe")

	// ErrNotValidMerkleTree indicates the calculated merkle root does not
	// match the one declared in the block header.
	ErrNotValidMerkleTree = newRuleError("ErrNotValidMerkleTree")

	// ErrBlockFromFuture indicates the block epoch is greater than the
	// current epoch.
	ErrBlockFromFuture = newRuleError("ErrBlockFromFuture")

	// ErrBlockOlderThanTip indicates the block epoch is lower than the epoch
	// of the chain tip.
	ErrBlockOlderThanTip = newRuleError("ErrBlockOlderThanTip")

	// ErrPreviousHashNotKnown indicates the block doesn't build on top of the
	// chain tip nor on top of the genesis block.
	ErrPreviousHashNotKnown = newRuleError("ErrPreviousHashNotKnown")

	// ErrCandidateFromDifferentEpoch indicates a block candidate doesn't
	// belong to the current epoch.
	ErrCandidateFromDifferentEpoch = newRuleError("ErrCandidateFromDifferentEpoch")
)

// Reward arithmetic errors.
var (
	// ErrZeroWitnesses indicates a data request asks for no witnesses, so
	// its value can't be split between them.
	ErrZeroWitnesses = newRuleError("ErrZeroWitnesses")

	// ErrRewardUnderflow indicates the fees of a data request exceed the
	// value each witness is entitled to.
	ErrRewardUnderflow = newRuleError("ErrRewardUnderflow")

	// ErrRewardOverflow indicates a reward calculation doesn't fit in 64 bits.
	ErrRewardOverflow = newRuleError("ErrRewardOverflow")
)

// RuleError identifies a rule violation. It is used to indicate that
// processing of a block or transaction failed due to one of the many validation
// rules. The caller can use errors.Is to determine if a failure was
// specifically due to a rule violation.
type RuleError struct {
	message string
	inner   error
}

// Error satisfies the error interface and prints human-readable errors.
func (e RuleError) Error() string {
	if e.inner != nil {
		return e.message + ": " + e.inner.Error()
	}
	return e.message
}

// Unwrap satisfies the errors.Unwrap interface
func (e RuleError) Unwrap() error {
	return e.inner
}

// Cause satisfies the github.com/pkg/errors.Cause interface
func (e RuleError) Cause() error {
	return e.inner
}

// Is lets errors.Is match a RuleError carrying an inner error against its
// plain sentinel.
func (e RuleError) Is(target error) bool {
	targetRuleError, ok := target.(RuleError)
	if !ok {
		return false
	}
	return e.message == targetRuleError.message && targetRuleError.inner == nil
}

func newRuleError(message string) RuleError {
	return RuleError{message: message, inner: nil}
}

// ErrMissingOutput carries the output pointer that could not be found
type ErrMissingOutput struct {
	MissingOutputPointer *externalapi.OutputPointer
}

func (e ErrMissingOutput) Error() string {
	return fmt.Sprintf("missing the following output: %s", e.MissingOutputPointer)
}

// NewErrOutputNotFound creates a new ErrOutputNotFound error carrying the
// missing output pointer
func NewErrOutputNotFound(missingOutputPointer *externalapi.OutputPointer) error {
	return errors.WithStack(RuleError{
		message: ErrOutputNotFound.message,
		inner:   ErrMissingOutput{missingOutputPointer},
	})
}
