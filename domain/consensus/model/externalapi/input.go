package externalapi

import "fmt"

// InputKind distinguishes ordinary spends from the spends that move a data
// request through its commit/reveal/tally stages.
type InputKind uint8

// The input variants
const (
	// InputKindValueTransfer spends a value transfer output
	InputKindValueTransfer InputKind = iota
	// InputKindDataRequest spends a data request output. Every commitment of
	// a data request points to the same output.
	InputKindDataRequest
	// InputKindCommit spends a commit output
	InputKindCommit
	// InputKindReveal spends a reveal output
	InputKindReveal
)

var inputKindStrings = [...]string{"ValueTransfer", "DataRequest", "Commit", "Reveal"}

func (kind InputKind) String() string {
	if int(kind) < len(inputKindStrings) {
		return inputKindStrings[kind]
	}
	return fmt.Sprintf("InputKind(%d)", uint8(kind))
}

// Input references an output created by a previous transaction
type Input struct {
	Kind           InputKind
	PreviousOutput OutputPointer

	// ProofOfEligibility is set on InputKindDataRequest inputs
	ProofOfEligibility []byte
	// Nonce is set on InputKindCommit inputs
	Nonce uint64
}

// OutputPointer returns the pointer to the output spent by this input
func (input *Input) OutputPointer() *OutputPointer {
	return &input.PreviousOutput
}

// Clone returns a clone of the input
func (input *Input) Clone() *Input {
	clone := *input
	clone.ProofOfEligibility = cloneBytes(input.ProofOfEligibility)
	return &clone
}
