package datarequest

import (
	"fmt"

	"github.com/witnet/witnetd/domain/consensus/model/externalapi"
)

// Stage is the step of its resolution a data request is in
type Stage uint8

// The stages of a data request, in the order they are reached
const (
	// StageCommit accepts commitments from witnesses
	StageCommit Stage = iota
	// StageReveal accepts reveals of the commitments
	StageReveal
	// StageTally waits for the tally, once every commitment was revealed
	StageTally
	// StageFinished means the data request was tallied
	StageFinished
)

var stageStrings = [...]string{"COMMIT", "REVEAL", "TALLY", "FINISHED"}

func (stage Stage) String() string {
	if int(stage) < len(stageStrings) {
		return stageStrings[stage]
	}
	return fmt.Sprintf("Stage(%d)", uint8(stage))
}

// State is what the pool knows about a single data request
type State struct {
	DataRequest *externalapi.DataRequestOutput
	Stage       Stage

	// Epoch and BlockHash locate the block that included the data request
	Epoch     externalapi.Epoch
	BlockHash externalapi.DomainHash

	// Commits and Reveals point to the commit and reveal outputs, in the
	// order they were included
	Commits []*externalapi.OutputPointer
	Reveals []*externalapi.OutputPointer

	// Tally points to the tally output. It is set once Stage is
	// StageFinished.
	Tally          *externalapi.OutputPointer
	TallyEpoch     externalapi.Epoch
	TallyBlockHash *externalapi.DomainHash
}

// Clone returns a deep copy of the state
func (s *State) Clone() *State {
	clone := &State{
		DataRequest: s.DataRequest.Clone().(*externalapi.DataRequestOutput),
		Stage:       s.Stage,
		Epoch:       s.Epoch,
		BlockHash:   s.BlockHash,
		Commits:     clonePointers(s.Commits),
		Reveals:     clonePointers(s.Reveals),
		TallyEpoch:  s.TallyEpoch,
	}
	if s.Tally != nil {
		clone.Tally = s.Tally.Clone()
	}
	if s.TallyBlockHash != nil {
		clone.TallyBlockHash = s.TallyBlockHash.Clone()
	}
	return clone
}

func clonePointers(pointers []*externalapi.OutputPointer) []*externalapi.OutputPointer {
	if pointers == nil {
		return nil
	}
	clone := make([]*externalapi.OutputPointer, len(pointers))
	for i, pointer := range pointers {
		clone[i] = pointer.Clone()
	}
	return clone
}
