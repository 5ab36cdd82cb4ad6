package datarequest

import (
	"sort"

	"github.com/pkg/errors"
	"github.com/witnet/witnetd/domain/consensus/model"
	"github.com/witnet/witnetd/domain/consensus/model/externalapi"
	"github.com/witnet/witnetd/domain/consensus/ruleerrors"
	"github.com/witnet/witnetd/domain/consensus/utils/consensushashing"
	"github.com/witnet/witnetd/domain/consensus/utils/transactionhelper"
)

// Pool follows every data request from its inclusion in a block until its
// tally. Data requests are identified by the pointer to their output.
type Pool struct {
	dataRequests map[externalapi.OutputPointer]*State
	finished     map[externalapi.OutputPointer]*State

	// commitIndex and revealIndex map commit and reveal outputs to the
	// data request they belong to
	commitIndex map[externalapi.OutputPointer]externalapi.OutputPointer
	revealIndex map[externalapi.OutputPointer]externalapi.OutputPointer
}

// NewPool returns an empty data request pool
func NewPool() *Pool {
	return &Pool{
		dataRequests: make(map[externalapi.OutputPointer]*State),
		finished:     make(map[externalapi.OutputPointer]*State),
		commitIndex:  make(map[externalapi.OutputPointer]externalapi.OutputPointer),
		revealIndex:  make(map[externalapi.OutputPointer]externalapi.OutputPointer),
	}
}

// ProcessTransaction moves the data requests tx refers to to their next
// stage. Transactions that don't take part in a data request are ignored.
func (p *Pool) ProcessTransaction(tx *externalapi.Transaction, epoch externalapi.Epoch,
	blockHash *externalapi.DomainHash) error {

	txHash := consensushashing.TransactionHash(tx)

	switch transactionhelper.Classify(tx) {
	case externalapi.TransactionTypeDataRequest:
		p.addDataRequests(tx, txHash, epoch, blockHash)
		return nil
	case externalapi.TransactionTypeCommit:
		return p.addCommits(tx, txHash)
	case externalapi.TransactionTypeReveal:
		return p.addReveals(tx, txHash)
	case externalapi.TransactionTypeTally:
		return p.addTally(tx, txHash, epoch, blockHash)
	}
	return nil
}

func (p *Pool) addDataRequests(tx *externalapi.Transaction, txHash *externalapi.DomainHash,
	epoch externalapi.Epoch, blockHash *externalapi.DomainHash) {

	for i, output := range tx.Outputs {
		dataRequest, ok := output.(*externalapi.DataRequestOutput)
		if !ok {
			continue
		}
		outputPointer := externalapi.NewOutputPointer(txHash, uint32(i))
		p.dataRequests[*outputPointer] = &State{
			DataRequest: dataRequest.Clone().(*externalapi.DataRequestOutput),
			Stage:       StageCommit,
			Epoch:       epoch,
			BlockHash:   *blockHash,
		}
		log.Debugf("Data request %s entered stage %s", outputPointer, StageCommit)
	}
}

func (p *Pool) addCommits(tx *externalapi.Transaction, txHash *externalapi.DomainHash) error {
	commitPointers := outputPointersOfKind(tx, txHash, externalapi.OutputKindCommit)
	dataRequestPointers := inputPointersOfKind(tx, externalapi.InputKindDataRequest)
	if len(dataRequestPointers) != len(commitPointers) {
		return errors.Wrapf(ruleerrors.ErrInvalidDataRequestTransition, "commit transaction %s "+
			"spends %d data requests but creates %d commitments", txHash, len(dataRequestPointers), len(commitPointers))
	}

	for i, dataRequestPointer := range dataRequestPointers {
		state, err := p.stateInStage(dataRequestPointer, StageCommit)
		if err != nil {
			return err
		}

		state.Commits = append(state.Commits, commitPointers[i])
		p.commitIndex[*commitPointers[i]] = *dataRequestPointer
		if len(state.Commits) >= int(state.DataRequest.Witnesses) {
			state.Stage = StageReveal
			log.Debugf("Data request %s entered stage %s", dataRequestPointer, StageReveal)
		}
	}
	return nil
}

func (p *Pool) addReveals(tx *externalapi.Transaction, txHash *externalapi.DomainHash) error {
	revealPointers := outputPointersOfKind(tx, txHash, externalapi.OutputKindReveal)
	commitPointers := inputPointersOfKind(tx, externalapi.InputKindCommit)
	if len(commitPointers) != len(revealPointers) {
		return errors.Wrapf(ruleerrors.ErrInvalidDataRequestTransition, "reveal transaction %s "+
			"spends %d commitments but creates %d reveals", txHash, len(commitPointers), len(revealPointers))
	}

	for i, commitPointer := range commitPointers {
		dataRequestPointer, ok := p.commitIndex[*commitPointer]
		if !ok {
			return errors.Wrapf(ruleerrors.ErrInvalidDataRequestTransition,
				"commitment %s doesn't belong to any known data request", commitPointer)
		}
		state, err := p.stateInStage(&dataRequestPointer, StageReveal)
		if err != nil {
			return err
		}

		delete(p.commitIndex, *commitPointer)
		state.Reveals = append(state.Reveals, revealPointers[i])
		p.revealIndex[*revealPointers[i]] = dataRequestPointer
		if len(state.Reveals) >= len(state.Commits) {
			state.Stage = StageTally
			log.Debugf("Data request %s entered stage %s", &dataRequestPointer, StageTally)
		}
	}
	return nil
}

func (p *Pool) addTally(tx *externalapi.Transaction, txHash *externalapi.DomainHash,
	epoch externalapi.Epoch, blockHash *externalapi.DomainHash) error {

	tallyPointers := outputPointersOfKind(tx, txHash, externalapi.OutputKindTally)
	if len(tallyPointers) != 1 {
		return errors.Wrapf(ruleerrors.ErrInvalidDataRequestTransition,
			"tally transaction %s creates %d tally outputs", txHash, len(tallyPointers))
	}
	revealPointers := inputPointersOfKind(tx, externalapi.InputKindReveal)
	if len(revealPointers) == 0 {
		return errors.Wrapf(ruleerrors.ErrInvalidDataRequestTransition,
			"tally transaction %s spends no reveals", txHash)
	}

	var dataRequestPointer *externalapi.OutputPointer
	for _, revealPointer := range revealPointers {
		pointer, ok := p.revealIndex[*revealPointer]
		if !ok {
			return errors.Wrapf(ruleerrors.ErrInvalidDataRequestTransition,
				"reveal %s doesn't belong to any known data request", revealPointer)
		}
		if dataRequestPointer != nil && !dataRequestPointer.Equal(&pointer) {
			return errors.Wrapf(ruleerrors.ErrInvalidDataRequestTransition,
				"tally transaction %s spends reveals of more than one data request", txHash)
		}
		dataRequestPointer = &pointer
	}

	state, ok := p.dataRequests[*dataRequestPointer]
	if !ok {
		return errors.Wrapf(ruleerrors.ErrInvalidDataRequestTransition,
			"data request %s is unknown", dataRequestPointer)
	}
	if state.Stage != StageReveal && state.Stage != StageTally {
		return errors.Wrapf(ruleerrors.ErrInvalidDataRequestTransition,
			"data request %s can't be tallied in stage %s", dataRequestPointer, state.Stage)
	}

	for _, revealPointer := range state.Reveals {
		delete(p.revealIndex, *revealPointer)
	}
	for _, commitPointer := range state.Commits {
		delete(p.commitIndex, *commitPointer)
	}

	state.Stage = StageFinished
	state.Tally = tallyPointers[0]
	state.TallyEpoch = epoch
	state.TallyBlockHash = blockHash.Clone()
	delete(p.dataRequests, *dataRequestPointer)
	p.finished[*dataRequestPointer] = state
	log.Debugf("Data request %s was tallied with %d reveals", dataRequestPointer, len(state.Reveals))
	return nil
}

func (p *Pool) stateInStage(dataRequestPointer *externalapi.OutputPointer, stage Stage) (*State, error) {
	state, ok := p.dataRequests[*dataRequestPointer]
	if !ok {
		return nil, errors.Wrapf(ruleerrors.ErrInvalidDataRequestTransition,
			"data request %s is unknown or already finished", dataRequestPointer)
	}
	if state.Stage != stage {
		return nil, errors.Wrapf(ruleerrors.ErrInvalidDataRequestTransition,
			"data request %s is in stage %s instead of %s", dataRequestPointer, state.Stage, stage)
	}
	return state, nil
}

func outputPointersOfKind(tx *externalapi.Transaction, txHash *externalapi.DomainHash,
	kind externalapi.OutputKind) []*externalapi.OutputPointer {

	var pointers []*externalapi.OutputPointer
	for i, output := range tx.Outputs {
		if output.Kind() == kind {
			pointers = append(pointers, externalapi.NewOutputPointer(txHash, uint32(i)))
		}
	}
	return pointers
}

func inputPointersOfKind(tx *externalapi.Transaction, kind externalapi.InputKind) []*externalapi.OutputPointer {
	var pointers []*externalapi.OutputPointer
	for _, input := range tx.Inputs {
		if input.Kind == kind {
			pointers = append(pointers, input.OutputPointer())
		}
	}
	return pointers
}

// DataRequestState returns a copy of the state of the data request created
// by the given output, whether it is still being resolved or finished
func (p *Pool) DataRequestState(outputPointer *externalapi.OutputPointer) (*State, bool) {
	if state, ok := p.dataRequests[*outputPointer]; ok {
		return state.Clone(), true
	}
	if state, ok := p.finished[*outputPointer]; ok {
		return state.Clone(), true
	}
	return nil, false
}

// PendingDataRequests returns the pointers of the data requests that were
// not tallied yet, in ascending order
func (p *Pool) PendingDataRequests() []*externalapi.OutputPointer {
	return sortedPointers(p.dataRequests)
}

// FinishedDataRequests returns the pointers of the tallied data requests, in
// ascending order
func (p *Pool) FinishedDataRequests() []*externalapi.OutputPointer {
	return sortedPointers(p.finished)
}

func sortedPointers(states map[externalapi.OutputPointer]*State) []*externalapi.OutputPointer {
	pointers := make([]*externalapi.OutputPointer, 0, len(states))
	for pointer := range states {
		pointers = append(pointers, pointer.Clone())
	}
	sort.Slice(pointers, func(i, j int) bool {
		return pointers[i].Less(pointers[j])
	})
	return pointers
}

// Clone returns a deep copy of the pool
func (p *Pool) Clone() model.DataRequestPool {
	clone := NewPool()
	for pointer, state := range p.dataRequests {
		clone.dataRequests[pointer] = state.Clone()
	}
	for pointer, state := range p.finished {
		clone.finished[pointer] = state.Clone()
	}
	for pointer, dataRequestPointer := range p.commitIndex {
		clone.commitIndex[pointer] = dataRequestPointer
	}
	for pointer, dataRequestPointer := range p.revealIndex {
		clone.revealIndex[pointer] = dataRequestPointer
	}
	return clone
}
