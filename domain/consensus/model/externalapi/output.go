package externalapi

import (
	"bytes"
	"fmt"
)

// OutputKind is the tag of an Output variant
type OutputKind uint8

// The output variants
const (
	OutputKindValueTransfer OutputKind = iota
	OutputKindDataRequest
	OutputKindCommit
	OutputKindReveal
	OutputKindTally
)

var outputKindStrings = [...]string{"ValueTransfer", "DataRequest", "Commit", "Reveal", "Tally"}

func (kind OutputKind) String() string {
	if int(kind) < len(outputKindStrings) {
		return outputKindStrings[kind]
	}
	return fmt.Sprintf("OutputKind(%d)", uint8(kind))
}

// Output is a transaction output. Every variant carries an amount of satowits
// plus a role-specific payload.
type Output interface {
	Kind() OutputKind
	Amount() uint64
	Clone() Output
	Equal(other Output) bool
}

// ValueTransferOutput pays Value satowits to PKH
type ValueTransferOutput struct {
	PKH   PublicKeyHash
	Value uint64
}

// Kind implements Output
func (o *ValueTransferOutput) Kind() OutputKind { return OutputKindValueTransfer }

// Amount implements Output
func (o *ValueTransferOutput) Amount() uint64 { return o.Value }

// Clone implements Output
func (o *ValueTransferOutput) Clone() Output {
	clone := *o
	return &clone
}

// Equal implements Output
func (o *ValueTransferOutput) Equal(other Output) bool {
	otherOutput, ok := other.(*ValueTransferOutput)
	if !ok || o == nil || otherOutput == nil {
		return ok && o == otherOutput
	}
	return *o == *otherOutput
}

// DataRequestOutput is an on-chain request for off-chain data. Value is the total
// amount locked by the requester, to be split between Witnesses.
type DataRequestOutput struct {
	PKH             PublicKeyHash
	DataRequest     []byte
	Value           uint64
	Witnesses       uint16
	BackupWitnesses uint16
	CommitFee       uint64
	RevealFee       uint64
	TallyFee        uint64
	TimeLock        uint64
}

// Kind implements Output
func (o *DataRequestOutput) Kind() OutputKind { return OutputKindDataRequest }

// Amount implements Output
func (o *DataRequestOutput) Amount() uint64 { return o.Value }

// Clone implements Output
func (o *DataRequestOutput) Clone() Output {
	clone := *o
	clone.DataRequest = cloneBytes(o.DataRequest)
	return &clone
}

// Equal implements Output
func (o *DataRequestOutput) Equal(other Output) bool {
	otherOutput, ok := other.(*DataRequestOutput)
	if !ok || o == nil || otherOutput == nil {
		return ok && o == otherOutput
	}
	return o.PKH == otherOutput.PKH &&
		bytes.Equal(o.DataRequest, otherOutput.DataRequest) &&
		o.Value == otherOutput.Value &&
		o.Witnesses == otherOutput.Witnesses &&
		o.BackupWitnesses == otherOutput.BackupWitnesses &&
		o.CommitFee == otherOutput.CommitFee &&
		o.RevealFee == otherOutput.RevealFee &&
		o.TallyFee == otherOutput.TallyFee &&
		o.TimeLock == otherOutput.TimeLock
}

// CommitOutput holds a witness' commitment to a not-yet-revealed value
type CommitOutput struct {
	Commitment DomainHash
	Value      uint64
}

// Kind implements Output
func (o *CommitOutput) Kind() OutputKind { return OutputKindCommit }

// Amount implements Output
func (o *CommitOutput) Amount() uint64 { return o.Value }

// Clone implements Output
func (o *CommitOutput) Clone() Output {
	clone := *o
	return &clone
}

// Equal implements Output
func (o *CommitOutput) Equal(other Output) bool {
	otherOutput, ok := other.(*CommitOutput)
	if !ok || o == nil || otherOutput == nil {
		return ok && o == otherOutput
	}
	return *o == *otherOutput
}

// RevealOutput holds the value a witness previously committed to
type RevealOutput struct {
	Reveal []byte
	PKH    PublicKeyHash
	Value  uint64
}

// Kind implements Output
func (o *RevealOutput) Kind() OutputKind { return OutputKindReveal }

// Amount implements Output
func (o *RevealOutput) Amount() uint64 { return o.Value }

// Clone implements Output
func (o *RevealOutput) Clone() Output {
	clone := *o
	clone.Reveal = cloneBytes(o.Reveal)
	return &clone
}

// Equal implements Output
func (o *RevealOutput) Equal(other Output) bool {
	otherOutput, ok := other.(*RevealOutput)
	if !ok || o == nil || otherOutput == nil {
		return ok && o == otherOutput
	}
	return bytes.Equal(o.Reveal, otherOutput.Reveal) && o.PKH == otherOutput.PKH && o.Value == otherOutput.Value
}

// TallyOutput holds the aggregated result of a data request
type TallyOutput struct {
	Result []byte
	PKH    PublicKeyHash
	Value  uint64
}

// Kind implements Output
func (o *TallyOutput) Kind() OutputKind { return OutputKindTally }

// Amount implements Output
func (o *TallyOutput) Amount() uint64 { return o.Value }

// Clone implements Output
func (o *TallyOutput) Clone() Output {
	clone := *o
	clone.Result = cloneBytes(o.Result)
	return &clone
}

// Equal implements Output
func (o *TallyOutput) Equal(other Output) bool {
	otherOutput, ok := other.(*TallyOutput)
	if !ok || o == nil || otherOutput == nil {
		return ok && o == otherOutput
	}
	return bytes.Equal(o.Result, otherOutput.Result) && o.PKH == otherOutput.PKH && o.Value == otherOutput.Value
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	clone := make([]byte, len(b))
	copy(clone, b)
	return clone
}
