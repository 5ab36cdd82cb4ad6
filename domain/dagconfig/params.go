package dagconfig

import (
	"time"

	"github.com/pkg/errors"
	"github.com/witnet/witnetd/domain/consensus/model/externalapi"
)

// Params defines a witnet network by its parameters
type Params struct {
	// Name defines a human-readable identifier for the network.
	Name string

	// GenesisHash is the previous block hash of the first block of the chain
	GenesisHash *externalapi.DomainHash

	// Bech32HRP is the human-readable part of the addresses of the network
	Bech32HRP string

	// CheckpointZeroTimestamp is the unix time at which epoch 0 starts
	CheckpointZeroTimestamp int64

	// CheckpointsPeriod is the duration of an epoch
	CheckpointsPeriod time.Duration
}

// EpochAt returns the epoch t falls in. Times before epoch 0 return epoch 0.
func (p *Params) EpochAt(t time.Time) externalapi.Epoch {
	elapsed := t.Unix() - p.CheckpointZeroTimestamp
	if elapsed < 0 {
		return 0
	}
	return externalapi.Epoch(elapsed / int64(p.CheckpointsPeriod/time.Second))
}

// MainnetParams defines the network parameters for the main witnet network.
var MainnetParams = Params{
	Name:                    "mainnet",
	GenesisHash:             mainnetGenesisHash,
	Bech32HRP:               "wit",
	CheckpointZeroTimestamp: 1602666000,
	CheckpointsPeriod:       45 * time.Second,
}

// TestnetParams defines the network parameters for the test witnet network.
var TestnetParams = Params{
	Name:                    "testnet",
	GenesisHash:             testnetGenesisHash,
	Bech32HRP:               "twit",
	CheckpointZeroTimestamp: 1602666000,
	CheckpointsPeriod:       45 * time.Second,
}

// DevnetParams defines the network parameters for the development witnet
// network, with short epochs.
var DevnetParams = Params{
	Name:                    "devnet",
	GenesisHash:             devnetGenesisHash,
	Bech32HRP:               "twit",
	CheckpointZeroTimestamp: 1600000000,
	CheckpointsPeriod:       time.Second,
}

var (
	// ErrDuplicateNet describes an error where the parameters for a witnet
	// network could not be set due to the network already being a standard
	// network or previously-registered into this package.
	ErrDuplicateNet = errors.New("duplicate witnet network")

	// ErrUnknownNet describes an error where the parameters of a network
	// that was never registered are requested.
	ErrUnknownNet = errors.New("unknown witnet network")
)

var registeredNets = make(map[string]*Params)

// Register registers the network parameters for a witnet network. This may
// error with ErrDuplicateNet if the network is already registered.
func Register(params *Params) error {
	if _, ok := registeredNets[params.Name]; ok {
		return errors.Wrapf(ErrDuplicateNet, "network %s", params.Name)
	}
	registeredNets[params.Name] = params
	return nil
}

// ParamsByName returns the parameters of a registered network
func ParamsByName(name string) (*Params, error) {
	params, ok := registeredNets[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownNet, "network %s", name)
	}
	return params, nil
}

// mustRegister performs the same function as Register except it panics if there
// is an error. This should only be called from package init functions.
func mustRegister(params *Params) {
	if err := Register(params); err != nil {
		panic("failed to register network: " + err.Error())
	}
}

// newHashFromStr converts a hard-coded hex string into a DomainHash. It
// panics on error, so it must only be used for package level constants.
func newHashFromStr(hexStr string) *externalapi.DomainHash {
	hash, err := externalapi.NewDomainHashFromString(hexStr)
	if err != nil {
		panic(err)
	}
	return hash
}

func init() {
	mustRegister(&MainnetParams)
	mustRegister(&TestnetParams)
	mustRegister(&DevnetParams)
}
