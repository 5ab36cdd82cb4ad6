package config

import (
	"fmt"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
	"github.com/witnet/witnetd/domain/dagconfig"
)

// NetworkFlags holds the network configuration, that is which network is selected.
type NetworkFlags struct {
	Testnet bool   `long:"testnet" description:"Use the test network"`
	Devnet  bool   `long:"devnet" description:"Use the development network"`
	Network string `long:"network" description:"Use the network with this name (mainnet, testnet or devnet)"`

	ActiveNetParams *dagconfig.Params
}

// ResolveNetwork parses the network command line argument and sets NetParams accordingly.
// It returns error if more than one network was selected, nil otherwise.
func (networkFlags *NetworkFlags) ResolveNetwork(parser *flags.Parser) error {
	networkName := dagconfig.MainnetParams.Name
	numNets := 0
	if networkFlags.Testnet {
		numNets++
		networkName = dagconfig.TestnetParams.Name
	}
	if networkFlags.Devnet {
		numNets++
		networkName = dagconfig.DevnetParams.Name
	}
	if networkFlags.Network != "" {
		numNets++
		networkName = networkFlags.Network
	}
	if numNets > 1 {
		message := "Multiple networks parameters (testnet, devnet, network) cannot be used " +
			"together. Please choose only one network"
		err := errors.Errorf(message)
		fmt.Fprintln(os.Stderr, err)
		if parser != nil {
			parser.WriteHelp(os.Stderr)
		}
		return err
	}

	params, err := dagconfig.ParamsByName(networkName)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	networkFlags.ActiveNetParams = params

	return nil
}

// NetParams returns the ActiveNetParams
func (networkFlags *NetworkFlags) NetParams() *dagconfig.Params {
	return networkFlags.ActiveNetParams
}
