package addresses

import (
	"github.com/btcsuite/btcutil/bech32"
	"github.com/pkg/errors"
	"github.com/witnet/witnetd/domain/consensus/model/externalapi"
)

// ErrUnexpectedHRP indicates an address belongs to another network
var ErrUnexpectedHRP = errors.New("unexpected human-readable part")

// EncodeAddress returns the bech32 address of the public key hash pkh, for
// the network whose human-readable part is hrp
func EncodeAddress(hrp string, pkh externalapi.PublicKeyHash) (string, error) {
	converted, err := bech32.ConvertBits(pkh[:], 8, 5, true)
	if err != nil {
		return "", errors.WithStack(err)
	}
	address, err := bech32.Encode(hrp, converted)
	if err != nil {
		return "", errors.WithStack(err)
	}
	return address, nil
}

// DecodeAddress returns the public key hash encoded in address, which must
// belong to the network whose human-readable part is hrp
func DecodeAddress(hrp string, address string) (externalapi.PublicKeyHash, error) {
	decodedHRP, data, err := bech32.Decode(address)
	if err != nil {
		return externalapi.PublicKeyHash{}, errors.Wrapf(err, "invalid address %s", address)
	}
	if decodedHRP != hrp {
		return externalapi.PublicKeyHash{}, errors.Wrapf(ErrUnexpectedHRP, "address %s has prefix %s "+
			"instead of %s", address, decodedHRP, hrp)
	}

	converted, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return externalapi.PublicKeyHash{}, errors.Wrapf(err, "invalid address %s", address)
	}
	pkh := externalapi.PublicKeyHash{}
	if len(converted) != len(pkh) {
		return externalapi.PublicKeyHash{}, errors.Errorf("address %s encodes %d bytes instead of %d",
			address, len(converted), len(pkh))
	}
	copy(pkh[:], converted)
	return pkh, nil
}
