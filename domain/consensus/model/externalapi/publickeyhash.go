package externalapi

import "encoding/hex"

// PublicKeyHashSize is the size of a public key hash
const PublicKeyHashSize = 20

// PublicKeyHash identifies the owner of an output
type PublicKeyHash [PublicKeyHashSize]byte

// String returns the hexadecimal representation of the public key hash
func (pkh PublicKeyHash) String() string {
	return hex.EncodeToString(pkh[:])
}
