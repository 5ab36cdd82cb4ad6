package multiset

import (
	"github.com/kaspanet/go-muhash"
	"github.com/witnet/witnetd/domain/consensus/model/externalapi"
)

// Multiset is an order-independent commitment to a multiset of byte strings
type Multiset struct {
	ms *muhash.MuHash
}

// New returns a new empty Multiset
func New() *Multiset {
	return &Multiset{ms: muhash.NewMuHash()}
}

// Add adds data to the multiset
func (m *Multiset) Add(data []byte) {
	m.ms.Add(data)
}

// Remove removes data from the multiset
func (m *Multiset) Remove(data []byte) {
	m.ms.Remove(data)
}

// Hash returns the commitment to the current content of the multiset
func (m *Multiset) Hash() *externalapi.DomainHash {
	finalizedHash := m.ms.Finalize()
	var hashArray [externalapi.DomainHashSize]byte
	copy(hashArray[:], finalizedHash[:])
	return externalapi.NewDomainHashFromByteArray(&hashArray)
}

// Clone returns a clone of the multiset
func (m *Multiset) Clone() *Multiset {
	return &Multiset{ms: m.ms.Clone()}
}
