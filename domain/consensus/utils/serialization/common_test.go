package serialization

import (
	"bytes"
	"testing"

	"github.com/witnet/witnetd/domain/consensus/model/externalapi"
)

func TestElementsRoundTrip(t *testing.T) {
	hash := externalapi.NewDomainHashFromByteArray(&[externalapi.DomainHashSize]byte{1, 2, 3})
	pkh := externalapi.PublicKeyHash{9, 8, 7}

	w := &bytes.Buffer{}
	err := WriteElements(w, uint8(1), uint16(2), uint32(3), uint64(4), true, externalapi.Epoch(5), hash, pkh, []byte{6, 7})
	if err != nil {
		t.Fatalf("WriteElements: %+v", err)
	}

	var (
		u8       uint8
		u16      uint16
		u32      uint32
		u64      uint64
		b        bool
		epoch    externalapi.Epoch
		readHash externalapi.DomainHash
		readPKH  externalapi.PublicKeyHash
		slice    []byte
	)
	err = ReadElements(bytes.NewReader(w.Bytes()), &u8, &u16, &u32, &u64, &b, &epoch, &readHash, &readPKH, &slice)
	if err != nil {
		t.Fatalf("ReadElements: %+v", err)
	}
	if u8 != 1 || u16 != 2 || u32 != 3 || u64 != 4 || !b || epoch != 5 {
		t.Fatalf("ReadElements: unexpected integers %d %d %d %d %t %d", u8, u16, u32, u64, b, epoch)
	}
	if !readHash.Equal(hash) || readPKH != pkh || !bytes.Equal(slice, []byte{6, 7}) {
		t.Fatalf("ReadElements: unexpected hash, pkh or slice")
	}
}

func TestReadNonCanonicalBool(t *testing.T) {
	var b bool
	err := ReadElement(bytes.NewReader([]byte{0x02}), &b)
	if !IsMalformedError(err) {
		t.Fatalf("ReadElement: expected a malformed error, got %v", err)
	}
}

func TestReadOversizedByteSlice(t *testing.T) {
	w := &bytes.Buffer{}
	err := WriteElement(w, uint64(MaxVarBytesLength+1))
	if err != nil {
		t.Fatalf("WriteElement: %+v", err)
	}
	var slice []byte
	err = ReadElement(bytes.NewReader(w.Bytes()), &slice)
	if !IsMalformedError(err) {
		t.Fatalf("ReadElement: expected a malformed error, got %v", err)
	}
}

func TestWriteUnknownType(t *testing.T) {
	err := WriteElement(&bytes.Buffer{}, "a string")
	if err == nil {
		t.Fatalf("WriteElement: expected an error for an unsupported type")
	}
}
