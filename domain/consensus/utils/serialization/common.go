package serialization

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
	"github.com/witnet/witnetd/domain/consensus/model/externalapi"
)

// MaxVarBytesLength is the longest byte slice ReadElement accepts. It keeps a
// malformed length prefix from forcing a huge allocation.
const MaxVarBytesLength = 32 * 1024 * 1024

// errNoEncodingForType signifies that there's no encoding for the given type.
var errNoEncodingForType = errors.New("there's no encoding for this type")

var errMalformed = errors.New("errMalformed")

// WriteElement writes the little endian representation of element to w.
// Byte slices are written with a uint64 length prefix.
func WriteElement(w io.Writer, element interface{}) error {
	var err error
	switch e := element.(type) {
	case uint8:
		_, err = w.Write([]byte{e})

	case uint16:
		var buf [2]byte
		binary.LittleEndian.PutUint16(buf[:], e)
		_, err = w.Write(buf[:])

	case uint32:
		var buf [4]byte
		binary.LittleEndian.PutUint32(buf[:], e)
		_, err = w.Write(buf[:])

	case uint64:
		var buf [8]byte
		binary.LittleEndian.PutUint64(buf[:], e)
		_, err = w.Write(buf[:])

	case bool:
		if e {
			_, err = w.Write([]byte{0x01})
		} else {
			_, err = w.Write([]byte{0x00})
		}

	case externalapi.Epoch:
		return WriteElement(w, uint32(e))

	case externalapi.DomainHash:
		_, err = w.Write(e.ByteSlice())

	case *externalapi.DomainHash:
		_, err = w.Write(e.ByteSlice())

	case externalapi.PublicKeyHash:
		_, err = w.Write(e[:])

	case []byte:
		err = WriteElement(w, uint64(len(e)))
		if err != nil {
			return err
		}
		_, err = w.Write(e)

	default:
		return errors.Wrapf(errNoEncodingForType, "couldn't find a way to write type %T", element)
	}

	return errors.WithStack(err)
}

// WriteElements writes multiple items to w. It is equivalent to multiple
// calls to WriteElement.
func WriteElements(w io.Writer, elements ...interface{}) error {
	for _, element := range elements {
		err := WriteElement(w, element)
		if err != nil {
			return err
		}
	}
	return nil
}

// ReadElement reads the next sequence of bytes from r using little endian
// depending on the concrete type of element pointed to.
func ReadElement(r io.Reader, element interface{}) error {
	switch e := element.(type) {
	case *uint8:
		var buf [1]byte
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return errors.WithStack(err)
		}
		*e = buf[0]
		return nil

	case *uint16:
		var buf [2]byte
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return errors.WithStack(err)
		}
		*e = binary.LittleEndian.Uint16(buf[:])
		return nil

	case *uint32:
		var buf [4]byte
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return errors.WithStack(err)
		}
		*e = binary.LittleEndian.Uint32(buf[:])
		return nil

	case *uint64:
		var buf [8]byte
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return errors.WithStack(err)
		}
		*e = binary.LittleEndian.Uint64(buf[:])
		return nil

	case *bool:
		var rv uint8
		if err := ReadElement(r, &rv); err != nil {
			return err
		}
		switch rv {
		case 0x00:
			*e = false
		case 0x01:
			*e = true
		default:
			return errors.Wrapf(errMalformed, "in order to keep serialization canonical, true has to"+
				" always be 0x01")
		}
		return nil

	case *externalapi.Epoch:
		var rv uint32
		if err := ReadElement(r, &rv); err != nil {
			return err
		}
		*e = externalapi.Epoch(rv)
		return nil

	case *externalapi.DomainHash:
		var buf [externalapi.DomainHashSize]byte
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return errors.WithStack(err)
		}
		*e = *externalapi.NewDomainHashFromByteArray(&buf)
		return nil

	case *externalapi.PublicKeyHash:
		if _, err := io.ReadFull(r, e[:]); err != nil {
			return errors.WithStack(err)
		}
		return nil

	case *[]byte:
		var length uint64
		if err := ReadElement(r, &length); err != nil {
			return err
		}
		if length > MaxVarBytesLength {
			return errors.Wrapf(errMalformed, "byte slice length %d is longer than the max allowed %d",
				length, MaxVarBytesLength)
		}
		buf := make([]byte, length)
		if _, err := io.ReadFull(r, buf); err != nil {
			return errors.WithStack(err)
		}
		*e = buf
		return nil
	}

	return errors.Wrapf(errNoEncodingForType, "couldn't find a way to read type %T", element)
}

// ReadElements reads multiple items from r. It is equivalent to multiple
// calls to ReadElement.
func ReadElements(r io.Reader, elements ...interface{}) error {
	for _, element := range elements {
		err := ReadElement(r, element)
		if err != nil {
			return err
		}
	}
	return nil
}

// IsMalformedError returns whether the error indicates a malformed data source
func IsMalformedError(err error) bool {
	return errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) || errors.Is(err, errMalformed)
}

// NewMalformedError returns an error that IsMalformedError recognizes
func NewMalformedError(format string, args ...interface{}) error {
	return errors.Wrapf(errMalformed, format, args...)
}
