package app

import (
	"bytes"
	"io"

	"github.com/pkg/errors"
	"github.com/witnet/witnetd/domain/consensus/model/externalapi"
	"github.com/witnet/witnetd/domain/consensus/utils/consensusserialization"
	"github.com/witnet/witnetd/domain/consensus/utils/serialization"
)

// maxBlockFileEntrySize bounds the length prefix of a block file entry, so
// that a corrupted prefix doesn't trigger a huge allocation
const maxBlockFileEntrySize = 32 * 1024 * 1024

// writeBlock appends block to w, prefixed with the length of its
// serialization as a little endian uint32
func writeBlock(w io.Writer, block *externalapi.Block) error {
	buf := &bytes.Buffer{}
	err := consensusserialization.SerializeBlock(buf, block)
	if err != nil {
		return err
	}
	err = serialization.WriteElement(w, uint32(buf.Len()))
	if err != nil {
		return err
	}
	_, err = w.Write(buf.Bytes())
	return errors.WithStack(err)
}

// readBlocks calls handleBlock for every block written to r with writeBlock,
// in order. It stops at the end of r, or at the first error handleBlock
// returns.
func readBlocks(r io.Reader, handleBlock func(block *externalapi.Block) error) error {
	for {
		var length uint32
		err := serialization.ReadElement(r, &length)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if length > maxBlockFileEntrySize {
			return serialization.NewMalformedError("block entry of %d bytes exceeds the limit of %d bytes",
				length, maxBlockFileEntrySize)
		}

		blockBytes := make([]byte, length)
		_, err = io.ReadFull(r, blockBytes)
		if err != nil {
			return errors.Wrapf(err, "truncated block entry")
		}
		block, err := consensusserialization.DeserializeBlock(bytes.NewReader(blockBytes))
		if err != nil {
			return err
		}

		err = handleBlock(block)
		if err != nil {
			return err
		}
	}
}
