package consensushashing

import (
	"github.com/pkg/errors"
	"github.com/witnet/witnetd/domain/consensus/model/externalapi"
	"github.com/witnet/witnetd/domain/consensus/utils/consensusserialization"
	"github.com/witnet/witnetd/domain/consensus/utils/hashes"
)

// BlockHash returns the given block's hash
func BlockHash(block *externalapi.Block) *externalapi.DomainHash {
	return HeaderHash(block.Header)
}

// HeaderHash returns the given header's hash
func HeaderHash(header *externalapi.BlockHeader) *externalapi.DomainHash {
	writer := hashes.NewHashWriter()
	err := consensusserialization.SerializeHeader(writer, header)
	if err != nil {
		panic(errors.Wrap(err, "this should never happen. Hash digest should never return an error"))
	}

	return writer.Finalize()
}
