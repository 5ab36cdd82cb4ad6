package chainstore

import (
	"bytes"
	"encoding/binary"

	"github.com/pkg/errors"
	"github.com/witnet/witnetd/domain/consensus/model"
	"github.com/witnet/witnetd/domain/consensus/model/externalapi"
	"github.com/witnet/witnetd/domain/consensus/utils/consensushashing"
	"github.com/witnet/witnetd/domain/consensus/utils/consensusserialization"
	"github.com/witnet/witnetd/domain/consensus/utils/serialization"
	"github.com/witnet/witnetd/infrastructure/db/database"
)

var (
	blocksBucket      = database.MakeBucket([]byte("blocks"))
	blockIndexBucket  = database.MakeBucket([]byte("block-index"))
	commitmentsBucket = database.MakeBucket([]byte("utxo-commitments"))

	countKey = database.MakeBucket(nil).Key([]byte("blocks-count"))
	tipKey   = database.MakeBucket(nil).Key([]byte("tip"))
)

// ChainStore persists the blocks of the chain in the order they were
// consolidated, together with the chain tip and the UTXO commitment each
// block results in
type ChainStore struct {
	db    database.Database
	count uint64
}

// New instantiates a new ChainStore over db
func New(db database.Database) (*ChainStore, error) {
	cs := &ChainStore{db: db}
	err := cs.initializeCount()
	if err != nil {
		return nil, err
	}
	return cs, nil
}

func (cs *ChainStore) initializeCount() error {
	hasCount, err := cs.db.Has(countKey)
	if err != nil {
		return err
	}
	if !hasCount {
		cs.count = 0
		return nil
	}
	countBytes, err := cs.db.Get(countKey)
	if err != nil {
		return err
	}
	if len(countBytes) != 8 {
		return errors.Errorf("block count is %d bytes long instead of 8", len(countBytes))
	}
	cs.count = binary.LittleEndian.Uint64(countBytes)
	return nil
}

// Count returns the number of stored blocks
func (cs *ChainStore) Count() uint64 {
	return cs.count
}

// StoreBlock persists the block of blockInChain as the new chain tip, with
// the commitment of its resulting UTXO pool. Everything is written in a
// single database transaction.
func (cs *ChainStore) StoreBlock(blockInChain *model.BlockInChain) (err error) {
	block := blockInChain.Block
	blockHash := consensushashing.BlockHash(block)

	blockBytes, err := serializeBlock(block)
	if err != nil {
		return err
	}
	tipBytes, err := serializeBeacon(&externalapi.CheckpointBeacon{Checkpoint: block.Epoch(), HashPrevBlock: *blockHash})
	if err != nil {
		return err
	}

	dbTx, err := cs.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		rollbackErr := dbTx.RollbackUnlessClosed()
		if err == nil {
			err = rollbackErr
		}
	}()

	err = dbTx.Put(blocksBucket.Key(blockHash.ByteSlice()), blockBytes)
	if err != nil {
		return err
	}
	err = dbTx.Put(blockIndexBucket.Key(indexAsKey(cs.count)), blockHash.ByteSlice())
	if err != nil {
		return err
	}
	err = dbTx.Put(commitmentsBucket.Key(blockHash.ByteSlice()), blockInChain.UTXOPool.Commitment().ByteSlice())
	if err != nil {
		return err
	}
	err = dbTx.Put(tipKey, tipBytes)
	if err != nil {
		return err
	}
	err = dbTx.Put(countKey, countAsBytes(cs.count+1))
	if err != nil {
		return err
	}

	err = dbTx.Commit()
	if err != nil {
		return err
	}
	cs.count++
	return nil
}

// Block returns the stored block with the given hash
func (cs *ChainStore) Block(blockHash *externalapi.DomainHash) (*externalapi.Block, error) {
	blockBytes, err := cs.db.Get(blocksBucket.Key(blockHash.ByteSlice()))
	if err != nil {
		return nil, err
	}
	return consensusserialization.DeserializeBlock(bytes.NewReader(blockBytes))
}

// HasBlock returns whether a block with the given hash is stored
func (cs *ChainStore) HasBlock(blockHash *externalapi.DomainHash) (bool, error) {
	return cs.db.Has(blocksBucket.Key(blockHash.ByteSlice()))
}

// UTXOCommitment returns the commitment of the UTXO pool that resulted from
// the block with the given hash
func (cs *ChainStore) UTXOCommitment(blockHash *externalapi.DomainHash) (*externalapi.DomainHash, error) {
	commitmentBytes, err := cs.db.Get(commitmentsBucket.Key(blockHash.ByteSlice()))
	if err != nil {
		return nil, err
	}
	return externalapi.NewDomainHashFromByteSlice(commitmentBytes)
}

// Tip returns the beacon of the last stored block. It returns
// database.ErrNotFound when no block was stored yet.
func (cs *ChainStore) Tip() (*externalapi.CheckpointBeacon, error) {
	tipBytes, err := cs.db.Get(tipKey)
	if err != nil {
		return nil, err
	}
	return deserializeBeacon(tipBytes)
}

// BlockHashes returns the hashes of the stored blocks in the order they were
// stored
func (cs *ChainStore) BlockHashes() ([]*externalapi.DomainHash, error) {
	cursor, err := cs.db.Cursor(blockIndexBucket)
	if err != nil {
		return nil, err
	}
	defer cursor.Close()

	blockHashes := make([]*externalapi.DomainHash, 0, cs.count)
	for ok := cursor.First(); ok; ok = cursor.Next() {
		hashBytes, err := cursor.Value()
		if err != nil {
			return nil, err
		}
		blockHash, err := externalapi.NewDomainHashFromByteSlice(hashBytes)
		if err != nil {
			return nil, err
		}
		blockHashes = append(blockHashes, blockHash)
	}
	return blockHashes, nil
}

// indexAsKey encodes index in big endian, so the cursor visits the index in
// storing order
func indexAsKey(index uint64) []byte {
	var key [8]byte
	binary.BigEndian.PutUint64(key[:], index)
	return key[:]
}

func countAsBytes(count uint64) []byte {
	var countBytes [8]byte
	binary.LittleEndian.PutUint64(countBytes[:], count)
	return countBytes[:]
}

func serializeBlock(block *externalapi.Block) ([]byte, error) {
	w := &bytes.Buffer{}
	err := consensusserialization.SerializeBlock(w, block)
	if err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

func serializeBeacon(beacon *externalapi.CheckpointBeacon) ([]byte, error) {
	w := &bytes.Buffer{}
	err := serialization.WriteElements(w, beacon.Checkpoint, beacon.HashPrevBlock)
	if err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

func deserializeBeacon(beaconBytes []byte) (*externalapi.CheckpointBeacon, error) {
	beacon := &externalapi.CheckpointBeacon{}
	err := serialization.ReadElements(bytes.NewReader(beaconBytes), &beacon.Checkpoint, &beacon.HashPrevBlock)
	if err != nil {
		return nil, err
	}
	return beacon, nil
}
