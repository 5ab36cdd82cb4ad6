package blocktemplatebuilder

import (
	"math"
	"testing"

	"github.com/witnet/witnetd/domain/consensus"
	"github.com/witnet/witnetd/domain/consensus/model"
	"github.com/witnet/witnetd/domain/consensus/model/externalapi"
	"github.com/witnet/witnetd/domain/consensus/utils/consensushashing"
	"github.com/witnet/witnetd/domain/consensus/utils/utxo"
	"github.com/witnet/witnetd/domain/dagconfig"
	"github.com/witnet/witnetd/domain/datarequest"
)

func TestGetBlockTemplate(t *testing.T) {
	c := consensus.New(&dagconfig.DevnetParams, nil)
	genesisHash := dagconfig.DevnetParams.GenesisHash
	funding := externalapi.NewOutputPointer(externalapi.NewDomainHashFromByteArray(&[externalapi.DomainHashSize]byte{1}), 0)

	utxoPool := utxo.NewUTXOPool()
	utxoPool.Insert(funding, &externalapi.ValueTransferOutput{Value: 1000})
	dataRequestPool := datarequest.NewPool()

	request := &externalapi.Transaction{
		Inputs: []*externalapi.Input{{PreviousOutput: *funding}},
		Outputs: []externalapi.Output{
			&externalapi.DataRequestOutput{DataRequest: []byte("price"), Value: 900, Witnesses: 1},
		},
	}
	requestPointer := externalapi.NewOutputPointer(consensushashing.TransactionHash(request), 0)
	commitment := func(nonce uint64) *externalapi.Transaction {
		return &externalapi.Transaction{
			Inputs: []*externalapi.Input{{
				Kind:           externalapi.InputKindDataRequest,
				PreviousOutput: *requestPointer,
				Nonce:          nonce,
			}},
			Outputs: []externalapi.Output{&externalapi.CommitOutput{Value: 890}},
		}
	}
	doubleSpend := &externalapi.Transaction{
		Inputs:  []*externalapi.Input{{PreviousOutput: *funding}},
		Outputs: []externalapi.Output{&externalapi.ValueTransferOutput{Value: 1}},
	}
	firstCommitment := commitment(0)
	// A single witness was requested, so the second commitment is refused
	candidates := []*externalapi.Transaction{request, doubleSpend, firstCommitment, commitment(1)}

	minerPKH := externalapi.PublicKeyHash{7}
	block := New(c).GetBlockTemplate(genesisHash, 1, candidates, utxoPool, dataRequestPool, minerPKH)

	if len(block.Transactions) != 3 {
		t.Fatalf("GetBlockTemplate: expected a mint and 2 transactions, got %d transactions", len(block.Transactions))
	}
	if block.Transactions[1] != request || block.Transactions[2] != firstCommitment {
		t.Fatalf("GetBlockTemplate: unexpected transaction selection")
	}

	mint := block.Transactions[0]
	if c.ClassifyTransaction(mint) != externalapi.TransactionTypeMint {
		t.Fatalf("GetBlockTemplate: first transaction is not a mint")
	}
	expectedMintValue := c.BlockReward(1) + 100 + 10
	mintOutput := mint.Outputs[0].(*externalapi.ValueTransferOutput)
	if mintOutput.Value != expectedMintValue || mintOutput.PKH != minerPKH {
		t.Fatalf("GetBlockTemplate: expected a mint of %d to %s, got %d to %s",
			expectedMintValue, minerPKH, mintOutput.Value, mintOutput.PKH)
	}

	if utxoPool.Len() != 1 || !utxoPool.Contains(funding) {
		t.Fatalf("GetBlockTemplate: the given UTXO pool was modified")
	}
	if len(dataRequestPool.PendingDataRequests()) != 0 {
		t.Fatalf("GetBlockTemplate: the given data request pool was modified")
	}

	genesisBeacon := externalapi.CheckpointBeacon{HashPrevBlock: *genesisHash}
	blockInChain, err := c.ValidateBlock(block, 1, genesisBeacon, utxoPool, dataRequestPool)
	if err != nil {
		t.Fatalf("ValidateBlock: template is invalid: %+v", err)
	}
	if blockInChain.UTXOPool.Contains(requestPointer) {
		t.Fatalf("ValidateBlock: the committed data request output is still unspent")
	}
}

type countingDataRequestPool struct {
	model.DataRequestPool
	processed *int
}

func (p *countingDataRequestPool) ProcessTransaction(tx *externalapi.Transaction, epoch externalapi.Epoch,
	blockHash *externalapi.DomainHash) error {

	*p.processed++
	return p.DataRequestPool.ProcessTransaction(tx, epoch, blockHash)
}

func (p *countingDataRequestPool) Clone() model.DataRequestPool {
	return &countingDataRequestPool{DataRequestPool: p.DataRequestPool.Clone(), processed: p.processed}
}

func TestGetBlockTemplateProcessesEachCandidateOnce(t *testing.T) {
	c := consensus.New(&dagconfig.DevnetParams, nil)
	funding := externalapi.NewOutputPointer(externalapi.NewDomainHashFromByteArray(&[externalapi.DomainHashSize]byte{1}), 0)
	utxoPool := utxo.NewUTXOPool()
	utxoPool.Insert(funding, &externalapi.ValueTransferOutput{Value: 1000})

	request := &externalapi.Transaction{
		Inputs: []*externalapi.Input{{PreviousOutput: *funding}},
		Outputs: []externalapi.Output{
			&externalapi.DataRequestOutput{DataRequest: []byte("price"), Value: 900, Witnesses: 1},
		},
	}
	requestPointer := externalapi.NewOutputPointer(consensushashing.TransactionHash(request), 0)
	commitment := func(nonce uint64) *externalapi.Transaction {
		return &externalapi.Transaction{
			Inputs: []*externalapi.Input{{
				Kind:           externalapi.InputKindDataRequest,
				PreviousOutput: *requestPointer,
				Nonce:          nonce,
			}},
			Outputs: []externalapi.Output{&externalapi.CommitOutput{Value: 890}},
		}
	}

	processed := 0
	dataRequestPool := &countingDataRequestPool{DataRequestPool: datarequest.NewPool(), processed: &processed}
	block := New(c).GetBlockTemplate(dagconfig.DevnetParams.GenesisHash, 1,
		[]*externalapi.Transaction{request, commitment(0), commitment(1)}, utxoPool, dataRequestPool,
		externalapi.PublicKeyHash{7})

	if len(block.Transactions) != 3 {
		t.Fatalf("GetBlockTemplate: expected a mint and 2 transactions, got %d transactions", len(block.Transactions))
	}
	if processed != 3 {
		t.Fatalf("GetBlockTemplate: expected the data request pool to process 3 transactions, got %d", processed)
	}
}

func TestGetBlockTemplateMintValueOverflow(t *testing.T) {
	c := consensus.New(&dagconfig.DevnetParams, nil)
	funding := externalapi.NewOutputPointer(externalapi.NewDomainHashFromByteArray(&[externalapi.DomainHashSize]byte{1}), 0)
	utxoPool := utxo.NewUTXOPool()
	utxoPool.Insert(funding, &externalapi.ValueTransferOutput{Value: math.MaxUint64})

	// Its fee alone fits in 64 bits, but not added to the block reward
	burn := &externalapi.Transaction{
		Inputs:  []*externalapi.Input{{PreviousOutput: *funding}},
		Outputs: []externalapi.Output{&externalapi.ValueTransferOutput{Value: 0}},
	}

	block := New(c).GetBlockTemplate(dagconfig.DevnetParams.GenesisHash, 1, []*externalapi.Transaction{burn},
		utxoPool, datarequest.NewPool(), externalapi.PublicKeyHash{7})

	if len(block.Transactions) != 1 {
		t.Fatalf("GetBlockTemplate: expected only the mint, got %d transactions", len(block.Transactions))
	}
	mintValue := block.Transactions[0].Outputs[0].Amount()
	if mintValue != c.BlockReward(1) {
		t.Fatalf("GetBlockTemplate: expected a mint of %d, got %d", c.BlockReward(1), mintValue)
	}
}
