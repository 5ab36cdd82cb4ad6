package mempool

import (
	"sync"

	"github.com/pkg/errors"
	"github.com/witnet/witnetd/domain/consensus"
	"github.com/witnet/witnetd/domain/consensus/model"
	"github.com/witnet/witnetd/domain/consensus/model/externalapi"
	"github.com/witnet/witnetd/domain/consensus/utils/consensushashing"
	"github.com/witnet/witnetd/domain/consensus/utils/transactionhelper"
)

// Transaction is a transaction waiting in the mempool, with the fee it pays
type Transaction struct {
	Transaction *externalapi.Transaction
	ID          *externalapi.DomainHash
	Fee         uint64
}

// Mempool keeps the valid transactions that were not included in a block
// yet, in the order they were accepted
type Mempool struct {
	mtx       sync.RWMutex
	consensus consensus.Consensus

	transactions map[externalapi.DomainHash]*Transaction
	order        []externalapi.DomainHash

	// spentOutputs maps the outputs spent by mempool transactions to the
	// transaction spending them. Data request outputs are left out, since
	// every commitment to a data request spends its output.
	spentOutputs map[externalapi.OutputPointer]externalapi.DomainHash
}

// New returns a new empty Mempool
func New(consensus consensus.Consensus) *Mempool {
	return &Mempool{
		consensus:    consensus,
		transactions: make(map[externalapi.DomainHash]*Transaction),
		spentOutputs: make(map[externalapi.OutputPointer]externalapi.DomainHash),
	}
}

// ValidateAndInsertTransaction validates tx against utxoPool and adds it to
// the mempool
func (mp *Mempool) ValidateAndInsertTransaction(tx *externalapi.Transaction, utxoPool model.UTXOPoolReader) error {
	mp.mtx.Lock()
	defer mp.mtx.Unlock()

	txID := consensushashing.TransactionHash(tx)
	if transactionhelper.IsMint(tx) {
		return errors.Wrapf(ErrMintTransaction, "transaction %s", txID)
	}
	if _, exists := mp.transactions[*txID]; exists {
		return errors.Wrapf(ErrDuplicateTransaction, "transaction %s", txID)
	}
	for _, input := range tx.Inputs {
		if input.Kind == externalapi.InputKindDataRequest {
			continue
		}
		if spender, spent := mp.spentOutputs[input.PreviousOutput]; spent {
			return errors.Wrapf(ErrDoubleSpendInMempool, "transaction %s spends output %s, which is "+
				"already spent by %s", txID, input.OutputPointer(), &spender)
		}
	}

	err := mp.consensus.ValidateTransaction(tx, utxoPool)
	if err != nil {
		return err
	}
	fee, err := mp.consensus.TransactionFee(tx, utxoPool)
	if err != nil {
		return err
	}

	mp.transactions[*txID] = &Transaction{Transaction: tx, ID: txID, Fee: fee}
	mp.order = append(mp.order, *txID)
	for _, input := range tx.Inputs {
		if input.Kind == externalapi.InputKindDataRequest {
			continue
		}
		mp.spentOutputs[input.PreviousOutput] = *txID
	}

	log.Debugf("Accepted transaction %s (%s) paying a fee of %d", txID, transactionhelper.Classify(tx), fee)
	return nil
}

// HandleNewBlock removes from the mempool the transactions included in
// block, and the transactions that spend the same outputs as them
func (mp *Mempool) HandleNewBlock(block *externalapi.Block) {
	mp.RemoveTransactions(block.Transactions)
}

// RemoveTransactions removes txs from the mempool, together with the mempool
// transactions that conflict with them
func (mp *Mempool) RemoveTransactions(txs []*externalapi.Transaction) {
	mp.mtx.Lock()
	defer mp.mtx.Unlock()

	toRemove := make(map[externalapi.DomainHash]struct{})
	for _, tx := range txs {
		toRemove[*consensushashing.TransactionHash(tx)] = struct{}{}
		for _, input := range tx.Inputs {
			if spender, spent := mp.spentOutputs[input.PreviousOutput]; spent {
				toRemove[spender] = struct{}{}
			}
		}
	}

	remainingOrder := mp.order[:0]
	for _, txID := range mp.order {
		if _, remove := toRemove[txID]; !remove {
			remainingOrder = append(remainingOrder, txID)
			continue
		}
		for _, input := range mp.transactions[txID].Transaction.Inputs {
			if spender, spent := mp.spentOutputs[input.PreviousOutput]; spent && spender == txID {
				delete(mp.spentOutputs, input.PreviousOutput)
			}
		}
		delete(mp.transactions, txID)
	}
	mp.order = remainingOrder
}

// Transactions returns the transactions in the mempool, in the order they
// were accepted
func (mp *Mempool) Transactions() []*Transaction {
	mp.mtx.RLock()
	defer mp.mtx.RUnlock()

	transactions := make([]*Transaction, len(mp.order))
	for i, txID := range mp.order {
		transactions[i] = mp.transactions[txID]
	}
	return transactions
}

// Count returns the number of transactions in the mempool
func (mp *Mempool) Count() int {
	mp.mtx.RLock()
	defer mp.mtx.RUnlock()

	return len(mp.order)
}
