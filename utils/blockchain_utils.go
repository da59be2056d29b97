package utils

import (
	"errors"

	"github.com/Luismorlan/ledger_in_go/model"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// GenesisAllocation is one account the genesis block creates and funds.
type GenesisAllocation struct {
	ID     string
	Tokens model.Uint128
}

// Create a block from the provided transactions, linked to prevHash. The
// returned block carries a valid hash. Transactions are not executed here.
func CreateNewBlock(txs []*model.Transaction, prevHash *chainhash.Hash) (*model.Block, error) {
	if len(txs) == 0 {
		return nil, errors.New("cannot create a block without transactions")
	}
	block := model.NewBlock(prevHash)
	for _, tx := range txs {
		block.AddTransaction(tx)
	}
	return block, nil
}

// Build the first block of a chain: every allocation creates its own account
// and then mints its tokens into it.
func CreateGenesisBlock(allocs []GenesisAllocation) (*model.Block, error) {
	var txs []*model.Transaction
	for _, a := range allocs {
		txs = append(txs,
			model.NewTransaction(a.ID, model.CreateUserAccount{ID: a.ID}, model.NewUint128(0)),
			model.NewTransaction(a.ID, model.CreateTokens{Receiver: a.ID, Amount: a.Tokens}, model.NewUint128(0)),
		)
	}
	return CreateNewBlock(txs, nil)
}

// Add a transaction to the pool, false if it is already there.
func AddTxToPool(pool *model.TransactionPool, tx *model.Transaction) bool {
	h := tx.CalculateHash()
	if _, exist := pool.TxPool[h]; exist {
		return false
	}
	pool.TxPool[h] = tx
	pool.Order = append(pool.Order, h)
	return true
}

// Remove the given transactions from the pool, keeping the others in order.
func RemoveTxsFromPool(pool *model.TransactionPool, txs []*model.Transaction) {
	for _, tx := range txs {
		delete(pool.TxPool, tx.CalculateHash())
	}
	kept := pool.Order[:0]
	for _, h := range pool.Order {
		if _, ok := pool.TxPool[h]; ok {
			kept = append(kept, h)
		}
	}
	pool.Order = kept
}

// Return all transactions in the pool in arrival order.
func GetAllTxsInPool(pool *model.TransactionPool) []*model.Transaction {
	txs := make([]*model.Transaction, 0, len(pool.Order))
	for _, h := range pool.Order {
		if tx, ok := pool.TxPool[h]; ok {
			txs = append(txs, tx)
		}
	}
	return txs
}
