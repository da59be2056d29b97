package full_node

import (
	"errors"
	"fmt"
	"io"
	"log"
	"sync"

	"github.com/Luismorlan/ledger_in_go/config"
	"github.com/Luismorlan/ledger_in_go/ledger"
	"github.com/Luismorlan/ledger_in_go/model"
	"github.com/Luismorlan/ledger_in_go/state"
	"github.com/Luismorlan/ledger_in_go/utils"
	"github.com/Luismorlan/ledger_in_go/visualize"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	uuid "github.com/satori/go.uuid"
)

var (
	ErrDuplicateTransaction = errors.New("existing transaction, will not process")
	ErrEmptyPool            = errors.New("no pending transaction to put in a block")
)

// A full node maintains the blockchain and the pool of pending transactions.
type FullNode struct {
	// The blockchain it needs to maintain.
	blockchain *ledger.Blockchain
	// Transaction pool it need to maintain. Incoming transaction are added to this pool.
	txPool *model.TransactionPool
	// Blockchain config.
	config config.AppConfig
	// Closes the world state backend, if it needs closing.
	closer io.Closer
	// A single mutex for changing internal state.
	m sync.RWMutex
	// A unique identifier of this full node, only used for logs and file names.
	uuid string
}

// Create a full node over the configured world state. When the config lists
// genesis accounts, the genesis block is appended right away.
func NewFullNode(c config.AppConfig) (*FullNode, error) {
	f := &FullNode{
		txPool: model.NewTransactionPool(),
		config: c,
		uuid:   uuid.NewV4().String(),
	}

	switch c.STORE {
	case config.StorePebble:
		s, err := state.NewPebbleStore()
		if err != nil {
			return nil, err
		}
		f.blockchain = ledger.NewWithStore(s)
		f.closer = s
	case config.StoreMemory, "":
		f.blockchain = ledger.New()
	default:
		return nil, fmt.Errorf("unknown store %q", c.STORE)
	}

	allocs, err := c.GenesisAllocations()
	if err != nil {
		f.Close()
		return nil, err
	}
	if len(allocs) > 0 {
		genesis, err := utils.CreateGenesisBlock(allocs)
		if err != nil {
			f.Close()
			return nil, err
		}
		if err := f.blockchain.AppendBlock(genesis); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to append genesis block: %w", err)
		}
		log.Printf("NODE %s genesis block %s with %d accounts", f.uuid, genesis.Hash, len(allocs))
	}
	return f, nil
}

func (f *FullNode) Close() error {
	if f.closer == nil {
		return nil
	}
	return f.closer.Close()
}

func (f *FullNode) ID() string {
	return f.uuid
}

func (f *FullNode) AddTransactionToPool(tx *model.Transaction) error {
	f.m.Lock()
	defer f.m.Unlock()

	if !utils.AddTxToPool(f.txPool, tx.Clone()) {
		return ErrDuplicateTransaction
	}
	return nil
}

// PendingTransactions returns the pooled transactions in arrival order.
func (f *FullNode) PendingTransactions() []*model.Transaction {
	f.m.RLock()
	defer f.m.RUnlock()
	txs := utils.GetAllTxsInPool(f.txPool)
	for i, tx := range txs {
		txs[i] = tx.Clone()
	}
	return txs
}

// Create a new block from the pool, linked to the tail. Every pending
// transaction is first run against the current world state; the ones that
// fail are dropped from the pool and left out. The block is not appended.
func (f *FullNode) CreateNewBlock() (*model.Block, error) {
	f.m.Lock()
	defer f.m.Unlock()
	return f.createNewBlock()
}

func (f *FullNode) createNewBlock() (*model.Block, error) {
	txs := utils.GetAllTxsInPool(f.txPool)
	if len(txs) == 0 {
		return nil, ErrEmptyPool
	}
	accepted, rejected, err := f.blockchain.DryRun(txs)
	if err != nil {
		return nil, err
	}

	var dropped []*model.Transaction
	var firstErr error
	for i, tx := range txs {
		txErr, ok := rejected[i]
		if !ok {
			continue
		}
		log.Printf("NODE %s dropped pending transaction %s: %v", f.uuid, tx.CalculateHash(), txErr)
		dropped = append(dropped, tx)
		if firstErr == nil {
			firstErr = txErr
		}
	}
	utils.RemoveTxsFromPool(f.txPool, dropped)

	if len(accepted) == 0 {
		return nil, fmt.Errorf("%w: dropped %d failing transactions, first: %w", ErrEmptyPool, len(dropped), firstErr)
	}
	for i, tx := range accepted {
		accepted[i] = tx.Clone()
	}
	return utils.CreateNewBlock(accepted, f.blockchain.LastBlockHash())
}

// Handle the new block received:
// 1. Append it to the blockchain, which validates and executes it.
// 2. Remove its transactions from the pool.
func (f *FullNode) HandleNewBlock(block *model.Block) error {
	f.m.Lock()
	defer f.m.Unlock()
	return f.handleNewBlock(block)
}

func (f *FullNode) handleNewBlock(block *model.Block) error {
	if err := f.blockchain.AppendBlock(block); err != nil {
		return err
	}
	utils.RemoveTxsFromPool(f.txPool, block.Transactions)
	log.Printf("NODE %s appended block %d: %s", f.uuid, f.blockchain.Len(), block)
	return nil
}

// SealBlock turns the pool into a block and appends it. Pending transactions
// that cannot execute are dropped on the way.
func (f *FullNode) SealBlock() (*model.Block, error) {
	f.m.Lock()
	defer f.m.Unlock()

	block, err := f.createNewBlock()
	if err != nil {
		return nil, err
	}
	if err := f.handleNewBlock(block); err != nil {
		return nil, err
	}
	return block.Clone(), nil
}

func (f *FullNode) GetAccount(id string) (model.Account, bool, error) {
	f.m.RLock()
	defer f.m.RUnlock()
	return f.blockchain.Account(id)
}

func (f *FullNode) GetAccounts() (map[string]model.Account, error) {
	f.m.RLock()
	defer f.m.RUnlock()
	return f.blockchain.Accounts()
}

func (f *FullNode) GetBlocks() []*model.Block {
	f.m.RLock()
	defer f.m.RUnlock()
	return f.blockchain.Blocks()
}

// GetBlock returns the block at the 0 based height.
func (f *FullNode) GetBlock(height int) (*model.Block, error) {
	f.m.RLock()
	defer f.m.RUnlock()
	return f.blockchain.Block(height)
}

// GetHeight returns the number of committed blocks.
func (f *FullNode) GetHeight() int {
	f.m.RLock()
	defer f.m.RUnlock()
	return f.blockchain.Len()
}

func (f *FullNode) GetTailHash() *chainhash.Hash {
	f.m.RLock()
	defer f.m.RUnlock()
	return f.blockchain.LastBlockHash()
}

func (f *FullNode) CheckValidity() error {
	f.m.RLock()
	defer f.m.RUnlock()
	return f.blockchain.CheckValidity()
}

// Show writes a graph of the newest d blocks.
func (f *FullNode) Show(w io.Writer, d int) error {
	return visualize.Render(w, f.GetBlocks(), d)
}
