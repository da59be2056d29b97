// Package ledger chains blocks together and keeps the world state they
// produce. A block is only appended when every transaction in it succeeds;
// otherwise the world state is rolled back to where it was before the block.
package ledger

import (
	"errors"
	"fmt"
	"log"

	"github.com/Luismorlan/ledger_in_go/model"
	"github.com/Luismorlan/ledger_in_go/state"
	"github.com/Luismorlan/ledger_in_go/utils"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

var (
	ErrBlockHashMismatch = &model.CodedError{Code: 93820394, Msg: "the block hash is mismatching"}
	ErrBrokenLink        = &model.CodedError{Code: 3948230, Msg: "the new block has to point to the previous block"}
	ErrEmptyBlock        = &model.CodedError{Code: 9482930, Msg: "there has to be at least one transaction inside the block"}
	// A transaction slot is nil or carries no record.
	ErrMalformedTransaction = &model.CodedError{Code: 9482931, Msg: "the block contains a malformed transaction"}
	// Wraps a TransactionError after the world state was rolled back.
	ErrRolledBack = &model.CodedError{Code: 38203984, Msg: "rolling back"}

	ErrStoredHashMismatch = &model.CodedError{Code: 665234234, Msg: "stored hash does not match the block content"}
	ErrGenesisHasPrevHash = &model.CodedError{Code: 394823098, Msg: "the first block must not point to a previous block"}
	ErrMissingPrevHash    = &model.CodedError{Code: 394823099, Msg: "the block does not point to a previous block"}
	ErrNotConnected       = &model.CodedError{Code: 394823100, Msg: "the block is not connected to the previous block"}
	ErrInvalidSignature   = &model.CodedError{Code: 4398239048, Msg: "invalid signature"}
)

// ValidityError locates a problem found by CheckValidity. Block is 1 based,
// Transaction is 1 based or 0 when the block itself is at fault.
type ValidityError struct {
	Block       int
	Transaction int
	Err         error
}

func (e *ValidityError) Error() string {
	if e.Transaction > 0 {
		return fmt.Sprintf("transaction #%d for block #%d: %v", e.Transaction, e.Block, e.Err)
	}
	return fmt.Sprintf("block #%d: %v", e.Block, e.Err)
}

func (e *ValidityError) Unwrap() error {
	return e.Err
}

// rollbackError joins the rollback code with the failing transaction.
type rollbackError struct {
	txErr *utils.TransactionError
}

func (e *rollbackError) Error() string {
	return fmt.Sprintf("%s. %s", e.txErr.Error(), ErrRolledBack.Error())
}

func (e *rollbackError) Unwrap() []error {
	return []error{ErrRolledBack, e.txErr}
}

// Blockchain is not safe for concurrent use, callers serialize access.
type Blockchain struct {
	blocks []*model.Block
	store  state.Store
}

// New creates an empty chain over an in-memory map world state.
func New() *Blockchain {
	return NewWithStore(state.NewMemoryStore())
}

func NewWithStore(store state.Store) *Blockchain {
	return &Blockchain{store: store}
}

func (bc *Blockchain) Len() int {
	return len(bc.blocks)
}

// LastBlockHash returns the hash of the newest block, nil for an empty chain.
func (bc *Blockchain) LastBlockHash() *chainhash.Hash {
	if len(bc.blocks) == 0 {
		return nil
	}
	h := *bc.blocks[len(bc.blocks)-1].Hash
	return &h
}

// AppendBlock validates the block, runs its transactions against the world
// state and appends a copy of it. Structural problems are rejected before the
// world state is touched; a failing transaction rolls the world state back.
func (bc *Blockchain) AppendBlock(block *model.Block) error {
	isGenesis := len(bc.blocks) == 0

	if block == nil {
		return ErrEmptyBlock
	}
	if i := firstMalformed(block.Transactions); i > 0 {
		return fmt.Errorf("%w: transaction #%d", ErrMalformedTransaction, i)
	}
	if !block.VerifyOwnHash() {
		return ErrBlockHashMismatch
	}
	last := bc.LastBlockHash()
	if !sameHash(block.PrevHash, last) {
		return ErrBrokenLink
	}
	if len(block.Transactions) == 0 {
		return ErrEmptyBlock
	}

	snap, err := bc.store.Snapshot()
	if err != nil {
		return fmt.Errorf("failed to snapshot world state: %w", err)
	}
	if err := utils.HandleTransactions(block.Transactions, bc.store, isGenesis); err != nil {
		restore(snap, err.Error())
		var txErr *utils.TransactionError
		if errors.As(err, &txErr) {
			log.Printf("LEDGER rejected block %s: %v", block.Hash, txErr)
			return &rollbackError{txErr: txErr}
		}
		return err
	}
	if err := snap.Release(); err != nil {
		log.Printf("LEDGER failed to release snapshot: %v", err)
	}

	bc.blocks = append(bc.blocks, block.Clone())
	return nil
}

// firstMalformed returns the 1 based position of the first nil transaction
// or record, 0 when there is none.
func firstMalformed(txs []*model.Transaction) int {
	for i, tx := range txs {
		if tx == nil || tx.Record == nil {
			return i + 1
		}
	}
	return 0
}

// restore rolls the world state back to snap. A world state that cannot be
// put back no longer matches the chain, so that is fatal.
func restore(snap state.Snapshot, after string) {
	if err := snap.Restore(); err != nil {
		snap.Release()
		panic(fmt.Sprintf("failed to roll back world state after %s: %v", after, err))
	}
}

// DryRun executes txs in order as if they formed the next block, then rolls
// the world state back. A transaction that fails is skipped, so later ones
// run against the state without it. It returns the transactions that ran and
// the errors of those that did not, keyed by their position in txs.
func (bc *Blockchain) DryRun(txs []*model.Transaction) ([]*model.Transaction, map[int]error, error) {
	isGenesis := len(bc.blocks) == 0
	snap, err := bc.store.Snapshot()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to snapshot world state: %w", err)
	}
	var accepted []*model.Transaction
	rejected := make(map[int]error)
	for i, tx := range txs {
		if tx == nil || tx.Record == nil {
			rejected[i] = ErrMalformedTransaction
			continue
		}
		if err := utils.HandleTransaction(tx, bc.store, isGenesis); err != nil {
			rejected[i] = err
			continue
		}
		accepted = append(accepted, tx)
	}
	restore(snap, "a dry run")
	return accepted, rejected, nil
}

// sameHash compares two optional hashes byte for byte.
func sameHash(a, b *chainhash.Hash) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.IsEqual(b)
}

// CheckValidity audits every stored block from the first to the last and
// reports the first problem. The world state is not re-derived.
func (bc *Blockchain) CheckValidity() error {
	return VerifyBlocks(bc.blocks)
}

// VerifyBlocks runs the CheckValidity audit over any block sequence, with
// blocks[0] taken as the genesis block.
func VerifyBlocks(blocks []*model.Block) error {
	for i, block := range blocks {
		if block == nil {
			return &ValidityError{Block: i + 1, Err: ErrEmptyBlock}
		}
		if j := firstMalformed(block.Transactions); j > 0 {
			return &ValidityError{Block: i + 1, Transaction: j, Err: ErrMalformedTransaction}
		}
		if !block.VerifyOwnHash() {
			return &ValidityError{Block: i + 1, Err: ErrStoredHashMismatch}
		}
		if i == 0 {
			if block.PrevHash != nil {
				return &ValidityError{Block: i + 1, Err: ErrGenesisHasPrevHash}
			}
		} else {
			if block.PrevHash == nil {
				return &ValidityError{Block: i + 1, Err: ErrMissingPrevHash}
			}
			expected := blocks[i-1].Hash
			if !sameHash(block.PrevHash, expected) {
				return &ValidityError{
					Block: i + 1,
					Err: fmt.Errorf("%w: should be `%s` but is `%s`",
						ErrNotConnected, utils.HashToHex(expected), utils.HashToHex(block.PrevHash)),
				}
			}
		}
		for j, tx := range block.Transactions {
			if tx.IsSigned() && !tx.CheckSignature() {
				return &ValidityError{Block: i + 1, Transaction: j + 1, Err: ErrInvalidSignature}
			}
		}
	}
	return nil
}

// Blocks returns copies of all committed blocks.
func (bc *Blockchain) Blocks() []*model.Block {
	out := make([]*model.Block, len(bc.blocks))
	for i, b := range bc.blocks {
		out[i] = b.Clone()
	}
	return out
}

// Block returns a copy of the block at the 0 based height.
func (bc *Blockchain) Block(height int) (*model.Block, error) {
	if height < 0 || height >= len(bc.blocks) {
		return nil, fmt.Errorf("no block at height %d, chain has %d blocks", height, len(bc.blocks))
	}
	return bc.blocks[height].Clone(), nil
}

func (bc *Blockchain) Account(id string) (model.Account, bool, error) {
	return bc.store.GetAccount(id)
}

// Accounts returns every account in the world state.
func (bc *Blockchain) Accounts() (map[string]model.Account, error) {
	return state.Accounts(bc.store)
}
