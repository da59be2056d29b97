// Package demo drives the ledger through its reference scenario: a genesis
// block funding two users, one transfer between them, and two attempts at
// rewriting history that the audit must catch.
package demo

import (
	"errors"
	"fmt"

	"github.com/Luismorlan/ledger_in_go/ledger"
	"github.com/Luismorlan/ledger_in_go/model"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

const InitialTokens = 100_000_000

var (
	ErrNoSuchBlock  = errors.New("no block at that height")
	ErrNoSuchRecord = errors.New("block has no matching record")
)

// BuildGenesis creates each account and mints InitialTokens to it. Every
// account sends its own transactions.
func BuildGenesis(accounts ...string) *model.Block {
	b := model.NewBlock(nil)
	for _, id := range accounts {
		b.AddTransaction(model.NewTransaction(id, model.CreateUserAccount{ID: id}, model.NewUint128(0)))
		b.AddTransaction(model.NewTransaction(id, model.CreateTokens{
			Receiver: id,
			Amount:   model.NewUint128(InitialTokens),
		}, model.NewUint128(0)))
	}
	return b
}

func TransferBlock(prev *chainhash.Hash, from, to string, amount model.Uint128) *model.Block {
	b := model.NewBlock(prev)
	b.AddTransaction(model.NewTransaction(from, model.TransferTokens{To: to, Amount: amount}, model.NewUint128(0)))
	return b
}

func copyBlocks(blocks []*model.Block) []*model.Block {
	out := make([]*model.Block, len(blocks))
	for i, b := range blocks {
		out[i] = b.Clone()
	}
	return out
}

// TamperTransfer returns a copy of blocks where the first transfer at height
// moves amount instead. Block hashes are left alone.
func TamperTransfer(blocks []*model.Block, height int, amount model.Uint128) ([]*model.Block, error) {
	if height < 0 || height >= len(blocks) {
		return nil, fmt.Errorf("%w: %d", ErrNoSuchBlock, height)
	}
	out := copyBlocks(blocks)
	for _, tx := range out[height].Transactions {
		if t, ok := tx.Record.(model.TransferTokens); ok {
			t.Amount = amount
			tx.Record = t
			return out, nil
		}
	}
	return nil, fmt.Errorf("%w: no transfer in block %d", ErrNoSuchRecord, height)
}

// TamperGenesisAndRehash returns a copy of blocks where the genesis mint for
// receiver is changed to amount and the genesis hash is recomputed.
func TamperGenesisAndRehash(blocks []*model.Block, receiver string, amount model.Uint128) ([]*model.Block, error) {
	if len(blocks) == 0 {
		return nil, fmt.Errorf("%w: 0", ErrNoSuchBlock)
	}
	out := copyBlocks(blocks)
	genesis := out[0]
	for _, tx := range genesis.Transactions {
		if m, ok := tx.Record.(model.CreateTokens); ok && m.Receiver == receiver {
			m.Amount = amount
			tx.Record = m
			genesis.UpdateHash()
			return out, nil
		}
	}
	return nil, fmt.Errorf("%w: no mint for %s", ErrNoSuchRecord, receiver)
}

type Result struct {
	Chain    *ledger.Blockchain
	Balances map[string]model.Account
	// Audit outcome of the unmodified chain, nil when valid.
	Valid error
	// Audit outcomes of the two tampered copies.
	Tampered error
	Rehashed error
}

// Run plays the whole scenario on an in-memory chain.
func Run() (*Result, error) {
	bc := ledger.New()
	if err := bc.AppendBlock(BuildGenesis("alice", "bob")); err != nil {
		return nil, fmt.Errorf("genesis rejected: %w", err)
	}
	if err := bc.CheckValidity(); err != nil {
		return nil, fmt.Errorf("genesis chain invalid: %w", err)
	}
	if err := bc.AppendBlock(TransferBlock(bc.LastBlockHash(), "alice", "bob", model.NewUint128(1))); err != nil {
		return nil, fmt.Errorf("transfer rejected: %w", err)
	}

	balances, err := bc.Accounts()
	if err != nil {
		return nil, err
	}
	res := &Result{Chain: bc, Balances: balances, Valid: bc.CheckValidity()}

	tampered, err := TamperTransfer(bc.Blocks(), 1, model.NewUint128(100))
	if err != nil {
		return nil, err
	}
	res.Tampered = ledger.VerifyBlocks(tampered)

	rehashed, err := TamperGenesisAndRehash(bc.Blocks(), "alice", model.NewUint128(1_000_000_000))
	if err != nil {
		return nil, err
	}
	res.Rehashed = ledger.VerifyBlocks(rehashed)
	return res, nil
}
