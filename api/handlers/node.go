package handlers

import (
	"github.com/Luismorlan/ledger_in_go/model"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// Node is the part of a full node the HTTP handlers read from and write to.
type Node interface {
	GetAccount(id string) (model.Account, bool, error)
	GetAccounts() (map[string]model.Account, error)
	GetBlocks() []*model.Block
	GetBlock(height int) (*model.Block, error)
	GetHeight() int
	GetTailHash() *chainhash.Hash
	CheckValidity() error
	PendingTransactions() []*model.Transaction
	AddTransactionToPool(tx *model.Transaction) error
	SealBlock() (*model.Block, error)
}
