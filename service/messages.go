package service

import "github.com/Luismorlan/ledger_in_go/model"

type SetTransactionRequest struct {
	Tx *model.Transaction `json:"tx"`
}

func (r *SetTransactionRequest) GetTx() *model.Transaction {
	if r == nil {
		return nil
	}
	return r.Tx
}

type SetTransactionResponse struct {
	// Hex hash of the pooled transaction.
	Hash string `json:"hash"`
}

type SetBlockRequest struct {
	Block *model.Block `json:"block"`
}

func (r *SetBlockRequest) GetBlock() *model.Block {
	if r == nil {
		return nil
	}
	return r.Block
}

type SetBlockResponse struct {
	Height int `json:"height"`
}

type SealBlockRequest struct{}

type SealBlockResponse struct {
	Block  *model.Block `json:"block"`
	Height int          `json:"height"`
}

type GetBalanceRequest struct {
	Account string `json:"account"`
}

type GetBalanceResponse struct {
	Account string        `json:"account"`
	Kind    string        `json:"kind"`
	Tokens  model.Uint128 `json:"tokens"`
}

type GetChainRequest struct {
	// Only return the newest Depth blocks, 0 for all of them.
	Depth int `json:"depth"`
}

type GetChainResponse struct {
	Blocks []*model.Block `json:"blocks"`
	Height int            `json:"height"`
}

type CheckValidityRequest struct{}

type CheckValidityResponse struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}
