package utils

import (
	"errors"
	"fmt"

	"github.com/Luismorlan/ledger_in_go/model"
)

var (
	ErrSenderNotFound           = &model.CodedError{Code: 93482390, Msg: "that account does not exist"}
	ErrMintOutsideGenesis       = &model.CodedError{Code: 2394233, Msg: "token creation is only available on initial creation"}
	ErrMintReceiverNotFound     = &model.CodedError{Code: 23482309, Msg: "receiver account does not exist"}
	ErrTransferReceiverNotFound = &model.CodedError{Code: 3242342380, Msg: "receiver account does not exist"}
	ErrTransferSenderNotFound   = &model.CodedError{Code: 23423923, Msg: "sender account does not exist"}
	ErrArithmetic               = &model.CodedError{Code: 48239084203, Msg: "overspent or arithmetic error"}
	ErrUnimplemented            = &model.CodedError{Code: 487289724389, Msg: "unknown transaction type (not implemented)"}
)

// TransactionError reports which transaction of a batch failed. Index is 1 based.
type TransactionError struct {
	Index int
	Err   error
}

func (e *TransactionError) Error() string {
	return fmt.Sprintf("could not execute transaction %d due to `%v`", e.Index, e.Err)
}

func (e *TransactionError) Unwrap() error {
	return e.Err
}

// Handle transaction:
// 1. The sender must exist, unless we are building the genesis block.
// 2. Dispatch on the record and apply its effect to the world state.
// A failed transaction leaves the world state untouched.
func HandleTransaction(tx *model.Transaction, ws model.WorldState, isInitial bool) error {
	_, exists, err := ws.GetAccount(tx.From)
	if err != nil {
		return err
	}
	if !exists && !isInitial {
		return ErrSenderNotFound
	}

	switch record := tx.Record.(type) {
	case model.CreateUserAccount:
		return ws.CreateAccount(record.ID, model.User)
	case model.CreateTokens:
		return handleCreateTokens(record, ws, isInitial)
	case model.TransferTokens:
		return handleTransferTokens(tx.From, record, ws)
	default:
		return ErrUnimplemented
	}
}

func handleCreateTokens(record model.CreateTokens, ws model.WorldState, isInitial bool) error {
	if !isInitial {
		return ErrMintOutsideGenesis
	}
	overflow := false
	err := ws.UpdateAccount(record.Receiver, func(acc *model.Account) {
		sum, ok := acc.Tokens.CheckedAdd(record.Amount)
		if !ok {
			overflow = true
			return
		}
		acc.Tokens = sum
	})
	if errors.Is(err, model.ErrAccountNotFound) {
		return ErrMintReceiverNotFound
	}
	if err != nil {
		return err
	}
	if overflow {
		return ErrArithmetic
	}
	return nil
}

// Both balances are computed before either is written, so a failure changes nothing.
func handleTransferTokens(from string, record model.TransferTokens, ws model.WorldState) error {
	receiver, exists, err := ws.GetAccount(record.To)
	if err != nil {
		return err
	}
	if !exists {
		return ErrTransferReceiverNotFound
	}
	sender, exists, err := ws.GetAccount(from)
	if err != nil {
		return err
	}
	if !exists {
		return ErrTransferSenderNotFound
	}

	senderTokens, ok := sender.Tokens.CheckedSub(record.Amount)
	if !ok {
		return ErrArithmetic
	}
	receiverTokens, ok := receiver.Tokens.CheckedAdd(record.Amount)
	if !ok {
		return ErrArithmetic
	}
	// Paying yourself changes nothing once both sides check out.
	if from == record.To {
		return nil
	}

	if err := setTokens(ws, from, senderTokens); err != nil {
		return err
	}
	return setTokens(ws, record.To, receiverTokens)
}

func setTokens(ws model.WorldState, id string, tokens model.Uint128) error {
	err := ws.UpdateAccount(id, func(acc *model.Account) {
		acc.Tokens = tokens
	})
	if errors.Is(err, model.ErrAccountNotFound) {
		panic(fmt.Sprintf("account %q disappeared during a transfer", id))
	}
	return err
}

// Handle a bunch of transactions in order, stopping at the first failure.
// The world state is changed directly, callers that need to roll back must
// snapshot it first.
func HandleTransactions(txs []*model.Transaction, ws model.WorldState, isInitial bool) error {
	for i, tx := range txs {
		if err := HandleTransaction(tx, ws, isInitial); err != nil {
			return &TransactionError{Index: i + 1, Err: err}
		}
	}
	return nil
}
