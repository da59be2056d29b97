package model

import (
	"encoding/json"
	"fmt"
)

// TransactionData is what a transaction asks the ledger to do. The set of
// variants is closed: only types in this package implement it.
type TransactionData interface {
	// Stable tag used in hashing and JSON.
	Type() string
	encode(w *hashWriter)
}

const (
	CreateUserAccountType = "create_user_account"
	ChangeStoreValueType  = "change_store_value"
	TransferTokensType    = "transfer_tokens"
	CreateTokensType      = "create_tokens"
)

// Create a user account with a zero balance.
type CreateUserAccount struct {
	ID string `json:"id"`
}

// Set an arbitrary key to a value. Declared but not executable yet.
type ChangeStoreValue struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Move tokens from the sender to To.
type TransferTokens struct {
	To     string  `json:"to"`
	Amount Uint128 `json:"amount"`
}

// Mint tokens into Receiver. Only allowed in the genesis block.
type CreateTokens struct {
	Receiver string  `json:"receiver"`
	Amount   Uint128 `json:"amount"`
}

func (CreateUserAccount) Type() string { return CreateUserAccountType }
func (ChangeStoreValue) Type() string  { return ChangeStoreValueType }
func (TransferTokens) Type() string    { return TransferTokensType }
func (CreateTokens) Type() string      { return CreateTokensType }

func (d CreateUserAccount) encode(w *hashWriter) {
	w.writeString(d.Type())
	w.writeString(d.ID)
}

func (d ChangeStoreValue) encode(w *hashWriter) {
	w.writeString(d.Type())
	w.writeString(d.Key)
	w.writeString(d.Value)
}

func (d TransferTokens) encode(w *hashWriter) {
	w.writeString(d.Type())
	w.writeString(d.To)
	w.writeUint128(d.Amount)
}

func (d CreateTokens) encode(w *hashWriter) {
	w.writeString(d.Type())
	w.writeString(d.Receiver)
	w.writeUint128(d.Amount)
}

func (d CreateUserAccount) String() string {
	return fmt.Sprintf("CreateUserAccount(%s)", d.ID)
}

func (d ChangeStoreValue) String() string {
	return fmt.Sprintf("ChangeStoreValue(%s=%s)", d.Key, d.Value)
}

func (d TransferTokens) String() string {
	return fmt.Sprintf("TransferTokens(to: %s, amount: %s)", d.To, d.Amount)
}

func (d CreateTokens) String() string {
	return fmt.Sprintf("CreateTokens(receiver: %s, amount: %s)", d.Receiver, d.Amount)
}

// decodeTransactionData picks the variant by its tag.
func decodeTransactionData(tag string, raw json.RawMessage) (TransactionData, error) {
	switch tag {
	case CreateUserAccountType:
		var d CreateUserAccount
		err := json.Unmarshal(raw, &d)
		return d, err
	case ChangeStoreValueType:
		var d ChangeStoreValue
		err := json.Unmarshal(raw, &d)
		return d, err
	case TransferTokensType:
		var d TransferTokens
		err := json.Unmarshal(raw, &d)
		return d, err
	case CreateTokensType:
		var d CreateTokens
		err := json.Unmarshal(raw, &d)
		return d, err
	default:
		return nil, fmt.Errorf("unknown transaction type %q", tag)
	}
}
