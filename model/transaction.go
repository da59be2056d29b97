package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

type Transaction struct {
	// Stored for replay protection but not checked yet.
	Nonce Uint128
	// Id of the sending account.
	From string
	// Creation time, part of the hash.
	CreatedAt time.Time
	// What the transaction does.
	Record TransactionData
	// Signature over the hash, nil when unsigned.
	Signature *string
}

// NewTransaction stamps the current time and leaves the transaction unsigned.
func NewTransaction(from string, data TransactionData, nonce Uint128) *Transaction {
	return &Transaction{
		Nonce:     nonce,
		From:      from,
		CreatedAt: time.Now().UTC(),
		Record:    data,
	}
}

// CalculateHash digests created_at, record, from and nonce. The signature is
// not covered.
func (t *Transaction) CalculateHash() chainhash.Hash {
	w := newHashWriter()
	w.writeInt64(t.CreatedAt.UnixNano())
	if t.Record != nil {
		t.Record.encode(w)
	} else {
		w.writeString("")
	}
	w.writeString(t.From)
	w.writeUint128(t.Nonce)
	return w.sum()
}

func (t *Transaction) SetSignature(sig string) {
	t.Signature = &sig
}

func (t *Transaction) IsSigned() bool {
	return t.Signature != nil
}

// CheckSignature always reports false: there is no key material to verify
// against yet, so only unsigned transactions are accepted by validation.
func (t *Transaction) CheckSignature() bool {
	return false
}

// Clone returns a deep copy. Records are value types and are shared as is.
func (t *Transaction) Clone() *Transaction {
	c := *t
	if t.Signature != nil {
		sig := *t.Signature
		c.Signature = &sig
	}
	return &c
}

func (t *Transaction) String() string {
	h := t.CalculateHash()
	return fmt.Sprintf("Transaction { hash: %s, from: %s, nonce: %s, record: %v }", h, t.From, t.Nonce, t.Record)
}

type recordJSON struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type transactionJSON struct {
	Nonce     Uint128    `json:"nonce"`
	From      string     `json:"from"`
	CreatedAt time.Time  `json:"created_at"`
	Record    recordJSON `json:"record"`
	Signature *string    `json:"signature,omitempty"`
	// Informational, recomputed on read.
	Hash string `json:"hash"`
}

func (t *Transaction) MarshalJSON() ([]byte, error) {
	if t.Record == nil {
		return nil, errors.New("transaction has no record")
	}
	data, err := json.Marshal(t.Record)
	if err != nil {
		return nil, err
	}
	return json.Marshal(transactionJSON{
		Nonce:     t.Nonce,
		From:      t.From,
		CreatedAt: t.CreatedAt,
		Record:    recordJSON{Type: t.Record.Type(), Data: data},
		Signature: t.Signature,
		Hash:      t.CalculateHash().String(),
	})
}

func (t *Transaction) UnmarshalJSON(b []byte) error {
	var raw transactionJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	record, err := decodeTransactionData(raw.Record.Type, raw.Record.Data)
	if err != nil {
		return err
	}
	*t = Transaction{
		Nonce:     raw.Nonce,
		From:      raw.From,
		CreatedAt: raw.CreatedAt,
		Record:    record,
		Signature: raw.Signature,
	}
	return nil
}

type TransactionPool struct {
	// TxPool contains all pending transactions that haven't been put in a block yet.
	// Key is the transaction's hash.
	TxPool map[chainhash.Hash]*Transaction
	// Arrival order of the hashes in TxPool.
	Order []chainhash.Hash
}

// NewTransactionPool creates a new transaction pool with no transaction at all.
func NewTransactionPool() *TransactionPool {
	return &TransactionPool{
		TxPool: make(map[chainhash.Hash]*Transaction),
	}
}
