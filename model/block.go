package model

import (
	"encoding/json"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

type Block struct {
	// Transactions in execution order.
	Transactions []*Transaction
	// Hash of the previous block, nil only for the first block of a chain.
	PrevHash *chainhash.Hash
	// Hash of this block. Kept in sync by AddTransaction and SetNonce, but
	// writing the fields directly leaves it stale.
	Hash *chainhash.Hash
	// Placeholder for a mining nonce, never searched for.
	Nonce Uint128
}

// Create an empty block pointing at prevHash. The hash stays unset until the
// first mutation.
func NewBlock(prevHash *chainhash.Hash) *Block {
	var prev *chainhash.Hash
	if prevHash != nil {
		h := *prevHash
		prev = &h
	}
	return &Block{
		PrevHash: prev,
		Nonce:    NewUint128(0),
	}
}

// Append a transaction and refresh the hash. Duplicates are not filtered.
func (b *Block) AddTransaction(tx *Transaction) {
	b.Transactions = append(b.Transactions, tx)
	b.UpdateHash()
}

func (b *Block) SetNonce(nonce Uint128) {
	b.Nonce = nonce
	b.UpdateHash()
}

func (b *Block) UpdateHash() {
	h := b.CalculateHash()
	b.Hash = &h
}

// CalculateHash digests every transaction hash in order, then the previous
// hash and the nonce.
func (b *Block) CalculateHash() chainhash.Hash {
	w := newHashWriter()
	w.writeUint64(uint64(len(b.Transactions)))
	for _, tx := range b.Transactions {
		w.writeHash(tx.CalculateHash())
	}
	w.writeOptionalHash(b.PrevHash)
	w.writeUint128(b.Nonce)
	return w.sum()
}

// VerifyOwnHash reports whether the stored hash is set and matches the content.
func (b *Block) VerifyOwnHash() bool {
	if b.Hash == nil {
		return false
	}
	h := b.CalculateHash()
	return b.Hash.IsEqual(&h)
}

func (b *Block) TransactionCount() int {
	return len(b.Transactions)
}

// Clone returns a deep copy, the stored hash included as is.
func (b *Block) Clone() *Block {
	c := &Block{
		Nonce: b.Nonce,
	}
	if b.PrevHash != nil {
		h := *b.PrevHash
		c.PrevHash = &h
	}
	if b.Hash != nil {
		h := *b.Hash
		c.Hash = &h
	}
	if b.Transactions != nil {
		c.Transactions = make([]*Transaction, len(b.Transactions))
		for i, tx := range b.Transactions {
			c.Transactions[i] = tx.Clone()
		}
	}
	return c
}

func hashString(h *chainhash.Hash) string {
	if h == nil {
		return "none"
	}
	return h.String()
}

func (b *Block) String() string {
	return fmt.Sprintf("Block { hash: %s, phash: %s, nonce: %s, txns: %d }",
		hashString(b.Hash), hashString(b.PrevHash), b.Nonce, len(b.Transactions))
}

type blockJSON struct {
	Transactions []*Transaction `json:"transactions"`
	PrevHash     *string        `json:"prev_hash"`
	Hash         *string        `json:"hash"`
	Nonce        Uint128        `json:"nonce"`
}

func (b *Block) MarshalJSON() ([]byte, error) {
	out := blockJSON{
		Transactions: b.Transactions,
		Nonce:        b.Nonce,
	}
	if out.Transactions == nil {
		out.Transactions = []*Transaction{}
	}
	if b.PrevHash != nil {
		s := b.PrevHash.String()
		out.PrevHash = &s
	}
	if b.Hash != nil {
		s := b.Hash.String()
		out.Hash = &s
	}
	return json.Marshal(out)
}

// UnmarshalJSON keeps the hash exactly as sent so receivers can verify it.
func (b *Block) UnmarshalJSON(data []byte) error {
	var raw blockJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*b = Block{
		Transactions: raw.Transactions,
		Nonce:        raw.Nonce,
	}
	if raw.PrevHash != nil {
		h, err := chainhash.NewHashFromStr(*raw.PrevHash)
		if err != nil {
			return fmt.Errorf("invalid prev_hash: %w", err)
		}
		b.PrevHash = h
	}
	if raw.Hash != nil {
		h, err := chainhash.NewHashFromStr(*raw.Hash)
		if err != nil {
			return fmt.Errorf("invalid hash: %w", err)
		}
		b.Hash = h
	}
	return nil
}
