package model

import (
	"encoding/json"
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBlockHasNoHash(t *testing.T) {
	b := NewBlock(nil)
	assert.Nil(t, b.Hash)
	assert.Nil(t, b.PrevHash)
	assert.False(t, b.VerifyOwnHash())
	assert.Equal(t, 0, b.TransactionCount())
}

func TestBlockHashTracksMutations(t *testing.T) {
	b := NewBlock(nil)
	b.AddTransaction(createTestTransaction())
	require.NotNil(t, b.Hash)
	assert.True(t, b.VerifyOwnHash())
	first := *b.Hash

	b.SetNonce(NewUint128(1))
	assert.True(t, b.VerifyOwnHash())
	assert.NotEqual(t, first, *b.Hash)
}

func TestBlockDirectMutationBreaksHash(t *testing.T) {
	b := NewBlock(nil)
	b.AddTransaction(createTestTransaction())
	b.Transactions[0].Record = TransferTokens{To: "bob", Amount: NewUint128(100)}
	assert.False(t, b.VerifyOwnHash())

	b.UpdateHash()
	assert.True(t, b.VerifyOwnHash())
}

func TestBlockHashIsOrderSensitive(t *testing.T) {
	t1 := createTestTransaction()
	t2 := createTestTransaction()
	t2.From = "bob"

	a := NewBlock(nil)
	a.AddTransaction(t1)
	a.AddTransaction(t2)

	b := NewBlock(nil)
	b.AddTransaction(t2)
	b.AddTransaction(t1)

	assert.NotEqual(t, *a.Hash, *b.Hash)
}

func TestBlockHashCoversPrevHash(t *testing.T) {
	prev := chainhash.Hash{1}
	a := NewBlock(nil)
	a.AddTransaction(createTestTransaction())
	b := NewBlock(&prev)
	b.AddTransaction(createTestTransaction())
	assert.NotEqual(t, *a.Hash, *b.Hash)
}

func TestBlockAllowsDuplicateTransactions(t *testing.T) {
	tx := createTestTransaction()
	b := NewBlock(nil)
	b.AddTransaction(tx)
	b.AddTransaction(tx)
	assert.Equal(t, 2, b.TransactionCount())
}

func TestBlockClone(t *testing.T) {
	prev := chainhash.Hash{9}
	b := NewBlock(&prev)
	b.AddTransaction(createTestTransaction())
	c := b.Clone()

	c.Transactions[0].From = "mallory"
	c.PrevHash[0] = 0
	assert.Equal(t, "alice", b.Transactions[0].From)
	assert.Equal(t, byte(9), b.PrevHash[0])
	assert.True(t, b.VerifyOwnHash())
}

func TestBlockJSON(t *testing.T) {
	prev := chainhash.Hash{3}
	b := NewBlock(&prev)
	b.AddTransaction(createTestTransaction())
	b.SetNonce(NewUint128(42))

	data, err := json.Marshal(b)
	require.NoError(t, err)

	var decoded Block
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, decoded.VerifyOwnHash())
	assert.True(t, decoded.Hash.IsEqual(b.Hash))
	assert.True(t, decoded.PrevHash.IsEqual(b.PrevHash))
	assert.Equal(t, "42", decoded.Nonce.String())
}

func TestBlockJSONKeepsStaleHash(t *testing.T) {
	b := NewBlock(nil)
	b.AddTransaction(createTestTransaction())
	b.Nonce = NewUint128(5)

	data, err := json.Marshal(b)
	require.NoError(t, err)
	var decoded Block
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Nil(t, decoded.PrevHash)
	assert.False(t, decoded.VerifyOwnHash())
}
