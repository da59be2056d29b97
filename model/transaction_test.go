package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestTransaction() *Transaction {
	return &Transaction{
		Nonce:     NewUint128(0),
		From:      "alice",
		CreatedAt: time.Date(2024, 1, 2, 3, 4, 5, 6, time.UTC),
		Record:    TransferTokens{To: "bob", Amount: NewUint128(1)},
	}
}

func TestTransactionHashIsDeterministic(t *testing.T) {
	a := createTestTransaction()
	b := createTestTransaction()
	assert.Equal(t, a.CalculateHash(), b.CalculateHash())
}

func TestTransactionHashCoversFields(t *testing.T) {
	base := createTestTransaction().CalculateHash()

	tx := createTestTransaction()
	tx.From = "mallory"
	assert.NotEqual(t, base, tx.CalculateHash())

	tx = createTestTransaction()
	tx.Nonce = NewUint128(1)
	assert.NotEqual(t, base, tx.CalculateHash())

	tx = createTestTransaction()
	tx.CreatedAt = tx.CreatedAt.Add(time.Nanosecond)
	assert.NotEqual(t, base, tx.CalculateHash())

	tx = createTestTransaction()
	tx.Record = TransferTokens{To: "bob", Amount: NewUint128(100)}
	assert.NotEqual(t, base, tx.CalculateHash())

	tx = createTestTransaction()
	tx.Record = CreateTokens{Receiver: "bob", Amount: NewUint128(1)}
	assert.NotEqual(t, base, tx.CalculateHash())
}

func TestTransactionSignatureNotHashed(t *testing.T) {
	tx := createTestTransaction()
	before := tx.CalculateHash()
	tx.SetSignature("deadbeef")
	assert.True(t, tx.IsSigned())
	assert.Equal(t, before, tx.CalculateHash())
	assert.False(t, tx.CheckSignature())
}

func TestNewTransactionIsUnsigned(t *testing.T) {
	tx := NewTransaction("alice", CreateUserAccount{ID: "alice"}, NewUint128(0))
	assert.False(t, tx.IsSigned())
	assert.False(t, tx.CreatedAt.IsZero())
}

func TestTransactionJSON(t *testing.T) {
	records := []TransactionData{
		CreateUserAccount{ID: "alice"},
		ChangeStoreValue{Key: "k", Value: "v"},
		TransferTokens{To: "bob", Amount: NewUint128(7)},
		CreateTokens{Receiver: "alice", Amount: MaxUint128()},
	}
	for _, r := range records {
		tx := createTestTransaction()
		tx.Record = r
		tx.SetSignature("sig")

		data, err := json.Marshal(tx)
		require.NoError(t, err)

		var decoded Transaction
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Equal(t, r, decoded.Record)
		assert.Equal(t, tx.CalculateHash(), decoded.CalculateHash())
		assert.True(t, decoded.IsSigned())
	}
}

func TestTransactionJSONUnknownType(t *testing.T) {
	var tx Transaction
	err := json.Unmarshal([]byte(`{"from":"a","nonce":"0","created_at":"2024-01-01T00:00:00Z","record":{"type":"burn","data":{}}}`), &tx)
	assert.Error(t, err)
}

func TestTransactionClone(t *testing.T) {
	tx := createTestTransaction()
	tx.SetSignature("sig")
	c := tx.Clone()
	*c.Signature = "other"
	assert.Equal(t, "sig", *tx.Signature)
	assert.Equal(t, tx.CalculateHash(), c.CalculateHash())
}
