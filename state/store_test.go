package state

import (
	"testing"

	"github.com/Luismorlan/ledger_in_go/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStores(t *testing.T) map[string]Store {
	p, err := NewPebbleStore()
	require.NoError(t, err)
	t.Cleanup(func() { p.Close() })
	return map[string]Store{
		"memory": NewMemoryStore(),
		"pebble": p,
	}
}

func TestCreateAndGet(t *testing.T) {
	for name, s := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			_, ok, err := s.GetAccount("alice")
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, s.CreateAccount("alice", model.User))
			acc, ok, err := s.GetAccount("alice")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, model.User, acc.Kind)
			assert.True(t, acc.Tokens.IsZero())

			assert.ErrorIs(t, s.CreateAccount("alice", model.User), model.ErrAccountExists)
		})
	}
}

func TestUpdateAccount(t *testing.T) {
	for name, s := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.CreateAccount("alice", model.User))
			require.NoError(t, s.UpdateAccount("alice", func(acc *model.Account) {
				acc.Tokens = model.NewUint128(42)
			}))
			acc, _, err := s.GetAccount("alice")
			require.NoError(t, err)
			assert.Equal(t, "42", acc.Tokens.String())

			err = s.UpdateAccount("bob", func(acc *model.Account) {})
			assert.ErrorIs(t, err, model.ErrAccountNotFound)
		})
	}
}

func TestUserIDsSorted(t *testing.T) {
	for name, s := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			ids, err := s.UserIDs()
			require.NoError(t, err)
			assert.Empty(t, ids)

			for _, id := range []string{"carol", "alice", "bob"} {
				require.NoError(t, s.CreateAccount(id, model.User))
			}
			ids, err = s.UserIDs()
			require.NoError(t, err)
			assert.Equal(t, []string{"alice", "bob", "carol"}, ids)
		})
	}
}

func TestSnapshotRestore(t *testing.T) {
	for name, s := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.CreateAccount("alice", model.User))
			require.NoError(t, s.UpdateAccount("alice", func(acc *model.Account) {
				acc.Tokens = model.NewUint128(10)
			}))
			before, err := Accounts(s)
			require.NoError(t, err)

			snap, err := s.Snapshot()
			require.NoError(t, err)

			require.NoError(t, s.UpdateAccount("alice", func(acc *model.Account) {
				acc.Tokens = model.NewUint128(0)
			}))
			require.NoError(t, s.CreateAccount("bob", model.User))

			require.NoError(t, snap.Restore())
			after, err := Accounts(s)
			require.NoError(t, err)
			assert.Equal(t, before, after)

			assert.ErrorIs(t, snap.Restore(), ErrSnapshotReleased)
		})
	}
}

func TestSnapshotRelease(t *testing.T) {
	for name, s := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			snap, err := s.Snapshot()
			require.NoError(t, err)
			require.NoError(t, s.CreateAccount("alice", model.User))
			require.NoError(t, snap.Release())

			_, ok, err := s.GetAccount("alice")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.ErrorIs(t, snap.Restore(), ErrSnapshotReleased)
		})
	}
}

func TestRestoredStoreStaysIndependent(t *testing.T) {
	s := NewMemoryStore()
	require.NoError(t, s.CreateAccount("alice", model.User))
	snap, err := s.Snapshot()
	require.NoError(t, err)
	require.NoError(t, snap.Restore())

	// Mutating after restore must not leak into a fresh snapshot.
	snap2, err := s.Snapshot()
	require.NoError(t, err)
	require.NoError(t, s.CreateAccount("bob", model.User))
	require.NoError(t, snap2.Restore())
	ids, _ := s.UserIDs()
	assert.Equal(t, []string{"alice"}, ids)
}
