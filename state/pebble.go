package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/Luismorlan/ledger_in_go/model"
	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"
)

// Key prefix for accounts.
const PrefixAccounts = "acc:"

// PebbleStore keeps accounts as JSON values in a pebble database backed by an
// in-memory filesystem.
type PebbleStore struct {
	db *pebble.DB
}

func NewPebbleStore() (*PebbleStore, error) {
	db, err := pebble.Open("world_state", &pebble.Options{FS: vfs.NewMem()})
	if err != nil {
		return nil, fmt.Errorf("failed to open world state: %w", err)
	}
	return &PebbleStore{db: db}, nil
}

func (s *PebbleStore) Close() error {
	return s.db.Close()
}

func accountKey(id string) []byte {
	return []byte(PrefixAccounts + id)
}

// prefixUpperBound returns the upper bound for prefix iteration
func prefixUpperBound(prefix []byte) []byte {
	if len(prefix) == 0 {
		return nil
	}
	upper := make([]byte, len(prefix))
	copy(upper, prefix)
	for i := len(upper) - 1; i >= 0; i-- {
		if upper[i] < 0xff {
			upper[i]++
			return upper[:i+1]
		}
	}
	return nil
}

func accountBounds() *pebble.IterOptions {
	lower := []byte(PrefixAccounts)
	return &pebble.IterOptions{
		LowerBound: lower,
		UpperBound: prefixUpperBound(lower),
	}
}

func (s *PebbleStore) UserIDs() ([]string, error) {
	iter, err := s.db.NewIter(accountBounds())
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	ids := []string{}
	for iter.First(); iter.Valid(); iter.Next() {
		ids = append(ids, strings.TrimPrefix(string(iter.Key()), PrefixAccounts))
	}
	return ids, iter.Error()
}

func (s *PebbleStore) GetAccount(id string) (model.Account, bool, error) {
	value, closer, err := s.db.Get(accountKey(id))
	if errors.Is(err, pebble.ErrNotFound) {
		return model.Account{}, false, nil
	}
	if err != nil {
		return model.Account{}, false, err
	}
	defer closer.Close()

	var acc model.Account
	if err := json.Unmarshal(value, &acc); err != nil {
		return model.Account{}, false, fmt.Errorf("corrupt account %q: %w", id, err)
	}
	return acc, true, nil
}

func (s *PebbleStore) put(id string, acc model.Account) error {
	value, err := json.Marshal(acc)
	if err != nil {
		return err
	}
	return s.db.Set(accountKey(id), value, pebble.Sync)
}

func (s *PebbleStore) UpdateAccount(id string, fn func(*model.Account)) error {
	acc, ok, err := s.GetAccount(id)
	if err != nil {
		return err
	}
	if !ok {
		return model.ErrAccountNotFound
	}
	fn(&acc)
	return s.put(id, acc)
}

func (s *PebbleStore) CreateAccount(id string, kind model.AccountType) error {
	_, ok, err := s.GetAccount(id)
	if err != nil {
		return err
	}
	if ok {
		return model.ErrAccountExists
	}
	return s.put(id, model.NewAccount(kind))
}

// Snapshot pins the current account range with a pebble snapshot.
func (s *PebbleStore) Snapshot() (Snapshot, error) {
	return &pebbleSnapshot{store: s, snap: s.db.NewSnapshot()}, nil
}

type pebbleSnapshot struct {
	store *PebbleStore
	snap  *pebble.Snapshot
}

// Restore wipes the account range and rewrites it from the snapshot in a
// single batch.
func (p *pebbleSnapshot) Restore() error {
	if p.snap == nil {
		return ErrSnapshotReleased
	}
	opts := accountBounds()
	batch := p.store.db.NewBatch()
	defer batch.Close()

	if err := batch.DeleteRange(opts.LowerBound, opts.UpperBound, nil); err != nil {
		return err
	}
	iter, err := p.snap.NewIter(opts)
	if err != nil {
		return err
	}
	for iter.First(); iter.Valid(); iter.Next() {
		if err := batch.Set(iter.Key(), iter.Value(), nil); err != nil {
			iter.Close()
			return err
		}
	}
	if err := iter.Close(); err != nil {
		return err
	}
	if err := batch.Commit(pebble.Sync); err != nil {
		return err
	}
	return p.Release()
}

func (p *pebbleSnapshot) Release() error {
	if p.snap == nil {
		return nil
	}
	err := p.snap.Close()
	p.snap = nil
	return err
}
