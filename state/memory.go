package state

import (
	"sort"

	"github.com/Luismorlan/ledger_in_go/model"
	"github.com/Luismorlan/ledger_in_go/utils"
)

// MemoryStore keeps accounts in a map.
type MemoryStore struct {
	accounts map[string]model.Account
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		accounts: make(map[string]model.Account),
	}
}

func (s *MemoryStore) UserIDs() ([]string, error) {
	ids := make([]string, 0, len(s.accounts))
	for id := range s.accounts {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (s *MemoryStore) GetAccount(id string) (model.Account, bool, error) {
	acc, ok := s.accounts[id]
	return acc, ok, nil
}

func (s *MemoryStore) UpdateAccount(id string, fn func(*model.Account)) error {
	acc, ok := s.accounts[id]
	if !ok {
		return model.ErrAccountNotFound
	}
	fn(&acc)
	s.accounts[id] = acc
	return nil
}

func (s *MemoryStore) CreateAccount(id string, kind model.AccountType) error {
	if _, ok := s.accounts[id]; ok {
		return model.ErrAccountExists
	}
	s.accounts[id] = model.NewAccount(kind)
	return nil
}

// Snapshot deep copies the whole map.
func (s *MemoryStore) Snapshot() (Snapshot, error) {
	accounts, err := utils.DeepCopyAccounts(s.accounts)
	if err != nil {
		return nil, err
	}
	return &memorySnapshot{store: s, accounts: accounts}, nil
}

type memorySnapshot struct {
	store    *MemoryStore
	accounts map[string]model.Account
}

func (m *memorySnapshot) Restore() error {
	if m.accounts == nil {
		return ErrSnapshotReleased
	}
	m.store.accounts = m.accounts
	m.accounts = nil
	return nil
}

func (m *memorySnapshot) Release() error {
	m.accounts = nil
	return nil
}
