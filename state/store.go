// Package state holds the world state backends: a plain map and an in-memory
// pebble database. Both can be snapshotted and rolled back as a whole.
package state

import (
	"errors"

	"github.com/Luismorlan/ledger_in_go/model"
)

// ErrSnapshotReleased is returned when a snapshot is used after Restore or Release.
var ErrSnapshotReleased = errors.New("snapshot already released")

// Store is a world state that can be rolled back.
type Store interface {
	model.WorldState
	// Capture the full account set.
	Snapshot() (Snapshot, error)
}

// Snapshot is a point in time copy of a Store. Restore puts it back and
// consumes it; Release drops it without restoring.
type Snapshot interface {
	Restore() error
	Release() error
}

// Accounts reads every account of a world state into a map.
func Accounts(ws model.WorldState) (map[string]model.Account, error) {
	ids, err := ws.UserIDs()
	if err != nil {
		return nil, err
	}
	out := make(map[string]model.Account, len(ids))
	for _, id := range ids {
		acc, ok, err := ws.GetAccount(id)
		if err != nil {
			return nil, err
		}
		if ok {
			out[id] = acc
		}
	}
	return out, nil
}
