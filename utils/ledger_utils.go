package utils

import (
	"github.com/Luismorlan/ledger_in_go/model"
	"github.com/jinzhu/copier"
)

// Return a deep copy of an account map, used to snapshot the world state
// before a block runs.
func DeepCopyAccounts(src map[string]model.Account) (map[string]model.Account, error) {
	dst := make(map[string]model.Account, len(src))
	if err := copier.CopyWithOption(&dst, &src, copier.Option{DeepCopy: true}); err != nil {
		return nil, err
	}
	return dst, nil
}
