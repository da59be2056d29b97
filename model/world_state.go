package model

// WorldState is the capability a transaction needs to run: look accounts up,
// create them and change them in place. Implementations live in package state.
type WorldState interface {
	// All account ids in ascending order.
	UserIDs() ([]string, error)
	// Return the account and whether it exists.
	GetAccount(id string) (Account, bool, error)
	// Apply fn to the stored account. Returns ErrAccountNotFound for unknown ids.
	UpdateAccount(id string, fn func(*Account)) error
	// Insert a fresh zero balance account. Returns ErrAccountExists for taken ids.
	CreateAccount(id string, kind AccountType) error
}
