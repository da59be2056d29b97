package model

type AccountType string

const (
	// The only account kind so far.
	User AccountType = "user"
)

type Account struct {
	// What kind of account this is.
	Kind AccountType `json:"kind"`
	// Token balance.
	Tokens Uint128 `json:"tokens"`
}

// NewAccount creates an account of the given kind with a zero balance.
func NewAccount(kind AccountType) Account {
	return Account{
		Kind:   kind,
		Tokens: NewUint128(0),
	}
}
