package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCommand(t *testing.T) {
	tests := []struct {
		in   string
		op   Operation
		args []string
	}{
		{"show 3", SHOW, []string{"3"}},
		{"balance alice", BALANCE, []string{"alice"}},
		{"accounts", ACCOUNTS, []string{}},
		{"create_account alice carol", CREATE_ACCOUNT, []string{"alice", "carol"}},
		{"transfer alice bob 10", TRANSFER_TOKENS, []string{"alice", "bob", "10"}},
		{"  seal  ", SEAL, []string{}},
		{"verify", VERIFY, []string{}},
		{"pending", PENDING, []string{}},
	}
	for _, tt := range tests {
		c, err := CreateCommand(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.op, c.Op, tt.in)
		assert.Equal(t, tt.args, c.Args, tt.in)
	}
}

func TestCreateCommandInvalid(t *testing.T) {
	for _, in := range []string{
		"",
		"mine",
		"show",
		"show -1",
		"show deep",
		"balance",
		"accounts all",
		"transfer alice bob",
		"transfer alice bob ten",
		"transfer alice bob -3",
		"create_account carol",
	} {
		_, err := CreateCommand(in)
		assert.Error(t, err, in)
	}
}

func TestDefaultCommand(t *testing.T) {
	assert.True(t, NewDefaultCommand().IsDefault())
	assert.False(t, Command{Op: SEAL}.IsDefault())
}
