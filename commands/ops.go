package commands

import (
	"errors"
	"strconv"
	"strings"

	"github.com/Luismorlan/ledger_in_go/model"
)

type Operation int

const PORT_REGEX = "^[0-9]{4,5}$"

const (
	DEFAULT = iota
	// Show the blockchain as a graph.
	SHOW
	// Print the balance of one account.
	BALANCE
	// List every account.
	ACCOUNTS
	// Queue an account creation, sent by an existing account.
	CREATE_ACCOUNT
	// Queue a token transfer.
	TRANSFER_TOKENS
	// Seal pending transactions into a block.
	SEAL
	// Audit the whole chain.
	VERIFY
	// List pending transactions.
	PENDING
)

// A command contains a operation and many arguments.
type Command struct {
	Op   Operation
	Args []string
}

func (c Command) IsValid() bool {
	switch c.Op {
	case ACCOUNTS, SEAL, VERIFY, PENDING:
		return len(c.Args) == 0
	case SHOW:
		if len(c.Args) != 1 {
			return false
		}
		// depth must be a number.
		d, err := strconv.Atoi(c.Args[0])
		return err == nil && d >= 0
	case BALANCE:
		return len(c.Args) == 1
	case CREATE_ACCOUNT:
		// create_account <sender> <new id>
		return len(c.Args) == 2
	case TRANSFER_TOKENS:
		if len(c.Args) != 3 {
			return false
		}
		_, err := model.ParseUint128(c.Args[2])
		return err == nil
	default:
		return false
	}
}

// From string, create a command.
func CreateCommand(s string) (Command, error) {
	// split command by space.
	ss := strings.Fields(s)
	if len(ss) == 0 {
		return Command{}, errors.New("command is empty")
	}
	cmd := Command{}
	switch ss[0] {
	case "show":
		cmd.Op = SHOW
	case "balance":
		cmd.Op = BALANCE
	case "accounts":
		cmd.Op = ACCOUNTS
	case "create_account":
		cmd.Op = CREATE_ACCOUNT
	case "transfer":
		cmd.Op = TRANSFER_TOKENS
	case "seal":
		cmd.Op = SEAL
	case "verify":
		cmd.Op = VERIFY
	case "pending":
		cmd.Op = PENDING
	}
	cmd.Args = ss[1:]
	if !cmd.IsValid() {
		return Command{}, errors.New("invalid command")
	}
	return cmd, nil
}

// Create a brand new command with default operation.
func NewDefaultCommand() Command {
	return Command{
		Op: DEFAULT,
	}
}

func (c Command) IsDefault() bool {
	return c.Op == DEFAULT
}
