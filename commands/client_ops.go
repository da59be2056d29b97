package commands

import (
	"errors"
	"net"
	"regexp"
	"strings"

	"github.com/Luismorlan/ledger_in_go/model"
)

const (
	// do nothing operation
	NOOP = iota
	// Initiate a token transfer from this wallet's account
	TRANSFER
	// Print the account this wallet acts for
	WHOAMI
	// Connect a full node with ip address and port
	CONNECT
	// Get my own balance
	GET_BALANCE
	// Ask the full node to create an account, paid for by this wallet's account
	REGISTER
	// Ask the full node to seal pending transactions
	SEAL_BLOCK
)

var portRegex = regexp.MustCompile(PORT_REGEX)

type ClientCommand struct {
	Op   Operation
	Args []string
}

func (c ClientCommand) IsValid() bool {
	switch c.Op {
	case TRANSFER:
		if len(c.Args) != 2 {
			return false
		}
		v, err := model.ParseUint128(c.Args[1])
		return err == nil && !v.IsZero()
	case WHOAMI, GET_BALANCE, SEAL_BLOCK:
		return len(c.Args) == 0
	case REGISTER:
		return len(c.Args) == 1
	case CONNECT:
		if len(c.Args) != 2 {
			return false
		}
		ip := net.ParseIP(c.Args[0])
		return ip != nil && ip.To4() != nil && portRegex.MatchString(c.Args[1])
	default:
		return false
	}
}

func CreateClientCommand(s string) (ClientCommand, error) {
	// split command by space.
	ss := strings.Fields(s)
	if len(ss) == 0 {
		return ClientCommand{}, errors.New("command is empty")
	}
	cmd := ClientCommand{}
	switch ss[0] {
	case "transfer":
		cmd.Op = TRANSFER
	case "whoami":
		cmd.Op = WHOAMI
	case "connect":
		cmd.Op = CONNECT
	case "get_balance":
		cmd.Op = GET_BALANCE
	case "register":
		cmd.Op = REGISTER
	case "seal":
		cmd.Op = SEAL_BLOCK
	default:
		cmd.Op = NOOP
	}
	cmd.Args = ss[1:]
	if !cmd.IsValid() {
		return ClientCommand{}, errors.New("invalid command")
	}
	return cmd, nil
}
