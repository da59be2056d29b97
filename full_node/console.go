package full_node

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/Luismorlan/ledger_in_go/commands"
	"github.com/Luismorlan/ledger_in_go/model"
	"github.com/Luismorlan/ledger_in_go/visualize"
)

// RunCommand executes a console command and returns what to print.
func (f *FullNode) RunCommand(c commands.Command) (string, error) {
	switch c.Op {
	case commands.SHOW:
		d, err := strconv.Atoi(c.Args[0])
		if err != nil {
			return "", fmt.Errorf("%s is not a valid number for depth", c.Args[0])
		}
		path, err := visualize.RenderToFile(f.GetBlocks(), d, f.uuid)
		if err != nil {
			return "", err
		}
		return "chain rendered to " + path, nil
	case commands.BALANCE:
		acc, ok, err := f.GetAccount(c.Args[0])
		if err != nil {
			return "", err
		}
		if !ok {
			return "", fmt.Errorf("account %s does not exist", c.Args[0])
		}
		return fmt.Sprintf("%s: %s tokens", c.Args[0], acc.Tokens), nil
	case commands.ACCOUNTS:
		accounts, err := f.GetAccounts()
		if err != nil {
			return "", err
		}
		ids := make([]string, 0, len(accounts))
		for id := range accounts {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		lines := make([]string, 0, len(ids))
		for _, id := range ids {
			lines = append(lines, fmt.Sprintf("%s (%s): %s", id, accounts[id].Kind, accounts[id].Tokens))
		}
		if len(lines) == 0 {
			return "no accounts", nil
		}
		return strings.Join(lines, "\n"), nil
	case commands.CREATE_ACCOUNT:
		tx := model.NewTransaction(c.Args[0], model.CreateUserAccount{ID: c.Args[1]}, model.NewUint128(0))
		return f.queue(tx)
	case commands.TRANSFER_TOKENS:
		amount, err := model.ParseUint128(c.Args[2])
		if err != nil {
			return "", err
		}
		tx := model.NewTransaction(c.Args[0], model.TransferTokens{To: c.Args[1], Amount: amount}, model.NewUint128(0))
		return f.queue(tx)
	case commands.SEAL:
		block, err := f.SealBlock()
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("sealed %s", block), nil
	case commands.VERIFY:
		if err := f.CheckValidity(); err != nil {
			return "", err
		}
		return fmt.Sprintf("chain of %d blocks is valid", f.GetHeight()), nil
	case commands.PENDING:
		txs := f.PendingTransactions()
		if len(txs) == 0 {
			return "no pending transactions", nil
		}
		lines := make([]string, len(txs))
		for i, tx := range txs {
			lines[i] = tx.String()
		}
		return strings.Join(lines, "\n"), nil
	default:
		return "", fmt.Errorf("unrecognized command: %v", c)
	}
}

func (f *FullNode) queue(tx *model.Transaction) (string, error) {
	if err := f.AddTransactionToPool(tx); err != nil {
		return "", err
	}
	return "queued " + tx.CalculateHash().String(), nil
}
