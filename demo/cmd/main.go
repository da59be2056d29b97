package main

import (
	"log/slog"
	"os"
	"sort"

	"github.com/Luismorlan/ledger_in_go/demo"
	"github.com/pterm/pterm"
)

func audit(title string, err error) {
	if err != nil {
		pterm.Error.Printfln("%s: %v", title, err)
		return
	}
	pterm.Success.Printfln("%s: chain is valid", title)
}

func main() {
	logger := slog.New(pterm.NewSlogHandler(&pterm.DefaultLogger))

	pterm.DefaultHeader.Println("Ledger demo")
	res, err := demo.Run()
	if err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}

	pterm.DefaultSection.Println("Chain")
	for _, b := range res.Chain.Blocks() {
		pterm.Info.Println(b.String())
	}

	ids := make([]string, 0, len(res.Balances))
	for id := range res.Balances {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	table := pterm.TableData{{"Account", "Kind", "Tokens"}}
	for _, id := range ids {
		acc := res.Balances[id]
		table = append(table, []string{id, string(acc.Kind), acc.Tokens.String()})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(table).Render(); err != nil {
		logger.Warn(err.Error())
	}

	pterm.DefaultSection.Println("Audits")
	audit("untouched chain", res.Valid)
	audit("transfer amount rewritten", res.Tampered)
	audit("genesis mint rewritten and rehashed", res.Rehashed)
}
