package visualize

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/Luismorlan/ledger_in_go/model"
	"github.com/Luismorlan/ledger_in_go/utils"
	"github.com/bradleyjkemp/memviz"
)

// We re-define the model here because the ledger types carry pointers and
// hashes we don't want to render in full.
type transaction struct {
	hash   string
	from   string
	nonce  string
	record string
}

type block struct {
	hash     string
	prevHash string
	nonce    string
	txs      []transaction
	next     *block
}

func txToTx(tx *model.Transaction) transaction {
	h := tx.CalculateHash()
	return transaction{
		hash:   utils.ShortenString(h.String()),
		from:   tx.From,
		nonce:  tx.Nonce.String(),
		record: fmt.Sprint(tx.Record),
	}
}

func blockToBlock(b *model.Block) *block {
	n := &block{
		hash:     utils.ShortenString(utils.HashToHex(b.Hash)),
		prevHash: utils.ShortenString(utils.HashToHex(b.PrevHash)),
		nonce:    b.Nonce.String(),
	}
	for _, tx := range b.Transactions {
		n.txs = append(n.txs, txToTx(tx))
	}
	return n
}

// Link the newest d blocks into a list, oldest first. d <= 0 means all.
func constructData(blocks []*model.Block, d int) *block {
	if d > 0 && d < len(blocks) {
		blocks = blocks[len(blocks)-d:]
	}
	var head, tail *block
	for _, b := range blocks {
		n := blockToBlock(b)
		if head == nil {
			head = n
		} else {
			tail.next = n
		}
		tail = n
	}
	return head
}

// Entry to this package, where:
// w: where the graphviz dot output goes.
// blocks: the chain, oldest first.
// d: depth to render.
func Render(w io.Writer, blocks []*model.Block, d int) error {
	chain := constructData(blocks, d)
	if chain == nil {
		_, err := io.WriteString(w, "digraph structs {\n}\n")
		return err
	}
	memviz.Map(w, chain)
	return nil
}

// RenderToFile writes the dot graph next to a png rendering of it. The png is
// only produced when graphviz is installed.
func RenderToFile(blocks []*model.Block, d int, id string) (string, error) {
	buf := &bytes.Buffer{}
	if err := Render(buf, blocks, d); err != nil {
		return "", err
	}

	fileName := os.TempDir() + "/chaindata-" + id
	outputName := os.TempDir() + "/rendered-chain-" + id + ".png"
	if err := os.WriteFile(fileName, buf.Bytes(), 0644); err != nil {
		return "", err
	}

	cmd := exec.Command("dot", "-Tpng", fileName, "-o", outputName)
	if err := cmd.Run(); err != nil {
		return fileName, nil
	}
	return outputName, nil
}
