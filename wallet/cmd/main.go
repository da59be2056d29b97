package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/Luismorlan/ledger_in_go/commands"
	"github.com/Luismorlan/ledger_in_go/layout"
	"github.com/Luismorlan/ledger_in_go/model"
	"github.com/Luismorlan/ledger_in_go/wallet"
	"github.com/jroimartin/gocui"
)

var (
	account   *string
	debugMode *bool
)

func init() {
	account = flag.String("account", "alice", "the account this wallet sends transactions from")
	debugMode = flag.Bool("debug_mode", false, "Using debug mode will disable fancy GUI.")
}

// Return a gui handle if not in debug mode.
func ListenOnInput(cmd chan commands.ClientCommand, debugMode bool) *gocui.Gui {
	if debugMode {
		go ParseCommand(cmd)
		return nil
	}
	g, err := layout.CreateGui(cmd, "wallet/cmd/usage.txt")
	if err != nil {
		log.Fatalln(err)
	}
	go func() {
		if err := g.MainLoop(); err != nil {
			g.Close()
			if err == gocui.ErrQuit {
				os.Exit(0)
			}
			os.Exit(1)
		}
	}()
	return g
}

func main() {
	flag.Parse()

	cmd := make(chan commands.ClientCommand)
	g := ListenOnInput(cmd, *debugMode)
	w := wallet.NewWallet(*account, g)
	defer w.Close()
	w.Log("Wallet account: " + w.Account)

	HandleCommand(cmd, w)
}

// Parse command from stdio.
func ParseCommand(cmd chan commands.ClientCommand) {
	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Print("> ")
		text, err := reader.ReadString('\n')
		if err != nil {
			close(cmd)
			return
		}
		// convert CRLF to LF
		text = strings.TrimRight(text, "\r\n")
		c, err := commands.CreateClientCommand(text)
		if err != nil {
			log.Println(err)
			continue
		}
		cmd <- c
	}
}

func HandleCommand(cmd chan commands.ClientCommand, w *wallet.Wallet) {
	for c := range cmd {
		switch c.Op {
		case commands.TRANSFER:
			receiver := c.Args[0]
			amount, _ := model.ParseUint128(c.Args[1])
			hash, err := w.TransferMoney(receiver, amount)
			if err != nil {
				w.Log("fail to transfer tokens: " + err.Error())
				continue
			}
			w.Log(fmt.Sprintf("sent transaction %s, receiver: %s, amount: %s", hash, receiver, amount))
		case commands.REGISTER:
			hash, err := w.Register(c.Args[0])
			if err != nil {
				w.Log("fail to register account: " + err.Error())
				continue
			}
			w.Log(fmt.Sprintf("sent transaction %s creating %s", hash, c.Args[0]))
		case commands.WHOAMI:
			w.Log("account: " + w.Account)
		case commands.CONNECT:
			ipAddr := c.Args[0]
			port := c.Args[1]
			if err := w.SetFullNodeConnection(ipAddr, port); err != nil {
				w.Log("failed to connect to full node endpoint " + ipAddr + ":" + port)
				continue
			}
			w.Log("connected full node endpoint " + ipAddr + ":" + port)
		case commands.GET_BALANCE:
			v, err := w.GetBalance()
			if err != nil {
				w.Log("fail to get balance: " + err.Error())
				continue
			}
			w.Log(fmt.Sprintf("your balance is: %s", v))
		case commands.SEAL_BLOCK:
			b, height, err := w.SealBlock()
			if err != nil {
				w.Log("fail to seal block: " + err.Error())
				continue
			}
			w.Log(fmt.Sprintf("sealed %s at height %d", b, height))
		default:
			w.Log(fmt.Sprintf("Unimplemented command: %d", c.Op))
		}
	}
}
