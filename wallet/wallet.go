package wallet

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Luismorlan/ledger_in_go/layout"
	"github.com/Luismorlan/ledger_in_go/model"
	"github.com/Luismorlan/ledger_in_go/service"
	"github.com/jroimartin/gocui"
	"google.golang.org/grpc"
)

const rpcTimeout = 10 * time.Second

var ErrNotConnected = errors.New("wallet is not connected to a full node")

// Wallet builds transactions on behalf of one account and sends them to a
// full node.
type Wallet struct {
	Account        string
	FullNodeClient service.FullNodeServiceClient

	conn *grpc.ClientConn
	gui  *gocui.Gui
	// Next nonce to stamp on an outgoing transaction.
	nonce model.Uint128
	m     sync.Mutex
}

// Create a wallet acting for account. g may be nil, logs then go to the
// standard logger.
func NewWallet(account string, g *gocui.Gui) *Wallet {
	return &Wallet{
		Account: account,
		gui:     g,
		nonce:   model.NewUint128(0),
	}
}

func (w *Wallet) Log(msg string) {
	layout.Log(w.gui, msg)
}

func (w *Wallet) SetFullNodeConnection(ipAddr string, port string) error {
	serverAddr := ipAddr + ":" + port
	conn, err := grpc.Dial(serverAddr, grpc.WithInsecure())
	if err != nil {
		return err
	}
	w.m.Lock()
	defer w.m.Unlock()
	if w.conn != nil {
		w.conn.Close()
	}
	w.conn = conn
	w.FullNodeClient = service.NewFullNodeServiceClient(conn)
	return nil
}

func (w *Wallet) Close() error {
	w.m.Lock()
	defer w.m.Unlock()
	if w.conn == nil {
		return nil
	}
	err := w.conn.Close()
	w.conn = nil
	w.FullNodeClient = nil
	return err
}

func (w *Wallet) client() (service.FullNodeServiceClient, error) {
	w.m.Lock()
	defer w.m.Unlock()
	if w.FullNodeClient == nil {
		return nil, ErrNotConnected
	}
	return w.FullNodeClient, nil
}

func (w *Wallet) GetBalance() (model.Uint128, error) {
	c, err := w.client()
	if err != nil {
		return model.Uint128{}, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), rpcTimeout)
	defer cancel()
	res, err := c.GetBalance(ctx, &service.GetBalanceRequest{Account: w.Account})
	if err != nil {
		return model.Uint128{}, err
	}
	return res.Tokens, nil
}

// Register queues the creation of account id, sent from this wallet's account.
func (w *Wallet) Register(id string) (string, error) {
	return w.SendTransaction(w.newTransaction(model.CreateUserAccount{ID: id}))
}

func (w *Wallet) TransferMoney(receiver string, amount model.Uint128) (string, error) {
	return w.SendTransaction(w.newTransaction(model.TransferTokens{To: receiver, Amount: amount}))
}

// SealBlock asks the full node to put its pending transactions in a block,
// returning the new chain height.
func (w *Wallet) SealBlock() (*model.Block, int, error) {
	c, err := w.client()
	if err != nil {
		return nil, 0, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), rpcTimeout)
	defer cancel()
	res, err := c.SealBlock(ctx, &service.SealBlockRequest{})
	if err != nil {
		return nil, 0, err
	}
	return res.Block, res.Height, nil
}

// SendTransaction hands tx to the full node's pool and returns its hex hash.
func (w *Wallet) SendTransaction(tx *model.Transaction) (string, error) {
	c, err := w.client()
	if err != nil {
		return "", err
	}
	ctx, cancel := context.WithTimeout(context.Background(), rpcTimeout)
	defer cancel()
	res, err := c.SetTransaction(ctx, &service.SetTransactionRequest{Tx: tx})
	if err != nil {
		return "", err
	}
	return res.Hash, nil
}

func (w *Wallet) newTransaction(data model.TransactionData) *model.Transaction {
	w.m.Lock()
	defer w.m.Unlock()
	tx := model.NewTransaction(w.Account, data, w.nonce)
	w.nonce, _ = w.nonce.CheckedAdd(model.NewUint128(1))
	return tx
}
