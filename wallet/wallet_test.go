package wallet

import (
	"context"
	"net"
	"testing"

	"github.com/Luismorlan/ledger_in_go/config"
	"github.com/Luismorlan/ledger_in_go/full_node"
	"github.com/Luismorlan/ledger_in_go/model"
	"github.com/Luismorlan/ledger_in_go/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

// Return a wallet for account connected to a fresh in-memory full node.
func connectedWallet(t *testing.T, account string) (*Wallet, *full_node.FullNode) {
	sev, err := full_node.NewFullNodeServer(config.AppConfig{
		STORE: config.StoreMemory,
		GENESIS: []config.GenesisAccount{
			{ID: "alice", TOKENS: "1000"},
		},
	})
	require.NoError(t, err)

	lis := bufconn.Listen(1 << 20)
	grpcServer := grpc.NewServer()
	service.RegisterFullNodeServiceServer(grpcServer, sev)
	go grpcServer.Serve(lis)

	conn, err := grpc.DialContext(context.Background(), "bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.Dial()
		}),
		grpc.WithInsecure(),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		conn.Close()
		grpcServer.Stop()
		sev.FullNode().Close()
	})

	w := NewWallet(account, nil)
	w.FullNodeClient = service.NewFullNodeServiceClient(conn)
	return w, sev.FullNode()
}

func TestWalletNotConnected(t *testing.T) {
	w := NewWallet("alice", nil)
	_, err := w.GetBalance()
	assert.ErrorIs(t, err, ErrNotConnected)
	_, err = w.TransferMoney("bob", model.NewUint128(1))
	assert.ErrorIs(t, err, ErrNotConnected)
	_, _, err = w.SealBlock()
	assert.ErrorIs(t, err, ErrNotConnected)
	assert.NoError(t, w.Close())
}

func TestWalletRegisterTransferAndSeal(t *testing.T) {
	w, node := connectedWallet(t, "alice")

	balance, err := w.GetBalance()
	require.NoError(t, err)
	assert.Equal(t, "1000", balance.String())

	_, err = w.Register("bob")
	require.NoError(t, err)
	hash, err := w.TransferMoney("bob", model.NewUint128(250))
	require.NoError(t, err)
	assert.Len(t, hash, 64)
	assert.Len(t, node.PendingTransactions(), 2)

	block, height, err := w.SealBlock()
	require.NoError(t, err)
	assert.Equal(t, 2, height)
	assert.Equal(t, 2, block.TransactionCount())

	balance, err = w.GetBalance()
	require.NoError(t, err)
	assert.Equal(t, "750", balance.String())

	bob, ok, err := node.GetAccount("bob")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "250", bob.Tokens.String())
}

func TestWalletNonceIncrements(t *testing.T) {
	w, node := connectedWallet(t, "alice")

	_, err := w.TransferMoney("alice", model.NewUint128(1))
	require.NoError(t, err)
	_, err = w.TransferMoney("alice", model.NewUint128(1))
	require.NoError(t, err)

	pending := node.PendingTransactions()
	require.Len(t, pending, 2)
	assert.Equal(t, "0", pending[0].Nonce.String())
	assert.Equal(t, "1", pending[1].Nonce.String())
}

func TestWalletUnknownAccount(t *testing.T) {
	w, _ := connectedWallet(t, "mallory")
	_, err := w.GetBalance()
	assert.Equal(t, codes.NotFound, status.Code(err))
}
