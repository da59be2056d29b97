package full_node

import (
	"context"
	"errors"
	"log"

	"github.com/Luismorlan/ledger_in_go/config"
	"github.com/Luismorlan/ledger_in_go/service"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// FullNodeServer exposes a full node over gRPC.
type FullNodeServer struct {
	service.UnimplementedFullNodeServiceServer

	fullNode *FullNode
}

// Create a new full node server around a fresh full node.
func NewFullNodeServer(c config.AppConfig) (*FullNodeServer, error) {
	f, err := NewFullNode(c)
	if err != nil {
		return nil, err
	}
	return &FullNodeServer{fullNode: f}, nil
}

func (sev *FullNodeServer) FullNode() *FullNode {
	return sev.fullNode
}

// Set transaction adds the transaction to the pending pool.
func (sev *FullNodeServer) SetTransaction(ctx context.Context, req *service.SetTransactionRequest) (*service.SetTransactionResponse, error) {
	tx := req.GetTx()
	if tx == nil || tx.Record == nil {
		return nil, status.Error(codes.InvalidArgument, "input transaction is nil")
	}
	err := sev.fullNode.AddTransactionToPool(tx)
	if errors.Is(err, ErrDuplicateTransaction) {
		return nil, status.Error(codes.AlreadyExists, err.Error())
	}
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return &service.SetTransactionResponse{Hash: tx.CalculateHash().String()}, nil
}

// Handle an incoming block built elsewhere.
func (sev *FullNodeServer) SetBlock(ctx context.Context, req *service.SetBlockRequest) (*service.SetBlockResponse, error) {
	block := req.GetBlock()
	if block == nil {
		return nil, status.Error(codes.InvalidArgument, "input block is nil")
	}
	for i, tx := range block.Transactions {
		if tx == nil || tx.Record == nil {
			return nil, status.Errorf(codes.InvalidArgument, "transaction #%d of the input block is empty", i+1)
		}
	}
	log.Println("Received a new block: ", block.Hash)
	if err := sev.fullNode.HandleNewBlock(block); err != nil {
		return nil, status.Error(codes.FailedPrecondition, err.Error())
	}
	return &service.SetBlockResponse{Height: sev.fullNode.GetHeight()}, nil
}

func (sev *FullNodeServer) SealBlock(ctx context.Context, req *service.SealBlockRequest) (*service.SealBlockResponse, error) {
	block, err := sev.fullNode.SealBlock()
	if err != nil {
		return nil, status.Error(codes.FailedPrecondition, err.Error())
	}
	return &service.SealBlockResponse{Block: block, Height: sev.fullNode.GetHeight()}, nil
}

func (sev *FullNodeServer) GetBalance(ctx context.Context, req *service.GetBalanceRequest) (*service.GetBalanceResponse, error) {
	acc, ok, err := sev.fullNode.GetAccount(req.Account)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	if !ok {
		return nil, status.Errorf(codes.NotFound, "account %q does not exist", req.Account)
	}
	return &service.GetBalanceResponse{
		Account: req.Account,
		Kind:    string(acc.Kind),
		Tokens:  acc.Tokens,
	}, nil
}

func (sev *FullNodeServer) GetChain(ctx context.Context, req *service.GetChainRequest) (*service.GetChainResponse, error) {
	if req.Depth < 0 {
		return nil, status.Error(codes.InvalidArgument, "depth must not be negative")
	}
	blocks := sev.fullNode.GetBlocks()
	height := len(blocks)
	if req.Depth > 0 && req.Depth < len(blocks) {
		blocks = blocks[len(blocks)-req.Depth:]
	}
	return &service.GetChainResponse{Blocks: blocks, Height: height}, nil
}

func (sev *FullNodeServer) CheckValidity(ctx context.Context, req *service.CheckValidityRequest) (*service.CheckValidityResponse, error) {
	if err := sev.fullNode.CheckValidity(); err != nil {
		return &service.CheckValidityResponse{Valid: false, Error: err.Error()}, nil
	}
	return &service.CheckValidityResponse{Valid: true}, nil
}
