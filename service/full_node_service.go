package service

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const serviceName = "ledger.FullNodeService"

// FullNodeServiceClient is the client API for FullNodeService.
type FullNodeServiceClient interface {
	// Add a transaction to the pending pool.
	SetTransaction(ctx context.Context, in *SetTransactionRequest, opts ...grpc.CallOption) (*SetTransactionResponse, error)
	// Append a fully built block.
	SetBlock(ctx context.Context, in *SetBlockRequest, opts ...grpc.CallOption) (*SetBlockResponse, error)
	// Seal every pending transaction into a new block.
	SealBlock(ctx context.Context, in *SealBlockRequest, opts ...grpc.CallOption) (*SealBlockResponse, error)
	GetBalance(ctx context.Context, in *GetBalanceRequest, opts ...grpc.CallOption) (*GetBalanceResponse, error)
	GetChain(ctx context.Context, in *GetChainRequest, opts ...grpc.CallOption) (*GetChainResponse, error)
	CheckValidity(ctx context.Context, in *CheckValidityRequest, opts ...grpc.CallOption) (*CheckValidityResponse, error)
}

type fullNodeServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewFullNodeServiceClient(cc grpc.ClientConnInterface) FullNodeServiceClient {
	return &fullNodeServiceClient{cc}
}

func (c *fullNodeServiceClient) invoke(ctx context.Context, method string, in, out interface{}, opts []grpc.CallOption) error {
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	return c.cc.Invoke(ctx, "/"+serviceName+"/"+method, in, out, opts...)
}

func (c *fullNodeServiceClient) SetTransaction(ctx context.Context, in *SetTransactionRequest, opts ...grpc.CallOption) (*SetTransactionResponse, error) {
	out := new(SetTransactionResponse)
	if err := c.invoke(ctx, "SetTransaction", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *fullNodeServiceClient) SetBlock(ctx context.Context, in *SetBlockRequest, opts ...grpc.CallOption) (*SetBlockResponse, error) {
	out := new(SetBlockResponse)
	if err := c.invoke(ctx, "SetBlock", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *fullNodeServiceClient) SealBlock(ctx context.Context, in *SealBlockRequest, opts ...grpc.CallOption) (*SealBlockResponse, error) {
	out := new(SealBlockResponse)
	if err := c.invoke(ctx, "SealBlock", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *fullNodeServiceClient) GetBalance(ctx context.Context, in *GetBalanceRequest, opts ...grpc.CallOption) (*GetBalanceResponse, error) {
	out := new(GetBalanceResponse)
	if err := c.invoke(ctx, "GetBalance", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *fullNodeServiceClient) GetChain(ctx context.Context, in *GetChainRequest, opts ...grpc.CallOption) (*GetChainResponse, error) {
	out := new(GetChainResponse)
	if err := c.invoke(ctx, "GetChain", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *fullNodeServiceClient) CheckValidity(ctx context.Context, in *CheckValidityRequest, opts ...grpc.CallOption) (*CheckValidityResponse, error) {
	out := new(CheckValidityResponse)
	if err := c.invoke(ctx, "CheckValidity", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

// FullNodeServiceServer is the server API for FullNodeService.
type FullNodeServiceServer interface {
	SetTransaction(context.Context, *SetTransactionRequest) (*SetTransactionResponse, error)
	SetBlock(context.Context, *SetBlockRequest) (*SetBlockResponse, error)
	SealBlock(context.Context, *SealBlockRequest) (*SealBlockResponse, error)
	GetBalance(context.Context, *GetBalanceRequest) (*GetBalanceResponse, error)
	GetChain(context.Context, *GetChainRequest) (*GetChainResponse, error)
	CheckValidity(context.Context, *CheckValidityRequest) (*CheckValidityResponse, error)
}

// UnimplementedFullNodeServiceServer can be embedded to have forward compatible implementations.
type UnimplementedFullNodeServiceServer struct{}

func (UnimplementedFullNodeServiceServer) SetTransaction(context.Context, *SetTransactionRequest) (*SetTransactionResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method SetTransaction not implemented")
}
func (UnimplementedFullNodeServiceServer) SetBlock(context.Context, *SetBlockRequest) (*SetBlockResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method SetBlock not implemented")
}
func (UnimplementedFullNodeServiceServer) SealBlock(context.Context, *SealBlockRequest) (*SealBlockResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method SealBlock not implemented")
}
func (UnimplementedFullNodeServiceServer) GetBalance(context.Context, *GetBalanceRequest) (*GetBalanceResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetBalance not implemented")
}
func (UnimplementedFullNodeServiceServer) GetChain(context.Context, *GetChainRequest) (*GetChainResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetChain not implemented")
}
func (UnimplementedFullNodeServiceServer) CheckValidity(context.Context, *CheckValidityRequest) (*CheckValidityResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method CheckValidity not implemented")
}

func RegisterFullNodeServiceServer(s grpc.ServiceRegistrar, srv FullNodeServiceServer) {
	s.RegisterService(&FullNodeService_ServiceDesc, srv)
}

// unaryHandler builds the method handler shared by every unary method.
func unaryHandler[Req any, Resp any](method string, call func(FullNodeServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(FullNodeServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: "/" + serviceName + "/" + method,
			}
			handler := func(ctx context.Context, req interface{}) (interface{}, error) {
				return call(srv.(FullNodeServiceServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// FullNodeService_ServiceDesc is the grpc.ServiceDesc for FullNodeService.
var FullNodeService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*FullNodeServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryHandler("SetTransaction", FullNodeServiceServer.SetTransaction),
		unaryHandler("SetBlock", FullNodeServiceServer.SetBlock),
		unaryHandler("SealBlock", FullNodeServiceServer.SealBlock),
		unaryHandler("GetBalance", FullNodeServiceServer.GetBalance),
		unaryHandler("GetChain", FullNodeServiceServer.GetChain),
		unaryHandler("CheckValidity", FullNodeServiceServer.CheckValidity),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "service/full_node_service.go",
}
