package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully-qualified gRPC service name.
const ServiceName = "ledger.v1.LedgerService"

// LedgerServiceServer mirrors the HTTP surface. Payloads are
// google.protobuf.Struct objects with the same field names as the JSON API;
// amounts travel as decimal strings.
type LedgerServiceServer interface {
	Register(context.Context, *structpb.Struct) (*emptypb.Empty, error)
	Login(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CreateTransaction(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListTransactions(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	GetTransaction(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpdateTransaction(context.Context, *structpb.Struct) (*emptypb.Empty, error)
	DeleteTransaction(context.Context, *structpb.Struct) (*emptypb.Empty, error)
	Summary(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	Export(context.Context, *emptypb.Empty) (*structpb.Struct, error)
}

// publicMethods skip the access token check.
var publicMethods = map[string]bool{
	fullMethod("Register"): true,
	fullMethod("Login"):    true,
}

func fullMethod(name string) string {
	return "/" + ServiceName + "/" + name
}

// unary builds a MethodDesc that decodes Req, runs the interceptor chain and
// dispatches to call.
func unary[Req, Resp any](name string, call func(LedgerServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			s := srv.(LedgerServiceServer)
			if interceptor == nil {
				return call(s, ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod(name)}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(s, ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// LedgerServiceDesc describes the service for grpc.Server.RegisterService.
var LedgerServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*LedgerServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("Register", LedgerServiceServer.Register),
		unary("Login", LedgerServiceServer.Login),
		unary("CreateTransaction", LedgerServiceServer.CreateTransaction),
		unary("ListTransactions", LedgerServiceServer.ListTransactions),
		unary("GetTransaction", LedgerServiceServer.GetTransaction),
		unary("UpdateTransaction", LedgerServiceServer.UpdateTransaction),
		unary("DeleteTransaction", LedgerServiceServer.DeleteTransaction),
		unary("Summary", LedgerServiceServer.Summary),
		unary("Export", LedgerServiceServer.Export),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "ledger/v1/ledger.proto",
}
