// Package grpc serves the ledger over gRPC using protobuf well-known types
// as messages, plus the standard health service.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/ledgerkeeper/internal/logging"
	"github.com/dmitrijs2005/ledgerkeeper/internal/server/models"
	"github.com/dmitrijs2005/ledgerkeeper/internal/server/services"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

type UserService interface {
	Register(ctx context.Context, name, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (string, error)
}

type LedgerService interface {
	Create(ctx context.Context, ownerID string, f models.TransactionFields) (*models.Transaction, error)
	List(ctx context.Context, ownerID string) ([]*models.Transaction, error)
	Get(ctx context.Context, ownerID, id string) (*models.Transaction, error)
	Update(ctx context.Context, ownerID, id string, f models.TransactionFields) error
	Delete(ctx context.Context, ownerID, id string) error
	Summarize(ctx context.Context, ownerID string) (*models.Summary, error)
}

type Exporter interface {
	Export(ctx context.Context, ownerID string) (*services.ExportResult, error)
}

type TokenValidator interface {
	Validate(token string) (string, error)
}

type GRPCServer struct {
	address  string
	users    UserService
	ledger   LedgerService
	exporter Exporter
	tokens   TokenValidator
	logger   logging.Logger
}

func NewGRPCServer(a string, l logging.Logger, us UserService, ls LedgerService, ex Exporter, tokens TokenValidator) *GRPCServer {
	return &GRPCServer{
		address:  a,
		logger:   l.With("module", "grpc_server"),
		users:    us,
		ledger:   ls,
		exporter: ex,
		tokens:   tokens,
	}
}

func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.Serve(ctx, listen)
}

// Serve accepts connections on listen until ctx is cancelled.
func (s *GRPCServer) Serve(ctx context.Context, listen net.Listener) error {

	// creates gRPC-server
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor, s.accessTokenInterceptor))

	// registers services
	srv.RegisterService(&LedgerServiceDesc, s)

	hs := health.NewServer()
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(srv, hs)

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gPRC server...")
		hs.Shutdown()
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", listen.Addr().String())

	// starts accepting incoming connections
	if err := srv.Serve(listen); err != nil {
		return err
	}

	return nil
}
