package grpc

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dmitrijs2005/ledgerkeeper/internal/common"
	"github.com/dmitrijs2005/ledgerkeeper/internal/server/auth"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// accessTokenInterceptor guards every ledger method except the public ones.
// Other services on the server (health) pass through.
func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {

	if !strings.HasPrefix(info.FullMethod, "/"+ServiceName+"/") || publicMethods[info.FullMethod] {
		return handler(ctx, req)
	}

	var header string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		values := md.Get(common.AccessTokenHeaderName)
		if len(values) > 0 {
			header = values[0]
		}
	}

	accessToken, err := auth.TokenFromHeader(header)
	if err != nil {
		reason := "invalid"
		if errors.Is(err, common.ErrMissingToken) {
			reason = "missing"
		}
		s.logger.Warn(ctx, "access token rejected", "reason", reason, "method", info.FullMethod)
		return nil, status.Error(codes.Unauthenticated, "unauthenticated")
	}

	userID, err := s.tokens.Validate(accessToken)
	if err != nil {
		s.logger.Warn(ctx, "access token rejected", "reason", "invalid", "error", err, "method", info.FullMethod)
		return nil, status.Error(codes.Unauthenticated, "unauthenticated")
	}

	return handler(auth.WithUserID(ctx, userID), req)
}

func (s *GRPCServer) loggingInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	start := time.Now()
	resp, err := handler(ctx, req)

	code := status.Code(err)
	fields := []any{"method", info.FullMethod, "code", code.String(), "duration_ms", time.Since(start).Milliseconds()}
	switch code {
	case codes.OK:
		s.logger.Info(ctx, "grpc request", fields...)
	case codes.Internal, codes.Unknown:
		s.logger.Error(ctx, "grpc request", fields...)
	default:
		s.logger.Warn(ctx, "grpc request", fields...)
	}
	return resp, err
}
