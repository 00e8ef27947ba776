package grpc

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/dmitrijs2005/ledgerkeeper/internal/common"
	"github.com/dmitrijs2005/ledgerkeeper/internal/server/auth"
	"github.com/dmitrijs2005/ledgerkeeper/internal/server/models"
	"github.com/shopspring/decimal"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

func (s *GRPCServer) Register(ctx context.Context, req *structpb.Struct) (*emptypb.Empty, error) {
	name, email, password, err := stringFields3(req, "name", "email", "password")
	if err != nil {
		return nil, err
	}

	if _, err := s.users.Register(ctx, name, email, password); err != nil {
		return nil, toStatus(err)
	}
	return &emptypb.Empty{}, nil
}

func (s *GRPCServer) Login(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	email, err := stringField(req, "email")
	if err != nil {
		return nil, err
	}
	password, err := stringField(req, "password")
	if err != nil {
		return nil, err
	}

	token, err := s.users.Login(ctx, email, password)
	if err != nil {
		return nil, toStatus(err)
	}
	return encode(map[string]any{"jwtToken": token})
}

func (s *GRPCServer) CreateTransaction(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	f, err := transactionFields(req)
	if err != nil {
		return nil, err
	}

	created, err := s.ledger.Create(ctx, ownerID(ctx), f)
	if err != nil {
		return nil, toStatus(err)
	}
	return transactionStruct(created)
}

func (s *GRPCServer) ListTransactions(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	items, err := s.ledger.List(ctx, ownerID(ctx))
	if err != nil {
		return nil, toStatus(err)
	}

	list := make([]any, 0, len(items))
	for _, t := range items {
		list = append(list, transactionMap(t))
	}
	return encode(map[string]any{"transactions": list})
}

func (s *GRPCServer) GetTransaction(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, err := stringField(req, "id")
	if err != nil {
		return nil, err
	}

	item, err := s.ledger.Get(ctx, ownerID(ctx), id)
	if err != nil {
		return nil, toStatus(err)
	}
	return transactionStruct(item)
}

func (s *GRPCServer) UpdateTransaction(ctx context.Context, req *structpb.Struct) (*emptypb.Empty, error) {
	id, err := stringField(req, "id")
	if err != nil {
		return nil, err
	}
	f, err := transactionFields(req)
	if err != nil {
		return nil, err
	}

	if err := s.ledger.Update(ctx, ownerID(ctx), id, f); err != nil {
		return nil, toStatus(err)
	}
	return &emptypb.Empty{}, nil
}

func (s *GRPCServer) DeleteTransaction(ctx context.Context, req *structpb.Struct) (*emptypb.Empty, error) {
	id, err := stringField(req, "id")
	if err != nil {
		return nil, err
	}

	if err := s.ledger.Delete(ctx, ownerID(ctx), id); err != nil {
		return nil, toStatus(err)
	}
	return &emptypb.Empty{}, nil
}

func (s *GRPCServer) Summary(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	summary, err := s.ledger.Summarize(ctx, ownerID(ctx))
	if err != nil {
		return nil, toStatus(err)
	}

	breakdown := make([]any, 0, len(summary.CategoryBreakdown))
	for _, c := range summary.CategoryBreakdown {
		breakdown = append(breakdown, map[string]any{"category": c.Category, "total": c.Total.String()})
	}
	return encode(map[string]any{
		"totalExpense":      summary.TotalExpense.String(),
		"categoryBreakdown": breakdown,
	})
}

func (s *GRPCServer) Export(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	res, err := s.exporter.Export(ctx, ownerID(ctx))
	if err != nil {
		return nil, toStatus(err)
	}
	return encode(map[string]any{"key": res.Key, "url": res.URL})
}

// toStatus maps service sentinels to gRPC codes without leaking detail.
func toStatus(err error) error {
	switch {
	case errors.Is(err, common.ErrUnauthenticated):
		return status.Error(codes.Unauthenticated, "unauthenticated")
	case errors.Is(err, common.ErrDuplicateEmail):
		return status.Error(codes.AlreadyExists, "user already exists")
	case errors.Is(err, common.ErrInvalidCredentials):
		return status.Error(codes.InvalidArgument, "invalid credentials")
	case errors.Is(err, common.ErrValidation):
		return status.Error(codes.InvalidArgument, "invalid request")
	case errors.Is(err, common.ErrorNotFound):
		return status.Error(codes.NotFound, "transaction not found")
	default:
		return status.Error(codes.Internal, "internal error")
	}
}

func ownerID(ctx context.Context) string {
	id, _ := auth.UserIDFromContext(ctx)
	return id
}

// stringField reads an optional string field; absent and null mean "".
func stringField(req *structpb.Struct, key string) (string, error) {
	v, ok := req.GetFields()[key]
	if !ok {
		return "", nil
	}
	switch k := v.GetKind().(type) {
	case *structpb.Value_StringValue:
		return k.StringValue, nil
	case *structpb.Value_NullValue:
		return "", nil
	default:
		return "", status.Errorf(codes.InvalidArgument, "field %q must be a string", key)
	}
}

func stringFields3(req *structpb.Struct, a, b, c string) (string, string, string, error) {
	va, err := stringField(req, a)
	if err != nil {
		return "", "", "", err
	}
	vb, err := stringField(req, b)
	if err != nil {
		return "", "", "", err
	}
	vc, err := stringField(req, c)
	if err != nil {
		return "", "", "", err
	}
	return va, vb, vc, nil
}

// amountField accepts a decimal string or a number.
func amountField(req *structpb.Struct, key string) (decimal.Decimal, error) {
	v, ok := req.GetFields()[key]
	if !ok {
		return decimal.Zero, nil
	}
	switch k := v.GetKind().(type) {
	case *structpb.Value_NumberValue:
		if math.IsNaN(k.NumberValue) || math.IsInf(k.NumberValue, 0) {
			return decimal.Zero, status.Errorf(codes.InvalidArgument, "field %q is not a number", key)
		}
		return decimal.NewFromFloat(k.NumberValue), nil
	case *structpb.Value_StringValue:
		d, err := decimal.NewFromString(k.StringValue)
		if err != nil {
			return decimal.Zero, status.Errorf(codes.InvalidArgument, "field %q is not a number", key)
		}
		return d, nil
	case *structpb.Value_NullValue:
		return decimal.Zero, nil
	default:
		return decimal.Zero, status.Errorf(codes.InvalidArgument, "field %q must be a number", key)
	}
}

func transactionFields(req *structpb.Struct) (models.TransactionFields, error) {
	var f models.TransactionFields
	var err error

	if f.Amount, err = amountField(req, "amount"); err != nil {
		return f, err
	}
	for key, dst := range map[string]*string{
		"title":    &f.Title,
		"category": &f.Category,
		"date":     &f.Date,
		"notes":    &f.Notes,
	} {
		if *dst, err = stringField(req, key); err != nil {
			return f, err
		}
	}
	return f, nil
}

func transactionMap(t *models.Transaction) map[string]any {
	return map[string]any{
		"id":         t.ID,
		"user_id":    t.OwnerID,
		"title":      t.Title,
		"amount":     t.Amount.String(),
		"category":   t.Category,
		"date":       t.Date,
		"notes":      t.Notes,
		"created_at": t.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func transactionStruct(t *models.Transaction) (*structpb.Struct, error) {
	return encode(transactionMap(t))
}

// encode fails only on values Struct cannot hold, such as invalid UTF-8.
func encode(m map[string]any) (*structpb.Struct, error) {
	out, err := structpb.NewStruct(m)
	if err != nil {
		return nil, status.Error(codes.Internal, "internal error")
	}
	return out, nil
}
