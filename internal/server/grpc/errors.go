package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/guialocal/internal/common"
	"github.com/dmitrijs2005/guialocal/internal/roles"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ErrorDomain tags ErrorInfo details attached to permission denials.
const ErrorDomain = "guialocal"

// toStatus maps service errors to gRPC statuses. Unauthenticated messages
// are the sentinel texts so the client can map them back.
func (s *GRPCServer) toStatus(ctx context.Context, err error) error {
	if pe, ok := roles.AsPermissionError(err); ok {
		return permissionStatus(pe)
	}

	switch {
	case errors.Is(err, common.ErrRateLimited):
		return status.Error(codes.ResourceExhausted, common.MsgRateLimited)
	case errors.Is(err, common.ErrPasswordTooShort):
		return status.Error(codes.InvalidArgument, common.MsgPasswordTooShort)
	case errors.Is(err, common.ErrorValidation):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, common.ErrorAlreadyExists):
		return status.Error(codes.AlreadyExists, err.Error())
	case errors.Is(err, common.ErrorNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, common.ErrorUnauthorized):
		return status.Error(codes.Unauthenticated, common.ErrorUnauthorized.Error())
	case errors.Is(err, common.ErrTokenExpired):
		return status.Error(codes.Unauthenticated, common.ErrTokenExpired.Error())
	case errors.Is(err, common.ErrRefreshTokenExpired):
		return status.Error(codes.Unauthenticated, common.ErrRefreshTokenExpired.Error())
	case errors.Is(err, common.ErrSessionRevoked):
		return status.Error(codes.Unauthenticated, common.ErrSessionRevoked.Error())
	case errors.Is(err, common.ErrInvalidToken):
		return status.Error(codes.Unauthenticated, common.ErrInvalidToken.Error())
	}

	s.logger.Error(ctx, "request failed", "error", err)
	return status.Error(codes.Internal, common.ErrorInternal.Error())
}

// permissionStatus keeps the denial kind in an ErrorInfo detail so clients
// can rebuild the PermissionError.
func permissionStatus(pe *roles.PermissionError) error {
	code := codes.PermissionDenied
	if pe.Kind == roles.NotAuthenticated {
		code = codes.Unauthenticated
	}
	st := status.New(code, pe.Message)
	if withInfo, err := st.WithDetails(&errdetails.ErrorInfo{Reason: pe.Kind.String(), Domain: ErrorDomain}); err == nil {
		st = withInfo
	}
	return st.Err()
}
