package client

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/guialocal/internal/common"
	"github.com/dmitrijs2005/guialocal/internal/roles"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var ErrUnavailable = errors.New("server unavailable")

// RemoteError carries the server's message while matching a local sentinel.
type RemoteError struct {
	Err     error
	Message string
}

func (e *RemoteError) Error() string { return e.Message }

func (e *RemoteError) Unwrap() error { return e.Err }

var unauthenticated = map[string]error{
	common.ErrTokenExpired.Error():        common.ErrTokenExpired,
	common.ErrRefreshTokenExpired.Error(): common.ErrRefreshTokenExpired,
	common.ErrSessionRevoked.Error():      common.ErrSessionRevoked,
	common.ErrInvalidToken.Error():        common.ErrInvalidToken,
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return err
	}

	switch st.Code() {
	case codes.PermissionDenied:
		return permissionError(st, roles.InsufficientRole)
	case codes.Unauthenticated:
		if hasKind(st) {
			return permissionError(st, roles.NotAuthenticated)
		}
		if sentinel, ok := unauthenticated[st.Message()]; ok {
			return &RemoteError{Err: sentinel, Message: st.Message()}
		}
		return &RemoteError{Err: common.ErrorUnauthorized, Message: st.Message()}
	case codes.ResourceExhausted:
		return &RemoteError{Err: common.ErrRateLimited, Message: st.Message()}
	case codes.InvalidArgument:
		if st.Message() == common.MsgPasswordTooShort {
			return &RemoteError{Err: common.ErrPasswordTooShort, Message: st.Message()}
		}
		return &RemoteError{Err: common.ErrorValidation, Message: st.Message()}
	case codes.AlreadyExists:
		return &RemoteError{Err: common.ErrorAlreadyExists, Message: st.Message()}
	case codes.NotFound:
		return &RemoteError{Err: common.ErrorNotFound, Message: st.Message()}
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}

func hasKind(st *status.Status) bool {
	for _, d := range st.Details() {
		if _, ok := d.(*errdetails.ErrorInfo); ok {
			return true
		}
	}
	return false
}

// permissionError rebuilds a denial; fallback is used when the status has
// no ErrorInfo detail.
func permissionError(st *status.Status, fallback roles.Kind) error {
	kind := fallback
	for _, d := range st.Details() {
		if info, ok := d.(*errdetails.ErrorInfo); ok {
			if k := roles.ParseKind(info.Reason); k != 0 {
				kind = k
			}
		}
	}
	return &roles.PermissionError{Kind: kind, Message: st.Message()}
}
