package rpc

import (
	"context"
	"errors"

	"connectrpc.com/connect"

	"github.com/mmynk/eventsdesk/internal/auth"
	"github.com/mmynk/eventsdesk/internal/costs"
	"github.com/mmynk/eventsdesk/internal/service"
)

// toConnectError maps domain sentinels onto Connect codes.
func toConnectError(err error) error {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, service.ErrInvalidArgument):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, service.ErrDuplicateDescription):
		return connect.NewError(connect.CodeAlreadyExists, err)
	case errors.Is(err, costs.ErrRunInProgress):
		return connect.NewError(connect.CodeUnavailable, err)
	case errors.Is(err, auth.ErrInvalidCredentials):
		return connect.NewError(connect.CodeUnauthenticated, err)
	case errors.Is(err, context.Canceled):
		return connect.NewError(connect.CodeCanceled, err)
	case errors.Is(err, context.DeadlineExceeded):
		return connect.NewError(connect.CodeDeadlineExceeded, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}

func invalidArgument(err error) error {
	return connect.NewError(connect.CodeInvalidArgument, err)
}
