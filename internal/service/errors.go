package service

import (
	"errors"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/gearcheck/internal/auth"
	"github.com/mmynk/gearcheck/internal/roster"
	"github.com/mmynk/gearcheck/internal/storage"
	"github.com/mmynk/gearcheck/internal/verify"
)

// connectError converts a domain error into a Connect error and logs it.
// Caller mistakes are logged as warnings, everything else as errors.
func connectError(op string, err error, args ...any) *connect.Error {
	code := errorCode(err)
	args = append(args, "code", code, "error", err)
	switch code {
	case connect.CodeInternal, connect.CodeUnavailable:
		slog.Error(op+" failed", args...)
	default:
		slog.Warn(op+" failed", args...)
	}
	return connect.NewError(code, err)
}

func errorCode(err error) connect.Code {
	switch {
	case errors.Is(err, storage.ErrConflict):
		return connect.CodeAborted
	case errors.Is(err, storage.ErrPersonNotFound),
		errors.Is(err, verify.ErrSessionNotFound):
		return connect.CodeNotFound
	case errors.Is(err, roster.ErrDuplicateName):
		return connect.CodeAlreadyExists
	case errors.Is(err, roster.ErrInvalidName),
		errors.Is(err, verify.ErrUnknownItem),
		errors.Is(err, errInvalidState):
		return connect.CodeInvalidArgument
	case errors.Is(err, verify.ErrNoSelection):
		return connect.CodeFailedPrecondition
	case errors.Is(err, storage.ErrLoadFailed),
		errors.Is(err, storage.ErrSaveFailed):
		return connect.CodeUnavailable
	case errors.Is(err, auth.ErrInvalidPassword),
		errors.Is(err, auth.ErrEmptyPassword),
		errors.Is(err, auth.ErrGateDisabled),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrMissingToken):
		return connect.CodeUnauthenticated
	}
	return connect.CodeInternal
}
