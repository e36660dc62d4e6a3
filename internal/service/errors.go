package service

import (
	"context"
	"errors"
	"log/slog"

	"connectrpc.com/connect"
	"github.com/mmynk/sotien/internal/calculator"
	"github.com/mmynk/sotien/internal/money"
	"github.com/mmynk/sotien/internal/storage"
)

var (
	errMissingField  = errors.New("required field missing")
	errNotAMember    = errors.New("caller is not a member of this group")
	errUnknownMember = errors.New("member does not belong to this group")
	errBatchTooLarge = errors.New("batch too large")
)

// toConnectError maps domain and storage errors onto Connect codes.
// Errors that are already *connect.Error pass through unchanged.
func toConnectError(err error) error {
	if err == nil {
		return nil
	}
	var connectErr *connect.Error
	if errors.As(err, &connectErr) {
		return err
	}

	switch {
	case errors.Is(err, calculator.ErrInvalidInput),
		errors.Is(err, calculator.ErrSplitMismatch),
		errors.Is(err, calculator.ErrDuplicateParticipant),
		errors.Is(err, money.ErrInvalidAmount),
		errors.Is(err, money.ErrSubCent),
		errors.Is(err, errMissingField),
		errors.Is(err, errUnknownMember),
		errors.Is(err, errBatchTooLarge):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, storage.ErrNotFound), errors.Is(err, calculator.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, calculator.ErrForbidden), errors.Is(err, errNotAMember):
		return connect.NewError(connect.CodePermissionDenied, err)
	case errors.Is(err, calculator.ErrAlreadyPaid), errors.Is(err, storage.ErrConflict):
		return connect.NewError(connect.CodeFailedPrecondition, err)
	case errors.Is(err, context.DeadlineExceeded):
		return connect.NewError(connect.CodeDeadlineExceeded, err)
	case errors.Is(err, context.Canceled):
		return connect.NewError(connect.CodeCanceled, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}

// fail logs a failed RPC and returns the mapped error.
func fail(op string, err error, args ...any) error {
	mapped := toConnectError(err)
	args = append(args, "error", err)
	if connect.CodeOf(mapped) == connect.CodeInternal {
		slog.Error(op+" failed", args...)
	} else {
		slog.Warn(op+" failed", args...)
	}
	return mapped
}
