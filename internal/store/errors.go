package store

import (
	"context"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/GregMSThompson/wallet-ledger/internal/errs"
)

func isNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}

func isAlreadyExists(err error) bool {
	return status.Code(err) == codes.AlreadyExists
}

// classifyTxError maps the result of a Firestore transaction. Errors raised by
// our own code pass through unchanged; contention becomes a ConflictError so
// the caller retries the whole unit.
func classifyTxError(op string, err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return err
	}
	switch st.Code() {
	case codes.Aborted:
		return errs.NewConflictError("concurrent modification, retry the operation")
	case codes.NotFound:
		return errs.NewNotFoundError(st.Message())
	case codes.Canceled:
		return fmt.Errorf("%s: %w", op, context.Canceled)
	case codes.DeadlineExceeded:
		return fmt.Errorf("%s: %w", op, context.DeadlineExceeded)
	default:
		return errs.NewDatabaseError(op, "transaction failed", err)
	}
}
