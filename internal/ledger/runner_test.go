package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/GregMSThompson/wallet-ledger/internal/errs"
	"github.com/GregMSThompson/wallet-ledger/pkg/helpers"
)

type scriptedStore struct {
	results []error
	calls   int
}

func (s *scriptedStore) RunTx(ctx context.Context, _ string, fn func(ctx context.Context, tx Tx) error) error {
	s.calls++
	if err := fn(ctx, NewStagedTx(ctx, newFakeReader())); err != nil {
		return err
	}
	if s.calls <= len(s.results) {
		return s.results[s.calls-1]
	}
	return nil
}

func TestRunnerRetriesConflicts(t *testing.T) {
	conflict := errs.NewConflictError("conflict")
	store := &scriptedStore{results: []error{conflict, conflict, nil}}
	runner := NewRunner(store, 5, 0)

	runs := 0
	err := runner.Run(helpers.TestCtx(), "uid", func(ctx context.Context, tx Tx) error {
		runs++
		return nil
	})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if store.calls != 3 || runs != 3 {
		t.Fatalf("calls=%d runs=%d, want 3 each", store.calls, runs)
	}
}

func TestRunnerGivesUpAfterMaxAttempts(t *testing.T) {
	conflict := errs.NewConflictError("conflict")
	store := &scriptedStore{results: []error{conflict, conflict, conflict, conflict}}
	runner := NewRunner(store, 3, time.Millisecond)

	err := runner.Run(helpers.TestCtx(), "uid", func(ctx context.Context, tx Tx) error { return nil })
	if !errs.IsConflict(err) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
	if store.calls != 3 {
		t.Fatalf("calls = %d, want 3", store.calls)
	}
}

func TestRunnerDoesNotRetryOtherErrors(t *testing.T) {
	store := &scriptedStore{}
	runner := NewRunner(store, 5, 0)
	boom := errors.New("boom")

	err := runner.Run(helpers.TestCtx(), "uid", func(ctx context.Context, tx Tx) error { return boom })
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}
	if store.calls != 1 {
		t.Fatalf("calls = %d, want 1", store.calls)
	}
}

func TestRunnerStopsOnCancel(t *testing.T) {
	conflict := errs.NewConflictError("conflict")
	store := &scriptedStore{results: []error{conflict, conflict, conflict}}
	runner := NewRunner(store, 3, time.Hour)

	ctx, cancel := context.WithCancel(helpers.TestCtx())
	cancel()

	err := runner.Run(ctx, "uid", func(ctx context.Context, tx Tx) error { return nil })
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if store.calls != 1 {
		t.Fatalf("calls = %d, want 1", store.calls)
	}
}

func TestRunnerStopsOnDeadline(t *testing.T) {
	conflict := errs.NewConflictError("conflict")
	store := &scriptedStore{results: []error{conflict, conflict, conflict}}
	runner := NewRunner(store, 3, time.Hour)

	ctx, cancel := context.WithTimeout(helpers.TestCtx(), 10*time.Millisecond)
	defer cancel()

	err := runner.Run(ctx, "uid", func(ctx context.Context, tx Tx) error { return nil })
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v, want context.DeadlineExceeded", err)
	}
	if errs.IsConflict(err) {
		t.Fatalf("deadline reported as conflict: %v", err)
	}
}

func TestNewRunnerDefaults(t *testing.T) {
	r := NewRunner(&scriptedStore{}, 0, -time.Second)
	if r.maxAttempts != DefaultMaxAttempts {
		t.Fatalf("maxAttempts = %d, want %d", r.maxAttempts, DefaultMaxAttempts)
	}
	if r.backoff != 0 {
		t.Fatalf("backoff = %v, want 0", r.backoff)
	}
}
