package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/GregMSThompson/wallet-ledger/internal/errs"
	"github.com/GregMSThompson/wallet-ledger/pkg/logger"
)

const (
	DefaultMaxAttempts = 5
	DefaultBackoff     = 20 * time.Millisecond
)

// Runner executes ledger units and retries them from a fresh read when they
// lose an optimistic-concurrency race. fn may run more than once, so it must
// only communicate results through variables it assigns on every run.
type Runner struct {
	store       Store
	maxAttempts int
	backoff     time.Duration
}

func NewRunner(store Store, maxAttempts int, backoff time.Duration) *Runner {
	if maxAttempts < 1 {
		maxAttempts = DefaultMaxAttempts
	}
	if backoff < 0 {
		backoff = 0
	}
	return &Runner{store: store, maxAttempts: maxAttempts, backoff: backoff}
}

func (r *Runner) Run(ctx context.Context, uid string, fn func(ctx context.Context, tx Tx) error) error {
	log := logger.FromContext(ctx)

	var err error
	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		err = r.store.RunTx(ctx, uid, fn)
		if !errs.IsConflict(err) {
			return err
		}
		if attempt == r.maxAttempts {
			break
		}
		log.Warn("ledger write conflict, retrying", "attempt", attempt, "max_attempts", r.maxAttempts)

		select {
		case <-ctx.Done():
			return fmt.Errorf("ledger retry stopped after %d attempts: %w", attempt, ctx.Err())
		case <-time.After(r.backoff * time.Duration(attempt)):
		}
	}

	log.Error("ledger write conflict, giving up", "attempts", r.maxAttempts)
	return err
}
