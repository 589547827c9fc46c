package workload

import (
	"context"
	"math/rand"
	"time"

	"github.com/hhkbp2/tpcc"
	g "github.com/hhkbp2/tpcc/generator"
	"github.com/pkg/errors"
)

// ErrAborted is returned by a transaction body that rolls back on purpose.
// The outcome is recorded as aborted and never retried.
var ErrAborted = g.NewErrorf("transaction rolled back on purpose")

func IsAborted(err error) bool {
	return errors.Is(err, ErrAborted)
}

func missingRow(what string, key ...int64) error {
	return tpcc.NewFatalError(g.NewErrorf("%s %v not found", what, key))
}

type retryPolicy struct {
	limit      int
	backoff    time.Duration
	maxBackoff time.Duration
	timeout    time.Duration
}

// delay is the pause before retry number `attempt` (from 1): exponential from
// backoff, capped at maxBackoff, randomized by +-20%.
func (self *retryPolicy) delay(r *rand.Rand, attempt int) time.Duration {
	d := self.backoff
	for i := 1; i < attempt && d < self.maxBackoff; i++ {
		d *= 2
	}
	if d > self.maxBackoff {
		d = self.maxBackoff
	}
	return time.Duration(float64(d) * (0.8 + 0.4*r.Float64()))
}

type txBody func(ctx context.Context, tx tpcc.Tx) error

// executor runs transaction bodies for one routine, counting the retries of
// the current profile.
type executor struct {
	policy  *retryPolicy
	random  *rand.Rand
	retries int
}

func newExecutor(policy *retryPolicy, r *rand.Rand) *executor {
	return &executor{
		policy: policy,
		random: r,
	}
}

func (self *executor) once(ctx context.Context, db tpcc.DB, body txBody) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	if err := body(ctx, tx); err != nil {
		if rollbackErr := tx.Rollback(); rollbackErr != nil {
			tpcc.Debugf("rollback failed: %s", rollbackErr)
		}
		return err
	}
	return tx.Commit()
}

// transact runs body in a transaction, retrying transient failures while the
// retry limit and ctx allow.
func (self *executor) transact(ctx context.Context, db tpcc.DB, body txBody) error {
	attempt := 0
	for {
		err := self.once(ctx, db, body)
		if err == nil || !tpcc.IsTransient(err) || attempt >= self.policy.limit || ctx.Err() != nil {
			return err
		}
		attempt++
		self.retries++
		tpcc.Debugf("retry %d after: %s", attempt, err)
		select {
		case <-time.After(self.policy.delay(self.random, attempt)):
		case <-ctx.Done():
			return err
		}
	}
}

type profileFunc func(ctx context.Context, db tpcc.DB, r *routine, warehouse int64) error

// run executes one profile within the transaction budget and classifies the
// outcome. Only fatal errors are returned.
func (self *executor) run(ctx context.Context, db tpcc.DB, r *routine, name string, f profileFunc, warehouse int64) (*tpcc.TransactionRecord, error) {
	self.retries = 0
	startTime := time.Now()
	budget, cancel := context.WithTimeout(ctx, self.policy.timeout)
	defer cancel()
	err := f(budget, db, r, warehouse)
	record := &tpcc.TransactionRecord{
		Profile:   name,
		Latency:   time.Since(startTime),
		Retries:   self.retries,
		Timestamp: startTime,
	}
	switch {
	case err == nil:
		record.Status = tpcc.StatusCommitted
	case IsAborted(err):
		record.Status = tpcc.StatusAborted
	default:
		record.Status = tpcc.StatusFailed
		if budget.Err() != nil && ctx.Err() == nil {
			tpcc.Warnf("%s on warehouse %d exceeded its %s budget: %s", name, warehouse, self.policy.timeout, err)
		} else {
			tpcc.Warnf("%s on warehouse %d failed: %s", name, warehouse, err)
		}
	}
	if tpcc.IsFatal(err) {
		return record, err
	}
	return record, nil
}
