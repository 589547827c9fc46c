package workload

import (
	"context"
	"testing"
	"time"

	"github.com/hhkbp2/testify/require"
	"github.com/hhkbp2/tpcc"
	g "github.com/hhkbp2/tpcc/generator"
	"github.com/pkg/errors"
)

func TestRetryDelay(t *testing.T) {
	policy := &retryPolicy{
		limit:      10,
		backoff:    10 * time.Millisecond,
		maxBackoff: 50 * time.Millisecond,
	}
	r := g.NewRandom(42)
	bounds := []time.Duration{10, 20, 40, 50, 50, 50}
	for i, b := range bounds {
		for n := 0; n < 20; n++ {
			d := policy.delay(r, i+1)
			require.True(t, d >= b*time.Millisecond*79/100, "attempt %d: %s", i+1, d)
			require.True(t, d <= b*time.Millisecond*121/100, "attempt %d: %s", i+1, d)
		}
	}
}

func TestExecutorRetriesTransientOnly(t *testing.T) {
	env := newTestEnv(t, nil)
	exec := newExecutor(&retryPolicy{limit: 3, timeout: time.Second}, g.NewRandom(1))

	calls := 0
	err := exec.transact(env.ctx, env.db, func(ctx context.Context, tx tpcc.Tx) error {
		calls++
		if calls < 3 {
			return tpcc.NewTransientError(g.NewErrorf("conflict"))
		}
		return nil
	})
	require.Nil(t, err)
	require.Equal(t, 3, calls)
	require.Equal(t, 2, exec.retries)

	calls = 0
	err = exec.transact(env.ctx, env.db, func(ctx context.Context, tx tpcc.Tx) error {
		calls++
		return errors.Wrap(ErrAborted, "test")
	})
	require.True(t, IsAborted(err))
	require.Equal(t, 1, calls)

	calls = 0
	err = exec.transact(env.ctx, env.db, func(ctx context.Context, tx tpcc.Tx) error {
		calls++
		return tpcc.NewTransientError(g.NewErrorf("conflict"))
	})
	require.True(t, tpcc.IsTransient(err))
	require.Equal(t, 4, calls)
}

func TestExecutorOutcomes(t *testing.T) {
	env := newTestEnv(t, nil)
	exec := newExecutor(&retryPolicy{limit: 1, timeout: time.Second}, g.NewRandom(1))
	profile := func(err error) profileFunc {
		return func(ctx context.Context, db tpcc.DB, r *routine, warehouse int64) error {
			return err
		}
	}

	record, err := exec.run(env.ctx, env.db, env.routine, "P", profile(nil), 1)
	require.Nil(t, err)
	require.Equal(t, tpcc.StatusCommitted, record.Status)
	require.Equal(t, "P", record.Profile)

	record, err = exec.run(env.ctx, env.db, env.routine, "P", profile(ErrAborted), 1)
	require.Nil(t, err)
	require.Equal(t, tpcc.StatusAborted, record.Status)

	record, err = exec.run(env.ctx, env.db, env.routine, "P", profile(tpcc.NewTransientError(g.NewErrorf("x"))), 1)
	require.Nil(t, err)
	require.Equal(t, tpcc.StatusFailed, record.Status)

	fatal := tpcc.NewFatalError(g.NewErrorf("no such table"))
	record, err = exec.run(env.ctx, env.db, env.routine, "P", profile(fatal), 1)
	require.NotNil(t, err)
	require.True(t, tpcc.IsFatal(err))
	require.Equal(t, tpcc.StatusFailed, record.Status)
}
