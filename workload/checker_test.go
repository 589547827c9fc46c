package workload

import (
	"strings"
	"testing"

	"github.com/hhkbp2/testify/require"
	"github.com/hhkbp2/tpcc"
	"github.com/shopspring/decimal"
)

func TestCheckerFindsViolations(t *testing.T) {
	env := newTestEnv(t, nil)
	env.load()
	s := env.workload.opts.scaling
	env.withTx(func(tx tpcc.Tx) {
		n, err := tx.Exec(env.ctx, tpcc.StmtUpdateWarehouseYTD, decimal.RequireFromString("1.00"), int64(2))
		require.Nil(t, err)
		require.Equal(t, int64(1), n)
		n, err = tx.Exec(env.ctx, tpcc.StmtDeleteNewOrder, int64(1), int64(2), s.FirstNewOrder()+2)
		require.Nil(t, err)
		require.Equal(t, int64(1), n)
	})
	violations, err := env.workload.Check(env.ctx, env.db)
	require.Nil(t, err)
	require.Equal(t, 3, len(violations), "%v", violations)
	require.True(t, strings.HasPrefix(violations[0], "condition 3:"), violations[0])
	require.True(t, strings.HasPrefix(violations[1], "condition 1:"), violations[1])
	require.True(t, strings.HasPrefix(violations[2], "condition 8:"), violations[2])
}

func TestCheckerMissingWarehouse(t *testing.T) {
	env := newTestEnv(t, nil)
	violations, err := env.workload.Check(env.ctx, env.db)
	require.Nil(t, err)
	require.Equal(t, testWarehouses, len(violations))
}
