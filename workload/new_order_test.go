package workload

import (
	"context"
	"testing"
	"time"

	"github.com/hhkbp2/testify/require"
	"github.com/hhkbp2/tpcc"
	"github.com/shopspring/decimal"
)

func (self *testEnv) stockQuantity(w, i int64) int64 {
	var quantity int64
	var data string
	dest := []interface{}{&quantity, &data}
	for d := 0; d < 10; d++ {
		dest = append(dest, new(string))
	}
	require.True(self.t, self.queryRow(tpcc.StmtStockForUpdate, []interface{}{i, w}, dest...))
	return quantity
}

func testNewOrderInput(items ...int64) *newOrderInput {
	in := &newOrderInput{
		warehouse: 1,
		district:  2,
		customer:  7,
		entryDate: time.Now(),
	}
	for _, i := range items {
		in.lines = append(in.lines, orderLineInput{itemID: i, supplyWID: 1, quantity: 3})
	}
	return in
}

func TestStockQuantity(t *testing.T) {
	require.Equal(t, int64(45), stockQuantity(50, 5))
	require.Equal(t, int64(10), stockQuantity(15, 5))
	require.Equal(t, int64(100), stockQuantity(14, 5))
	require.Equal(t, int64(91), stockQuantity(10, 10))
}

func TestNewOrderInput(t *testing.T) {
	env := newTestEnv(t, nil)
	r := env.routine.random
	for i := 0; i < 100; i++ {
		in := r.newOrderInput(1, 0)
		require.True(t, int64(len(in.lines)) >= tpcc.MinNumItems && len(in.lines) <= 15)
		require.True(t, in.customer >= 1 && in.customer <= testCustomers)
		for _, l := range in.lines {
			require.True(t, l.itemID >= 1 && l.itemID <= testItems)
			require.True(t, l.quantity >= 1 && l.quantity <= 10)
			require.True(t, l.supplyWID >= 1 && l.supplyWID <= testWarehouses)
		}
	}
	in := r.newOrderInput(1, 100)
	require.Equal(t, int64(testItems+1), in.lines[len(in.lines)-1].itemID)
}

func TestNewOrderCommits(t *testing.T) {
	env := newTestEnv(t, nil)
	env.load()
	in := testNewOrderInput(1, 2, 3, 4, 5)
	in.lines[4].supplyWID = 2
	next := env.nextOrderID(1, 2)
	queued := env.newOrderCount(1, 2)
	before := make([]int64, len(in.lines))
	for n, l := range in.lines {
		before[n] = env.stockQuantity(l.supplyWID, l.itemID)
	}

	var out *newOrderOutput
	env.withTx(func(tx tpcc.Tx) {
		var err error
		out, err = newOrder(env.ctx, tx, in)
		require.Nil(t, err)
	})
	require.Equal(t, next, out.orderID)
	require.Equal(t, next+1, env.nextOrderID(1, 2))
	require.Equal(t, queued+1, env.newOrderCount(1, 2))
	require.Equal(t, 5, len(out.lines))
	require.True(t, out.total.IsPositive())
	sum := decimal.Zero
	for n, l := range in.lines {
		require.Equal(t, stockQuantity(before[n], 3), env.stockQuantity(l.supplyWID, l.itemID))
		require.Equal(t, stockQuantity(before[n], 3), out.lines[n].stockQuantity)
		require.True(t, out.lines[n].brand == brandGeneric || out.lines[n].brand == brandOriginal)
		sum = sum.Add(out.lines[n].amount)
	}
	require.True(t, out.total.LessThanOrEqual(sum.Mul(decimal.RequireFromString("1.4"))))

	status := env.orderStatus(customerSelector{warehouse: 1, district: 2, id: 7})
	require.Equal(t, next, status.orderID)
	require.False(t, status.carrierID.Valid)
	require.Equal(t, 5, len(status.lines))
	require.Equal(t, int64(2), status.lines[4].supplyWID)
	env.check()
}

func TestNewOrderInvalidItemRollsBack(t *testing.T) {
	env := newTestEnv(t, nil)
	env.load()
	in := testNewOrderInput(1, 2, 3, 4, testItems+1)
	next := env.nextOrderID(1, 2)
	queued := env.newOrderCount(1, 2)
	stock := env.stockQuantity(1, 1)

	err := env.routine.exec.transact(env.ctx, env.db, func(ctx context.Context, tx tpcc.Tx) error {
		_, err := newOrder(ctx, tx, in)
		return err
	})
	require.NotNil(t, err)
	require.True(t, IsAborted(err))
	require.False(t, tpcc.IsTransient(err))
	require.Equal(t, 0, env.routine.exec.retries)
	require.Equal(t, next, env.nextOrderID(1, 2))
	require.Equal(t, queued, env.newOrderCount(1, 2))
	require.Equal(t, stock, env.stockQuantity(1, 1))
	env.check()
}

func TestNewOrderAbortedOutcome(t *testing.T) {
	env := newTestEnv(t, map[string]string{tpcc.PropertyNewOrderRollbackPercent: "100"})
	env.load()
	next := env.nextOrderID(1, 1) + env.nextOrderID(1, 2)
	for i := 0; i < 5; i++ {
		record, err := env.workload.DoProfile(env.ctx, env.db, env.routine, ProfileNewOrder, 1)
		require.Nil(t, err)
		require.Equal(t, tpcc.StatusAborted, record.Status)
		require.Equal(t, 0, record.Retries)
	}
	require.Equal(t, next, env.nextOrderID(1, 1)+env.nextOrderID(1, 2))
	require.Equal(t, int64(5), env.measurements.GetStatusCount(ProfileNewOrder, tpcc.StatusAborted))
	require.Equal(t, int64(0), env.measurements.GetStatusCount(ProfileNewOrder, tpcc.StatusFailed))
}

func TestNewOrderMissingCustomerIsFatal(t *testing.T) {
	env := newTestEnv(t, nil)
	env.load()
	in := testNewOrderInput(1)
	in.customer = testCustomers + 1
	tx, err := env.db.Begin(env.ctx)
	require.Nil(t, err)
	_, err = newOrder(env.ctx, tx, in)
	require.NotNil(t, err)
	require.True(t, tpcc.IsFatal(err))
	require.Nil(t, tx.Rollback())
	require.Equal(t, int64(testOrders+1), env.nextOrderID(1, 2))
}
