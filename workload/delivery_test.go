package workload

import (
	"testing"
	"time"

	"github.com/hhkbp2/testify/require"
	"github.com/hhkbp2/tpcc"
	"github.com/shopspring/decimal"
)

func decimalValue(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func (self *testEnv) delivery(unit string) *deliveryOutput {
	in := &deliveryInput{warehouse: 1, carrierID: 7, date: time.Now()}
	out, err := delivery(self.ctx, self.db, self.routine.exec, in, self.workload.opts.scaling, unit)
	require.Nil(self.t, err)
	return out
}

func TestDeliveryOldestOrder(t *testing.T) {
	for _, unit := range []string{DeliveryByWarehouse, DeliveryByDistrict} {
		env := newTestEnv(t, nil)
		env.load()
		s := env.workload.opts.scaling
		customers := make([]int64, testDistricts)
		before := make([]customerPayment, testDistricts)
		for d := int64(1); d <= testDistricts; d++ {
			require.True(t, env.queryRow(tpcc.StmtSelectOrder,
				[]interface{}{int64(1), d, s.FirstNewOrder()}, &customers[d-1]))
			before[d-1] = env.customerPayment(1, d, customers[d-1])
		}

		out := env.delivery(unit)
		require.Equal(t, 0, out.skipped)
		for d := int64(1); d <= testDistricts; d++ {
			require.Equal(t, s.FirstNewOrder(), out.orders[d-1])
			require.Equal(t, s.NewOrdersPerDist()-1, env.newOrderCount(1, d))

			status := env.orderStatus(customerSelector{warehouse: 1, district: d, id: customers[d-1]})
			require.True(t, status.carrierID.Valid)
			require.Equal(t, int64(7), status.carrierID.Int64)
			total := decimal.Zero
			for _, l := range status.lines {
				require.True(t, l.deliveryD.Valid)
				require.True(t, l.amount.IsPositive())
				total = total.Add(l.amount)
			}
			after := env.customerPayment(1, d, customers[d-1])
			require.True(t, after.balance.Equal(before[d-1].balance.Add(total)))
			require.Equal(t, before[d-1].deliveryCnt+1, after.deliveryCnt)
		}
		env.check()
	}
}

func TestDeliveryEmptyDistricts(t *testing.T) {
	env := newTestEnv(t, nil)
	env.load()
	s := env.workload.opts.scaling
	for i := int64(0); i < s.NewOrdersPerDist(); i++ {
		out := env.delivery(DeliveryByWarehouse)
		require.Equal(t, 0, out.skipped)
	}
	before := make(map[int64]customerPayment)
	for c := int64(1); c <= testCustomers; c++ {
		before[c] = env.customerPayment(1, 1, c)
	}

	out := env.delivery(DeliveryByWarehouse)
	require.Equal(t, testDistricts, out.skipped)
	require.Equal(t, []int64{0, 0}, out.orders)
	for c := int64(1); c <= testCustomers; c++ {
		require.Equal(t, before[c], env.customerPayment(1, 1, c))
	}
	record, err := env.workload.DoProfile(env.ctx, env.db, env.routine, ProfileDelivery, 1)
	require.Nil(t, err)
	require.Equal(t, tpcc.StatusCommitted, record.Status)
	env.check()
}
