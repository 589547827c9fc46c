package workload

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/hhkbp2/testify/require"
	"github.com/hhkbp2/tpcc"
	g "github.com/hhkbp2/tpcc/generator"
	"github.com/shopspring/decimal"
)

func testPaymentInput(customer customerSelector, amount string) *paymentInput {
	return &paymentInput{
		warehouse: 1,
		district:  1,
		customer:  customer,
		amount:    decimal.RequireFromString(amount),
		date:      time.Now(),
	}
}

func (self *testEnv) payment(in *paymentInput) *paymentOutput {
	var out *paymentOutput
	self.withTx(func(tx tpcc.Tx) {
		var err error
		out, err = payment(self.ctx, tx, in)
		require.Nil(self.t, err)
	})
	return out
}

func (self *testEnv) decimal(stmt tpcc.Statement, args ...interface{}) decimal.Decimal {
	var v decimal.Decimal
	require.True(self.t, self.queryRow(stmt, args, &v))
	return v
}

func (self *testEnv) historyCount(w, d, c int64) int64 {
	var n int64
	require.True(self.t, self.queryRow(tpcc.StmtCountCustomerHistory, []interface{}{w, d, c}, &n))
	return n
}

func TestPaymentByID(t *testing.T) {
	env := newTestEnv(t, nil)
	env.load()
	amount := decimal.RequireFromString("150.00")
	before := env.customerPayment(1, 1, 5)
	warehouseYTD := env.decimal(tpcc.StmtSelectWarehouseYTD, int64(1))
	districtYTD := env.decimal(tpcc.StmtSelectDistrictYTD, int64(1), int64(1))
	history := env.decimal(tpcc.StmtSumDistrictHistoryAmount, int64(1), int64(1))
	payments := env.historyCount(1, 1, 5)

	out := env.payment(testPaymentInput(customerSelector{warehouse: 1, district: 1, id: 5}, "150.00"))
	require.Equal(t, int64(5), out.customerID)

	after := env.customerPayment(1, 1, 5)
	require.True(t, after.balance.Equal(before.balance.Sub(amount)), after.balance.String())
	require.True(t, out.balance.Equal(after.balance))
	require.True(t, after.ytdPayment.Equal(before.ytdPayment.Add(amount)))
	require.Equal(t, before.paymentCnt+1, after.paymentCnt)
	require.Equal(t, before.deliveryCnt, after.deliveryCnt)
	require.True(t, env.decimal(tpcc.StmtSelectWarehouseYTD, int64(1)).Equal(warehouseYTD.Add(amount)))
	require.True(t, env.decimal(tpcc.StmtSelectDistrictYTD, int64(1), int64(1)).Equal(districtYTD.Add(amount)))
	// exactly one history row appended
	require.Equal(t, payments+1, env.historyCount(1, 1, 5))
	require.True(t, env.decimal(tpcc.StmtSumDistrictHistoryAmount, int64(1), int64(1)).Equal(history.Add(amount)))
	env.check()
}

func TestPaymentByLastName(t *testing.T) {
	env := newTestEnv(t, nil)
	env.load()
	before := env.customerPayment(1, 1, 4)
	out := env.payment(testPaymentInput(
		customerSelector{warehouse: 1, district: 1, lastName: g.LastName(3), byName: true}, "10.00"))
	require.Equal(t, int64(4), out.customerID)
	require.Equal(t, before.paymentCnt+1, env.customerPayment(1, 1, 4).paymentCnt)
}

func TestPaymentUnknownLastNameIsFatal(t *testing.T) {
	env := newTestEnv(t, nil)
	env.load()
	tx, err := env.db.Begin(env.ctx)
	require.Nil(t, err)
	in := testPaymentInput(customerSelector{warehouse: 1, district: 1, lastName: "NOBODY", byName: true}, "10.00")
	_, err = payment(env.ctx, tx, in)
	require.NotNil(t, err)
	require.True(t, tpcc.IsFatal(err))
	require.Nil(t, tx.Rollback())
}

func TestPaymentRemoteCustomer(t *testing.T) {
	env := newTestEnv(t, nil)
	env.load()
	before := env.customerPayment(2, 2, 9)
	env.payment(testPaymentInput(customerSelector{warehouse: 2, district: 2, id: 9}, "25.50"))
	after := env.customerPayment(2, 2, 9)
	require.True(t, after.ytdPayment.Sub(before.ytdPayment).Equal(decimal.RequireFromString("25.50")))
	// paid to warehouse 1, so warehouse 2 is unchanged
	require.True(t, env.decimal(tpcc.StmtSelectWarehouseYTD, int64(2)).Equal(decimal.RequireFromString("600.00")))
	env.check()
}

func TestPaymentBadCredit(t *testing.T) {
	env := newTestEnv(t, nil)
	env.load()
	var c int64
	for id := int64(1); id <= testCustomers; id++ {
		var discount decimal.Decimal
		var last, credit string
		env.queryRow(tpcc.StmtCustomerDiscount, []interface{}{int64(1), int64(1), id}, &discount, &last, &credit)
		if credit == badCredit {
			c = id
			break
		}
	}
	require.NotEqual(t, int64(0), c)

	out := env.payment(testPaymentInput(customerSelector{warehouse: 1, district: 1, id: c}, "150.00"))
	require.Equal(t, badCredit, out.credit)
	var data string
	env.queryRow(tpcc.StmtSelectCustomerData, []interface{}{int64(1), int64(1), c}, &data)
	require.Equal(t, out.data, data)
	require.True(t, strings.HasPrefix(data, fmt.Sprintf("%d 1 1 1 1 150.00|", c)), data)
	require.True(t, len(data) <= badCreditDataLen)

	// the note of every payment is kept in front
	for i := 0; i < 5; i++ {
		env.payment(testPaymentInput(customerSelector{warehouse: 1, district: 1, id: c}, "1.00"))
	}
	env.queryRow(tpcc.StmtSelectCustomerData, []interface{}{int64(1), int64(1), c}, &data)
	require.True(t, strings.HasPrefix(data, fmt.Sprintf("%d 1 1 1 1 1.00|", c)), data)
	require.True(t, strings.Contains(data, fmt.Sprintf("%d 1 1 1 1 150.00|", c)), data)
	require.True(t, len(data) <= badCreditDataLen)
}

func TestPaymentInput(t *testing.T) {
	env := newTestEnv(t, nil)
	r := env.routine.random
	byName, remote := 0, 0
	for i := 0; i < 1000; i++ {
		in := r.paymentInput(1, 40)
		require.True(t, in.amount.GreaterThanOrEqual(decimal.RequireFromString("1.00")))
		require.True(t, in.amount.LessThanOrEqual(decimal.RequireFromString("5000.00")))
		if in.customer.byName {
			byName++
			require.Equal(t, int64(0), in.customer.id)
		} else {
			require.True(t, in.customer.id >= 1 && in.customer.id <= testCustomers)
		}
		if in.customer.warehouse != 1 {
			remote++
		}
	}
	require.True(t, byName > 300 && byName < 500, "%d", byName)
	require.True(t, remote > 90 && remote < 220, "%d", remote)
}
