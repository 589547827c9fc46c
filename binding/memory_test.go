package binding

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/hhkbp2/testify/require"
	"github.com/hhkbp2/tpcc"
	"github.com/shopspring/decimal"
)

func newTestMemoryDB(t *testing.T, extra map[string]string) *MemoryDB {
	name := fmt.Sprintf("%s-%d", t.Name(), time.Now().UnixNano())
	props := tpcc.NewProperties()
	props.Add(PropertyMemoryName, name)
	for k, v := range extra {
		props.Add(k, v)
	}
	db := NewMemoryDB()
	db.SetProperties(props)
	require.Nil(t, db.Init())
	t.Cleanup(func() { DropMemoryStore(name) })
	return db
}

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func warehouseValues(id int64, ytd string) []interface{} {
	return []interface{}{id, "name", "s1", "s2", "city", "ST", "123411111", money("0.1000"), money(ytd)}
}

func districtValues(w, d, next int64) []interface{} {
	return []interface{}{d, w, "dist", "s1", "s2", "city", "ST", "123411111", money("0.0500"), money("30000.00"), next}
}

func customerValues(w, d, c int64, first, last string) []interface{} {
	return []interface{}{
		c, d, w, first, "OE", last, "s1", "s2", "city", "ST", "123411111", "0123456789abcdef",
		time.Unix(0, 0), "GC", money("50000.00"), money("0.1000"), money("-10.00"), money("10.00"),
		int64(1), int64(0), "data",
	}
}

func withTx(t *testing.T, db *MemoryDB, f func(tx tpcc.Tx)) {
	tx, err := db.Begin(context.Background())
	require.Nil(t, err)
	f(tx)
	require.Nil(t, tx.Commit())
}

func TestMemoryInsertAndQuery(t *testing.T) {
	db := newTestMemoryDB(t, nil)
	ctx := context.Background()
	withTx(t, db, func(tx tpcc.Tx) {
		require.Nil(t, tx.Insert(ctx, tpcc.TableWarehouse, [][]interface{}{warehouseValues(1, "300000.00")}))
		require.Nil(t, tx.Insert(ctx, tpcc.TableDistrict, [][]interface{}{districtValues(1, 1, 3001)}))
	})
	withTx(t, db, func(tx tpcc.Tx) {
		var tax decimal.Decimal
		found, err := tpcc.QueryRow(ctx, tx, tpcc.StmtWarehouseTax, []interface{}{int64(1)}, &tax)
		require.Nil(t, err)
		require.True(t, found)
		require.True(t, tax.Equal(money("0.1")))

		var next int64
		found, err = tpcc.QueryRow(ctx, tx, tpcc.StmtDistrictForUpdate, []interface{}{int64(1), int64(1)}, &tax, &next)
		require.Nil(t, err)
		require.True(t, found)
		require.Equal(t, int64(3001), next)

		found, err = tpcc.QueryRow(ctx, tx, tpcc.StmtWarehouseTax, []interface{}{int64(2)}, &tax)
		require.Nil(t, err)
		require.False(t, found)

		n, err := tx.Exec(ctx, tpcc.StmtUpdateDistrictNextOrderID, int64(3002), int64(1), int64(1))
		require.Nil(t, err)
		require.Equal(t, int64(1), n)
		n, err = tx.Exec(ctx, tpcc.StmtUpdateDistrictNextOrderID, int64(3002), int64(1), int64(9))
		require.Nil(t, err)
		require.Equal(t, int64(0), n)
	})
}

func TestMemoryRollbackUndoesEverything(t *testing.T) {
	db := newTestMemoryDB(t, nil)
	ctx := context.Background()
	withTx(t, db, func(tx tpcc.Tx) {
		require.Nil(t, tx.Insert(ctx, tpcc.TableWarehouse, [][]interface{}{warehouseValues(1, "300000.00")}))
		require.Nil(t, tx.Insert(ctx, tpcc.TableDistrict, [][]interface{}{districtValues(1, 1, 10)}))
	})

	tx, err := db.Begin(ctx)
	require.Nil(t, err)
	_, err = tx.Exec(ctx, tpcc.StmtUpdateWarehouseYTD, money("5.00"), int64(1))
	require.Nil(t, err)
	_, err = tx.Exec(ctx, tpcc.StmtUpdateDistrictNextOrderID, int64(11), int64(1), int64(1))
	require.Nil(t, err)
	_, err = tx.Exec(ctx, tpcc.StmtInsertOrder, int64(10), int64(1), int64(1), int64(1), time.Now(), int64(5), int64(1))
	require.Nil(t, err)
	_, err = tx.Exec(ctx, tpcc.StmtInsertNewOrder, int64(10), int64(1), int64(1))
	require.Nil(t, err)
	require.Nil(t, tx.Rollback())
	require.NotNil(t, tx.Rollback())

	withTx(t, db, func(tx tpcc.Tx) {
		var ytd decimal.Decimal
		_, err := tpcc.QueryRow(ctx, tx, tpcc.StmtSelectWarehouseYTD, []interface{}{int64(1)}, &ytd)
		require.Nil(t, err)
		require.True(t, ytd.Equal(money("300000")))

		var next int64
		_, err = tpcc.QueryRow(ctx, tx, tpcc.StmtSelectDistrictNextOrderID, []interface{}{int64(1), int64(1)}, &next)
		require.Nil(t, err)
		require.Equal(t, int64(10), next)

		var max sql.NullInt64
		_, err = tpcc.QueryRow(ctx, tx, tpcc.StmtMaxOrderID, []interface{}{int64(1), int64(1)}, &max)
		require.Nil(t, err)
		require.False(t, max.Valid)

		var maxNO, minNO sql.NullInt64
		var count int64
		_, err = tpcc.QueryRow(ctx, tx, tpcc.StmtNewOrderStats, []interface{}{int64(1), int64(1)}, &maxNO, &minNO, &count)
		require.Nil(t, err)
		require.Equal(t, int64(0), count)
	})
}

func TestMemoryCustomersByLastNameOrderedByFirst(t *testing.T) {
	db := newTestMemoryDB(t, nil)
	ctx := context.Background()
	withTx(t, db, func(tx tpcc.Tx) {
		require.Nil(t, tx.Insert(ctx, tpcc.TableCustomer, [][]interface{}{
			customerValues(1, 1, 1, "CCC", "BARBAR"),
			customerValues(1, 1, 2, "AAA", "BARBAR"),
			customerValues(1, 1, 3, "BBB", "OUGHTABLE"),
			customerValues(1, 1, 4, "BBB", "BARBAR"),
			customerValues(1, 2, 5, "AAA", "BARBAR"),
		}))
	})
	withTx(t, db, func(tx tpcc.Tx) {
		rows, err := tx.Query(ctx, tpcc.StmtCustomersByLastName, int64(1), int64(1), "BARBAR")
		require.Nil(t, err)
		var ids []int64
		for rows.Next() {
			var id int64
			require.Nil(t, rows.Scan(&id))
			ids = append(ids, id)
		}
		require.Nil(t, rows.Close())
		require.Equal(t, []int64{2, 4, 1}, ids)
	})
}

func TestMemoryNewOrderQueue(t *testing.T) {
	db := newTestMemoryDB(t, nil)
	ctx := context.Background()
	withTx(t, db, func(tx tpcc.Tx) {
		require.Nil(t, tx.Insert(ctx, tpcc.TableNewOrder, [][]interface{}{
			{int64(7), int64(1), int64(1)},
			{int64(5), int64(1), int64(1)},
			{int64(6), int64(1), int64(1)},
		}))
		err := tx.Insert(ctx, tpcc.TableNewOrder, [][]interface{}{{int64(6), int64(1), int64(1)}})
		require.True(t, tpcc.IsFatal(err))
	})
	withTx(t, db, func(tx tpcc.Tx) {
		var o int64
		found, err := tpcc.QueryRow(ctx, tx, tpcc.StmtSelectOldestNewOrder, []interface{}{int64(1), int64(1)}, &o)
		require.Nil(t, err)
		require.True(t, found)
		require.Equal(t, int64(5), o)

		n, err := tx.Exec(ctx, tpcc.StmtDeleteNewOrder, int64(1), int64(1), int64(6))
		require.Nil(t, err)
		require.Equal(t, int64(1), n)
		n, err = tx.Exec(ctx, tpcc.StmtDeleteNewOrder, int64(1), int64(1), int64(6))
		require.Nil(t, err)
		require.Equal(t, int64(0), n)

		var maxNO, minNO sql.NullInt64
		var count int64
		_, err = tpcc.QueryRow(ctx, tx, tpcc.StmtNewOrderStats, []interface{}{int64(1), int64(1)}, &maxNO, &minNO, &count)
		require.Nil(t, err)
		require.Equal(t, int64(7), maxNO.Int64)
		require.Equal(t, int64(5), minNO.Int64)
		require.Equal(t, int64(2), count)
	})
}

func TestMemoryDeliveryStatements(t *testing.T) {
	db := newTestMemoryDB(t, nil)
	ctx := context.Background()
	withTx(t, db, func(tx tpcc.Tx) {
		require.Nil(t, tx.Insert(ctx, tpcc.TableItem, [][]interface{}{
			{int64(1), int64(10), "item", money("2.50"), "data"},
		}))
		require.Nil(t, tx.Insert(ctx, tpcc.TableCustomer, [][]interface{}{customerValues(1, 1, 3, "A", "BARBAR")}))
		require.Nil(t, tx.Insert(ctx, tpcc.TableOrder, [][]interface{}{
			{int64(1), int64(1), int64(1), int64(3), time.Now(), nil, int64(2), int64(1)},
		}))
		require.Nil(t, tx.Insert(ctx, tpcc.TableOrderLine, [][]interface{}{
			{int64(1), int64(1), int64(1), int64(1), int64(1), int64(1), nil, int64(4), money("0"), "dist"},
			{int64(1), int64(1), int64(1), int64(2), int64(1), int64(1), nil, int64(5), money("7.00"), "dist"},
		}))
	})
	now := time.Now()
	withTx(t, db, func(tx tpcc.Tx) {
		n, err := tx.Exec(ctx, tpcc.StmtUpdateOrderCarrier, int64(4), int64(1), int64(1), int64(1))
		require.Nil(t, err)
		require.Equal(t, int64(1), n)
		n, err = tx.Exec(ctx, tpcc.StmtUpdateOrderLineDelivery, now, int64(1), int64(1), int64(1))
		require.Nil(t, err)
		require.Equal(t, int64(2), n)
		n, err = tx.Exec(ctx, tpcc.StmtPriceOrderLines, int64(1), int64(1), int64(1))
		require.Nil(t, err)
		require.Equal(t, int64(1), n)

		var sum decimal.Decimal
		_, err = tpcc.QueryRow(ctx, tx, tpcc.StmtSumOrderLineAmount, []interface{}{int64(1), int64(1), int64(1)}, &sum)
		require.Nil(t, err)
		require.True(t, sum.Equal(money("17.00")))

		n, err = tx.Exec(ctx, tpcc.StmtUpdateCustomerDelivery, sum, int64(1), int64(1), int64(3))
		require.Nil(t, err)
		require.Equal(t, int64(1), n)
	})
	withTx(t, db, func(tx tpcc.Tx) {
		var id int64
		var entry time.Time
		var carrier sql.NullInt64
		found, err := tpcc.QueryRow(ctx, tx, tpcc.StmtSelectLastOrder, []interface{}{int64(1), int64(1), int64(3)}, &id, &entry, &carrier)
		require.Nil(t, err)
		require.True(t, found)
		require.Equal(t, int64(1), id)
		require.True(t, carrier.Valid)
		require.Equal(t, int64(4), carrier.Int64)

		rows, err := tx.Query(ctx, tpcc.StmtSelectOrderLines, int64(1), int64(1), int64(1))
		require.Nil(t, err)
		lines := 0
		for rows.Next() {
			var item, supply, qty int64
			var amount decimal.Decimal
			var delivery sql.NullTime
			require.Nil(t, rows.Scan(&item, &supply, &qty, &amount, &delivery))
			require.True(t, delivery.Valid)
			lines++
		}
		require.Equal(t, 2, lines)

		var first, middle, last string
		var balance decimal.Decimal
		_, err = tpcc.QueryRow(ctx, tx, tpcc.StmtSelectCustomer, []interface{}{int64(1), int64(1), int64(3)}, &first, &middle, &last, &balance)
		require.Nil(t, err)
		require.True(t, balance.Equal(money("7.00")))
	})
}

func TestMemoryCountLowStock(t *testing.T) {
	db := newTestMemoryDB(t, nil)
	ctx := context.Background()
	stock := func(i, q int64) []interface{} {
		row := []interface{}{i, int64(1), q}
		for d := 0; d < 10; d++ {
			row = append(row, "dist")
		}
		return append(row, int64(0), int64(0), int64(0), "data")
	}
	line := func(o, n, i int64) []interface{} {
		return []interface{}{o, int64(1), int64(1), n, i, int64(1), nil, int64(5), money("1"), "dist"}
	}
	withTx(t, db, func(tx tpcc.Tx) {
		require.Nil(t, tx.Insert(ctx, tpcc.TableStock, [][]interface{}{stock(1, 5), stock(2, 50), stock(3, 9)}))
		require.Nil(t, tx.Insert(ctx, tpcc.TableOrderLine, [][]interface{}{
			line(1, 1, 1), line(1, 2, 2), line(2, 1, 1), line(2, 2, 3), line(3, 1, 3),
		}))
	})
	withTx(t, db, func(tx tpcc.Tx) {
		var n int64
		_, err := tpcc.QueryRow(ctx, tx, tpcc.StmtCountLowStock, []interface{}{int64(1), int64(1), int64(1), int64(3), int64(10)}, &n)
		require.Nil(t, err)
		require.Equal(t, int64(2), n)
		_, err = tpcc.QueryRow(ctx, tx, tpcc.StmtCountLowStock, []interface{}{int64(1), int64(1), int64(1), int64(2), int64(10)}, &n)
		require.Nil(t, err)
		require.Equal(t, int64(1), n)
	})
}

func TestMemoryBadArguments(t *testing.T) {
	db := newTestMemoryDB(t, nil)
	ctx := context.Background()
	withTx(t, db, func(tx tpcc.Tx) {
		_, err := tx.Query(ctx, tpcc.StmtWarehouseTax)
		require.True(t, tpcc.IsFatal(err))
		_, err = tx.Query(ctx, tpcc.StmtWarehouseTax, "one")
		require.True(t, tpcc.IsFatal(err))
		err = tx.Insert(ctx, tpcc.TableItem, [][]interface{}{{int64(1)}})
		require.True(t, tpcc.IsFatal(err))
	})
}

func TestMemorySharedStore(t *testing.T) {
	db1 := newTestMemoryDB(t, nil)
	db2 := NewMemoryDB()
	db2.SetProperties(db1.GetProperties())
	require.Nil(t, db2.Init())
	ctx := context.Background()
	withTx(t, db1, func(tx tpcc.Tx) {
		require.Nil(t, tx.Insert(ctx, tpcc.TableWarehouse, [][]interface{}{warehouseValues(3, "1.00")}))
	})
	withTx(t, db2, func(tx tpcc.Tx) {
		var n int64
		_, err := tpcc.QueryRow(ctx, tx, tpcc.StmtCountWarehouses, []interface{}{int64(1), int64(5)}, &n)
		require.Nil(t, err)
		require.Equal(t, int64(1), n)
	})
}

func TestMemoryBeginWaitsForTransaction(t *testing.T) {
	db := newTestMemoryDB(t, nil)
	tx, err := db.Begin(context.Background())
	require.Nil(t, err)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = db.Begin(ctx)
	require.True(t, tpcc.IsTransient(err))
	require.Nil(t, tx.Commit())
	tx, err = db.Begin(context.Background())
	require.Nil(t, err)
	require.Nil(t, tx.Rollback())
}

func TestMemoryConflictInjection(t *testing.T) {
	db := newTestMemoryDB(t, map[string]string{PropertyMemoryConflictPercent: "100"})
	ctx := context.Background()
	tx, err := db.Begin(ctx)
	require.Nil(t, err)
	require.Nil(t, tx.Insert(ctx, tpcc.TableWarehouse, [][]interface{}{warehouseValues(1, "1.00")}))
	err = tx.Commit()
	require.True(t, tpcc.IsTransient(err))

	// read-only transactions never conflict
	withTx(t, db, func(tx tpcc.Tx) {
		var n int64
		_, err := tpcc.QueryRow(ctx, tx, tpcc.StmtCountWarehouses, []interface{}{int64(1), int64(1)}, &n)
		require.Nil(t, err)
		require.Equal(t, int64(0), n)
	})
}
