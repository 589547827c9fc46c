package workload

import (
	"context"
	"database/sql"
	"time"

	"github.com/hhkbp2/tpcc"
	"github.com/shopspring/decimal"
)

type orderStatusLine struct {
	itemID    int64
	supplyWID int64
	quantity  int64
	amount    decimal.Decimal
	deliveryD sql.NullTime
}

type orderStatusOutput struct {
	customerID int64
	first      string
	middle     string
	last       string
	balance    decimal.Decimal
	// zero when the customer has no order
	orderID   int64
	entryDate time.Time
	carrierID sql.NullInt64
	lines     []orderStatusLine
}

func (self *tpccRandom) orderStatusInput(w int64, byNamePercent int64) customerSelector {
	return self.customerSelector(w, self.districtID(), byNamePercent)
}

func orderStatus(ctx context.Context, tx tpcc.Tx, in customerSelector) (*orderStatusOutput, error) {
	w, d := in.warehouse, in.district
	c, err := in.resolve(ctx, tx)
	if err != nil {
		return nil, err
	}
	out := &orderStatusOutput{customerID: c}
	found, err := tpcc.QueryRow(ctx, tx, tpcc.StmtSelectCustomer, []interface{}{w, d, c},
		&out.first, &out.middle, &out.last, &out.balance)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, missingRow("customer", w, d, c)
	}
	found, err = tpcc.QueryRow(ctx, tx, tpcc.StmtSelectLastOrder, []interface{}{w, d, c},
		&out.orderID, &out.entryDate, &out.carrierID)
	if err != nil || !found {
		return out, err
	}
	rows, err := tx.Query(ctx, tpcc.StmtSelectOrderLines, w, d, out.orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var l orderStatusLine
		if err := rows.Scan(&l.itemID, &l.supplyWID, &l.quantity, &l.amount, &l.deliveryD); err != nil {
			return nil, err
		}
		out.lines = append(out.lines, l)
	}
	return out, rows.Err()
}

func doOrderStatus(ctx context.Context, db tpcc.DB, r *routine, warehouse int64) error {
	in := r.random.orderStatusInput(warehouse, r.workload.opts.byNamePercent)
	return r.exec.transact(ctx, db, func(ctx context.Context, tx tpcc.Tx) error {
		out, err := orderStatus(ctx, tx, in)
		if err != nil {
			return err
		}
		tpcc.Verbosef("order status of customer %d/%d/%d: order %d with %d lines",
			warehouse, in.district, out.customerID, out.orderID, len(out.lines))
		return nil
	})
}
