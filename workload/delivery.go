package workload

import (
	"context"
	"time"

	"github.com/hhkbp2/tpcc"
	"github.com/shopspring/decimal"
)

type deliveryInput struct {
	warehouse int64
	carrierID int64
	date      time.Time
}

type deliveryOutput struct {
	// delivered order per district, 0 for a skipped district
	orders  []int64
	skipped int
}

func (self *tpccRandom) deliveryInput(w int64) *deliveryInput {
	return &deliveryInput{
		warehouse: w,
		carrierID: self.uniform(1, 10),
		date:      time.Now(),
	}
}

// deliverDistrict delivers the oldest undelivered order of district d and
// returns its id, or 0 when the district has none.
func deliverDistrict(ctx context.Context, tx tpcc.Tx, in *deliveryInput, d int64) (int64, error) {
	w := in.warehouse
	var o int64
	found, err := tpcc.QueryRow(ctx, tx, tpcc.StmtSelectOldestNewOrder, []interface{}{w, d}, &o)
	if err != nil || !found {
		return 0, err
	}
	n, err := tx.Exec(ctx, tpcc.StmtDeleteNewOrder, w, d, o)
	if err != nil {
		return 0, err
	}
	if n == 0 {
		// delivered concurrently
		return 0, nil
	}
	var c int64
	found, err = tpcc.QueryRow(ctx, tx, tpcc.StmtSelectOrder, []interface{}{w, d, o}, &c)
	if err != nil {
		return 0, err
	}
	if !found {
		return 0, missingRow("order", w, d, o)
	}
	if _, err := tx.Exec(ctx, tpcc.StmtUpdateOrderCarrier, in.carrierID, w, d, o); err != nil {
		return 0, err
	}
	if _, err := tx.Exec(ctx, tpcc.StmtUpdateOrderLineDelivery, in.date, w, d, o); err != nil {
		return 0, err
	}
	if _, err := tx.Exec(ctx, tpcc.StmtPriceOrderLines, w, d, o); err != nil {
		return 0, err
	}
	var total decimal.Decimal
	if _, err := tpcc.QueryRow(ctx, tx, tpcc.StmtSumOrderLineAmount, []interface{}{w, d, o}, &total); err != nil {
		return 0, err
	}
	n, err = tx.Exec(ctx, tpcc.StmtUpdateCustomerDelivery, total, w, d, c)
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, missingRow("customer", w, d, c)
	}
	return o, nil
}

func (self *deliveryOutput) record(w, d, o int64) {
	self.orders[d-1] = o
	if o == 0 {
		self.skipped++
		tpcc.Debugf("delivery skipped district %d/%d without new orders", w, d)
	}
}

// delivery delivers one order per district of the warehouse, committing
// once per warehouse or once per district.
func delivery(ctx context.Context, db tpcc.DB, exec *executor, in *deliveryInput,
	scaling *tpcc.Scaling, unit string) (*deliveryOutput, error) {

	districts := scaling.DistPerWarehouse()
	out := &deliveryOutput{}
	reset := func() {
		out.orders = make([]int64, districts)
		out.skipped = 0
	}
	reset()
	if unit == DeliveryByDistrict {
		for d := int64(1); d <= districts; d++ {
			var o int64
			err := exec.transact(ctx, db, func(ctx context.Context, tx tpcc.Tx) error {
				var err error
				o, err = deliverDistrict(ctx, tx, in, d)
				return err
			})
			if err != nil {
				return out, err
			}
			out.record(in.warehouse, d, o)
		}
		return out, nil
	}
	err := exec.transact(ctx, db, func(ctx context.Context, tx tpcc.Tx) error {
		reset()
		for d := int64(1); d <= districts; d++ {
			o, err := deliverDistrict(ctx, tx, in, d)
			if err != nil {
				return err
			}
			out.record(in.warehouse, d, o)
		}
		return nil
	})
	return out, err
}

func doDelivery(ctx context.Context, db tpcc.DB, r *routine, warehouse int64) error {
	opts := r.workload.opts
	in := r.random.deliveryInput(warehouse)
	out, err := delivery(ctx, db, r.exec, in, opts.scaling, opts.deliveryUnit)
	if err != nil {
		return err
	}
	tpcc.Verbosef("delivery by carrier %d in warehouse %d: %d districts skipped",
		in.carrierID, warehouse, out.skipped)
	return nil
}
