package workload

import (
	"context"

	"github.com/hhkbp2/tpcc"
)

// Number of recent orders of a district examined by Stock-Level.
const stockLevelOrders = 20

type stockLevelInput struct {
	warehouse int64
	district  int64
	threshold int64
}

func (self *tpccRandom) stockLevelInput(w int64) *stockLevelInput {
	return &stockLevelInput{
		warehouse: w,
		district:  self.districtID(),
		threshold: self.uniform(10, 20),
	}
}

// stockLevel counts the distinct items of the recent orders of the district
// whose stock is below the threshold.
func stockLevel(ctx context.Context, tx tpcc.Tx, in *stockLevelInput) (int64, error) {
	w, d := in.warehouse, in.district
	var next int64
	found, err := tpcc.QueryRow(ctx, tx, tpcc.StmtSelectDistrictNextOrderID, []interface{}{w, d}, &next)
	if err != nil {
		return 0, err
	}
	if !found {
		return 0, missingRow("district", w, d)
	}
	var count int64
	if _, err := tpcc.QueryRow(ctx, tx, tpcc.StmtCountLowStock,
		[]interface{}{w, d, next - stockLevelOrders, next, in.threshold}, &count); err != nil {
		return 0, err
	}
	return count, nil
}

func doStockLevel(ctx context.Context, db tpcc.DB, r *routine, warehouse int64) error {
	in := r.random.stockLevelInput(warehouse)
	return r.exec.transact(ctx, db, func(ctx context.Context, tx tpcc.Tx) error {
		count, err := stockLevel(ctx, tx, in)
		if err != nil {
			return err
		}
		tpcc.Verbosef("stock level of %d/%d below %d: %d", warehouse, in.district, in.threshold, count)
		return nil
	})
}
