package workload

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hhkbp2/tpcc"
	"github.com/shopspring/decimal"
)

// checker verifies TPC-C consistency conditions 1, 2, 3, 8 and 9 over the
// warehouse range of a Scaling.
type checker struct {
	scaling    *tpcc.Scaling
	violations []string
}

func newChecker(scaling *tpcc.Scaling) *checker {
	return &checker{scaling: scaling}
}

func (self *checker) violate(format string, args ...interface{}) {
	self.violations = append(self.violations, fmt.Sprintf(format, args...))
}

// Check returns the violations found. The error is set only when the
// database could not be read.
func (self *checker) Check(ctx context.Context, db tpcc.DB) ([]string, error) {
	self.violations = nil
	for w := self.scaling.WarehouseStart(); w <= self.scaling.WarehouseEnd(); w++ {
		tx, err := db.Begin(ctx)
		if err != nil {
			return self.violations, err
		}
		err = self.checkWarehouse(ctx, tx, w)
		tx.Rollback()
		if err != nil {
			return self.violations, err
		}
	}
	tpcc.Debugf("consistency check of warehouses [%d, %d]: %d violations",
		self.scaling.WarehouseStart(), self.scaling.WarehouseEnd(), len(self.violations))
	return self.violations, nil
}

func (self *checker) checkWarehouse(ctx context.Context, tx tpcc.Tx, w int64) error {
	var ytd, districtYTD, history decimal.Decimal
	found, err := tpcc.QueryRow(ctx, tx, tpcc.StmtSelectWarehouseYTD, []interface{}{w}, &ytd)
	if err != nil {
		return err
	}
	if !found {
		self.violate("warehouse %d does not exist", w)
		return nil
	}
	if _, err := tpcc.QueryRow(ctx, tx, tpcc.StmtSumDistrictYTD, []interface{}{w}, &districtYTD); err != nil {
		return err
	}
	if !ytd.Equal(districtYTD) {
		self.violate("condition 1: w_ytd %s of warehouse %d != sum(d_ytd) %s", ytd, w, districtYTD)
	}
	if _, err := tpcc.QueryRow(ctx, tx, tpcc.StmtSumHistoryAmount, []interface{}{w}, &history); err != nil {
		return err
	}
	if !ytd.Equal(history) {
		self.violate("condition 8: w_ytd %s of warehouse %d != sum(h_amount) %s", ytd, w, history)
	}
	for d := int64(1); d <= self.scaling.DistPerWarehouse(); d++ {
		if err := self.checkDistrict(ctx, tx, w, d); err != nil {
			return err
		}
	}
	return nil
}

func (self *checker) checkDistrict(ctx context.Context, tx tpcc.Tx, w, d int64) error {
	var next int64
	found, err := tpcc.QueryRow(ctx, tx, tpcc.StmtSelectDistrictNextOrderID, []interface{}{w, d}, &next)
	if err != nil {
		return err
	}
	if !found {
		self.violate("district %d/%d does not exist", w, d)
		return nil
	}
	var maxOrder sql.NullInt64
	if _, err := tpcc.QueryRow(ctx, tx, tpcc.StmtMaxOrderID, []interface{}{w, d}, &maxOrder); err != nil {
		return err
	}
	if !maxOrder.Valid || maxOrder.Int64 != next-1 {
		self.violate("condition 2: d_next_o_id-1 %d of district %d/%d != max(o_id) %v",
			next-1, w, d, nullInt(maxOrder))
	}
	var maxNew, minNew sql.NullInt64
	var count int64
	if _, err := tpcc.QueryRow(ctx, tx, tpcc.StmtNewOrderStats, []interface{}{w, d},
		&maxNew, &minNew, &count); err != nil {
		return err
	}
	if count > 0 {
		if maxNew.Int64 != next-1 {
			self.violate("condition 2: d_next_o_id-1 %d of district %d/%d != max(no_o_id) %d",
				next-1, w, d, maxNew.Int64)
		}
		if maxNew.Int64-minNew.Int64+1 != count {
			self.violate("condition 3: new orders [%d, %d] of district %d/%d but %d rows",
				minNew.Int64, maxNew.Int64, w, d, count)
		}
	}
	var ytd, history decimal.Decimal
	if _, err := tpcc.QueryRow(ctx, tx, tpcc.StmtSelectDistrictYTD, []interface{}{w, d}, &ytd); err != nil {
		return err
	}
	if _, err := tpcc.QueryRow(ctx, tx, tpcc.StmtSumDistrictHistoryAmount, []interface{}{w, d}, &history); err != nil {
		return err
	}
	if !ytd.Equal(history) {
		self.violate("condition 9: d_ytd %s of district %d/%d != sum(h_amount) %s", ytd, w, d, history)
	}
	return nil
}

func nullInt(v sql.NullInt64) interface{} {
	if !v.Valid {
		return "null"
	}
	return v.Int64
}
