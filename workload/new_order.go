package workload

import (
	"context"
	"time"

	"github.com/hhkbp2/tpcc"
	g "github.com/hhkbp2/tpcc/generator"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

const (
	brandGeneric  = "G"
	brandOriginal = "B"
	// Percent of order lines supplied by a remote warehouse.
	remoteSupplyPercent = 1
)

type orderLineInput struct {
	itemID    int64
	supplyWID int64
	quantity  int64
}

type newOrderInput struct {
	warehouse int64
	district  int64
	customer  int64
	lines     []orderLineInput
	entryDate time.Time
}

func (self *newOrderInput) allLocal() bool {
	for _, l := range self.lines {
		if l.supplyWID != self.warehouse {
			return false
		}
	}
	return true
}

type newOrderLineOutput struct {
	itemName      string
	price         decimal.Decimal
	stockQuantity int64
	brand         string
	amount        decimal.Decimal
}

type newOrderOutput struct {
	orderID  int64
	customer string
	credit   string
	discount decimal.Decimal
	total    decimal.Decimal
	lines    []newOrderLineOutput
}

// newOrderInput draws the input of one New-Order. With rollbackPercent
// chance the last line references the unused item maxItems+1.
func (self *tpccRandom) newOrderInput(w int64, rollbackPercent int64) *newOrderInput {
	in := &newOrderInput{
		warehouse: w,
		district:  self.districtID(),
		customer:  self.customerID(),
		entryDate: time.Now(),
	}
	count := self.uniform(tpcc.MinNumItems, self.scaling.MaxNumItems())
	in.lines = make([]orderLineInput, 0, count)
	for n := int64(0); n < count; n++ {
		l := orderLineInput{
			itemID:    self.itemID(),
			supplyWID: w,
			quantity:  self.uniform(1, 10),
		}
		if self.scaling.WarehouseCount() > 1 && self.percent(remoteSupplyPercent) {
			l.supplyWID = self.otherWarehouse(w)
		}
		in.lines = append(in.lines, l)
	}
	if self.percent(rollbackPercent) {
		in.lines[count-1].itemID = self.scaling.MaxItems() + 1
	}
	return in
}

// stockQuantity is the stock left after ordering quantity; it is refilled
// by 91 when it would drop below 10.
func stockQuantity(current, quantity int64) int64 {
	if current-quantity >= 10 {
		return current - quantity
	}
	return current - quantity + 91
}

func boolValue(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

// newOrder enters the order in tx. An unused item id fails with ErrAborted
// after some of the writes; the caller rolls them back.
func newOrder(ctx context.Context, tx tpcc.Tx, in *newOrderInput) (*newOrderOutput, error) {
	w, d, c := in.warehouse, in.district, in.customer
	var wTax, dTax decimal.Decimal
	found, err := tpcc.QueryRow(ctx, tx, tpcc.StmtWarehouseTax, []interface{}{w}, &wTax)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, missingRow("warehouse", w)
	}
	var o int64
	found, err = tpcc.QueryRow(ctx, tx, tpcc.StmtDistrictForUpdate, []interface{}{w, d}, &dTax, &o)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, missingRow("district", w, d)
	}
	if _, err := tx.Exec(ctx, tpcc.StmtUpdateDistrictNextOrderID, o+1, w, d); err != nil {
		return nil, err
	}
	out := &newOrderOutput{
		orderID: o,
		lines:   make([]newOrderLineOutput, 0, len(in.lines)),
	}
	found, err = tpcc.QueryRow(ctx, tx, tpcc.StmtCustomerDiscount, []interface{}{w, d, c},
		&out.discount, &out.customer, &out.credit)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, missingRow("customer", w, d, c)
	}
	allLocal := boolValue(in.allLocal())
	if _, err := tx.Exec(ctx, tpcc.StmtInsertOrder,
		o, d, w, c, in.entryDate, int64(len(in.lines)), allLocal); err != nil {
		return nil, err
	}
	if _, err := tx.Exec(ctx, tpcc.StmtInsertNewOrder, o, d, w); err != nil {
		return nil, err
	}

	sum := decimal.Zero
	for n, l := range in.lines {
		var line newOrderLineOutput
		var itemData string
		found, err := tpcc.QueryRow(ctx, tx, tpcc.StmtSelectItem, []interface{}{l.itemID},
			&line.price, &line.itemName, &itemData)
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, errors.Wrapf(ErrAborted, "item %d is not used", l.itemID)
		}
		var quantity int64
		var stockData string
		infos := make([]string, 10)
		dest := []interface{}{&quantity, &stockData}
		for i := range infos {
			dest = append(dest, &infos[i])
		}
		found, err = tpcc.QueryRow(ctx, tx, tpcc.StmtStockForUpdate, []interface{}{l.itemID, l.supplyWID}, dest...)
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, missingRow("stock", l.supplyWID, l.itemID)
		}
		line.stockQuantity = stockQuantity(quantity, l.quantity)
		remote := boolValue(l.supplyWID != w)
		if _, err := tx.Exec(ctx, tpcc.StmtUpdateStock,
			line.stockQuantity, l.quantity, remote, l.itemID, l.supplyWID); err != nil {
			return nil, err
		}
		line.brand = brandGeneric
		if g.IsOriginal(itemData) && g.IsOriginal(stockData) {
			line.brand = brandOriginal
		}
		line.amount = line.price.Mul(decimal.NewFromInt(l.quantity))
		if _, err := tx.Exec(ctx, tpcc.StmtInsertOrderLine,
			o, d, w, int64(n+1), l.itemID, l.supplyWID, l.quantity, line.amount, infos[(d-1)%10]); err != nil {
			return nil, err
		}
		sum = sum.Add(line.amount)
		out.lines = append(out.lines, line)
	}
	out.total = sum.
		Mul(decimal.NewFromInt(1).Sub(out.discount)).
		Mul(decimal.NewFromInt(1).Add(wTax).Add(dTax)).
		Round(2)
	return out, nil
}

func doNewOrder(ctx context.Context, db tpcc.DB, r *routine, warehouse int64) error {
	in := r.random.newOrderInput(warehouse, r.workload.opts.rollbackPercent)
	return r.exec.transact(ctx, db, func(ctx context.Context, tx tpcc.Tx) error {
		out, err := newOrder(ctx, tx, in)
		if err != nil {
			return err
		}
		tpcc.Verbosef("new order %d of %d/%d: %d lines, total %s",
			out.orderID, warehouse, in.district, len(out.lines), out.total)
		return nil
	})
}
