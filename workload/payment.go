package workload

import (
	"context"
	"fmt"
	"time"

	"github.com/hhkbp2/tpcc"
	"github.com/shopspring/decimal"
)

const (
	badCreditDataLen = 500
	// Percent of payments made to the home warehouse of the customer.
	homePaymentPercent = 85
)

type paymentInput struct {
	warehouse int64
	district  int64
	customer  customerSelector
	amount    decimal.Decimal
	date      time.Time
}

type paymentOutput struct {
	customerID int64
	credit     string
	balance    decimal.Decimal
	data       string
}

func (self *tpccRandom) paymentInput(w int64, byNamePercent int64) *paymentInput {
	in := &paymentInput{
		warehouse: w,
		district:  self.districtID(),
		date:      time.Now(),
	}
	cw, cd := w, in.district
	if self.scaling.WarehouseCount() > 1 && !self.percent(homePaymentPercent) {
		cw = self.otherWarehouse(w)
		cd = self.districtID()
	}
	in.customer = self.customerSelector(cw, cd, byNamePercent)
	in.amount = self.money(100, 500000)
	return in
}

func payment(ctx context.Context, tx tpcc.Tx, in *paymentInput) (*paymentOutput, error) {
	w, d := in.warehouse, in.district
	n, err := tx.Exec(ctx, tpcc.StmtUpdateWarehouseYTD, in.amount, w)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, missingRow("warehouse", w)
	}
	var wName, dName, street1, street2, city, state, zip string
	if _, err := tpcc.QueryRow(ctx, tx, tpcc.StmtSelectWarehouse, []interface{}{w},
		&wName, &street1, &street2, &city, &state, &zip); err != nil {
		return nil, err
	}
	n, err = tx.Exec(ctx, tpcc.StmtUpdateDistrictYTD, in.amount, w, d)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, missingRow("district", w, d)
	}
	if _, err := tpcc.QueryRow(ctx, tx, tpcc.StmtSelectDistrict, []interface{}{w, d},
		&dName, &street1, &street2, &city, &state, &zip); err != nil {
		return nil, err
	}

	cw, cd := in.customer.warehouse, in.customer.district
	c, err := in.customer.resolve(ctx, tx)
	if err != nil {
		return nil, err
	}
	out := &paymentOutput{customerID: c}
	var first, middle, last, phone string
	var since time.Time
	var creditLim, discount decimal.Decimal
	found, err := tpcc.QueryRow(ctx, tx, tpcc.StmtCustomerForUpdate, []interface{}{cw, cd, c},
		&first, &middle, &last, &street1, &street2, &city, &state, &zip,
		&phone, &since, &out.credit, &creditLim, &discount, &out.balance)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, missingRow("customer", cw, cd, c)
	}
	out.balance = out.balance.Sub(in.amount)
	if out.credit == badCredit {
		var data string
		if _, err := tpcc.QueryRow(ctx, tx, tpcc.StmtSelectCustomerData, []interface{}{cw, cd, c}, &data); err != nil {
			return nil, err
		}
		data = fmt.Sprintf("%d %d %d %d %d %s|%s", c, cd, cw, d, w, in.amount.StringFixed(2), data)
		if len(data) > badCreditDataLen {
			data = data[:badCreditDataLen]
		}
		out.data = data
		if _, err := tx.Exec(ctx, tpcc.StmtUpdateCustomerBalanceAndData,
			in.amount, in.amount, data, cw, cd, c); err != nil {
			return nil, err
		}
	} else {
		if _, err := tx.Exec(ctx, tpcc.StmtUpdateCustomerBalance, in.amount, in.amount, cw, cd, c); err != nil {
			return nil, err
		}
	}
	if _, err := tx.Exec(ctx, tpcc.StmtInsertHistory,
		c, cd, cw, d, w, in.date, in.amount, wName+"    "+dName); err != nil {
		return nil, err
	}
	return out, nil
}

func doPayment(ctx context.Context, db tpcc.DB, r *routine, warehouse int64) error {
	in := r.random.paymentInput(warehouse, r.workload.opts.byNamePercent)
	return r.exec.transact(ctx, db, func(ctx context.Context, tx tpcc.Tx) error {
		out, err := payment(ctx, tx, in)
		if err != nil {
			return err
		}
		tpcc.Verbosef("payment of %s by customer %d/%d/%d, balance %s",
			in.amount, in.customer.warehouse, in.customer.district, out.customerID, out.balance)
		return nil
	})
}
