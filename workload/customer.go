package workload

import (
	"context"

	"github.com/hhkbp2/tpcc"
)

// customerSelector identifies the customer of a Payment or Order-Status,
// either by id or by last name.
type customerSelector struct {
	warehouse int64
	district  int64
	id        int64
	lastName  string
	byName    bool
}

func (self *tpccRandom) customerSelector(w, d int64, byNamePercent int64) customerSelector {
	s := customerSelector{
		warehouse: w,
		district:  d,
	}
	if self.percent(byNamePercent) {
		s.byName = true
		s.lastName = self.lastName()
	} else {
		s.id = self.customerID()
	}
	return s
}

// resolve returns the customer id. Of the customers sharing the last name,
// sorted by first name, the one at position ceil(n/2) is chosen.
func (self customerSelector) resolve(ctx context.Context, tx tpcc.Tx) (int64, error) {
	if !self.byName {
		return self.id, nil
	}
	rows, err := tx.Query(ctx, tpcc.StmtCustomersByLastName, self.warehouse, self.district, self.lastName)
	if err != nil {
		return 0, err
	}
	defer rows.Close()
	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return 0, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, missingRow("customer named "+self.lastName, self.warehouse, self.district)
	}
	return ids[(len(ids)-1)/2], nil
}
