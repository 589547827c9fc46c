package binding

import (
	"sort"

	"github.com/hhkbp2/tpcc"
	g "github.com/hhkbp2/tpcc/generator"
	"github.com/shopspring/decimal"
)

func duplicateKey(table string, key interface{}) error {
	return tpcc.NewFatalError(g.NewErrorf("duplicate key in %s: %v", table, key))
}

func (self *memoryTx) touchWarehouse(r *warehouseRow) {
	old := *r
	self.onRollback(func() { *r = old })
}

func (self *memoryTx) touchDistrict(r *districtRow) {
	old := *r
	self.onRollback(func() { *r = old })
}

func (self *memoryTx) touchCustomer(r *customerRow) {
	old := *r
	self.onRollback(func() { *r = old })
}

func (self *memoryTx) touchOrder(r *orderRow) {
	old := *r
	self.onRollback(func() { *r = old })
}

func (self *memoryTx) touchOrderLine(r *orderLineRow) {
	old := *r
	self.onRollback(func() { *r = old })
}

func (self *memoryTx) touchStock(r *stockRow) {
	old := *r
	self.onRollback(func() { *r = old })
}

func (self *memoryTx) putWarehouse(r *warehouseRow) error {
	s := self.store
	if _, ok := s.warehouses[r.id]; ok {
		return duplicateKey(tpcc.TableWarehouse.Name, r.id)
	}
	s.warehouses[r.id] = r
	self.onRollback(func() { delete(s.warehouses, r.id) })
	return nil
}

func (self *memoryTx) putDistrict(r *districtRow) error {
	s := self.store
	k := districtKey{r.wID, r.id}
	if _, ok := s.districts[k]; ok {
		return duplicateKey(tpcc.TableDistrict.Name, k)
	}
	s.districts[k] = r
	self.onRollback(func() { delete(s.districts, k) })
	return nil
}

func (self *memoryTx) putCustomer(r *customerRow) error {
	s := self.store
	k := customerKey{r.wID, r.dID, r.id}
	if _, ok := s.customers[k]; ok {
		return duplicateKey(tpcc.TableCustomer.Name, k)
	}
	s.customers[k] = r
	nk := lastNameKey{r.wID, r.dID, r.last}
	old, had := s.byLastName[nk]
	s.byLastName[nk] = append(old, r)
	self.onRollback(func() {
		delete(s.customers, k)
		if had {
			s.byLastName[nk] = old
		} else {
			delete(s.byLastName, nk)
		}
	})
	return nil
}

func (self *memoryTx) putHistory(r *historyRow) {
	s := self.store
	n := len(s.history)
	s.history = append(s.history, r)
	self.onRollback(func() { s.history = s.history[:n] })
}

func (self *memoryTx) putOrder(r *orderRow) error {
	s := self.store
	k := orderKey{r.wID, r.dID, r.id}
	if _, ok := s.orders[k]; ok {
		return duplicateKey(tpcc.TableOrder.Name, k)
	}
	s.orders[k] = r
	ck := customerKey{r.wID, r.dID, r.cID}
	dk := districtKey{r.wID, r.dID}
	oldLast, hadLast := s.lastOrder[ck]
	oldMax, hadMax := s.maxOrder[dk]
	if !hadLast || r.id > oldLast {
		s.lastOrder[ck] = r.id
	}
	if !hadMax || r.id > oldMax {
		s.maxOrder[dk] = r.id
	}
	self.onRollback(func() {
		delete(s.orders, k)
		if hadLast {
			s.lastOrder[ck] = oldLast
		} else {
			delete(s.lastOrder, ck)
		}
		if hadMax {
			s.maxOrder[dk] = oldMax
		} else {
			delete(s.maxOrder, dk)
		}
	})
	return nil
}

// New-Order ids of a district are kept sorted. Slices are never modified in
// place below their length, so undo only restores the slice header.
func (self *memoryTx) putNewOrder(w, d, o int64) error {
	s := self.store
	k := districtKey{w, d}
	old, had := s.newOrders[k]
	i := sort.Search(len(old), func(i int) bool { return old[i] >= o })
	if i < len(old) && old[i] == o {
		return duplicateKey(tpcc.TableNewOrder.Name, orderKey{w, d, o})
	}
	var updated []int64
	if i == len(old) {
		updated = append(old, o)
	} else {
		updated = make([]int64, 0, len(old)+1)
		updated = append(updated, old[:i]...)
		updated = append(updated, o)
		updated = append(updated, old[i:]...)
	}
	s.newOrders[k] = updated
	self.onRollback(func() {
		if had {
			s.newOrders[k] = old
		} else {
			delete(s.newOrders, k)
		}
	})
	return nil
}

func (self *memoryTx) deleteNewOrder(w, d, o int64) int64 {
	s := self.store
	k := districtKey{w, d}
	old := s.newOrders[k]
	i := sort.Search(len(old), func(i int) bool { return old[i] >= o })
	if i == len(old) || old[i] != o {
		return 0
	}
	if i == 0 {
		s.newOrders[k] = old[1:]
	} else {
		updated := make([]int64, 0, len(old)-1)
		updated = append(updated, old[:i]...)
		updated = append(updated, old[i+1:]...)
		s.newOrders[k] = updated
	}
	self.onRollback(func() { s.newOrders[k] = old })
	return 1
}

func (self *memoryTx) putOrderLine(r *orderLineRow) error {
	s := self.store
	k := orderKey{r.wID, r.dID, r.oID}
	old, had := s.orderLines[k]
	for _, l := range old {
		if l.number == r.number {
			return duplicateKey(tpcc.TableOrderLine.Name, []int64{r.wID, r.dID, r.oID, r.number})
		}
	}
	s.orderLines[k] = append(old, r)
	self.onRollback(func() {
		if had {
			s.orderLines[k] = old
		} else {
			delete(s.orderLines, k)
		}
	})
	return nil
}

func (self *memoryTx) putItem(r *itemRow) error {
	s := self.store
	if _, ok := s.items[r.id]; ok {
		return duplicateKey(tpcc.TableItem.Name, r.id)
	}
	s.items[r.id] = r
	self.onRollback(func() { delete(s.items, r.id) })
	return nil
}

func (self *memoryTx) putStock(r *stockRow) error {
	s := self.store
	k := stockKey{r.wID, r.iID}
	if _, ok := s.stock[k]; ok {
		return duplicateKey(tpcc.TableStock.Name, k)
	}
	s.stock[k] = r
	self.onRollback(func() { delete(s.stock, k) })
	return nil
}

func (self *memoryTx) insertRow(table *tpcc.Table, row []interface{}) error {
	a := newArgReader("insert "+table.Name, row, len(table.Columns))
	switch table {
	case tpcc.TableWarehouse:
		r := &warehouseRow{
			id: a.Int(0), name: a.String(1), street1: a.String(2), street2: a.String(3),
			city: a.String(4), state: a.String(5), zip: a.String(6), tax: a.Decimal(7), ytd: a.Decimal(8),
		}
		if err := a.Err(); err != nil {
			return err
		}
		return self.putWarehouse(r)
	case tpcc.TableDistrict:
		r := &districtRow{
			id: a.Int(0), wID: a.Int(1), name: a.String(2), street1: a.String(3), street2: a.String(4),
			city: a.String(5), state: a.String(6), zip: a.String(7), tax: a.Decimal(8), ytd: a.Decimal(9),
			nextOID: a.Int(10),
		}
		if err := a.Err(); err != nil {
			return err
		}
		return self.putDistrict(r)
	case tpcc.TableCustomer:
		r := &customerRow{
			id: a.Int(0), dID: a.Int(1), wID: a.Int(2), first: a.String(3), middle: a.String(4), last: a.String(5),
			street1: a.String(6), street2: a.String(7), city: a.String(8), state: a.String(9), zip: a.String(10),
			phone: a.String(11), since: a.Time(12), credit: a.String(13), creditLim: a.Decimal(14),
			discount: a.Decimal(15), balance: a.Decimal(16), ytdPayment: a.Decimal(17), paymentCnt: a.Int(18),
			deliveryCnt: a.Int(19), data: a.String(20),
		}
		if err := a.Err(); err != nil {
			return err
		}
		return self.putCustomer(r)
	case tpcc.TableHistory:
		r := &historyRow{
			cID: a.Int(0), cDID: a.Int(1), cWID: a.Int(2), dID: a.Int(3), wID: a.Int(4),
			date: a.Time(5), amount: a.Decimal(6), data: a.String(7),
		}
		if err := a.Err(); err != nil {
			return err
		}
		self.putHistory(r)
		return nil
	case tpcc.TableOrder:
		r := &orderRow{
			id: a.Int(0), dID: a.Int(1), wID: a.Int(2), cID: a.Int(3), entryD: a.Time(4),
			carrierID: a.NullInt(5), olCnt: a.Int(6), allLocal: a.Int(7),
		}
		if err := a.Err(); err != nil {
			return err
		}
		return self.putOrder(r)
	case tpcc.TableNewOrder:
		o, d, w := a.Int(0), a.Int(1), a.Int(2)
		if err := a.Err(); err != nil {
			return err
		}
		return self.putNewOrder(w, d, o)
	case tpcc.TableOrderLine:
		r := &orderLineRow{
			oID: a.Int(0), dID: a.Int(1), wID: a.Int(2), number: a.Int(3), iID: a.Int(4),
			supplyWID: a.Int(5), deliveryD: a.NullTime(6), quantity: a.Int(7), amount: a.Decimal(8),
			distInfo: a.String(9),
		}
		if err := a.Err(); err != nil {
			return err
		}
		return self.putOrderLine(r)
	case tpcc.TableItem:
		r := &itemRow{
			id: a.Int(0), imID: a.Int(1), name: a.String(2), price: a.Decimal(3), data: a.String(4),
		}
		if err := a.Err(); err != nil {
			return err
		}
		return self.putItem(r)
	case tpcc.TableStock:
		r := &stockRow{
			iID: a.Int(0), wID: a.Int(1), quantity: a.Int(2),
			ytd: a.Int(13), orderCnt: a.Int(14), remoteCnt: a.Int(15), data: a.String(16),
		}
		for i := 0; i < 10; i++ {
			r.dist[i] = a.String(3 + i)
		}
		if err := a.Err(); err != nil {
			return err
		}
		return self.putStock(r)
	default:
		return tpcc.NewFatalError(g.NewErrorf("unknown table %s", table.Name))
	}
}

func one(values ...interface{}) [][]interface{} {
	return [][]interface{}{values}
}

func affected(ok bool) int64 {
	if ok {
		return 1
	}
	return 0
}

// run executes one statement natively. A missing row yields no rows for a
// query and zero affected rows for an update, as a SQL database would.
func (self *memoryTx) run(stmt tpcc.Statement, args []interface{}) ([][]interface{}, int64, error) {
	s := self.store
	switch stmt {
	case tpcc.StmtWarehouseTax, tpcc.StmtSelectWarehouse, tpcc.StmtSelectWarehouseYTD:
		a := newArgReader(stmt.String(), args, 1)
		w := a.Int(0)
		if err := a.Err(); err != nil {
			return nil, 0, err
		}
		r, ok := s.warehouses[w]
		if !ok {
			return nil, 0, nil
		}
		switch stmt {
		case tpcc.StmtWarehouseTax:
			return one(r.tax), 0, nil
		case tpcc.StmtSelectWarehouse:
			return one(r.name, r.street1, r.street2, r.city, r.state, r.zip), 0, nil
		default:
			return one(r.ytd), 0, nil
		}

	case tpcc.StmtDistrictForUpdate, tpcc.StmtSelectDistrict, tpcc.StmtSelectDistrictNextOrderID,
		tpcc.StmtSelectDistrictYTD:
		a := newArgReader(stmt.String(), args, 2)
		k := districtKey{a.Int(0), a.Int(1)}
		if err := a.Err(); err != nil {
			return nil, 0, err
		}
		r, ok := s.districts[k]
		if !ok {
			return nil, 0, nil
		}
		switch stmt {
		case tpcc.StmtDistrictForUpdate:
			return one(r.tax, r.nextOID), 0, nil
		case tpcc.StmtSelectDistrict:
			return one(r.name, r.street1, r.street2, r.city, r.state, r.zip), 0, nil
		case tpcc.StmtSelectDistrictYTD:
			return one(r.ytd), 0, nil
		default:
			return one(r.nextOID), 0, nil
		}

	case tpcc.StmtUpdateDistrictNextOrderID:
		a := newArgReader(stmt.String(), args, 3)
		next, k := a.Int(0), districtKey{a.Int(1), a.Int(2)}
		if err := a.Err(); err != nil {
			return nil, 0, err
		}
		r, ok := s.districts[k]
		if ok {
			self.touchDistrict(r)
			r.nextOID = next
		}
		return nil, affected(ok), nil

	case tpcc.StmtCustomerDiscount, tpcc.StmtCustomerForUpdate, tpcc.StmtSelectCustomerData,
		tpcc.StmtSelectCustomer, tpcc.StmtCustomerPayment:
		a := newArgReader(stmt.String(), args, 3)
		k := customerKey{a.Int(0), a.Int(1), a.Int(2)}
		if err := a.Err(); err != nil {
			return nil, 0, err
		}
		r, ok := s.customers[k]
		if !ok {
			return nil, 0, nil
		}
		switch stmt {
		case tpcc.StmtCustomerDiscount:
			return one(r.discount, r.last, r.credit), 0, nil
		case tpcc.StmtCustomerForUpdate:
			return one(r.first, r.middle, r.last, r.street1, r.street2, r.city, r.state, r.zip,
				r.phone, r.since, r.credit, r.creditLim, r.discount, r.balance), 0, nil
		case tpcc.StmtSelectCustomerData:
			return one(r.data), 0, nil
		case tpcc.StmtCustomerPayment:
			return one(r.balance, r.ytdPayment, r.paymentCnt, r.deliveryCnt), 0, nil
		default:
			return one(r.first, r.middle, r.last, r.balance), 0, nil
		}

	case tpcc.StmtInsertOrder:
		a := newArgReader(stmt.String(), args, 7)
		r := &orderRow{
			id: a.Int(0), dID: a.Int(1), wID: a.Int(2), cID: a.Int(3), entryD: a.Time(4),
			olCnt: a.Int(5), allLocal: a.Int(6),
		}
		if err := a.Err(); err != nil {
			return nil, 0, err
		}
		return nil, 1, self.putOrder(r)

	case tpcc.StmtInsertNewOrder:
		a := newArgReader(stmt.String(), args, 3)
		o, d, w := a.Int(0), a.Int(1), a.Int(2)
		if err := a.Err(); err != nil {
			return nil, 0, err
		}
		return nil, 1, self.putNewOrder(w, d, o)

	case tpcc.StmtSelectItem:
		a := newArgReader(stmt.String(), args, 1)
		i := a.Int(0)
		if err := a.Err(); err != nil {
			return nil, 0, err
		}
		r, ok := s.items[i]
		if !ok {
			return nil, 0, nil
		}
		return one(r.price, r.name, r.data), 0, nil

	case tpcc.StmtStockForUpdate:
		a := newArgReader(stmt.String(), args, 2)
		k := stockKey{a.Int(1), a.Int(0)}
		if err := a.Err(); err != nil {
			return nil, 0, err
		}
		r, ok := s.stock[k]
		if !ok {
			return nil, 0, nil
		}
		row := []interface{}{r.quantity, r.data}
		for _, d := range r.dist {
			row = append(row, d)
		}
		return [][]interface{}{row}, 0, nil

	case tpcc.StmtUpdateStock:
		a := newArgReader(stmt.String(), args, 5)
		quantity, olQuantity, remote := a.Int(0), a.Int(1), a.Int(2)
		k := stockKey{a.Int(4), a.Int(3)}
		if err := a.Err(); err != nil {
			return nil, 0, err
		}
		r, ok := s.stock[k]
		if ok {
			self.touchStock(r)
			r.quantity = quantity
			r.ytd += olQuantity
			r.orderCnt++
			r.remoteCnt += remote
		}
		return nil, affected(ok), nil

	case tpcc.StmtInsertOrderLine:
		a := newArgReader(stmt.String(), args, 9)
		r := &orderLineRow{
			oID: a.Int(0), dID: a.Int(1), wID: a.Int(2), number: a.Int(3), iID: a.Int(4),
			supplyWID: a.Int(5), quantity: a.Int(6), amount: a.Decimal(7), distInfo: a.String(8),
		}
		if err := a.Err(); err != nil {
			return nil, 0, err
		}
		return nil, 1, self.putOrderLine(r)

	case tpcc.StmtUpdateWarehouseYTD:
		a := newArgReader(stmt.String(), args, 2)
		amount, w := a.Decimal(0), a.Int(1)
		if err := a.Err(); err != nil {
			return nil, 0, err
		}
		r, ok := s.warehouses[w]
		if ok {
			self.touchWarehouse(r)
			r.ytd = r.ytd.Add(amount)
		}
		return nil, affected(ok), nil

	case tpcc.StmtUpdateDistrictYTD:
		a := newArgReader(stmt.String(), args, 3)
		amount, k := a.Decimal(0), districtKey{a.Int(1), a.Int(2)}
		if err := a.Err(); err != nil {
			return nil, 0, err
		}
		r, ok := s.districts[k]
		if ok {
			self.touchDistrict(r)
			r.ytd = r.ytd.Add(amount)
		}
		return nil, affected(ok), nil

	case tpcc.StmtCustomersByLastName:
		a := newArgReader(stmt.String(), args, 3)
		k := lastNameKey{a.Int(0), a.Int(1), a.String(2)}
		if err := a.Err(); err != nil {
			return nil, 0, err
		}
		matches := append([]*customerRow(nil), s.byLastName[k]...)
		sort.SliceStable(matches, func(i, j int) bool {
			if matches[i].first != matches[j].first {
				return matches[i].first < matches[j].first
			}
			return matches[i].id < matches[j].id
		})
		rows := make([][]interface{}, 0, len(matches))
		for _, c := range matches {
			rows = append(rows, []interface{}{c.id})
		}
		return rows, 0, nil

	case tpcc.StmtUpdateCustomerBalance, tpcc.StmtUpdateCustomerBalanceAndData:
		n := 5
		if stmt == tpcc.StmtUpdateCustomerBalanceAndData {
			n = 6
		}
		a := newArgReader(stmt.String(), args, n)
		balance, ytd := a.Decimal(0), a.Decimal(1)
		var data string
		if n == 6 {
			data = a.String(2)
		}
		k := customerKey{a.Int(n - 3), a.Int(n - 2), a.Int(n - 1)}
		if err := a.Err(); err != nil {
			return nil, 0, err
		}
		r, ok := s.customers[k]
		if ok {
			self.touchCustomer(r)
			r.balance = r.balance.Sub(balance)
			r.ytdPayment = r.ytdPayment.Add(ytd)
			r.paymentCnt++
			if n == 6 {
				r.data = data
			}
		}
		return nil, affected(ok), nil

	case tpcc.StmtInsertHistory:
		a := newArgReader(stmt.String(), args, 8)
		r := &historyRow{
			cID: a.Int(0), cDID: a.Int(1), cWID: a.Int(2), dID: a.Int(3), wID: a.Int(4),
			date: a.Time(5), amount: a.Decimal(6), data: a.String(7),
		}
		if err := a.Err(); err != nil {
			return nil, 0, err
		}
		self.putHistory(r)
		return nil, 1, nil

	case tpcc.StmtSelectLastOrder:
		a := newArgReader(stmt.String(), args, 3)
		ck := customerKey{a.Int(0), a.Int(1), a.Int(2)}
		if err := a.Err(); err != nil {
			return nil, 0, err
		}
		o, ok := s.lastOrder[ck]
		if !ok {
			return nil, 0, nil
		}
		r := s.orders[orderKey{ck.w, ck.d, o}]
		return one(r.id, r.entryD, nullInt64Value(r.carrierID)), 0, nil

	case tpcc.StmtSelectOrderLines:
		a := newArgReader(stmt.String(), args, 3)
		k := orderKey{a.Int(0), a.Int(1), a.Int(2)}
		if err := a.Err(); err != nil {
			return nil, 0, err
		}
		lines := append([]*orderLineRow(nil), s.orderLines[k]...)
		sort.Slice(lines, func(i, j int) bool { return lines[i].number < lines[j].number })
		rows := make([][]interface{}, 0, len(lines))
		for _, l := range lines {
			rows = append(rows, []interface{}{l.iID, l.supplyWID, l.quantity, l.amount, nullTimeValue(l.deliveryD)})
		}
		return rows, 0, nil

	case tpcc.StmtSelectOldestNewOrder:
		a := newArgReader(stmt.String(), args, 2)
		k := districtKey{a.Int(0), a.Int(1)}
		if err := a.Err(); err != nil {
			return nil, 0, err
		}
		ids := s.newOrders[k]
		if len(ids) == 0 {
			return nil, 0, nil
		}
		return one(ids[0]), 0, nil

	case tpcc.StmtDeleteNewOrder:
		a := newArgReader(stmt.String(), args, 3)
		w, d, o := a.Int(0), a.Int(1), a.Int(2)
		if err := a.Err(); err != nil {
			return nil, 0, err
		}
		return nil, self.deleteNewOrder(w, d, o), nil

	case tpcc.StmtSelectOrder:
		a := newArgReader(stmt.String(), args, 3)
		k := orderKey{a.Int(0), a.Int(1), a.Int(2)}
		if err := a.Err(); err != nil {
			return nil, 0, err
		}
		r, ok := s.orders[k]
		if !ok {
			return nil, 0, nil
		}
		return one(r.cID), 0, nil

	case tpcc.StmtUpdateOrderCarrier:
		a := newArgReader(stmt.String(), args, 4)
		carrier, k := a.Int(0), orderKey{a.Int(1), a.Int(2), a.Int(3)}
		if err := a.Err(); err != nil {
			return nil, 0, err
		}
		r, ok := s.orders[k]
		if ok {
			self.touchOrder(r)
			r.carrierID.Int64 = carrier
			r.carrierID.Valid = true
		}
		return nil, affected(ok), nil

	case tpcc.StmtUpdateOrderLineDelivery:
		a := newArgReader(stmt.String(), args, 4)
		date, k := a.Time(0), orderKey{a.Int(1), a.Int(2), a.Int(3)}
		if err := a.Err(); err != nil {
			return nil, 0, err
		}
		lines := s.orderLines[k]
		for _, l := range lines {
			self.touchOrderLine(l)
			l.deliveryD.Time = date
			l.deliveryD.Valid = true
		}
		return nil, int64(len(lines)), nil

	case tpcc.StmtPriceOrderLines:
		a := newArgReader(stmt.String(), args, 3)
		k := orderKey{a.Int(0), a.Int(1), a.Int(2)}
		if err := a.Err(); err != nil {
			return nil, 0, err
		}
		var n int64
		for _, l := range s.orderLines[k] {
			item, ok := s.items[l.iID]
			if !ok || !l.amount.IsZero() {
				continue
			}
			self.touchOrderLine(l)
			l.amount = item.price.Mul(decimal.NewFromInt(l.quantity))
			n++
		}
		return nil, n, nil

	case tpcc.StmtSumOrderLineAmount:
		a := newArgReader(stmt.String(), args, 3)
		k := orderKey{a.Int(0), a.Int(1), a.Int(2)}
		if err := a.Err(); err != nil {
			return nil, 0, err
		}
		sum := decimal.Zero
		for _, l := range s.orderLines[k] {
			sum = sum.Add(l.amount)
		}
		return one(sum), 0, nil

	case tpcc.StmtUpdateCustomerDelivery:
		a := newArgReader(stmt.String(), args, 4)
		amount, k := a.Decimal(0), customerKey{a.Int(1), a.Int(2), a.Int(3)}
		if err := a.Err(); err != nil {
			return nil, 0, err
		}
		r, ok := s.customers[k]
		if ok {
			self.touchCustomer(r)
			r.balance = r.balance.Add(amount)
			r.deliveryCnt++
		}
		return nil, affected(ok), nil

	case tpcc.StmtCountLowStock:
		a := newArgReader(stmt.String(), args, 5)
		w, d, low, high, threshold := a.Int(0), a.Int(1), a.Int(2), a.Int(3), a.Int(4)
		if err := a.Err(); err != nil {
			return nil, 0, err
		}
		seen := make(map[int64]bool)
		for o := low; o < high; o++ {
			for _, l := range s.orderLines[orderKey{w, d, o}] {
				if st, ok := s.stock[stockKey{w, l.iID}]; ok && st.quantity < threshold {
					seen[l.iID] = true
				}
			}
		}
		return one(int64(len(seen))), 0, nil

	case tpcc.StmtCountWarehouses:
		a := newArgReader(stmt.String(), args, 2)
		low, high := a.Int(0), a.Int(1)
		if err := a.Err(); err != nil {
			return nil, 0, err
		}
		var n int64
		for id := range s.warehouses {
			if id >= low && id <= high {
				n++
			}
		}
		return one(n), 0, nil

	case tpcc.StmtCountItems:
		if err := newArgReader(stmt.String(), args, 0).Err(); err != nil {
			return nil, 0, err
		}
		return one(int64(len(s.items))), 0, nil

	case tpcc.StmtSumDistrictYTD:
		a := newArgReader(stmt.String(), args, 1)
		w := a.Int(0)
		if err := a.Err(); err != nil {
			return nil, 0, err
		}
		sum := decimal.Zero
		for k, r := range s.districts {
			if k.w == w {
				sum = sum.Add(r.ytd)
			}
		}
		return one(sum), 0, nil

	case tpcc.StmtMaxOrderID:
		a := newArgReader(stmt.String(), args, 2)
		k := districtKey{a.Int(0), a.Int(1)}
		if err := a.Err(); err != nil {
			return nil, 0, err
		}
		if o, ok := s.maxOrder[k]; ok {
			return one(o), 0, nil
		}
		return one(nil), 0, nil

	case tpcc.StmtNewOrderStats:
		a := newArgReader(stmt.String(), args, 2)
		k := districtKey{a.Int(0), a.Int(1)}
		if err := a.Err(); err != nil {
			return nil, 0, err
		}
		ids := s.newOrders[k]
		if len(ids) == 0 {
			return one(nil, nil, int64(0)), 0, nil
		}
		return one(ids[len(ids)-1], ids[0], int64(len(ids))), 0, nil

	case tpcc.StmtSumHistoryAmount, tpcc.StmtSumDistrictHistoryAmount:
		n := 1
		if stmt == tpcc.StmtSumDistrictHistoryAmount {
			n = 2
		}
		a := newArgReader(stmt.String(), args, n)
		w := a.Int(0)
		var d int64
		if n == 2 {
			d = a.Int(1)
		}
		if err := a.Err(); err != nil {
			return nil, 0, err
		}
		sum := decimal.Zero
		for _, h := range s.history {
			if h.wID == w && (n == 1 || h.dID == d) {
				sum = sum.Add(h.amount)
			}
		}
		return one(sum), 0, nil

	case tpcc.StmtCountCustomerHistory:
		a := newArgReader(stmt.String(), args, 3)
		w, d, c := a.Int(0), a.Int(1), a.Int(2)
		if err := a.Err(); err != nil {
			return nil, 0, err
		}
		var n int64
		for _, h := range s.history {
			if h.cWID == w && h.cDID == d && h.cID == c {
				n++
			}
		}
		return one(n), 0, nil

	default:
		return nil, 0, tpcc.NewFatalError(g.NewErrorf("statement %s is not supported", stmt))
	}
}
