package tpcc

// Statement names one parameterized read or write issued by the loader, the
// transaction profiles or the consistency checker. Bindings map every
// statement onto their own implementation; the comments list the positional
// arguments and, for queries, the result columns.
type Statement uint8

const (
	// New-Order
	// (w_id) -> w_tax
	StmtWarehouseTax Statement = 1 + iota
	// (w_id, d_id) -> d_tax, d_next_o_id; locks the district.
	StmtDistrictForUpdate
	// (d_next_o_id, w_id, d_id)
	StmtUpdateDistrictNextOrderID
	// (w_id, d_id, c_id) -> c_discount, c_last, c_credit
	StmtCustomerDiscount
	// (o_id, o_d_id, o_w_id, o_c_id, o_entry_d, o_ol_cnt, o_all_local)
	StmtInsertOrder
	// (no_o_id, no_d_id, no_w_id)
	StmtInsertNewOrder
	// (i_id) -> i_price, i_name, i_data; no row for an unused item id.
	StmtSelectItem
	// (s_i_id, s_w_id) -> s_quantity, s_data, s_dist_01 .. s_dist_10; locks
	// the stock row.
	StmtStockForUpdate
	// (s_quantity, ol_quantity, remote 0|1, s_i_id, s_w_id); bumps s_ytd,
	// s_order_cnt and s_remote_cnt.
	StmtUpdateStock
	// (ol_o_id, ol_d_id, ol_w_id, ol_number, ol_i_id, ol_supply_w_id,
	// ol_quantity, ol_amount, ol_dist_info); ol_delivery_d stays null.
	StmtInsertOrderLine

	// Payment
	// (h_amount, w_id)
	StmtUpdateWarehouseYTD
	// (w_id) -> w_name, w_street_1, w_street_2, w_city, w_state, w_zip
	StmtSelectWarehouse
	// (h_amount, w_id, d_id)
	StmtUpdateDistrictYTD
	// (w_id, d_id) -> d_name, d_street_1, d_street_2, d_city, d_state, d_zip
	StmtSelectDistrict
	// (w_id, d_id, c_last) -> c_id, ordered by c_first
	StmtCustomersByLastName
	// (w_id, d_id, c_id) -> c_first, c_middle, c_last, c_street_1,
	// c_street_2, c_city, c_state, c_zip, c_phone, c_since, c_credit,
	// c_credit_lim, c_discount, c_balance; locks the customer.
	StmtCustomerForUpdate
	// (h_amount, h_amount, w_id, d_id, c_id); balance down, ytd payment up,
	// payment count up.
	StmtUpdateCustomerBalance
	// (w_id, d_id, c_id) -> c_data
	StmtSelectCustomerData
	// (h_amount, h_amount, c_data, w_id, d_id, c_id)
	StmtUpdateCustomerBalanceAndData
	// (h_c_id, h_c_d_id, h_c_w_id, h_d_id, h_w_id, h_date, h_amount, h_data)
	StmtInsertHistory

	// Order-Status
	// (w_id, d_id, c_id) -> c_first, c_middle, c_last, c_balance
	StmtSelectCustomer
	// (w_id, d_id, c_id) -> o_id, o_entry_d, o_carrier_id (nullable); the
	// order with the highest id.
	StmtSelectLastOrder
	// (w_id, d_id, o_id) -> ol_i_id, ol_supply_w_id, ol_quantity, ol_amount,
	// ol_delivery_d (nullable), ordered by ol_number
	StmtSelectOrderLines

	// Delivery
	// (w_id, d_id) -> no_o_id; the lowest undelivered order, locked.
	StmtSelectOldestNewOrder
	// (w_id, d_id, no_o_id)
	StmtDeleteNewOrder
	// (w_id, d_id, o_id) -> o_c_id
	StmtSelectOrder
	// (o_carrier_id, w_id, d_id, o_id)
	StmtUpdateOrderCarrier
	// (ol_delivery_d, w_id, d_id, o_id)
	StmtUpdateOrderLineDelivery
	// (w_id, d_id, o_id); sets ol_amount = ol_quantity * i_price on lines
	// whose amount is zero.
	StmtPriceOrderLines
	// (w_id, d_id, o_id) -> sum(ol_amount)
	StmtSumOrderLineAmount
	// (amount, w_id, d_id, c_id); balance up, delivery count up.
	StmtUpdateCustomerDelivery

	// Stock-Level
	// (w_id, d_id) -> d_next_o_id
	StmtSelectDistrictNextOrderID
	// (w_id, d_id, low o_id inclusive, high o_id exclusive, threshold) ->
	// count of distinct items below the threshold
	StmtCountLowStock

	// Loader
	// (low w_id, high w_id) -> count(*)
	StmtCountWarehouses
	// () -> count(*)
	StmtCountItems

	// Consistency checks
	// (w_id) -> w_ytd
	StmtSelectWarehouseYTD
	// (w_id) -> sum(d_ytd)
	StmtSumDistrictYTD
	// (w_id, d_id) -> d_ytd
	StmtSelectDistrictYTD
	// (w_id, d_id) -> max(o_id) (nullable)
	StmtMaxOrderID
	// (w_id, d_id) -> max(no_o_id) (nullable), min(no_o_id) (nullable),
	// count(*)
	StmtNewOrderStats
	// (w_id) -> sum(h_amount) of the payments to the warehouse
	StmtSumHistoryAmount
	// (w_id, d_id) -> sum(h_amount) of the payments to the district
	StmtSumDistrictHistoryAmount
	// (w_id, d_id, c_id) -> c_balance, c_ytd_payment, c_payment_cnt,
	// c_delivery_cnt
	StmtCustomerPayment
	// (h_c_w_id, h_c_d_id, h_c_id) -> count(*) of the payments by the customer
	StmtCountCustomerHistory

	// keep last
	statementEnd
)

var statementNames = map[Statement]string{
	StmtWarehouseTax:                 "WarehouseTax",
	StmtDistrictForUpdate:            "DistrictForUpdate",
	StmtUpdateDistrictNextOrderID:    "UpdateDistrictNextOrderID",
	StmtCustomerDiscount:             "CustomerDiscount",
	StmtInsertOrder:                  "InsertOrder",
	StmtInsertNewOrder:               "InsertNewOrder",
	StmtSelectItem:                   "SelectItem",
	StmtStockForUpdate:               "StockForUpdate",
	StmtUpdateStock:                  "UpdateStock",
	StmtInsertOrderLine:              "InsertOrderLine",
	StmtUpdateWarehouseYTD:           "UpdateWarehouseYTD",
	StmtSelectWarehouse:              "SelectWarehouse",
	StmtUpdateDistrictYTD:            "UpdateDistrictYTD",
	StmtSelectDistrict:               "SelectDistrict",
	StmtCustomersByLastName:          "CustomersByLastName",
	StmtCustomerForUpdate:            "CustomerForUpdate",
	StmtUpdateCustomerBalance:        "UpdateCustomerBalance",
	StmtSelectCustomerData:           "SelectCustomerData",
	StmtUpdateCustomerBalanceAndData: "UpdateCustomerBalanceAndData",
	StmtInsertHistory:                "InsertHistory",
	StmtSelectCustomer:               "SelectCustomer",
	StmtSelectLastOrder:              "SelectLastOrder",
	StmtSelectOrderLines:             "SelectOrderLines",
	StmtSelectOldestNewOrder:         "SelectOldestNewOrder",
	StmtDeleteNewOrder:               "DeleteNewOrder",
	StmtSelectOrder:                  "SelectOrder",
	StmtUpdateOrderCarrier:           "UpdateOrderCarrier",
	StmtUpdateOrderLineDelivery:      "UpdateOrderLineDelivery",
	StmtPriceOrderLines:              "PriceOrderLines",
	StmtSumOrderLineAmount:           "SumOrderLineAmount",
	StmtUpdateCustomerDelivery:       "UpdateCustomerDelivery",
	StmtSelectDistrictNextOrderID:    "SelectDistrictNextOrderID",
	StmtCountLowStock:                "CountLowStock",
	StmtCountWarehouses:              "CountWarehouses",
	StmtCountItems:                   "CountItems",
	StmtSelectWarehouseYTD:           "SelectWarehouseYTD",
	StmtSumDistrictYTD:               "SumDistrictYTD",
	StmtSelectDistrictYTD:            "SelectDistrictYTD",
	StmtMaxOrderID:                   "MaxOrderID",
	StmtNewOrderStats:                "NewOrderStats",
	StmtSumHistoryAmount:             "SumHistoryAmount",
	StmtSumDistrictHistoryAmount:     "SumDistrictHistoryAmount",
	StmtCustomerPayment:              "CustomerPayment",
	StmtCountCustomerHistory:         "CountCustomerHistory",
}

func (self Statement) String() string {
	if name, ok := statementNames[self]; ok {
		return name
	}
	return "UNKNOWN_STATEMENT"
}

// AllStatements lists every statement, in declaration order.
func AllStatements() []Statement {
	ret := make([]Statement, 0, int(statementEnd)-1)
	for s := StmtWarehouseTax; s < statementEnd; s++ {
		ret = append(ret, s)
	}
	return ret
}
