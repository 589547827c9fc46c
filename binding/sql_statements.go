package binding

import (
	"github.com/hhkbp2/tpcc"
	"github.com/jmoiron/sqlx"
)

// sqlStatements holds the text of every statement with `?` placeholders.
// Bindings for `$n` dialects rebind them once at Init.
var sqlStatements = map[tpcc.Statement]string{
	tpcc.StmtWarehouseTax: `SELECT w_tax FROM warehouse WHERE w_id = ?`,
	tpcc.StmtDistrictForUpdate: `SELECT d_tax, d_next_o_id FROM district ` +
		`WHERE d_w_id = ? AND d_id = ? FOR UPDATE`,
	tpcc.StmtUpdateDistrictNextOrderID: `UPDATE district SET d_next_o_id = ? ` +
		`WHERE d_w_id = ? AND d_id = ?`,
	tpcc.StmtCustomerDiscount: `SELECT c_discount, c_last, c_credit FROM customer ` +
		`WHERE c_w_id = ? AND c_d_id = ? AND c_id = ?`,
	tpcc.StmtInsertOrder: `INSERT INTO orders ` +
		`(o_id, o_d_id, o_w_id, o_c_id, o_entry_d, o_ol_cnt, o_all_local) ` +
		`VALUES (?, ?, ?, ?, ?, ?, ?)`,
	tpcc.StmtInsertNewOrder: `INSERT INTO new_order (no_o_id, no_d_id, no_w_id) VALUES (?, ?, ?)`,
	tpcc.StmtSelectItem:     `SELECT i_price, i_name, i_data FROM item WHERE i_id = ?`,
	tpcc.StmtStockForUpdate: `SELECT s_quantity, s_data, s_dist_01, s_dist_02, s_dist_03, ` +
		`s_dist_04, s_dist_05, s_dist_06, s_dist_07, s_dist_08, s_dist_09, s_dist_10 ` +
		`FROM stock WHERE s_i_id = ? AND s_w_id = ? FOR UPDATE`,
	tpcc.StmtUpdateStock: `UPDATE stock SET s_quantity = ?, s_ytd = s_ytd + ?, ` +
		`s_order_cnt = s_order_cnt + 1, s_remote_cnt = s_remote_cnt + ? ` +
		`WHERE s_i_id = ? AND s_w_id = ?`,
	tpcc.StmtInsertOrderLine: `INSERT INTO order_line ` +
		`(ol_o_id, ol_d_id, ol_w_id, ol_number, ol_i_id, ol_supply_w_id, ` +
		`ol_quantity, ol_amount, ol_dist_info) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,

	tpcc.StmtUpdateWarehouseYTD: `UPDATE warehouse SET w_ytd = w_ytd + ? WHERE w_id = ?`,
	tpcc.StmtSelectWarehouse: `SELECT w_name, w_street_1, w_street_2, w_city, w_state, w_zip ` +
		`FROM warehouse WHERE w_id = ?`,
	tpcc.StmtUpdateDistrictYTD: `UPDATE district SET d_ytd = d_ytd + ? WHERE d_w_id = ? AND d_id = ?`,
	tpcc.StmtSelectDistrict: `SELECT d_name, d_street_1, d_street_2, d_city, d_state, d_zip ` +
		`FROM district WHERE d_w_id = ? AND d_id = ?`,
	tpcc.StmtCustomersByLastName: `SELECT c_id FROM customer ` +
		`WHERE c_w_id = ? AND c_d_id = ? AND c_last = ? ORDER BY c_first, c_id`,
	tpcc.StmtCustomerForUpdate: `SELECT c_first, c_middle, c_last, c_street_1, c_street_2, ` +
		`c_city, c_state, c_zip, c_phone, c_since, c_credit, c_credit_lim, c_discount, ` +
		`c_balance FROM customer WHERE c_w_id = ? AND c_d_id = ? AND c_id = ? FOR UPDATE`,
	tpcc.StmtUpdateCustomerBalance: `UPDATE customer SET c_balance = c_balance - ?, ` +
		`c_ytd_payment = c_ytd_payment + ?, c_payment_cnt = c_payment_cnt + 1 ` +
		`WHERE c_w_id = ? AND c_d_id = ? AND c_id = ?`,
	tpcc.StmtSelectCustomerData: `SELECT c_data FROM customer ` +
		`WHERE c_w_id = ? AND c_d_id = ? AND c_id = ?`,
	tpcc.StmtUpdateCustomerBalanceAndData: `UPDATE customer SET c_balance = c_balance - ?, ` +
		`c_ytd_payment = c_ytd_payment + ?, c_payment_cnt = c_payment_cnt + 1, c_data = ? ` +
		`WHERE c_w_id = ? AND c_d_id = ? AND c_id = ?`,
	tpcc.StmtInsertHistory: `INSERT INTO history ` +
		`(h_c_id, h_c_d_id, h_c_w_id, h_d_id, h_w_id, h_date, h_amount, h_data) ` +
		`VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,

	tpcc.StmtSelectCustomer: `SELECT c_first, c_middle, c_last, c_balance FROM customer ` +
		`WHERE c_w_id = ? AND c_d_id = ? AND c_id = ?`,
	tpcc.StmtSelectLastOrder: `SELECT o_id, o_entry_d, o_carrier_id FROM orders ` +
		`WHERE o_w_id = ? AND o_d_id = ? AND o_c_id = ? ORDER BY o_id DESC LIMIT 1`,
	tpcc.StmtSelectOrderLines: `SELECT ol_i_id, ol_supply_w_id, ol_quantity, ol_amount, ` +
		`ol_delivery_d FROM order_line WHERE ol_w_id = ? AND ol_d_id = ? AND ol_o_id = ? ` +
		`ORDER BY ol_number`,

	tpcc.StmtSelectOldestNewOrder: `SELECT no_o_id FROM new_order ` +
		`WHERE no_w_id = ? AND no_d_id = ? ORDER BY no_o_id LIMIT 1 FOR UPDATE`,
	tpcc.StmtDeleteNewOrder: `DELETE FROM new_order ` +
		`WHERE no_w_id = ? AND no_d_id = ? AND no_o_id = ?`,
	tpcc.StmtSelectOrder: `SELECT o_c_id FROM orders ` +
		`WHERE o_w_id = ? AND o_d_id = ? AND o_id = ?`,
	tpcc.StmtUpdateOrderCarrier: `UPDATE orders SET o_carrier_id = ? ` +
		`WHERE o_w_id = ? AND o_d_id = ? AND o_id = ?`,
	tpcc.StmtUpdateOrderLineDelivery: `UPDATE order_line SET ol_delivery_d = ? ` +
		`WHERE ol_w_id = ? AND ol_d_id = ? AND ol_o_id = ?`,
	tpcc.StmtPriceOrderLines: `UPDATE order_line ` +
		`SET ol_amount = ol_quantity * (SELECT i_price FROM item WHERE i_id = ol_i_id) ` +
		`WHERE ol_w_id = ? AND ol_d_id = ? AND ol_o_id = ? AND ol_amount = 0`,
	tpcc.StmtSumOrderLineAmount: `SELECT COALESCE(SUM(ol_amount), 0) FROM order_line ` +
		`WHERE ol_w_id = ? AND ol_d_id = ? AND ol_o_id = ?`,
	tpcc.StmtUpdateCustomerDelivery: `UPDATE customer SET c_balance = c_balance + ?, ` +
		`c_delivery_cnt = c_delivery_cnt + 1 WHERE c_w_id = ? AND c_d_id = ? AND c_id = ?`,

	tpcc.StmtSelectDistrictNextOrderID: `SELECT d_next_o_id FROM district ` +
		`WHERE d_w_id = ? AND d_id = ?`,
	tpcc.StmtCountLowStock: `SELECT COUNT(DISTINCT s.s_i_id) FROM order_line ol ` +
		`JOIN stock s ON s.s_i_id = ol.ol_i_id AND s.s_w_id = ol.ol_w_id ` +
		`WHERE ol.ol_w_id = ? AND ol.ol_d_id = ? AND ol.ol_o_id >= ? AND ol.ol_o_id < ? ` +
		`AND s.s_quantity < ?`,

	tpcc.StmtCountWarehouses: `SELECT COUNT(*) FROM warehouse WHERE w_id BETWEEN ? AND ?`,
	tpcc.StmtCountItems:      `SELECT COUNT(*) FROM item`,

	tpcc.StmtSelectWarehouseYTD: `SELECT w_ytd FROM warehouse WHERE w_id = ?`,
	tpcc.StmtSumDistrictYTD:     `SELECT COALESCE(SUM(d_ytd), 0) FROM district WHERE d_w_id = ?`,
	tpcc.StmtSelectDistrictYTD:  `SELECT d_ytd FROM district WHERE d_w_id = ? AND d_id = ?`,
	tpcc.StmtMaxOrderID:         `SELECT MAX(o_id) FROM orders WHERE o_w_id = ? AND o_d_id = ?`,
	tpcc.StmtNewOrderStats: `SELECT MAX(no_o_id), MIN(no_o_id), COUNT(*) FROM new_order ` +
		`WHERE no_w_id = ? AND no_d_id = ?`,
	tpcc.StmtSumHistoryAmount: `SELECT COALESCE(SUM(h_amount), 0) FROM history WHERE h_w_id = ?`,
	tpcc.StmtSumDistrictHistoryAmount: `SELECT COALESCE(SUM(h_amount), 0) FROM history ` +
		`WHERE h_w_id = ? AND h_d_id = ?`,
	tpcc.StmtCustomerPayment: `SELECT c_balance, c_ytd_payment, c_payment_cnt, c_delivery_cnt ` +
		`FROM customer WHERE c_w_id = ? AND c_d_id = ? AND c_id = ?`,
	tpcc.StmtCountCustomerHistory: `SELECT COUNT(*) FROM history ` +
		`WHERE h_c_w_id = ? AND h_c_d_id = ? AND h_c_id = ?`,
}

// boundStatements returns the statement texts in the placeholder style of
// driverName.
func boundStatements(driverName string) map[tpcc.Statement]string {
	bindType := sqlx.BindType(driverName)
	ret := make(map[tpcc.Statement]string, len(sqlStatements))
	for stmt, query := range sqlStatements {
		if bindType == sqlx.QUESTION {
			ret[stmt] = query
		} else {
			ret[stmt] = sqlx.Rebind(bindType, query)
		}
	}
	return ret
}
