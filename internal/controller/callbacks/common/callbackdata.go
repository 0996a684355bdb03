package common

import "fmt"

// Callback data вне мастера заказа. Данные мастера см. callbacks/order
const (
	HistoryPage = "myorders_page:" // myorders_page:1
	OrderView   = "order_view:"    // order_view:123
	OrderCancel = "order_cancel:"  // order_cancel:123
	OrderRepeat = "order_repeat:"  // order_repeat:123
	ReviewStart = "review:"        // review:123
	ReviewRate  = "review_rate:"   // review_rate:123:5
	ProfileEdit = "profile_edit:"  // profile_edit:address
	AdminOrder  = "admin_order:"   // admin_order:123
	AdminSet    = "admin_set:"     // admin_set:123:confirmed
	AdminOrders = "admin_orders"
	RecAccept   = "rec:accept"
	RecManual   = "rec:manual"
)

func OrderViewData(id int64) string {
	return fmt.Sprintf("%s%d", OrderView, id)
}

func ReviewRateData(orderID int64, rating int) string {
	return fmt.Sprintf("%s%d:%d", ReviewRate, orderID, rating)
}
