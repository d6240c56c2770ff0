package enum

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusPaid       OrderStatus = "paid"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusFailed     OrderStatus = "failed"
)

func (orderStatus OrderStatus) String() string {
	return string(orderStatus)
}

func GetOrderStatus(s string) OrderStatus {
	return OrderStatus(s)
}
