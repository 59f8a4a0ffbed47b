package domain

type OrderStatus string

const (
	OrderPending   OrderStatus = "Pending"
	OrderShipped   OrderStatus = "Shipped"
	OrderDelivered OrderStatus = "Delivered"
)

// Valid reports whether s is one of the three allowed statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderShipped, OrderDelivered:
		return true
	}
	return false
}

// Statuses lists the allowed statuses in lifecycle order. The enumeration
// constrains values only; any status may be set to any other.
func Statuses() []OrderStatus {
	return []OrderStatus{OrderPending, OrderShipped, OrderDelivered}
}

type Order struct {
	ID           int64       `json:"id"`
	CustomerName string      `json:"customer_name"`
	OrderDate    Date        `json:"order_date"`
	TotalAmount  float64     `json:"total_amount"`
	Status       OrderStatus `json:"status"`
}
