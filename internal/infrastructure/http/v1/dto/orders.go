package dto

// OrderLineRequest is one ordered produce line.
type OrderLineRequest struct {
	Code     string  `json:"code"`
	EN       string  `json:"en" binding:"required"`
	HI       string  `json:"hi"`
	Qty      float64 `json:"qty"`
	Category string  `json:"category"`
}

// CreateOrderRequest places a restaurant order.
type CreateOrderRequest struct {
	RestaurantID   string             `json:"restaurantId" binding:"required"`
	RestaurantName string             `json:"restaurantName" binding:"required"`
	ContactName    string             `json:"contactName"`
	ContactPhone   string             `json:"contactPhone"`
	DeliveryDate   string             `json:"deliveryDate" binding:"required"`
	Items          []OrderLineRequest `json:"items" binding:"required"`
	Notes          string             `json:"notes"`
}

// UpdateOrderStatusRequest moves an order through the delivery workflow.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
