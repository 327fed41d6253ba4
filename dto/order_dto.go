package dto

type OrderItemDTO struct {
	ProductID string  `json:"_id"`
	Title     string  `json:"title" binding:"required"`
	Price     float64 `json:"price" binding:"required"`
	Quantity  int     `json:"quantity" binding:"required,gt=0"`
}

type PaymentDTO struct {
	Method string `json:"method" binding:"required"`
	Status string `json:"status" binding:"omitempty,oneof=pending completed interrupted declined"`
}

type CreateOrderDTO struct {
	User    string         `json:"user" binding:"required"`
	Item    []OrderItemDTO `json:"item" binding:"required,min=1,dive"`
	Address string         `json:"address" binding:"required"`
	Payment PaymentDTO     `json:"payment" binding:"required"`
}
