package http

type orderItemRequest struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	UnitPrice   string `json:"unit_price"`
	Quantity    int    `json:"quantity"`
}

type createOrderRequest struct {
	UserID string             `json:"user_id"`
	Items  []orderItemRequest `json:"items"`
}

type createProductRequest struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Price     string `json:"price"`
	Stock     int    `json:"stock"`
}
