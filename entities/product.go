package entities

type Product struct {
	ProductID string `json:"product_id" db:"product_id"`
	Name      string `json:"name" db:"name"`
	Price     Money  `json:"price" db:"price"`
	Stock     int    `json:"stock" db:"stock"`
}
