package entities

// RetryStockUpdate is the operator-driven remediation path for quarantined
// facts: republish the paid order so the stock-update consumer gets another
// attempt, with a fresh event ID.
type RetryStockUpdate struct {
	Header EventHeader `json:"header"`

	OrderID string `json:"order_id"`
}
