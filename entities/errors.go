package entities

import "errors"

var (
	ErrInvalidState      = errors.New("illegal order status transition")
	ErrNoItems           = errors.New("order must have at least one item")
	ErrInvalidQuantity   = errors.New("item quantity must be greater than zero")
	ErrNegativeAmount    = errors.New("money amount must not be negative")
	ErrOrderNotFound     = errors.New("order not found")
	ErrOrderExists       = errors.New("order already exists")
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrEventPublication  = errors.New("event could not be submitted for publication")
)
