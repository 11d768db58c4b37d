package service

import "errors"

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrProductNotFound   = errors.New("product not found")
	ErrOrderNotFound     = errors.New("order not found")
	ErrInsufficientStock = errors.New("insufficient stock remaining")
	ErrSKUExists         = errors.New("SKU already exists")
	ErrEmailExists       = errors.New("email already exists")
	ErrProductInUse      = errors.New("product has existing orders")
)
