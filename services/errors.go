package services

import "errors"

var (
	ErrStockNotFound        = errors.New("stock item not found")
	ErrStockExists          = errors.New("stock item already registered")
	ErrInsufficientStock    = errors.New("insufficient stock")
	ErrInvalidQuantity      = errors.New("invalid quantity")
	ErrCartItemNotFound     = errors.New("cart item not found")
	ErrEmptyCart            = errors.New("cart is empty")
	ErrNoCashier            = errors.New("no cashier logged in")
	ErrProductNotFound      = errors.New("product not found")
	ErrInvalidProduct       = errors.New("invalid product")
	ErrInvalidSize          = errors.New("size not offered for product")
	ErrOrderNotFound        = errors.New("order not found")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrInvalidView          = errors.New("invalid view")
	ErrViewForbidden        = errors.New("view requires admin role")
	ErrNotAuthenticated     = errors.New("not authenticated")
	ErrInvalidCredentials   = errors.New("invalid credentials")
)
