package models

import "github.com/shopspring/decimal"

// ProductPatch carries the fields to change on a product. Nil fields are
// left untouched.
type ProductPatch struct {
	Name            *string
	Description     *string
	Category        *Category
	Sizes           []SizePrice
	Active          *bool
	TracksInventory *bool
}

// OrderItemPatch carries the fields to change on a cart line.
type OrderItemPatch struct {
	Quantity *int
	Size     *ProductSize
	Price    *decimal.Decimal
	Toppings []Topping
}
