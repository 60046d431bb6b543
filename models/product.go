package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type ProductSize string

const (
	SizePP ProductSize = "PP"
	SizeP  ProductSize = "P"
	SizeM  ProductSize = "M"
	SizeG  ProductSize = "G"
)

// ProductSizes lists the sizes in menu order.
var ProductSizes = []ProductSize{SizePP, SizeP, SizeM, SizeG}

func (s ProductSize) IsValid() bool {
	switch s {
	case SizePP, SizeP, SizeM, SizeG:
		return true
	}
	return false
}

type Category string

const (
	CategoryAcai    Category = "acai"
	CategoryTopping Category = "cobertura"
	CategoryDrinks  Category = "bebidas"
	CategoryOther   Category = "outros"
)

func (c Category) IsValid() bool {
	switch c {
	case CategoryAcai, CategoryTopping, CategoryDrinks, CategoryOther:
		return true
	}
	return false
}

type SizePrice struct {
	Size  ProductSize     `json:"size"`
	Price decimal.Decimal `json:"price"`
}

// Product is a catalog entry. TracksInventory marks the products whose
// sales consume pots from the stock table.
type Product struct {
	ID              string      `json:"id"`
	Name            string      `json:"name"`
	Description     string      `json:"description"`
	Category        Category    `json:"category"`
	Sizes           []SizePrice `json:"sizes"`
	Active          bool        `json:"active"`
	TracksInventory bool        `json:"tracks_inventory"`
	CreatedAt       time.Time   `json:"created_at"`
}

// PriceFor returns the price registered for size.
func (p Product) PriceFor(size ProductSize) (decimal.Decimal, bool) {
	for _, s := range p.Sizes {
		if s.Size == size {
			return s.Price, true
		}
	}
	return decimal.Zero, false
}

// BasePrice is the price of the first registered size. Toppings are sold
// by their single size, so this is their unit price.
func (p Product) BasePrice() decimal.Decimal {
	if len(p.Sizes) == 0 {
		return decimal.Zero
	}
	return p.Sizes[0].Price
}

func (p Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("name is required")
	}
	if !p.Category.IsValid() {
		return fmt.Errorf("invalid category %q", p.Category)
	}
	if len(p.Sizes) == 0 {
		return errors.New("at least one size is required")
	}
	seen := make(map[ProductSize]bool, len(p.Sizes))
	for _, s := range p.Sizes {
		if !s.Size.IsValid() {
			return fmt.Errorf("invalid size %q", s.Size)
		}
		if seen[s.Size] {
			return fmt.Errorf("size %s listed more than once", s.Size)
		}
		if s.Price.IsNegative() {
			return fmt.Errorf("price for size %s cannot be negative", s.Size)
		}
		seen[s.Size] = true
	}
	return nil
}

func (p Product) Clone() Product {
	c := p
	c.Sizes = append([]SizePrice(nil), p.Sizes...)
	return c
}
