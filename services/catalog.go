package services

import (
	"fmt"
	"strings"

	"github.com/yeremiapane/acai-pdv/models"
)

type ProductFilter struct {
	Search     string
	Category   models.Category
	ActiveOnly bool
}

func (f ProductFilter) match(p models.Product) bool {
	if f.ActiveOnly && !p.Active {
		return false
	}
	if f.Category != "" && p.Category != f.Category {
		return false
	}
	if f.Search != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(strings.TrimSpace(f.Search))) {
		return false
	}
	return true
}

// Products lists catalog entries in insertion order.
func (l *Ledger) Products(filter ProductFilter) []models.Product {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]models.Product, 0, len(l.products))
	for _, p := range l.products {
		if filter.match(p) {
			out = append(out, p.Clone())
		}
	}
	return out
}

// Toppings returns the active products of the topping category.
func (l *Ledger) Toppings() []models.Product {
	return l.Products(ProductFilter{Category: models.CategoryTopping, ActiveOnly: true})
}

func (l *Ledger) GetProduct(id string) (models.Product, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	idx := l.productIndex(id)
	if idx < 0 {
		return models.Product{}, ErrProductNotFound
	}
	return l.products[idx].Clone(), nil
}

// AddProduct assigns an id and creation time and appends p to the catalog.
func (l *Ledger) AddProduct(p models.Product) (models.Product, error) {
	var created models.Product
	err := l.mutate(func() ([]Event, error) {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidProduct, err)
		}
		created = p.Clone()
		created.ID = l.newID()
		created.CreatedAt = l.now()
		l.products = append(l.products, created)

		ev := created.Clone()
		return []Event{{Type: EventProductAdded, Product: &ev}}, nil
	})
	return created, err
}

func (l *Ledger) UpdateProduct(id string, patch models.ProductPatch) (models.Product, error) {
	var updated models.Product
	err := l.mutate(func() ([]Event, error) {
		idx := l.productIndex(id)
		if idx < 0 {
			return nil, ErrProductNotFound
		}
		next := l.products[idx].Clone()
		if patch.Name != nil {
			next.Name = *patch.Name
		}
		if patch.Description != nil {
			next.Description = *patch.Description
		}
		if patch.Category != nil {
			next.Category = *patch.Category
		}
		if patch.Sizes != nil {
			next.Sizes = append([]models.SizePrice(nil), patch.Sizes...)
		}
		if patch.Active != nil {
			next.Active = *patch.Active
		}
		if patch.TracksInventory != nil {
			next.TracksInventory = *patch.TracksInventory
		}
		if err := next.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidProduct, err)
		}
		l.products[idx] = next
		updated = next.Clone()

		ev := next.Clone()
		return []Event{{Type: EventProductUpdated, Product: &ev}}, nil
	})
	return updated, err
}

// DeleteProduct removes a product from the catalog. Orders and stock
// records that reference it are kept.
func (l *Ledger) DeleteProduct(id string) error {
	return l.mutate(func() ([]Event, error) {
		idx := l.productIndex(id)
		if idx < 0 {
			return nil, ErrProductNotFound
		}
		removed := l.products[idx]
		l.products = append(l.products[:idx], l.products[idx+1:]...)
		return []Event{{Type: EventProductDeleted, Product: &removed}}, nil
	})
}

func (l *Ledger) productIndex(id string) int {
	for i, p := range l.products {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// tracksInventory is false for products no longer in the catalog.
func (l *Ledger) tracksInventory(productID string) bool {
	idx := l.productIndex(productID)
	return idx >= 0 && l.products[idx].TracksInventory
}
